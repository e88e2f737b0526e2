// Package util provides string helpers shared by the URL renderers and loggers.
package util

import (
	"strings"
	"sync"
	"unicode/utf8"
)

// LCase returns s with ASCII letters in lower case.
// It returns s itself when there is nothing to change.
func LCase[T ~string](s T) T {
	for i := 0; i < len(s); i++ {
		if c := s[i]; 'A' <= c && c <= 'Z' {
			return T(strings.ToLower(string(s)))
		}
	}
	return s
}

// Ellipsis cuts s after maxLen runes and appends "...".
func Ellipsis(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	n := 0
	for i := range s {
		if n == maxLen {
			return s[:i] + "..."
		}
		n++
	}
	return s
}

var strBldrPool = &sync.Pool{
	New: func() any {
		sb := new(strings.Builder)
		sb.Grow(256)
		return sb
	},
}

func GetStringBuilder() *strings.Builder {
	return strBldrPool.Get().(*strings.Builder) //nolint:forcetypeassert
}

func FreeStringBuilder(sb *strings.Builder) {
	sb.Reset()
	strBldrPool.Put(sb)
}
