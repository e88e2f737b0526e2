package uri

import "strings"

// splitter walks the parts of s separated by sep.
// An empty s yields one empty part.
type splitter struct {
	s    string
	sep  byte
	done bool
}

func (sp *splitter) next() (string, bool) {
	if sp.done {
		return "", false
	}
	i := strings.IndexByte(sp.s, sp.sep)
	if i < 0 {
		sp.done = true
		return sp.s, true
	}
	part := sp.s[:i]
	sp.s = sp.s[i+1:]
	return part, true
}
