package uri

import (
	"iter"
	"slices"

	"github.com/ghettovoice/gouri/internal/grammar"
)

// Segments is a lazy view over the segments of a path.
//
// Every iteration re-scans the path and decodes the segments on demand.
// The zero value is an empty view.
type Segments struct {
	s string
	n int
}

// Len returns the number of segments.
func (v Segments) Len() int { return v.n }

// IsAbsolute reports whether the path starts with '/'.
func (v Segments) IsAbsolute() bool { return len(v.s) > 0 && v.s[0] == '/' }

func (v Segments) splitter() splitter {
	if v.n == 0 {
		return splitter{done: true}
	}
	s := v.s
	if s[0] == '/' {
		s = s[1:]
	}
	return splitter{s: s, sep: '/'}
}

// Encoded returns an iterator over the segments as written.
func (v Segments) Encoded() iter.Seq[string] {
	return func(yield func(string) bool) {
		sp := v.splitter()
		for seg, ok := sp.next(); ok; seg, ok = sp.next() {
			if !yield(seg) {
				return
			}
		}
	}
}

// All returns an iterator over the decoded segments.
func (v Segments) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for seg := range v.Encoded() {
			if !yield(grammar.MustDecode(seg, grammar.DecodeOptions{})) {
				return
			}
		}
	}
}

// Collect returns the decoded segments.
func (v Segments) Collect() []string {
	if v.n == 0 {
		return nil
	}
	return slices.AppendSeq(make([]string, 0, v.n), v.All())
}

// Equal reports whether both views hold the same decoded segments.
// The leading '/' is not part of the content: "/a/b" equals "a/b",
// while the single segment "a%2Fb" differs from the two segments "a/b".
func (v Segments) Equal(other Segments) bool {
	if v.n != other.n {
		return false
	}
	sp1, sp2 := v.splitter(), other.splitter()
	for {
		seg1, ok1 := sp1.next()
		seg2, ok2 := sp2.next()
		if ok1 != ok2 {
			return false
		}
		if !ok1 {
			return true
		}
		if !grammar.EqualDecoded(seg1, seg2, grammar.DecodeOptions{}) {
			return false
		}
	}
}

// String returns the encoded path.
func (v Segments) String() string { return v.s }
