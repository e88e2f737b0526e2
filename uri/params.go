package uri

import (
	"iter"
	"log/slog"
	"slices"
	"strings"

	"github.com/ghettovoice/gouri/internal/grammar"
)

// Param is a query key/value pair.
type Param struct {
	Key   string
	Value string
	// HasValue reports whether the pair contains '='.
	HasValue bool
}

// LogValue implements [slog.LogValuer].
func (p Param) LogValue() slog.Value {
	if !p.HasValue {
		return slog.StringValue(p.Key)
	}
	return slog.StringValue(p.Key + "=" + p.Value)
}

func splitParam(s string) Param {
	k, v, ok := strings.Cut(s, "=")
	return Param{Key: k, Value: v, HasValue: ok}
}

// Params is a lazy view over the '&' separated key/value pairs of a query.
//
// Every iteration re-scans the query and decodes the pairs on demand.
// A pair is split on its first '='.
// The zero value is an empty view.
type Params struct {
	s       string
	n       int
	present bool
	plus    bool
}

// Len returns the number of pairs.
func (v Params) Len() int { return v.n }

// SpaceAsPlus returns a view that decodes '+' as a space,
// as in application/x-www-form-urlencoded queries.
func (v Params) SpaceAsPlus() Params {
	v.plus = true
	return v
}

func (v Params) decodeOpts() grammar.DecodeOptions {
	return grammar.DecodeOptions{SpaceAsPlus: v.plus}
}

func (v Params) splitter() splitter {
	if !v.present {
		return splitter{done: true}
	}
	return splitter{s: v.s, sep: '&'}
}

// Encoded returns an iterator over the pairs as written.
func (v Params) Encoded() iter.Seq[Param] {
	return func(yield func(Param) bool) {
		sp := v.splitter()
		for kv, ok := sp.next(); ok; kv, ok = sp.next() {
			if !yield(splitParam(kv)) {
				return
			}
		}
	}
}

// All returns an iterator over the decoded pairs.
func (v Params) All() iter.Seq[Param] {
	opts := v.decodeOpts()
	return func(yield func(Param) bool) {
		for p := range v.Encoded() {
			p.Key = grammar.MustDecode(p.Key, opts)
			p.Value = grammar.MustDecode(p.Value, opts)
			if !yield(p) {
				return
			}
		}
	}
}

// Collect returns the decoded pairs.
func (v Params) Collect() []Param {
	if v.n == 0 {
		return nil
	}
	return slices.AppendSeq(make([]Param, 0, v.n), v.All())
}

// Get returns the decoded value of the first pair with the decoded key.
func (v Params) Get(key string) (string, bool) {
	opts := v.decodeOpts()
	for p := range v.Encoded() {
		if grammar.DecodesTo(p.Key, key, opts) {
			return grammar.MustDecode(p.Value, opts), true
		}
	}
	return "", false
}

// Has reports whether a pair with the decoded key exists.
func (v Params) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Equal reports whether both views hold the same decoded pairs in the same order.
func (v Params) Equal(other Params) bool {
	if v.n != other.n {
		return false
	}
	opts1, opts2 := v.decodeOpts(), other.decodeOpts()
	sp1, sp2 := v.splitter(), other.splitter()
	for {
		kv1, ok1 := sp1.next()
		kv2, ok2 := sp2.next()
		if ok1 != ok2 {
			return false
		}
		if !ok1 {
			return true
		}
		p1, p2 := splitParam(kv1), splitParam(kv2)
		if p1.HasValue != p2.HasValue ||
			!equalDecodedWith(p1.Key, opts1, p2.Key, opts2) ||
			!equalDecodedWith(p1.Value, opts1, p2.Value, opts2) {
			return false
		}
	}
}

func equalDecodedWith(a string, aOpts grammar.DecodeOptions, b string, bOpts grammar.DecodeOptions) bool {
	if aOpts == bOpts {
		return grammar.EqualDecoded(a, b, aOpts)
	}
	return grammar.MustDecode(a, aOpts) == grammar.MustDecode(b, bOpts)
}

// String returns the encoded query.
func (v Params) String() string { return v.s }
