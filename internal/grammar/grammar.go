// Package grammar implements the rule engine used by the URI grammar:
// small rules over a cursor/end pair composed into larger productions,
// character sets and the percent codec.
//
// A span is a string whose length is the exclusive end bound plus an int cursor.
// Sub-spans are made by cutting the end only, so every offset reported by a rule
// is relative to the start of the original buffer.
package grammar

//go:generate go tool errtrace -w .

import "strconv"

// ErrorKind classifies grammar errors.
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

// Grammar marks the kind as a grammar error.
func (ErrorKind) Grammar() bool { return true }

const (
	ErrInvalidScheme           ErrorKind = "invalid scheme"
	ErrInvalidUserinfo         ErrorKind = "invalid userinfo"
	ErrInvalidHost             ErrorKind = "invalid host"
	ErrInvalidPort             ErrorKind = "invalid port"
	ErrInvalidAuthority        ErrorKind = "invalid authority"
	ErrInvalidPath             ErrorKind = "invalid path"
	ErrInvalidQuery            ErrorKind = "invalid query"
	ErrInvalidFragment         ErrorKind = "invalid fragment"
	ErrInvalidPercentEncoding  ErrorKind = "invalid percent-encoding"
	ErrUnexpectedEnd           ErrorKind = "unexpected end of input"
	ErrMalformedComponentOrder ErrorKind = "malformed component order"
)

// Error is a grammar error of a kind at a byte offset of the input.
type Error struct {
	Kind   ErrorKind
	Offset int
}

// Fail returns a new [Error].
func Fail(kind ErrorKind, offset int) error {
	return &Error{Kind: kind, Offset: offset} //errtrace:skip
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return string(e.Kind) + " at offset " + strconv.Itoa(e.Offset)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Kind //errtrace:skip
}

// Is matches an *Error of the same kind at the same offset.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error) //nolint:errorlint
	return ok && e != nil && t != nil && *e == *t
}

func (*Error) Grammar() bool { return true }

// Span is the extent of a component inside the input.
type Span struct {
	Offset int
	Length int
}

// SpanOf returns the span between two cursors.
func SpanOf(start, end int) Span { return Span{Offset: start, Length: end - start} }

// End returns the exclusive end offset.
func (s Span) End() int { return s.Offset + s.Length }

// In returns the text of the span in s.
func (s Span) In(str string) string { return str[s.Offset:s.End()] }
