package uri

//go:generate go tool errtrace -w .

import (
	"errors"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
)

// Error is a grammar error of a kind at a byte offset of the input.
type Error = grammar.Error

// ErrorKind classifies grammar errors.
type ErrorKind = grammar.ErrorKind

const (
	ErrInvalidScheme           = grammar.ErrInvalidScheme
	ErrInvalidUserinfo         = grammar.ErrInvalidUserinfo
	ErrInvalidHost             = grammar.ErrInvalidHost
	ErrInvalidPort             = grammar.ErrInvalidPort
	ErrInvalidAuthority        = grammar.ErrInvalidAuthority
	ErrInvalidPath             = grammar.ErrInvalidPath
	ErrInvalidQuery            = grammar.ErrInvalidQuery
	ErrInvalidFragment         = grammar.ErrInvalidFragment
	ErrInvalidPercentEncoding  = grammar.ErrInvalidPercentEncoding
	ErrUnexpectedEnd           = grammar.ErrUnexpectedEnd
	ErrMalformedComponentOrder = grammar.ErrMalformedComponentOrder
)

// ErrInvalidArgument is returned when an invalid argument is passed to a function.
const ErrInvalidArgument = errorutil.ErrInvalidArgument

// ErrorOffset returns the byte offset of a grammar error wrapped by err.
func ErrorOffset(err error) (int, bool) {
	var e *Error
	if errors.As(err, &e) && e != nil {
		return e.Offset, true
	}
	return 0, false
}

// IsGrammarError reports whether err is caused by malformed input.
func IsGrammarError(err error) bool { return errorutil.IsGrammarErr(err) }

// HostKind is the syntactic kind of a host.
type HostKind = rfc3986.HostKind

const (
	HostNone      = rfc3986.HostNone
	HostName      = rfc3986.HostName
	HostIPv4      = rfc3986.HostIPv4
	HostIPv6      = rfc3986.HostIPv6
	HostIPvFuture = rfc3986.HostIPvFuture
)

// CharSet is an immutable set of bytes used to select the characters left unescaped by [Encode].
type CharSet = grammar.CharSet

// NewCharSet returns a set of the given characters.
func NewCharSet(chars string) CharSet { return grammar.NewCharSet(chars) }

// Character classes of RFC 3986.
var (
	Unreserved = grammar.Unreserved
	SubDelims  = grammar.SubDelims
	// UserinfoChars are allowed unescaped in the userinfo.
	UserinfoChars = grammar.UserinfoChars
	// RegNameChars are allowed unescaped in a registered name.
	RegNameChars = grammar.RegNameChars
	// SegmentChars are allowed unescaped in a path segment.
	SegmentChars = grammar.PChars
	// PathChars are allowed unescaped in a path.
	PathChars = grammar.PathChars
	// QueryChars are allowed unescaped in a query.
	QueryChars = grammar.QueryChars
	// ParamChars are allowed unescaped in a query parameter key or value.
	ParamChars = grammar.ParamChars
	// FragmentChars are allowed unescaped in a fragment.
	FragmentChars = grammar.FragmentChars
)

// DecodeOptions controls percent-decoding.
type DecodeOptions = grammar.DecodeOptions

// Decode converts "%HH" escapes of s to octets.
// A '%' not followed by two hex digits fails with [ErrInvalidPercentEncoding] at its offset.
func Decode[T constraints.Byteseq](s T) (T, error) {
	return errtrace.Wrap2(grammar.Decode(s))
}

// DecodeWith is [Decode] with options.
func DecodeWith[T constraints.Byteseq](s T, opts DecodeOptions) (T, error) {
	return errtrace.Wrap2(grammar.DecodeWith(s, opts))
}

// Encode escapes every byte of s that is not in allowed as "%HH".
// '%' is always escaped. Encoding is not unique: other escapings may decode to the same bytes.
func Encode[T constraints.Byteseq](s T, allowed CharSet) T {
	return grammar.Encode(s, allowed)
}

// IsIPv6 reports whether s is an IPv6 address in the textual form of RFC 3986.
func IsIPv6(s string) bool { return rfc3986.IsIPv6(s) }

// IsIPv4 reports whether s is a dotted-decimal IPv4 address.
func IsIPv4(s string) bool { return rfc3986.IsIPv4(s) }

// IsScheme reports whether s is a valid scheme.
func IsScheme(s string) bool { return rfc3986.IsScheme(s) }
