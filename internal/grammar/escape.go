package grammar

import (
	"unicode/utf8"

	"github.com/ghettovoice/gouri/internal/constraints"
)

const upperHex = "0123456789ABCDEF"

func isHex(c byte) bool { return HexDig.Contains(c) }

func unhex(c byte) byte {
	switch {
	case '0' <= c && c <= '9':
		return c - '0'
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}

// DecodeOptions controls percent-decoding.
type DecodeOptions struct {
	// SpaceAsPlus decodes '+' as a space, as in form-encoded query parameters.
	SpaceAsPlus bool
}

// ValidEscape reports whether s holds a valid "%" HEXDIG HEXDIG triplet at pos.
func ValidEscape[T constraints.Byteseq](s T, pos int) bool {
	return pos+2 < len(s) && s[pos] == '%' && isHex(s[pos+1]) && isHex(s[pos+2])
}

// DecodedLen validates the escapes of s and returns the decoded length.
// A '%' not followed by two hex digits fails with [ErrInvalidPercentEncoding] at its offset.
func DecodedLen[T constraints.Byteseq](s T) (int, error) {
	n := 0
	for i := 0; i < len(s); n++ {
		if s[i] != '%' {
			i++
			continue
		}
		if !ValidEscape(s, i) {
			return 0, Fail(ErrInvalidPercentEncoding, i)
		}
		i += 3
	}
	return n, nil
}

// Decode converts "%HH" escapes to octets and passes other bytes through.
// When s has no escapes it is returned as is.
func Decode[T constraints.Byteseq](s T) (T, error) {
	return DecodeWith(s, DecodeOptions{}) //errtrace:skip
}

// DecodeWith is [Decode] with options.
func DecodeWith[T constraints.Byteseq](s T, opts DecodeOptions) (T, error) {
	n, err := DecodedLen(s)
	if err != nil {
		var zero T
		return zero, err //errtrace:skip
	}
	if n == len(s) && !(opts.SpaceAsPlus && hasPlus(s)) {
		return s, nil
	}
	return T(appendDecoded(make([]byte, 0, n), s, opts)), nil
}

func hasPlus[T constraints.Byteseq](s T) bool {
	for i := 0; i < len(s); i++ {
		if s[i] == '+' {
			return true
		}
	}
	return false
}

// appendDecoded appends decoded s to dst, s must be validated.
func appendDecoded[T constraints.Byteseq](dst []byte, s T, opts DecodeOptions) []byte {
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '%' && i+2 < len(s):
			dst = append(dst, unhex(s[i+1])<<4|unhex(s[i+2]))
			i += 2
		case c == '+' && opts.SpaceAsPlus:
			dst = append(dst, ' ')
		default:
			dst = append(dst, c)
		}
	}
	return dst
}

// MustDecode decodes s that was validated by the grammar.
func MustDecode(s string, opts DecodeOptions) string {
	v, err := DecodeWith(s, opts)
	if err != nil {
		panic(err)
	}
	return v
}

// EncodedLen returns the length of s encoded with allowed.
func EncodedLen[T constraints.Byteseq](s T, allowed CharSet) int {
	n := len(s)
	for i := 0; i < len(s); i++ {
		if !allowed.Contains(s[i]) {
			n += 2
		}
	}
	return n
}

// Encode escapes every byte of s that is not in allowed.
// '%' is always escaped. When nothing needs escaping s is returned as is.
func Encode[T constraints.Byteseq](s T, allowed CharSet) T {
	allowed = allowed.Without("%")
	n := EncodedLen(s, allowed)
	if n == len(s) {
		return s
	}
	buf := make([]byte, 0, n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if allowed.Contains(c) {
			buf = append(buf, c)
			continue
		}
		buf = append(buf, '%', upperHex[c>>4], upperHex[c&15])
	}
	return T(buf)
}

// Scan advances over characters from cs and valid escapes starting at pos.
// When ext is not nil, UTF-8 encoded code points accepted by ext are consumed too.
// It returns the offset of the first character not consumed.
// A malformed escape fails with [ErrInvalidPercentEncoding] at the offset of its '%'.
func Scan(s string, pos int, cs CharSet, ext func(rune) bool) (int, error) {
	for pos < len(s) {
		c := s[pos]
		switch {
		case cs.Contains(c):
			pos++
		case c == '%':
			if !ValidEscape(s, pos) {
				return pos, Fail(ErrInvalidPercentEncoding, pos)
			}
			pos += 3
		case c >= utf8.RuneSelf && ext != nil:
			r, n := utf8.DecodeRuneInString(s[pos:])
			if r == utf8.RuneError && n <= 1 || !ext(r) {
				return pos, nil
			}
			pos += n
		default:
			return pos, nil
		}
	}
	return pos, nil
}

// EqualDecoded reports whether a and b decode to the same bytes without decoding them into memory.
// Both must hold valid escapes.
func EqualDecoded(a, b string, opts DecodeOptions) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		var ca, cb byte
		ca, i = decodedByte(a, i, opts)
		cb, j = decodedByte(b, j, opts)
		if ca != cb {
			return false
		}
	}
	return i == len(a) && j == len(b)
}

func decodedByte(s string, i int, opts DecodeOptions) (byte, int) {
	switch c := s[i]; {
	case c == '%' && i+2 < len(s):
		return unhex(s[i+1])<<4 | unhex(s[i+2]), i + 3
	case c == '+' && opts.SpaceAsPlus:
		return ' ', i + 1
	default:
		return c, i + 1
	}
}

// DecodesTo reports whether the valid encoded string enc decodes to plain.
func DecodesTo(enc, plain string, opts DecodeOptions) bool {
	i, j := 0, 0
	for i < len(enc) && j < len(plain) {
		var c byte
		c, i = decodedByte(enc, i, opts)
		if c != plain[j] {
			return false
		}
		j++
	}
	return i == len(enc) && j == len(plain)
}
