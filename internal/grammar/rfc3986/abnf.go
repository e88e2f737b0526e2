package rfc3986

import (
	"github.com/ghettovoice/abnf"
)

func init() {
	abnf.EnableNodeCache(1024)
}

func lit(s string) abnf.Operator { return abnf.Literal(s, []byte(s)) }

func rng(key string, lo, hi byte) abnf.Operator {
	return abnf.Range(key, []byte{lo}, []byte{hi})
}

// ABNF of the IP-literal part of RFC 3986, section 3.2.2.
var (
	abnfDigit  = rng("DIGIT", '0', '9')
	abnfHexdig = abnf.Alt("HEXDIG", abnfDigit, rng("HEXDIG", 'A', 'F'), rng("HEXDIG", 'a', 'f'))
	abnfAlpha  = abnf.Alt("ALPHA", rng("ALPHA", 'A', 'Z'), rng("ALPHA", 'a', 'z'))

	abnfDecOctet = abnf.Alt(
		"dec-octet",
		abnf.Concat("dec-octet", lit("25"), rng("", '0', '5')),
		abnf.Concat("dec-octet", lit("2"), rng("", '0', '4'), abnfDigit),
		abnf.Concat("dec-octet", lit("1"), abnfDigit, abnfDigit),
		abnf.Concat("dec-octet", rng("", '1', '9'), abnfDigit),
		abnfDigit,
	)
	abnfIPv4 = abnf.Concat(
		"IPv4address",
		abnfDecOctet, lit("."), abnfDecOctet, lit("."), abnfDecOctet, lit("."), abnfDecOctet,
	)

	abnfH16     = abnf.Repeat("h16", 1, 4, abnfHexdig)
	abnfH16Col  = abnf.Concat("h16-colon", abnfH16, lit(":"))
	abnfLs32    = abnf.Alt("ls32", abnf.Concat("ls32", abnfH16, lit(":"), abnfH16), abnfIPv4)
	abnfDColon  = lit("::")
	abnfH16Cols = func(n uint) abnf.Operator { return abnf.Repeat("h16-colons", n, n, abnfH16Col) }
	abnfH16Pre  = func(n uint) abnf.Operator {
		return abnf.Optional("h16-prefix", abnf.Concat("h16-prefix", abnf.Repeat("h16-colons", 0, n, abnfH16Col), abnfH16))
	}

	abnfIPv6 = abnf.Alt(
		"IPv6address",
		abnf.Concat("IPv6address", abnfH16Cols(6), abnfLs32),
		abnf.Concat("IPv6address", abnfDColon, abnfH16Cols(5), abnfLs32),
		abnf.Concat("IPv6address", abnf.Optional("h16-prefix", abnfH16), abnfDColon, abnfH16Cols(4), abnfLs32),
		abnf.Concat("IPv6address", abnfH16Pre(1), abnfDColon, abnfH16Cols(3), abnfLs32),
		abnf.Concat("IPv6address", abnfH16Pre(2), abnfDColon, abnfH16Cols(2), abnfLs32),
		abnf.Concat("IPv6address", abnfH16Pre(3), abnfDColon, abnfH16Col, abnfLs32),
		abnf.Concat("IPv6address", abnfH16Pre(4), abnfDColon, abnfLs32),
		abnf.Concat("IPv6address", abnfH16Pre(5), abnfDColon, abnfH16),
		abnf.Concat("IPv6address", abnfH16Pre(6), abnfDColon),
	)

	abnfUnreservedOrSub = abnf.Alt(
		"unreserved-sub-delims-colon",
		abnfAlpha,
		abnfDigit,
		lit("-"), lit("."), lit("_"), lit("~"),
		lit("!"), lit("$"), lit("&"), lit("'"), lit("("), lit(")"),
		lit("*"), lit("+"), lit(","), lit(";"), lit("="), lit(":"),
	)
	abnfIPvFuture = abnf.Concat(
		"IPvFuture",
		lit("v"),
		abnf.Repeat1Inf("IPvFuture-version", abnfHexdig),
		lit("."),
		abnf.Repeat1Inf("IPvFuture-address", abnfUnreservedOrSub),
	)

	abnfScheme = abnf.Concat(
		"scheme",
		abnfAlpha,
		abnf.Repeat0Inf("scheme-chars", abnf.Alt("scheme-char", abnfAlpha, abnfDigit, lit("+"), lit("-"), lit("."))),
	)
)

// match runs op over s and returns the length of the longest match
// and whether it covers all of s.
func match(op abnf.Operator, s string) (int, bool) {
	if len(s) == 0 {
		return 0, false
	}

	ns := abnf.NewNodes()
	defer ns.Free()

	if err := op([]byte(s), 0, ns); err != nil {
		return 0, false
	}
	n := ns.Best().Len()
	return n, n == len(s)
}

// IsIPv6 reports whether s is an IPv6address.
func IsIPv6(s string) bool {
	_, ok := match(abnfIPv6, s)
	return ok
}

// IsIPvFuture reports whether s is an IPvFuture address.
func IsIPvFuture(s string) bool {
	_, ok := match(abnfIPvFuture, s)
	return ok
}

// IsIPv4 reports whether s is an IPv4address.
func IsIPv4(s string) bool {
	_, ok := match(abnfIPv4, s)
	return ok
}

// IsScheme reports whether s is a scheme.
func IsScheme(s string) bool {
	_, ok := match(abnfScheme, s)
	return ok
}
