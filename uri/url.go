package uri

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"braces.dev/errtrace"
	"github.com/miekg/dns"

	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/ioutil"
	"github.com/ghettovoice/gouri/internal/util"
)

// Component identifies a component of a [URL].
type Component uint8

const (
	ComponentScheme Component = iota
	ComponentUserinfo
	ComponentHost
	ComponentPort
	ComponentPath
	ComponentQuery
	ComponentFragment
	// ComponentAuthority covers userinfo, host and port with their delimiters.
	ComponentAuthority
)

const numComponents = int(ComponentAuthority)

var componentNames = [...]string{
	ComponentScheme:    "scheme",
	ComponentUserinfo:  "userinfo",
	ComponentHost:      "host",
	ComponentPort:      "port",
	ComponentPath:      "path",
	ComponentQuery:     "query",
	ComponentFragment:  "fragment",
	ComponentAuthority: "authority",
}

func (c Component) String() string {
	if int(c) < len(componentNames) {
		return componentNames[c]
	}
	return "unknown"
}

// Span is the extent of a component inside the parsed buffer.
// Delimiters are not part of the extent.
type Span struct {
	Present bool
	Offset  int
	Length  int
}

// End returns the exclusive end offset.
func (sp Span) End() int { return sp.Offset + sp.Length }

func (sp Span) in(s string) string {
	if !sp.Present {
		return ""
	}
	return s[sp.Offset:sp.End()]
}

// URL is a parsed URI, relative reference or authority.
//
// It records where the components are in the parsed buffer and decodes them on read.
// A URL is immutable, use one of the Parse functions to obtain it.
type URL struct {
	s        string
	comps    [numComponents]Span
	auth     Span
	hostKind HostKind
	nseg     int
	nparam   int
}

// Buffer returns the parsed input.
func (u *URL) Buffer() string {
	if u == nil {
		return ""
	}
	return u.s
}

// Component returns the extent of the component k.
func (u *URL) Component(k Component) Span {
	switch {
	case u == nil:
		return Span{}
	case k == ComponentAuthority:
		return u.auth
	case int(k) < numComponents:
		return u.comps[k]
	default:
		return Span{}
	}
}

func (u *URL) has(k Component) bool { return u != nil && u.comps[k].Present }

func (u *URL) raw(k Component) string {
	if u == nil {
		return ""
	}
	return u.comps[k].in(u.s)
}

func (u *URL) decoded(k Component) string {
	return grammar.MustDecode(u.raw(k), grammar.DecodeOptions{})
}

// Persist returns a copy of u that owns its buffer.
func (u *URL) Persist() *URL {
	if u == nil {
		return nil
	}
	u2 := *u
	u2.s = strings.Clone(u.s)
	return &u2
}

// HasScheme reports whether u is a URI rather than a relative reference.
func (u *URL) HasScheme() bool { return u.has(ComponentScheme) }

// EncodedScheme returns the scheme as written.
func (u *URL) EncodedScheme() string { return u.raw(ComponentScheme) }

// Scheme returns the scheme in lower case.
func (u *URL) Scheme() string { return util.LCase(u.raw(ComponentScheme)) }

// HasAuthority reports whether the authority component is present.
// The authority may be present and empty, as in "file:///etc".
func (u *URL) HasAuthority() bool { return u != nil && u.auth.Present }

// EncodedAuthority returns the authority as written, without the leading "//".
func (u *URL) EncodedAuthority() string {
	if u == nil {
		return ""
	}
	return u.auth.in(u.s)
}

// HasUserinfo reports whether the userinfo component is present.
func (u *URL) HasUserinfo() bool { return u.has(ComponentUserinfo) }

// EncodedUserinfo returns the userinfo as written.
func (u *URL) EncodedUserinfo() string { return u.raw(ComponentUserinfo) }

// Userinfo returns the decoded userinfo.
func (u *URL) Userinfo() string { return u.decoded(ComponentUserinfo) }

// EncodedUser returns the userinfo up to the first ':'.
func (u *URL) EncodedUser() string {
	user, _, _ := strings.Cut(u.raw(ComponentUserinfo), ":")
	return user
}

// User returns the decoded user part of the userinfo.
func (u *URL) User() string {
	return grammar.MustDecode(u.EncodedUser(), grammar.DecodeOptions{})
}

// HasPassword reports whether the userinfo contains a ':'.
func (u *URL) HasPassword() bool {
	return strings.IndexByte(u.raw(ComponentUserinfo), ':') >= 0
}

// EncodedPassword returns the userinfo after the first ':'.
func (u *URL) EncodedPassword() string {
	_, pass, _ := strings.Cut(u.raw(ComponentUserinfo), ":")
	return pass
}

// Password returns the decoded password part of the userinfo.
func (u *URL) Password() string {
	return grammar.MustDecode(u.EncodedPassword(), grammar.DecodeOptions{})
}

// HostKind returns the kind of the host, [HostNone] without authority.
func (u *URL) HostKind() HostKind {
	if u == nil {
		return HostNone
	}
	return u.hostKind
}

// EncodedHost returns the host as written, IP literals keep their brackets.
func (u *URL) EncodedHost() string { return u.raw(ComponentHost) }

// Host returns the decoded host, IP literals keep their brackets.
func (u *URL) Host() string { return u.decoded(ComponentHost) }

// EncodedHostAddress is [URL.EncodedHost] with the brackets of an IP literal stripped.
func (u *URL) EncodedHostAddress() string {
	h := u.raw(ComponentHost)
	if k := u.HostKind(); k == HostIPv6 || k == HostIPvFuture {
		return h[1 : len(h)-1]
	}
	return h
}

// HostAddress is [URL.Host] with the brackets of an IP literal stripped.
func (u *URL) HostAddress() string {
	return grammar.MustDecode(u.EncodedHostAddress(), grammar.DecodeOptions{})
}

// IsDomainName reports whether the host is a registered name
// that is also a valid DNS domain name.
func (u *URL) IsDomainName() bool {
	if u.HostKind() != HostName {
		return false
	}
	h := u.Host()
	if h == "" {
		return false
	}
	_, ok := dns.IsDomainName(h)
	return ok
}

// HasPort reports whether the port component is present, it may be empty.
func (u *URL) HasPort() bool { return u.has(ComponentPort) }

// Port returns the port digits.
func (u *URL) Port() string { return u.raw(ComponentPort) }

// PortNumber returns the port as a number.
// It reports false when the port is absent, empty or out of range.
func (u *URL) PortNumber() (uint16, bool) {
	p := u.raw(ComponentPort)
	if p == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(p, 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}

// HasPath reports whether the path component is present.
// Every grammar except the authority-form has a path, possibly empty.
func (u *URL) HasPath() bool { return u.has(ComponentPath) }

// IsPathAbsolute reports whether the path starts with '/'.
func (u *URL) IsPathAbsolute() bool { return strings.HasPrefix(u.raw(ComponentPath), "/") }

// EncodedPath returns the path as written.
func (u *URL) EncodedPath() string { return u.raw(ComponentPath) }

// Path returns the decoded path.
func (u *URL) Path() string { return u.decoded(ComponentPath) }

// SegmentCount returns the number of path segments.
func (u *URL) SegmentCount() int {
	if !u.HasPath() {
		return 0
	}
	return u.nseg
}

// Segments returns a view over the path segments.
func (u *URL) Segments() Segments {
	if !u.HasPath() {
		return Segments{}
	}
	return Segments{s: u.EncodedPath(), n: u.nseg}
}

// HasQuery reports whether the query component is present, it may be empty.
func (u *URL) HasQuery() bool { return u.has(ComponentQuery) }

// EncodedQuery returns the query as written, without the '?'.
func (u *URL) EncodedQuery() string { return u.raw(ComponentQuery) }

// Query returns the decoded query.
func (u *URL) Query() string { return u.decoded(ComponentQuery) }

// ParamCount returns the number of query key/value pairs.
// A present empty query has one empty pair.
func (u *URL) ParamCount() int {
	if !u.HasQuery() {
		return 0
	}
	return u.nparam
}

// Params returns a view over the query key/value pairs.
func (u *URL) Params() Params {
	if !u.HasQuery() {
		return Params{}
	}
	return Params{s: u.EncodedQuery(), n: u.nparam, present: true}
}

// HasFragment reports whether the fragment component is present, it may be empty.
func (u *URL) HasFragment() bool { return u.has(ComponentFragment) }

// EncodedFragment returns the fragment as written, without the '#'.
func (u *URL) EncodedFragment() string { return u.raw(ComponentFragment) }

// Fragment returns the decoded fragment.
func (u *URL) Fragment() string { return u.decoded(ComponentFragment) }

// RenderTo writes the URL assembled from its components to w.
func (u *URL) RenderTo(w io.Writer) (num int, err error) {
	if u == nil {
		return 0, nil
	}

	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.HasScheme() {
		cw.WriteStrings(u.EncodedScheme(), ":")
	}
	if u.HasAuthority() {
		if u.HasPath() {
			cw.WriteStrings("//")
		}
		cw.Call(u.renderAuthority)
	}
	cw.WriteStrings(u.EncodedPath())
	if u.HasQuery() {
		cw.WriteStrings("?", u.EncodedQuery())
	}
	if u.HasFragment() {
		cw.WriteStrings("#", u.EncodedFragment())
	}
	return errtrace.Wrap2(cw.Result())
}

func (u *URL) renderAuthority(w io.Writer) (num int, err error) {
	cw := ioutil.GetCountingWriter(w)
	defer ioutil.FreeCountingWriter(cw)
	if u.HasUserinfo() {
		cw.WriteStrings(u.EncodedUserinfo(), "@")
	}
	cw.WriteStrings(u.EncodedHost())
	if u.HasPort() {
		cw.WriteStrings(":", u.Port())
	}
	return errtrace.Wrap2(cw.Result())
}

// Render returns the URL assembled from its components.
func (u *URL) Render() string {
	if u == nil {
		return ""
	}
	sb := util.GetStringBuilder()
	defer util.FreeStringBuilder(sb)
	u.RenderTo(sb) //nolint:errcheck
	return sb.String()
}

// String returns the string representation of the URL.
func (u *URL) String() string {
	if u == nil {
		return ""
	}
	return u.Render()
}

// Format implements [fmt.Formatter].
func (u *URL) Format(f fmt.State, verb rune) {
	switch verb {
	case 's':
		if f.Flag('+') {
			u.RenderTo(f) //nolint:errcheck
			return
		}
		fmt.Fprint(f, u.String())
		return
	case 'q':
		fmt.Fprint(f, strconv.Quote(u.String()))
		return
	default:
		type hideMethods URL
		type URL hideMethods
		fmt.Fprintf(f, fmt.FormatString(f, verb), (*URL)(u))
		return
	}
}

// LogValue implements [slog.LogValuer].
func (u *URL) LogValue() slog.Value {
	if u == nil {
		return slog.Value{}
	}
	attrs := make([]slog.Attr, 0, 8)
	if u.HasScheme() {
		attrs = append(attrs, slog.String("scheme", u.EncodedScheme()))
	}
	if u.HasAuthority() {
		attrs = append(attrs,
			slog.String("host", u.EncodedHost()),
			slog.Any("host_kind", u.HostKind()),
		)
		if u.HasPort() {
			attrs = append(attrs, slog.String("port", u.Port()))
		}
	}
	if u.HasPath() {
		attrs = append(attrs,
			slog.String("path", u.EncodedPath()),
			slog.Int("segments", u.SegmentCount()),
		)
	}
	if u.HasQuery() {
		attrs = append(attrs,
			slog.String("query", u.EncodedQuery()),
			slog.Int("params", u.ParamCount()),
		)
	}
	if u.HasFragment() {
		attrs = append(attrs, slog.String("fragment", u.EncodedFragment()))
	}
	return slog.GroupValue(attrs...)
}

// MarshalText implements [encoding.TextMarshaler].
func (u *URL) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
// The text is parsed as a URI-reference.
func (u *URL) UnmarshalText(text []byte) error {
	u1, err := Parse(text, GrammarURIReference, nil)
	if err != nil {
		*u = URL{}
		return errtrace.Wrap(err)
	}
	*u = *u1
	return nil
}
