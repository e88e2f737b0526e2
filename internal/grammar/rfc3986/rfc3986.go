// Package rfc3986 contains the component rules of the URI grammar of RFC 3986
// and of its IRI extension from RFC 3987.
//
// Every rule consumes a bounded run of its character class and rejects
// a character outside of it with a component specific [grammar.ErrorKind]
// at the offset of that character.
package rfc3986

//go:generate go tool errtrace -w .

import (
	"strings"

	"github.com/ghettovoice/gouri/internal/grammar"
)

// HostKind is the syntactic kind of a host.
type HostKind uint8

const (
	HostNone HostKind = iota
	HostName
	HostIPv4
	HostIPv6
	HostIPvFuture
)

func (k HostKind) String() string {
	switch k {
	case HostNone:
		return "none"
	case HostName:
		return "name"
	case HostIPv4:
		return "ipv4"
	case HostIPv6:
		return "ipv6"
	case HostIPvFuture:
		return "ipvfuture"
	default:
		return "unknown"
	}
}

// Host is a parsed host. IP literals include their brackets.
type Host struct {
	Kind HostKind
	Span grammar.Span
}

// Authority is a parsed authority, the span excludes the leading "//".
type Authority struct {
	Span     grammar.Span
	Userinfo grammar.Opt[grammar.Span]
	Host     Host
	Port     grammar.Opt[grammar.Span]
}

// Path is a parsed path with its number of segments.
type Path struct {
	Span         grammar.Span
	SegmentCount int
}

// HierPart is the result of the hier-part and relative-part productions.
type HierPart struct {
	HasAuthority bool
	Authority    Authority
	Path         Path
}

// Query is a parsed query with its number of key/value pairs.
type Query struct {
	Span  grammar.Span
	Count int
}

// RuleSet holds the rules of one grammar flavour.
type RuleSet struct {
	iri      bool
	ext      func(rune) bool
	queryExt func(rune) bool

	scheme       grammar.Rule[grammar.Span]
	schemePart   grammar.Rule[grammar.Span]
	optScheme    grammar.Rule[grammar.Opt[grammar.Span]]
	userinfo     grammar.Rule[grammar.Span]
	host         grammar.Rule[Host]
	port         grammar.Rule[grammar.Span]
	portPart     grammar.Rule[grammar.Opt[grammar.Span]]
	authority    grammar.Rule[Authority]
	pathAbempty  grammar.Rule[Path]
	pathRootless grammar.Rule[Path]
	pathNoscheme grammar.Rule[Path]
	absolutePath grammar.Rule[Path]
	authAndPath  grammar.Rule[grammar.Pair[Authority, Path]]
	hierPart     grammar.Rule[HierPart]
	relativePart grammar.Rule[HierPart]
	query        grammar.Rule[Query]
	queryPart    grammar.Rule[grammar.Opt[Query]]
	fragment     grammar.Rule[grammar.Span]
	fragmentPart grammar.Rule[grammar.Opt[grammar.Span]]
}

var (
	uriRules = newRuleSet(false)
	iriRules = newRuleSet(true)
)

// Rules returns the rules of RFC 3986.
func Rules() *RuleSet { return uriRules }

// IRIRules returns the rules of RFC 3987.
func IRIRules() *RuleSet { return iriRules }

func newRuleSet(iri bool) *RuleSet {
	r := &RuleSet{iri: iri}
	if iri {
		r.ext = isUcschar
		r.queryExt = isQueryRune
	}

	r.scheme = grammar.RuleFunc[grammar.Span](parseScheme)
	r.schemePart = grammar.Map(
		grammar.Tuple2(r.scheme, grammar.Delim(':', grammar.ErrInvalidScheme)),
		func(p grammar.Pair[grammar.Span, grammar.Span]) grammar.Span { return p.First },
	)
	r.optScheme = grammar.Optional(r.schemePart)
	r.userinfo = grammar.RuleFunc[grammar.Span](r.parseUserinfo)
	r.host = grammar.RuleFunc[Host](r.parseHost)
	r.port = grammar.Token(grammar.Digit)
	r.portPart = grammar.Part(':', r.port)
	r.authority = grammar.RuleFunc[Authority](r.parseAuthority)
	r.pathAbempty = grammar.RuleFunc[Path](r.parsePathAbempty)
	r.pathRootless = grammar.RuleFunc[Path](func(s string, pos int) (Path, int, error) {
		return r.parsePath(s, pos, false) //errtrace:skip
	})
	r.pathNoscheme = grammar.RuleFunc[Path](func(s string, pos int) (Path, int, error) {
		return r.parsePath(s, pos, true) //errtrace:skip
	})
	r.absolutePath = grammar.RuleFunc[Path](r.parseAbsolutePath)
	r.authAndPath = grammar.Tuple2(r.authority, r.pathAbempty)
	r.hierPart = grammar.RuleFunc[HierPart](func(s string, pos int) (HierPart, int, error) {
		return r.parseHierPart(s, pos, r.pathRootless) //errtrace:skip
	})
	r.relativePart = grammar.RuleFunc[HierPart](func(s string, pos int) (HierPart, int, error) {
		return r.parseHierPart(s, pos, r.pathNoscheme) //errtrace:skip
	})
	r.query = grammar.RuleFunc[Query](r.parseQuery)
	r.queryPart = grammar.Part('?', r.query)
	r.fragment = grammar.RuleFunc[grammar.Span](r.parseFragment)
	r.fragmentPart = grammar.Part('#', r.fragment)
	return r
}

// IRI reports whether the rules accept RFC 3987 characters.
func (r *RuleSet) IRI() bool { return r.iri }

// Scheme is ALPHA *( ALPHA / DIGIT / "+" / "-" / "." ).
func (r *RuleSet) Scheme() grammar.Rule[grammar.Span] { return r.scheme }

// SchemePart is scheme ":", the result excludes the colon.
func (r *RuleSet) SchemePart() grammar.Rule[grammar.Span] { return r.schemePart }

// OptionalSchemePart is [ scheme ":" ], the first alternative of URI-reference.
// A failed scheme rolls back to the start of the input.
func (r *RuleSet) OptionalSchemePart() grammar.Rule[grammar.Opt[grammar.Span]] { return r.optScheme }

// Userinfo must be applied to a span that ends right before the '@'.
func (r *RuleSet) Userinfo() grammar.Rule[grammar.Span] { return r.userinfo }

// Host is IP-literal / IPv4address / reg-name.
func (r *RuleSet) Host() grammar.Rule[Host] { return r.host }

// Port is *DIGIT.
func (r *RuleSet) Port() grammar.Rule[grammar.Span] { return r.port }

// Authority is [ userinfo "@" ] host [ ":" port ].
func (r *RuleSet) Authority() grammar.Rule[Authority] { return r.authority }

// PathAbempty is *( "/" segment ).
func (r *RuleSet) PathAbempty() grammar.Rule[Path] { return r.pathAbempty }

// PathRootless covers path-absolute, path-rootless and path-empty.
func (r *RuleSet) PathRootless() grammar.Rule[Path] { return r.pathRootless }

// PathNoscheme covers path-absolute, path-noscheme and path-empty.
func (r *RuleSet) PathNoscheme() grammar.Rule[Path] { return r.pathNoscheme }

// AbsolutePath is 1*( "/" segment ), the path of the origin-form.
func (r *RuleSet) AbsolutePath() grammar.Rule[Path] { return r.absolutePath }

// HierPart is "//" authority path-abempty / path-absolute / path-rootless / path-empty.
func (r *RuleSet) HierPart() grammar.Rule[HierPart] { return r.hierPart }

// RelativePart is "//" authority path-abempty / path-absolute / path-noscheme / path-empty.
func (r *RuleSet) RelativePart() grammar.Rule[HierPart] { return r.relativePart }

// Query is *( pchar / "/" / "?" ) followed by '#' or the end.
func (r *RuleSet) Query() grammar.Rule[Query] { return r.query }

// QueryPart is [ "?" query ].
func (r *RuleSet) QueryPart() grammar.Rule[grammar.Opt[Query]] { return r.queryPart }

// Fragment is *( pchar / "/" / "?" ) up to the end.
func (r *RuleSet) Fragment() grammar.Rule[grammar.Span] { return r.fragment }

// FragmentPart is [ "#" fragment ].
func (r *RuleSet) FragmentPart() grammar.Rule[grammar.Opt[grammar.Span]] { return r.fragmentPart }

func parseScheme(s string, pos int) (grammar.Span, int, error) {
	if pos >= len(s) {
		return grammar.Span{}, pos, grammar.Fail(grammar.ErrUnexpectedEnd, pos)
	}
	if !grammar.Alpha.Contains(s[pos]) {
		return grammar.Span{}, pos, grammar.Fail(grammar.ErrInvalidScheme, pos)
	}
	it := grammar.SchemeChars.Find(s, pos+1)
	return grammar.SpanOf(pos, it), it, nil
}

func (r *RuleSet) parseUserinfo(s string, pos int) (grammar.Span, int, error) {
	it, err := grammar.Scan(s, pos, grammar.UserinfoChars, r.ext)
	if err != nil {
		return grammar.Span{}, pos, err //errtrace:skip
	}
	if it < len(s) {
		return grammar.Span{}, pos, grammar.Fail(grammar.ErrInvalidUserinfo, it)
	}
	return grammar.SpanOf(pos, it), it, nil
}

func (r *RuleSet) parseHost(s string, pos int) (Host, int, error) {
	if pos < len(s) && s[pos] == '[' {
		end := strings.IndexByte(s[pos:], ']')
		if end < 0 {
			return Host{}, pos, grammar.Fail(grammar.ErrUnexpectedEnd, len(s))
		}
		end += pos
		addr := s[pos+1 : end]
		kind, op := HostIPv6, abnfIPv6
		if len(addr) > 0 && (addr[0] == 'v' || addr[0] == 'V') {
			kind, op = HostIPvFuture, abnfIPvFuture
		}
		if n, ok := match(op, addr); !ok {
			return Host{}, pos, grammar.Fail(grammar.ErrInvalidHost, pos+1+n)
		}
		return Host{Kind: kind, Span: grammar.SpanOf(pos, end+1)}, end + 1, nil
	}

	it, err := grammar.Scan(s, pos, grammar.RegNameChars, r.ext)
	if err != nil {
		return Host{}, pos, err //errtrace:skip
	}
	kind := HostName
	if isIPv4(s[pos:it]) {
		kind = HostIPv4
	}
	return Host{Kind: kind, Span: grammar.SpanOf(pos, it)}, it, nil
}

// isIPv4 is the allocation free twin of [IsIPv4].
func isIPv4(s string) bool {
	octets := 0
	for i := 0; ; {
		j, v := i, 0
		for j < len(s) && j-i < 3 && grammar.Digit.Contains(s[j]) {
			v = v*10 + int(s[j]-'0')
			j++
		}
		if n := j - i; n == 0 || v > 255 || n > 1 && s[i] == '0' {
			return false
		}
		octets++
		if j == len(s) {
			return octets == 4
		}
		if s[j] != '.' || octets == 4 {
			return false
		}
		i = j + 1
	}
}

func authorityEnd(s string, pos int) int {
	for i := pos; i < len(s); i++ {
		switch s[i] {
		case '/', '?', '#':
			return i
		}
	}
	return len(s)
}

func (r *RuleSet) parseAuthority(s string, pos int) (Authority, int, error) {
	end := authorityEnd(s, pos)
	as := s[:end]
	a := Authority{Span: grammar.SpanOf(pos, end)}

	it := pos
	if at := strings.IndexByte(as[pos:], '@'); at >= 0 {
		ui, _, err := grammar.Parse(as[:pos+at], it, r.userinfo)
		if err != nil {
			return Authority{}, pos, err //errtrace:skip
		}
		a.Userinfo = grammar.Some(ui)
		it = pos + at + 1
	}

	var err error
	if a.Host, it, err = grammar.Parse(as, it, r.host); err != nil {
		return Authority{}, pos, err //errtrace:skip
	}
	if a.Port, it, err = grammar.Parse(as, it, r.portPart); err != nil {
		return Authority{}, pos, err //errtrace:skip
	}
	if it < end {
		switch {
		case as[it] == '@':
			return Authority{}, pos, grammar.Fail(grammar.ErrInvalidAuthority, it)
		case a.Port.OK:
			return Authority{}, pos, grammar.Fail(grammar.ErrInvalidPort, it)
		default:
			return Authority{}, pos, grammar.Fail(grammar.ErrInvalidHost, it)
		}
	}
	return a, end, nil
}

func segmentCount(p string, slashes int) int {
	switch {
	case p == "" || p == "/":
		return 0
	case p[0] == '/':
		return slashes
	default:
		return slashes + 1
	}
}

// parsePath scans segments separated by '/' up to '?', '#' or the end.
// With noscheme set the first segment of a relative path must not contain ':'.
func (r *RuleSet) parsePath(s string, pos int, noscheme bool) (Path, int, error) {
	var (
		it      = pos
		slashes int
		err     error
	)
	if noscheme && (it == len(s) || s[it] != '/') {
		if it, err = grammar.Scan(s, it, grammar.SegmentNCChars, r.ext); err != nil {
			return Path{}, pos, err //errtrace:skip
		}
		if it < len(s) && s[it] == ':' {
			return Path{}, pos, grammar.Fail(grammar.ErrInvalidPath, it)
		}
	}
	for {
		if it, err = grammar.Scan(s, it, grammar.PChars, r.ext); err != nil {
			return Path{}, pos, err //errtrace:skip
		}
		if it < len(s) && s[it] == '/' {
			slashes++
			it++
			continue
		}
		break
	}
	if it < len(s) && s[it] != '?' && s[it] != '#' {
		return Path{}, pos, grammar.Fail(grammar.ErrInvalidPath, it)
	}
	return Path{Span: grammar.SpanOf(pos, it), SegmentCount: segmentCount(s[pos:it], slashes)}, it, nil
}

func (r *RuleSet) parsePathAbempty(s string, pos int) (Path, int, error) {
	if pos < len(s) && s[pos] != '/' && s[pos] != '?' && s[pos] != '#' {
		return Path{}, pos, grammar.Fail(grammar.ErrInvalidPath, pos)
	}
	return r.parsePath(s, pos, false) //errtrace:skip
}

func (r *RuleSet) parseAbsolutePath(s string, pos int) (Path, int, error) {
	if pos >= len(s) {
		return Path{}, pos, grammar.Fail(grammar.ErrUnexpectedEnd, pos)
	}
	if s[pos] != '/' {
		return Path{}, pos, grammar.Fail(grammar.ErrInvalidPath, pos)
	}
	return r.parsePath(s, pos, false) //errtrace:skip
}

func (r *RuleSet) parseHierPart(s string, pos int, path grammar.Rule[Path]) (HierPart, int, error) {
	if strings.HasPrefix(s[pos:], "//") {
		ap, it, err := grammar.Parse(s, pos+2, r.authAndPath)
		if err != nil {
			return HierPart{}, pos, err //errtrace:skip
		}
		return HierPart{HasAuthority: true, Authority: ap.First, Path: ap.Second}, it, nil
	}

	p, it, err := grammar.Parse(s, pos, path)
	if err != nil {
		return HierPart{}, pos, err //errtrace:skip
	}
	return HierPart{Path: p}, it, nil
}

func (r *RuleSet) parseQuery(s string, pos int) (Query, int, error) {
	it, err := grammar.Scan(s, pos, grammar.QueryChars, r.queryExt)
	if err != nil {
		return Query{}, pos, err //errtrace:skip
	}
	if it < len(s) && s[it] != '#' {
		return Query{}, pos, grammar.Fail(grammar.ErrInvalidQuery, it)
	}
	q := Query{Span: grammar.SpanOf(pos, it)}
	if it > pos {
		q.Count = strings.Count(s[pos:it], "&") + 1
	}
	return q, it, nil
}

func (r *RuleSet) parseFragment(s string, pos int) (grammar.Span, int, error) {
	it, err := grammar.Scan(s, pos, grammar.FragmentChars, r.ext)
	if err != nil {
		return grammar.Span{}, pos, err //errtrace:skip
	}
	if it < len(s) {
		return grammar.Span{}, pos, grammar.Fail(grammar.ErrInvalidFragment, it)
	}
	return grammar.SpanOf(pos, it), it, nil
}
