package uri

import (
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
)

// builder assembles the components of one parse.
// It is only fed by the parser after a sub-rule has fully succeeded,
// so the apply methods trust their input.
type builder struct {
	s        string
	comps    [numComponents]Span
	auth     Span
	hostKind HostKind
	nseg     int
	nparam   int
}

func newBuilder(s string) builder { return builder{s: s} }

func present(sp grammar.Span) Span {
	return Span{Present: true, Offset: sp.Offset, Length: sp.Length}
}

func (b *builder) applyScheme(sp grammar.Span) {
	b.comps[ComponentScheme] = present(sp)
}

func (b *builder) applyAuthority(a rfc3986.Authority) {
	b.auth = present(a.Span)
	if a.Userinfo.OK {
		b.comps[ComponentUserinfo] = present(a.Userinfo.Value)
	}
	b.comps[ComponentHost] = present(a.Host.Span)
	b.hostKind = a.Host.Kind
	if a.Port.OK {
		b.comps[ComponentPort] = present(a.Port.Value)
	}
}

func (b *builder) applyPath(p rfc3986.Path) {
	b.comps[ComponentPath] = present(p.Span)
	b.nseg = p.SegmentCount
}

func (b *builder) applyQuery(q rfc3986.Query) {
	b.comps[ComponentQuery] = present(q.Span)
	b.nparam = q.Count
	if q.Span.Length == 0 {
		// "?" alone holds one empty pair
		b.nparam++
	}
}

func (b *builder) applyFragment(sp grammar.Span) {
	b.comps[ComponentFragment] = present(sp)
}

// construct checks that the components lie inside the buffer in document order
// without overlapping and freezes them into a URL.
func (b *builder) construct() (*URL, error) {
	end := 0
	for k := range numComponents {
		c := b.comps[k]
		if !c.Present {
			continue
		}
		if c.Offset < end || c.Length < 0 || c.End() > len(b.s) {
			return nil, grammar.Fail(grammar.ErrMalformedComponentOrder, c.Offset) //errtrace:skip
		}
		end = c.End()
	}
	if b.auth.Present {
		for _, k := range [...]Component{ComponentUserinfo, ComponentHost, ComponentPort} {
			c := b.comps[k]
			if c.Present && (c.Offset < b.auth.Offset || c.End() > b.auth.End()) {
				return nil, grammar.Fail(grammar.ErrMalformedComponentOrder, c.Offset) //errtrace:skip
			}
		}
		if p := b.comps[ComponentPath]; p.Present && p.Offset < b.auth.End() {
			return nil, grammar.Fail(grammar.ErrMalformedComponentOrder, p.Offset) //errtrace:skip
		}
	}
	return &URL{
		s:        b.s,
		comps:    b.comps,
		auth:     b.auth,
		hostKind: b.hostKind,
		nseg:     b.nseg,
		nparam:   b.nparam,
	}, nil
}
