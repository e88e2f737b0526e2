package uri

import (
	"context"
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
	"github.com/ghettovoice/gouri/internal/log"
)

// Parse parses s with the grammar g.
//
// A string input is borrowed: the URL shares its memory.
// A byte slice input is copied once, the caller may reuse it after the call.
//
// On failure Parse returns a nil URL and an error wrapping [*Error].
func Parse[T constraints.Byteseq](s T, g Grammar, opts *ParseOptions) (*URL, error) {
	if !g.IsValid() {
		return nil, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown grammar %d", g))
	}

	p := parser{
		g:     g,
		rules: opts.rules(),
		obs:   opts.observer(),
	}
	u, _, err := grammar.Parse(string(s), 0, grammar.Rule[*URL](&p))
	if err != nil {
		if l := opts.log(); l.Enabled(context.Background(), slog.LevelDebug) {
			l.LogAttrs(context.Background(), slog.LevelDebug, "failed to parse URI",
				slog.String("grammar", g.String()),
				slog.Any("input", log.StringValue(s)),
				slog.Any("error", err),
			)
		}
		return nil, errtrace.Wrap(err)
	}
	return u, nil
}

// ParseURI parses s as scheme ":" hier-part [ "?" query ] [ "#" fragment ].
func ParseURI[T constraints.Byteseq](s T) (*URL, error) {
	return errtrace.Wrap2(Parse(s, GrammarURI, nil))
}

// ParseAbsoluteURI parses s as scheme ":" hier-part [ "?" query ].
func ParseAbsoluteURI[T constraints.Byteseq](s T) (*URL, error) {
	return errtrace.Wrap2(Parse(s, GrammarAbsoluteURI, nil))
}

// ParseRelativeRef parses s as relative-part [ "?" query ] [ "#" fragment ].
func ParseRelativeRef[T constraints.Byteseq](s T) (*URL, error) {
	return errtrace.Wrap2(Parse(s, GrammarRelativeRef, nil))
}

// ParseURIReference parses s as a URI, or as a relative reference when s has no scheme.
func ParseURIReference[T constraints.Byteseq](s T) (*URL, error) {
	return errtrace.Wrap2(Parse(s, GrammarURIReference, nil))
}

// ParseOriginForm parses s as absolute-path [ "?" query ], the request target of most HTTP requests.
func ParseOriginForm[T constraints.Byteseq](s T) (*URL, error) {
	return errtrace.Wrap2(Parse(s, GrammarOriginForm, nil))
}

// ParseAuthority parses s as [ userinfo "@" ] host [ ":" port ], the request target of CONNECT.
func ParseAuthority[T constraints.Byteseq](s T) (*URL, error) {
	return errtrace.Wrap2(Parse(s, GrammarAuthority, nil))
}

// parser is the top-level production selected by a grammar.
// It folds every succeeded sub-rule into a builder and constructs
// the URL only when the whole production has matched.
type parser struct {
	g     Grammar
	rules *rfc3986.RuleSet
	obs   Observer
}

func (p *parser) enter(s State, offset int) {
	if p.obs != nil {
		p.obs.Enter(s, offset)
	}
}

func (p *parser) Parse(s string, pos int) (*URL, int, error) {
	p.enter(StateStart, pos)
	u, it, err := p.parse(s, pos)
	if err != nil {
		off := pos
		if o, ok := ErrorOffset(err); ok {
			off = o
		}
		p.enter(StateFailed, off)
		return nil, pos, err //errtrace:skip
	}
	p.enter(StateDone, it)
	return u, it, nil
}

func (p *parser) parse(s string, pos int) (*URL, int, error) {
	b := newBuilder(s)
	it := pos

	if p.g == GrammarAuthority {
		p.enter(StateAuthorityAndPath, it)
		return p.parseAuthorityForm(&b, s, it) //errtrace:skip
	}

	var (
		hier rfc3986.HierPart
		err  error
	)
	switch p.g {
	case GrammarURI, GrammarAbsoluteURI:
		p.enter(StateScheme, it)
		var sch grammar.Span
		if sch, it, err = grammar.Parse(s, it, p.rules.SchemePart()); err != nil {
			return nil, pos, err //errtrace:skip
		}
		b.applyScheme(sch)
		p.enter(StateAuthorityAndPath, it)
		hier, it, err = grammar.Parse(s, it, p.rules.HierPart())
	case GrammarURIReference:
		sch, _, _ := grammar.Parse(s, it, p.rules.OptionalSchemePart())
		if sch.OK {
			p.enter(StateScheme, it)
			b.applyScheme(sch.Value)
			it = sch.Value.End() + 1
			p.enter(StateAuthorityAndPath, it)
			hier, it, err = grammar.Parse(s, it, p.rules.HierPart())
		} else {
			p.enter(StateAuthorityAndPath, it)
			hier, it, err = grammar.Parse(s, it, p.rules.RelativePart())
		}
	case GrammarRelativeRef:
		p.enter(StateAuthorityAndPath, it)
		hier, it, err = grammar.Parse(s, it, p.rules.RelativePart())
	case GrammarOriginForm:
		p.enter(StateAuthorityAndPath, it)
		hier.Path, it, err = grammar.Parse(s, it, p.rules.AbsolutePath())
	}
	if err != nil {
		return nil, pos, err //errtrace:skip
	}
	if hier.HasAuthority {
		b.applyAuthority(hier.Authority)
	}
	b.applyPath(hier.Path)

	if it < len(s) && s[it] == '?' {
		p.enter(StateQuery, it)
		var q grammar.Opt[rfc3986.Query]
		if q, it, err = grammar.Parse(s, it, p.rules.QueryPart()); err != nil {
			return nil, pos, err //errtrace:skip
		}
		b.applyQuery(q.Value)
	}

	if it < len(s) && s[it] == '#' {
		if p.g == GrammarAbsoluteURI || p.g == GrammarOriginForm {
			return nil, pos, grammar.Fail(grammar.ErrInvalidFragment, it)
		}
		p.enter(StateFragment, it)
		var f grammar.Opt[grammar.Span]
		if f, it, err = grammar.Parse(s, it, p.rules.FragmentPart()); err != nil {
			return nil, pos, err //errtrace:skip
		}
		b.applyFragment(f.Value)
	}

	u, err := b.construct()
	if err != nil {
		return nil, pos, err //errtrace:skip
	}
	return u, it, nil
}

func (p *parser) parseAuthorityForm(b *builder, s string, pos int) (*URL, int, error) {
	if pos >= len(s) {
		return nil, pos, grammar.Fail(grammar.ErrUnexpectedEnd, pos)
	}
	a, it, err := grammar.Parse(s, pos, p.rules.Authority())
	if err != nil {
		return nil, pos, err //errtrace:skip
	}
	if a.Host.Span.Length == 0 {
		return nil, pos, grammar.Fail(grammar.ErrInvalidHost, a.Host.Span.Offset)
	}
	if it < len(s) {
		return nil, pos, grammar.Fail(grammar.ErrInvalidAuthority, it)
	}
	b.applyAuthority(a)
	u, err := b.construct()
	if err != nil {
		return nil, pos, err //errtrace:skip
	}
	return u, it, nil
}
