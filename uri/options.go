package uri

import (
	"log/slog"

	"braces.dev/errtrace"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/grammar/rfc3986"
	"github.com/ghettovoice/gouri/internal/log"
)

// Grammar selects the top-level production used by [Parse].
type Grammar uint8

const (
	// GrammarURIReference is URI / relative-ref.
	GrammarURIReference Grammar = iota
	// GrammarURI is scheme ":" hier-part [ "?" query ] [ "#" fragment ].
	GrammarURI
	// GrammarAbsoluteURI is scheme ":" hier-part [ "?" query ].
	GrammarAbsoluteURI
	// GrammarRelativeRef is relative-part [ "?" query ] [ "#" fragment ].
	GrammarRelativeRef
	// GrammarOriginForm is absolute-path [ "?" query ].
	GrammarOriginForm
	// GrammarAuthority is the authority-form, [ userinfo "@" ] host [ ":" port ].
	GrammarAuthority
)

var grammarNames = [...]string{
	GrammarURIReference: "uri-reference",
	GrammarURI:          "uri",
	GrammarAbsoluteURI:  "absolute-uri",
	GrammarRelativeRef:  "relative-ref",
	GrammarOriginForm:   "origin-form",
	GrammarAuthority:    "authority",
}

func (g Grammar) String() string {
	if int(g) < len(grammarNames) {
		return grammarNames[g]
	}
	return "unknown"
}

// IsValid reports whether g is a known grammar.
func (g Grammar) IsValid() bool { return int(g) < len(grammarNames) }

// ParseGrammar returns the grammar with the given name, as returned by [Grammar.String].
func ParseGrammar(name string) (Grammar, error) {
	for g, n := range grammarNames {
		if n == name {
			return Grammar(g), nil
		}
	}
	return 0, errtrace.Wrap(errorutil.NewInvalidArgumentError("unknown grammar %q", name))
}

// ParseOptions configures parsing.
// A nil *ParseOptions is valid and selects RFC 3986 rules without tracing.
type ParseOptions struct {
	// IRI accepts the non-ASCII characters of RFC 3987 in userinfo,
	// host, path, query and fragment.
	IRI bool
	// Logger receives a debug record for every failed parse.
	// If nil, the [log.Default] logger is used.
	Logger *slog.Logger
	// Observer is notified about every state entered by the parser.
	Observer Observer
}

func (o *ParseOptions) rules() *rfc3986.RuleSet {
	if o == nil || !o.IRI {
		return rfc3986.Rules()
	}
	return rfc3986.IRIRules()
}

func (o *ParseOptions) log() *slog.Logger {
	if o == nil || o.Logger == nil {
		return log.Default()
	}
	return o.Logger
}

func (o *ParseOptions) observer() Observer {
	if o == nil {
		return nil
	}
	return o.Observer
}
