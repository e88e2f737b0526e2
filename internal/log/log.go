// Package log provides logging utilities.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"time"

	"github.com/golang-cz/devslog"
	"github.com/phsym/console-slog"
	slogformatter "github.com/samber/slog-formatter"

	"github.com/ghettovoice/gouri/internal/constraints"
	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/util"
)

var newHandler = slogformatter.NewFormatterHandler(
	slogformatter.ErrorFormatter("error"),
	slogformatter.FormatByType(func(e *grammar.Error) slog.Value {
		if e == nil {
			return slog.Value{}
		}
		return slog.GroupValue(
			slog.String("kind", string(e.Kind)),
			slog.Int("offset", e.Offset),
		)
	}),
)

// Console returns a human friendly logger writing to w.
func Console(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		console.NewHandler(w, &console.HandlerOptions{
			AddSource:  true,
			Level:      level,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Dev returns a developer logger writing to w.
func Dev(w io.Writer, level slog.Leveler) *slog.Logger {
	return slog.New(newHandler(
		devslog.NewHandler(w, &devslog.Options{
			HandlerOptions: &slog.HandlerOptions{
				AddSource: true,
				Level:     level,
			},
			SortKeys:   true,
			TimeFormat: time.RFC3339Nano,
		}),
	))
}

// Def is a console logger writing debug records to stderr.
var Def = Console(os.Stderr, slog.LevelDebug)

type noopHandler struct{}

func (noopHandler) Enabled(context.Context, slog.Level) bool { return false }

func (noopHandler) Handle(context.Context, slog.Record) error { return nil }

func (h noopHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h noopHandler) WithGroup(string) slog.Handler { return h }

// Noop is a noop logger.
var Noop = slog.New(noopHandler{})

var defLog atomic.Pointer[slog.Logger]

func init() {
	defLog.Store(Noop)
}

// Default returns the package level logger used when no logger is configured.
// It is the [Noop] logger until [SetDefault] is called.
func Default() *slog.Logger { return defLog.Load() }

// SetDefault replaces the package level logger. A nil logger restores [Noop].
func SetDefault(l *slog.Logger) {
	if l == nil {
		l = Noop
	}
	defLog.Store(l)
}

type fmtValue struct {
	v        any
	goSyntax bool
}

func (v fmtValue) LogValue() slog.Value {
	if v.goSyntax {
		return slog.StringValue(fmt.Sprintf("%#v", v.v))
	}
	return slog.StringValue(fmt.Sprintf("%+v", v.v))
}

// FmtValue returns a value logger that formats values using '%+v' or '%#v' syntax.
func FmtValue(v any, goSyntax bool) slog.LogValuer { return fmtValue{v, goSyntax} }

// MaxStringLen is the number of runes kept by [StringValue].
const MaxStringLen = 256

type stringValue[T constraints.Byteseq] struct {
	v T
}

func (v stringValue[T]) LogValue() slog.Value {
	return slog.StringValue(util.Ellipsis(string(v.v), MaxStringLen))
}

// StringValue returns a value logger that formats v as string
// cut after [MaxStringLen] runes.
func StringValue[T constraints.Byteseq](v T) slog.LogValuer { return stringValue[T]{v} }
