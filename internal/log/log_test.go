package log_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ghettovoice/gouri/internal/grammar"
	"github.com/ghettovoice/gouri/internal/log"
)

func TestConsole_GrammarError(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := log.Console(&buf, slog.LevelDebug)
	l.Debug("failed", slog.Any("cause", grammar.Fail(grammar.ErrInvalidPort, 12)))

	got := buf.String()
	for _, want := range []string{"failed", "invalid port", "12"} {
		if !strings.Contains(got, want) {
			t.Errorf("log output = %q, want it to contain %q", got, want)
		}
	}
}

func TestDev_Level(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := log.Dev(&buf, slog.LevelWarn)
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("l.Enabled(debug) = true, want false")
	}
	l.Warn("careful")
	if !strings.Contains(buf.String(), "careful") {
		t.Errorf("log output = %q, want it to contain %q", buf.String(), "careful")
	}
}

func TestDefault(t *testing.T) {
	if log.Default() != log.Noop {
		t.Fatal("log.Default() is not the noop logger")
	}
	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Error("log.Noop.Enabled(error) = true, want false")
	}

	l := slog.New(slog.DiscardHandler)
	log.SetDefault(l)
	t.Cleanup(func() { log.SetDefault(nil) })
	if log.Default() != l {
		t.Error("log.Default() did not return the logger passed to log.SetDefault")
	}
}

func TestStringValue(t *testing.T) {
	t.Parallel()

	if got, want := log.StringValue([]byte("http://h/")).LogValue().String(), "http://h/"; got != want {
		t.Errorf("StringValue().LogValue() = %q, want %q", got, want)
	}
	long := strings.Repeat("я", log.MaxStringLen+10)
	want := strings.Repeat("я", log.MaxStringLen) + "..."
	if got := log.StringValue(long).LogValue().String(); got != want {
		t.Errorf("StringValue(long).LogValue() has %d bytes, want %d", len(got), len(want))
	}
	if got, want := log.FmtValue(struct{ A int }{1}, false).LogValue().String(), "{A:1}"; got != want {
		t.Errorf("FmtValue().LogValue() = %q, want %q", got, want)
	}
}
