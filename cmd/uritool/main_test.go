package main

import (
	"bytes"
	"context"
	"flag"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/uri"
)

func newConfig(t *testing.T, flags ...string) *config {
	t.Helper()

	fs := flag.NewFlagSet("uritool", flag.ContinueOnError)
	cfg := registerFlags(fs)
	if err := fs.Parse(flags); err != nil {
		t.Fatalf("fs.Parse(%q) error = %v, want nil", flags, err)
	}
	return cfg
}

func TestRun(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		flags []string
		args  []string
		stdin string
		want  string
	}{
		{
			"segments", nil,
			[]string{"segments", "/a/b%20c"}, "",
			"\"a\"\n\"b c\"\n",
		},
		{
			"params with plus", []string{"-plus"},
			[]string{"params", "?q=a+b&flag"}, "",
			"\"q\" = \"a b\"\n\"flag\"\n",
		},
		{
			"encode", []string{"-set", "query"},
			[]string{"encode", "a b#c"}, "",
			"a%20b%23c\n",
		},
		{
			"decode from stdin", nil,
			[]string{"decode"}, "a%20b\nc%2Fd\n",
			"a b\nc/d\n",
		},
		{
			"parse", []string{"-grammar", "uri"},
			[]string{"parse", "http://h:8080/p?x#f"}, "",
			"input    http://h:8080/p?x#f\n" +
				"scheme   http\n" +
				"host     h (name)\n" +
				"port     8080\n" +
				"path     /p (1 segments)\n" +
				"query    x  (1 params)\n" +
				"fragment f\n",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			err := run(context.Background(), newConfig(t, c.flags...), c.args, strings.NewReader(c.stdin), &out, &errOut)
			if err != nil {
				t.Fatalf("run(%q) error = %v, want nil", c.args, err)
			}
			if diff := cmp.Diff(out.String(), c.want); diff != "" {
				t.Errorf("run(%q) output = %q, want %q\ndiff (-got +want):\n%v", c.args, out.String(), c.want, diff)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		flags      []string
		args       []string
		wantArgErr bool
		wantGram   bool
	}{
		{"no command", nil, nil, true, false},
		{"unknown command", nil, []string{"frobnicate"}, true, false},
		{"unknown grammar", []string{"-grammar", "sip"}, []string{"parse", "x"}, true, false},
		{"unknown char set", []string{"-set", "host"}, []string{"encode", "x"}, true, false},
		{"bad input", []string{"-grammar", "uri"}, []string{"parse", "http://ok/", "http://ex ample.com/"}, false, true},
		{"bad escape", nil, []string{"decode", "%zz"}, false, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			err := run(context.Background(), newConfig(t, c.flags...), c.args, strings.NewReader(""), &out, &errOut)
			if err == nil {
				t.Fatalf("run(%q) error = nil, want error", c.args)
			}
			if got := errorutil.IsInvalidArgumentErr(err); got != c.wantArgErr {
				t.Errorf("errorutil.IsInvalidArgumentErr(%v) = %v, want %v", err, got, c.wantArgErr)
			}
			if got := uri.IsGrammarError(err); got != c.wantGram {
				t.Errorf("uri.IsGrammarError(%v) = %v, want %v", err, got, c.wantGram)
			}
		})
	}
}

func TestRun_Verbose(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer
	err := run(context.Background(), newConfig(t, "-v", "-dev"), []string{"graph"}, strings.NewReader(""), &out, &errOut)
	if err != nil {
		t.Fatalf("run(graph) error = %v, want nil", err)
	}
	if !strings.Contains(out.String(), "digraph") {
		t.Errorf("run(graph) output = %q, want a DOT graph", out.String())
	}

	out.Reset()
	errOut.Reset()
	err = run(context.Background(), newConfig(t, "-v"), []string{"segments", "/a"}, strings.NewReader(""), &out, &errOut)
	if err != nil {
		t.Fatalf("run(segments) error = %v, want nil", err)
	}
	if !strings.Contains(errOut.String(), "parse states") {
		t.Errorf("log output = %q, want parse states", errOut.String())
	}
}
