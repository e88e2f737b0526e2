// Program uritool parses URIs and URI references from the command line.
//
// Usage:
//
//	uritool [flags] parse|segments|params [input...]
//	uritool [flags] encode|decode [text...]
//	uritool graph
//
// Inputs are read line by line from stdin when none are given.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/ghettovoice/gouri/internal/errorutil"
	"github.com/ghettovoice/gouri/internal/log"
	"github.com/ghettovoice/gouri/uri"
)

type config struct {
	grammar string
	iri     bool
	dev     bool
	verbose bool
	plus    bool
	set     string
}

func registerFlags(fs *flag.FlagSet) *config {
	cfg := &config{}
	fs.StringVar(&cfg.grammar, "grammar", uri.GrammarURIReference.String(),
		"top-level grammar: uri-reference, uri, absolute-uri, relative-ref, origin-form or authority")
	fs.BoolVar(&cfg.iri, "iri", false, "accept RFC 3987 internationalized characters")
	fs.BoolVar(&cfg.dev, "dev", false, "use the developer log format")
	fs.BoolVar(&cfg.verbose, "v", false, "log parse states and results")
	fs.BoolVar(&cfg.plus, "plus", false, "decode '+' as space in params and decode")
	fs.StringVar(&cfg.set, "set", "segment", "characters left as is by encode: segment, path, query, param, fragment or userinfo")
	return cfg
}

var charSets = map[string]uri.CharSet{
	"segment":  uri.SegmentChars,
	"path":     uri.PathChars,
	"query":    uri.QueryChars,
	"param":    uri.ParamChars,
	"fragment": uri.FragmentChars,
	"userinfo": uri.UserinfoChars,
}

func main() {
	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	cfg := registerFlags(fs)
	fs.Parse(os.Args[1:]) //nolint:errcheck

	if err := run(context.Background(), cfg, fs.Args(), os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "uritool: %v\n", err)
		if errorutil.IsInvalidArgumentErr(err) {
			fs.Usage()
			os.Exit(2)
		}
		os.Exit(1)
	}
}

type app struct {
	cfg    *config
	opts   *uri.ParseOptions
	g      uri.Grammar
	out    io.Writer
	logger *slog.Logger
}

func run(ctx context.Context, cfg *config, args []string, in io.Reader, out, errOut io.Writer) error {
	if len(args) == 0 {
		return errorutil.NewInvalidArgumentError("missing command")
	}
	g, err := uri.ParseGrammar(cfg.grammar)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := log.Console(errOut, level)
	if cfg.dev {
		logger = log.Dev(errOut, level)
	}
	logger.DebugContext(ctx, "starting", slog.Any("config", log.FmtValue(*cfg, false)))

	a := &app{
		cfg:    cfg,
		opts:   &uri.ParseOptions{IRI: cfg.iri, Logger: logger},
		g:      g,
		out:    out,
		logger: logger,
	}

	cmd, inputs := args[0], args[1:]
	var handle func(context.Context, string) error
	switch cmd {
	case "parse":
		handle = a.parse
	case "segments":
		handle = a.segments
	case "params":
		handle = a.params
	case "encode":
		cs, ok := charSets[cfg.set]
		if !ok {
			return errorutil.NewInvalidArgumentError("unknown char set %q", cfg.set)
		}
		handle = func(_ context.Context, s string) error {
			_, err := fmt.Fprintln(out, uri.Encode(s, cs))
			return err
		}
	case "decode":
		handle = func(_ context.Context, s string) error {
			d, err := uri.DecodeWith(s, uri.DecodeOptions{SpaceAsPlus: cfg.plus})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, d)
			return err
		}
	case "graph":
		_, err := fmt.Fprintln(out, uri.StateGraph())
		return err
	default:
		return errorutil.NewInvalidArgumentError("unknown command %q", cmd)
	}

	var errs []error
	each := func(s string) {
		if err := handle(ctx, s); err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", s, err))
		}
	}
	if len(inputs) > 0 {
		for _, s := range inputs {
			each(s)
		}
	} else {
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			each(sc.Text())
		}
		if err := sc.Err(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errorutil.JoinPrefix(cmd+" failed:", errs...)
	}
	return nil
}

func (a *app) parseURL(ctx context.Context, s string) (*uri.URL, error) {
	opts := *a.opts
	var tr *uri.Tracer
	if a.cfg.verbose {
		tr = uri.NewTracer()
		opts.Observer = tr
	}
	u, err := uri.Parse(s, a.g, &opts)
	if tr != nil {
		a.logger.DebugContext(ctx, "parse states",
			slog.String("input", s),
			slog.Any("steps", tr.Steps()),
		)
	}
	if err != nil {
		return nil, err
	}
	a.logger.DebugContext(ctx, "parsed", slog.String("grammar", a.g.String()), slog.Any("url", u))
	return u, nil
}

func (a *app) parse(ctx context.Context, s string) error {
	u, err := a.parseURL(ctx, s)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 1, ' ', 0)
	fmt.Fprintf(tw, "input\t%s\n", u.Buffer())
	if u.HasScheme() {
		fmt.Fprintf(tw, "scheme\t%s\n", u.Scheme())
	}
	if u.HasAuthority() {
		if u.HasUserinfo() {
			fmt.Fprintf(tw, "userinfo\t%s\n", u.Userinfo())
		}
		fmt.Fprintf(tw, "host\t%s\t(%s)\n", u.Host(), u.HostKind())
		if u.HasPort() {
			fmt.Fprintf(tw, "port\t%s\n", u.Port())
		}
	}
	if u.HasPath() {
		fmt.Fprintf(tw, "path\t%s\t(%d segments)\n", u.Path(), u.SegmentCount())
	}
	if u.HasQuery() {
		fmt.Fprintf(tw, "query\t%s\t(%d params)\n", u.Query(), u.ParamCount())
	}
	if u.HasFragment() {
		fmt.Fprintf(tw, "fragment\t%s\n", u.Fragment())
	}
	return tw.Flush()
}

func (a *app) segments(ctx context.Context, s string) error {
	u, err := a.parseURL(ctx, s)
	if err != nil {
		return err
	}
	for seg := range u.Segments().All() {
		if _, err := fmt.Fprintf(a.out, "%q\n", seg); err != nil {
			return err
		}
	}
	return nil
}

func (a *app) params(ctx context.Context, s string) error {
	u, err := a.parseURL(ctx, s)
	if err != nil {
		return err
	}
	params := u.Params()
	if a.cfg.plus {
		params = params.SpaceAsPlus()
	}
	for p := range params.All() {
		if !p.HasValue {
			_, err = fmt.Fprintf(a.out, "%q\n", p.Key)
		} else {
			_, err = fmt.Fprintf(a.out, "%q = %q\n", p.Key, p.Value)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
