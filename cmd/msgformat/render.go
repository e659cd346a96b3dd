package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/loopcontext/msgformat"
)

type renderConfig struct {
	locale  string
	pattern string
	params  msgformat.Params
}

func usageRender(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: msgformat render [options] [name=value ...]

Render parses -pattern and prints it formatted for -locale. Arguments are given as
name=value pairs; integers, decimals and RFC 3339 timestamps are converted, anything
else is passed as a string.

Flags:
`)
	fs.PrintDefaults()
}

// newRenderFlagSet registers the render flags on a fresh FlagSet bound to cfg.
func newRenderFlagSet(cfg *renderConfig, env *envConfig) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	fs.Usage = func() { usageRender(fs) }
	fs.StringVar(&cfg.locale, "locale", env.Locale, "Locale to render for (default from MSGFORMAT_LOCALE).")
	fs.StringVar(&cfg.pattern, "pattern", "", "MessageFormat pattern. Required.")
	return fs
}

func parseRenderFlags(args []string, env *envConfig) (*renderConfig, error) {
	var cfg renderConfig
	fs := newRenderFlagSet(&cfg, env)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.pattern == "" {
		return nil, fmt.Errorf("render: -pattern is required")
	}
	params, err := parseParams(fs.Args())
	if err != nil {
		return nil, err
	}
	cfg.params = params
	return &cfg, nil
}

func parseParams(args []string) (msgformat.Params, error) {
	params := make(msgformat.Params, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("render: argument %q must be name=value", arg)
		}
		params[name] = parseValue(raw)
	}
	return params, nil
}

func parseValue(raw string) interface{} {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t
	}
	return raw
}

func runRender(w io.Writer, engine *msgformat.Engine, cfg *renderConfig) error {
	out, err := engine.Format(cfg.pattern, cfg.params, cfg.locale)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}
