package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/loopcontext/msgformat"
	"github.com/loopcontext/msgformat/store"
)

type checkConfig struct {
	globs []string
}

func usageCheck(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `usage: msgformat check [globs]

Check loads every YAML bundle matched by the globs (default MSGFORMAT_BUNDLES) and parses
each pattern. Problems are printed as "file locale key: error"; the command exits non-zero
when any bundle or pattern is invalid.
`)
}

func parseCheckFlags(args []string, env *envConfig) (*checkConfig, error) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	fs.Usage = func() { usageCheck(fs) }
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg := checkConfig{globs: fs.Args()}
	if len(cfg.globs) == 0 {
		cfg.globs = env.Bundles
	}
	if len(cfg.globs) == 0 {
		return nil, fmt.Errorf("check: no bundle globs given and MSGFORMAT_BUNDLES is empty")
	}
	return &cfg, nil
}

func runCheck(w io.Writer, logger *slog.Logger, cfg *checkConfig) error {
	paths, err := store.ExpandGlobs(cfg.globs)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("check: no bundles match %v", cfg.globs)
	}

	problems, patterns := 0, 0
	for _, path := range paths {
		bundle, err := store.ReadBundle(path)
		if err != nil {
			problems++
			fmt.Fprintf(w, "%s: %v\n", path, err)
			continue
		}
		locales := make([]string, 0, len(bundle))
		for locale := range bundle {
			locales = append(locales, locale)
		}
		sort.Strings(locales)

		for _, locale := range locales {
			keys := make([]string, 0, len(bundle[locale]))
			for key := range bundle[locale] {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			for _, key := range keys {
				pattern, ok := store.Found(bundle[locale][key]).Pattern()
				if !ok {
					problems++
					fmt.Fprintf(w, "%s %s %s: %v\n", path, locale, key, msgformat.ErrNotAPattern)
					continue
				}
				patterns++
				if _, err := msgformat.Parse(pattern); err != nil {
					problems++
					fmt.Fprintf(w, "%s %s %s: %v\n", path, locale, key, err)
				}
			}
		}
		logger.Debug("bundle checked", "path", path, "locales", len(locales))
	}

	logger.Info("check finished", "files", len(paths), "patterns", patterns, "problems", problems)
	if problems > 0 {
		return fmt.Errorf("check: %d problem(s) found", problems)
	}
	return nil
}
