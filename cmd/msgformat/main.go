package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	sub := os.Args[1]
	args := os.Args[2:]

	if sub == "help" || sub == "-h" || sub == "--help" {
		usage()
		os.Exit(0)
	}

	env, err := loadEnvConfig()
	if err != nil {
		fatal(err)
	}
	logger, err := env.logger(os.Stderr)
	if err != nil {
		fatal(err)
	}

	switch sub {
	case "render":
		cfg, e := parseRenderFlags(args, env)
		if e != nil {
			err = e
			break
		}
		engine := env.engine(logger)
		err = runRender(os.Stdout, engine, cfg)
		engine.Close()
	case "check":
		cfg, e := parseCheckFlags(args, env)
		if e != nil {
			err = e
			break
		}
		err = runCheck(os.Stdout, logger, cfg)
	case "extract":
		cfg, e := parseExtractFlags(args, env)
		if e != nil {
			err = e
			break
		}
		err = runExtract(os.Stdout, cfg)
	case "merge":
		cfg, e := parseMergeFlags(args)
		if e != nil {
			err = e
			break
		}
		err = runMerge(logger, cfg)
	default:
		fmt.Fprintf(os.Stderr, "msgformat: unknown subcommand %q\n", sub)
		usage()
		os.Exit(1)
	}
	if err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "msgformat: %v\n", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `msgformat - render and maintain ICU MessageFormat catalogs

usage: msgformat <command> [options] [args]

commands:
  render     Render one pattern with name=value arguments.
  check      Parse every pattern of the given YAML bundles and report errors.
  extract    Discover translation keys referenced from Go code.
  merge      Produce translate.<lang>.yaml files from a source bundle.

environment:
  MSGFORMAT_LOCALE      default locale (en)
  MSGFORMAT_CACHE_SIZE  parsed pattern cache size (1000)
  MSGFORMAT_BUNDLES     comma-separated bundle globs used by check and extract
  MSGFORMAT_LOG_LEVEL   debug, info, warn or error (warn)

Use 'msgformat <command> -h' for command-specific flags.
`)
}
