package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/caarlos0/env/v11"

	"github.com/loopcontext/msgformat"
	"github.com/loopcontext/msgformat/store"
)

// envConfig holds settings shared by every subcommand.
type envConfig struct {
	Locale    string   `env:"MSGFORMAT_LOCALE" envDefault:"en"`
	CacheSize int      `env:"MSGFORMAT_CACHE_SIZE" envDefault:"1000"`
	Bundles   []string `env:"MSGFORMAT_BUNDLES" envSeparator:","`
	LogLevel  string   `env:"MSGFORMAT_LOG_LEVEL" envDefault:"warn"`
}

func loadEnvConfig() (*envConfig, error) {
	return parseEnvConfig(env.Options{})
}

func parseEnvConfig(opts env.Options) (*envConfig, error) {
	var cfg envConfig
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	return &cfg, nil
}

func (c *envConfig) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid MSGFORMAT_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

// engine builds an Engine with every bundled plural rule installed.
func (c *envConfig) engine(logger *slog.Logger) *msgformat.Engine {
	rules := msgformat.NewRuleSet()
	rules.InstallAll()
	return msgformat.New(msgformat.Config{
		CacheSize:     c.CacheSize,
		Rules:         rules,
		DefaultLocale: store.NormalizeLocale(c.Locale),
		Logger:        logger,
	})
}
