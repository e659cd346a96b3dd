// Package msgformat parses, caches and renders ICU MessageFormat patterns.
//
// Patterns support simple arguments ({name}), number/date/time arguments
// ({n, number, integer}) and the plural, select and selectordinal
// constructs, with '' and '{...}' quoting:
//
//	engine := msgformat.New(msgformat.Config{})
//	defer engine.Close()
//	out, err := engine.Format("{count, plural, one {# item} other {# items}}",
//		msgformat.Params{"count": 3}, "en")
//	// out == "3 items"
package msgformat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Engine glues the pattern cache, the parser and the formatter together.
// It is safe for concurrent use.
type Engine struct {
	cfg       Config
	cache     *Cache[AST]
	formatter *Formatter
	monitor   *monitor
	logger    *slog.Logger
}

// New builds an Engine, filling in defaults for zero Config fields.
func New(cfg Config) *Engine {
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = DefaultCacheSize
	}
	if cfg.Localizer == nil {
		cfg.Localizer = NewLocalizer()
	}
	if cfg.Rules == nil {
		cfg.Rules = NewRuleSet()
	}
	if cfg.DefaultLocale == "" {
		cfg.DefaultLocale = "en"
	}
	if cfg.CtxLocaleKey == "" {
		cfg.CtxLocaleKey = "locale"
	}
	if cfg.ObserverBuffer <= 0 {
		cfg.ObserverBuffer = 1024
	}
	if cfg.StatsMaxKeys <= 0 {
		cfg.StatsMaxKeys = 512
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.NowFn == nil {
		cfg.NowFn = time.Now
	}

	return &Engine{
		cfg:       cfg,
		cache:     NewCache[AST](cfg.CacheSize),
		formatter: NewFormatter(cfg.Localizer, cfg.Rules),
		monitor:   newMonitor(cfg.Observer, cfg.ObserverBuffer, cfg.StatsMaxKeys),
		logger:    cfg.Logger,
	}
}

// Parse returns the AST for pattern, parsing it on the first request only.
func (e *Engine) Parse(pattern string) (AST, error) {
	ast, err := e.cache.Fetch(pattern, func() (AST, error) {
		return Parse(pattern)
	})
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			e.monitor.onParseError(pattern, perr)
		}
		return nil, err
	}
	return ast, nil
}

// Format renders pattern with params for locale.
func (e *Engine) Format(pattern string, params Params, locale string) (string, error) {
	ast, err := e.Parse(pattern)
	if err != nil {
		return "", err
	}
	out, err := e.formatter.Render(ast, params, locale)
	if err != nil {
		e.monitor.onRenderError(locale, err)
		return "", err
	}
	return out, nil
}

// FormatWithCtx is Format with the locale taken from ctx.
func (e *Engine) FormatWithCtx(ctx context.Context, pattern string, params Params) (string, error) {
	return e.Format(pattern, params, e.LocaleFromCtx(ctx))
}

// LocaleFromCtx returns the locale stored in ctx under the configured key, or
// the default locale. Both the typed ContextKey and a plain string key are honoured.
func (e *Engine) LocaleFromCtx(ctx context.Context) string {
	if ctx == nil {
		return e.cfg.DefaultLocale
	}
	if value := ctx.Value(e.cfg.CtxLocaleKey); value != nil {
		return fmt.Sprintf("%v", value)
	}
	if value := ctx.Value(string(e.cfg.CtxLocaleKey)); value != nil {
		return fmt.Sprintf("%v", value)
	}
	return e.cfg.DefaultLocale
}

// DefaultLocale returns the configured default locale.
func (e *Engine) DefaultLocale() string {
	return e.cfg.DefaultLocale
}

// ClearCache purges every parsed pattern.
func (e *Engine) ClearCache() {
	e.cache.Clear()
	e.monitor.stats.setLastClearAt(e.cfg.NowFn())
	e.logger.Debug("msgformat: pattern cache cleared")
}

// CacheStats reports the pattern cache counters.
func (e *Engine) CacheStats() CacheStats {
	return e.cache.Stats()
}

// SnapshotStats returns a copy of the event counters.
func (e *Engine) SnapshotStats() Stats {
	return e.monitor.stats.snapshot()
}

// ResetStats zeroes the event counters.
func (e *Engine) ResetStats() {
	e.monitor.stats.reset()
}

// Close stops the observer worker after draining queued events.
func (e *Engine) Close() {
	e.monitor.close()
}
