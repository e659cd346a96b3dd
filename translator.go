package msgformat

import (
	"context"
	"fmt"

	"github.com/loopcontext/msgformat/store"
)

// Translator resolves translation keys through a store and renders the
// resulting patterns with an Engine.
type Translator struct {
	engine    *Engine
	resolver  store.Resolver
	fallbacks []string
}

// TranslatorOption customizes a Translator.
type TranslatorOption func(*Translator)

// WithFallbackLocales sets the locales tried after the requested locale and
// its base language, before the engine default.
func WithFallbackLocales(locales ...string) TranslatorOption {
	return func(t *Translator) {
		t.fallbacks = append([]string(nil), locales...)
	}
}

// NewTranslator returns a Translator reading patterns from resolver.
func NewTranslator(engine *Engine, resolver store.Resolver, opts ...TranslatorOption) *Translator {
	t := &Translator{engine: engine, resolver: resolver}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate renders key for the locale carried by ctx.
func (t *Translator) Translate(ctx context.Context, key string, params Params, scope ...string) (string, error) {
	return t.TranslateLocale(t.engine.LocaleFromCtx(ctx), key, params, scope...)
}

// TranslateLocale renders key for locale, walking the fallback chain until a
// locale knows the key.
func (t *Translator) TranslateLocale(locale string, key string, params Params, scope ...string) (string, error) {
	requested := normalizeLocale(locale)
	if requested == "" {
		requested = normalizeLocale(t.engine.DefaultLocale())
	}
	fullKey := store.JoinKey(key, scope...)

	for _, candidate := range t.candidates(requested) {
		result := t.resolver.Resolve(candidate, key, scope...)
		if !result.Found {
			continue
		}
		if candidate != requested {
			t.engine.monitor.onLanguageFallback(requested, candidate)
			t.engine.logger.Debug("msgformat: translation fallback",
				"requested", requested, "resolved", candidate, "key", fullKey)
		}
		pattern, ok := result.Pattern()
		if !ok {
			return "", fmt.Errorf("msgformat: %s.%s: %w", candidate, fullKey, ErrNotAPattern)
		}
		return t.engine.Format(pattern, params, candidate)
	}

	t.engine.monitor.onTranslationMissing(requested, fullKey)
	t.engine.logger.Warn("msgformat: translation missing", "locale", requested, "key", fullKey)
	return "", &MissingTranslationError{Locale: requested, Key: fullKey}
}

// WrapError translates key and returns it as an error wrapping err. When the
// translation itself fails, that failure is returned instead.
func (t *Translator) WrapError(ctx context.Context, err error, key string, params Params, scope ...string) error {
	message, terr := t.Translate(ctx, key, params, scope...)
	if terr != nil {
		return terr
	}
	return &TranslatedError{Key: store.JoinKey(key, scope...), Message: message, Err: err}
}

func (t *Translator) candidates(requested string) []string {
	out := make([]string, 0, len(t.fallbacks)+4)
	seen := map[string]struct{}{}
	appendLocaleIfMissing(&out, seen, requested)
	appendLocaleIfMissing(&out, seen, baseLocale(requested))
	for _, locale := range t.fallbacks {
		appendLocaleIfMissing(&out, seen, normalizeLocale(locale))
	}
	appendLocaleIfMissing(&out, seen, normalizeLocale(t.engine.DefaultLocale()))
	appendLocaleIfMissing(&out, seen, "en")
	return out
}
