package msgformat

import (
	"log/slog"
	"time"
)

// ContextKey is the type of the context key the engine reads the locale from.
type ContextKey string

// Config configures an Engine. Zero values select the documented defaults.
type Config struct {
	// CacheSize bounds the parsed-pattern cache. Default DefaultCacheSize.
	CacheSize int
	// Localizer renders number, date and time arguments. Default NewLocalizer().
	Localizer Localizer
	// Rules supplies cardinal and ordinal rules. Default an empty RuleSet.
	Rules Rules
	// DefaultLocale is used when a context carries no locale. Default "en".
	DefaultLocale string
	// CtxLocaleKey is the context key holding the request locale. Default "locale".
	CtxLocaleKey ContextKey
	Observer     Observer
	// ObserverBuffer is the capacity of the observer event queue. Default 1024.
	ObserverBuffer int
	// StatsMaxKeys bounds the distinct keys per stats map. Default 512.
	StatsMaxKeys int
	Logger       *slog.Logger
	NowFn        func() time.Time
}

// Stats counts engine and translator events since the last reset.
type Stats struct {
	LanguageFallbacks   map[string]int
	MissingTranslations map[string]int
	ParseErrors         map[string]int
	RenderErrors        map[string]int
	DroppedEvents       map[string]int
	LastClearAt         time.Time
}
