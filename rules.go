package msgformat

import (
	"sync"

	"github.com/loopcontext/msgformat/internal/plural"
)

//go:generate mockgen -source=$GOFILE -package mock_msgformat -destination=test/mock/$GOFILE

// PluralRule maps a number to a plural category tag.
type PluralRule func(n float64) string

// Rules resolves the categorization rules registered for a locale. A false
// second result means no rule is registered and the defaults apply.
type Rules interface {
	CardinalRule(locale string) (PluralRule, bool)
	OrdinalRule(locale string) (PluralRule, bool)
}

// DefaultCardinalRule is used when no cardinal rule is registered: "one" for
// exactly 1, "other" for everything else.
func DefaultCardinalRule(n float64) string {
	if n == 1 {
		return CategoryOne
	}
	return CategoryOther
}

// DefaultOrdinalRule is used when no ordinal rule is registered.
func DefaultOrdinalRule(float64) string {
	return CategoryOther
}

// RuleSet is a concurrency-safe registry of per-locale rules. Lookups try the
// normalized locale first, then its base language.
type RuleSet struct {
	mu       sync.RWMutex
	cardinal map[string]PluralRule
	ordinal  map[string]PluralRule
}

// NewRuleSet returns an empty registry.
func NewRuleSet() *RuleSet {
	return &RuleSet{
		cardinal: map[string]PluralRule{},
		ordinal:  map[string]PluralRule{},
	}
}

// SetCardinal registers rule as the cardinal rule for locale.
func (rs *RuleSet) SetCardinal(locale string, rule PluralRule) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.cardinal[normalizeLocale(locale)] = rule
}

// SetOrdinal registers rule as the ordinal rule for locale.
func (rs *RuleSet) SetOrdinal(locale string, rule PluralRule) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.ordinal[normalizeLocale(locale)] = rule
}

// InstallCardinal registers the bundled cardinal rule for locale. It reports
// false when no rule is bundled for that language.
func (rs *RuleSet) InstallCardinal(locale string) bool {
	rule, ok := plural.Cardinal(locale)
	if !ok {
		return false
	}
	rs.SetCardinal(locale, PluralRule(rule))
	return true
}

// InstallOrdinal registers the bundled ordinal rule for locale.
func (rs *RuleSet) InstallOrdinal(locale string) bool {
	rule, ok := plural.Ordinal(locale)
	if !ok {
		return false
	}
	rs.SetOrdinal(locale, PluralRule(rule))
	return true
}

// InstallAll registers every bundled cardinal and ordinal rule.
func (rs *RuleSet) InstallAll() {
	for _, lang := range plural.CardinalLanguages() {
		rs.InstallCardinal(lang)
	}
	for _, lang := range plural.OrdinalLanguages() {
		rs.InstallOrdinal(lang)
	}
}

func (rs *RuleSet) CardinalRule(locale string) (PluralRule, bool) {
	return rs.lookup(rs.cardinal, locale)
}

func (rs *RuleSet) OrdinalRule(locale string) (PluralRule, bool) {
	return rs.lookup(rs.ordinal, locale)
}

func (rs *RuleSet) lookup(table map[string]PluralRule, locale string) (PluralRule, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	normalized := normalizeLocale(locale)
	if rule, ok := table[normalized]; ok && rule != nil {
		return rule, true
	}
	if rule, ok := table[baseLocale(normalized)]; ok && rule != nil {
		return rule, true
	}
	return nil, false
}

var _ Rules = (*RuleSet)(nil)
