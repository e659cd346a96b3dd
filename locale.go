package msgformat

import (
	"strings"

	"golang.org/x/text/language"
)

func normalizeLocale(locale string) string {
	locale = strings.TrimSpace(strings.ToLower(locale))
	locale = strings.ReplaceAll(locale, "_", "-")
	return locale
}

func baseLocale(locale string) string {
	if idx := strings.Index(locale, "-"); idx > 0 {
		return locale[:idx]
	}
	return locale
}

func appendLocaleIfMissing(target *[]string, seen map[string]struct{}, locale string) {
	if locale == "" {
		return
	}
	if _, exists := seen[locale]; exists {
		return
	}
	seen[locale] = struct{}{}
	*target = append(*target, locale)
}

// parseTag converts a locale string into a BCP 47 tag.
func parseTag(locale string) (language.Tag, bool) {
	normalized := normalizeLocale(locale)
	if normalized == "" {
		return language.Und, false
	}
	tag, err := language.Parse(normalized)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}
