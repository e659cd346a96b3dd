// Package plural holds bundled CLDR plural rules, cardinal and ordinal, keyed by base language.
// Form names: "zero", "one", "two", "few", "many", "other".
package plural

import (
	"math"
	"strings"
)

// Rule maps a number to a plural form name.
type Rule func(n float64) string

// Base normalizes a language tag to its base (e.g. "en-US" -> "en", "pt_BR" -> "pt").
func Base(lang string) string {
	base := strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexAny(base, "-_"); idx > 0 {
		base = base[:idx]
	}
	return base
}

// Cardinal returns the bundled cardinal rule for lang, if any.
func Cardinal(lang string) (Rule, bool) {
	switch Base(lang) {
	case "ar":
		return integral(formArabic), true
	case "ru", "uk", "be", "sr", "hr", "bs", "sh":
		return integral(formRussian), true
	case "pl":
		return integral(formPolish), true
	case "cy":
		return integral(formWelsh), true
	case "he", "iw":
		return integral(formHebrew), true
	case "fr":
		return formFrench, true
	case "en", "es", "de", "it", "pt", "nl", "no", "sv", "da", "fi", "tr", "el", "hi":
		return formOneOther, true
	case "ja", "ko", "zh", "th", "vi", "id":
		return formOther, true
	default:
		return nil, false
	}
}

// Ordinal returns the bundled ordinal rule for lang, if any.
func Ordinal(lang string) (Rule, bool) {
	switch Base(lang) {
	case "en":
		return integral(ordinalEnglish), true
	default:
		return nil, false
	}
}

// CardinalLanguages lists the base languages with a bundled cardinal rule.
func CardinalLanguages() []string {
	return []string{
		"ar", "ru", "uk", "be", "sr", "hr", "bs", "sh", "pl", "cy", "he", "iw", "fr",
		"en", "es", "de", "it", "pt", "nl", "no", "sv", "da", "fi", "tr", "el", "hi",
		"ja", "ko", "zh", "th", "vi", "id",
	}
}

// OrdinalLanguages lists the base languages with a bundled ordinal rule.
func OrdinalLanguages() []string {
	return []string{"en"}
}

// integral adapts an integer rule: fractional values are "other", negatives use their magnitude.
func integral(form func(n int64) string) Rule {
	return func(n float64) string {
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return "other"
		}
		i := int64(n)
		if i < 0 {
			i = -i
		}
		return form(i)
	}
}

func formOneOther(n float64) string {
	if n == 1 || n == -1 {
		return "one"
	}
	return "other"
}

func formOther(float64) string {
	return "other"
}

func formFrench(n float64) string {
	if n >= 0 && n < 2 {
		return "one"
	}
	return "other"
}

func formArabic(n int64) string {
	if n == 0 {
		return "zero"
	}
	if n == 1 {
		return "one"
	}
	if n == 2 {
		return "two"
	}
	n100 := n % 100
	if n100 >= 3 && n100 <= 10 {
		return "few"
	}
	if n100 >= 11 && n100 <= 99 {
		return "many"
	}
	return "other"
}

func formRussian(n int64) string {
	n10 := n % 10
	n100 := n % 100
	if n10 == 1 && n100 != 11 {
		return "one"
	}
	if n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14) {
		return "few"
	}
	return "many"
}

func formPolish(n int64) string {
	if n == 1 {
		return "one"
	}
	n10 := n % 10
	n100 := n % 100
	if n10 >= 2 && n10 <= 4 && (n100 < 12 || n100 > 14) {
		return "few"
	}
	return "many"
}

func formWelsh(n int64) string {
	switch n {
	case 0:
		return "zero"
	case 1:
		return "one"
	case 2:
		return "two"
	case 3:
		return "few"
	case 6:
		return "many"
	default:
		return "other"
	}
}

func formHebrew(n int64) string {
	if n == 1 {
		return "one"
	}
	if n == 2 {
		return "two"
	}
	return "other"
}

func ordinalEnglish(n int64) string {
	n10 := n % 10
	n100 := n % 100
	if n10 == 1 && n100 != 11 {
		return "one"
	}
	if n10 == 2 && n100 != 12 {
		return "two"
	}
	if n10 == 3 && n100 != 13 {
		return "few"
	}
	return "other"
}
