package polyglot

import "math"

// PluralRule determines which plural category to use for a given count.
// Category names follow Unicode CLDR conventions.
type PluralRule func(n int) string

// Plural category constants as defined by Unicode CLDR.
// Not all languages use all categories.
const (
	PluralZero  = "zero"
	PluralOne   = "one"
	PluralTwo   = "two"
	PluralFew   = "few"
	PluralMany  = "many"
	PluralOther = "other"
)

// EnglishPluralRule distinguishes zero (0), one (1), and other.
// It is also the global fallback for locales without a rule of their own.
var EnglishPluralRule PluralRule = func(n int) string {
	switch n {
	case 0:
		return PluralZero
	case 1:
		return PluralOne
	default:
		return PluralOther
	}
}

// FrenchPluralRule treats 0 and 1 as singular, everything else as other.
var FrenchPluralRule PluralRule = func(n int) string {
	if n == 0 || n == 1 {
		return PluralOne
	}
	return PluralOther
}

// GermanPluralRule distinguishes one (1) and other.
var GermanPluralRule PluralRule = func(n int) string {
	if n == 1 {
		return PluralOne
	}
	return PluralOther
}

// AsianPluralRule is for languages that do not distinguish plural forms
// (Japanese, Chinese, Korean).
var AsianPluralRule PluralRule = func(_ int) string {
	return PluralOther
}

// defaultPluralRules is the built-in per-locale rule table.
var defaultPluralRules = map[string]PluralRule{
	"en": EnglishPluralRule,
	"es": EnglishPluralRule,
	"fr": FrenchPluralRule,
	"de": GermanPluralRule,
	"ja": AsianPluralRule,
	"ko": AsianPluralRule,
	"zh": AsianPluralRule,
}

// resolvePluralCategory maps (locale, count) to a plural category.
// Custom rules take precedence with a locale → "en" fallback; the built-in
// table is consulted with the same two-level fallback, so unknown locales
// always end up on the English rule.
func resolvePluralCategory(locale string, count float64, custom map[string]PluralRule) string {
	n := pluralOperand(count)

	if custom != nil {
		if rule, ok := custom[locale]; ok && rule != nil {
			return rule(n)
		}
		if rule, ok := custom[DefaultLocale]; ok && rule != nil {
			return rule(n)
		}
	}

	if rule, ok := defaultPluralRules[locale]; ok {
		return rule(n)
	}
	return defaultPluralRules[DefaultLocale](n)
}

// pluralOperand converts a count to the integer the rules dispatch on.
// A fractional count is never exactly zero or one, so it is evaluated at its
// whole-number magnitude clamped to at least two; the built-in rules place
// such counts in "other" while magnitude-sensitive custom rules still see a
// representative quantity.
func pluralOperand(count float64) int {
	if count == math.Trunc(count) {
		return int(count)
	}
	n := int(math.Abs(count))
	if n < 2 {
		n = 2
	}
	return n
}
