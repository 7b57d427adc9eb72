package polyglot

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
)

// maxAcceptLanguageLen caps how much of an Accept-Language header is parsed,
// bounding work on hostile input.
const maxAcceptLanguageLen = 4096

// langPref is one parsed Accept-Language entry.
type langPref struct {
	tag string
	q   float64
}

// ParseAcceptLanguage picks the best supported locale for an Accept-Language
// header. Preferences are honored in descending quality order; within one
// preference an exact tag match beats a base-language match ("en-US" is
// preferred over "en" for the tag "en-US"). When nothing matches, the first
// available locale wins.
//
//	ParseAcceptLanguage("en-US,en;q=0.9,pl;q=0.8", []string{"pl", "en", "de"}) // "en"
func ParseAcceptLanguage(header string, available []string) string {
	if len(available) == 0 {
		return ""
	}

	for _, pref := range acceptedLanguages(header) {
		partial := -1
		for i, avail := range available {
			if strings.EqualFold(pref.tag, avail) {
				return avail
			}
			if partial < 0 && baseLocale(pref.tag) == baseLocale(avail) {
				partial = i
			}
		}
		if partial >= 0 {
			return available[partial]
		}
	}

	return available[0]
}

// acceptedLanguages parses a header into preferences sorted by descending
// quality; header order breaks ties. Wildcards and empty entries are dropped,
// and a malformed or out-of-range quality value counts as 1.
func acceptedLanguages(header string) []langPref {
	if len(header) > maxAcceptLanguageLen {
		header = header[:maxAcceptLanguageLen]
	}

	var prefs []langPref
	for entry := range strings.SplitSeq(header, ",") {
		tag, attr, _ := strings.Cut(strings.TrimSpace(entry), ";")
		tag = strings.TrimSpace(tag)
		if tag == "" || tag == "*" {
			continue
		}

		q := 1.0
		if qv, ok := strings.CutPrefix(strings.TrimSpace(attr), "q="); ok {
			if parsed, err := strconv.ParseFloat(qv, 64); err == nil && parsed >= 0 && parsed <= 1 {
				q = parsed
			}
		}

		prefs = append(prefs, langPref{tag: tag, q: q})
	}

	slices.SortStableFunc(prefs, func(a, b langPref) int {
		return cmp.Compare(b.q, a.q)
	})

	return prefs
}
