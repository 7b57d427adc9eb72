package polyglot

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// relativeUnit is one bucket of the relative-time scale. Units are ordered
// largest first; the first unit whose threshold fits the absolute delta wins.
type relativeUnit struct {
	name    string
	seconds float64
}

var relativeUnits = []relativeUnit{
	{"year", 31536000},
	{"month", 2592000},
	{"week", 604800},
	{"day", 86400},
	{"hour", 3600},
	{"minute", 60},
	{"second", 1},
}

// relativePhrases holds per-locale phrase patterns. {n} is the rounded
// quantity, {unit} the localized unit name. Locales without an entry fall
// back to English.
type relativePhrases struct {
	past   string
	future string
	now    string
	units  map[string][2]string // unit name -> [singular, plural]
}

var relativeLocales = map[string]relativePhrases{
	"en": {
		past:   "{n} {unit} ago",
		future: "in {n} {unit}",
		now:    "just now",
		units: map[string][2]string{
			"year": {"year", "years"}, "month": {"month", "months"},
			"week": {"week", "weeks"}, "day": {"day", "days"},
			"hour": {"hour", "hours"}, "minute": {"minute", "minutes"},
			"second": {"second", "seconds"},
		},
	},
	"es": {
		past:   "hace {n} {unit}",
		future: "dentro de {n} {unit}",
		now:    "ahora mismo",
		units: map[string][2]string{
			"year": {"año", "años"}, "month": {"mes", "meses"},
			"week": {"semana", "semanas"}, "day": {"día", "días"},
			"hour": {"hora", "horas"}, "minute": {"minuto", "minutos"},
			"second": {"segundo", "segundos"},
		},
	},
	"fr": {
		past:   "il y a {n} {unit}",
		future: "dans {n} {unit}",
		now:    "à l'instant",
		units: map[string][2]string{
			"year": {"an", "ans"}, "month": {"mois", "mois"},
			"week": {"semaine", "semaines"}, "day": {"jour", "jours"},
			"hour": {"heure", "heures"}, "minute": {"minute", "minutes"},
			"second": {"seconde", "secondes"},
		},
	},
	"de": {
		past:   "vor {n} {unit}",
		future: "in {n} {unit}",
		now:    "gerade eben",
		units: map[string][2]string{
			"year": {"Jahr", "Jahren"}, "month": {"Monat", "Monaten"},
			"week": {"Woche", "Wochen"}, "day": {"Tag", "Tagen"},
			"hour": {"Stunde", "Stunden"}, "minute": {"Minute", "Minuten"},
			"second": {"Sekunde", "Sekunden"},
		},
	},
}

// FormatRelativeTime renders the delta between a time and a base (now when
// omitted) as a locale-aware relative phrase. The delta buckets into the
// largest unit whose threshold the absolute delta meets, with the quotient
// rounded; deltas under one second render as the locale's zero-second phrase.
func (e *Engine) FormatRelativeTime(t time.Time, base ...time.Time) string {
	ref := time.Now()
	if len(base) > 0 {
		ref = base[0]
	}

	return formatRelative(t.Sub(ref).Seconds(), e.Locale())
}

func formatRelative(deltaSeconds float64, locale string) string {
	phrases, ok := relativeLocales[baseLocale(locale)]
	if !ok {
		phrases = relativeLocales["en"]
	}

	abs := math.Abs(deltaSeconds)
	if abs < 1 {
		return phrases.now
	}

	for _, unit := range relativeUnits {
		if abs < unit.seconds {
			continue
		}

		n := int(math.Round(abs / unit.seconds))
		names := phrases.units[unit.name]
		name := names[1]
		if n == 1 {
			name = names[0]
		}

		pattern := phrases.past
		if deltaSeconds > 0 {
			pattern = phrases.future
		}

		s := strings.ReplaceAll(pattern, "{n}", fmt.Sprintf("%d", n))
		return strings.ReplaceAll(s, "{unit}", name)
	}

	return phrases.now
}
