package polyglot

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FormatterFunc renders a typed value to a display string. The spec argument
// carries everything after the formatter name in a {{param:name:spec}}
// placeholder, verbatim. A formatter that returns an error (or panics) makes
// the engine fall back to plain stringification of the raw value.
type FormatterFunc func(value any, spec string, locale string) (string, error)

// NumberFormat is a named numeric format preset.
type NumberFormat struct {
	// Style selects the rendering: "decimal" (default) or "percent".
	Style string
	// MinFractionDigits and MaxFractionDigits bound the fraction part.
	// Both zero means the locale default.
	MinFractionDigits int
	MaxFractionDigits int
}

// Formats configures the named presets consulted by the built-in number and
// date formatters. An empty or unknown preset name selects the unstyled
// locale default.
type Formats struct {
	// Number maps preset names to numeric formats.
	Number map[string]NumberFormat
	// Date maps preset names to Go time layouts.
	Date map[string]string
}

// builtinFormatters returns the three built-in registry entries.
func builtinFormatters(formats Formats) map[string]FormatterFunc {
	return map[string]FormatterFunc{
		"number":   numberFormatter(formats),
		"date":     dateFormatter(formats),
		"currency": currencyFormatter(),
	}
}

func numberFormatter(formats Formats) FormatterFunc {
	return func(value any, spec, locale string) (string, error) {
		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprint(value), nil
		}

		var opts []number.Option
		preset, found := formats.Number[spec]
		if found {
			if preset.MinFractionDigits > 0 {
				opts = append(opts, number.MinFractionDigits(preset.MinFractionDigits))
			}
			if preset.MaxFractionDigits > 0 {
				opts = append(opts, number.MaxFractionDigits(preset.MaxFractionDigits))
			}
		}

		p := message.NewPrinter(localeTag(locale))
		if found && preset.Style == "percent" {
			return p.Sprint(number.Percent(f, opts...)), nil
		}
		return p.Sprint(number.Decimal(f, opts...)), nil
	}
}

func dateFormatter(formats Formats) FormatterFunc {
	return func(value any, spec, locale string) (string, error) {
		t, ok := toTime(value)
		if !ok {
			return fmt.Sprint(value), nil
		}

		layout, found := formats.Date[spec]
		if !found {
			layout = localeDateLayout(locale)
		}
		return t.Format(layout), nil
	}
}

func currencyFormatter() FormatterFunc {
	return func(value any, spec, locale string) (string, error) {
		code := strings.TrimSpace(spec)
		if code == "" {
			code = "USD"
		}

		f, ok := toFloat(value)
		if !ok {
			return fmt.Sprint(value), nil
		}

		unit, err := currency.ParseISO(code)
		if err != nil {
			// Unsupported codes degrade to "<code> <value>" rather than fail.
			return fmt.Sprintf("%s %v", code, value), nil
		}

		p := message.NewPrinter(localeTag(locale))
		return p.Sprint(currency.Symbol(unit.Amount(f))), nil
	}
}

// localeTag parses a locale identifier into a language tag, falling back to
// English for unparsable input.
func localeTag(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// localeDateLayout returns the short date layout for a locale.
func localeDateLayout(locale string) string {
	switch baseLocale(locale) {
	case "en":
		if strings.EqualFold(locale, "en-GB") {
			return "02/01/2006"
		}
		return "01/02/2006"
	case "de":
		return "02.01.2006"
	case "fr", "es", "pt", "it":
		return "02/01/2006"
	case "ja", "zh":
		return "2006/01/02"
	case "ko":
		return "2006.01.02"
	default:
		return "2006-01-02"
	}
}

// baseLocale strips the region from a locale identifier ("en-US" → "en").
func baseLocale(locale string) string {
	if i := strings.IndexByte(locale, '-'); i > 0 {
		return strings.ToLower(locale[:i])
	}
	return strings.ToLower(locale)
}

// toFloat converts the numeric kinds the engine understands to float64.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	}
	return 0, false
}

// toTime converts date-like values to time.Time.
func toTime(value any) (time.Time, bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	}
	return time.Time{}, false
}

// stringifyValue is the universal fallback conversion used by interpolation:
// nil renders empty, dates render as a locale short date, slices join with
// commas, and everything else goes through fmt.
func stringifyValue(value any, locale string) string {
	if value == nil {
		return ""
	}

	if t, ok := toTime(value); ok {
		return t.Format(localeDateLayout(locale))
	}

	if s, ok := value.(string); ok {
		return s
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := range rv.Len() {
			parts[i] = stringifyValue(rv.Index(i).Interface(), locale)
		}
		return strings.Join(parts, ", ")
	}

	return fmt.Sprint(value)
}
