package polyglot

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// placeholderRe matches {{param}} and {{param:format}} placeholders.
// Whitespace around the body is tolerated and trimmed.
var placeholderRe = regexp.MustCompile(`\{\{([^{}]*)\}\}`)

// interpolate expands the placeholders of a template against params.
//
// A placeholder body splits once on ":" into the parameter name and an
// optional format spec; the spec may carry further colon-separated arguments
// that are handed to the formatter untouched. Failures are contained per
// placeholder: unknown parameters keep their literal {{...}} text, failing
// formatters degrade to plain stringification, and the remaining placeholders
// are still expanded.
func interpolate(template string, params M, formatters formatterLookup, locale string, log *slog.Logger, warn bool) string {
	if !strings.Contains(template, "{{") {
		return template
	}

	return placeholderRe.ReplaceAllStringFunc(template, func(match string) string {
		body := strings.TrimSpace(match[2 : len(match)-2])

		name, spec, hasSpec := strings.Cut(body, ":")
		name = strings.TrimSpace(name)
		spec = strings.TrimSpace(spec)

		value, ok := params[name]
		if !ok {
			if warn {
				log.Warn("missing interpolation parameter", "param", name, "locale", locale)
			}
			return match
		}

		if hasSpec && spec != "" {
			formatName, args, _ := strings.Cut(spec, ":")
			if formatter := formatters.lookup(strings.TrimSpace(formatName)); formatter != nil {
				s, err := callFormatter(formatter, value, args, locale)
				if err == nil {
					return s
				}
				// Formatter faults are logged regardless of the diagnostics
				// setting; it gates only missing-key and missing-param noise.
				log.Warn("formatter failed", "formatter", formatName, "param", name, "error", err)
			}
		}

		return stringifyValue(value, locale)
	})
}

// callFormatter invokes a formatter with panic containment. User-supplied
// formatters must never take down a translation request.
func callFormatter(f FormatterFunc, value any, spec, locale string) (result string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("formatter panic: %v", r)
		}
	}()
	return f(value, spec, locale)
}

// formatterLookup resolves a formatter name against plugin-contributed
// entries first, then the built-in registry.
type formatterLookup struct {
	plugin  map[string]FormatterFunc
	builtin map[string]FormatterFunc
}

func (fl formatterLookup) lookup(name string) FormatterFunc {
	if f, ok := fl.plugin[name]; ok {
		return f
	}
	if f, ok := fl.builtin[name]; ok {
		return f
	}
	return nil
}
