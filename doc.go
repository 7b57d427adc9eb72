// Package polyglot is a runtime string-resolution engine for
// internationalization: locale-scoped key lookup, parameter interpolation,
// pluralization, locale fallback, an extensible plugin pipeline, and bounded
// result caching.
//
// An Engine owns all of its state; independent engines share nothing and are
// safe for concurrent use. Once constructed, a translation request never
// fails: missing keys, missing parameters, and misbehaving plugins or
// formatters all degrade to a documented result instead of an error.
//
// # Basic Usage
//
//	engine, err := polyglot.New(polyglot.Config{
//		Locale:         "es",
//		FallbackLocale: "en",
//		Messages: polyglot.Messages{
//			"en": {"greeting": "Hello, {{name}}!"},
//			"es": {"greeting": "¡Hola, {{name}}!"},
//		},
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	engine.T("greeting", polyglot.M{"name": "Juan"})
//	// Output: "¡Hola, Juan!"
//
// Keys absent from every consulted locale resolve to the key itself:
//
//	engine.T("missing.key") // "missing.key"
//
// # Nested Messages
//
// Message trees may nest; keys use dot notation. A literal key wins over
// path traversal when both exist.
//
//	Messages: polyglot.Messages{
//		"en": {
//			"buttons": map[string]any{
//				"save":   "Save",
//				"cancel": "Cancel",
//			},
//		},
//	}
//
//	engine.T("buttons.save") // "Save"
//
// # Pluralization
//
// When a numeric "count" parameter is supplied, the engine computes the
// locale's plural category and prefers the "<key>.<category>" variant:
//
//	Messages: polyglot.Messages{
//		"en": {
//			"items.zero":  "No items",
//			"items.one":   "One item",
//			"items.other": "{{count}} items",
//		},
//	}
//
//	engine.T("items", polyglot.M{"count": 0}) // "No items"
//	engine.T("items", polyglot.M{"count": 1}) // "One item"
//	engine.T("items", polyglot.M{"count": 5}) // "5 items"
//
// Custom rules per locale go in Config.PluralRules; absent variants fall back
// to the un-suffixed key.
//
// # Formatting
//
// Placeholders may name a formatter: {{amount:currency:EUR}},
// {{when:date:short}}, {{n:number:compact}}. The built-ins are number, date,
// and currency; named presets come from Config.Formats. Plugins contribute
// further formatters under their own name.
//
// # Plugins
//
// A Plugin has a name and any subset of the Transformer, BeforeLoader,
// AfterLoader, and Formatter capabilities. Transforms rewrite resolved text
// in registration order; load hooks wrap AddMessages. A failing plugin is
// skipped, never fatal. Bundled plugins live under plugins/.
//
// # Locale Changes
//
// SetLocale switches the active locale, clears the translation cache, and
// synchronously notifies subscribers registered with Subscribe. Setting the
// current locale again is a no-op.
package polyglot
