package polyglot

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultLocale is the locale whose rules back the global fallbacks.
const DefaultLocale = "en"

// Config configures an Engine. Locale and Messages are required; everything
// else is optional.
type Config struct {
	// Locale is the initially active locale.
	Locale string

	// FallbackLocale is consulted when a key is absent in the active locale.
	FallbackLocale string

	// Messages holds the initial message trees keyed by locale.
	// An empty map is valid; nil is not.
	Messages Messages

	// Plugins are registered in order at construction.
	Plugins []Plugin

	// PluralRules overrides the built-in plural rule table per locale.
	PluralRules map[string]PluralRule

	// Formats configures the named presets of the built-in formatters.
	Formats Formats

	// WarnOnMissing enables diagnostics for missing translations and
	// missing interpolation parameters.
	WarnOnMissing bool

	// CacheSize bounds the translation cache. Zero selects the default.
	CacheSize int

	// Logger receives diagnostics. Defaults to a discard logger.
	Logger *slog.Logger
}

// Engine resolves message keys into localized, formatted strings. All state
// is owned by the instance; independent engines share nothing. Mutation entry
// points and the cache are guarded, so an Engine is safe for concurrent use.
type Engine struct {
	locale      string
	fallback    string
	messages    Messages
	plugins     []Plugin
	pluginFmts  map[string]FormatterFunc
	builtinFmts map[string]FormatterFunc
	pluralRules map[string]PluralRule
	subscribers map[uint64]func(locale string)
	nextSubID   uint64
	cache       *translationCache
	sf          singleflight.Group
	log         *slog.Logger
	warn        bool
	mu          sync.RWMutex
}

// New creates an Engine from the given configuration. Construction-time
// misuse (empty locale, nil messages, nil plural rule) fails fast; everything
// after a successful New degrades gracefully instead of failing.
func New(cfg Config) (*Engine, error) {
	if cfg.Locale == "" {
		return nil, fmt.Errorf("%w: config locale", ErrEmptyLocale)
	}
	if cfg.Messages == nil {
		return nil, ErrNilMessages
	}

	pluralRules := make(map[string]PluralRule, len(cfg.PluralRules))
	for locale, rule := range cfg.PluralRules {
		if locale == "" {
			return nil, fmt.Errorf("%w: plural rule locale", ErrEmptyLocale)
		}
		if rule == nil {
			return nil, fmt.Errorf("%w: locale %q", ErrNilPluralRule, locale)
		}
		pluralRules[locale] = rule
	}

	log := cfg.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	e := &Engine{
		locale:      cfg.Locale,
		fallback:    cfg.FallbackLocale,
		messages:    make(Messages, len(cfg.Messages)),
		pluginFmts:  make(map[string]FormatterFunc),
		builtinFmts: builtinFormatters(cfg.Formats),
		pluralRules: pluralRules,
		subscribers: make(map[uint64]func(string)),
		cache:       newTranslationCache(cfg.CacheSize),
		log:         log,
		warn:        cfg.WarnOnMissing,
	}

	// Copy the initial trees so later caller mutation cannot corrupt the
	// store; the copy also drops denied keys.
	for locale, tree := range cfg.Messages {
		if locale == "" {
			return nil, fmt.Errorf("%w: message tree locale", ErrEmptyLocale)
		}
		e.messages[locale] = mergeTrees(nil, tree)
	}

	for _, p := range cfg.Plugins {
		e.AddPlugin(p)
	}

	return e, nil
}

// snapshot captures the state a single resolution runs against. The store is
// copy-on-write, so holding the references outside the lock is safe.
type snapshot struct {
	locale      string
	fallback    string
	messages    Messages
	plugins     []Plugin
	formatters  formatterLookup
	pluralRules map[string]PluralRule
}

func (e *Engine) snapshot() snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return snapshot{
		locale:      e.locale,
		fallback:    e.fallback,
		messages:    e.messages,
		plugins:     e.plugins,
		formatters:  formatterLookup{plugin: e.pluginFmts, builtin: e.builtinFmts},
		pluralRules: e.pluralRules,
	}
}

// T resolves a key into a localized string for the active locale. It never
// fails: a missing translation (or any internal fault) yields the key itself.
func (e *Engine) T(key string, params ...M) (result string) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error("translation panic recovered", "key", key, "panic", fmt.Sprint(r))
			result = key
		}
	}()

	p := mergeParams(params)

	// The generation is captured before the state snapshot: if a mutation
	// slips in between, the resolved text is stored with a stale generation
	// and dropped instead of resurrecting pre-mutation data.
	gen := e.cache.generation()
	snap := e.snapshot()

	cacheKey, cacheable := cacheKeyFor(snap.locale, key, p)
	if !cacheable {
		return e.resolve(snap, key, p)
	}

	if cached, ok := e.cache.get(cacheKey); ok {
		return cached
	}

	// Deduplicate concurrent misses for the same key and parameters.
	v, _, _ := e.sf.Do(cacheKey, func() (any, error) {
		text := e.resolve(snap, key, p)
		e.cache.put(cacheKey, text, gen)
		return text, nil
	})

	return v.(string)
}

// resolve runs the uncached resolution chain: store lookup, fallback locale,
// plural override, plugin transforms, interpolation.
func (e *Engine) resolve(snap snapshot, key string, params M) string {
	message, found := lookupMessage(snap.messages[snap.locale], key)
	if !found && snap.fallback != "" && snap.fallback != snap.locale {
		message, found = lookupMessage(snap.messages[snap.fallback], key)
	}

	if count, ok := numericCount(params); ok {
		category := resolvePluralCategory(snap.locale, count, snap.pluralRules)
		pluralKey := key + "." + category
		if m, ok := lookupMessage(snap.messages[snap.locale], pluralKey); ok {
			message, found = m, true
		} else if snap.fallback != "" && snap.fallback != snap.locale {
			if m, ok := lookupMessage(snap.messages[snap.fallback], pluralKey); ok {
				message, found = m, true
			}
		}
	}

	if !found {
		if e.warn {
			e.log.Warn("missing translation", "key", key, "locale", snap.locale)
		}
		return key
	}

	text := applyTransforms(snap.plugins, key, message, params, snap.locale, e.log)
	return interpolate(text, params, snap.formatters, snap.locale, e.log, e.warn)
}

// SetLocale switches the active locale. Switching clears the translation
// cache and synchronously notifies every subscriber; setting the current
// locale again is a no-op. Empty input is rejected.
func (e *Engine) SetLocale(locale string) error {
	if locale == "" {
		return ErrEmptyLocale
	}

	e.mu.Lock()
	if locale == e.locale {
		e.mu.Unlock()
		return nil
	}
	e.locale = locale
	subscribers := e.subscriberList()
	e.mu.Unlock()

	e.cache.clear()

	for _, notify := range subscribers {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.log.Warn("locale subscriber panicked", "locale", locale, "panic", fmt.Sprint(r))
				}
			}()
			notify(locale)
		}()
	}

	return nil
}

// Locale returns the active locale.
func (e *Engine) Locale() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.locale
}

// HasTranslation reports whether a key resolves to a template in the given
// locale, or the active locale when none is given. The fallback locale is not
// consulted.
func (e *Engine) HasTranslation(key string, locale ...string) bool {
	e.mu.RLock()
	target := e.locale
	if len(locale) > 0 && locale[0] != "" {
		target = locale[0]
	}
	tree := e.messages[target]
	e.mu.RUnlock()

	return hasMessage(tree, key)
}

// Languages returns the locales present in the message store, sorted.
func (e *Engine) Languages() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	langs := slices.Collect(maps.Keys(e.messages))
	slices.Sort(langs)
	return langs
}

// AddMessages merges a partial message tree into a locale's messages. The
// beforeLoad plugin chain runs on the incoming tree, the merge is
// copy-on-write, afterLoad plugins observe the merged result, and the
// translation cache is cleared.
func (e *Engine) AddMessages(locale string, messages map[string]any) error {
	if locale == "" {
		return ErrEmptyLocale
	}
	if messages == nil {
		return ErrNilMessages
	}

	incoming := applyBeforeLoad(e.pluginList(), locale, messages, e.log)

	e.mu.Lock()
	merged := mergeTrees(e.messages[locale], incoming)
	store := make(Messages, len(e.messages)+1)
	maps.Copy(store, e.messages)
	store[locale] = merged
	e.messages = store
	plugins := e.plugins
	e.mu.Unlock()

	applyAfterLoad(plugins, locale, merged, e.log)

	e.cache.clear()

	return nil
}

// AddPlugin appends a plugin to the pipeline. A plugin exposing the Formatter
// capability overwrites the registry entry under its name. Nil plugins are
// ignored.
func (e *Engine) AddPlugin(p Plugin) {
	if p == nil {
		return
	}

	e.mu.Lock()
	e.plugins = append(slices.Clone(e.plugins), p)
	if f, ok := p.(Formatter); ok {
		fmts := maps.Clone(e.pluginFmts)
		fmts[p.Name()] = f.Format
		e.pluginFmts = fmts
	}
	e.mu.Unlock()

	e.cache.clear()
}

// RemovePlugin removes the first pipeline entry with the given name along
// with its formatter registry entry. Removing an unknown name is a no-op.
func (e *Engine) RemovePlugin(name string) {
	e.mu.Lock()
	idx := slices.IndexFunc(e.plugins, func(p Plugin) bool { return p.Name() == name })
	if idx < 0 {
		e.mu.Unlock()
		return
	}
	e.plugins = slices.Delete(slices.Clone(e.plugins), idx, idx+1)
	if _, ok := e.pluginFmts[name]; ok {
		fmts := maps.Clone(e.pluginFmts)
		delete(fmts, name)
		e.pluginFmts = fmts
	}
	e.mu.Unlock()

	e.cache.clear()
}

// Subscribe registers a callback invoked synchronously on every locale
// change. The returned function unsubscribes; calling it more than once is
// harmless. A nil callback yields a no-op unsubscribe.
func (e *Engine) Subscribe(fn func(locale string)) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	e.mu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		delete(e.subscribers, id)
		e.mu.Unlock()
	}
}

// FormatNumber renders a number for the active locale, optionally selecting a
// named numeric preset.
func (e *Engine) FormatNumber(value any, name ...string) string {
	spec := ""
	if len(name) > 0 {
		spec = name[0]
	}
	s, err := e.builtinFmts["number"](value, spec, e.Locale())
	if err != nil {
		return stringifyValue(value, e.Locale())
	}
	return s
}

// FormatDate renders a date for the active locale, optionally selecting a
// named date preset.
func (e *Engine) FormatDate(value any, name ...string) string {
	spec := ""
	if len(name) > 0 {
		spec = name[0]
	}
	s, err := e.builtinFmts["date"](value, spec, e.Locale())
	if err != nil {
		return stringifyValue(value, e.Locale())
	}
	return s
}

// subscriberList returns the current subscribers in registration order.
// Caller must hold the mutex.
func (e *Engine) subscriberList() []func(string) {
	ids := slices.Collect(maps.Keys(e.subscribers))
	slices.Sort(ids)

	list := make([]func(string), 0, len(ids))
	for _, id := range ids {
		list = append(list, e.subscribers[id])
	}
	return list
}

// pluginList returns the current pipeline.
func (e *Engine) pluginList() []Plugin {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.plugins
}

// mergeParams merges parameter maps, later maps winning.
func mergeParams(params []M) M {
	if len(params) == 0 {
		return nil
	}
	if len(params) == 1 {
		return params[0]
	}

	merged := make(M)
	for _, p := range params {
		maps.Copy(merged, p)
	}
	return merged
}

// numericCount extracts a numeric count parameter. Any numeric count selects
// a plural category; non-numeric values leave the base message untouched.
func numericCount(params M) (float64, bool) {
	v, ok := params["count"]
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func panicError(stage string, r any) error {
	return fmt.Errorf("%s panic: %v", stage, r)
}
