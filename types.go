package polyglot

// M is a convenience type for parameter maps passed to translations.
// It maps placeholder names to their values.
type M map[string]any

// Messages holds message trees keyed by locale. Leaf values are template
// strings; intermediate nodes are nested map[string]any containers reachable
// via dot-separated keys. Plural variants are sibling leaves suffixed with
// a plural category ("items.one", "items.other").
type Messages map[string]map[string]any
