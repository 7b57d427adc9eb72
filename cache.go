package polyglot

import (
	"container/list"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

// defaultCacheSize bounds the translation cache when no explicit capacity is
// configured. High-cardinality parameter combinations must not grow memory
// without bound.
const defaultCacheSize = 512

// cacheEntry holds a resolved string with its key for reverse lookup on
// eviction.
type cacheEntry struct {
	key   string
	value string
}

// translationCache is a bounded key→string cache with oldest-inserted
// eviction. It uses a hash map for O(1) lookups and a doubly-linked list for
// O(1) eviction ordering: new entries go to the front, eviction takes from
// the back.
//
// The generation counter makes wholesale invalidation safe against in-flight
// resolutions: a store that started before a clear carries a stale generation
// and is dropped instead of resurrecting old text.
type translationCache struct {
	items map[string]*list.Element
	order *list.List
	max   int
	gen   uint64
	mu    sync.Mutex
}

func newTranslationCache(maxEntries int) *translationCache {
	if maxEntries <= 0 {
		maxEntries = defaultCacheSize
	}
	return &translationCache{
		items: make(map[string]*list.Element),
		order: list.New(),
		max:   maxEntries,
	}
}

// generation returns the current invalidation generation.
func (c *translationCache) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// get retrieves a cached resolution.
func (c *translationCache) get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}
	return elem.Value.(*cacheEntry).value, true
}

// put stores a resolution computed under the given generation. Stale
// generations are dropped. Existing keys are overwritten in place without
// changing their eviction position.
func (c *translationCache) put(key, value string, gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.gen {
		return
	}

	if elem, ok := c.items[key]; ok {
		elem.Value.(*cacheEntry).value = value
		return
	}

	if len(c.items) >= c.max {
		if oldest := c.order.Back(); oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, value: value})
}

// clear drops every entry and bumps the generation.
func (c *translationCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.gen++
}

// len reports the number of cached entries.
func (c *translationCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// cacheKeyFor derives the cache key for a resolution. Parameter values are
// serialized in sorted key order so logically equal maps produce equal keys.
// Parameters that cannot be serialized deterministically (cycles, channels,
// functions) make the resolution uncacheable: it is computed fresh on every
// call rather than cached under an unstable key.
func cacheKeyFor(locale, key string, params M) (string, bool) {
	var sb strings.Builder
	sb.WriteString(locale)
	sb.WriteByte(0x1f)
	sb.WriteString(key)

	if len(params) == 0 {
		return sb.String(), true
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := json.Marshal(params[name])
		if err != nil {
			return "", false
		}
		sb.WriteByte(0x1f)
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.Write(data)
	}

	return sb.String(), true
}
