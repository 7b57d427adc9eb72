package polyglot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslationCache(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(4)
		c.put("k", "v", c.generation())

		got, ok := c.get("k")
		require.True(t, ok)
		assert.Equal(t, "v", got)
	})

	t.Run("miss on unknown key", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(4)
		_, ok := c.get("missing")
		assert.False(t, ok)
	})

	t.Run("evicts oldest inserted at capacity", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(2)
		gen := c.generation()
		c.put("a", "1", gen)
		c.put("b", "2", gen)
		c.put("c", "3", gen)

		_, ok := c.get("a")
		assert.False(t, ok, "oldest entry should be evicted")
		_, ok = c.get("b")
		assert.True(t, ok)
		_, ok = c.get("c")
		assert.True(t, ok)
		assert.Equal(t, 2, c.len())
	})

	t.Run("overwrite does not change eviction order", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(2)
		gen := c.generation()
		c.put("a", "1", gen)
		c.put("b", "2", gen)
		c.put("a", "updated", gen)
		c.put("c", "3", gen)

		_, ok := c.get("a")
		assert.False(t, ok, "a is still the oldest insertion")
		got, ok := c.get("b")
		require.True(t, ok)
		assert.Equal(t, "2", got)
	})

	t.Run("clear drops everything and bumps generation", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(4)
		gen := c.generation()
		c.put("k", "v", gen)

		c.clear()

		_, ok := c.get("k")
		assert.False(t, ok)
		assert.NotEqual(t, gen, c.generation())
	})

	t.Run("stale generation store is dropped", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(4)
		gen := c.generation()

		c.clear() // concurrent invalidation
		c.put("k", "stale", gen)

		_, ok := c.get("k")
		assert.False(t, ok, "in-flight store must not resurrect stale data")
	})

	t.Run("zero capacity selects default", func(t *testing.T) {
		t.Parallel()
		c := newTranslationCache(0)
		gen := c.generation()
		for range defaultCacheSize {
			c.put("k", "v", gen)
		}
		assert.Equal(t, 1, c.len())
	})
}

func TestCacheKeyFor(t *testing.T) {
	t.Parallel()

	t.Run("equal params produce equal keys regardless of order", func(t *testing.T) {
		t.Parallel()
		k1, ok1 := cacheKeyFor("en", "greeting", M{"a": 1, "b": "x"})
		k2, ok2 := cacheKeyFor("en", "greeting", M{"b": "x", "a": 1})
		require.True(t, ok1)
		require.True(t, ok2)
		assert.Equal(t, k1, k2)
	})

	t.Run("different params produce different keys", func(t *testing.T) {
		t.Parallel()
		k1, _ := cacheKeyFor("en", "greeting", M{"a": 1})
		k2, _ := cacheKeyFor("en", "greeting", M{"a": 2})
		assert.NotEqual(t, k1, k2)
	})

	t.Run("locale and key are part of the identity", func(t *testing.T) {
		t.Parallel()
		k1, _ := cacheKeyFor("en", "greeting", nil)
		k2, _ := cacheKeyFor("es", "greeting", nil)
		k3, _ := cacheKeyFor("en", "farewell", nil)
		assert.NotEqual(t, k1, k2)
		assert.NotEqual(t, k1, k3)
	})

	t.Run("unserializable params are uncacheable", func(t *testing.T) {
		t.Parallel()
		_, ok := cacheKeyFor("en", "greeting", M{"fn": func() {}})
		assert.False(t, ok)
	})

	t.Run("cyclic params are uncacheable, not fatal", func(t *testing.T) {
		t.Parallel()
		cyclic := map[string]any{}
		cyclic["self"] = cyclic

		_, ok := cacheKeyFor("en", "greeting", M{"c": cyclic})
		assert.False(t, ok)
	})
}
