package polyglot

import (
	"maps"
	"strings"
)

// deniedKeys lists container keys that are never merged into a message tree.
// Message files often come from the same untrusted channels as user content,
// and these keys are meaningless as message identifiers.
var deniedKeys = map[string]struct{}{
	"__proto__":   {},
	"constructor": {},
	"prototype":   {},
}

// lookupMessage resolves a key against a message tree.
// The exact key is tried as a literal entry first; otherwise the key is
// treated as a dot-separated path and traversed node by node. Missing or
// non-traversable intermediate nodes report absence, never an error.
func lookupMessage(tree map[string]any, key string) (string, bool) {
	if tree == nil || key == "" {
		return "", false
	}

	if v, ok := tree[key]; ok {
		if s, ok := v.(string); ok {
			return s, true
		}
	}

	if !strings.Contains(key, ".") {
		return "", false
	}

	var current any = tree
	for part := range strings.SplitSeq(key, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return "", false
		}
		current, ok = node[part]
		if !ok {
			return "", false
		}
	}

	s, ok := current.(string)
	return s, ok
}

// hasMessage reports whether a key resolves to a template in the tree.
func hasMessage(tree map[string]any, key string) bool {
	_, ok := lookupMessage(tree, key)
	return ok
}

// mergeTrees deep-merges src into dst and returns a new tree; neither input
// is mutated, so snapshots handed out before the merge stay valid.
// Nested containers merge key by key; scalars, slices, and opaque leaves
// (time values and the like) are replaced wholesale. Nil source values are
// skipped so partial updates cannot erase existing messages, and denied keys
// are dropped.
func mergeTrees(dst, src map[string]any) map[string]any {
	out := make(map[string]any, len(dst)+len(src))
	maps.Copy(out, dst)

	for key, value := range src {
		if _, denied := deniedKeys[key]; denied {
			continue
		}
		if value == nil {
			continue
		}

		if srcNode, ok := value.(map[string]any); ok {
			dstNode, _ := out[key].(map[string]any)
			out[key] = mergeTrees(dstNode, srcNode)
			continue
		}

		out[key] = value
	}

	return out
}
