// Package sanitize provides a polyglot plugin that strips unsafe HTML from
// resolved message text. Useful when translations come from channels that
// cannot be fully trusted, or combined with the markdown plugin to bound what
// rendered messages may contain.
package sanitize

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/polyglot"
)

// Plugin sanitizes resolved messages with a bluemonday policy.
type Plugin struct {
	policy *bluemonday.Policy
}

// New creates the plugin with a policy allowing basic formatting elements
// (p, br, strong, em, lists, code, links with enforced rel=nofollow).
func New() *Plugin {
	policy := bluemonday.NewPolicy()
	policy.AllowStandardURLs()
	policy.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
	)
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)

	return &Plugin{policy: policy}
}

// NewStrict creates the plugin with a policy that strips all HTML,
// leaving plain text.
func NewStrict() *Plugin {
	return &Plugin{policy: bluemonday.StrictPolicy()}
}

// NewWithPolicy creates the plugin with a custom policy.
// A nil policy panics at construction rather than at resolution time.
func NewWithPolicy(policy *bluemonday.Policy) *Plugin {
	if policy == nil {
		panic("sanitize: policy is not provided")
	}
	return &Plugin{policy: policy}
}

// Name implements polyglot.Plugin.
func (p *Plugin) Name() string { return "sanitize" }

// Transform implements polyglot.Transformer.
func (p *Plugin) Transform(_ string, text string, _ polyglot.M, _ string) (string, error) {
	return p.policy.Sanitize(text), nil
}

var (
	_ polyglot.Plugin      = (*Plugin)(nil)
	_ polyglot.Transformer = (*Plugin)(nil)
)
