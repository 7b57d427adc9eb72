// Package markdown provides a polyglot plugin that renders resolved message
// text from Markdown to HTML.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/dmitrymomot/polyglot"
)

// Plugin renders resolved messages as HTML. Interpolation runs after the
// transform stage, so placeholders survive rendering untouched.
type Plugin struct {
	md goldmark.Markdown
	// inline drops the wrapping <p> tag for single-paragraph messages,
	// which is what short UI strings almost always want.
	inline bool
}

// New creates the plugin. Single-paragraph output is unwrapped by default;
// use NewBlock to keep full block-level HTML.
func New() *Plugin {
	return &Plugin{md: goldmark.New(), inline: true}
}

// NewBlock creates the plugin without paragraph unwrapping.
func NewBlock() *Plugin {
	return &Plugin{md: goldmark.New()}
}

// Name implements polyglot.Plugin.
func (p *Plugin) Name() string { return "markdown" }

// Transform implements polyglot.Transformer.
func (p *Plugin) Transform(_ string, text string, _ polyglot.M, _ string) (string, error) {
	var buf bytes.Buffer
	if err := p.md.Convert([]byte(text), &buf); err != nil {
		return "", err
	}

	out := strings.TrimSpace(buf.String())
	if p.inline {
		if inner, ok := unwrapParagraph(out); ok {
			return inner, nil
		}
	}
	return out, nil
}

// unwrapParagraph strips a single surrounding <p>...</p>.
func unwrapParagraph(s string) (string, bool) {
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s, false
	}
	inner := s[len("<p>") : len(s)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s, false
	}
	return inner, true
}

var (
	_ polyglot.Plugin      = (*Plugin)(nil)
	_ polyglot.Transformer = (*Plugin)(nil)
)
