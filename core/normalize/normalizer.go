// Package normalize implements the Normalizer interface.
// It converts cleaned HTML into Markdown, which serves as the
// canonical intermediate format for all downstream renderers.
//
// The default path parses the HTML into an active-text element sequence and
// runs it through the rendering engine. A compat path delegates to the
// html-to-markdown library instead, for comparing outputs.
package normalize

import (
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/gaurav-prasanna/markpipe/core/engine"
	"github.com/gaurav-prasanna/markpipe/core/parse"
)

// EngineNormalizer converts HTML to Markdown through the active-text
// rendering engine.
type EngineNormalizer struct {
	parser   *parse.HTMLParser
	renderer *engine.Renderer
}

// New creates an EngineNormalizer.
func New() *EngineNormalizer {
	return &EngineNormalizer{
		parser:   parse.New(),
		renderer: engine.New(),
	}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *EngineNormalizer) Normalize(html string) (string, error) {
	seq, err := n.parser.Parse(html)
	if err != nil {
		return "", fmt.Errorf("parsing HTML into active text: %w", err)
	}
	return n.renderer.Render(seq), nil
}

// CompatNormalizer converts HTML to Markdown using html-to-markdown.
// It exists for output comparison against the engine path.
type CompatNormalizer struct{}

// NewCompat creates a CompatNormalizer.
func NewCompat() *CompatNormalizer {
	return &CompatNormalizer{}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *CompatNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", fmt.Errorf("converting HTML to markdown: %w", err)
	}
	return markdown, nil
}
