// Package render provides output renderers for the MarkPipe pipeline.
// This file implements the Markdown renderer.
package render

import (
	"strings"

	"github.com/gaurav-prasanna/markpipe/core"
)

// MarkdownRenderer writes Markdown nearly as-is, since Markdown is already
// the canonical pipeline format. It only enforces the trailing-newline
// discipline: the engine path guarantees it, the compat converter does not.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns the Markdown as bytes, ending in exactly one newline.
// Empty documents stay empty.
func (r *MarkdownRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	if markdown == "" {
		return []byte{}, nil
	}
	return []byte(strings.TrimRight(markdown, "\n") + "\n"), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
