// Package render — JSON renderer.
// Builds the structured JSON output from Markdown and document metadata.
// Scans the Markdown for structural information (headings, links, code
// spans, lists) without inferring any business-specific fields.
package render

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/markpipe/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts Markdown and metadata into the document JSON structure.
func (r *JSONRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	headings := extractHeadings(markdown)

	doc := core.DocumentJSON{
		Metadata: meta,
		Content: core.DocumentContent{
			Text:     stripMarkdown(markdown),
			Markdown: markdown,
			Sections: buildSections(markdown, headings),
		},
		Structure: core.DocumentStructure{
			Headings:  headings,
			Links:     extractLinks(markdown),
			CodeSpans: countCodeSpans(markdown),
			Lists:     countLists(markdown),
		},
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// --- Markdown scanning helpers ---

var headingRegex = regexp.MustCompile(`(?m)^(#{1,6})\s+(.+)$`)

func extractHeadings(md string) []core.Heading {
	matches := headingRegex.FindAllStringSubmatch(md, -1)
	headings := make([]core.Heading, 0, len(matches))
	for _, m := range matches {
		headings = append(headings, core.Heading{
			Level: len(m[1]),
			Text:  unescape(strings.TrimSpace(m[2])),
		})
	}
	return headings
}

// linkRegex matches Markdown links [text](url); bareURLRegex matches
// autolinks <url>.
var (
	linkRegex    = regexp.MustCompile(`\[([^\]]*)\]\(([^)]+)\)`)
	bareURLRegex = regexp.MustCompile(`<(https?://[^>\s]+)>`)
)

func extractLinks(md string) []core.Link {
	var links []core.Link
	for _, m := range linkRegex.FindAllStringSubmatch(md, -1) {
		links = append(links, core.Link{Text: unescape(m[1]), Href: m[2]})
	}
	for _, m := range bareURLRegex.FindAllStringSubmatch(md, -1) {
		links = append(links, core.Link{Text: m[1], Href: m[1]})
	}
	return links
}

func buildSections(md string, headings []core.Heading) []core.Section {
	if len(headings) == 0 {
		return nil
	}

	lines := strings.Split(md, "\n")
	sections := make([]core.Section, 0, len(headings))
	headingIdx := 0

	var current *core.Section
	var body []string

	flush := func() {
		if current != nil {
			current.Text = unescape(strings.TrimSpace(strings.Join(body, "\n")))
			sections = append(sections, *current)
		}
	}

	for _, line := range lines {
		if headingRegex.MatchString(line) && headingIdx < len(headings) {
			flush()
			current = &core.Section{
				Heading: headings[headingIdx].Text,
				Level:   headings[headingIdx].Level,
			}
			body = nil
			headingIdx++
		} else if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections
}

// countCodeSpans counts backtick-delimited inline code spans. A span closes
// with a delimiter run of the same length it opened with, so widened
// delimiters like `` `foo` `` count as one span, not three.
func countCodeSpans(md string) int {
	runs := backtickRegex.FindAllString(md, -1)
	count := 0
	for i := 0; i < len(runs); {
		open := len(runs[i])
		closed := false
		for j := i + 1; j < len(runs); j++ {
			if len(runs[j]) == open {
				count++
				i = j + 1
				closed = true
				break
			}
		}
		if !closed {
			i++
		}
	}
	return count
}

// countLists counts list items (lines starting with - or * or 1.).
var listItemRegex = regexp.MustCompile(`(?m)^[\s]*[-*]\s|^[\s]*\d+\.\s`)

func countLists(md string) int {
	return len(listItemRegex.FindAllString(md, -1))
}

// escapedCharRegex matches a backslash-escaped Markdown metacharacter.
var escapedCharRegex = regexp.MustCompile("\\\\([\\\\`*_{}\\[\\]<>()#+!|-])")

// unescape reverses the engine's text escaping: backslash escapes drop their
// backslash and non-breaking-space entities become plain spaces.
func unescape(text string) string {
	text = escapedCharRegex.ReplaceAllString(text, "$1")
	return strings.ReplaceAll(text, "&nbsp;", " ")
}

var (
	emphasisRegex = regexp.MustCompile(`\*{1,3}([^*]+)\*{1,3}`)
	backtickRegex = regexp.MustCompile("`+")
	blankRunRegex = regexp.MustCompile(`\n{3,}`)
)

// stripMarkdown removes Markdown formatting to produce plain text. Escapes
// are undone first so stray backslashes don't survive into the plain text;
// the strip is lossy for literal text that looks like Markdown, which is
// acceptable for a search/preview field.
func stripMarkdown(md string) string {
	text := unescape(md)
	// Remove heading markers.
	text = headingRegex.ReplaceAllString(text, "$2")
	// Remove bold/italic markers.
	text = emphasisRegex.ReplaceAllString(text, "$1")
	// Remove links, keep text; autolinks keep the URL.
	text = linkRegex.ReplaceAllString(text, "$1")
	text = bareURLRegex.ReplaceAllString(text, "$1")
	// Remove inline code delimiters.
	text = backtickRegex.ReplaceAllString(text, "")
	// Collapse leftover blank runs.
	text = blankRunRegex.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
