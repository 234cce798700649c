// Package core defines the pipeline interfaces for MarkPipe.
// Each stage of the pipeline is a clean, testable interface: raw HTML comes
// in, Markdown is the canonical intermediate format, and renderers turn it
// into the final output.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
// ContentType is the response media type without parameters (e.g.
// "text/html"), or "" when the server sent none.
type FetchResult struct {
	URL         string
	StatusCode  int
	ContentType string
	HTML        string
}

// DocumentMetadata holds metadata about the converted document.
type DocumentMetadata struct {
	Source      string `json:"source"` // URL or file path
	Domain      string `json:"domain,omitempty"`
	Path        string `json:"path,omitempty"`
	Title       string `json:"title"`
	ConvertedAt string `json:"converted_at"` // ISO8601
}

// Section represents a heading-delimited section of the Markdown output.
type Section struct {
	Heading string `json:"heading"`
	Level   int    `json:"level"`
	Text    string `json:"text"`
}

// Heading represents a single heading in the Markdown output.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink in the Markdown output.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// DocumentContent holds the text and structured content of a document.
type DocumentContent struct {
	Text     string    `json:"text"`
	Markdown string    `json:"markdown"`
	Sections []Section `json:"sections"`
}

// DocumentStructure holds structural metadata parsed from the content.
type DocumentStructure struct {
	Headings  []Heading `json:"headings"`
	Links     []Link    `json:"links"`
	CodeSpans int       `json:"code_spans"`
	Lists     int       `json:"lists"`
}

// DocumentJSON is the complete JSON output for a single document.
type DocumentJSON struct {
	Metadata  DocumentMetadata  `json:"metadata"`
	Content   DocumentContent   `json:"content"`
	Structure DocumentStructure `json:"structure"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the main content from raw HTML, stripping noise.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta DocumentMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
