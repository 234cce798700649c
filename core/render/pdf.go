// Package render — PDF renderer.
// Converts the canonical Markdown into a styled PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, inline code, and
// lists. Fenced code blocks only occur on the compat normalizer path but are
// rendered all the same.
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/markpipe/core"
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

var numberItemRegex = regexp.MustCompile(`^\d+\.\s`)

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title from metadata.
	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, meta.Title, "", "L", false)
		pdf.Ln(4)
	}

	// Source line.
	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, "Source: "+meta.Source, "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	// Walk the Markdown line by line.
	inCodeBlock := false
	for _, line := range strings.Split(markdown, "\n") {
		// Toggle fenced-code state.
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, line, "", "L", true)
			continue
		}

		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}

		// Headings.
		if strings.HasPrefix(line, "#") {
			level := len(line) - len(strings.TrimLeft(line, "#"))
			text := strings.TrimSpace(strings.TrimLeft(line, "# "))
			renderHeading(pdf, text, level)
			continue
		}

		trimmed := strings.TrimSpace(line)

		// Bullet list items.
		if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
			pdf.SetFont("Helvetica", "", 10)
			text := "• " + cleanInlineMarkdown(trimmed[2:])
			pdf.MultiCell(0, 5, indentOf(line)+text, "", "L", false)
			continue
		}

		// Numbered list items.
		if numberItemRegex.MatchString(trimmed) {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, indentOf(line)+cleanInlineMarkdown(trimmed), "", "L", false)
			continue
		}

		// Regular paragraph text.
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, cleanInlineMarkdown(trimmed), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// indentOf preserves a list item's leading indentation in the PDF line.
func indentOf(line string) string {
	return line[:len(line)-len(strings.TrimLeft(line, " "))]
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, cleanInlineMarkdown(text), "", "L", false)
	pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	// Remove bold/italic markers.
	text = emphasisRegex.ReplaceAllString(text, "$1")
	// Remove inline code delimiters.
	text = backtickRegex.ReplaceAllString(text, "")
	// Remove link syntax, keep text; autolinks keep the URL.
	text = linkRegex.ReplaceAllString(text, "$1")
	text = bareURLRegex.ReplaceAllString(text, "$1")
	// Undo the engine's text escaping.
	text = unescape(text)
	return strings.TrimSpace(text)
}
