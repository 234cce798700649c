package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/markpipe/core/activetext"
	"github.com/gaurav-prasanna/markpipe/core/engine"
)

func parseToMarkdown(t *testing.T, fragment string) string {
	t.Helper()
	seq, err := New().Parse(fragment)
	require.NoError(t, err)
	require.NoError(t, seq.Wellformed())
	return engine.New().Render(seq)
}

func TestParseParagraphWithInlineFormatting(t *testing.T) {
	out := parseToMarkdown(t, `<p>Hello <strong>world</strong>, see <em>this</em></p>`)
	assert.Equal(t, "Hello **world**, see *this*\n", out)
}

func TestParseHeadings(t *testing.T) {
	out := parseToMarkdown(t, `<h1>One</h1><p>text</p><h3>Three</h3>`)
	assert.Equal(t, "## One\n\ntext\n\n## Three\n", out)
}

func TestParseLists(t *testing.T) {
	out := parseToMarkdown(t, `
		<ol>
			<li>first</li>
			<li>second</li>
		</ol>
		<ul>
			<li>bullet</li>
		</ul>`)
	assert.Equal(t, "1. first\n2. second\n- bullet\n", out)
}

func TestParseNestedList(t *testing.T) {
	out := parseToMarkdown(t, `<ul><li>outer<ul><li>inner</li></ul></li></ul>`)
	assert.Equal(t, "- outer\n    - inner\n", out)
}

func TestParseLinks(t *testing.T) {
	out := parseToMarkdown(t, `<p>see <a href="https://example.com">the docs</a></p>`)
	assert.Equal(t, "see [the docs](https://example.com)\n", out)

	out = parseToMarkdown(t, `<p><a href="https://example.com"></a></p>`)
	assert.Equal(t, "<https://example.com>\n", out)

	out = parseToMarkdown(t, `<p><a>anchor without target</a></p>`)
	assert.Equal(t, "anchor without target\n", out)
}

func TestParseCodeKeepsLiteralText(t *testing.T) {
	out := parseToMarkdown(t, `<p>run <code>rm -rf *</code> carefully</p>`)
	assert.Equal(t, "run `rm -rf *` carefully\n", out)
}

func TestParseSkipsScriptsAndCollapsesWhitespace(t *testing.T) {
	out := parseToMarkdown(t, `
		<div>
			<script>alert(1)</script>
			<p>a
			b</p>
		</div>`)
	assert.Equal(t, "a b\n", out)
}

func TestParseEscapesLiteralMarkdownSyntax(t *testing.T) {
	out := parseToMarkdown(t, `<p>*not emphasis*</p>`)
	assert.Equal(t, "\\*not emphasis\\*\n", out)
}

func TestParseUnknownElementsAreTransparent(t *testing.T) {
	out := parseToMarkdown(t, `<p><span>wrapped</span> text</p>`)
	assert.Equal(t, "wrapped text\n", out)
}

func TestParseStrayListItemBecomesBlock(t *testing.T) {
	seq, err := New().Parse(`<li>loose</li>`)
	require.NoError(t, err)
	require.NoError(t, seq.Wellformed())
	assert.Equal(t, "loose\n", engine.New().Render(seq))
}

func TestParseProducesWellformedSequenceForMessyInput(t *testing.T) {
	seq, err := New().Parse(`<div><ul>stray text<li>ok</li></ul><p>tail`)
	require.NoError(t, err)
	require.NoError(t, seq.Wellformed())
	assert.Equal(t, activetext.KindDocument, seq[0].Kind)
	assert.Equal(t, "- ok\n\ntail\n", engine.New().Render(seq))
}

func TestParseBlockInsideInlineIsTransparent(t *testing.T) {
	out := parseToMarkdown(t, `<strong><div>x</div></strong>`)
	assert.Equal(t, "**x**\n", out)
}

func TestParseCardLink(t *testing.T) {
	out := parseToMarkdown(t, `<a href="https://example.com/post"><div><h3>Read more</h3></div></a>`)
	assert.Equal(t, "[Read more](https://example.com/post)\n", out)
}
