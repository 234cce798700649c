package engine

import (
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/markpipe/core/md"
)

// chunk is a node of the content chunk tree built while consuming the
// element stream. The variant set is closed: blocks are the text-bearing
// leaves, containers hold ordered children.
type chunk interface {
	chunkDepth() int
	markClosed()
	render() string
}

type blockKind int

const (
	blockPlain blockKind = iota
	blockParagraph
	blockHeading
)

// block is a leaf chunk owning an inline formatting stack. A plain block is
// the synthetic wrapper for inline content that arrives without an explicit
// paragraph or heading around it.
type block struct {
	kind   blockKind
	depth  int
	closed bool
	inline *inlineStack
}

func newBlock(kind blockKind, depth int) *block {
	return &block{kind: kind, depth: depth, inline: newInlineStack()}
}

func (b *block) chunkDepth() int { return b.depth }
func (b *block) markClosed()     { b.closed = true }

// isEmpty reports whether the block carries no visible content.
func (b *block) isEmpty() bool { return b.inline.isEmpty() }

// text returns the block's final rendered text with leading whitespace
// stripped.
func (b *block) text() string {
	return strings.TrimLeftFunc(b.inline.rootText(), unicode.IsSpace)
}

// render produces the block's Markdown. Paragraphs and headings carry their
// own blank-line framing; surplus blank lines collapse during normalization.
func (b *block) render() string {
	switch b.kind {
	case blockParagraph:
		return "\n" + md.Paragraph(b.text(), b.depth) + "\n\n"
	case blockHeading:
		return "\n" + md.Heading(b.text(), 2, b.depth) + "\n\n"
	default:
		return md.Paragraph(b.text(), b.depth) + "\n"
	}
}

type containerKind int

const (
	containerDocument containerKind = iota
	containerBulletItem
	containerNumberItem
)

// container is a chunk holding ordered child chunks: the document root or a
// list item.
type container struct {
	kind     containerKind
	depth    int
	number   int
	closed   bool
	children []chunk
}

func (c *container) chunkDepth() int { return c.depth }
func (c *container) markClosed()     { c.closed = true }

// openBlock returns the container's current open block: the last child if it
// is a block that has not been closed, otherwise a fresh plain block appended
// at the container's depth. Text and inline handling route through here.
func (c *container) openBlock() *block {
	if n := len(c.children); n > 0 {
		if b, ok := c.children[n-1].(*block); ok && !b.closed {
			return b
		}
	}
	b := newBlock(blockPlain, c.depth)
	c.children = append(c.children, b)
	return b
}

// trimEmptyBlocks returns the children with empty blocks removed, so a block
// whose entire content was discarded does not leave a vacuous paragraph or
// list item behind. Containers are always kept.
func (c *container) trimEmptyBlocks() []chunk {
	kept := make([]chunk, 0, len(c.children))
	for _, ch := range c.children {
		if b, ok := ch.(*block); ok && b.isEmpty() {
			continue
		}
		kept = append(kept, ch)
	}
	return kept
}

func (c *container) render() string {
	kids := c.trimEmptyBlocks()
	if c.kind == containerDocument {
		var sb strings.Builder
		for _, ch := range kids {
			sb.WriteString(ch.render())
		}
		return sb.String()
	}
	return c.renderListItem(kids)
}

// renderListItem renders the item's marker line from its first block child
// and everything else as nested content beneath the item.
func (c *container) renderListItem(kids []chunk) string {
	if len(kids) == 0 {
		return c.marker("") + "\n"
	}
	var sb strings.Builder
	rest := kids
	if b, ok := kids[0].(*block); ok {
		// A paragraph or heading opens with a line break; keep the
		// blank line so the marker stays separated from what precedes
		// the list.
		if strings.HasPrefix(b.render(), "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString(c.marker(b.text()) + "\n")
		rest = kids[1:]
	} else {
		sb.WriteString(c.marker("") + "\n")
	}
	for _, ch := range rest {
		sb.WriteString(ch.render())
	}
	return sb.String()
}

func (c *container) marker(text string) string {
	if c.kind == containerNumberItem {
		return md.NumberListItem(text, c.number, c.depth-1)
	}
	return md.BulletListItem(text, c.depth-1)
}
