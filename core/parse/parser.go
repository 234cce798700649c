// Package parse implements the active-text producer for HTML input.
// It walks a cleaned HTML fragment and emits the flat, properly nested
// element sequence the rendering engine consumes.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/markpipe/core/activetext"
)

// blockTags maps HTML block elements onto block-level action kinds.
// li is handled separately because it only becomes a list item inside a list.
var blockTags = map[string]activetext.Kind{
	"p":          activetext.KindParagraph,
	"h1":         activetext.KindHeading,
	"h2":         activetext.KindHeading,
	"h3":         activetext.KindHeading,
	"h4":         activetext.KindHeading,
	"h5":         activetext.KindHeading,
	"h6":         activetext.KindHeading,
	"ul":         activetext.KindUnorderedList,
	"ol":         activetext.KindOrderedList,
	"div":        activetext.KindBlock,
	"section":    activetext.KindBlock,
	"article":    activetext.KindBlock,
	"aside":      activetext.KindBlock,
	"main":       activetext.KindBlock,
	"blockquote": activetext.KindBlock,
	"figure":     activetext.KindBlock,
	"pre":        activetext.KindBlock,
	"td":         activetext.KindBlock,
	"th":         activetext.KindBlock,
}

// inlineTags maps HTML inline formatting elements onto inline action kinds.
var inlineTags = map[string]activetext.Kind{
	"strong": activetext.KindStrong,
	"b":      activetext.KindStrong,
	"em":     activetext.KindEmphasis,
	"i":      activetext.KindEmphasis,
	"code":   activetext.KindMono,
	"tt":     activetext.KindMono,
	"samp":   activetext.KindMono,
	"var":    activetext.KindVar,
	"kbd":    activetext.KindVar,
}

// skipTags are elements whose entire subtree carries no renderable text.
// The extractor removes most of these already; the parser skips stragglers.
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
	"head": true, "title": true, "meta": true, "link": true, "base": true,
	"img": true, "svg": true, "canvas": true, "iframe": true,
	"video": true, "audio": true, "object": true,
	"input": true, "select": true, "textarea": true, "button": true,
}

// blockContext are elements whose whitespace-only text children are markup
// formatting, not content.
var blockContext = map[string]bool{
	"html": true, "body": true, "div": true, "section": true, "article": true,
	"aside": true, "main": true, "blockquote": true, "figure": true,
	"ul": true, "ol": true, "li": true, "table": true, "thead": true,
	"tbody": true, "tr": true, "header": true, "footer": true, "nav": true,
}

var whitespaceRun = regexp.MustCompile(`[ \t\r\n\f]+`)

// HTMLParser produces active-text sequences from HTML fragments.
type HTMLParser struct{}

// New creates an HTMLParser.
func New() *HTMLParser {
	return &HTMLParser{}
}

// Parse converts an HTML fragment into a well-formed active-text sequence.
// The fragment is typically the extractor's output; a full page works too.
func (p *HTMLParser) Parse(fragment string) (activetext.Sequence, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	b := activetext.NewBuilder().Open(activetext.KindDocument)
	w := &walker{b: b}
	// html.Parse always produces an html>body envelope around fragments.
	doc.Find("body").Each(func(_ int, sel *goquery.Selection) {
		for _, n := range sel.Nodes {
			w.walkChildren(n)
		}
	})

	seq, err := b.Close(activetext.KindDocument).Build()
	if err != nil {
		return nil, fmt.Errorf("building element sequence: %w", err)
	}
	if err := seq.Wellformed(); err != nil {
		return nil, fmt.Errorf("malformed element sequence: %w", err)
	}
	return seq, nil
}

// walker carries the builder and the current list and inline nesting depths
// through the node traversal.
type walker struct {
	b           *activetext.Builder
	listDepth   int
	inlineDepth int
}

func (w *walker) walkChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *walker) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n)
	case html.ElementNode:
		w.element(n)
	}
}

func (w *walker) text(n *html.Node) {
	parent := ""
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		parent = n.Parent.Data
	}
	// Text directly inside a list container is markup slack; lists hold
	// only items.
	if parent == "ul" || parent == "ol" {
		return
	}
	collapsed := whitespaceRun.ReplaceAllString(n.Data, " ")
	if strings.TrimSpace(collapsed) == "" && blockContext[parent] {
		return
	}
	w.b.Text(collapsed)
}

func (w *walker) element(n *html.Node) {
	tag := n.Data
	if skipTags[tag] {
		return
	}
	if tag == "br" {
		w.b.Text(" ")
		return
	}
	if tag == "li" {
		if w.inlineDepth > 0 {
			w.walkChildren(n)
			return
		}
		if w.listDepth == 0 {
			// A stray item outside any list degrades to a plain block.
			w.b.Open(activetext.KindBlock)
			w.walkChildren(n)
			w.b.Close(activetext.KindBlock)
			return
		}
		w.b.Open(activetext.KindListItem)
		w.walkChildren(n)
		w.b.Close(activetext.KindListItem)
		return
	}
	if tag == "a" {
		w.b.OpenLink(attr(n, "href"))
		w.inlineDepth++
		w.walkChildren(n)
		w.inlineDepth--
		w.b.Close(activetext.KindLink)
		return
	}
	if kind, ok := inlineTags[tag]; ok {
		w.b.Open(kind)
		w.inlineDepth++
		w.walkChildren(n)
		w.inlineDepth--
		w.b.Close(kind)
		return
	}
	if kind, ok := blockTags[tag]; ok {
		// HTML lets flow content nest inside formatting elements (card
		// links like <a><div>…</div></a>), but inline scopes cannot
		// contain block-level scopes. Inside an open inline scope a
		// block tag is transparent: its children render in place.
		if w.inlineDepth > 0 {
			w.walkChildren(n)
			return
		}
		if kind == activetext.KindUnorderedList || kind == activetext.KindOrderedList {
			w.listDepth++
			w.b.Open(kind)
			w.walkChildren(n)
			w.b.Close(kind)
			w.listDepth--
			return
		}
		w.b.Open(kind)
		w.walkChildren(n)
		w.b.Close(kind)
		return
	}
	// Unknown elements (span, tables rows, etc.) are transparent.
	w.walkChildren(n)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
