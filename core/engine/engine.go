// Package engine converts an active-text element sequence into a well-formed
// Markdown string. It builds a content chunk tree in one pass over the
// sequence, driving a container stack, a list-state stack, and a per-block
// inline formatting stack, then renders the tree bottom-up and normalizes
// blank lines.
//
// The input must satisfy the nesting contract of activetext.Sequence; the
// producer guarantees it, and the engine panics on violations rather than
// returning an error, since a malformed sequence is a bug upstream, not a
// runtime condition.
package engine

import (
	"fmt"

	"github.com/gaurav-prasanna/markpipe/core/activetext"
	"github.com/gaurav-prasanna/markpipe/core/md"
)

// Renderer renders active-text documents to Markdown. It holds no state
// between calls; every Render owns its stacks and chunk tree for the
// duration of the call and discards them on return.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Render consumes the sequence once, left to right, and returns the complete
// Markdown document, newline-terminated. An empty sequence yields the empty
// string. Render panics if the sequence violates the nesting contract.
func (r *Renderer) Render(doc activetext.Sequence) string {
	if len(doc) == 0 {
		return ""
	}
	assertf(doc[0].Kind == activetext.KindDocument && doc[0].State == activetext.StateOpen,
		"sequence must begin with an open document action, got %s %s", doc[0].State, doc[0].Kind)

	root := &container{kind: containerDocument}
	st := &state{containers: []*container{root}}
	for i, el := range doc {
		st.consume(i, el)
	}
	assertf(len(st.containers) == 1, "unclosed list item at end of sequence")
	assertf(len(st.lists) == 0, "unclosed list at end of sequence")

	return md.Normalize(root.render())
}

// listState tracks one open list: whether it numbers its items and the
// running item number at this nesting depth.
type listState struct {
	numbered bool
	number   int
}

// state is the per-call mutable machinery: the container stack (whose bottom
// is the document root) and the list-state stack.
type state struct {
	containers []*container
	lists      []listState
}

func (st *state) current() *container {
	return st.containers[len(st.containers)-1]
}

// consume dispatches one element by category.
func (st *state) consume(pos int, el activetext.Element) {
	switch {
	case el.Kind == activetext.KindText:
		st.current().openBlock().inline.appendText(el.Text)
	case el.Kind.IsBlockLevel():
		if el.State == activetext.StateOpen {
			st.openBlockLevel(pos, el.Kind)
		} else {
			st.closeBlockLevel(pos, el.Kind)
		}
	case el.Kind.IsInline():
		blk := st.current().openBlock()
		if el.State == activetext.StateOpen {
			blk.inline.push(inlineKindOf(el.Kind), el.Attr(activetext.AttrURL))
		} else {
			closed := blk.inline.pop()
			assertf(closed == inlineKindOf(el.Kind),
				"element %d: close %s does not match the innermost open span", pos, el.Kind)
		}
	default:
		assertf(false, "element %d: unknown kind %s", pos, el.Kind)
	}
}

func (st *state) openBlockLevel(pos int, kind activetext.Kind) {
	cur := st.current()
	switch kind {
	case activetext.KindDocument:
		// The root container already exists.
	case activetext.KindUnorderedList:
		st.lists = append(st.lists, listState{})
	case activetext.KindOrderedList:
		st.lists = append(st.lists, listState{numbered: true})
	case activetext.KindListItem:
		assertf(len(st.lists) > 0, "element %d: list item outside a list", pos)
		ls := &st.lists[len(st.lists)-1]
		ls.number++
		itemKind := containerBulletItem
		if ls.numbered {
			itemKind = containerNumberItem
		}
		item := &container{kind: itemKind, depth: cur.depth + 1, number: ls.number}
		cur.children = append(cur.children, item)
		st.containers = append(st.containers, item)
	case activetext.KindBlock:
		cur.children = append(cur.children, newBlock(blockPlain, cur.depth))
	case activetext.KindParagraph:
		cur.children = append(cur.children, newBlock(blockParagraph, cur.depth))
	case activetext.KindHeading:
		cur.children = append(cur.children, newBlock(blockHeading, cur.depth))
	}
}

func (st *state) closeBlockLevel(pos int, kind activetext.Kind) {
	switch kind {
	case activetext.KindDocument:
		// End of stream.
	case activetext.KindUnorderedList, activetext.KindOrderedList:
		assertf(len(st.lists) > 0, "element %d: list close without an open list", pos)
		st.lists = st.lists[:len(st.lists)-1]
	case activetext.KindListItem:
		assertf(len(st.containers) > 1, "element %d: list item close without an open item", pos)
		item := st.current()
		st.containers = st.containers[:len(st.containers)-1]
		item.markClosed()
	case activetext.KindBlock, activetext.KindParagraph, activetext.KindHeading:
		cur := st.current()
		assertf(len(cur.children) > 0, "element %d: %s close without an open block", pos, kind)
		cur.children[len(cur.children)-1].markClosed()
	}
}

// assertf panics when the input breaks the nesting contract. The producer is
// a trusted collaborator, so this is a programming-error fault, never a
// user-facing condition.
func assertf(cond bool, format string, args ...interface{}) {
	if !cond {
		panic(fmt.Sprintf("engine: "+format, args...))
	}
}
