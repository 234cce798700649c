// Package activetext defines the element model consumed by the rendering
// engine: a flat, pre-nested sequence of text runs and open/close actions.
// Producers (the HTML parser, test builders) emit a Sequence; the engine
// consumes it in one pass.
package activetext

import "fmt"

// Kind identifies an element. KindText marks a literal text run; every other
// kind is an action kind, either block-level or inline.
type Kind int

const (
	KindText Kind = iota

	// Block-level action kinds.
	KindDocument
	KindBlock
	KindParagraph
	KindHeading
	KindUnorderedList
	KindOrderedList
	KindListItem

	// Inline action kinds.
	KindLink
	KindStrong
	KindWarning
	KindEmphasis
	KindVar
	KindMono
)

// IsBlockLevel reports whether k is a block-level action kind.
func (k Kind) IsBlockLevel() bool {
	return k >= KindDocument && k <= KindListItem
}

// IsInline reports whether k is an inline action kind.
func (k Kind) IsInline() bool {
	return k >= KindLink && k <= KindMono
}

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindDocument:
		return "document"
	case KindBlock:
		return "block"
	case KindParagraph:
		return "paragraph"
	case KindHeading:
		return "heading"
	case KindUnorderedList:
		return "unordered-list"
	case KindOrderedList:
		return "ordered-list"
	case KindListItem:
		return "list-item"
	case KindLink:
		return "link"
	case KindStrong:
		return "strong"
	case KindWarning:
		return "warning"
	case KindEmphasis:
		return "emphasis"
	case KindVar:
		return "var"
	case KindMono:
		return "mono"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// State distinguishes opening and closing actions.
type State int

const (
	StateOpen State = iota
	StateClose
)

func (s State) String() string {
	if s == StateClose {
		return "close"
	}
	return "open"
}

// AttrURL is the attribute key carrying a link target. Only KindLink uses
// attributes.
const AttrURL = "url"

// Element is one entry of an active-text sequence: either a literal text run
// (Kind == KindText, Text set) or an open/close action (Kind, State set,
// Attrs optionally set).
type Element struct {
	Kind  Kind
	State State
	Text  string
	Attrs map[string]string
}

// Attr returns the named attribute, or "" if absent.
func (e Element) Attr(key string) string {
	return e.Attrs[key]
}

// TextElement makes a literal text run.
func TextElement(text string) Element {
	return Element{Kind: KindText, Text: text}
}

// OpenAction makes an opening action of the given kind.
func OpenAction(kind Kind) Element {
	return Element{Kind: kind, State: StateOpen}
}

// OpenLink makes an opening link action carrying the target URL.
func OpenLink(url string) Element {
	return Element{Kind: KindLink, State: StateOpen, Attrs: map[string]string{AttrURL: url}}
}

// CloseAction makes a closing action of the given kind.
func CloseAction(kind Kind) Element {
	return Element{Kind: kind, State: StateClose}
}
