package activetext

import "fmt"

// Sequence is a finite, ordered active-text element stream. A well-formed
// sequence begins with an Open Document action and nests its remaining
// actions properly; that is the contract the rendering engine asserts on.
type Sequence []Element

// Wellformed verifies the nesting contract: the first element is an Open
// Document action, every open action has a matching close at the same depth,
// and inline scopes never cross block boundaries. Producers should check
// their output with it; the engine itself treats violations as programming
// errors.
func (s Sequence) Wellformed() error {
	if len(s) == 0 {
		return nil
	}
	first := s[0]
	if first.Kind != KindDocument || first.State != StateOpen {
		return fmt.Errorf("sequence must begin with an open document action, got %s %s", first.State, first.Kind)
	}

	var stack []Kind
	for i, el := range s {
		switch {
		case el.Kind == KindText:
			if len(stack) == 0 {
				return fmt.Errorf("element %d: text outside the document scope", i)
			}
		case el.State == StateOpen:
			if el.Kind == KindDocument && len(stack) > 0 {
				return fmt.Errorf("element %d: nested document", i)
			}
			if el.Kind.IsBlockLevel() && len(stack) > 0 && stack[len(stack)-1].IsInline() {
				return fmt.Errorf("element %d: block-level %s opened inside inline %s",
					i, el.Kind, stack[len(stack)-1])
			}
			stack = append(stack, el.Kind)
		case el.State == StateClose:
			if len(stack) == 0 {
				return fmt.Errorf("element %d: close %s without a matching open", i, el.Kind)
			}
			top := stack[len(stack)-1]
			if top != el.Kind {
				return fmt.Errorf("element %d: close %s while %s is open", i, el.Kind, top)
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) > 0 {
		return fmt.Errorf("unclosed %s at end of sequence", stack[len(stack)-1])
	}
	return nil
}

// Builder accumulates a Sequence while tracking open scopes, so producers get
// balance checking for free. Methods chain; Build reports the first misuse.
type Builder struct {
	elems Sequence
	stack []Kind
	err   error
}

// NewBuilder returns an empty Builder. The caller opens the document scope
// itself, typically via Open(KindDocument).
func NewBuilder() *Builder {
	return &Builder{}
}

// Open appends an opening action of the given kind.
func (b *Builder) Open(kind Kind) *Builder {
	if b.err != nil {
		return b
	}
	if kind == KindText || !(kind.IsBlockLevel() || kind.IsInline()) {
		b.err = fmt.Errorf("cannot open %s", kind)
		return b
	}
	if kind.IsBlockLevel() && len(b.stack) > 0 && b.stack[len(b.stack)-1].IsInline() {
		b.err = fmt.Errorf("block-level %s opened inside inline %s", kind, b.stack[len(b.stack)-1])
		return b
	}
	b.elems = append(b.elems, OpenAction(kind))
	b.stack = append(b.stack, kind)
	return b
}

// OpenLink appends an opening link action with the given target URL.
func (b *Builder) OpenLink(url string) *Builder {
	if b.err != nil {
		return b
	}
	b.elems = append(b.elems, OpenLink(url))
	b.stack = append(b.stack, KindLink)
	return b
}

// Text appends a literal text run. Empty runs are dropped.
func (b *Builder) Text(text string) *Builder {
	if b.err != nil || text == "" {
		return b
	}
	b.elems = append(b.elems, TextElement(text))
	return b
}

// Close appends a closing action for the innermost open scope, which must be
// of the given kind.
func (b *Builder) Close(kind Kind) *Builder {
	if b.err != nil {
		return b
	}
	if len(b.stack) == 0 {
		b.err = fmt.Errorf("close %s without a matching open", kind)
		return b
	}
	top := b.stack[len(b.stack)-1]
	if top != kind {
		b.err = fmt.Errorf("close %s while %s is open", kind, top)
		return b
	}
	b.stack = b.stack[:len(b.stack)-1]
	b.elems = append(b.elems, CloseAction(kind))
	return b
}

// CloseAll closes every open scope, innermost first.
func (b *Builder) CloseAll() *Builder {
	for b.err == nil && len(b.stack) > 0 {
		b.Close(b.stack[len(b.stack)-1])
	}
	return b
}

// Depth returns the number of currently open scopes.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// Build returns the accumulated sequence. It fails if any builder call was
// misused or a scope is still open.
func (b *Builder) Build() (Sequence, error) {
	if b.err != nil {
		return nil, b.err
	}
	if len(b.stack) > 0 {
		return nil, fmt.Errorf("unclosed %s at build time", b.stack[len(b.stack)-1])
	}
	return b.elems, nil
}
