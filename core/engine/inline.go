package engine

import (
	"strings"

	"github.com/gaurav-prasanna/markpipe/core/activetext"
	"github.com/gaurav-prasanna/markpipe/core/md"
)

// inlineKind is the formatting kind of one inline stack frame.
type inlineKind int

const (
	inlinePlain inlineKind = iota
	inlineWeakEmphasis
	inlineStrongEmphasis
	inlineLink
	inlineCode
)

// inlineKindOf maps an inline action kind onto the formatting kind it opens.
func inlineKindOf(kind activetext.Kind) inlineKind {
	switch kind {
	case activetext.KindLink:
		return inlineLink
	case activetext.KindStrong, activetext.KindWarning:
		return inlineStrongEmphasis
	case activetext.KindEmphasis, activetext.KindVar:
		return inlineWeakEmphasis
	case activetext.KindMono:
		return inlineCode
	}
	assertf(false, "%s is not an inline kind", kind)
	return inlinePlain
}

// inlineFrame is one open inline span, accumulating already-rendered text.
// Whether the span may emit its own Markdown markers is decided when it is
// pushed: Markdown cannot re-express a formatting kind nested inside itself,
// and nothing is reformatted inside literal code.
type inlineFrame struct {
	kind       inlineKind
	url        string
	suppressed bool
	buf        strings.Builder
}

// inlineStack is the per-block stack of open inline spans. The bottom frame
// is always a plain frame; it ends up holding the block's final text and is
// never popped.
type inlineStack struct {
	frames []*inlineFrame
}

func newInlineStack() *inlineStack {
	return &inlineStack{frames: []*inlineFrame{{kind: inlinePlain}}}
}

func (s *inlineStack) top() *inlineFrame {
	return s.frames[len(s.frames)-1]
}

// appendText adds a literal text run to the innermost open span. Anywhere
// inside an inline code span the text is taken verbatim, even when a
// suppressed formatting span sits between the code span and the text;
// everywhere else it is escaped.
func (s *inlineStack) appendText(text string) {
	if s.inCode() {
		s.top().buf.WriteString(text)
		return
	}
	s.top().buf.WriteString(md.Escape(text))
}

// inCode reports whether any open span is an inline code span.
func (s *inlineStack) inCode() bool {
	for _, fr := range s.frames {
		if fr.kind == inlineCode {
			return true
		}
	}
	return false
}

// push opens a new inline span of the given formatting kind.
func (s *inlineStack) push(kind inlineKind, url string) {
	suppressed := false
	for _, fr := range s.frames {
		if fr.kind == kind || fr.kind == inlineCode {
			suppressed = true
			break
		}
	}
	s.frames = append(s.frames, &inlineFrame{kind: kind, url: url, suppressed: suppressed})
}

// pop closes the innermost open span and appends its rendered (or, when
// suppressed or degenerate, raw) text to the span beneath it. It returns the
// closed span's kind so the caller can check it against the closing action.
func (s *inlineStack) pop() inlineKind {
	assertf(len(s.frames) > 1, "inline close without an open inline span")
	fr := s.top()
	s.frames = s.frames[:len(s.frames)-1]
	s.top().buf.WriteString(fr.closeText())
	return fr.kind
}

// closeText renders the span's accumulated text at close time. A suppressed
// span passes its content through unwrapped; an empty emphasis or code span
// contributes nothing; a link degrades to bare text or a bare URL when one
// side is missing.
func (fr *inlineFrame) closeText() string {
	text := fr.buf.String()
	if fr.suppressed {
		return text
	}
	switch fr.kind {
	case inlineWeakEmphasis:
		if text == "" {
			return ""
		}
		return md.WeakEmphasis(text)
	case inlineStrongEmphasis:
		if text == "" {
			return ""
		}
		return md.StrongEmphasis(text)
	case inlineLink:
		switch {
		case fr.url == "":
			return text
		case text == "":
			return md.BareURL(fr.url)
		default:
			return md.Link(text, fr.url)
		}
	case inlineCode:
		if text == "" {
			return ""
		}
		// Pad so the chosen delimiter run cannot collide with a
		// backtick at either end of the content.
		if strings.HasPrefix(text, "`") {
			text = " " + text
		}
		if strings.HasSuffix(text, "`") {
			text += " "
		}
		return md.InlineCode(text)
	}
	return text
}

// rootText returns the accumulated text of the bottom plain frame.
func (s *inlineStack) rootText() string {
	return s.frames[0].buf.String()
}

// isEmpty reports whether every frame holds only whitespace or nothing.
func (s *inlineStack) isEmpty() bool {
	for _, fr := range s.frames {
		if strings.TrimSpace(fr.buf.String()) != "" {
			return false
		}
	}
	return true
}
