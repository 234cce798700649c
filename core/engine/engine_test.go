package engine

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/markpipe/core/activetext"
)

func mustBuild(t *testing.T, build func(b *activetext.Builder)) activetext.Sequence {
	t.Helper()
	b := activetext.NewBuilder().Open(activetext.KindDocument)
	build(b)
	seq, err := b.Close(activetext.KindDocument).Build()
	require.NoError(t, err)
	require.NoError(t, seq.Wellformed())
	return seq
}

func TestRenderEmptySequence(t *testing.T) {
	assert.Equal(t, "", New().Render(nil))
}

func TestRenderParagraphWithStrongSpan(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			Text("Hello ").
			Open(activetext.KindStrong).Text("world").Close(activetext.KindStrong).
			Text("!").
			Close(activetext.KindParagraph)
	})
	// "!" is in the escape set, so the literal exclamation mark comes out
	// backslash-escaped.
	assert.Equal(t, "Hello **world**\\!\n", New().Render(seq))
}

func TestRenderPlainTextWithoutWrapper(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Text("just text")
	})
	assert.Equal(t, "just text\n", New().Render(seq))
}

func TestRenderHeadingLevelTwo(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindHeading).Text("Title").Close(activetext.KindHeading)
		b.Open(activetext.KindParagraph).Text("body").Close(activetext.KindParagraph)
	})
	assert.Equal(t, "## Title\n\nbody\n", New().Render(seq))
}

func TestRenderOrderedListNumbersItems(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindOrderedList)
		for _, item := range []string{"A", "B"} {
			b.Open(activetext.KindListItem).
				Open(activetext.KindParagraph).Text(item).Close(activetext.KindParagraph).
				Close(activetext.KindListItem)
		}
		b.Close(activetext.KindOrderedList)
	})
	assert.Equal(t, "1. A\n\n2. B\n", New().Render(seq))
}

func TestRenderNestedListIndentsBeneathItem(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindOrderedList).
			Open(activetext.KindListItem).
			Open(activetext.KindParagraph).Text("A").Close(activetext.KindParagraph).
			Open(activetext.KindUnorderedList).
			Open(activetext.KindListItem).
			Open(activetext.KindParagraph).Text("B").Close(activetext.KindParagraph).
			Close(activetext.KindListItem).
			Close(activetext.KindUnorderedList).
			Close(activetext.KindListItem).
			Close(activetext.KindOrderedList)
	})
	assert.Equal(t, "1. A\n\n    - B\n", New().Render(seq))
}

func TestRenderSiblingListsRestartNumbering(t *testing.T) {
	oneItemList := func(b *activetext.Builder, text string) {
		b.Open(activetext.KindOrderedList).
			Open(activetext.KindListItem).Text(text).Close(activetext.KindListItem).
			Close(activetext.KindOrderedList)
	}
	seq := mustBuild(t, func(b *activetext.Builder) {
		oneItemList(b, "first")
		oneItemList(b, "second")
	})
	out := New().Render(seq)
	assert.Contains(t, out, "1. first")
	assert.Contains(t, out, "1. second")
	assert.NotContains(t, out, "2.")
}

func TestRenderEmptyListItem(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindUnorderedList).
			Open(activetext.KindListItem).Close(activetext.KindListItem).
			Close(activetext.KindUnorderedList)
	})
	assert.Equal(t, "-\n", New().Render(seq))
}

func TestRenderInlineCodeWithBacktickContent(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindMono).Text("`foo`").Close(activetext.KindMono)
	})
	assert.Equal(t, "`` `foo` ``\n", New().Render(seq))
}

func TestRenderInlineCodeTakesTextVerbatim(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindMono).Text("a *b* [c]").Close(activetext.KindMono)
	})
	assert.Equal(t, "`a *b* [c]`\n", New().Render(seq))
}

func TestRenderEmptyParagraphIsOmitted(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).Close(activetext.KindParagraph)
	})
	assert.Equal(t, "", New().Render(seq))
}

func TestRenderWhitespaceOnlyBlockIsOmitted(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).Text(" ").Close(activetext.KindParagraph)
		b.Open(activetext.KindParagraph).Text("kept").Close(activetext.KindParagraph)
	})
	assert.Equal(t, "kept\n", New().Render(seq))
}

func TestRenderEmptyInlineSpansEmitNoMarkers(t *testing.T) {
	for _, kind := range []activetext.Kind{
		activetext.KindStrong, activetext.KindEmphasis, activetext.KindMono,
	} {
		t.Run(kind.String(), func(t *testing.T) {
			seq := mustBuild(t, func(b *activetext.Builder) {
				b.Open(activetext.KindParagraph).
					Text("a").
					Open(kind).Close(kind).
					Text("b").
					Close(activetext.KindParagraph)
			})
			assert.Equal(t, "ab\n", New().Render(seq))
		})
	}
}

func TestRenderLinkVariants(t *testing.T) {
	tests := []struct {
		name string
		url  string
		text string
		want string
	}{
		{"text and url", "https://example.com", "here", "[here](https://example.com)\n"},
		{"url only", "https://example.com", "", "<https://example.com>\n"},
		{"text only", "", "here", "here\n"},
		{"neither", "", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			seq := mustBuild(t, func(b *activetext.Builder) {
				b.Open(activetext.KindParagraph).
					OpenLink(tc.url).Text(tc.text).Close(activetext.KindLink).
					Close(activetext.KindParagraph)
			})
			assert.Equal(t, tc.want, New().Render(seq))
		})
	}
}

func TestRenderSameKindNestingSuppressesInnerMarkers(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			Text("a").
			Open(activetext.KindStrong).
			Text("b").
			Open(activetext.KindStrong).Text("c").Close(activetext.KindStrong).
			Text("d").
			Close(activetext.KindStrong).
			Close(activetext.KindParagraph)
	})
	assert.Equal(t, "a**bcd**\n", New().Render(seq))
}

func TestRenderWarningAndVarAliasStrongAndEmphasis(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			Open(activetext.KindWarning).Text("careful").Close(activetext.KindWarning).
			Text(" with ").
			Open(activetext.KindVar).Text("x").Close(activetext.KindVar).
			Close(activetext.KindParagraph)
	})
	assert.Equal(t, "**careful** with *x*\n", New().Render(seq))
}

func TestRenderStrongInsideEmphasisStillRenders(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			Open(activetext.KindEmphasis).
			Text("a").
			Open(activetext.KindStrong).Text("b").Close(activetext.KindStrong).
			Close(activetext.KindEmphasis).
			Close(activetext.KindParagraph)
	})
	assert.Equal(t, "*a**b***\n", New().Render(seq))
}

func TestRenderFormattingInsideCodeIsSuppressed(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			Open(activetext.KindMono).
			Text("x").
			Open(activetext.KindStrong).Text("y").Close(activetext.KindStrong).
			Close(activetext.KindMono).
			Close(activetext.KindParagraph)
	})
	assert.Equal(t, "`xy`\n", New().Render(seq))
}

func TestRenderLinkInsideLinkSuppressed(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			OpenLink("https://outer.example").
			Text("a").
			OpenLink("https://inner.example").Text("b").Close(activetext.KindLink).
			Close(activetext.KindLink).
			Close(activetext.KindParagraph)
	})
	assert.Equal(t, "[ab](https://outer.example)\n", New().Render(seq))
}

func TestRenderEscapesLiteralMetacharacters(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).Text("* not a list [x] #1").Close(activetext.KindParagraph)
	})
	assert.Equal(t, "\\* not a list \\[x\\] \\#1\n", New().Render(seq))
}

func TestRenderPreservesSpaceRuns(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).Text("a   b").Close(activetext.KindParagraph)
	})
	assert.Equal(t, "a &nbsp;&nbsp;b\n", New().Render(seq))
}

func TestRenderNeverEmitsDoubleBlankLines(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindHeading).Text("H").Close(activetext.KindHeading)
		for _, p := range []string{"one", "two", "three"} {
			b.Open(activetext.KindParagraph).Text(p).Close(activetext.KindParagraph)
		}
		b.Open(activetext.KindUnorderedList).
			Open(activetext.KindListItem).
			Open(activetext.KindParagraph).Text("item").Close(activetext.KindParagraph).
			Close(activetext.KindListItem).
			Close(activetext.KindUnorderedList)
	})
	out := New().Render(seq)
	assert.NotContains(t, out, "\n\n\n")
	assert.True(t, strings.HasSuffix(out, "\n"))
	assert.False(t, strings.HasPrefix(out, "\n"))
}

func TestRenderTextBetweenBlocksGetsImplicitBlock(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).Text("para").Close(activetext.KindParagraph)
		b.Text("stray")
	})
	assert.Equal(t, "para\n\nstray\n", New().Render(seq))
}

func TestRenderPanicsOnMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		seq  activetext.Sequence
	}{
		{
			"missing open document",
			activetext.Sequence{activetext.TextElement("x")},
		},
		{
			"inline close without open",
			activetext.Sequence{
				activetext.OpenAction(activetext.KindDocument),
				activetext.CloseAction(activetext.KindStrong),
			},
		},
		{
			"list item outside list",
			activetext.Sequence{
				activetext.OpenAction(activetext.KindDocument),
				activetext.OpenAction(activetext.KindListItem),
			},
		},
		{
			"mismatched inline close",
			activetext.Sequence{
				activetext.OpenAction(activetext.KindDocument),
				activetext.OpenAction(activetext.KindStrong),
				activetext.CloseAction(activetext.KindEmphasis),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Panics(t, func() { New().Render(tc.seq) })
		})
	}
}

func TestRenderSuppressedSpanInsideCodeStaysVerbatim(t *testing.T) {
	seq := mustBuild(t, func(b *activetext.Builder) {
		b.Open(activetext.KindParagraph).
			Open(activetext.KindMono).
			Open(activetext.KindEmphasis).Text("*").Close(activetext.KindEmphasis).
			Close(activetext.KindMono).
			Close(activetext.KindParagraph)
	})
	assert.Equal(t, "`*`\n", New().Render(seq))
}
