package activetext

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWellformedAcceptsProperNesting(t *testing.T) {
	seq := Sequence{
		OpenAction(KindDocument),
		OpenAction(KindParagraph),
		TextElement("a"),
		OpenAction(KindStrong),
		TextElement("b"),
		CloseAction(KindStrong),
		CloseAction(KindParagraph),
		CloseAction(KindDocument),
	}
	assert.NoError(t, seq.Wellformed())
}

func TestWellformedEmptySequence(t *testing.T) {
	assert.NoError(t, Sequence(nil).Wellformed())
}

func TestWellformedRejections(t *testing.T) {
	tests := []struct {
		name string
		seq  Sequence
	}{
		{"first element not open document", Sequence{TextElement("x")}},
		{"first element close", Sequence{CloseAction(KindDocument)}},
		{
			"close without open",
			Sequence{
				OpenAction(KindDocument),
				CloseAction(KindStrong),
			},
		},
		{
			"interleaved close",
			Sequence{
				OpenAction(KindDocument),
				OpenAction(KindStrong),
				OpenAction(KindEmphasis),
				CloseAction(KindStrong),
			},
		},
		{
			"block opened inside inline",
			Sequence{
				OpenAction(KindDocument),
				OpenAction(KindStrong),
				OpenAction(KindParagraph),
			},
		},
		{
			"unclosed at end",
			Sequence{
				OpenAction(KindDocument),
				OpenAction(KindParagraph),
				CloseAction(KindParagraph),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Error(t, tc.seq.Wellformed())
		})
	}
}

func TestBuilderProducesWellformedSequence(t *testing.T) {
	seq, err := NewBuilder().
		Open(KindDocument).
		Open(KindParagraph).
		Text("see ").
		OpenLink("https://example.com").
		Text("docs").
		Close(KindLink).
		Close(KindParagraph).
		Close(KindDocument).
		Build()
	require.NoError(t, err)
	require.NoError(t, seq.Wellformed())

	link := seq[3]
	assert.Equal(t, KindLink, link.Kind)
	assert.Equal(t, "https://example.com", link.Attr(AttrURL))
}

func TestBuilderDropsEmptyText(t *testing.T) {
	seq, err := NewBuilder().
		Open(KindDocument).Text("").Close(KindDocument).
		Build()
	require.NoError(t, err)
	assert.Len(t, seq, 2)
}

func TestBuilderCloseAll(t *testing.T) {
	seq, err := NewBuilder().
		Open(KindDocument).
		Open(KindUnorderedList).
		Open(KindListItem).
		Text("x").
		CloseAll().
		Build()
	require.NoError(t, err)
	assert.NoError(t, seq.Wellformed())
	assert.Equal(t, KindDocument, seq[len(seq)-1].Kind)
}

func TestBuilderReportsMisuse(t *testing.T) {
	_, err := NewBuilder().Open(KindDocument).Close(KindParagraph).Build()
	assert.Error(t, err)

	_, err = NewBuilder().Open(KindDocument).Build()
	assert.Error(t, err)

	_, err = NewBuilder().Close(KindDocument).Build()
	assert.Error(t, err)
}

func TestKindCategories(t *testing.T) {
	for _, k := range []Kind{KindDocument, KindBlock, KindParagraph, KindHeading, KindUnorderedList, KindOrderedList, KindListItem} {
		assert.Truef(t, k.IsBlockLevel(), "%s", k)
		assert.Falsef(t, k.IsInline(), "%s", k)
	}
	for _, k := range []Kind{KindLink, KindStrong, KindWarning, KindEmphasis, KindVar, KindMono} {
		assert.Truef(t, k.IsInline(), "%s", k)
		assert.Falsef(t, k.IsBlockLevel(), "%s", k)
	}
	assert.False(t, KindText.IsBlockLevel())
	assert.False(t, KindText.IsInline())
}

func TestBuilderRejectsBlockInsideInline(t *testing.T) {
	_, err := NewBuilder().
		Open(KindDocument).
		Open(KindStrong).
		Open(KindBlock).
		Build()
	assert.Error(t, err)

	_, err = NewBuilder().
		Open(KindDocument).
		OpenLink("https://example.com").
		Open(KindParagraph).
		Build()
	assert.Error(t, err)
}
