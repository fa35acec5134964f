// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slidescribe/internal/pptx"
	"github.com/pdiddy/slidescribe/internal/pptxtest"
	"github.com/pdiddy/slidescribe/pkg/types"
)

// fakeReader returns canned decks or errors keyed by path.
type fakeReader struct {
	decks map[string]*pptx.Deck
	err   error
}

func (f *fakeReader) Open(path string) (*pptx.Deck, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.decks[path]
	if !ok {
		return nil, &types.SourceReadError{Path: path, Err: errors.New("no such deck")}
	}
	return d, nil
}

func text(s string) pptx.Paragraph {
	return pptx.NewParagraph(pptx.Run{Text: s})
}

func slide(shapes ...pptx.Shape) pptx.Slide {
	return pptx.Slide{Shapes: shapes}
}

func TestLines_SingleParagraph(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.NewTextShape("Title", text("Hello"))),
	}}

	lines := Lines(deck, Options{})
	assert.Equal(t, []types.Line{
		{Text: "Hello", IsBatchStart: true, IsSlideStart: true},
	}, lines)
}

func TestLines_StartMarkers(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.NewTextShape("Title", text("Intro"), text("Body text"))),
		slide(pptx.NewTextShape("Title", text("Section Two"))),
	}}

	lines := Lines(deck, Options{})
	require.Len(t, lines, 3)
	assert.Equal(t, types.Line{Text: "Intro", IsBatchStart: true, IsSlideStart: true}, lines[0])
	assert.Equal(t, types.Line{Text: "Body text"}, lines[1])
	assert.Equal(t, types.Line{Text: "Section Two", IsSlideStart: true}, lines[2])
}

func TestLines_StyleIsAnyRun(t *testing.T) {
	tests := []struct {
		name          string
		runs          []pptx.Run
		wantBold      bool
		wantUnderline bool
	}{
		{
			name:     "one bold run among plain",
			runs:     []pptx.Run{{Text: "a", Bold: pptx.FlagOn}, {Text: "b", Bold: pptx.FlagOff}},
			wantBold: true,
		},
		{
			name: "unset flags are false",
			runs: []pptx.Run{{Text: "a"}, {Text: "b"}},
		},
		{
			name: "explicit off",
			runs: []pptx.Run{{Text: "a", Bold: pptx.FlagOff, Underline: pptx.FlagOff}},
		},
		{
			name:          "underline on last run",
			runs:          []pptx.Run{{Text: "a"}, {Text: "b", Underline: pptx.FlagOn}},
			wantUnderline: true,
		},
		{
			name: "no runs",
			runs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := &pptx.Deck{Slides: []pptx.Slide{
				slide(pptx.NewTextShape("Box", pptx.NewParagraph(tt.runs...))),
			}}
			lines := Lines(deck, Options{})
			require.Len(t, lines, 1)
			assert.Equal(t, tt.wantBold, lines[0].Bold)
			assert.Equal(t, tt.wantUnderline, lines[0].Underline)
		})
	}
}

func TestLines_ShapesWithoutTextFrame(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.Shape{Kind: pptx.KindPicture}),
		slide(
			pptx.Shape{Kind: pptx.KindPicture},
			pptx.NewTextShape("A", text("first")),
			pptx.Shape{Kind: pptx.KindGraphicFrame},
			pptx.NewTextShape("B", text("second")),
		),
		slide(),
		slide(pptx.NewTextShape("C", text("third"))),
	}}

	lines := Lines(deck, Options{})
	require.Len(t, lines, 3)
	assert.Equal(t, types.Line{Text: "first", IsBatchStart: true, IsSlideStart: true}, lines[0])
	assert.Equal(t, types.Line{Text: "second"}, lines[1])
	assert.Equal(t, types.Line{Text: "third", IsSlideStart: true}, lines[2])
}

func TestLines_EmptyTextFrameDoesNotConsumeSlideStart(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.NewTextShape("A", text("title"))),
		slide(
			pptx.NewTextShape("Empty"),
			pptx.NewTextShape("B", text("heading")),
		),
	}}

	lines := Lines(deck, Options{})
	require.Len(t, lines, 2)
	assert.True(t, lines[1].IsSlideStart)
}

func TestLines_EmptyParagraphIsALine(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.NewTextShape("A", pptx.Paragraph{}, text("after"))),
	}}

	lines := Lines(deck, Options{})
	require.Len(t, lines, 2)
	assert.Equal(t, types.Line{IsBatchStart: true, IsSlideStart: true}, lines[0])
	assert.Equal(t, types.Line{Text: "after"}, lines[1])
}

func TestLines_Groups(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(
			pptx.NewTextShape("A", text("before")),
			pptx.NewGroup("G",
				pptx.NewTextShape("G1", text("in group")),
				pptx.NewGroup("G2", pptx.NewTextShape("G21", text("nested"))),
			),
			pptx.NewTextShape("B", text("after")),
		),
	}}

	flat := Lines(deck, Options{})
	assert.Equal(t, []string{"before", "after"}, texts(flat))

	deep := Lines(deck, Options{DescendGroups: true})
	assert.Equal(t, []string{"before", "in group", "nested", "after"}, texts(deep))
}

func TestLines_GroupMayStartSlide(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.NewTextShape("A", text("title"))),
		slide(pptx.NewGroup("G", pptx.NewTextShape("G1", text("grouped heading")))),
	}}

	lines := Lines(deck, Options{DescendGroups: true})
	require.Len(t, lines, 2)
	assert.True(t, lines[1].IsSlideStart)

	assert.Len(t, Lines(deck, Options{}), 1)
}

func TestLines_Properties(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{
		slide(pptx.NewTextShape("A", text("s1p1"), text("s1p2")), pptx.NewTextShape("B", text("s1p3"))),
		slide(pptx.Shape{Kind: pptx.KindPicture}),
		slide(pptx.NewTextShape("C", text("s3p1"))),
		slide(pptx.NewTextShape("D", text("s4p1"), text("s4p2"), text("s4p3"))),
	}}

	lines := Lines(deck, Options{})
	assert.Equal(t, []string{"s1p1", "s1p2", "s1p3", "s3p1", "s4p1", "s4p2", "s4p3"}, texts(lines))

	batchStarts := 0
	for i, l := range lines {
		if l.IsBatchStart {
			batchStarts++
			assert.Equal(t, 0, i, "batch start must be first")
			assert.True(t, l.IsSlideStart, "batch start is also a slide start")
		}
	}
	assert.Equal(t, 1, batchStarts)

	var slideStarts []string
	for _, l := range lines {
		if l.IsSlideStart {
			slideStarts = append(slideStarts, l.Text)
		}
	}
	assert.Equal(t, []string{"s1p1", "s3p1", "s4p1"}, slideStarts)
}

func TestLines_EmptyDeck(t *testing.T) {
	assert.Empty(t, Lines(&pptx.Deck{}, Options{}))
}

func TestExtractor_Extract(t *testing.T) {
	deck := &pptx.Deck{Slides: []pptx.Slide{slide(pptx.NewTextShape("A", text("Hello")))}}
	e := New(&fakeReader{decks: map[string]*pptx.Deck{"a.pptx": deck}}, Options{})

	lines, err := e.Extract(context.Background(), types.NewPresentation("a.pptx"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Hello"}, texts(lines))
}

func TestExtractor_ExtractError(t *testing.T) {
	e := New(&fakeReader{decks: map[string]*pptx.Deck{}}, Options{})

	lines, err := e.Extract(context.Background(), types.NewPresentation("missing.pptx"))
	require.Error(t, err)
	assert.Nil(t, lines)

	var srcErr *types.SourceReadError
	assert.ErrorAs(t, err, &srcErr)
}

func TestExtractor_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := New(&fakeReader{}, Options{})
	_, err := e.Extract(ctx, types.NewPresentation("a.pptx"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractor_RealPackage(t *testing.T) {
	dir := t.TempDir()
	path := pptxtest.Write(t, dir, "talk.pptx",
		pptxtest.Slide(
			pptxtest.Placeholder("Title", "ctrTitle", pptxtest.Para(pptxtest.Run("Quarterly Review"))),
			pptxtest.Picture("Logo"),
			pptxtest.TextBox("Notes",
				pptxtest.Para(pptxtest.StyledRun("Key", `b="1"`), pptxtest.Run(": growth")),
				pptxtest.Para(pptxtest.StyledRun("Risks", `u="sng"`)),
			),
		),
		pptxtest.Slide(pptxtest.Picture("Chart")),
		pptxtest.Slide(
			pptxtest.Placeholder("Title", "title", pptxtest.Para(pptxtest.Run("Next"), pptxtest.Break(), pptxtest.Run("Steps"))),
		),
	)

	lines, err := New(pptx.Reader{}, Options{}).Extract(context.Background(), types.NewPresentation(path))
	require.NoError(t, err)
	assert.Equal(t, []types.Line{
		{Text: "Quarterly Review", IsBatchStart: true, IsSlideStart: true},
		{Text: "Key: growth", Bold: true},
		{Text: "Risks", Underline: true},
		{Text: "Next\vSteps", IsSlideStart: true},
	}, lines)
}

func TestExtractor_DecorativeShapeDoesNotTakeTitle(t *testing.T) {
	dir := t.TempDir()
	path := pptxtest.Write(t, dir, "framed.pptx",
		pptxtest.Slide(
			pptxtest.Rect("Banner"),
			pptxtest.TextBox("Title", pptxtest.Para(pptxtest.Run("Deck"))),
		),
		pptxtest.Slide(
			pptxtest.Rect("Divider"),
			pptxtest.TextBox("Heading", pptxtest.Para(pptxtest.Run("Part"))),
			pptxtest.TextBox("Spacer", pptxtest.Para()),
		),
	)

	lines, err := New(pptx.Reader{}, Options{}).Extract(context.Background(), types.NewPresentation(path))
	require.NoError(t, err)
	assert.Equal(t, []types.Line{
		{Text: "Deck", IsBatchStart: true, IsSlideStart: true},
		{Text: "Part", IsSlideStart: true},
		{Text: ""},
	}, lines)
}

func texts(lines []types.Line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.Text
	}
	return out
}
