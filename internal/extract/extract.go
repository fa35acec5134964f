// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract flattens a presentation's slide tree into an ordered
// sequence of Lines, one per text-frame paragraph, marking the first line
// of the presentation and the first line of each slide.
package extract

import (
	"context"

	"github.com/pdiddy/slidescribe/internal/pptx"
	"github.com/pdiddy/slidescribe/pkg/types"
)

// Reader opens a presentation file. pptx.Reader is the production
// implementation; tests substitute in-memory decks.
type Reader interface {
	Open(path string) (*pptx.Deck, error)
}

// Options controls traversal.
type Options struct {
	// DescendGroups visits text shapes nested in group shapes, depth
	// first, at the group's position in the shape tree.
	DescendGroups bool
}

// Extractor reads presentations and turns them into line buffers.
type Extractor struct {
	reader Reader
	opts   Options
}

// New returns an Extractor reading through r.
func New(r Reader, opts Options) *Extractor {
	return &Extractor{reader: r, opts: opts}
}

// Extract reads the presentation and returns all of its lines. On error
// no lines are returned; a presentation is never partially extracted.
func (e *Extractor) Extract(ctx context.Context, ref types.Presentation) ([]types.Line, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deck, err := e.reader.Open(ref.Path)
	if err != nil {
		return nil, err
	}
	return Lines(deck, e.opts), nil
}

// Lines folds the deck into lines in slide, shape, paragraph order.
// A line is a batch start when nothing precedes it in the deck, and a
// slide start when nothing precedes it on its slide. Shapes without a
// text frame contribute nothing.
func Lines(deck *pptx.Deck, opts Options) []types.Line {
	var lines []types.Line
	for _, slide := range deck.Slides {
		slideFirst := len(lines)
		for _, para := range paragraphs(slide.Shapes, opts) {
			lines = append(lines, types.Line{
				Text:         para.Text,
				Bold:         anyRun(para.Runs, func(r pptx.Run) bool { return r.Bold.On() }),
				Underline:    anyRun(para.Runs, func(r pptx.Run) bool { return r.Underline.On() }),
				IsBatchStart: len(lines) == 0,
				IsSlideStart: len(lines) == slideFirst,
			})
		}
	}
	return lines
}

// paragraphs lists the text-frame paragraphs of shapes in traversal order.
func paragraphs(shapes []pptx.Shape, opts Options) []pptx.Paragraph {
	var out []pptx.Paragraph
	for _, shape := range shapes {
		if tf, ok := shape.TextFrame(); ok {
			out = append(out, tf.Paragraphs...)
			continue
		}
		if opts.DescendGroups && shape.Kind == pptx.KindGroup {
			out = append(out, paragraphs(shape.Children, opts)...)
		}
	}
	return out
}

func anyRun(runs []pptx.Run, pred func(pptx.Run) bool) bool {
	for _, r := range runs {
		if pred(r) {
			return true
		}
	}
	return false
}
