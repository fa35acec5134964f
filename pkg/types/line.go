// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "path/filepath"

// LineKind is the structural role a Line takes in the output document.
type LineKind string

const (
	KindTitle   LineKind = "title"
	KindSection LineKind = "section"
	KindBody    LineKind = "body"
)

// Line is one paragraph extracted from one shape's text frame, together
// with its style and positional markers.
type Line struct {
	// Text is the raw paragraph text. It may contain control characters
	// from the source package (a:br is carried as U+000B).
	Text string `json:"text" yaml:"text"`

	// Bold is true when any run in the paragraph is bold.
	Bold bool `json:"bold" yaml:"bold"`

	// Underline is true when any run in the paragraph is underlined.
	Underline bool `json:"underline" yaml:"underline"`

	// IsBatchStart marks the first line extracted from a presentation.
	IsBatchStart bool `json:"batch_start" yaml:"batch_start"`

	// IsSlideStart marks the first line extracted from a slide.
	IsSlideStart bool `json:"slide_start" yaml:"slide_start"`
}

// Kind reports how the line is rendered. Batch-start wins over
// slide-start, since the first line of a presentation is both.
func (l Line) Kind() LineKind {
	switch {
	case l.IsBatchStart:
		return KindTitle
	case l.IsSlideStart:
		return KindSection
	default:
		return KindBody
	}
}

// Run is one styled span of text handed to a document sink.
type Run struct {
	Text      string
	Bold      bool
	Underline bool
}

// Presentation identifies one input deck.
type Presentation struct {
	// Path is the filesystem path as given by the caller.
	Path string `json:"path" yaml:"path"`

	// Name is the final path segment, used for display.
	Name string `json:"name" yaml:"name"`
}

// NewPresentation builds a Presentation for path.
func NewPresentation(path string) Presentation {
	return Presentation{Path: path, Name: filepath.Base(path)}
}
