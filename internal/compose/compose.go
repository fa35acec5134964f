// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compose turns a presentation's line buffer into document
// structure: a title heading, section headings and styled paragraphs.
package compose

import (
	"github.com/pdiddy/slidescribe/internal/sanitize"
	"github.com/pdiddy/slidescribe/pkg/types"
)

// Heading levels on a five-level scale, 1 being the most prominent.
// A slide's first line sits two levels below the presentation title.
const (
	LevelTitle   = 1
	LevelSection = 3
)

// Sink receives document structure in order.
type Sink interface {
	AddHeading(text string, level int)
	AddParagraph(runs ...types.Run)
}

// Stats counts what Compose emitted.
type Stats struct {
	Titles     int `json:"titles" yaml:"titles"`
	Sections   int `json:"sections" yaml:"sections"`
	Paragraphs int `json:"paragraphs" yaml:"paragraphs"`
}

// Total returns the number of structural operations emitted.
func (s Stats) Total() int {
	return s.Titles + s.Sections + s.Paragraphs
}

// Add returns the sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Titles:     s.Titles + o.Titles,
		Sections:   s.Sections + o.Sections,
		Paragraphs: s.Paragraphs + o.Paragraphs,
	}
}

// Compose appends one operation per line to sink, in order. Every line
// produces exactly one operation, including lines whose text is empty
// after sanitizing. lines is not modified.
func Compose(lines []types.Line, sink Sink) Stats {
	var st Stats
	for _, line := range lines {
		text := sanitize.Clean(line.Text)
		switch line.Kind() {
		case types.KindTitle:
			sink.AddHeading(text, LevelTitle)
			st.Titles++
		case types.KindSection:
			sink.AddHeading(text, LevelSection)
			st.Sections++
		default:
			sink.AddParagraph(types.Run{
				Text:      text,
				Bold:      line.Bold,
				Underline: line.Underline,
			})
			st.Paragraphs++
		}
	}
	return st
}
