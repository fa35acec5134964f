// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pptx reads PresentationML packages (.pptx) into a tree of
// slides, shapes, paragraphs and runs. Only the parts needed for text
// extraction are decoded; layout, pictures and charts are reduced to
// shape kinds.
package pptx

import "strings"

// Flag is a tri-state run property. Unset means the value is inherited
// from the layout or master, which callers treat as off.
type Flag uint8

const (
	FlagUnset Flag = iota
	FlagOff
	FlagOn
)

// On reports whether the flag is explicitly set on.
func (f Flag) On() bool { return f == FlagOn }

// String implements fmt.Stringer.
func (f Flag) String() string {
	switch f {
	case FlagOff:
		return "off"
	case FlagOn:
		return "on"
	default:
		return "unset"
	}
}

// ShapeKind names the spTree element a shape came from.
type ShapeKind string

const (
	KindShape        ShapeKind = "sp"
	KindGroup        ShapeKind = "grpSp"
	KindPicture      ShapeKind = "pic"
	KindGraphicFrame ShapeKind = "graphicFrame"
	KindConnector    ShapeKind = "cxnSp"
	KindContentPart  ShapeKind = "contentPart"
)

// Deck is a parsed presentation.
type Deck struct {
	// Path is the file the deck was read from.
	Path string

	// Slides are in presentation order (p:sldIdLst).
	Slides []Slide
}

// Slide is one slide and its shapes in z-order.
type Slide struct {
	// Number is the 1-based position in the deck.
	Number int

	// Part is the package part name, e.g. "ppt/slides/slide3.xml".
	Part string

	Shapes []Shape
}

// Shape is one child of a shape tree.
type Shape struct {
	ID   int
	Name string
	Kind ShapeKind

	// Placeholder is the placeholder type ("title", "body", ...) for
	// placeholder shapes, empty otherwise. Placeholders without an
	// explicit type are reported as "obj".
	Placeholder string

	// Children holds the members of a group shape.
	Children []Shape

	text *TextFrame
}

// TextFrame reports whether the shape carries text, and returns it.
// Only auto shapes with a p:txBody have a text frame.
func (s Shape) TextFrame() (TextFrame, bool) {
	if s.text == nil {
		return TextFrame{}, false
	}
	return *s.text, true
}

// TextFrame is the ordered paragraphs of a shape's text body.
type TextFrame struct {
	Paragraphs []Paragraph
}

// Paragraph is one a:p element.
type Paragraph struct {
	// Text concatenates runs, fields and line breaks (as U+000B) in
	// document order.
	Text string

	// Runs are the a:r elements only; fields and breaks carry no style.
	Runs []Run
}

// Run is one a:r element.
type Run struct {
	Text      string
	Bold      Flag
	Underline Flag
}

// NewTextShape returns an auto shape with a text frame holding paras.
func NewTextShape(name string, paras ...Paragraph) Shape {
	return Shape{
		Name: name,
		Kind: KindShape,
		text: &TextFrame{Paragraphs: paras},
	}
}

// NewGroup returns a group shape containing children.
func NewGroup(name string, children ...Shape) Shape {
	return Shape{Name: name, Kind: KindGroup, Children: children}
}

// NewParagraph returns a paragraph made of runs, with Text set to the
// concatenated run text.
func NewParagraph(runs ...Run) Paragraph {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return Paragraph{Text: b.String(), Runs: runs}
}
