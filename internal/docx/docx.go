// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx accumulates headings and styled paragraphs and writes them
// as a WordprocessingML (.docx) package built with godocx.
package docx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gomutex/godocx"
	gdocx "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/pdiddy/slidescribe/pkg/types"
)

// Extension is the file extension of documents written by this package.
const Extension = ".docx"

// MaxLevel is the deepest heading level the document emits.
const MaxLevel = 5

// DefaultCreator is recorded in the document's core properties.
const DefaultCreator = "slidescribe"

// ErrAlreadySaved is returned when Save is called on a document that was
// already written.
var ErrAlreadySaved = errors.New("document already saved")

// Document is an in-memory word-processing document. It is not safe for
// concurrent use.
type Document struct {
	root    *gdocx.RootDoc
	title   string
	creator string
	now     func() time.Time
	saved   bool
}

// Option configures a Document.
type Option func(*Document)

// WithTitle sets the dc:title core property.
func WithTitle(title string) Option {
	return func(d *Document) { d.title = title }
}

// WithCreator sets the dc:creator core property.
func WithCreator(creator string) Option {
	return func(d *Document) { d.creator = creator }
}

// WithClock overrides the time source used for created/modified stamps.
func WithClock(now func() time.Time) Option {
	return func(d *Document) { d.now = now }
}

// New returns an empty document on the godocx default template.
func New(opts ...Option) (*Document, error) {
	root, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	d := &Document{root: root, creator: DefaultCreator, now: time.Now}
	for _, o := range opts {
		o(d)
	}
	return d, nil
}

// AddHeading appends a heading paragraph. level is clamped to 1..MaxLevel.
// An empty text yields an empty heading paragraph.
func (d *Document) AddHeading(text string, level int) {
	level = min(max(level, 1), MaxLevel)
	// Only levels outside 0..9 fail, and the clamp rules those out.
	_, _ = d.root.AddHeading(text, uint(level))
}

// AddParagraph appends a body paragraph made of runs. Tabs become w:tab
// and each CR or LF becomes w:br.
func (d *Document) AddParagraph(runs ...types.Run) {
	p := d.root.AddEmptyParagraph()
	for _, r := range runs {
		run := p.AddRun()
		if r.Bold {
			run.Bold(true)
		}
		if r.Underline {
			run.Underline(stypes.UnderlineSingle)
		}
		ct := p.GetCT()
		last := ct.Children[len(ct.Children)-1].Run
		last.Children = append(last.Children, runChildren(r.Text)...)
	}
}

// WriteTo writes the zipped package to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	core, err := d.coreXML()
	if err != nil {
		return 0, err
	}
	d.root.FileMap.Store(corePart, core)

	cw := &countingWriter{w: w}
	if err := d.root.Write(cw); err != nil {
		return cw.n, fmt.Errorf("writing package: %w", err)
	}
	return cw.n, nil
}

// Save writes the document to path. The package is written to a
// temporary file in the same directory and renamed into place, so a
// failed save never leaves a partial file and never clobbers an existing
// one. Failures are returned as *types.SinkWriteError.
func (d *Document) Save(path string) error {
	if d.saved {
		return &types.SinkWriteError{Path: path, Err: ErrAlreadySaved}
	}
	if err := d.save(path); err != nil {
		return &types.SinkWriteError{Path: path, Err: err}
	}
	d.saved = true
	return nil
}

func (d *Document) save(path string) (err error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if _, err = d.WriteTo(tmp); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
