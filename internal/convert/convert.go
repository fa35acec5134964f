// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert drives a batch of presentations through extraction and
// composition into a single document, saved once at the end.
package convert

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/slidescribe/internal/compose"
	"github.com/pdiddy/slidescribe/internal/docx"
	"github.com/pdiddy/slidescribe/internal/journal"
	"github.com/pdiddy/slidescribe/pkg/types"
)

// pptxExt is the extension ExpandInputs picks up from directories.
const pptxExt = ".pptx"

// LineExtractor turns one presentation into its line buffer.
// extract.Extractor is the production implementation.
type LineExtractor interface {
	Extract(ctx context.Context, ref types.Presentation) ([]types.Line, error)
}

// Document is the sink a batch is composed into.
type Document interface {
	compose.Sink
	Save(path string) error
}

// Recorder stores completed batches. *journal.Journal implements it.
type Recorder interface {
	Record(ctx context.Context, e journal.Entry) error
}

// PresentationResult describes one converted presentation.
type PresentationResult struct {
	Presentation types.Presentation `json:"presentation" yaml:"presentation"`
	Lines        int                `json:"lines" yaml:"lines"`
	Stats        compose.Stats      `json:"stats" yaml:"stats"`
}

// Result holds the outcome of a successful batch.
type Result struct {
	BatchID       string               `json:"batch_id" yaml:"batch_id"`
	Output        string               `json:"output" yaml:"output"`
	Presentations []PresentationResult `json:"presentations" yaml:"presentations"`
	Stats         compose.Stats        `json:"stats" yaml:"stats"`
	Elapsed       time.Duration        `json:"elapsed" yaml:"elapsed"`
}

// Lines returns the number of lines across the batch.
func (r Result) Lines() int {
	n := 0
	for _, p := range r.Presentations {
		n += p.Lines
	}
	return n
}

// Driver runs conversion batches. Extractor is required. NewDocument
// defaults to a docx document titled after the output file. Journal and
// OnPresentation are optional.
type Driver struct {
	Extractor   LineExtractor
	NewDocument func(title string) (Document, error)
	Journal     Recorder
	Logger      zerolog.Logger

	// OnPresentation is called after each presentation is composed.
	OnPresentation func(PresentationResult)

	// Now defaults to time.Now.
	Now func() time.Time
}

// Run converts paths, in order, into one document saved at dest.
// Presentations are processed one at a time and each line buffer is
// dropped once composed. If any presentation cannot be read the batch
// stops, nothing is written, and the *types.SourceReadError is returned.
// Cancellation is honoured between presentations.
func (d *Driver) Run(ctx context.Context, paths []string, dest string) (Result, error) {
	if d.Extractor == nil {
		return Result{}, errors.New("driver has no extractor")
	}
	if len(paths) == 0 {
		return Result{}, types.ErrNoPresentations
	}

	now := d.Now
	if now == nil {
		now = time.Now
	}
	started := now()

	res := Result{BatchID: uuid.NewString(), Output: dest}
	log := d.Logger.With().Str("batch", res.BatchID).Logger()

	doc, err := d.newDocument(strings.TrimSuffix(filepath.Base(dest), docx.Extension))
	if err != nil {
		err = &types.SinkWriteError{Path: dest, Err: err}
		log.Error().Err(err).Str("output", dest).Msg("creating document")
		return Result{}, err
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			log.Warn().Err(err).Int("done", i).Int("total", len(paths)).Msg("batch cancelled")
			return Result{}, err
		}

		ref := types.NewPresentation(path)
		lines, err := d.Extractor.Extract(ctx, ref)
		if err != nil {
			err = asSourceError(ref.Path, err)
			log.Error().Err(err).Str("presentation", ref.Path).Msg("batch aborted")
			return Result{}, err
		}

		pr := PresentationResult{
			Presentation: ref,
			Lines:        len(lines),
			Stats:        compose.Compose(lines, doc),
		}
		res.Presentations = append(res.Presentations, pr)
		res.Stats = res.Stats.Add(pr.Stats)

		log.Debug().
			Str("presentation", ref.Path).
			Int("lines", pr.Lines).
			Int("sections", pr.Stats.Sections).
			Msg("presentation composed")
		if d.OnPresentation != nil {
			d.OnPresentation(pr)
		}
	}

	if err := doc.Save(dest); err != nil {
		log.Error().Err(err).Str("output", dest).Msg("saving document")
		return Result{}, err
	}
	res.Elapsed = now().Sub(started)

	log.Info().
		Str("output", dest).
		Int("presentations", len(res.Presentations)).
		Int("lines", res.Lines()).
		Dur("elapsed", res.Elapsed).
		Msg("batch converted")

	if d.Journal != nil {
		if err := d.Journal.Record(ctx, entry(res, started)); err != nil {
			log.Warn().Err(err).Msg("recording batch in journal")
		}
	}
	return res, nil
}

func (d *Driver) newDocument(title string) (Document, error) {
	if d.NewDocument != nil {
		return d.NewDocument(title)
	}
	return docx.New(docx.WithTitle(title))
}

// asSourceError wraps err as a *types.SourceReadError unless it already
// is one or is a context error.
func asSourceError(path string, err error) error {
	var sre *types.SourceReadError
	if errors.As(err, &sre) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &types.SourceReadError{Path: path, Err: err}
}

func entry(res Result, at time.Time) journal.Entry {
	e := journal.Entry{BatchID: res.BatchID, CreatedAt: at, Output: res.Output}
	for _, p := range res.Presentations {
		e.Presentations = append(e.Presentations, journal.Presentation{
			Name:       p.Presentation.Name,
			Path:       p.Presentation.Path,
			Lines:      p.Lines,
			Titles:     p.Stats.Titles,
			Sections:   p.Stats.Sections,
			Paragraphs: p.Stats.Paragraphs,
		})
	}
	return e
}

// OutputPath returns dir/name.docx. An empty dir means the current
// directory and an empty name means types.DefaultOutputName. A name that
// already ends in .docx is not given a second extension.
func OutputPath(dir, name string) string {
	if dir == "" {
		dir = "."
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = types.DefaultOutputName
	}
	if !strings.EqualFold(filepath.Ext(name), docx.Extension) {
		name += docx.Extension
	}
	return filepath.Join(dir, name)
}

// ExpandInputs turns command-line arguments into presentation paths.
// Files are kept as given, in order, whatever their extension. A directory
// contributes its .pptx entries sorted by name, skipping Office lock files
// (~$*) and subdirectories. Repeated paths are kept.
func ExpandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, &types.SourceReadError{Path: arg, Err: err}
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		entries, err := os.ReadDir(arg)
		if err != nil {
			return nil, &types.SourceReadError{Path: arg, Err: err}
		}
		var found []string
		for _, e := range entries {
			name := e.Name()
			if e.IsDir() || strings.HasPrefix(name, "~$") || !strings.EqualFold(filepath.Ext(name), pptxExt) {
				continue
			}
			found = append(found, filepath.Join(arg, name))
		}
		sort.Strings(found)
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("expanding %v: %w", args, types.ErrNoPresentations)
	}
	return paths, nil
}
