// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

var (
	// ErrNoPresentations is returned when a batch has no inputs.
	ErrNoPresentations = errors.New("no presentations to convert")

	// ErrNotPresentation is returned when an input is not a .pptx package.
	ErrNotPresentation = errors.New("not a pptx presentation")
)

// SourceReadError reports a presentation that could not be opened or
// parsed. A batch that hits one is abandoned without writing output.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("reading presentation %s: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// SinkWriteError reports a failure to persist the output document.
type SinkWriteError struct {
	Path string
	Err  error
}

func (e *SinkWriteError) Error() string {
	return fmt.Sprintf("writing document %s: %v", e.Path, e.Err)
}

func (e *SinkWriteError) Unwrap() error { return e.Err }
