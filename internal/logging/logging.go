// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zerolog logger shared by the CLI and the
// batch driver.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/pdiddy/slidescribe/pkg/types"
)

// Supported formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel maps debug, info, warn or error to a zerolog level. An empty
// string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	}
	return zerolog.NoLevel, fmt.Errorf("unknown log level %q (want debug, info, warn or error)", s)
}

// Validate reports whether cfg names a known level and format.
func Validate(cfg types.LogConfig) error {
	if _, err := ParseLevel(cfg.Level); err != nil {
		return err
	}
	switch cfg.Format {
	case "", FormatConsole, FormatJSON:
		return nil
	}
	return fmt.Errorf("unknown log format %q (want console or json)", cfg.Format)
}

// New returns a logger writing to w (stderr when nil). Unknown levels fall
// back to info and unknown formats to console; call Validate first to
// reject them instead.
func New(cfg types.LogConfig, w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	out := w
	if cfg.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: cfg.NoColor}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
