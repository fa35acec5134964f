// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DefaultOutputName is the base name of the output document when none is given.
const DefaultOutputName = "Output"

// OutputConfig holds where the converted document is written.
type OutputConfig struct {
	// Dir is the destination directory (default ".").
	Dir string `json:"dir" yaml:"dir"`

	// Name is the document base name without extension (default "Output").
	Name string `json:"name" yaml:"name"`
}

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// DescendGroups makes the extractor visit text inside group shapes.
	// Off by default: only top-level shapes are read.
	DescendGroups bool `json:"descend_groups" yaml:"descend_groups"`
}

// JournalConfig holds settings for the conversion history database.
type JournalConfig struct {
	// Path is the SQLite file. Empty disables the journal.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level"`

	// Format is console or json (default console).
	Format string `json:"format" yaml:"format"`

	// NoColor disables ANSI colours in console output.
	NoColor bool `json:"no_color,omitempty" yaml:"no_color,omitempty"`
}

// ConversionConfig groups the settings used by a convert run.
type ConversionConfig struct {
	Output  OutputConfig  `json:"output" yaml:"output"`
	Extract ExtractConfig `json:"extract" yaml:"extract"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Log     LogConfig     `json:"log" yaml:"log"`
}
