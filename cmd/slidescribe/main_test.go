// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/slidescribe/internal/docxtest"
	"github.com/pdiddy/slidescribe/internal/journal"
	"github.com/pdiddy/slidescribe/internal/pptxtest"
	"github.com/pdiddy/slidescribe/pkg/types"
)

func TestConversionConfig_Defaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := conversionConfig(v)
	require.NoError(t, err)
	assert.Equal(t, types.ConversionConfig{
		Output: types.OutputConfig{Dir: ".", Name: "Output"},
		Log:    types.LogConfig{Level: "info", Format: "console"},
	}, cfg)
}

func TestConversionConfig_Overrides(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("output.dir", "out")
	v.Set("output.name", "Deck Notes")
	v.Set("extract.descend_groups", true)
	v.Set("journal.path", "state/journal.db")
	v.Set("log.format", "json")

	cfg, err := conversionConfig(v)
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, "Deck Notes", cfg.Output.Name)
	assert.True(t, cfg.Extract.DescendGroups)
	assert.Equal(t, "state/journal.db", cfg.Journal.Path)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestConversionConfig_InvalidLog(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("log.level", "shout")

	_, err := conversionConfig(v)
	assert.Error(t, err)
}

type fakeExtractor struct {
	lines map[string][]types.Line
	err   error
}

func (f fakeExtractor) Extract(_ context.Context, ref types.Presentation) ([]types.Line, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.lines[ref.Path], nil
}

func TestInspectReports(t *testing.T) {
	ex := fakeExtractor{lines: map[string][]types.Line{
		"a.pptx": {
			{Text: "Title\x00", IsBatchStart: true, IsSlideStart: true},
			{Text: "note", Bold: true},
			{Text: "Next", IsSlideStart: true, Underline: true},
		},
	}}

	reports, err := inspectReports(context.Background(), ex, []string{"a.pptx"})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "a.pptx", reports[0].Presentation.Name)
	assert.Equal(t, []inspectLine{
		{Kind: types.KindTitle, Text: "Title"},
		{Kind: types.KindBody, Text: "note", Bold: true},
		{Kind: types.KindSection, Text: "Next", Underline: true},
	}, reports[0].Lines)

	var out bytes.Buffer
	require.NoError(t, printYAML(&out, reports))
	assert.Contains(t, out.String(), "kind: section")

	out.Reset()
	require.NoError(t, printJSON(&out, reports))
	assert.Contains(t, out.String(), `"kind": "title"`)
}

func TestInspectReports_Error(t *testing.T) {
	_, err := inspectReports(context.Background(), fakeExtractor{err: errors.New("boom")}, []string{"a.pptx"})
	assert.Error(t, err)
}

func TestFormatHistory(t *testing.T) {
	var out bytes.Buffer
	formatHistory(&out, nil)
	assert.Equal(t, "No conversions recorded.\n", out.String())

	out.Reset()
	formatHistory(&out, []journal.Entry{{
		BatchID:   "0f8fad5b-d9cb-469f-a165-70867728950e",
		CreatedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
		Output:    "out/Output.docx",
		Presentations: []journal.Presentation{
			{Name: "a.pptx", Path: "decks/a.pptx", Lines: 4},
			{Name: "b.pptx", Path: "decks/b.pptx", Lines: 2},
		},
	}})
	text := out.String()
	assert.Contains(t, text, "0f8fad5b ")
	assert.Contains(t, text, "out/Output.docx")
	assert.Contains(t, text, "- decks/a.pptx")
	assert.Contains(t, text, "- decks/b.pptx")
	assert.Contains(t, strings.Split(text, "\n")[2], "2       6     ")
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", shortID("abc"))
	assert.Equal(t, "01234567", shortID("0123456789"))
}

func TestRootCommand_ConvertAndHistory(t *testing.T) {
	dir := t.TempDir()
	deck := pptxtest.Write(t, dir, "deck.pptx",
		pptxtest.Slide(pptxtest.TextBox("T", pptxtest.Para(pptxtest.Run("Hello")), pptxtest.Para(pptxtest.Run("world")))),
	)
	db := filepath.Join(dir, "journal.db")

	rootCmd.SetArgs([]string{"convert", "--quiet", "--log-level", "error",
		"--output-dir", dir, "--name", "Notes", "--journal", db, deck})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []docxtest.Para{
		{Style: "Heading1", Text: "Hello"},
		{Text: "world"},
	}, docxtest.Paragraphs(t, filepath.Join(dir, "Notes.docx")))

	j, err := journal.Open(db)
	require.NoError(t, err)
	defer j.Close()
	entries, err := j.Recent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, filepath.Join(dir, "Notes.docx"), entries[0].Output)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)
	rootCmd.SetArgs([]string{"version"})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "slidescribe dev\n", out.String())
}
