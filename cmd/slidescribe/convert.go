// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidescribe/internal/convert"
	"github.com/pdiddy/slidescribe/internal/extract"
	"github.com/pdiddy/slidescribe/internal/journal"
	"github.com/pdiddy/slidescribe/internal/pptx"
)

var convertCmd = &cobra.Command{
	Use:   "convert [files or folders...]",
	Short: "Convert presentations into one Word document",
	Long: `Convert reads the given .pptx files, in order, and writes their text into a
single .docx document. A folder argument contributes its .pptx files
sorted by name. If any presentation cannot be read, no document is
written and an existing document at the destination is left untouched.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"output.dir":             "output-dir",
			"output.name":            "name",
			"extract.descend_groups": "descend-groups",
			"journal.path":           "journal",
		})
	},
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig(viper.GetViper())
	if err != nil {
		return err
	}
	log := newLogger(cfg)

	paths, err := convert.ExpandInputs(args)
	if err != nil {
		return err
	}
	dest := convert.OutputPath(cfg.Output.Dir, cfg.Output.Name)

	d := &convert.Driver{
		Extractor: extract.New(pptx.Reader{}, extract.Options{DescendGroups: cfg.Extract.DescendGroups}),
		Logger:    log,
	}

	if cfg.Journal.Path != "" {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			log.Warn().Err(err).Str("journal", cfg.Journal.Path).Msg("journal disabled")
		} else {
			defer j.Close()
			d.Journal = j
		}
	}

	var bar *progressbar.ProgressBar
	if quiet, _ := cmd.Flags().GetBool("quiet"); !quiet {
		bar = newProgressBar(len(paths))
		d.OnPresentation = func(convert.PresentationResult) { _ = bar.Add(1) }
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := d.Run(ctx, paths, dest)
	if bar != nil {
		if err == nil {
			_ = bar.Finish()
		} else {
			fmt.Fprintln(os.Stderr)
		}
	}
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "✗ conversion failed: %v\n", err)
		return err
	}

	color.New(color.FgGreen).Printf("✓ The document was created: %s\n", res.Output)
	fmt.Printf("  %d presentation(s), %d title(s), %d section(s), %d paragraph(s)\n",
		len(res.Presentations), res.Stats.Titles, res.Stats.Sections, res.Stats.Paragraphs)
	return nil
}

func newProgressBar(total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("decks"),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
	)
}

func init() {
	convertCmd.Flags().String("output-dir", ".", "directory the document is written to")
	convertCmd.Flags().String("name", "Output", "document name, without extension")
	convertCmd.Flags().Bool("descend-groups", false, "read text inside grouped shapes")
	convertCmd.Flags().String("journal", "", "SQLite conversion history file (empty disables)")
	convertCmd.Flags().BoolP("quiet", "q", false, "do not show a progress bar")

	rootCmd.AddCommand(convertCmd)
}
