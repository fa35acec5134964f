// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidescribe/internal/convert"
	"github.com/pdiddy/slidescribe/internal/extract"
	"github.com/pdiddy/slidescribe/internal/pptx"
	"github.com/pdiddy/slidescribe/internal/sanitize"
	"github.com/pdiddy/slidescribe/pkg/types"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files or folders...]",
	Short: "Show the lines extracted from presentations",
	Long: `Inspect prints every line extracted from each presentation together with
the role it takes in the document (title, section or body) and its bold
and underline flags. Nothing is written. Output is YAML unless --json is
given.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"extract.descend_groups": "descend-groups",
		})
	},
	RunE: runInspect,
}

// inspectLine is a line as it will appear in the document.
type inspectLine struct {
	Kind      types.LineKind `json:"kind" yaml:"kind"`
	Text      string         `json:"text" yaml:"text"`
	Bold      bool           `json:"bold,omitempty" yaml:"bold,omitempty"`
	Underline bool           `json:"underline,omitempty" yaml:"underline,omitempty"`
}

type inspectReport struct {
	Presentation types.Presentation `json:"presentation" yaml:"presentation"`
	Lines        []inspectLine      `json:"lines" yaml:"lines"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig(viper.GetViper())
	if err != nil {
		return err
	}
	paths, err := convert.ExpandInputs(args)
	if err != nil {
		return err
	}

	ex := extract.New(pptx.Reader{}, extract.Options{DescendGroups: cfg.Extract.DescendGroups})
	reports, err := inspectReports(context.Background(), ex, paths)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(os.Stdout, reports)
	}
	return printYAML(os.Stdout, reports)
}

func inspectReports(ctx context.Context, ex convert.LineExtractor, paths []string) ([]inspectReport, error) {
	reports := make([]inspectReport, 0, len(paths))
	for _, path := range paths {
		ref := types.NewPresentation(path)
		lines, err := ex.Extract(ctx, ref)
		if err != nil {
			return nil, err
		}
		r := inspectReport{Presentation: ref, Lines: make([]inspectLine, len(lines))}
		for i, l := range lines {
			r.Lines[i] = inspectLine{
				Kind:      l.Kind(),
				Text:      sanitize.Clean(l.Text),
				Bold:      l.Bold,
				Underline: l.Underline,
			}
		}
		reports = append(reports, r)
	}
	return reports, nil
}

func init() {
	inspectCmd.Flags().Bool("descend-groups", false, "read text inside grouped shapes")
	inspectCmd.Flags().Bool("json", false, "output JSON instead of YAML")

	rootCmd.AddCommand(inspectCmd)
}
