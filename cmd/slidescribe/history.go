// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/slidescribe/internal/journal"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversions from the journal",
	Long: `History reads the conversion journal and lists the most recent batches,
newest first, with their output document and source presentations.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, map[string]string{
			"journal.path": "journal",
		})
	},
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := conversionConfig(viper.GetViper())
	if err != nil {
		return err
	}
	if cfg.Journal.Path == "" {
		return errors.New("no journal configured: pass --journal or set journal.path")
	}

	j, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return err
	}
	defer j.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	entries, err := j.Recent(context.Background(), limit)
	if err != nil {
		return err
	}

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		return printJSON(os.Stdout, entries)
	}
	formatHistory(os.Stdout, entries)
	return nil
}

func formatHistory(w io.Writer, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return
	}

	fmt.Fprintf(w, "%-20s  %-8s  %-6s  %-6s  %s\n", "When", "Batch", "Decks", "Lines", "Output")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, e := range entries {
		fmt.Fprintf(w, "%-20s  %-8s  %-6d  %-6d  %s\n",
			e.CreatedAt.Local().Format(time.DateTime),
			shortID(e.BatchID),
			len(e.Presentations),
			e.Lines(),
			e.Output)
		for _, p := range e.Presentations {
			fmt.Fprintf(w, "%-20s  %-8s  %-6s  %-6d  - %s\n", "", "", "", p.Lines, p.Path)
		}
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func init() {
	historyCmd.Flags().String("journal", "", "SQLite conversion history file")
	historyCmd.Flags().Int("limit", journal.DefaultLimit, "maximum number of batches to list")
	historyCmd.Flags().Bool("json", false, "output JSON")

	rootCmd.AddCommand(historyCmd)
}
