// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/casefile/internal/export"
	"github.com/pdiddy/casefile/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded batch runs",
	Long: `History lists the most recent batch runs recorded in the history
database with their success and failure counts. Use show with a run ID to
see the outcome of every file in that run.`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}

	if format != "table" {
		return export.Encode(os.Stdout, export.Format(format), runs)
	}
	history.PrintRuns(os.Stdout, runs)
	return nil
}

// --- show subcommand ---

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its per-file outcomes",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validateFormat(format); err != nil {
		return err
	}

	store, err := history.Open(cfg.History.Dir)
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	if format != "table" {
		return export.Encode(os.Stdout, export.Format(format), run)
	}
	history.PrintRun(os.Stdout, run)
	return nil
}

func init() {
	historyCmd.PersistentFlags().String("format", "table", "output format: table, yaml, or json")
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	historyCmd.AddCommand(historyShowCmd)

	rootCmd.AddCommand(historyCmd)
}

// validateFormat rejects formats the history commands cannot print.
func validateFormat(format string) error {
	switch format {
	case "table", string(export.FormatYAML), string(export.FormatJSON):
		return nil
	}
	return fmt.Errorf("unsupported format %q: use table, yaml, or json", format)
}
