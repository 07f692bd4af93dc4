// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/casefile/internal/docx"
	"github.com/pdiddy/casefile/internal/export"
	"github.com/pdiddy/casefile/internal/fields"
	"github.com/pdiddy/casefile/internal/history"
)

var extractCmd = &cobra.Command{
	Use:   "extract [dir]",
	Short: "Extract client, agent and case status from .docx case files",
	Long: `Extract reads every .docx case file in the directory and pulls out the
client name, the commission agent and the case status. The client comes
from the 4x14 summary table, the agent from the 8x3 commission table, and
the status from decorative text boxes or, failing that, the body text.
Fields that are not found are left empty. The records are written to
--output as a spreadsheet (.xlsx) or data file (.yaml, .json).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().String("output", "processos.xlsx", "output file: .xlsx, .yaml or .json")
	extractCmd.Flags().Int("workers", 1, "documents read concurrently")

	bindFlag(extractCmd.Flags(), "extract.output", "output")
	bindFlag(extractCmd.Flags(), "extract.workers", "workers")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	dir := dirArg(args, cfg.Extract.Dir)
	paths, err := fields.ListDocuments(dir)
	if err != nil {
		return err
	}

	ex := fields.NewExtractor(func() docx.Opener { return docx.NewService() }, cfg.Extract.Workers, logger)
	results, summary, err := ex.Run(cmd.Context(), paths, os.Stdout)
	if err != nil {
		return err
	}

	run := history.NewRun("extract", dir)
	for _, r := range results {
		if r.Err != nil {
			run.Add(r.Record.File, history.OutcomeFailed, r.Err.Error())
			continue
		}
		run.Add(r.Record.File, history.OutcomeOK, "")
	}
	recordRun(cmd.Context(), run)

	records := fields.Records(results)
	if err := writeOutput(cfg.Extract.Output, export.CaseRecordsSheet(records), records); err != nil {
		return err
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) failed extraction", summary.Failed)
	}
	return nil
}
