// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/confirm"
	"github.com/pdiddy/casefile/internal/export"
	"github.com/pdiddy/casefile/internal/history"
	"github.com/pdiddy/casefile/internal/pdfpage"
)

var blankCmd = &cobra.Command{
	Use:   "blank",
	Short: "Find and remove blank PDF pages",
	Long: `Blank inspects every PDF in a directory page by page. A page is blank
when it yields no text and references no image. Use scan to report and
clean to remove the blank pages after confirmation.`,
}

// --- scan subcommand ---

var blankScanCmd = &cobra.Command{
	Use:   "scan [dir]",
	Short: "Report page counts and blank pages of every PDF",
	Long: `Scan lists the valid page count of each multi-page PDF and the blank
pages of each file. With --report the scan is also written as YAML or JSON.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlankScan,
}

func runBlankScan(cmd *cobra.Command, args []string) error {
	scan, err := pdfpage.AnalyzeDir(cmd.Context(), dirArg(args, cfg.Clean.Dir), logger)
	if err != nil {
		return err
	}
	pdfpage.PrintReport(os.Stdout, scan)

	report, _ := cmd.Flags().GetString("report")
	if report != "" {
		if err := export.WriteData(report, scan); err != nil {
			return err
		}
		fmt.Printf("Report written to %s\n", report)
	}

	if len(scan.Unreadable) > 0 {
		return fmt.Errorf("%d file(s) could not be analyzed", len(scan.Unreadable))
	}
	return nil
}

// --- clean subcommand ---

var blankCleanCmd = &cobra.Command{
	Use:   "clean [dir]",
	Short: "Remove blank pages after confirmation",
	Long: `Clean scans the directory, prints the report, and asks for confirmation
before removing the blank pages. Single-page files and files whose pages are
all blank are left alone with a warning. Cleaned files replace the originals
unless --output-dir is given. Without a terminal the prompt is declined
unless --yes is passed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlankClean,
}

func runBlankClean(cmd *cobra.Command, args []string) error {
	dir := dirArg(args, cfg.Clean.Dir)
	scan, err := pdfpage.AnalyzeDir(cmd.Context(), dir, logger)
	if err != nil {
		return err
	}
	pdfpage.PrintReport(os.Stdout, scan)
	fmt.Println()

	cleaner := pdfpage.NewCleaner(
		pdfpage.NewEditor(pdfpage.NewPDFRemover()),
		confirm.Stdin(cfg.Clean.AssumeYes),
		logger,
	)
	results, summary, err := cleaner.Clean(cmd.Context(), scan, cfg.Clean.OutputDir, os.Stdout)
	if summary.Declined {
		return err
	}

	run := history.NewRun("blank clean", dir)
	for _, r := range results {
		switch {
		case r.Err != nil:
			run.Add(r.File, history.OutcomeFailed, r.Err.Error())
		case r.Warning != "":
			run.Add(r.File, history.OutcomeWarning, string(r.Warning))
		default:
			run.Add(r.File, history.OutcomeOK, fmt.Sprintf("removed pages %v", r.Removed))
		}
	}
	if len(results) > 0 {
		recordRun(cmd.Context(), run)
	}

	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d file(s) failed cleaning", summary.Failed)
	}
	logger.Debug("blank clean finished", zap.Int("cleaned", summary.Cleaned), zap.Int("warned", summary.Warned))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	blankCmd.PersistentFlags().String("dir", "", "directory of PDFs (default: current directory)")
	bindFlag(blankCmd.PersistentFlags(), "clean.dir", "dir")

	blankScanCmd.Flags().String("report", "", "write the scan to a .yaml or .json file")

	blankCleanCmd.Flags().Bool("yes", false, "remove pages without asking")
	blankCleanCmd.Flags().String("output-dir", "", "write cleaned copies here instead of replacing originals")
	bindFlag(blankCleanCmd.Flags(), "clean.assume_yes", "yes")
	bindFlag(blankCleanCmd.Flags(), "clean.output_dir", "output-dir")

	blankCmd.AddCommand(blankScanCmd)
	blankCmd.AddCommand(blankCleanCmd)

	rootCmd.AddCommand(blankCmd)
}
