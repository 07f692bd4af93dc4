// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/casefile/internal/confirm"
	"github.com/pdiddy/casefile/internal/history"
	"github.com/pdiddy/casefile/internal/pdfpage"
)

var trimCmd = &cobra.Command{
	Use:   "trim-last <file.pdf>",
	Short: "Remove the last page of a PDF",
	Long: `Trim-last removes the final page of one PDF in place. Single-page files
are left alone with a warning. The original is replaced only after the
trimmed copy has been written.`,
	Args: cobra.ExactArgs(1),
	RunE: runTrim,
}

func init() {
	trimCmd.Flags().Bool("yes", false, "remove the page without asking")

	rootCmd.AddCommand(trimCmd)
}

func runTrim(cmd *cobra.Command, args []string) error {
	path := args[0]
	dir, name := filepath.Dir(path), filepath.Base(path)

	yes, _ := cmd.Flags().GetBool("yes")

	run := history.NewRun("trim-last", dir)
	res, err := pdfpage.NewEditor(pdfpage.NewPDFRemover()).RemoveLastPage(dir, name, confirm.Stdin(yes))
	switch {
	case err == nil && res.Warning == pdfpage.WarnDeclined:
		fmt.Println("No changes made.")
		return nil
	case err != nil:
		run.Add(name, history.OutcomeFailed, err.Error())
	case res.Warning != "":
		run.Add(name, history.OutcomeWarning, string(res.Warning))
		fmt.Printf("warning: %s (%s)\n", name, res.Warning)
	default:
		run.Add(name, history.OutcomeOK, fmt.Sprintf("removed page %v", res.Removed))
		fmt.Printf("trimmed: %s (removed page %v)\n", name, res.Removed)
	}
	recordRun(cmd.Context(), run)
	return err
}
