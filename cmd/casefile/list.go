// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/casefile/internal/export"
	"github.com/pdiddy/casefile/internal/history"
	"github.com/pdiddy/casefile/internal/listing"
	"github.com/pdiddy/casefile/internal/pdfpage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List commission sheets and accountability statements",
	Long: `List builds spreadsheets from the documents of a directory. Use
commissions to parse commission sheet filenames and statements to read
client name and case number from statement PDFs.`,
}

// --- commissions subcommand ---

var listCommissionsCmd = &cobra.Command{
	Use:   "commissions [dir]",
	Short: "List commission sheets by client, status and agent",
	Long: `Commissions parses filenames of the form
"Planilha Comissão <client> (<status> <agent>).pdf". Names that do not match
keep the client part and leave status and agent empty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runListCommissions,
}

func runListCommissions(cmd *cobra.Command, args []string) error {
	dir := dirArg(args, cfg.List.Dir)
	entries, err := listing.ListCommissions(dir)
	if err != nil {
		return err
	}

	for _, e := range entries {
		fmt.Printf("listed:  %s (client: %s, status: %s, agent: %s)\n", e.File, e.Name, e.Status, e.Agent)
	}
	fmt.Printf("\nCommission sheets listed: %d\n", len(entries))

	return writeOutput(cfg.List.CommissionsOutput, export.CommissionsSheet(entries), entries)
}

// --- statements subcommand ---

var listStatementsCmd = &cobra.Command{
	Use:   "statements [dir]",
	Short: "List client name and case number of statement PDFs",
	Long: `Statements reads every PDF whose name contains "prestação de contas"
and takes the client name from the line following "À" and the case number
following "Processo". Entries are sorted by client name.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runListStatements,
}

func runListStatements(cmd *cobra.Command, args []string) error {
	dir := dirArg(args, cfg.List.Dir)
	entries, summary, err := listing.ListStatements(cmd.Context(), dir, pdfpage.ReadText, logger)
	if err != nil {
		return err
	}
	listing.PrintStatementSummary(os.Stdout, summary)

	run := history.NewRun("list statements", dir)
	for _, e := range entries {
		switch {
		case e.ClientName == listing.ProcessingError:
			run.Add(e.File, history.OutcomeFailed, listing.ProcessingError)
		case e.ClientName == listing.NameNotFound || e.CaseNumber == listing.NumberNotFound:
			run.Add(e.File, history.OutcomeWarning, e.ClientName+" / "+e.CaseNumber)
		default:
			run.Add(e.File, history.OutcomeOK, e.CaseNumber)
		}
	}
	recordRun(cmd.Context(), run)

	if err := writeOutput(cfg.List.StatementsOutput, export.StatementsSheet(entries), entries); err != nil {
		return err
	}

	if summary.Failed > 0 {
		return fmt.Errorf("%d statement(s) could not be read", summary.Failed)
	}
	return nil
}

func init() {
	listCmd.PersistentFlags().String("dir", "", "directory to list (default: current directory)")
	bindFlag(listCmd.PersistentFlags(), "list.dir", "dir")

	listCommissionsCmd.Flags().String("output", "planilhas.xlsx", "output file: .xlsx, .yaml or .json")
	listStatementsCmd.Flags().String("output", "prestacoes_de_contas.xlsx", "output file: .xlsx, .yaml or .json")
	bindFlag(listCommissionsCmd.Flags(), "list.commissions_output", "output")
	bindFlag(listStatementsCmd.Flags(), "list.statements_output", "output")

	listCmd.AddCommand(listCommissionsCmd)
	listCmd.AddCommand(listStatementsCmd)

	rootCmd.AddCommand(listCmd)
}
