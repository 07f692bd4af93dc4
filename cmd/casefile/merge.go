// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/fsutil"
	"github.com/pdiddy/casefile/internal/history"
	"github.com/pdiddy/casefile/internal/merge"
	"github.com/pdiddy/casefile/internal/watch"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [source-dirs...]",
	Short: "Consolidate each client's PDFs into one document",
	Long: `Merge scans the source directories for accounting statement (PR),
commission sheet (PL) and invoice (NF) PDFs, groups them by canonical client
name, and writes one consolidated PDF per client into the output directory.
Pages follow the order PR, PL, NF. Clients with fewer than --min-categories
distinct document types are skipped. Files whose names match no category
are reported and left out.

With --watch the merge runs once and then again whenever PDFs in the source
directories change, until interrupted.`,
	RunE: runMerge,
}

func init() {
	mergeCmd.Flags().String("output-dir", "merged", "directory for consolidated PDFs")
	mergeCmd.Flags().Int("min-categories", merge.DefaultMinCategories, "distinct document types a client needs to be merged")
	mergeCmd.Flags().Bool("watch", false, "keep running and merge again when source PDFs change")
	mergeCmd.Flags().Duration("quiet", watch.DefaultQuiet, "with --watch, how long sources must be unchanged before merging")

	bindFlag(mergeCmd.Flags(), "merge.output_dir", "output-dir")
	bindFlag(mergeCmd.Flags(), "merge.min_categories", "min-categories")

	rootCmd.AddCommand(mergeCmd)
}

func runMerge(cmd *cobra.Command, args []string) error {
	dirs := args
	if len(dirs) == 0 {
		dirs = cfg.Merge.SourceDirs
	}
	if len(dirs) == 0 {
		dirs = []string{"."}
	}

	watching, _ := cmd.Flags().GetBool("watch")
	if !watching {
		return mergeOnce(cmd.Context(), dirs)
	}

	out, _ := filepath.Abs(cfg.Merge.OutputDir)
	for _, d := range dirs {
		if abs, _ := filepath.Abs(d); abs == out {
			return fmt.Errorf("--watch needs an output directory outside the source directories (got %s)", d)
		}
	}

	if err := mergeOnce(cmd.Context(), dirs); err != nil {
		logger.Error("merge failed", zap.Error(err))
	}
	quiet, _ := cmd.Flags().GetDuration("quiet")
	fmt.Fprintf(os.Stderr, "Watching %s for changes (Ctrl-C to stop)\n", strings.Join(dirs, ", "))
	return watch.Run(cmd.Context(), watch.Options{Dirs: dirs, Exts: []string{".pdf"}, Quiet: quiet}, logger,
		func(ctx context.Context) error {
			fmt.Println()
			return mergeOnce(ctx, dirs)
		})
}

// mergeOnce runs one consolidation batch over dirs and records it.
func mergeOnce(ctx context.Context, dirs []string) error {
	var paths []string
	for _, d := range dirs {
		found, err := fsutil.ListByExt(d, ".pdf")
		if err != nil {
			return err
		}
		paths = append(paths, found...)
	}

	batch := merge.Collect(paths)
	eligible := batch.Eligible(cfg.Merge.MinCategories)

	run := history.NewRun("merge", strings.Join(dirs, ","))
	c := merge.NewConsolidator(merge.NewPDFMerger(), cfg.Merge.OutputDir, logger)
	results, summary, err := c.Run(ctx, batch, eligible, os.Stdout)

	for _, r := range results {
		if r.Err != nil {
			run.Add(r.Client.Key, history.OutcomeFailed, r.Err.Error())
			continue
		}
		run.Add(r.Client.Key, history.OutcomeOK, r.Output)
	}
	for _, p := range batch.Unclassified {
		run.Add(filepath.Base(p), history.OutcomeSkipped, "unclassified")
	}
	recordRun(ctx, run)

	if err != nil {
		return err
	}
	if summary.HasFailures() {
		return fmt.Errorf("%d client(s) failed consolidation", summary.Failed)
	}
	return nil
}
