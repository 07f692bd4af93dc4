// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfpage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Confirmer asks the operator a yes/no question.
type Confirmer interface {
	Confirm(question string) (bool, error)
}

// CleanResult is the outcome of cleaning one file.
type CleanResult struct {
	File    string
	Output  string
	Removed []int
	Warning Warning
	Err     error
}

// CleanSummary holds counts from a blank-page removal run.
type CleanSummary struct {
	Cleaned  int
	Warned   int
	Failed   int
	Declined bool
}

// Total returns the number of files attempted.
func (s CleanSummary) Total() int {
	return s.Cleaned + s.Warned + s.Failed
}

// HasFailures reports whether any file failed.
func (s CleanSummary) HasFailures() bool {
	return s.Failed > 0
}

// Cleaner removes the blank pages found by a scan after confirmation.
type Cleaner struct {
	editor *Editor
	gate   Confirmer
	log    *zap.Logger
}

// NewCleaner returns a cleaner.
func NewCleaner(editor *Editor, gate Confirmer, log *zap.Logger) *Cleaner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cleaner{editor: editor, gate: gate, log: log}
}

// Clean asks for confirmation and then removes the blank pages of every
// report in s. With outDir empty files are rewritten in place; otherwise
// cleaned copies are written to outDir and the originals are kept. Declining
// performs no mutation.
func (c *Cleaner) Clean(ctx context.Context, s Scan, outDir string, w io.Writer) ([]CleanResult, CleanSummary, error) {
	var summary CleanSummary
	targets := s.WithBlankPages()
	if len(targets) == 0 {
		fmt.Fprintln(w, "No blank pages found; nothing to do.")
		return nil, summary, nil
	}

	ok, err := c.gate.Confirm(fmt.Sprintf("Remove the blank pages listed above from %d file(s)?", len(targets)))
	if err != nil {
		return nil, summary, fmt.Errorf("confirming removal: %w", err)
	}
	if !ok {
		summary.Declined = true
		fmt.Fprintln(w, "No changes made.")
		return nil, summary, nil
	}

	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return nil, summary, fmt.Errorf("creating output directory: %w", err)
		}
	}

	results := make([]CleanResult, 0, len(targets))
	for _, r := range targets {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		src := filepath.Join(s.Dir, r.File)
		dst := src
		if outDir != "" {
			dst = filepath.Join(outDir, r.File)
		}

		res, err := c.editor.RemovePages(src, dst, r.BlankPages)
		cr := CleanResult{File: r.File, Removed: res.Removed, Warning: res.Warning, Err: err}
		if err == nil && res.Changed() {
			cr.Output = dst
		}
		results = append(results, cr)
		switch {
		case err != nil:
			summary.Failed++
			c.log.Error("removing blank pages failed", zap.String("file", r.File), zap.Error(err))
			fmt.Fprintf(w, "failed:  %s (%v)\n", r.File, err)
		case res.Warning != "":
			summary.Warned++
			c.log.Warn(string(res.Warning), zap.String("file", r.File))
			fmt.Fprintf(w, "warning: %s (%s)\n", r.File, res.Warning)
		default:
			summary.Cleaned++
			fmt.Fprintf(w, "cleaned: %s (removed pages %v)\n", r.File, r.BlankPages)
		}
	}

	fmt.Fprintf(w, "\nBatch summary: %d cleaned, %d warnings, %d failed (total: %d)\n",
		summary.Cleaned, summary.Warned, summary.Failed, summary.Total())
	return results, summary, nil
}
