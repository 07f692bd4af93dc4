// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/fsutil"
	"github.com/pdiddy/casefile/pkg/types"
)

// ErrNoSourceFiles reports an eligible client with no backing files. It
// indicates a defect in eligibility computation and is never skipped silently.
var ErrNoSourceFiles = errors.New("eligible client has no source files")

// Merger concatenates PDFs in order into out.
type Merger interface {
	Merge(inputs []string, out string) error
}

// PDFMerger merges with pdfcpu.
type PDFMerger struct {
	conf *model.Configuration
}

// NewPDFMerger returns a merger using a relaxed pdfcpu configuration.
func NewPDFMerger() *PDFMerger {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFMerger{conf: conf}
}

// Merge writes the concatenation of inputs to out.
func (m *PDFMerger) Merge(inputs []string, out string) error {
	if err := api.MergeCreateFile(inputs, out, false, m.conf); err != nil {
		return fmt.Errorf("merging %d files: %w", len(inputs), err)
	}
	return nil
}

// Result is the outcome of consolidating one client.
type Result struct {
	Client types.ClientIdentity
	Output string
	Inputs int
	Err    error
}

// Summary holds counts from a consolidation run.
type Summary struct {
	Merged       int
	Failed       int
	Ineligible   int
	Unclassified int
}

// Total returns the number of eligible clients processed.
func (s Summary) Total() int {
	return s.Merged + s.Failed
}

// HasFailures reports whether any client failed.
func (s Summary) HasFailures() bool {
	return s.Failed > 0
}

// Consolidator writes one merged PDF per eligible client.
type Consolidator struct {
	merger Merger
	outDir string
	log    *zap.Logger
}

// NewConsolidator returns a consolidator writing to outDir.
func NewConsolidator(m Merger, outDir string, log *zap.Logger) *Consolidator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Consolidator{merger: m, outDir: outDir, log: log}
}

// Consolidate merges g's files in category order into <outDir>/<key>.pdf.
func (c *Consolidator) Consolidate(g *types.ClientGroup) (string, error) {
	files := g.Ordered()
	if len(files) == 0 {
		return "", fmt.Errorf("%s: %w", g.Identity.Key, ErrNoSourceFiles)
	}

	inputs := make([]string, len(files))
	for i, f := range files {
		inputs[i] = f.Path
	}

	if err := os.MkdirAll(c.outDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	out := filepath.Join(c.outDir, g.Identity.Key+".pdf")
	err := fsutil.ReplaceVia(out, func(tmp string) error {
		return c.merger.Merge(inputs, tmp)
	})
	if err != nil {
		return "", err
	}
	return out, nil
}

// Run consolidates every eligible client of b, printing one status line per
// client to w and a final summary. A failure on one client is logged and
// the run continues with the next.
func (c *Consolidator) Run(ctx context.Context, b Batch, eligible []types.ClientIdentity, w io.Writer) ([]Result, Summary, error) {
	summary := Summary{
		Ineligible:   len(b.Groups) - len(eligible),
		Unclassified: len(b.Unclassified),
	}

	for _, p := range b.Unclassified {
		c.log.Warn("unclassified file excluded from grouping", zap.String("file", filepath.Base(p)))
	}

	results := make([]Result, 0, len(eligible))
	for _, id := range eligible {
		if err := ctx.Err(); err != nil {
			return results, summary, err
		}

		g, ok := b.Groups[id.Key]
		if !ok {
			g = types.NewClientGroup(id)
		}

		res := Result{Client: id, Inputs: len(g.Ordered())}
		out, err := c.Consolidate(g)
		if err != nil {
			res.Err = err
			summary.Failed++
			c.log.Error("consolidation failed", zap.String("client", id.Key), zap.Error(err))
			fmt.Fprintf(w, "failed:  %s (%v)\n", id.Key, err)
		} else {
			res.Output = out
			summary.Merged++
			c.log.Debug("client consolidated", zap.String("client", id.Key), zap.String("output", out))
			fmt.Fprintf(w, "merged:  %s (%d files)\n", id.Key, res.Inputs)
		}
		results = append(results, res)
	}

	fmt.Fprintf(w, "\nBatch summary: %d merged, %d failed, %d single-source, %d unclassified (total: %d)\n",
		summary.Merged, summary.Failed, summary.Ineligible, summary.Unclassified, summary.Total())
	return results, summary, nil
}
