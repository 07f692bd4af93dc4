// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pdiddy/casefile/internal/docx"
	"github.com/pdiddy/casefile/internal/fsutil"
	"github.com/pdiddy/casefile/pkg/types"
)

// ErrNoDocuments is returned when a batch has nothing to process.
var ErrNoDocuments = errors.New("no .docx documents found")

// lockPrefix marks the owner files Word leaves next to open documents.
const lockPrefix = "~$"

// ListDocuments returns the .docx files in dir, skipping Word lock files.
func ListDocuments(dir string) ([]string, error) {
	paths, err := fsutil.ListByExt(dir, ".docx")
	if err != nil {
		return nil, err
	}
	out := paths[:0]
	for _, p := range paths {
		if !strings.HasPrefix(filepath.Base(p), lockPrefix) {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%s: %w", dir, ErrNoDocuments)
	}
	return out, nil
}

// OpenerFactory creates a document service for one worker.
type OpenerFactory func() docx.Opener

// Result pairs a record with the error that emptied it, if any.
type Result struct {
	Record types.CaseRecord
	Err    error
}

// BatchSummary holds counts from an extraction run.
type BatchSummary struct {
	Extracted int
	Failed    int

	// WithStatus counts records whose case status was found.
	WithStatus int
}

// Total returns the number of documents processed.
func (s BatchSummary) Total() int {
	return s.Extracted + s.Failed
}

// HasFailures reports whether any document failed.
func (s BatchSummary) HasFailures() bool {
	return s.Failed > 0
}

// Extractor runs field extraction over many documents.
type Extractor struct {
	factory OpenerFactory
	workers int
	log     *zap.Logger
}

// NewExtractor returns an extractor with the given parallelism. workers <= 1
// processes documents sequentially.
func NewExtractor(factory OpenerFactory, workers int, log *zap.Logger) *Extractor {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Extractor{factory: factory, workers: workers, log: log}
}

// ExtractBatch extracts every path. Results keep input order. A document
// that cannot be read yields a record with nil fields and a Result error;
// the batch continues. Each worker holds its own service from a pool that
// is closed when the batch drains.
func (e *Extractor) ExtractBatch(ctx context.Context, paths []string) ([]Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoDocuments
	}

	workers := min(e.workers, len(paths))
	pool := make(chan docx.Opener, workers)
	for range workers {
		pool <- e.factory()
	}
	defer func() {
		close(pool)
		for o := range pool {
			o.Close()
		}
	}()

	results := make([]Result, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			o := <-pool
			defer func() { pool <- o }()

			rec, err := ExtractFile(o, p)
			if err != nil {
				e.log.Error("extraction failed", zap.String("file", filepath.Base(p)), zap.Error(err))
			}
			results[i] = Result{Record: rec, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// Run extracts paths and prints one line per document to w in input order
// followed by a summary.
func (e *Extractor) Run(ctx context.Context, paths []string, w io.Writer) ([]Result, BatchSummary, error) {
	var summary BatchSummary
	results, err := e.ExtractBatch(ctx, paths)
	if err != nil {
		return nil, summary, err
	}

	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			fmt.Fprintf(w, "failed:    %s (%v)\n", r.Record.File, r.Err)
			continue
		}
		summary.Extracted++
		if r.Record.CaseStatus != nil {
			summary.WithStatus++
		}
		fmt.Fprintf(w, "extracted: %s (client: %s, agent: %s, status: %s)\n",
			r.Record.File, orNA(r.Record.ClientName), orNA(r.Record.AgentName), orNA(r.Record.CaseStatus))
	}

	fmt.Fprintf(w, "\nBatch summary: %d extracted, %d failed, status found in %d/%d (total: %d)\n",
		summary.Extracted, summary.Failed, summary.WithStatus, len(results), summary.Total())
	return results, summary, nil
}

// Records returns the record of every result, failed ones included.
func Records(results []Result) []types.CaseRecord {
	out := make([]types.CaseRecord, len(results))
	for i, r := range results {
		out[i] = r.Record
	}
	return out
}

func orNA(p *string) string {
	if p == nil {
		return "N/A"
	}
	return *p
}
