// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfpage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/pdiddy/casefile/internal/fsutil"
)

// Sentinel errors for page editing.
var (
	ErrPageOutOfRange = errors.New("page index out of range")
	ErrNotFound       = errors.New("file not found")
)

// Warning describes an edit that was declined without error.
type Warning string

const (
	// WarnSinglePage means the document has one page and was left alone.
	WarnSinglePage Warning = "document has a single page; nothing removed"
	// WarnAllPages means the request would have removed every page.
	WarnAllPages Warning = "refusing to remove every page; nothing removed"
	// WarnNoPages means no page indices were requested.
	WarnNoPages Warning = "no pages requested; nothing removed"
	// WarnDeclined means the operator declined the removal.
	WarnDeclined Warning = "removal declined; nothing removed"
)

// PageRemover performs the low-level PDF operations. pages arrive sorted in
// descending order.
type PageRemover interface {
	PageCount(path string) (int, error)
	RemovePages(in, out string, pages []int) error
}

// PDFRemover removes pages with pdfcpu.
type PDFRemover struct {
	conf *model.Configuration
}

// NewPDFRemover returns a remover using a relaxed pdfcpu configuration.
func NewPDFRemover() *PDFRemover {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFRemover{conf: conf}
}

// PageCount returns the page count of path.
func (p *PDFRemover) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("counting pages of %s: %w", filepath.Base(path), err)
	}
	return n, nil
}

// RemovePages writes in minus pages to out.
func (p *PDFRemover) RemovePages(in, out string, pages []int) error {
	sel := make([]string, len(pages))
	for i, n := range pages {
		sel[i] = strconv.Itoa(n)
	}
	if err := api.RemovePagesFile(in, out, sel, p.conf); err != nil {
		return fmt.Errorf("removing pages from %s: %w", filepath.Base(in), err)
	}
	return nil
}

// EditResult is the outcome of one page-removal request.
type EditResult struct {
	File    string
	Removed []int
	Warning Warning
}

// Changed reports whether the file was rewritten.
func (r EditResult) Changed() bool {
	return len(r.Removed) > 0
}

// Editor applies page removals through the temp-then-rename protocol.
type Editor struct {
	remover PageRemover
}

// NewEditor returns an editor backed by r.
func NewEditor(r PageRemover) *Editor {
	return &Editor{remover: r}
}

// RemovePages removes the given 1-based pages of src and stores the result
// at dst, which may equal src. Indices are validated, deduplicated and
// applied in descending order. Single-page documents and requests covering
// every page produce a warning and no mutation. On failure dst is left as it
// was.
func (e *Editor) RemovePages(src, dst string, pages []int) (EditResult, error) {
	res := EditResult{File: filepath.Base(src)}

	n, err := e.remover.PageCount(src)
	if err != nil {
		return res, err
	}
	if n <= 1 {
		res.Warning = WarnSinglePage
		return res, nil
	}
	if len(pages) == 0 {
		res.Warning = WarnNoPages
		return res, nil
	}

	desc, err := descending(pages, n)
	if err != nil {
		return res, fmt.Errorf("%s: %w", res.File, err)
	}
	if len(desc) == n {
		res.Warning = WarnAllPages
		return res, nil
	}

	err = fsutil.ReplaceVia(dst, func(tmp string) error {
		return e.remover.RemovePages(src, tmp, desc)
	})
	if err != nil {
		return res, err
	}
	res.Removed = desc
	return res, nil
}

// RemoveLastPage removes the final page of dir/name in place. The file is
// checked before gate is asked; a nil gate removes without asking.
func (e *Editor) RemoveLastPage(dir, name string, gate Confirmer) (EditResult, error) {
	path := filepath.Join(dir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return EditResult{File: name}, fmt.Errorf("%s: %w", name, ErrNotFound)
	}

	n, err := e.remover.PageCount(path)
	if err != nil {
		return EditResult{File: name}, err
	}
	if n <= 1 {
		return EditResult{File: name, Warning: WarnSinglePage}, nil
	}
	if gate != nil {
		ok, err := gate.Confirm(fmt.Sprintf("Remove page %d of %s?", n, name))
		if err != nil {
			return EditResult{File: name}, err
		}
		if !ok {
			return EditResult{File: name, Warning: WarnDeclined}, nil
		}
	}
	return e.RemovePages(path, path, []int{n})
}

// descending validates pages against 1..n and returns them deduplicated in
// descending order.
func descending(pages []int, n int) ([]int, error) {
	seen := make(map[int]bool, len(pages))
	out := make([]int, 0, len(pages))
	for _, p := range pages {
		if p < 1 || p > n {
			return nil, fmt.Errorf("page %d of %d: %w", p, n, ErrPageOutOfRange)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out, nil
}
