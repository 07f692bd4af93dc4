// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdfpage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/fsutil"
	"github.com/pdiddy/casefile/pkg/types"
)

// Analyze classifies every page of src and reports the blank ones.
func Analyze(src PageSource, name string) (types.BlankPageReport, error) {
	r := types.BlankPageReport{File: name, TotalPages: src.NumPages()}
	for i := 1; i <= r.TotalPages; i++ {
		pc, err := src.Page(i)
		if err != nil {
			return types.BlankPageReport{}, fmt.Errorf("%s: %w", name, err)
		}
		if pc.Blank() {
			r.BlankPages = append(r.BlankPages, i)
		}
	}
	r.ValidPages = r.TotalPages - len(r.BlankPages)
	return r, nil
}

// AnalyzeFile opens and analyzes the PDF at path.
func AnalyzeFile(path string) (types.BlankPageReport, error) {
	f, err := Open(path)
	if err != nil {
		return types.BlankPageReport{}, err
	}
	defer f.Close()
	return Analyze(f, filepath.Base(path))
}

// Scan is the result of analyzing a directory.
type Scan struct {
	Dir     string                  `json:"dir" yaml:"dir"`
	Reports []types.BlankPageReport `json:"reports" yaml:"reports"`

	// Unreadable lists the base names of files that could not be analyzed.
	Unreadable []string `json:"unreadable,omitempty" yaml:"unreadable,omitempty"`
}

// MultiPage returns the number of analyzed files with more than one page.
func (s Scan) MultiPage() int {
	n := 0
	for _, r := range s.Reports {
		if r.MultiPage() {
			n++
		}
	}
	return n
}

// WithBlankPages returns the reports that list at least one blank page.
func (s Scan) WithBlankPages() []types.BlankPageReport {
	var out []types.BlankPageReport
	for _, r := range s.Reports {
		if r.HasBlankPages() {
			out = append(out, r)
		}
	}
	return out
}

// AnalyzeDir analyzes every PDF in dir in directory order. Unreadable files
// are logged and recorded; they do not stop the scan.
func AnalyzeDir(ctx context.Context, dir string, log *zap.Logger) (Scan, error) {
	if log == nil {
		log = zap.NewNop()
	}
	paths, err := fsutil.ListByExt(dir, ".pdf")
	if err != nil {
		return Scan{}, err
	}

	scan := Scan{Dir: dir}
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return scan, err
		}
		r, err := AnalyzeFile(p)
		if err != nil {
			log.Warn("could not analyze file", zap.String("file", filepath.Base(p)), zap.Error(err))
			scan.Unreadable = append(scan.Unreadable, filepath.Base(p))
			continue
		}
		log.Debug("file analyzed",
			zap.String("file", r.File),
			zap.Int("pages", r.TotalPages),
			zap.Ints("blank", r.BlankPages))
		scan.Reports = append(scan.Reports, r)
	}
	return scan, nil
}

var headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#4D96FF"))

// PrintReport writes the human-readable scan report. The valid-pages section
// lists only multi-page files.
func PrintReport(w io.Writer, s Scan) {
	fmt.Fprintln(w, headingStyle.Render("Valid pages per file (multi-page files only)"))
	listed := false
	for _, r := range s.Reports {
		if r.MultiPage() {
			fmt.Fprintf(w, "  - %s: %d page(s)\n", r.File, r.ValidPages)
			listed = true
		}
	}
	if !listed {
		fmt.Fprintln(w, "  none")
	}

	fmt.Fprintf(w, "\n%s %d\n", headingStyle.Render("Files with more than one page:"), s.MultiPage())

	fmt.Fprintln(w, "\n"+headingStyle.Render("Files with blank pages"))
	blank := s.WithBlankPages()
	for _, r := range blank {
		fmt.Fprintf(w, "  - %s (blank pages: %v)\n", r.File, r.BlankPages)
	}
	if len(blank) == 0 {
		fmt.Fprintln(w, "  none")
	}

	if len(s.Unreadable) > 0 {
		fmt.Fprintln(w, "\n"+headingStyle.Render("Unreadable files"))
		for _, name := range s.Unreadable {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	fmt.Fprintf(w, "\nScan summary: %d analyzed, %d with blank pages, %d unreadable\n",
		len(s.Reports), len(blank), len(s.Unreadable))
}
