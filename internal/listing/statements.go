// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package listing

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/fsutil"
	"github.com/pdiddy/casefile/internal/naming"
	"github.com/pdiddy/casefile/pkg/types"
)

// Placeholder values written when a statement field is missing.
const (
	NameNotFound    = "Nome não encontrado"
	NumberNotFound  = "Número não encontrado"
	ProcessingError = "Erro no processamento"
)

const statementMarker = "prestacao de contas"

var (
	addresseeRe  = regexp.MustCompile(`À\s+([^\n]+)`)
	caseNumberRe = regexp.MustCompile(`(?i)(?:Processo|N° Processo)[:\s]*([\d\.\-/]+)`)
)

// TextReader returns the plain text of a document.
type TextReader func(path string) (string, error)

// ParseStatement finds the addressee and case number in statement text.
// Missing values are replaced by NameNotFound and NumberNotFound.
func ParseStatement(text string) (name, number string) {
	name, number = NameNotFound, NumberNotFound
	if m := addresseeRe.FindStringSubmatch(text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			name = s
		}
	}
	if m := caseNumberRe.FindStringSubmatch(text); m != nil {
		number = strings.TrimSpace(m[1])
	}
	return name, number
}

// IsStatement reports whether filename names an accounting statement PDF.
func IsStatement(filename string) bool {
	return naming.ContainsFolded(filepath.Base(filename), statementMarker)
}

// StatementSummary holds counts from a statement listing.
type StatementSummary struct {
	Total         int
	MissingName   int
	MissingNumber int
	Failed        int
}

// ListStatements reads every statement PDF in dir and returns one entry per
// file sorted by client name. Unreadable files are logged and recorded with
// ProcessingError.
func ListStatements(ctx context.Context, dir string, read TextReader, log *zap.Logger) ([]types.StatementEntry, StatementSummary, error) {
	var summary StatementSummary
	if log == nil {
		log = zap.NewNop()
	}

	paths, err := fsutil.ListByExt(dir, ".pdf")
	if err != nil {
		return nil, summary, err
	}

	var out []types.StatementEntry
	for _, p := range paths {
		if !IsStatement(p) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return out, summary, err
		}

		e := types.StatementEntry{File: filepath.Base(p)}
		text, err := read(p)
		if err != nil {
			log.Error("reading statement failed", zap.String("file", e.File), zap.Error(err))
			e.ClientName = ProcessingError
			summary.Failed++
		} else {
			e.ClientName, e.CaseNumber = ParseStatement(text)
			if e.ClientName == NameNotFound {
				summary.MissingName++
			}
			if e.CaseNumber == NumberNotFound {
				summary.MissingNumber++
			}
		}
		out = append(out, e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].ClientName < out[j].ClientName })
	summary.Total = len(out)
	return out, summary, nil
}

// PrintStatementSummary writes the listing statistics.
func PrintStatementSummary(w io.Writer, s StatementSummary) {
	fmt.Fprintf(w, "Statements listed: %d\n", s.Total)
	fmt.Fprintf(w, "Without case number: %d\n", s.MissingNumber)
	fmt.Fprintf(w, "Without client name: %d\n", s.MissingName)
	fmt.Fprintf(w, "Unreadable: %d\n", s.Failed)
}
