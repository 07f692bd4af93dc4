// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx reads the parts of Word (.docx) documents that field
// extraction inspects: top-level tables, decorative shape text, and the
// full run text of every part.
package docx

import "errors"

// Sentinel errors.
var (
	ErrNotDocx       = errors.New("not a docx document")
	ErrServiceClosed = errors.New("document service closed")
	ErrSessionOpen   = errors.New("a document session is already open")
)

// Document is an open, read-only document session. Callers must Close it.
type Document interface {
	// Tables returns the body's top-level tables in document order.
	Tables() []Table

	// DecorativeTexts returns the text of shapes, text boxes and WordArt,
	// header and footer parts first, then the body.
	DecorativeTexts() []string

	// FullText returns the text of every run in every part, space-joined.
	FullText() string

	Close() error
}

// Table is a grid of cell texts. Rows and Cols are the table's declared
// dimensions; a row may hold fewer cells than Cols when cells are merged.
type Table struct {
	Rows  int
	Cols  int
	Cells [][]string
}

// Cell returns the raw text of the cell at 1-based (row, col). Paragraphs
// within a cell are separated by "\n".
func (t Table) Cell(row, col int) (string, bool) {
	if row < 1 || row > len(t.Cells) {
		return "", false
	}
	cells := t.Cells[row-1]
	if col < 1 || col > len(cells) {
		return "", false
	}
	return cells[col-1], true
}

// Is reports whether t has exactly rows x cols dimensions.
func (t Table) Is(rows, cols int) bool {
	return t.Rows == rows && t.Cols == cols
}
