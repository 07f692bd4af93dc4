// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfpage classifies PDF pages as blank and removes pages from PDF
// files without ever leaving a partially written file at the original path.
package pdfpage

import (
	"fmt"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/casefile/pkg/types"
)

// PageSource is a random-access sequence of pages. Indices are 1-based.
type PageSource interface {
	NumPages() int
	Page(i int) (types.PageContent, error)
}

// File is a PDF opened for reading.
type File struct {
	f *os.File
	r *pdf.Reader
}

// Open opens the PDF at path.
func Open(path string) (*File, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	return &File{f: f, r: r}, nil
}

// Close releases the underlying file.
func (p *File) Close() error {
	return p.f.Close()
}

// NumPages returns the page count.
func (p *File) NumPages() int {
	return p.r.NumPage()
}

// Page probes page i for text and image content.
func (p *File) Page(i int) (pc types.PageContent, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading page %d: %v", i, r)
		}
	}()

	page := p.r.Page(i)
	if page.V.IsNull() {
		return pc, fmt.Errorf("page %d not found", i)
	}

	text, err := page.GetPlainText(nil)
	if err != nil {
		return pc, fmt.Errorf("extracting text from page %d: %w", i, err)
	}
	pc.HasText = strings.TrimSpace(text) != ""
	pc.HasImage = hasImage(page)
	return pc, nil
}

// Text returns the text of every page. Glyphs sharing a baseline form one
// line and each page ends with a newline. Pages without content are skipped.
func (p *File) Text() (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("reading text: %v", r)
		}
	}()

	var sb strings.Builder
	for i := 1; i <= p.r.NumPage(); i++ {
		page := p.r.Page(i)
		if page.V.IsNull() {
			continue
		}
		writeLines(&sb, page.Content().Text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// writeLines writes glyphs in content order, starting a new line whenever
// the baseline moves.
func writeLines(sb *strings.Builder, glyphs []pdf.Text) {
	for i, g := range glyphs {
		if i > 0 && g.Y != glyphs[i-1].Y {
			sb.WriteString("\n")
		}
		sb.WriteString(g.S)
	}
}

// ReadText opens path and returns its text.
func ReadText(path string) (string, error) {
	f, err := Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return f.Text()
}

// hasImage reports whether the page resources reference an image or form
// XObject. Inline images are not detected.
func hasImage(page pdf.Page) bool {
	xobjs := page.Resources().Key("XObject")
	for _, name := range xobjs.Keys() {
		switch xobjs.Key(name).Key("Subtype").Name() {
		case "Image", "Form":
			return true
		}
	}
	return false
}
