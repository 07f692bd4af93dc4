// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftest writes small, well-formed PDF files for tests.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Page describes the content of one generated page. A zero Page is blank.
// Text may hold several lines separated by "\n"; each is drawn 20 points
// below the previous one.
type Page struct {
	Text  string
	Image bool
}

// Blank returns n blank pages.
func Blank(n int) []Page {
	return make([]Page, n)
}

// Text returns one text page per line.
func Text(lines ...string) []Page {
	pages := make([]Page, len(lines))
	for i, l := range lines {
		pages[i] = Page{Text: l}
	}
	return pages
}

// Write creates dir/name holding pages and returns its path.
func Write(t testing.TB, dir, name string, pages ...Page) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, Build(pages...), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

// Build renders pages into PDF bytes. Text uses the standard Helvetica font
// with WinAnsi encoding; images reference a shared 1x1 grayscale XObject.
func Build(pages ...Page) []byte {
	// Objects: 1 catalog, 2 pages, 3 font, 4 image, then a page and a
	// content stream per page.
	var objs []string
	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 5+2*i)
	}

	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		"<< /Type /XObject /Subtype /Image /Width 1 /Height 1 /ColorSpace /DeviceGray /BitsPerComponent 8 /Length 1 >>\nstream\n\x80\nendstream",
	)

	for i, p := range pages {
		resources := "/Font << /F1 3 0 R >>"
		var content strings.Builder
		if p.Text != "" {
			content.WriteString("BT /F1 12 Tf 20 180 Td")
			for j, line := range strings.Split(p.Text, "\n") {
				if j > 0 {
					content.WriteString(" 0 -20 Td")
				}
				fmt.Fprintf(&content, " (%s) Tj", escape(line))
			}
			content.WriteString(" ET\n")
		}
		if p.Image {
			resources += " /XObject << /Im1 4 0 R >>"
			content.WriteString("q 50 0 0 50 20 20 cm /Im1 Do Q\n")
		}
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 200 200] /Resources << %s >> /Contents %d 0 R >>", resources, 6+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, o := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, o)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

// escape encodes s as a WinAnsi literal string body. Runes above U+00FF
// are replaced with '?'.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\\' || r == '(' || r == ')':
			b.WriteByte('\\')
			b.WriteByte(byte(r))
		case r > 0xFF:
			b.WriteByte('?')
		default:
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}
