// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docxtest writes minimal .docx archives for tests.
package docxtest

import (
	"archive/zip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`

const namespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
	`xmlns:v="urn:schemas-microsoft-com:vml" ` +
	`xmlns:wp="http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing"`

// Part is one archive member.
type Part struct {
	Name string
	XML  string
}

// Body wraps inner body markup into a word/document.xml part.
func Body(inner ...string) Part {
	return Part{
		Name: "word/document.xml",
		XML:  fmt.Sprintf(`%s<w:document %s><w:body>%s</w:body></w:document>`, header, namespaces, strings.Join(inner, "")),
	}
}

// Header returns a header part named word/header<n>.xml.
func Header(n int, inner ...string) Part {
	return Part{
		Name: fmt.Sprintf("word/header%d.xml", n),
		XML:  fmt.Sprintf(`%s<w:hdr %s>%s</w:hdr>`, header, namespaces, strings.Join(inner, "")),
	}
}

// Footer returns a footer part named word/footer<n>.xml.
func Footer(n int, inner ...string) Part {
	return Part{
		Name: fmt.Sprintf("word/footer%d.xml", n),
		XML:  fmt.Sprintf(`%s<w:ftr %s>%s</w:ftr>`, header, namespaces, strings.Join(inner, "")),
	}
}

// Para returns a paragraph with one run per text.
func Para(texts ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p>")
	for _, t := range texts {
		fmt.Fprintf(&sb, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, escape(t))
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

// Table returns a rows x cols table. cells maps "r,c" (1-based) to cell
// text; a "\n" in the text starts a new paragraph.
func Table(rows, cols int, cells map[string]string) string {
	var sb strings.Builder
	sb.WriteString("<w:tbl><w:tblGrid>")
	for c := 0; c < cols; c++ {
		sb.WriteString("<w:gridCol/>")
	}
	sb.WriteString("</w:tblGrid>")
	for r := 1; r <= rows; r++ {
		sb.WriteString("<w:tr>")
		for c := 1; c <= cols; c++ {
			sb.WriteString("<w:tc>")
			text := cells[fmt.Sprintf("%d,%d", r, c)]
			for _, line := range strings.Split(text, "\n") {
				sb.WriteString(Para(line))
			}
			sb.WriteString("</w:tc>")
		}
		sb.WriteString("</w:tr>")
	}
	sb.WriteString("</w:tbl>")
	return sb.String()
}

// TextBox returns a DrawingML text box holding texts as paragraphs.
func TextBox(texts ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p><w:r><w:drawing><wp:anchor><w:txbxContent>")
	for _, t := range texts {
		sb.WriteString(Para(t))
	}
	sb.WriteString("</w:txbxContent></wp:anchor></w:drawing></w:r></w:p>")
	return sb.String()
}

// WordArt returns a VML WordArt shape whose text lives in a textpath.
func WordArt(text string) string {
	return fmt.Sprintf(`<w:p><w:r><w:pict><v:shape style="mso-word-art"><v:textpath string="%s"/></v:shape></w:pict></w:r></w:p>`, escape(text))
}

// Write creates dir/name from parts and returns its path.
func Write(t testing.TB, dir, name string, parts ...Part) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("creating %s: %v", name, err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, p := range parts {
		w, err := zw.Create(p.Name)
		if err != nil {
			t.Fatalf("adding %s: %v", p.Name, err)
		}
		if _, err := w.Write([]byte(p.XML)); err != nil {
			t.Fatalf("writing %s: %v", p.Name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("closing %s: %v", name, err)
	}
	return path
}

func escape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;").Replace(s)
}
