// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsV = "urn:schemas-microsoft-com:vml"

	bodyPart = "word/document.xml"
)

// file is a parsed .docx. All content is read when the file is opened.
type file struct {
	tables     []Table
	decorative []string
	text       string
	release    func()
}

func (f *file) Tables() []Table           { return f.tables }
func (f *file) DecorativeTexts() []string { return f.decorative }
func (f *file) FullText() string          { return f.text }

func (f *file) Close() error {
	if f.release != nil {
		f.release()
		f.release = nil
	}
	return nil
}

// Read parses the .docx at path without going through a Service.
func Read(path string) (Document, error) {
	return read(path)
}

func read(path string) (*file, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w: %v", path, ErrNotDocx, err)
	}
	defer zr.Close()

	var (
		body    *zip.File
		headers []*zip.File
		footers []*zip.File
		runs    []string
	)
	for _, zf := range zr.File {
		name := zf.Name
		if !strings.HasPrefix(name, "word/") || !strings.HasSuffix(name, ".xml") {
			continue
		}
		switch {
		case name == bodyPart:
			body = zf
		case strings.HasPrefix(name, "word/header"):
			headers = append(headers, zf)
		case strings.HasPrefix(name, "word/footer"):
			footers = append(footers, zf)
		}
	}
	if body == nil {
		return nil, fmt.Errorf("%s: %w: missing %s", path, ErrNotDocx, bodyPart)
	}

	f := &file{}
	for _, zf := range append(headers, footers...) {
		pc, err := parseZipPart(zf, false)
		if err != nil {
			continue
		}
		f.decorative = append(f.decorative, pc.decorative...)
	}

	pc, err := parseZipPart(body, true)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", bodyPart, err)
	}
	f.tables = pc.tables
	f.decorative = append(f.decorative, pc.decorative...)

	// Full text follows archive order across every word/*.xml part.
	for _, zf := range zr.File {
		if !strings.HasPrefix(zf.Name, "word/") || !strings.HasSuffix(zf.Name, ".xml") {
			continue
		}
		if zf == body {
			runs = append(runs, pc.runs...)
			continue
		}
		other, err := parseZipPart(zf, false)
		if err != nil {
			continue
		}
		runs = append(runs, other.runs...)
	}
	f.text = strings.Join(runs, " ")
	return f, nil
}

func parseZipPart(zf *zip.File, withTables bool) (partContent, error) {
	rc, err := zf.Open()
	if err != nil {
		return partContent{}, err
	}
	defer rc.Close()
	return parsePart(rc, withTables)
}

// partContent is what one XML part contributes.
type partContent struct {
	tables     []Table
	decorative []string
	runs       []string
}

// isShape reports whether name opens a container whose text counts as
// decorative.
func isShape(name xml.Name) bool {
	switch name.Space {
	case nsV:
		switch name.Local {
		case "shape", "rect", "roundrect", "oval", "textbox":
			return true
		}
	case nsW:
		return name.Local == "drawing"
	}
	return false
}

// tableBuilder accumulates one top-level table.
type tableBuilder struct {
	grid   int
	rows   [][]string
	cell   *strings.Builder
	paras  int
	maxCol int
}

func (b *tableBuilder) startCell() {
	if len(b.rows) == 0 {
		b.rows = append(b.rows, nil)
	}
	b.cell = &strings.Builder{}
	b.paras = 0
}

func (b *tableBuilder) paragraph() {
	if b.paras > 0 {
		b.cell.WriteString("\n")
	}
	b.paras++
}

func (b *tableBuilder) endCell() {
	if b.cell == nil {
		return
	}
	last := len(b.rows) - 1
	b.rows[last] = append(b.rows[last], b.cell.String())
	if n := len(b.rows[last]); n > b.maxCol {
		b.maxCol = n
	}
	b.cell = nil
}

func (b *tableBuilder) table() Table {
	cols := b.grid
	if cols == 0 {
		cols = b.maxCol
	}
	return Table{Rows: len(b.rows), Cols: cols, Cells: b.rows}
}

// parsePart walks one WordprocessingML part. Tables are recorded only when
// withTables is set and only at nesting depth one outside any shape.
func parsePart(r io.Reader, withTables bool) (partContent, error) {
	var (
		pc         partContent
		dec        = xml.NewDecoder(r)
		tblDepth   int
		shapeDepth int
		inText     bool
		cur        *tableBuilder
		shape      strings.Builder
	)

	write := func(s string) {
		switch {
		case shapeDepth > 0:
			shape.WriteString(s)
		case cur != nil && cur.cell != nil:
			cur.cell.WriteString(s)
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return pc, nil
		}
		if err != nil {
			return pc, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if isShape(t.Name) {
				shapeDepth++
				continue
			}
			if t.Name.Space == nsV && t.Name.Local == "textpath" {
				for _, a := range t.Attr {
					if a.Name.Local == "string" && strings.TrimSpace(a.Value) != "" {
						pc.decorative = append(pc.decorative, strings.TrimSpace(a.Value))
					}
				}
				continue
			}
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				write("\t")
			case "br", "cr":
				write("\n")
			case "p":
				if shapeDepth > 0 {
					if shape.Len() > 0 {
						shape.WriteString(" ")
					}
				} else if cur != nil && cur.cell != nil {
					cur.paragraph()
				}
			case "tbl":
				if withTables && shapeDepth == 0 {
					tblDepth++
					if tblDepth == 1 {
						cur = &tableBuilder{}
					}
				}
			case "gridCol":
				if tblDepth == 1 && shapeDepth == 0 {
					cur.grid++
				}
			case "tr":
				if tblDepth == 1 && shapeDepth == 0 {
					cur.rows = append(cur.rows, nil)
				}
			case "tc":
				if tblDepth == 1 && shapeDepth == 0 {
					cur.startCell()
				}
			}

		case xml.EndElement:
			if isShape(t.Name) {
				shapeDepth--
				if shapeDepth == 0 {
					if s := strings.TrimSpace(shape.String()); s != "" {
						pc.decorative = append(pc.decorative, s)
					}
					shape.Reset()
				}
				continue
			}
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "tc":
				if tblDepth == 1 && shapeDepth == 0 {
					cur.endCell()
				}
			case "tbl":
				if withTables && shapeDepth == 0 && tblDepth > 0 {
					tblDepth--
					if tblDepth == 0 {
						pc.tables = append(pc.tables, cur.table())
						cur = nil
					}
				}
			}

		case xml.CharData:
			if !inText {
				continue
			}
			s := string(t)
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				pc.runs = append(pc.runs, trimmed)
			}
			write(s)
		}
	}
}
