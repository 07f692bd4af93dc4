// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/docx"
	"github.com/pdiddy/casefile/internal/docx/docxtest"
	"github.com/pdiddy/casefile/pkg/types"
)

// fakeDoc is an in-memory docx.Document.
type fakeDoc struct {
	tables     []docx.Table
	decorative []string
	text       string
	closed     bool
}

func (d *fakeDoc) Tables() []docx.Table       { return d.tables }
func (d *fakeDoc) DecorativeTexts() []string { return d.decorative }
func (d *fakeDoc) FullText() string          { return d.text }
func (d *fakeDoc) Close() error              { d.closed = true; return nil }

// grid returns a rows x cols table with the given cells set.
func grid(rows, cols int, set map[[2]int]string) docx.Table {
	cells := make([][]string, rows)
	for r := range cells {
		cells[r] = make([]string, cols)
	}
	for rc, v := range set {
		cells[rc[0]-1][rc[1]-1] = v
	}
	return docx.Table{Rows: rows, Cols: cols, Cells: cells}
}

// fakeOpener serves documents by base name and tracks open sessions.
type fakeOpener struct {
	docs   map[string]*fakeDoc
	mu     sync.Mutex
	opened []*fakeDoc
	closed bool
}

func (o *fakeOpener) Open(path string) (docx.Document, error) {
	d, ok := o.docs[filepath.Base(path)]
	if !ok {
		return nil, errors.New("corrupt archive")
	}
	o.mu.Lock()
	o.opened = append(o.opened, d)
	o.mu.Unlock()
	return d, nil
}

func (o *fakeOpener) Close() error {
	o.closed = true
	return nil
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Maria   da Silva \r\a", "Maria da Silva"},
		{"Maria\nda\tSilva", "Maria da Silva"},
		{"\x0cJoão\x00", "João"},
		{"linha nova", "linha nova"},
		{"", ""},
		{"\r\a", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Clean(tt.in), "Clean(%q)", tt.in)
	}
}

func TestAgentName(t *testing.T) {
	assert.Equal(t, "Carlos Lima", AgentName("Comissão 10% Carlos Lima\r\a"))
	assert.Equal(t, "Carlos Lima", AgentName("Carlos Lima"))
	assert.Equal(t, "10% Ana", AgentName("5% 10% Ana"), "split on the first separator only")
	assert.Equal(t, "", AgentName("10% "))
}

func TestFindStatus(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"exact", "acordo", "ACORDO", true},
		{"case and accents ignored", "SENTENCA proferida", "SENTENÇA", true},
		{"accented input", "Sentença de mérito", "SENTENÇA", true},
		{"multi word term", "processo TRANSITADO EM JULGADO", "TRANSITADO EM JULGADO", true},
		{"priority over position", "arquivado após acordo", "ACORDO", true},
		{"improcedente is not procedente", "pedido improcedente", "IMPROCEDENTE", true},
		{"whole words only", "acordos e extintores", "", false},
		{"nothing", "sem informação", "", false},
		{"empty", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FindStatus(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract(t *testing.T) {
	doc := &fakeDoc{
		tables: []docx.Table{
			grid(2, 2, map[[2]int]string{{1, 1}: "ignored"}),
			grid(4, 14, map[[2]int]string{{4, 1}: " Maria\nda Silva\r\a"}),
			grid(8, 3, map[[2]int]string{{7, 1}: "Corretor 10% Carlos Lima"}),
			grid(4, 14, map[[2]int]string{{4, 1}: "Second Client"}),
		},
		decorative: []string{"Cabeçalho", "Homologado"},
		text:       "acordo",
	}

	rec := Extract(doc, "a.docx")
	assert.Equal(t, "a.docx", rec.File)
	assert.Equal(t, "Maria da Silva", types.Deref(rec.ClientName))
	assert.Equal(t, "Carlos Lima", types.Deref(rec.AgentName))
	assert.Equal(t, "HOMOLOGADO", types.Deref(rec.CaseStatus), "decorative text wins over full text")
}

func TestExtract_NoTablesYieldsNilFields(t *testing.T) {
	rec := Extract(&fakeDoc{}, "empty.docx")
	assert.Nil(t, rec.ClientName)
	assert.Nil(t, rec.AgentName)
	assert.Nil(t, rec.CaseStatus)
}

func TestExtract_EmptyCellSkipsToNextTable(t *testing.T) {
	doc := &fakeDoc{tables: []docx.Table{
		grid(4, 14, nil),
		grid(4, 14, map[[2]int]string{{4, 1}: "Pedro"}),
		grid(8, 3, map[[2]int]string{{7, 1}: "  "}),
	}}
	rec := Extract(doc, "x.docx")
	assert.Equal(t, "Pedro", types.Deref(rec.ClientName))
	assert.Nil(t, rec.AgentName)
}

func TestExtract_FullTextFallback(t *testing.T) {
	rec := Extract(&fakeDoc{decorative: []string{"logo"}, text: "valor total devido"}, "x.docx")
	assert.Equal(t, "VALOR TOTAL", types.Deref(rec.CaseStatus))
}

func TestExtractFile_ClosesSession(t *testing.T) {
	d := &fakeDoc{}
	o := &fakeOpener{docs: map[string]*fakeDoc{"a.docx": d}}

	_, err := ExtractFile(o, "/in/a.docx")
	require.NoError(t, err)
	assert.True(t, d.closed)

	rec, err := ExtractFile(o, "/in/missing.docx")
	assert.Error(t, err)
	assert.Equal(t, types.CaseRecord{File: "missing.docx"}, rec)
}

func TestExtractBatch_OrderAndPool(t *testing.T) {
	docs := map[string]*fakeDoc{}
	var paths []string
	for _, name := range []string{"a.docx", "b.docx", "c.docx", "d.docx", "e.docx"} {
		docs[name] = &fakeDoc{text: "acordo"}
		paths = append(paths, filepath.Join("/in", name))
	}
	paths = append(paths, "/in/broken.docx")

	var (
		created atomic.Int32
		mu      sync.Mutex
		openers []*fakeOpener
	)
	factory := func() docx.Opener {
		created.Add(1)
		o := &fakeOpener{docs: docs}
		mu.Lock()
		openers = append(openers, o)
		mu.Unlock()
		return o
	}

	results, err := NewExtractor(factory, 3, zap.NewNop()).ExtractBatch(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, 6)

	for i, r := range results {
		assert.Equal(t, filepath.Base(paths[i]), r.Record.File)
	}
	assert.Error(t, results[5].Err)
	assert.Nil(t, results[5].Record.ClientName)

	assert.Equal(t, int32(3), created.Load(), "one service per worker")
	for _, o := range openers {
		assert.True(t, o.closed, "every pooled service is closed")
	}
	for _, d := range docs {
		assert.True(t, d.closed)
	}
}

func TestExtractBatch_Empty(t *testing.T) {
	_, err := NewExtractor(func() docx.Opener { return &fakeOpener{} }, 1, nil).ExtractBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestRun_RealDocuments(t *testing.T) {
	dir := t.TempDir()
	docxtest.Write(t, dir, "a.docx", docxtest.Body(
		docxtest.Table(4, 14, map[string]string{"4,1": "Maria da Silva"}),
		docxtest.Table(8, 3, map[string]string{"7,1": "Comissão 10% Carlos Lima"}),
		docxtest.WordArt("Transitado em Julgado"),
	))
	docxtest.Write(t, dir, "b.docx", docxtest.Body(docxtest.Para("sem tabelas")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.docx"), []byte("not a zip"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "~$a.docx"), []byte("lock"), 0o644))

	paths, err := ListDocuments(dir)
	require.NoError(t, err)
	require.Len(t, paths, 3)

	var out bytes.Buffer
	ex := NewExtractor(func() docx.Opener { return docx.NewService() }, 2, zap.NewNop())
	results, summary, err := ex.Run(context.Background(), paths, &out)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Error(t, results[2].Err)
	records := Records(results)

	assert.Equal(t, BatchSummary{Extracted: 2, Failed: 1, WithStatus: 1}, summary)
	require.Len(t, records, 3)
	assert.Equal(t, "Maria da Silva", types.Deref(records[0].ClientName))
	assert.Equal(t, "Carlos Lima", types.Deref(records[0].AgentName))
	assert.Equal(t, "TRANSITADO EM JULGADO", types.Deref(records[0].CaseStatus))
	assert.Nil(t, records[1].ClientName)
	assert.Equal(t, "c.docx", records[2].File)

	assert.Contains(t, out.String(), "extracted: a.docx (client: Maria da Silva")
	assert.Contains(t, out.String(), "failed:    c.docx")
	assert.Contains(t, out.String(), "Batch summary: 2 extracted, 1 failed, status found in 1/3")
}

func TestListDocuments_Empty(t *testing.T) {
	_, err := ListDocuments(t.TempDir())
	assert.ErrorIs(t, err, ErrNoDocuments)
}
