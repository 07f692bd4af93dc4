// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/pdftest"
	"github.com/pdiddy/casefile/pkg/types"
)

// fakeMerger records its calls and writes the joined input names to out.
type fakeMerger struct {
	calls   [][]string
	failFor string
}

func (f *fakeMerger) Merge(inputs []string, out string) error {
	f.calls = append(f.calls, inputs)
	for _, in := range inputs {
		if f.failFor != "" && strings.Contains(in, f.failFor) {
			return errors.New("corrupt input")
		}
	}
	var names []string
	for _, in := range inputs {
		names = append(names, filepath.Base(in))
	}
	return os.WriteFile(out, []byte(strings.Join(names, "\n")), 0o644)
}

func TestCollect(t *testing.T) {
	b := Collect([]string{
		"/in/NF João Silva.pdf",
		"/in/Planilha Comissão João Silva (acordo Marcos).pdf",
		"/in/Prestação de Contas Maria Souza.pdf",
		"/in/Relatorio.pdf",
		"/in/NF João Silva (2).pdf",
	})

	assert.Equal(t, 4, b.Files)
	assert.Equal(t, []string{"/in/Relatorio.pdf"}, b.Unclassified)
	require.Len(t, b.Groups, 2)

	g := b.Groups["João Silva"]
	require.NotNil(t, g)
	assert.Equal(t, []types.SourceCategory{types.CategoryInvoice, types.CategoryCommission}, g.Categories())
	require.Len(t, g.Files[types.CategoryInvoice], 2)
	assert.Equal(t, "NF João Silva.pdf", g.Files[types.CategoryInvoice][0].RawName)
	assert.Equal(t, "NF João Silva (2).pdf", g.Files[types.CategoryInvoice][1].RawName)
}

func TestEligible(t *testing.T) {
	b := Collect([]string{
		"NF Zeca Alves.pdf",
		"Prestação de Contas Zeca Alves.pdf",
		"NF Ana Reis.pdf",
		"NF Ana Reis (copia).pdf",
		"Planilha Comissão Bruno Lima.pdf",
		"Prestação de Contas Bruno Lima.pdf",
		"NF Bruno Lima.pdf",
	})

	got := b.Eligible(2)
	require.Len(t, got, 2)
	assert.Equal(t, "Bruno Lima", got[0].Key)
	assert.Equal(t, "Zeca Alves", got[1].Key)

	assert.Equal(t, got, b.Eligible(0), "non-positive minimum uses the default")
	assert.Len(t, b.Eligible(3), 1)
	assert.Len(t, b.Eligible(1), 3)
}

func TestEligible_SingleCategoryNeverQualifies(t *testing.T) {
	b := Collect([]string{
		"NF Ana Reis.pdf",
		"NF Ana Reis (1).pdf",
		"NF Ana Reis (2).pdf",
	})
	assert.Empty(t, b.Eligible(2))
	assert.Equal(t, []types.ClientIdentity{{Key: "Ana Reis"}}, b.Clients())
}

func TestConsolidate_MergeOrder(t *testing.T) {
	out := t.TempDir()
	b := Collect([]string{
		"/in/NF Ana Reis.pdf",
		"/in/Planilha Comissão Ana Reis.pdf",
		"/in/Prestação de Contas Ana Reis.pdf",
		"/in/NF Ana Reis (2).pdf",
	})

	m := &fakeMerger{}
	c := NewConsolidator(m, out, zap.NewNop())
	path, err := c.Consolidate(b.Groups["Ana Reis"])
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "Ana Reis.pdf"), path)

	require.Len(t, m.calls, 1)
	assert.Equal(t, []string{
		"/in/Prestação de Contas Ana Reis.pdf",
		"/in/Planilha Comissão Ana Reis.pdf",
		"/in/NF Ana Reis.pdf",
		"/in/NF Ana Reis (2).pdf",
	}, m.calls[0])

	_, err = os.Stat(filepath.Join(out, "temp_Ana Reis.pdf"))
	assert.True(t, os.IsNotExist(err), "temporary file must not remain")
}

func TestConsolidate_NoSourceFiles(t *testing.T) {
	c := NewConsolidator(&fakeMerger{}, t.TempDir(), nil)
	_, err := c.Consolidate(types.NewClientGroup(types.ClientIdentity{Key: "Ninguém"}))
	assert.ErrorIs(t, err, ErrNoSourceFiles)
}

func TestRun(t *testing.T) {
	out := filepath.Join(t.TempDir(), "mesclados")
	b := Collect([]string{
		"/in/NF Ana Reis.pdf",
		"/in/Prestação de Contas Ana Reis.pdf",
		"/in/NF Bruno Lima.pdf",
		"/in/Planilha Comissão Bruno Lima.pdf",
		"/in/NF Carla Dias.pdf",
		"/in/Contrato.pdf",
	})

	m := &fakeMerger{failFor: "Bruno"}
	var log bytes.Buffer
	c := NewConsolidator(m, out, zap.NewNop())
	results, summary, err := c.Run(context.Background(), b, b.Eligible(2), &log)
	require.NoError(t, err)

	assert.Equal(t, Summary{Merged: 1, Failed: 1, Ineligible: 1, Unclassified: 1}, summary)
	assert.True(t, summary.HasFailures())
	assert.Equal(t, 2, summary.Total())

	require.Len(t, results, 2)
	assert.Equal(t, "Ana Reis", results[0].Client.Key)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, "Bruno Lima", results[1].Client.Key)
	assert.Error(t, results[1].Err)

	data, err := os.ReadFile(filepath.Join(out, "Ana Reis.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "Prestação de Contas Ana Reis.pdf\nNF Ana Reis.pdf", string(data))

	_, err = os.Stat(filepath.Join(out, "Bruno Lima.pdf"))
	assert.True(t, os.IsNotExist(err))

	assert.Contains(t, log.String(), "merged:  Ana Reis")
	assert.Contains(t, log.String(), "failed:  Bruno Lima")
	assert.Contains(t, log.String(), "Batch summary: 1 merged, 1 failed")
}

func TestRun_Cancelled(t *testing.T) {
	b := Collect([]string{"NF Ana.pdf", "Prestação de Contas Ana.pdf"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	c := NewConsolidator(&fakeMerger{}, t.TempDir(), nil)
	_, _, err := c.Run(ctx, b, b.Eligible(2), &log)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPDFMerger_RealPDF(t *testing.T) {
	in := t.TempDir()
	out := filepath.Join(t.TempDir(), "merged")
	pdftest.Write(t, in, "NF Ana Reis.pdf", pdftest.Page{Text: "invoice"})
	pdftest.Write(t, in, "Prestação de Contas Ana Reis.pdf", pdftest.Text("statement one", "statement two")...)

	b := Collect([]string{
		filepath.Join(in, "NF Ana Reis.pdf"),
		filepath.Join(in, "Prestação de Contas Ana Reis.pdf"),
	})
	c := NewConsolidator(NewPDFMerger(), out, zap.NewNop())
	path, err := c.Consolidate(b.Groups["Ana Reis"])
	require.NoError(t, err)

	n, err := api.PageCountFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}
