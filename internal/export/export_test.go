// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/casefile/pkg/types"
)

func readSheet(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestWriteXLSX_CaseRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resumo_processos.xlsx")
	recs := []types.CaseRecord{
		{
			File:       "a.docx",
			ClientName: types.StringPtr("Maria da Silva"),
			AgentName:  types.StringPtr("Carlos Lima"),
			CaseStatus: types.StringPtr("ACORDO"),
		},
		{File: "b.docx"},
	}

	require.NoError(t, WriteXLSX(path, CaseRecordsSheet(recs)))

	rows := readSheet(t, path, "Processos")
	require.Len(t, rows, 3)
	assert.Equal(t, CaseRecordHeader, rows[0])
	assert.Equal(t, []string{"a.docx", "Maria da Silva", "Carlos Lima", "ACORDO"}, rows[1])
	assert.Equal(t, "b.docx", rows[2][0])
	for _, cell := range rows[2][1:] {
		assert.Empty(t, cell, "missing fields are empty cells")
	}

	_, err := os.Stat(filepath.Join(filepath.Dir(path), "temp_resumo_processos.xlsx"))
	assert.True(t, os.IsNotExist(err))
}

func TestWriteXLSX_Listings(t *testing.T) {
	dir := t.TempDir()

	cpath := filepath.Join(dir, "comissoes.xlsx")
	require.NoError(t, WriteXLSX(cpath, CommissionsSheet([]types.CommissionEntry{
		{File: "Planilha Comissão Ana (acordo Rui).pdf", Name: "Ana", Status: "acordo", Agent: "Rui"},
	})))
	rows := readSheet(t, cpath, "Planilhas")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"arquivo", "nome", "situacao", "corretor"}, rows[0])
	assert.Equal(t, "Rui", rows[1][3])

	spath := filepath.Join(dir, "prestacoes.xlsx")
	require.NoError(t, WriteXLSX(spath, StatementsSheet([]types.StatementEntry{
		{File: "p.pdf", ClientName: "Ana", CaseNumber: "123"},
	})))
	rows = readSheet(t, spath, "Prestações")
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Ana", "123", "p.pdf"}, rows[1])
}

func TestWriteXLSX_EmptyHeader(t *testing.T) {
	err := WriteXLSX(filepath.Join(t.TempDir(), "x.xlsx"), Sheet{})
	assert.ErrorIs(t, err, ErrEmptyHeader)
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"r.yaml", FormatYAML},
		{"r.YML", FormatYAML},
		{"r.json", FormatJSON},
		{"r.xlsx", FormatXLSX},
	}
	for _, tt := range tests {
		got, err := FormatOf(tt.path)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	_, err := FormatOf("r.csv")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestWriteData_YAMLKeepsNulls(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.yaml")
	recs := []types.CaseRecord{{File: "b.docx", ClientName: types.StringPtr("")}}
	require.NoError(t, WriteData(path, recs))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))
	require.Len(t, got, 1)
	assert.Equal(t, "", got[0]["client_name"], "empty string is kept distinct from missing")
	assert.Nil(t, got[0]["agent_name"])
	assert.Contains(t, got[0], "agent_name")
}

func TestWriteData_JSONAndErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.json")
	require.NoError(t, WriteData(path, []types.BlankPageReport{{File: "a.pdf", TotalPages: 2, BlankPages: []int{2}, ValidPages: 1}}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"blank_pages": [`)

	assert.ErrorIs(t, WriteData(filepath.Join(dir, "x.xlsx"), 1), ErrUnsupportedFormat)
	assert.ErrorIs(t, WriteData(filepath.Join(dir, "x.txt"), 1), ErrUnsupportedFormat)
}
