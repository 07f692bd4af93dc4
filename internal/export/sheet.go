// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes records to spreadsheets and data files.
package export

import (
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/casefile/internal/fsutil"
	"github.com/pdiddy/casefile/pkg/types"
)

// ErrEmptyHeader is returned for a sheet without columns.
var ErrEmptyHeader = errors.New("sheet has no columns")

// Sheet is one worksheet of string cells.
type Sheet struct {
	Name   string
	Header []string
	Rows   [][]string
}

// Column headers of the exported sheets.
var (
	CaseRecordHeader = []string{"Arquivo", "Nome do Cliente", "Nome do Corretor", "Situação do Processo"}
	CommissionHeader = []string{"arquivo", "nome", "situacao", "corretor"}
	StatementHeader  = []string{"Nome do Cliente", "Número do Processo", "Arquivo"}
)

// CaseRecordsSheet lays out extraction records. Missing fields become empty
// cells.
func CaseRecordsSheet(recs []types.CaseRecord) Sheet {
	s := Sheet{Name: "Processos", Header: CaseRecordHeader}
	for _, r := range recs {
		s.Rows = append(s.Rows, []string{
			r.File,
			types.Deref(r.ClientName),
			types.Deref(r.AgentName),
			types.Deref(r.CaseStatus),
		})
	}
	return s
}

// CommissionsSheet lays out the commission listing.
func CommissionsSheet(entries []types.CommissionEntry) Sheet {
	s := Sheet{Name: "Planilhas", Header: CommissionHeader}
	for _, e := range entries {
		s.Rows = append(s.Rows, []string{e.File, e.Name, e.Status, e.Agent})
	}
	return s
}

// StatementsSheet lays out the statement listing.
func StatementsSheet(entries []types.StatementEntry) Sheet {
	s := Sheet{Name: "Prestações", Header: StatementHeader}
	for _, e := range entries {
		s.Rows = append(s.Rows, []string{e.ClientName, e.CaseNumber, e.File})
	}
	return s
}

// WriteXLSX saves s as a single-sheet workbook at path, replacing any
// existing file only once the workbook is complete.
func WriteXLSX(path string, s Sheet) error {
	if len(s.Header) == 0 {
		return ErrEmptyHeader
	}

	f := excelize.NewFile()
	defer f.Close()

	name := s.Name
	if name == "" {
		name = "Sheet1"
	}
	if err := f.SetSheetName("Sheet1", name); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	if err := setRow(f, name, 1, s.Header); err != nil {
		return err
	}
	for i, row := range s.Rows {
		if err := setRow(f, name, i+2, row); err != nil {
			return err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}
	if err := f.SetRowStyle(name, 1, 1, bold); err != nil {
		return fmt.Errorf("styling header: %w", err)
	}
	last, err := excelize.ColumnNumberToName(len(s.Header))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(name, "A", last, 30); err != nil {
		return fmt.Errorf("sizing columns: %w", err)
	}

	return fsutil.ReplaceVia(path, func(tmp string) error {
		if err := f.SaveAs(tmp); err != nil {
			return fmt.Errorf("saving workbook: %w", err)
		}
		return nil
	})
}

func setRow(f *excelize.File, sheet string, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return fmt.Errorf("writing row %d: %w", row, err)
	}
	return nil
}
