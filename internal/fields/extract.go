// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fields

import (
	"fmt"
	"path/filepath"

	"github.com/pdiddy/casefile/internal/docx"
	"github.com/pdiddy/casefile/pkg/types"
)

// Fixed table shapes and cell positions.
const (
	clientTableRows, clientTableCols = 4, 14
	clientRow, clientCol             = 4, 1

	agentTableRows, agentTableCols = 8, 3
	agentRow, agentCol             = 7, 1
)

// Extract reads the three case fields from doc. Fields that cannot be found
// are nil. Extract never fails.
func Extract(doc docx.Document, file string) types.CaseRecord {
	rec := types.CaseRecord{File: file}

	for _, tbl := range doc.Tables() {
		if rec.ClientName == nil && tbl.Is(clientTableRows, clientTableCols) {
			if raw, ok := tbl.Cell(clientRow, clientCol); ok {
				if name := Clean(raw); name != "" {
					rec.ClientName = types.StringPtr(name)
				}
			}
		}
		if rec.AgentName == nil && tbl.Is(agentTableRows, agentTableCols) {
			if raw, ok := tbl.Cell(agentRow, agentCol); ok {
				if name := AgentName(raw); name != "" {
					rec.AgentName = types.StringPtr(name)
				}
			}
		}
	}

	rec.CaseStatus = findCaseStatus(doc)
	return rec
}

// findCaseStatus scans decorative texts one at a time, then the full text.
func findCaseStatus(doc docx.Document) *string {
	for _, t := range doc.DecorativeTexts() {
		if s, ok := FindStatus(t); ok {
			return types.StringPtr(s)
		}
	}
	if s, ok := FindStatus(doc.FullText()); ok {
		return types.StringPtr(s)
	}
	return nil
}

// ExtractFile opens path through o and extracts its fields. The session is
// closed on every path.
func ExtractFile(o docx.Opener, path string) (types.CaseRecord, error) {
	doc, err := o.Open(path)
	if err != nil {
		return types.CaseRecord{File: filepath.Base(path)}, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	defer doc.Close()
	return Extract(doc, filepath.Base(path)), nil
}
