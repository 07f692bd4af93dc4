// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package listing builds the commission-sheet and accounting-statement
// listings exported to spreadsheets.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pdiddy/casefile/internal/naming"
	"github.com/pdiddy/casefile/pkg/types"
)

const commissionPrefix = "Planilha Comissão"

// commissionRe matches "Planilha Comissão <name> (<status> <agent>).pdf".
// The status is the first word inside the parentheses.
var commissionRe = regexp.MustCompile(`(?i)^Planilha Comiss[ãa]o (.*?)\s*\((.*?)\s+(.*?)\)\.pdf$`)

// ParseCommission splits a commission-sheet filename into its parts. Names
// that do not follow the pattern keep the text after the prefix as the
// client name and leave status and agent empty.
func ParseCommission(filename string) types.CommissionEntry {
	base := filepath.Base(filename)
	e := types.CommissionEntry{File: base}

	if m := commissionRe.FindStringSubmatch(base); m != nil {
		e.Name = strings.TrimSpace(m[1])
		e.Status = strings.TrimSpace(m[2])
		e.Agent = strings.TrimSpace(m[3])
		return e
	}

	name := base
	if rest, ok := naming.HasFoldedPrefix(name, commissionPrefix); ok {
		name = rest
	}
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	e.Name = strings.TrimSpace(name)
	return e
}

// ListCommissions parses every file in dir whose name starts with
// "Planilha", in directory order.
func ListCommissions(dir string) ([]types.CommissionEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var out []types.CommissionEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := naming.HasFoldedPrefix(entry.Name(), "planilha"); !ok {
			continue
		}
		out = append(out, ParseCommission(entry.Name()))
	}
	return out, nil
}
