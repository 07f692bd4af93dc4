// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/pdiddy/casefile/internal/export"
)

// writeOutput saves a listing to path. Spreadsheets get sheet; YAML and
// JSON files get the structured value v.
func writeOutput(path string, sheet export.Sheet, v any) error {
	format, err := export.FormatOf(path)
	if err != nil {
		return err
	}
	if format == export.FormatXLSX {
		err = export.WriteXLSX(path, sheet)
	} else {
		err = export.WriteData(path, v)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Wrote %d row(s) to %s\n", len(sheet.Rows), path)
	return nil
}
