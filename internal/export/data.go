// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/casefile/internal/fsutil"
)

// ErrUnsupportedFormat is returned for an output extension with no writer.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Format is a data file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// FormatOf infers the format from the extension of path.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%s: %w", filepath.Base(path), ErrUnsupportedFormat)
}

// Encode writes v to w as YAML or JSON.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return fmt.Errorf("%s: %w", format, ErrUnsupportedFormat)
}

// WriteData encodes v into path, choosing YAML or JSON by extension.
func WriteData(path string, v any) error {
	format, err := FormatOf(path)
	if err != nil {
		return err
	}
	if format == FormatXLSX {
		return fmt.Errorf("%s: %w for structured data", filepath.Base(path), ErrUnsupportedFormat)
	}

	return fsutil.ReplaceVia(path, func(tmp string) error {
		f, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
		}
		if err := Encode(f, format, v); err != nil {
			f.Close()
			return fmt.Errorf("encoding %s: %w", filepath.Base(path), err)
		}
		return f.Close()
	})
}
