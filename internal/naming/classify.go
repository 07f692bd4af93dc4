// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package naming

import (
	"path/filepath"
	"strings"

	"github.com/pdiddy/casefile/pkg/types"
)

// Classify tags a filename with its source category from the first two
// characters, case-insensitively. Any other prefix yields
// types.CategoryUnclassified.
func Classify(filename string) types.SourceCategory {
	runes := []rune(filepath.Base(filename))
	if len(runes) < 2 {
		return types.CategoryUnclassified
	}
	switch strings.ToUpper(string(runes[:2])) {
	case "PR":
		return types.CategoryStatement
	case "PL":
		return types.CategoryCommission
	case "NF":
		return types.CategoryInvoice
	}
	return types.CategoryUnclassified
}

// Describe classifies and canonicalizes path in one step.
func Describe(path string) (types.SourceFile, types.ClientIdentity) {
	name := filepath.Base(path)
	f := types.SourceFile{
		Path:     path,
		Category: Classify(name),
		RawName:  name,
	}
	return f, Canonicalize(name)
}
