// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package naming derives client identities and source categories from the
// human-authored filenames of commission sheets, invoices, and accounting
// statements.
package naming

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/casefile/pkg/types"
)

// EstateSuffix is appended to the key of every estate client.
const EstateSuffix = " - Espólio"

// knownPrefixes are tested in order; the first match is stripped.
var knownPrefixes = []string{
	"Planilha Comissão ",
	"Prestação de Contas ",
	"NF ",
}

// documentExts are the extensions removed from a filename. A fixed list
// keeps names such as "Ana M. Costa" intact.
var documentExts = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
	".xlsx": true,
	".xls":  true,
	".odt":  true,
	".txt":  true,
}

var (
	parenRe      = regexp.MustCompile(`\s*\([^()]*\)`)
	openParenRe  = regexp.MustCompile(`\s*\([^()]*$`)
	estateRe     = regexp.MustCompile(`\bespolio(\s+de\b)?`)
	estateTailRe = regexp.MustCompile(`\s*-\s*espolio$`)
	titleCaser   = cases.Title(language.BrazilianPortuguese)
)

// Canonicalize turns a raw filename into the identity shared by every
// document of the same client. It never fails and is idempotent for names
// that do not themselves begin with a category prefix.
func Canonicalize(filename string) types.ClientIdentity {
	base := norm.NFC.String(filepath.Base(filename))
	name := stripExtensions(base)

	name = parenRe.ReplaceAllString(name, "")
	name = openParenRe.ReplaceAllString(name, "")

	for _, p := range knownPrefixes {
		if rest, ok := HasFoldedPrefix(name, p); ok {
			name = rest
			break
		}
	}

	name = norm.NFC.String(titleCaser.String(collapseSpaces(name)))

	name, estate := normalizeEstate(name)
	if name == "" {
		fallback := titleCaser.String(collapseSpaces(stripExtensions(base)))
		if fallback == "" {
			fallback = base
		}
		return types.ClientIdentity{Key: fallback}
	}
	if estate {
		name += EstateSuffix
	}
	return types.ClientIdentity{Key: name, Estate: estate}
}

// stripExtensions removes trailing document extensions, e.g. "a.pdf.pdf".
func stripExtensions(name string) string {
	for {
		ext := filepath.Ext(name)
		if ext == "" || !documentExts[strings.ToLower(ext)] {
			return name
		}
		name = strings.TrimSuffix(name, ext)
	}
}

// normalizeEstate removes a single "Espólio [de]" token (or an existing
// " - Espólio" suffix) and reports whether the client is an estate. The
// returned name carries no suffix.
func normalizeEstate(name string) (string, bool) {
	estate := false

	if loc := estateTailRe.FindStringIndex(Fold(name)); loc != nil {
		name = cutRunes(name, Fold(name), loc[0], loc[1])
		estate = true
	}

	if loc := estateRe.FindStringIndex(Fold(name)); loc != nil {
		name = cutRunes(name, Fold(name), loc[0], loc[1])
		estate = true
	}

	name = strings.TrimFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	return collapseSpaces(name), estate
}

// cutRunes removes the byte range [start, end) of folded from name. folded
// must be Fold(name); the rune-for-rune mapping makes the offsets portable.
func cutRunes(name, folded string, start, end int) string {
	rs := utf8.RuneCountInString(folded[:start])
	re := rs + utf8.RuneCountInString(folded[start:end])
	runes := []rune(name)
	return string(runes[:rs]) + " " + string(runes[re:])
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
