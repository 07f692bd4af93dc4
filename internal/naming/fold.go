// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package naming

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// foldRune maps r to its lower-case base letter with diacritics removed.
// The mapping is strictly one rune to one rune so offsets computed on a
// folded string can be applied to the NFC original.
func foldRune(r rune) rune {
	if r < utf8.RuneSelf {
		return unicode.ToLower(r)
	}
	d := norm.NFD.String(string(r))
	base, _ := utf8.DecodeRuneInString(d)
	return unicode.ToLower(base)
}

// Fold returns s in NFC with every rune lower-cased and stripped of accents.
// "Prestação" and "PRESTACAO" both fold to "prestacao".
func Fold(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		b.WriteRune(foldRune(r))
	}
	return b.String()
}

// StripAccents removes diacritics but preserves case.
func StripAccents(s string) string {
	s = norm.NFC.String(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < utf8.RuneSelf {
			b.WriteRune(r)
			continue
		}
		base, _ := utf8.DecodeRuneInString(norm.NFD.String(string(r)))
		b.WriteRune(base)
	}
	return b.String()
}

// HasFoldedPrefix reports whether s starts with prefix, ignoring case and
// accents. On a match it returns s with the prefix removed.
func HasFoldedPrefix(s, prefix string) (string, bool) {
	s = norm.NFC.String(s)
	fs, fp := Fold(s), Fold(prefix)
	if !strings.HasPrefix(fs, fp) {
		return s, false
	}
	n := utf8.RuneCountInString(fp)
	runes := []rune(s)
	return string(runes[n:]), true
}

// ContainsFolded reports whether s contains sub, ignoring case and accents.
func ContainsFolded(s, sub string) bool {
	return strings.Contains(Fold(s), Fold(sub))
}
