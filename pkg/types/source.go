// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "sort"

// SourceCategory identifies the origin class of a client document, inferred
// from the first two characters of its filename.
type SourceCategory string

const (
	// CategoryStatement is an accounting statement ("Prestação de Contas").
	CategoryStatement SourceCategory = "PR"
	// CategoryCommission is a commission sheet ("Planilha Comissão").
	CategoryCommission SourceCategory = "PL"
	// CategoryInvoice is an invoice ("NF", nota fiscal).
	CategoryInvoice SourceCategory = "NF"
	// CategoryUnclassified marks a file whose prefix matched no category.
	CategoryUnclassified SourceCategory = ""
)

// MergeOrder is the fixed order in which categories are concatenated into a
// consolidated client file.
var MergeOrder = []SourceCategory{CategoryStatement, CategoryCommission, CategoryInvoice}

// Valid reports whether c is one of the three known categories.
func (c SourceCategory) Valid() bool {
	switch c {
	case CategoryStatement, CategoryCommission, CategoryInvoice:
		return true
	}
	return false
}

// String returns a human-readable label.
func (c SourceCategory) String() string {
	switch c {
	case CategoryStatement:
		return "prestacao-contas"
	case CategoryCommission:
		return "planilha"
	case CategoryInvoice:
		return "nota-fiscal"
	}
	return "unclassified"
}

// ClientIdentity is the canonical key shared by every document of one client.
type ClientIdentity struct {
	// Key is the normalized client name, e.g. "João Silva - Espólio".
	Key string `json:"key" yaml:"key"`

	// Estate is true when the record pertains to a deceased client's estate.
	Estate bool `json:"estate" yaml:"estate"`
}

// SourceFile is one input document discovered by directory listing.
type SourceFile struct {
	Path     string         `json:"path" yaml:"path"`
	Category SourceCategory `json:"category" yaml:"category"`
	RawName  string         `json:"raw_name" yaml:"raw_name"`
}

// ClientGroup collects the source files of a single client, bucketed by
// category. Files within a bucket keep their enumeration order.
type ClientGroup struct {
	Identity ClientIdentity
	Files    map[SourceCategory][]SourceFile
}

// NewClientGroup returns an empty group for id.
func NewClientGroup(id ClientIdentity) *ClientGroup {
	return &ClientGroup{
		Identity: id,
		Files:    make(map[SourceCategory][]SourceFile),
	}
}

// Add appends f to the bucket for its category.
func (g *ClientGroup) Add(f SourceFile) {
	g.Files[f.Category] = append(g.Files[f.Category], f)
}

// Categories returns the distinct categories present, sorted.
func (g *ClientGroup) Categories() []SourceCategory {
	cats := make([]SourceCategory, 0, len(g.Files))
	for c, files := range g.Files {
		if len(files) > 0 {
			cats = append(cats, c)
		}
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })
	return cats
}

// Ordered returns every file in merge order: statements, commission sheets,
// then invoices.
func (g *ClientGroup) Ordered() []SourceFile {
	var out []SourceFile
	for _, c := range MergeOrder {
		out = append(out, g.Files[c]...)
	}
	return out
}
