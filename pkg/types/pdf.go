// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PageContent summarizes what a single PDF page carries.
type PageContent struct {
	// HasText is true when the page yields non-whitespace text.
	HasText bool

	// HasImage is true when the page resources reference an image or form
	// XObject.
	HasImage bool
}

// Blank reports whether the page has neither text nor images.
func (p PageContent) Blank() bool {
	return !p.HasText && !p.HasImage
}

// BlankPageReport describes the blank pages found in one PDF.
type BlankPageReport struct {
	// File is the base name of the analyzed PDF.
	File string `json:"file" yaml:"file"`

	// TotalPages is the page count of the document.
	TotalPages int `json:"total_pages" yaml:"total_pages"`

	// BlankPages lists the 1-based indices of blank pages in ascending order.
	BlankPages []int `json:"blank_pages" yaml:"blank_pages"`

	// ValidPages is TotalPages minus the number of blank pages.
	ValidPages int `json:"valid_pages" yaml:"valid_pages"`
}

// HasBlankPages reports whether any blank page was found.
func (r BlankPageReport) HasBlankPages() bool {
	return len(r.BlankPages) > 0
}

// MultiPage reports whether the document has more than one page.
func (r BlankPageReport) MultiPage() bool {
	return r.TotalPages > 1
}
