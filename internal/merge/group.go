// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge groups client documents by canonical identity, decides which
// clients have enough corroborating sources, and consolidates their PDFs into
// one file per client.
package merge

import (
	"sort"

	"github.com/pdiddy/casefile/internal/naming"
	"github.com/pdiddy/casefile/pkg/types"
)

// DefaultMinCategories is the number of distinct source categories a client
// needs before its documents are consolidated.
const DefaultMinCategories = 2

// Batch is the classified view of one run's input files.
type Batch struct {
	// Groups maps canonical keys to client groups.
	Groups map[string]*types.ClientGroup

	// Unclassified lists the paths whose prefix matched no category. They
	// take no part in grouping.
	Unclassified []string

	// Files is the number of classified files.
	Files int
}

// Collect classifies and canonicalizes every path. Paths are processed in
// the given order, which becomes the append order within each category.
func Collect(paths []string) Batch {
	b := Batch{Groups: make(map[string]*types.ClientGroup)}
	for _, p := range paths {
		f, id := naming.Describe(p)
		if !f.Category.Valid() {
			b.Unclassified = append(b.Unclassified, p)
			continue
		}
		g, ok := b.Groups[id.Key]
		if !ok {
			g = types.NewClientGroup(id)
			b.Groups[id.Key] = g
		}
		g.Add(f)
		b.Files++
	}
	return b
}

// Eligible returns, sorted by key, the identities backed by at least min
// distinct categories. min <= 0 selects DefaultMinCategories.
func (b Batch) Eligible(min int) []types.ClientIdentity {
	if min <= 0 {
		min = DefaultMinCategories
	}
	var out []types.ClientIdentity
	for _, g := range b.Groups {
		if len(g.Categories()) >= min {
			out = append(out, g.Identity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Clients returns every grouped identity sorted by key.
func (b Batch) Clients() []types.ClientIdentity {
	out := make([]types.ClientIdentity, 0, len(b.Groups))
	for _, g := range b.Groups {
		out = append(out, g.Identity)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
