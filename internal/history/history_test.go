// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRunAdd(t *testing.T) {
	r := NewRun("merge", "/in")
	assert.Len(t, r.ID, 36)
	assert.False(t, r.Started.IsZero())

	r.Add("Ana Reis", OutcomeOK, "")
	r.Add("Bruno Lima", OutcomeFailed, "corrupt input")
	r.Add("c.pdf", OutcomeWarning, "single page")
	r.Add("d.pdf", OutcomeSkipped, "")

	assert.Equal(t, 1, r.Succeeded)
	assert.Equal(t, 1, r.Failed)
	assert.Len(t, r.Items, 4)
}

func TestRecordAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	r := NewRun("extract", "/docs")
	r.Add("a.docx", OutcomeOK, "")
	r.Add("b.docx", OutcomeFailed, "not a docx document")
	require.NoError(t, s.Record(ctx, r))
	assert.False(t, r.Finished.IsZero())

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "extract", got.Command)
	assert.Equal(t, "/docs", got.Dir)
	assert.Equal(t, 1, got.Succeeded)
	assert.Equal(t, 1, got.Failed)
	assert.WithinDuration(t, r.Started, got.Started, time.Millisecond)
	assert.Equal(t, r.Items, got.Items)
}

func TestGet_NotFound(t *testing.T) {
	s := openStore(t)
	_, err := s.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestGet_ByPrefix(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	a := NewRun("merge", "/in")
	a.ID = "aaaa1111-0000-0000-0000-000000000000"
	b := NewRun("merge", "/in")
	b.ID = "aaaa2222-0000-0000-0000-000000000000"
	require.NoError(t, s.Record(ctx, a))
	require.NoError(t, s.Record(ctx, b))

	got, err := s.Get(ctx, "aaaa1111")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = s.Get(ctx, "aaaa")
	assert.ErrorIs(t, err, ErrAmbiguousRun)

	_, err = s.Get(ctx, "aaaa%")
	assert.ErrorIs(t, err, ErrRunNotFound, "wildcards are matched literally")
}

func TestRecent(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for i, cmd := range []string{"merge", "blank clean", "extract"} {
		r := NewRun(cmd, "/in")
		r.Started = base.Add(time.Duration(i) * time.Hour)
		r.Finished = r.Started.Add(time.Second)
		require.NoError(t, s.Record(ctx, r))
	}

	runs, err := s.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "extract", runs[0].Command)
	assert.Equal(t, "blank clean", runs[1].Command)
	assert.Empty(t, runs[0].Items)

	all, err := s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	var out bytes.Buffer
	PrintRuns(&out, all)
	assert.Contains(t, out.String(), "blank clean")
	assert.Contains(t, out.String(), "3 runs")
}

func TestReopenKeepsRuns(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s, err := Open(dir)
	require.NoError(t, err)
	r := NewRun("bootstrap", "/root")
	require.NoError(t, s.Record(ctx, r))
	require.NoError(t, s.Close())

	s, err = Open(dir)
	require.NoError(t, err)
	defer s.Close()
	runs, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, r.ID, runs[0].ID)
}

func TestPrintRun(t *testing.T) {
	r := Run{ID: "abc", Command: "merge", Dir: "/in", Succeeded: 1, Failed: 1, Items: []Item{
		{Name: "Ana", Outcome: OutcomeOK},
		{Name: "Bia", Outcome: OutcomeFailed, Detail: "boom"},
	}}
	var out bytes.Buffer
	PrintRun(&out, r)
	assert.Contains(t, out.String(), "ok:      Ana")
	assert.Contains(t, out.String(), "failed:  Bia (boom)")

	out.Reset()
	PrintRuns(&out, nil)
	assert.Equal(t, "No runs recorded.\n", out.String())
}
