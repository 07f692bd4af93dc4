// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tmp := t.TempDir()
	tmpl := filepath.Join(tmp, "Planilha_Automatizada.xlsx")
	require.NoError(t, os.WriteFile(tmpl, []byte("template"), 0o644))
	root := filepath.Join(tmp, "Processos")

	// Cliente2 already holds an edited copy.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Cliente2"), 0o755))
	edited := filepath.Join(root, "Cliente2", "Planilha_Automatizada.xlsx")
	require.NoError(t, os.WriteFile(edited, []byte("edited"), 0o644))

	var out bytes.Buffer
	s, err := Run(context.Background(), Options{Root: root, Count: 3, Template: tmpl}, &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Created: 2, Copied: 2, Kept: 1}, s)

	for _, n := range []string{"Cliente1", "Cliente3"} {
		data, err := os.ReadFile(filepath.Join(root, n, "Planilha_Automatizada.xlsx"))
		require.NoError(t, err)
		assert.Equal(t, "template", string(data))
	}
	data, err := os.ReadFile(edited)
	require.NoError(t, err)
	assert.Equal(t, "edited", string(data), "existing files are never overwritten")
	assert.Contains(t, out.String(), "2 folders created")

	// A second run changes nothing.
	s, err = Run(context.Background(), Options{Root: root, Count: 3, Template: tmpl}, &out)
	require.NoError(t, err)
	assert.Equal(t, Summary{Kept: 3}, s)
}

func TestRun_FoldersOnly(t *testing.T) {
	root := t.TempDir()
	s, err := Run(context.Background(), Options{Root: root, Count: 2}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, 2, s.Created)
	assert.DirExists(t, filepath.Join(root, "Cliente1"))
	assert.DirExists(t, filepath.Join(root, "Cliente2"))
	assert.NoDirExists(t, filepath.Join(root, "Cliente3"))
}

func TestRun_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := Run(context.Background(), Options{Root: root, Count: 0}, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrInvalidCount)

	_, err = Run(context.Background(), Options{Root: root, Count: 1, Template: filepath.Join(root, "missing.xlsx")}, &bytes.Buffer{})
	assert.Error(t, err)
	assert.NoDirExists(t, filepath.Join(root, "Cliente1"), "nothing is created when the template is missing")
}
