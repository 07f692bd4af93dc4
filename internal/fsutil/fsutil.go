// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fsutil provides filesystem helpers shared across stages.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
)

// TempPrefix marks in-progress artifacts written next to their destination.
const TempPrefix = "temp_"

// ListByExt returns the regular files in dir whose extension matches one of
// exts (case-insensitive), in directory order. Leftover temp_ artifacts are
// skipped.
func ListByExt(dir string, exts ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), TempPrefix) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		for _, want := range exts {
			if ext == strings.ToLower(want) {
				paths = append(paths, filepath.Join(dir, entry.Name()))
				break
			}
		}
	}
	return paths, nil
}

// Rename retry policy. Viewers and sync clients on shared office drives hold
// files open briefly, which makes a single rename attempt fail.
var (
	renameAttempts uint = 3
	renameDelay         = 200 * time.Millisecond
)

// TempPath returns the temp_ sibling of path.
func TempPath(path string) string {
	return filepath.Join(filepath.Dir(path), TempPrefix+filepath.Base(path))
}

// ReplaceVia produces dst by calling write with a temporary path in the same
// directory and renaming the result over dst. os.Rename replaces an existing
// file in one step, so dst is always either the old or the new content. A
// failed rename is retried a few times. On any failure the temporary file is
// removed and dst is left untouched.
func ReplaceVia(dst string, write func(tmp string) error) error {
	tmp := TempPath(dst)
	if err := write(tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	err := retry.Do(
		func() error { return os.Rename(tmp, dst) },
		retry.Attempts(renameAttempts),
		retry.Delay(renameDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", filepath.Base(dst), err)
	}
	return nil
}
