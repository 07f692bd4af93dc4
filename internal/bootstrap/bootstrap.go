// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bootstrap lays out numbered client folders seeded from a template
// file.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// FolderPrefix names each client folder, followed by its 1-based number.
const FolderPrefix = "Cliente"

// ErrInvalidCount is returned for a non-positive folder count.
var ErrInvalidCount = errors.New("folder count must be positive")

// Summary holds counts from a bootstrap run.
type Summary struct {
	Created int
	Copied  int
	Kept    int
}

// Options configures Run.
type Options struct {
	Root     string
	Count    int
	Template string
}

// Run creates Root/Cliente1..ClienteN and copies Template into each folder
// that does not already hold a file of that name. Existing folders and
// files are left untouched. An empty Template only creates folders.
func Run(ctx context.Context, opts Options, w io.Writer) (Summary, error) {
	var s Summary
	if opts.Count <= 0 {
		return s, ErrInvalidCount
	}
	if opts.Template != "" {
		info, err := os.Stat(opts.Template)
		if err != nil {
			return s, fmt.Errorf("reading template: %w", err)
		}
		if info.IsDir() {
			return s, fmt.Errorf("template %s is a directory", opts.Template)
		}
	}
	if err := os.MkdirAll(opts.Root, 0o755); err != nil {
		return s, fmt.Errorf("creating root directory: %w", err)
	}

	for i := 1; i <= opts.Count; i++ {
		if err := ctx.Err(); err != nil {
			return s, err
		}

		dir := filepath.Join(opts.Root, fmt.Sprintf("%s%d", FolderPrefix, i))
		if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
			s.Created++
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return s, fmt.Errorf("creating %s: %w", dir, err)
		}

		if opts.Template == "" {
			continue
		}
		dst := filepath.Join(dir, filepath.Base(opts.Template))
		copied, err := copyIfAbsent(opts.Template, dst)
		if err != nil {
			return s, err
		}
		if copied {
			s.Copied++
		} else {
			s.Kept++
		}
	}

	fmt.Fprintf(w, "Bootstrap summary: %d folders created, %d templates copied, %d existing kept (root: %s)\n",
		s.Created, s.Copied, s.Kept, opts.Root)
	return s, nil
}

// copyIfAbsent copies src to dst unless dst exists. The O_EXCL open makes
// the existence check and the creation a single step.
func copyIfAbsent(src, dst string) (bool, error) {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, os.ErrExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("creating %s: %w", dst, err)
	}

	in, err := os.Open(src)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return false, fmt.Errorf("opening template: %w", err)
	}
	defer in.Close()

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return false, fmt.Errorf("copying template to %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return false, fmt.Errorf("closing %s: %w", dst, err)
	}
	return true, nil
}
