// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package watch re-runs a batch when files in its input directories change.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/fsutil"
)

// DefaultQuiet is how long the directories must stay unchanged before a
// batch runs.
const DefaultQuiet = 2 * time.Second

// Options configures Run.
type Options struct {
	// Dirs are watched non-recursively.
	Dirs []string

	// Exts limits the files whose changes count, e.g. ".pdf". Empty means
	// every file.
	Exts []string

	// Quiet is the settle time after the last change. Zero selects
	// DefaultQuiet.
	Quiet time.Duration
}

// Run watches opts.Dirs until ctx is done and calls batch once the
// directories have been quiet for opts.Quiet after a relevant change. A
// failing batch is logged and watching continues. Run returns nil when ctx
// is cancelled.
func Run(ctx context.Context, opts Options, log *zap.Logger, batch func(context.Context) error) error {
	if log == nil {
		log = zap.NewNop()
	}
	quiet := opts.Quiet
	if quiet <= 0 {
		quiet = DefaultQuiet
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	for _, d := range opts.Dirs {
		if err := w.Add(d); err != nil {
			return fmt.Errorf("watching %s: %w", d, err)
		}
	}

	timer := time.NewTimer(quiet)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev, opts.Exts) {
				continue
			}
			log.Debug("change detected", zap.String("file", ev.Name), zap.String("op", ev.Op.String()))
			timer.Reset(quiet)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watcher error", zap.Error(err))

		case <-timer.C:
			if err := batch(ctx); err != nil {
				log.Error("batch failed", zap.Error(err))
			}
		}
	}
}

// relevant reports whether ev touches a matching, non-temporary file.
func relevant(ev fsnotify.Event, exts []string) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return false
	}
	name := filepath.Base(ev.Name)
	if strings.HasPrefix(name, fsutil.TempPrefix) {
		return false
	}
	if len(exts) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, want := range exts {
		if ext == strings.ToLower(want) {
			return true
		}
	}
	return false
}
