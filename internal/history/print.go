// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// PrintRuns writes runs as a fixed-width table.
func PrintRuns(w io.Writer, runs []Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return
	}

	fmt.Fprintf(w, "%-8s  %-16s  %-19s  %-8s  %-6s  %s\n",
		"Run", "Command", "Started", "Duration", "Failed", "Dir")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range runs {
		dur := r.Finished.Sub(r.Started).Round(time.Millisecond)
		if r.Finished.IsZero() {
			dur = 0
		}
		fmt.Fprintf(w, "%-8s  %-16s  %-19s  %-8s  %-6d  %s\n",
			shortID(r.ID), r.Command, r.Started.Local().Format("2006-01-02 15:04:05"),
			dur, r.Failed, r.Dir)
	}
	fmt.Fprintf(w, "\n%d runs\n", len(runs))
}

// PrintRun writes one run with its items.
func PrintRun(w io.Writer, r Run) {
	fmt.Fprintf(w, "Run %s (%s)\n", r.ID, r.Command)
	fmt.Fprintf(w, "Dir: %s\n", r.Dir)
	fmt.Fprintf(w, "Started: %s\n", r.Started.Local().Format(time.RFC3339))
	fmt.Fprintf(w, "Succeeded: %d, failed: %d\n\n", r.Succeeded, r.Failed)
	for _, it := range r.Items {
		if it.Detail != "" {
			fmt.Fprintf(w, "%-8s %s (%s)\n", it.Outcome+":", it.Name, it.Detail)
			continue
		}
		fmt.Fprintf(w, "%-8s %s\n", it.Outcome+":", it.Name)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
