// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history records batch runs and their per-file outcomes in a local
// SQLite database.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// DBFile is the database file name inside the history directory.
const DBFile = "casefile.db"

// timeLayout is fixed-width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Sentinel errors for run lookup.
var (
	ErrRunNotFound  = errors.New("run not found")
	ErrAmbiguousRun = errors.New("run ID prefix matches more than one run")
)

// Outcome classifies the result of processing one item.
type Outcome string

const (
	OutcomeOK      Outcome = "ok"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// Item is the outcome of one file or client within a run.
type Item struct {
	Name    string  `json:"name" yaml:"name"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	Detail  string  `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Run is one invocation of a batch command.
type Run struct {
	ID        string    `json:"id" yaml:"id"`
	Command   string    `json:"command" yaml:"command"`
	Dir       string    `json:"dir" yaml:"dir"`
	Started   time.Time `json:"started" yaml:"started"`
	Finished  time.Time `json:"finished" yaml:"finished"`
	Succeeded int       `json:"succeeded" yaml:"succeeded"`
	Failed    int       `json:"failed" yaml:"failed"`
	Items     []Item    `json:"items,omitempty" yaml:"items,omitempty"`
}

// NewRun starts a run record for command over dir.
func NewRun(command, dir string) *Run {
	return &Run{
		ID:      uuid.NewString(),
		Command: command,
		Dir:     dir,
		Started: time.Now().UTC(),
	}
}

// Add appends an item and updates the success and failure tallies.
func (r *Run) Add(name string, outcome Outcome, detail string) {
	r.Items = append(r.Items, Item{Name: name, Outcome: outcome, Detail: detail})
	switch outcome {
	case OutcomeOK:
		r.Succeeded++
	case OutcomeFailed:
		r.Failed++
	}
}

// Store manages the history database.
type Store struct {
	db *sql.DB
}

// Open opens or creates dir/casefile.db and its schema.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	dbPath := filepath.Join(dir, DBFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			command TEXT NOT NULL,
			dir TEXT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			succeeded INTEGER NOT NULL DEFAULT 0,
			failed INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			outcome TEXT NOT NULL,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_items_run_id ON items(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores run and its items in one transaction. A zero Finished time
// is set to now.
func (s *Store) Record(ctx context.Context, run *Run) error {
	if run.Finished.IsZero() {
		run.Finished = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, command, dir, started_at, finished_at, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Command, run.Dir,
		run.Started.UTC().Format(timeLayout), run.Finished.UTC().Format(timeLayout),
		run.Succeeded, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO items (run_id, name, outcome, detail) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, it := range run.Items {
		if _, err := stmt.ExecContext(ctx, run.ID, it.Name, string(it.Outcome), it.Detail); err != nil {
			return fmt.Errorf("inserting item %s: %w", it.Name, err)
		}
	}

	return tx.Commit()
}

// Recent returns up to limit runs, newest first, without their items.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, command, dir, started_at, finished_at, succeeded, failed
		 FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Get returns the run with id and its items. id may be a unique prefix of
// a run ID, such as the short form printed by PrintRuns.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	full, err := s.resolveID(ctx, id)
	if err != nil {
		return Run{}, err
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, command, dir, started_at, finished_at, succeeded, failed
		 FROM runs WHERE id = ?`, full)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%s: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, outcome, detail FROM items WHERE run_id = ? ORDER BY id`, r.ID)
	if err != nil {
		return Run{}, fmt.Errorf("querying items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it      Item
			outcome string
			detail  sql.NullString
		)
		if err := rows.Scan(&it.Name, &outcome, &detail); err != nil {
			return Run{}, fmt.Errorf("scanning item: %w", err)
		}
		it.Outcome = Outcome(outcome)
		it.Detail = detail.String
		r.Items = append(r.Items, it)
	}
	return r, rows.Err()
}

// resolveID expands prefix to the full ID of the single run it matches. An
// exact match always wins.
func (s *Store) resolveID(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", ErrRunNotFound
	}
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM runs WHERE id = ? OR id LIKE ? ESCAPE '\' LIMIT 3`, prefix, escaped+"%")
	if err != nil {
		return "", fmt.Errorf("resolving run ID: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scanning run ID: %w", err)
		}
		if id == prefix {
			return id, nil
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%s: %w", prefix, ErrRunNotFound)
	case 1:
		return ids[0], nil
	}
	return "", fmt.Errorf("%s: %w", prefix, ErrAmbiguousRun)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var (
		r             Run
		dir, finished sql.NullString
		started       string
	)
	if err := sc.Scan(&r.ID, &r.Command, &dir, &started, &finished, &r.Succeeded, &r.Failed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("scanning run: %w", err)
	}
	r.Dir = dir.String
	r.Started, _ = time.Parse(timeLayout, started)
	if finished.Valid {
		r.Finished, _ = time.Parse(timeLayout, finished.String)
	}
	return r, nil
}
