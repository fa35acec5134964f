// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a SQLite history of completed conversion batches.
package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultLimit is the number of entries Recent returns when limit <= 0.
const DefaultLimit = 20

// Entry is one completed batch.
type Entry struct {
	BatchID       string         `json:"batch_id" yaml:"batch_id"`
	CreatedAt     time.Time      `json:"created_at" yaml:"created_at"`
	Output        string         `json:"output" yaml:"output"`
	Presentations []Presentation `json:"presentations" yaml:"presentations"`
}

// Lines returns the number of lines across all presentations.
func (e Entry) Lines() int {
	n := 0
	for _, p := range e.Presentations {
		n += p.Lines
	}
	return n
}

// Presentation records one source of a batch.
type Presentation struct {
	Name       string `json:"name" yaml:"name"`
	Path       string `json:"path" yaml:"path"`
	Lines      int    `json:"lines" yaml:"lines"`
	Titles     int    `json:"titles" yaml:"titles"`
	Sections   int    `json:"sections" yaml:"sections"`
	Paragraphs int    `json:"paragraphs" yaml:"paragraphs"`
}

// Journal manages the history database.
type Journal struct {
	db *sql.DB
}

// Open opens or creates the journal database at path, creating its parent
// directory and schema when missing.
func Open(path string) (*Journal, error) {
	if path == "" {
		return nil, errors.New("journal path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS batches (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			output TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS presentations (
			batch_id TEXT NOT NULL REFERENCES batches(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			path TEXT NOT NULL,
			lines INTEGER NOT NULL,
			titles INTEGER NOT NULL,
			sections INTEGER NOT NULL,
			paragraphs INTEGER NOT NULL,
			PRIMARY KEY (batch_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_batches_created_at ON batches(created_at)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores e and its presentations in a single transaction.
func (j *Journal) Record(ctx context.Context, e Entry) error {
	if e.BatchID == "" {
		return errors.New("entry has no batch id")
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO batches (id, created_at, output) VALUES (?, ?, ?)`,
		e.BatchID, e.CreatedAt.UTC().Format(time.RFC3339Nano), e.Output,
	); err != nil {
		return fmt.Errorf("inserting batch %s: %w", e.BatchID, err)
	}

	for i, p := range e.Presentations {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO presentations (batch_id, position, name, path, lines, titles, sections, paragraphs)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			e.BatchID, i, p.Name, p.Path, p.Lines, p.Titles, p.Sections, p.Paragraphs,
		); err != nil {
			return fmt.Errorf("inserting presentation %s: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing batch %s: %w", e.BatchID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := j.db.QueryContext(ctx,
		`SELECT id, created_at, output FROM batches
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying batches: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e       Entry
			created string
		)
		if err := rows.Scan(&e.BatchID, &created, &e.Output); err != nil {
			return nil, fmt.Errorf("scanning batch: %w", err)
		}
		if e.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, fmt.Errorf("parsing created_at of %s: %w", e.BatchID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating batches: %w", err)
	}
	rows.Close()

	for i := range entries {
		ps, err := j.presentations(ctx, entries[i].BatchID)
		if err != nil {
			return nil, err
		}
		entries[i].Presentations = ps
	}
	return entries, nil
}

func (j *Journal) presentations(ctx context.Context, batchID string) ([]Presentation, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT name, path, lines, titles, sections, paragraphs FROM presentations
		 WHERE batch_id = ? ORDER BY position`, batchID)
	if err != nil {
		return nil, fmt.Errorf("querying presentations of %s: %w", batchID, err)
	}
	defer rows.Close()

	var out []Presentation
	for rows.Next() {
		var p Presentation
		if err := rows.Scan(&p.Name, &p.Path, &p.Lines, &p.Titles, &p.Sections, &p.Paragraphs); err != nil {
			return nil, fmt.Errorf("scanning presentation: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
