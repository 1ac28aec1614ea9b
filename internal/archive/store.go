// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive keeps extracted plans in a SQLite database so they can
// be listed and re-emitted without the source spreadsheets.
package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/curriplan/internal/convert"
	"github.com/pdiddy/curriplan/internal/plan"
	"github.com/pdiddy/curriplan/pkg/types"
)

const dbFile = "plans.db"

// ErrPlanNotFound is returned by Load for an unknown plan ID.
var ErrPlanNotFound = errors.New("plan not found")

// PlanRecord describes one stored plan.
type PlanRecord struct {
	ID         string    `json:"id" yaml:"id"`
	Source     string    `json:"source" yaml:"source"`
	Specialty  string    `json:"specialtyName" yaml:"specialtyName"`
	ImportedAt time.Time `json:"importedAt" yaml:"importedAt"`
	EntryCount int       `json:"entryCount" yaml:"entryCount"`
}

// Store manages the plan archive database.
type Store struct {
	db *sql.DB
}

// NewStore opens or creates the archive at cfg.Dir/plans.db and creates
// the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	dir := cfg.Dir
	if dir == "" {
		dir = types.DefaultConfig().Archive.Dir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	db, err := sql.Open("sqlite3", filepath.Join(dir, dbFile)+"?_journal_mode=WAL&_foreign_keys=on")
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
		`CREATE TABLE IF NOT EXISTS plans (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL UNIQUE,
			specialty TEXT NOT NULL,
			imported_at TEXT NOT NULL,
			entry_count INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS entries (
			plan_id TEXT NOT NULL REFERENCES plans(id) ON DELETE CASCADE,
			position INTEGER NOT NULL,
			subject TEXT NOT NULL,
			semester INTEGER NOT NULL,
			lecture_hours INTEGER NOT NULL,
			practice_hours INTEGER NOT NULL,
			lab_hours INTEGER NOT NULL,
			attestation TEXT NOT NULL,
			split_for_subgroups INTEGER NOT NULL,
			PRIMARY KEY (plan_id, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_entries_semester ON entries(semester)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Save stores r under source, replacing any plan previously saved from the
// same source.
func (s *Store) Save(ctx context.Context, source string, r types.PlanResult) (PlanRecord, error) {
	rec := PlanRecord{
		ID:         uuid.NewString(),
		Source:     source,
		Specialty:  r.SpecialtyName,
		ImportedAt: time.Now().UTC(),
		EntryCount: len(r.Entries),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM plans WHERE source = ?`, source); err != nil {
		return PlanRecord{}, fmt.Errorf("deleting previous plan: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO plans (id, source, specialty, imported_at, entry_count) VALUES (?, ?, ?, ?, ?)`,
		rec.ID, rec.Source, rec.Specialty, rec.ImportedAt.Format(time.RFC3339Nano), rec.EntryCount,
	)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("inserting plan: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO entries (plan_id, position, subject, semester, lecture_hours, practice_hours, lab_hours, attestation, split_for_subgroups)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return PlanRecord{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for i, e := range r.Entries {
		_, err := stmt.ExecContext(ctx,
			rec.ID, i, e.SubjectName, e.Semester,
			e.LectureHours, e.PracticeHours, e.LabHours,
			string(e.Attestation), e.SplitForSubgroups,
		)
		if err != nil {
			return PlanRecord{}, fmt.Errorf("inserting entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return PlanRecord{}, fmt.Errorf("committing plan: %w", err)
	}
	return rec, nil
}

// List returns every stored plan ordered by source.
func (s *Store) List(ctx context.Context) ([]PlanRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, specialty, imported_at, entry_count FROM plans ORDER BY source`)
	if err != nil {
		return nil, fmt.Errorf("querying plans: %w", err)
	}
	defer rows.Close()

	records := []PlanRecord{}
	for rows.Next() {
		var rec PlanRecord
		var importedAt string
		if err := rows.Scan(&rec.ID, &rec.Source, &rec.Specialty, &importedAt, &rec.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning plan: %w", err)
		}
		at, err := time.Parse(time.RFC3339Nano, importedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing import time of plan %s: %w", rec.ID, err)
		}
		rec.ImportedAt = at
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Load returns the stored plan with the given ID.
func (s *Store) Load(ctx context.Context, id string) (*types.PlanResult, error) {
	r := &types.PlanResult{Entries: []types.PlanEntry{}}
	err := s.db.QueryRowContext(ctx, `SELECT specialty FROM plans WHERE id = ?`, id).Scan(&r.SpecialtyName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrPlanNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying plan %s: %w", id, err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT subject, semester, lecture_hours, practice_hours, lab_hours, attestation, split_for_subgroups
		 FROM entries WHERE plan_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("querying entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e types.PlanEntry
		var attestation string
		if err := rows.Scan(&e.SubjectName, &e.Semester, &e.LectureHours, &e.PracticeHours,
			&e.LabHours, &attestation, &e.SplitForSubgroups); err != nil {
			return nil, fmt.Errorf("scanning entry: %w", err)
		}
		e.Attestation = types.Attestation(attestation)
		r.Entries = append(r.Entries, e)
	}
	return r, rows.Err()
}

// IngestSummary holds counts from an archive import run.
type IngestSummary struct {
	Stored int
	Failed int
}

// Total returns the number of files processed.
func (s IngestSummary) Total() int {
	return s.Stored + s.Failed
}

// Ingest extracts each spreadsheet in paths and saves it, keyed by its
// absolute path. A file that fails extraction is reported on w and
// counted; only cancellation or a database failure aborts the run.
func (s *Store) Ingest(ctx context.Context, x *plan.Extractor, paths []string, opts convert.Options, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	for _, p := range paths {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		source, err := filepath.Abs(p)
		if err != nil {
			source = p
		}

		ex, err := convert.Extract(x, p, opts)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", p, err)
			summary.Failed++
			continue
		}

		rec, err := s.Save(ctx, source, ex.Result)
		if err != nil {
			return summary, fmt.Errorf("storing %s: %w", p, err)
		}
		fmt.Fprintf(w, "stored  %s as %s (%d entries)\n", p, rec.ID, rec.EntryCount)
		summary.Stored++
	}

	fmt.Fprintf(w, "\nstored: %d, failed: %d\n", summary.Stored, summary.Failed)
	return summary, nil
}
