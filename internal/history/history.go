// Package history records per-run totals in a local SQLite database so reports
// can show trends and deltas against the previous run.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dkoosis/sift/pkg/aggregate"
	"github.com/dkoosis/sift/pkg/diag"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at TEXT NOT NULL,
	label TEXT NOT NULL DEFAULT '',
	sources INTEGER NOT NULL,
	total INTEGER NOT NULL,
	errors INTEGER NOT NULL,
	warnings INTEGER NOT NULL,
	infos INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS run_categories (
	run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	category TEXT NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY (run_id, category)
);

CREATE INDEX IF NOT EXISTS idx_runs_recorded_at ON runs(recorded_at);
`

// Store is an open history database.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one recorded analyze run.
type Run struct {
	ID         int64
	RecordedAt time.Time
	Label      string
	Sources    int
	Total      int
	Errors     int
	Warnings   int
	Infos      int
	Categories map[diag.Category]int
}

// FromReport summarizes r as a Run recorded at the given time.
func FromReport(r *aggregate.Report, at time.Time, label string) Run {
	cats := make(map[diag.Category]int)
	for c, n := range r.TotalsByCategory {
		if n > 0 {
			cats[c] = n
		}
	}
	return Run{
		RecordedAt: at.UTC(),
		Label:      label,
		Sources:    len(r.FilesAnalyzed),
		Total:      r.TotalRecords,
		Errors:     r.Errors(),
		Warnings:   r.WarningCount(),
		Infos:      r.Infos(),
		Categories: cats,
	}
}

// DefaultPath is the history database under the user's config directory.
func DefaultPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	return filepath.Join(configDir, "sift", "history.db"), nil
}

// Open creates or opens the database at path, creating parent directories.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database %s: %w", path, err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Record appends run and returns its id.
func (s *Store) Record(ctx context.Context, run Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (recorded_at, label, sources, total, errors, warnings, infos)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RecordedAt.UTC().Format(time.RFC3339Nano),
		run.Label, run.Sources, run.Total, run.Errors, run.Warnings, run.Infos,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for c, n := range run.Categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_categories (run_id, category, count) VALUES (?, ?, ?)`,
			id, string(c), n,
		); err != nil {
			return 0, fmt.Errorf("insert category %s: %w", c, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

// Latest returns the most recent run, or nil when none is recorded.
func (s *Store) Latest(ctx context.Context) (*Run, error) {
	runs, err := s.Recent(ctx, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Recent returns up to n of the latest runs, oldest first. n <= 0 returns all.
func (s *Store) Recent(ctx context.Context, n int) ([]Run, error) {
	limit := n
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, recorded_at, label, sources, total, errors, warnings, infos
		FROM runs
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r  Run
			at string
		)
		if err := rows.Scan(&r.ID, &at, &r.Label, &r.Sources, &r.Total, &r.Errors, &r.Warnings, &r.Infos); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.RecordedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("run %d timestamp: %w", r.ID, err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	for i := range runs {
		cats, err := s.categories(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Categories = cats
	}

	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

func (s *Store) categories(ctx context.Context, runID int64) (map[diag.Category]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, count FROM run_categories WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	cats := make(map[diag.Category]int)
	for rows.Next() {
		var (
			c string
			n int
		)
		if err := rows.Scan(&c, &n); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats[diag.Category(c)] = n
	}
	return cats, rows.Err()
}
