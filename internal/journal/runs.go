package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/cleanfilenames/internal/models"
)

// ErrRunNotFound is returned when no run matches an ID or ID prefix
var ErrRunNotFound = errors.New("run not found")

// Entry is one candidate as it stood when the run finished
type Entry struct {
	Seq     int
	Type    models.ItemType
	OldPath string
	NewPath string
	Status  models.Status
	Message string
}

// Run is one recorded batch
type Run struct {
	ID         string
	Root       string
	Mode       string
	Pattern    string
	StartedAt  time.Time
	FinishedAt time.Time
	Total      int
	Done       int
	Errors     int
	Pending    int

	// Entries is filled by GetRun only
	Entries []Entry
}

// NewRun builds a Run from a finished batch. The ID is assigned here.
func NewRun(root, mode, pattern string, cands []*models.Candidate, sum models.Summary, started time.Time) *Run {
	run := &Run{
		ID:         uuid.NewString(),
		Root:       root,
		Mode:       mode,
		Pattern:    pattern,
		StartedAt:  started.UTC(),
		FinishedAt: time.Now().UTC(),
		Total:      sum.Total,
		Done:       sum.Done,
		Errors:     sum.Errors,
		Pending:    sum.Pending,
		Entries:    make([]Entry, 0, len(cands)),
	}
	for i, c := range cands {
		run.Entries = append(run.Entries, Entry{
			Seq:     i,
			Type:    c.Type,
			OldPath: c.OldPath,
			NewPath: c.NewPath,
			Status:  c.Status,
			Message: c.Message,
		})
	}
	return run
}

// RecordRun stores run and its entries atomically. A run without an ID is
// given one.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO runs (id, root, mode, pattern, started_at, finished_at, total, done, errors, pending)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Mode, run.Pattern, run.StartedAt, run.FinishedAt,
		run.Total, run.Done, run.Errors, run.Pending)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO entries (run_id, seq, item_type, old_path, new_path, status, message)
VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare entry insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range run.Entries {
		if _, err := stmt.ExecContext(ctx, run.ID, e.Seq, e.Type.String(), e.OldPath, e.NewPath, e.Status.String(), e.Message); err != nil {
			return fmt.Errorf("insert entry %d: %w", e.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, root, mode, COALESCE(pattern, ''), started_at, finished_at, total, done, errors, pending`

func scanRun(row interface{ Scan(...any) error }) (*Run, error) {
	r := &Run{}
	err := row.Scan(&r.ID, &r.Root, &r.Mode, &r.Pattern, &r.StartedAt, &r.FinishedAt,
		&r.Total, &r.Done, &r.Errors, &r.Pending)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// ListRuns returns the most recent runs first, without entries. A limit of
// zero or less returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun loads one run with its entries. id may be a unique prefix of the
// full run ID.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	if id == "" {
		return nil, ErrRunNotFound
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id LIKE ? || '%' LIMIT 2`, id)
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	var matches []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch {
	case len(matches) == 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case len(matches) > 1:
		return nil, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
	run := matches[0]

	entries, err := s.entries(ctx, run.ID)
	if err != nil {
		return nil, err
	}
	run.Entries = entries
	return run, nil
}

func (s *Store) entries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT seq, item_type, old_path, new_path, status, COALESCE(message, '')
FROM entries WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		var typ, status string
		if err := rows.Scan(&e.Seq, &typ, &e.OldPath, &e.NewPath, &status, &e.Message); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.Type, err = models.ParseItemType(typ); err != nil {
			return nil, err
		}
		if e.Status, err = models.ParseStatus(status); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// DeleteRun removes a run and its entries
func (s *Store) DeleteRun(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}
