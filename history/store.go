package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound is returned by Get when no run has the requested id.
var ErrNotFound = errors.New("history: run not found")

// Result is the timing summary for one top_k value.
type Result struct {
	TopK     int
	Average  time.Duration
	Min      time.Duration
	Max      time.Duration
	Returned int
}

// Run is a stored benchmark run.
type Run struct {
	ID              int64
	StartedAt       time.Time
	Elapsed         time.Duration
	CorpusSize      int
	Dimension       int
	Repeats         int
	MaxResults      int
	Seed            int64
	Kernel          string
	CacheMagnitudes bool
	Results         []Result
}

// Store is a SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// New creates a Store and ensures its schema exists.
func New(ctx context.Context, db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("history: db is nil")
	}
	if err := EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save inserts run and its results in one transaction and returns the new
// run id.
func (s *Store) Save(ctx context.Context, run *Run) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `INSERT INTO `+RunTable+`(started_at, elapsed_ns, corpus_size, dimension, repeats, max_results, seed, kernel, cached_mags)
VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UnixNano(), int64(run.Elapsed), run.CorpusSize, run.Dimension,
		run.Repeats, run.MaxResults, run.Seed, run.Kernel, run.CacheMagnitudes)
	if err != nil {
		return 0, fmt.Errorf("history: insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO `+ResultTable+`(run_id, top_k, average_ns, min_ns, max_ns, returned) VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()
	for _, r := range run.Results {
		if _, err := stmt.ExecContext(ctx, id, r.TopK, int64(r.Average), int64(r.Min), int64(r.Max), r.Returned); err != nil {
			return 0, fmt.Errorf("history: insert result top_k=%d: %w", r.TopK, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	run.ID = id
	return id, nil
}

const selectRun = `SELECT id, started_at, elapsed_ns, corpus_size, dimension, repeats, max_results, seed, kernel, cached_mags FROM ` + RunTable

// Get loads a single run with its results.
func (s *Store) Get(ctx context.Context, id int64) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRun+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err := s.loadResults(ctx, runs[0]); err != nil {
		return nil, err
	}
	return runs[0], nil
}

// Recent returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Run, error) {
	q := selectRun + ` ORDER BY started_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.QueryContext(ctx, q+` LIMIT ?`, limit)
	} else {
		rows, err = s.db.QueryContext(ctx, q)
	}
	if err != nil {
		return nil, err
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	for _, run := range runs {
		if err := s.loadResults(ctx, run); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func scanRuns(rows *sql.Rows) ([]*Run, error) {
	defer rows.Close()
	var out []*Run
	for rows.Next() {
		var (
			run       Run
			startedAt int64
			elapsed   int64
		)
		if err := rows.Scan(&run.ID, &startedAt, &elapsed, &run.CorpusSize, &run.Dimension,
			&run.Repeats, &run.MaxResults, &run.Seed, &run.Kernel, &run.CacheMagnitudes); err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(0, startedAt)
		run.Elapsed = time.Duration(elapsed)
		out = append(out, &run)
	}
	return out, rows.Err()
}

func (s *Store) loadResults(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx, `SELECT top_k, average_ns, min_ns, max_ns, returned FROM `+ResultTable+` WHERE run_id = ? ORDER BY top_k`, run.ID)
	if err != nil {
		return err
	}
	defer rows.Close()
	run.Results = nil
	for rows.Next() {
		var r Result
		var avg, lo, hi int64
		if err := rows.Scan(&r.TopK, &avg, &lo, &hi, &r.Returned); err != nil {
			return err
		}
		r.Average, r.Min, r.Max = time.Duration(avg), time.Duration(lo), time.Duration(hi)
		run.Results = append(run.Results, r)
	}
	return rows.Err()
}
