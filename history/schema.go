package history

import (
	"context"
	"database/sql"
)

const (
	// RunTable holds one row per benchmark run.
	RunTable = "bench_run"
	// ResultTable holds one row per (run, top_k).
	ResultTable = "bench_result"
)

// RunTableDDL returns the DDL for bench_run.
func RunTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS ` + RunTable + ` (
    id           INTEGER PRIMARY KEY AUTOINCREMENT,
    started_at   INTEGER NOT NULL,
    elapsed_ns   INTEGER NOT NULL,
    corpus_size  INTEGER NOT NULL,
    dimension    INTEGER NOT NULL,
    repeats      INTEGER NOT NULL,
    max_results  INTEGER NOT NULL,
    seed         INTEGER NOT NULL,
    kernel       TEXT NOT NULL,
    cached_mags  INTEGER NOT NULL DEFAULT 0
);`
}

// ResultTableDDL returns the DDL for bench_result.
func ResultTableDDL() string {
	return `CREATE TABLE IF NOT EXISTS ` + ResultTable + ` (
    run_id      INTEGER NOT NULL REFERENCES ` + RunTable + `(id) ON DELETE CASCADE,
    top_k       INTEGER NOT NULL,
    average_ns  INTEGER NOT NULL,
    min_ns      INTEGER NOT NULL,
    max_ns      INTEGER NOT NULL,
    returned    INTEGER NOT NULL,
    PRIMARY KEY(run_id, top_k)
);`
}

// EnsureSchema creates the history tables if they do not already exist.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, ddl := range []string{RunTableDDL(), ResultTableDDL()} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return err
		}
	}
	return nil
}
