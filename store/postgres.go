// Package store implements an optional, out-of-core result sink backed
// by Postgres (jackc/pgx/v5's pgxpool), grounded on
// leanlp-BTC-coinjoin's internal/db.PostgresStore: same pool-connect-
// ping-on-startup shape, same single-statement INSERT ... ON CONFLICT
// DO UPDATE upsert for each write. Nothing in the core FD/MFD packages
// imports this package; only httpapi uses it, to persist the JSON/bool a
// Primitive's Execute produced under the caller-supplied run ID.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultSink persists profiling run outcomes keyed by RunID.
type ResultSink struct {
	pool *pgxpool.Pool
}

// Connect opens a pool against connStr and verifies it with a ping.
func Connect(ctx context.Context, connStr string) (*ResultSink, error) {
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	return &ResultSink{pool: pool}, nil
}

// Close releases the pool.
func (s *ResultSink) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// InitSchema creates the result tables if they do not already exist.
func (s *ResultSink) InitSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS fd_runs (
	run_id      UUID PRIMARY KEY,
	tag         TEXT NOT NULL,
	fd_json     TEXT NOT NULL,
	fletcher16  INTEGER NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS mfd_runs (
	run_id       UUID PRIMARY KEY,
	holds        BOOLEAN NOT NULL,
	highlight_count INTEGER NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);
`
	_, err := s.pool.Exec(ctx, ddl)
	if err != nil {
		return fmt.Errorf("store: init schema: %w", err)
	}
	return nil
}

// SaveFDResult records one FD discovery run's canonical JSON and checksum.
func (s *ResultSink) SaveFDResult(ctx context.Context, runID, tag, fdJSON string, fletcher16 uint16, finishedAt time.Time) error {
	const q = `
INSERT INTO fd_runs (run_id, tag, fd_json, fletcher16, finished_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (run_id) DO UPDATE
SET fd_json = EXCLUDED.fd_json, fletcher16 = EXCLUDED.fletcher16, finished_at = EXCLUDED.finished_at;
`
	_, err := s.pool.Exec(ctx, q, runID, tag, fdJSON, int32(fletcher16), finishedAt)
	if err != nil {
		return fmt.Errorf("store: save fd result: %w", err)
	}
	return nil
}

// SaveMFDResult records one Cluster Verifier run's verdict.
func (s *ResultSink) SaveMFDResult(ctx context.Context, runID string, holds bool, highlightCount int, finishedAt time.Time) error {
	const q = `
INSERT INTO mfd_runs (run_id, holds, highlight_count, finished_at)
VALUES ($1, $2, $3, $4)
ON CONFLICT (run_id) DO UPDATE
SET holds = EXCLUDED.holds, highlight_count = EXCLUDED.highlight_count, finished_at = EXCLUDED.finished_at;
`
	_, err := s.pool.Exec(ctx, q, runID, holds, highlightCount, finishedAt)
	if err != nil {
		return fmt.Errorf("store: save mfd result: %w", err)
	}
	return nil
}

// FDResult is one row read back from fd_runs.
type FDResult struct {
	RunID      string
	Tag        string
	FDJson     string
	Fletcher16 uint16
	FinishedAt time.Time
}

// GetFDResult reads back a previously saved FD run by RunID.
func (s *ResultSink) GetFDResult(ctx context.Context, runID string) (*FDResult, error) {
	const q = `SELECT run_id, tag, fd_json, fletcher16, finished_at FROM fd_runs WHERE run_id = $1`
	row := s.pool.QueryRow(ctx, q, runID)
	var out FDResult
	var checksum int32
	if err := row.Scan(&out.RunID, &out.Tag, &out.FDJson, &checksum, &out.FinishedAt); err != nil {
		return nil, fmt.Errorf("store: get fd result: %w", err)
	}
	out.Fletcher16 = uint16(checksum)
	return &out, nil
}
