package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// builder renders SQLite statements for every repository.
var builder = entsql.Dialect(dialect.SQLite)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables. Per-table auto-increment ids can't order a completion
// against an achievement unlock; the shared counter can, and a snapshot can
// record the sequence it was taken at.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// Current returns the last sequence number handed out, or 0.
func (sc *sequenceCounter) Current(ctx context.Context) (int64, error) {
	var next int64
	if err := sc.db.QueryRowContext(ctx, `SELECT next_val FROM global_sequence WHERE id = 1`).Scan(&next); err != nil {
		return 0, fmt.Errorf("current sequence: %w", err)
	}
	return next - 1, nil
}

// eventRepo implements EventRepo on top of the SQL builder.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// applyQueryOpts narrows an event selector by sequence, time and limit.
func applyQueryOpts(s *entsql.Selector, opts QueryOpts) *entsql.Selector {
	if opts.After > 0 {
		s = s.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		s = s.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		s = s.Where(entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		s = s.Where(entsql.LTE("timestamp", opts.To))
	}
	s = s.OrderBy(entsql.Asc("sequence"))
	if opts.Limit > 0 {
		s = s.Limit(opts.Limit)
	}
	return s
}
