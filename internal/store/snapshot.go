package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo on top of the SQL builder. A zero
// Sequence on Save is filled with the current global sequence.
type snapshotRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}

	seqNum := snap.Sequence
	if seqNum == 0 && r.seq != nil {
		if seqNum, err = r.seq.Current(ctx); err != nil {
			return err
		}
	}

	ts := snap.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder.Insert(SnapshotsTable.Name).
		Columns("sequence", "timestamp", "data").
		Values(seqNum, ts.UTC(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder.Select("id", "sequence", "timestamp", "data").
		From(builder.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		raw  []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	newest := builder.Select("id").
		From(builder.Table(SnapshotsTable.Name)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(max(keep, 0))

	query, args := builder.Delete(SnapshotsTable.Name).
		Where(entsql.NotIn("id", newest)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
