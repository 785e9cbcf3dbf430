package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendCompletionEvent(ctx context.Context, data CompletionEventData) (bool, error) {
	exists, err := r.completionExists(ctx, data.MilestoneID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return false, fmt.Errorf("next sequence: %w", err)
	}

	ts := data.CompletedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder.Insert(CompletionEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "milestone_id", "catalog_version").
		Values(seqNum, ts.UTC(), data.SessionID, data.MilestoneID, data.CatalogVersion).
		OnConflict(entsql.DoNothing()).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("save completion event: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save completion event: %w", err)
	}
	return n == 1, nil
}

func (r *eventRepo) completionExists(ctx context.Context, milestoneID string) (bool, error) {
	query, args := builder.Select("id").
		From(builder.Table(CompletionEventsTable.Name)).
		Where(entsql.EQ("milestone_id", milestoneID)).
		Limit(1).
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("query completion: %w", err)
	}
	defer rows.Close()
	return rows.Next(), rows.Err()
}

func (r *eventRepo) QueryCompletionEvents(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error) {
	s := builder.Select("sequence", "timestamp", "session_id", "milestone_id", "catalog_version").
		From(builder.Table(CompletionEventsTable.Name))
	query, args := applyQueryOpts(s, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	defer rows.Close()

	var records []CompletionEventRecord
	for rows.Next() {
		var rec CompletionEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.CompletedAt, &rec.SessionID, &rec.MilestoneID, &rec.CatalogVersion); err != nil {
			return nil, fmt.Errorf("scan completion event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query completion events: %w", err)
	}
	return records, nil
}
