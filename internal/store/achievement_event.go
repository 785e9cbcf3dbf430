package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendAchievementEvent(ctx context.Context, data AchievementEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	ts := data.UnlockedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	query, args := builder.Insert(AchievementEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "achievement_id", "title", "rarity").
		Values(seqNum, ts.UTC(), data.SessionID, data.AchievementID, data.Title, data.Rarity).
		OnConflict(entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save achievement event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAchievementEvents(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error) {
	s := builder.Select("sequence", "timestamp", "session_id", "achievement_id", "title", "rarity").
		From(builder.Table(AchievementEventsTable.Name))
	query, args := applyQueryOpts(s, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query achievement events: %w", err)
	}
	defer rows.Close()

	var records []AchievementEventRecord
	for rows.Next() {
		var rec AchievementEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.UnlockedAt, &rec.SessionID, &rec.AchievementID, &rec.Title, &rec.Rarity); err != nil {
			return nil, fmt.Errorf("scan achievement event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query achievement events: %w", err)
	}
	return records, nil
}
