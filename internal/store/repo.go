package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// SnapshotData captures the learner state that is not derivable from the
// event log.
type SnapshotData struct {
	Version        int    `json:"version"`
	CatalogVersion string `json:"catalog_version,omitempty"`
	Focus          string `json:"focus,omitempty"`
}

// Snapshot represents a point-in-time capture of learner state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages learner state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// CompletionEventData captures a milestone completion.
type CompletionEventData struct {
	SessionID      string
	MilestoneID    string
	CatalogVersion string
	CompletedAt    time.Time
}

// CompletionEventRecord is a stored completion with its position in the log.
type CompletionEventRecord struct {
	Sequence       int64
	SessionID      string
	MilestoneID    string
	CatalogVersion string
	CompletedAt    time.Time
}

// AchievementEventData captures an achievement unlock.
type AchievementEventData struct {
	SessionID     string
	AchievementID string
	Title         string
	Rarity        string
	UnlockedAt    time.Time
}

// AchievementEventRecord is a stored achievement unlock.
type AchievementEventRecord struct {
	Sequence      int64
	SessionID     string
	AchievementID string
	Title         string
	Rarity        string
	UnlockedAt    time.Time
}

// EventRepo provides append and query access to domain events.
// Events are never updated or reordered.
type EventRepo interface {
	// AppendCompletionEvent records a completion. It reports false, without
	// error, when the milestone was already recorded.
	AppendCompletionEvent(ctx context.Context, data CompletionEventData) (bool, error)

	// QueryCompletionEvents returns completions in log order.
	QueryCompletionEvents(ctx context.Context, opts QueryOpts) ([]CompletionEventRecord, error)

	// AppendAchievementEvent records an unlock. Repeated unlocks of the same
	// achievement are ignored.
	AppendAchievementEvent(ctx context.Context, data AchievementEventData) error

	// QueryAchievementEvents returns unlocks in log order.
	QueryAchievementEvents(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error)
}
