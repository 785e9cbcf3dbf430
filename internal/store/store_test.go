package store

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestOpen_FileDatabaseUsesWAL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "careerpath.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is covered by the file-based test.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestCompletionEvents_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "4"} {
		inserted, err := repo.AppendCompletionEvent(ctx, CompletionEventData{
			SessionID:      "sess-1",
			MilestoneID:    id,
			CatalogVersion: "v1.0.0",
			CompletedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		require.NoError(t, err)
		assert.True(t, inserted)
	}

	records, err := repo.QueryCompletionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "1", records[0].MilestoneID)
	assert.Equal(t, "4", records[2].MilestoneID)
	assert.Equal(t, "v1.0.0", records[0].CatalogVersion)
	assert.True(t, records[1].CompletedAt.Equal(base.Add(time.Hour)), "got %v", records[1].CompletedAt)
	assert.Less(t, records[0].Sequence, records[1].Sequence)
	assert.Less(t, records[1].Sequence, records[2].Sequence)
}

func TestCompletionEvents_DuplicateIsNoOp(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	first, err := repo.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "a", MilestoneID: "1"})
	require.NoError(t, err)
	assert.True(t, first)

	again, err := repo.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "b", MilestoneID: "1"})
	require.NoError(t, err)
	assert.False(t, again)

	records, err := repo.QueryCompletionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].SessionID)
}

func TestCompletionEvents_QueryOpts(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		_, err := repo.AppendCompletionEvent(ctx, CompletionEventData{
			SessionID:   "s",
			MilestoneID: fmt.Sprintf("m%d", i),
			CompletedAt: base.Add(time.Duration(i) * 24 * time.Hour),
		})
		require.NoError(t, err)
	}

	limited, err := repo.QueryCompletionEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	after, err := repo.QueryCompletionEvents(ctx, QueryOpts{After: limited[1].Sequence})
	require.NoError(t, err)
	assert.Len(t, after, 3)

	window, err := repo.QueryCompletionEvents(ctx, QueryOpts{
		From: base.Add(24 * time.Hour),
		To:   base.Add(3 * 24 * time.Hour),
	})
	require.NoError(t, err)
	require.Len(t, window, 3)
	assert.Equal(t, "m1", window[0].MilestoneID)
	assert.Equal(t, "m3", window[2].MilestoneID)
}

func TestAchievementEvents_AppendOnce(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	data := AchievementEventData{SessionID: "s", AchievementID: "first-step", Title: "First Step", Rarity: "common"}
	require.NoError(t, repo.AppendAchievementEvent(ctx, data))
	require.NoError(t, repo.AppendAchievementEvent(ctx, data))

	records, err := repo.QueryAchievementEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "first-step", records[0].AchievementID)
	assert.Equal(t, "First Step", records[0].Title)
	assert.Equal(t, "common", records[0].Rarity)
	assert.False(t, records[0].UnlockedAt.IsZero())
}

func TestSequenceSharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_, err := repo.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s", MilestoneID: "1"})
	require.NoError(t, err)
	require.NoError(t, repo.AppendAchievementEvent(ctx, AchievementEventData{SessionID: "s", AchievementID: "first-step", Title: "First Step"}))
	_, err = repo.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s", MilestoneID: "2"})
	require.NoError(t, err)

	completions, err := repo.QueryCompletionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	unlocks, err := repo.QueryAchievementEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), completions[0].Sequence)
	assert.Equal(t, int64(2), unlocks[0].Sequence)
	assert.Equal(t, int64(3), completions[1].Sequence)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	// No snapshot yet.
	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data:      SnapshotData{Version: 1, CatalogVersion: "v1.0.0", Focus: "3"},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap == nil {
		t.Fatal("expected non-nil snapshot")
	}
	if snap.Sequence != 42 {
		t.Errorf("sequence = %d, want 42", snap.Sequence)
	}
	if snap.Data.Focus != "3" {
		t.Errorf("data.focus = %q, want %q", snap.Data.Focus, "3")
	}
	if snap.Data.CatalogVersion != "v1.0.0" {
		t.Errorf("data.catalog_version = %q, want v1.0.0", snap.Data.CatalogVersion)
	}
}

func TestSnapshotSave_FillsCurrentSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.EventRepo().AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s", MilestoneID: "1"})
	require.NoError(t, err)
	_, err = s.EventRepo().AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s", MilestoneID: "2"})
	require.NoError(t, err)

	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Data: SnapshotData{Version: 1}}))
	snap, err := s.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(2), snap.Sequence)
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest: %v", err)
	}
	if snap.Sequence != 3 {
		t.Errorf("sequence = %d, want 3", snap.Sequence)
	}
	if snap.Data.Version != 3 {
		t.Errorf("data.version = %d, want 3", snap.Data.Version)
	}
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		}))
	}

	require.NoError(t, repo.Prune(ctx, 2))

	var count int
	require.NoError(t, s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&count))
	assert.Equal(t, 2, count)

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Data.Version)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	_, err := repo.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s", MilestoneID: "1"})
	require.NoError(t, err)
	require.NoError(t, repo.AppendAchievementEvent(ctx, AchievementEventData{SessionID: "s", AchievementID: "first-step", Title: "First Step"}))
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Data: SnapshotData{Version: 1, Focus: "2"}}))

	require.NoError(t, s.Reset(ctx))

	completions, err := repo.QueryCompletionEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, completions)
	unlocks, err := repo.QueryAchievementEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, unlocks)
	snap, err := s.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)

	// Completing again after a reset is a fresh insert.
	inserted, err := repo.AppendCompletionEvent(ctx, CompletionEventData{SessionID: "s2", MilestoneID: "1"})
	require.NoError(t, err)
	assert.True(t, inserted)
}

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "custom.db")
	t.Setenv(DBEnvVar, path)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.DirExists(t, filepath.Dir(path))
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(DBEnvVar, "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "careerpath", "careerpath.db"), got)
}
