package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/careerpath/internal/achievements"
	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/store"
)

// snapshotVersion is the SnapshotData layout written by this package.
const snapshotVersion = 1

// snapshotsKept bounds the snapshot table.
const snapshotsKept = 10

// Options configures a Service. Only EventRepo is required.
type Options struct {
	EventRepo    store.EventRepo
	SnapshotRepo store.SnapshotRepo
	Achievements *achievements.Service
	Cache        *progress.Cache
	Logger       *slog.Logger
	Clock        func() time.Time
}

// Service records completions and focus changes for one session and keeps
// the derived state current.
type Service struct {
	mu           sync.Mutex
	sessionID    string
	events       store.EventRepo
	snapshots    store.SnapshotRepo
	achievements *achievements.Service
	cache        *progress.Cache
	logger       *slog.Logger
	now          func() time.Time
	state        State
}

// NewService creates a Service with a fresh session id.
func NewService(opts Options) *Service {
	s := &Service{
		sessionID:    uuid.NewString(),
		events:       opts.EventRepo,
		snapshots:    opts.SnapshotRepo,
		achievements: opts.Achievements,
		cache:        opts.Cache,
		logger:       opts.Logger,
		now:          opts.Clock,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.achievements == nil {
		s.achievements = achievements.NewService(opts.EventRepo, achievements.DefaultConfig())
	}
	if s.cache == nil {
		s.cache = progress.NewCache(0)
	}
	s.logger = s.logger.With("session_id", s.sessionID)
	return s
}

// SessionID returns the id stamped on every event of this session.
func (s *Service) SessionID() string { return s.sessionID }

// Start replays the completion log against c, restores achievements and the
// last focus. Achievements implied by the log but never recorded are
// recorded now without being announced.
func (s *Service) Start(ctx context.Context, c *roadmap.Catalog) error {
	if c == nil {
		return progress.ErrNoCatalog
	}

	records, err := s.events.QueryCompletionEvents(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("load completions: %w", err)
	}
	facts := make([]progress.CompletionFact, len(records))
	for i, r := range records {
		facts[i] = progress.CompletionFact{MilestoneID: r.MilestoneID, CompletedAt: r.CompletedAt}
	}

	var focus string
	if s.snapshots != nil {
		snap, err := s.snapshots.Latest(ctx)
		if err != nil {
			return fmt.Errorf("load snapshot: %w", err)
		}
		if snap != nil {
			focus = snap.Data.Focus
		}
	}

	if err := s.achievements.Restore(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = NewState(c, facts, focus)
	s.achievements.ResetSession()
	caughtUp, err := s.achievements.Observe(ctx, s.state.History(s.now()), s.sessionID)
	if err != nil {
		s.logger.Warn("record achievements", "error", err)
	}
	s.achievements.ResetSession()

	s.logger.Info("session started",
		"catalog_version", c.Version(),
		"milestones", c.Len(),
		"completed", len(s.state.Facts()),
		"focus", s.state.Focus(),
		"caught_up_achievements", len(caughtUp),
	)
	return nil
}

// Complete records a milestone completion and returns what it unlocked.
// A repeated completion is logged and reported via Update.Duplicate.
func (s *Service) Complete(ctx context.Context, id string) (Update, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := s.now()
	next, u, err := s.state.Complete(id, at)
	if err != nil {
		return Update{}, err
	}
	if u.Duplicate {
		s.logger.Info("milestone already completed", "milestone_id", id)
		return u, nil
	}

	inserted, err := s.events.AppendCompletionEvent(ctx, store.CompletionEventData{
		SessionID:      s.sessionID,
		MilestoneID:    id,
		CatalogVersion: s.state.Catalog().Version(),
		CompletedAt:    at,
	})
	if err != nil {
		return Update{}, fmt.Errorf("record completion: %w", err)
	}
	if !inserted {
		// Recorded by another process since this session started.
		s.logger.Info("milestone already completed", "milestone_id", id, "source", "store")
	}

	s.state = next
	s.logger.Info("milestone completed", "milestone_id", id, "newly_unlocked", u.NewlyUnlocked)

	newly, err := s.achievements.Observe(ctx, s.state.History(at), s.sessionID)
	if err != nil {
		s.logger.Warn("record achievements", "error", err)
	}
	u.NewAchievements = newly
	for _, a := range newly {
		s.logger.Info("achievement unlocked", "achievement_id", a.ID, "title", a.Title)
	}

	s.saveSnapshot(ctx)
	return u, nil
}

// Focus sets or, with an empty id, clears the focus milestone.
func (s *Service) Focus(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.state.WithFocus(id)
	if err != nil {
		return err
	}
	s.state = next
	s.logger.Info("focus changed", "milestone_id", id)
	s.saveSnapshot(ctx)
	return nil
}

// ReloadCatalog swaps in a revalidated catalog and re-runs the achievement
// rules against it, returning any that the new catalog unlocks. The memo
// cache is keyed by catalog fingerprint, so stale statuses are never served.
func (s *Service) ReloadCatalog(ctx context.Context, c *roadmap.Catalog) []achievements.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev := s.state.Catalog()
	s.state = s.state.WithCatalog(c)
	attrs := []any{"catalog_version", c.Version(), "milestones", c.Len()}
	if prev != nil {
		attrs = append(attrs, "previous_version", prev.Version())
	}
	s.logger.Info("catalog reloaded", attrs...)

	newly, err := s.achievements.Observe(ctx, s.state.History(s.now()), s.sessionID)
	if err != nil {
		s.logger.Warn("record achievements", "error", err)
	}
	for _, a := range newly {
		s.logger.Info("achievement unlocked", "achievement_id", a.ID, "title", a.Title, "trigger", "catalog_reload")
	}
	return newly
}

// State returns the current immutable state.
func (s *Service) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// View derives the current statuses and progress.
func (s *Service) View() (View, error) {
	return s.State().View(s.cache)
}

// Achievements returns the current achievement set.
func (s *Service) Achievements() []achievements.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.achievements.Achievements()
}

// SessionUnlocks returns achievements unlocked since Start.
func (s *Service) SessionUnlocks() []achievements.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]achievements.Achievement(nil), s.achievements.SessionUnlocks...)
}

// saveSnapshot persists the focus. Failures are logged, not returned.
func (s *Service) saveSnapshot(ctx context.Context) {
	if s.snapshots == nil {
		return
	}
	data := store.SnapshotData{Version: snapshotVersion, Focus: s.state.Focus()}
	if c := s.state.Catalog(); c != nil {
		data.CatalogVersion = c.Version()
	}
	err := s.snapshots.Save(ctx, &store.Snapshot{Timestamp: s.now(), Data: data})
	if err != nil {
		s.logger.Warn("save snapshot", "error", err)
		return
	}
	if err := s.snapshots.Prune(ctx, snapshotsKept); err != nil {
		s.logger.Warn("prune snapshots", "error", err)
	}
}
