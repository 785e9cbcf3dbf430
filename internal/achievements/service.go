package achievements

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/careerpath/internal/store"
)

// Service holds the session's achievement set and persists unlocks.
type Service struct {
	eventRepo    store.EventRepo
	achievements []Achievement

	// SessionUnlocks accumulates achievements unlocked during this session.
	SessionUnlocks []Achievement
}

// NewService creates a Service with a fresh, all-locked rule table.
func NewService(eventRepo store.EventRepo, cfg Config) *Service {
	return &Service{
		eventRepo:    eventRepo,
		achievements: DefaultAchievements(cfg),
	}
}

// Restore marks achievements that were unlocked in earlier sessions.
// Restored achievements are not added to SessionUnlocks.
func (s *Service) Restore(ctx context.Context) error {
	if s.eventRepo == nil {
		return nil
	}
	records, err := s.eventRepo.QueryAchievementEvents(ctx, store.QueryOpts{})
	if err != nil {
		return fmt.Errorf("restore achievements: %w", err)
	}
	for _, rec := range records {
		for i := range s.achievements {
			a := &s.achievements[i]
			if a.ID == rec.AchievementID && !a.Unlocked {
				a.Unlocked = true
				a.UnlockedAt = rec.UnlockedAt
			}
		}
	}
	return nil
}

// Observe evaluates every rule against h, records new unlocks and returns
// them. Persistence failures are returned but the unlocks stay in memory so
// they are not announced twice.
func (s *Service) Observe(ctx context.Context, h History, sessionID string) ([]Achievement, error) {
	updated, newly := Evaluate(h, s.achievements)
	s.achievements = updated
	s.SessionUnlocks = append(s.SessionUnlocks, newly...)

	var errs []error
	for _, a := range newly {
		errs = append(errs, s.persist(ctx, a, sessionID))
	}
	return newly, errors.Join(errs...)
}

// Achievements returns a copy of the current set.
func (s *Service) Achievements() []Achievement {
	out := make([]Achievement, len(s.achievements))
	copy(out, s.achievements)
	return out
}

// UnlockedCount returns how many achievements are unlocked.
func (s *Service) UnlockedCount() int {
	n := 0
	for _, a := range s.achievements {
		if a.Unlocked {
			n++
		}
	}
	return n
}

// ResetSession clears the session accumulator. Called at session start.
func (s *Service) ResetSession() {
	s.SessionUnlocks = nil
}

func (s *Service) persist(ctx context.Context, a Achievement, sessionID string) error {
	if s.eventRepo == nil {
		return nil
	}
	err := s.eventRepo.AppendAchievementEvent(ctx, store.AchievementEventData{
		SessionID:     sessionID,
		AchievementID: a.ID,
		Title:         a.Title,
		Rarity:        string(a.Rarity),
		UnlockedAt:    a.UnlockedAt,
	})
	if err != nil {
		return fmt.Errorf("persist achievement %s: %w", a.ID, err)
	}
	return nil
}
