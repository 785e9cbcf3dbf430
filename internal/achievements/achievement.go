// Package achievements unlocks one-shot badges from the learner's
// completion history.
package achievements

import (
	"fmt"
	"time"
)

const (
	IDFirstStep   = "first-step"
	IDFastLearner = "fast-learner"
	IDMaster      = "master"
)

// Achievement is a badge with a one-shot unlocked flag.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Rarity      Rarity
	Rule        Rule
	Unlocked    bool
	UnlockedAt  time.Time
}

// Icon returns the display icon for the achievement.
func (a Achievement) Icon() string {
	switch a.ID {
	case IDFirstStep:
		return "🎯"
	case IDFastLearner:
		return "⚡"
	case IDMaster:
		return "🏆"
	default:
		return "✦"
	}
}

// Config tunes the default rule table.
type Config struct {
	VelocityCount  int
	VelocityWindow time.Duration
}

// DefaultConfig returns the standard thresholds: 3 completions in a week.
func DefaultConfig() Config {
	return Config{
		VelocityCount:  3,
		VelocityWindow: 7 * 24 * time.Hour,
	}
}

// DefaultAchievements builds a fresh, all-locked rule table.
func DefaultAchievements(cfg Config) []Achievement {
	return []Achievement{
		{
			ID:          IDFirstStep,
			Title:       "First Step",
			Description: "Complete your first learning milestone",
			Rarity:      RarityCommon,
			Rule:        FirstCompletion{},
		},
		{
			ID:          IDFastLearner,
			Title:       "Fast Learner",
			Description: fmt.Sprintf("Complete %d milestones in %s", cfg.VelocityCount, windowPhrase(cfg.VelocityWindow)),
			Rarity:      RarityRare,
			Rule:        Velocity{Count: cfg.VelocityCount, Window: cfg.VelocityWindow},
		},
		{
			ID:          IDMaster,
			Title:       "Master",
			Description: "Complete an entire learning path",
			Rarity:      RarityLegendary,
			Rule:        FullPath{},
		},
	}
}

func windowPhrase(d time.Duration) string {
	if d == 7*24*time.Hour {
		return "a week"
	}
	return formatWindow(d)
}
