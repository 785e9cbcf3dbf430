package achievements

import (
	"fmt"
	"time"

	"github.com/abhisek/careerpath/internal/progress"
)

// History is everything a rule may look at: the full completion log, the
// size of the catalog it was recorded against, and the evaluation time.
type History struct {
	Facts       []progress.CompletionFact
	CatalogSize int
	Now         time.Time
}

// Rule is a stateless predicate over a completion history.
type Rule interface {
	Satisfied(h History) bool
	Describe() string
}

// FirstCompletion holds once the history contains the first completion.
// It stays true for every longer history, so replaying a stored log
// reproduces the unlock.
type FirstCompletion struct{}

func (FirstCompletion) Satisfied(h History) bool {
	return len(progress.CompletedSet(h.Facts)) >= 1
}

func (FirstCompletion) Describe() string { return "first completion" }

// Velocity holds when Count distinct milestones were first completed within
// Window of each other.
type Velocity struct {
	Count  int
	Window time.Duration
}

func (v Velocity) Satisfied(h History) bool {
	if v.Count <= 0 {
		return false
	}
	facts := progress.FirstCompletions(h.Facts)
	for i := 0; i+v.Count-1 < len(facts); i++ {
		if facts[i+v.Count-1].CompletedAt.Sub(facts[i].CompletedAt) <= v.Window {
			return true
		}
	}
	return false
}

func (v Velocity) Describe() string {
	return fmt.Sprintf("%d completions within %s", v.Count, formatWindow(v.Window))
}

// FullPath holds when every catalog milestone is completed.
type FullPath struct{}

func (FullPath) Satisfied(h History) bool {
	return h.CatalogSize > 0 && len(progress.CompletedSet(h.Facts)) >= h.CatalogSize
}

func (FullPath) Describe() string { return "full path completion" }

func formatWindow(d time.Duration) string {
	const day = 24 * time.Hour
	if d >= day && d%day == 0 {
		if d == day {
			return "1 day"
		}
		return fmt.Sprintf("%d days", d/day)
	}
	return d.String()
}
