// Package session owns the learner's state for one run of the app: the
// completion log replayed against the loaded catalog, the optional focus
// milestone, and the derived view handed to the UI.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/careerpath/internal/achievements"
	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/roadmap"
)

// ErrFocusCompleted is returned when focusing a milestone that is already done.
var ErrFocusCompleted = errors.New("milestone already completed")

// State is an immutable value. Complete and WithFocus return a new State and
// leave the receiver untouched.
type State struct {
	catalog   *roadmap.Catalog
	facts     []progress.CompletionFact
	completed map[string]bool
	focus     string
}

// Update describes the effect of a single completion.
type Update struct {
	MilestoneID     string
	NewlyUnlocked   []string
	NewAchievements []achievements.Achievement
	Duplicate       bool
}

// View is everything the UI renders for the roadmap.
type View struct {
	Statuses map[string]progress.Status
	Progress progress.Progress
	Focus    string
}

// NewState replays a completion log against c. Repeated facts keep their
// first occurrence. A focus that is unknown or already completed is dropped.
func NewState(c *roadmap.Catalog, facts []progress.CompletionFact, focus string) State {
	s := State{
		catalog:   c,
		completed: make(map[string]bool, len(facts)),
	}
	for _, f := range facts {
		if s.completed[f.MilestoneID] {
			continue
		}
		s.completed[f.MilestoneID] = true
		s.facts = append(s.facts, f)
	}
	if c != nil && c.Has(focus) && !s.completed[focus] {
		s.focus = focus
	}
	return s
}

// Catalog returns the catalog the state is evaluated against.
func (s State) Catalog() *roadmap.Catalog { return s.catalog }

// Focus returns the focused milestone id, or "".
func (s State) Focus() string { return s.focus }

// IsCompleted reports whether id is in the completion log.
func (s State) IsCompleted(id string) bool { return s.completed[id] }

// Facts returns a copy of the completion log.
func (s State) Facts() []progress.CompletionFact {
	return append([]progress.CompletionFact(nil), s.facts...)
}

// Completed returns a copy of the completed-id set.
func (s State) Completed() map[string]bool {
	out := make(map[string]bool, len(s.completed))
	for id := range s.completed {
		out[id] = true
	}
	return out
}

// Complete appends a completion fact. Completing a milestone twice returns
// the same state and an Update with Duplicate set; it is not an error.
func (s State) Complete(id string, at time.Time) (State, Update, error) {
	if s.catalog == nil {
		return s, Update{}, progress.ErrNoCatalog
	}
	if !s.catalog.Has(id) {
		return s, Update{}, fmt.Errorf("complete %q: %w", id, roadmap.ErrMilestoneNotFound)
	}
	if s.completed[id] {
		return s, Update{MilestoneID: id, Duplicate: true, NewlyUnlocked: []string{}}, nil
	}

	u := Update{
		MilestoneID:   id,
		NewlyUnlocked: progress.NodesUnlockedBy(s.catalog, s.completed, id),
	}

	next := State{
		catalog:   s.catalog,
		facts:     append(s.Facts(), progress.CompletionFact{MilestoneID: id, CompletedAt: at}),
		completed: s.Completed(),
		focus:     s.focus,
	}
	next.completed[id] = true
	if next.focus == id {
		next.focus = ""
	}
	return next, u, nil
}

// WithFocus sets the single focus milestone, replacing any previous one.
// An empty id clears the focus.
func (s State) WithFocus(id string) (State, error) {
	if id == "" {
		s.focus = ""
		return s, nil
	}
	if s.catalog == nil {
		return s, progress.ErrNoCatalog
	}
	if !s.catalog.Has(id) {
		return s, fmt.Errorf("focus %q: %w", id, roadmap.ErrMilestoneNotFound)
	}
	if s.completed[id] {
		return s, fmt.Errorf("focus %q: %w", id, ErrFocusCompleted)
	}
	s.focus = id
	return s, nil
}

// WithCatalog re-targets the state at a reloaded catalog. The completion log
// is kept as is; a focus the new catalog no longer has is dropped.
func (s State) WithCatalog(c *roadmap.Catalog) State {
	return NewState(c, s.facts, s.focus)
}

// History builds the achievement history. Facts for milestones that are not
// in the catalog are left out so full-path compares like with like.
func (s State) History(now time.Time) achievements.History {
	h := achievements.History{Now: now}
	if s.catalog == nil {
		return h
	}
	h.CatalogSize = s.catalog.Len()
	for _, f := range s.facts {
		if s.catalog.Has(f.MilestoneID) {
			h.Facts = append(h.Facts, f)
		}
	}
	return h
}

// View derives statuses and progress. cache may be nil.
func (s State) View(cache *progress.Cache) (View, error) {
	var (
		statuses map[string]progress.Status
		err      error
	)
	if cache != nil {
		statuses, err = cache.Statuses(s.catalog, s.completed)
	} else {
		statuses, err = progress.ComputeStatuses(s.catalog, s.completed)
	}
	if err != nil {
		return View{}, err
	}

	statuses = progress.WithFocus(statuses, s.focus)
	return View{
		Statuses: statuses,
		Progress: progress.ComputeProgress(statuses),
		Focus:    s.focus,
	}, nil
}
