// Package progress derives milestone status and aggregate progress from a
// validated roadmap catalog and the learner's completion facts.
package progress

import (
	"errors"
	"fmt"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// ErrNoCatalog is returned when status computation is attempted without a
// loaded catalog.
var ErrNoCatalog = errors.New("roadmap unavailable: no catalog loaded")

// Progress is the aggregate view of a status map.
type Progress struct {
	OverallPercent float64
	Completed      int
	Total          int
	Counts         map[Status]int
}

// ComputeStatuses derives the status of every catalog milestone.
// Completed ids that are not in the catalog are ignored.
func ComputeStatuses(c *roadmap.Catalog, completed map[string]bool) (map[string]Status, error) {
	if c == nil {
		return nil, ErrNoCatalog
	}

	statuses := make(map[string]Status, c.Len())
	for _, id := range c.IDs() {
		switch {
		case completed[id]:
			statuses[id] = StatusCompleted
		case c.IsUnlockable(id, completed):
			statuses[id] = StatusInProgress
		default:
			statuses[id] = StatusLocked
		}
	}
	return statuses, nil
}

// ComputeStatusesFor validates a raw milestone list before computing statuses.
// Dangling prerequisites and cycles are reported instead of being treated as
// permanently locked.
func ComputeStatusesFor(milestones []roadmap.Milestone, completed map[string]bool) (map[string]Status, error) {
	c, err := roadmap.NewCatalog("", milestones)
	if err != nil {
		return nil, fmt.Errorf("compute statuses: %w", err)
	}
	return ComputeStatuses(c, completed)
}

// WithFocus returns a copy of statuses in which the focused milestone reads
// as in-progress. Completed or unknown focus ids leave the map unchanged.
func WithFocus(statuses map[string]Status, focusID string) map[string]Status {
	out := make(map[string]Status, len(statuses))
	for id, s := range statuses {
		out[id] = s
	}
	if s, ok := out[focusID]; ok && s == StatusLocked {
		out[focusID] = StatusInProgress
	}
	return out
}

// ComputeProgress aggregates a status map. Every status key is present in
// Counts; the percentage is 0 for an empty catalog.
func ComputeProgress(statuses map[string]Status) Progress {
	p := Progress{
		Total:  len(statuses),
		Counts: make(map[Status]int, 3),
	}
	for _, s := range AllStatuses() {
		p.Counts[s] = 0
	}
	for _, s := range statuses {
		p.Counts[s]++
	}
	p.Completed = p.Counts[StatusCompleted]
	if p.Total > 0 {
		p.OverallPercent = 100 * float64(p.Completed) / float64(p.Total)
	}
	return p
}
