package progress

import (
	"sort"
	"time"
)

// CompletionFact records that the learner completed a milestone.
type CompletionFact struct {
	MilestoneID string
	CompletedAt time.Time
}

// CompletedSet collapses a completion log into the set of completed ids.
func CompletedSet(facts []CompletionFact) map[string]bool {
	set := make(map[string]bool, len(facts))
	for _, f := range facts {
		set[f.MilestoneID] = true
	}
	return set
}

// FirstCompletions keeps the earliest fact per milestone, sorted by time
// and then id.
func FirstCompletions(facts []CompletionFact) []CompletionFact {
	earliest := make(map[string]CompletionFact, len(facts))
	for _, f := range facts {
		if prev, ok := earliest[f.MilestoneID]; !ok || f.CompletedAt.Before(prev.CompletedAt) {
			earliest[f.MilestoneID] = f
		}
	}

	out := make([]CompletionFact, 0, len(earliest))
	for _, f := range earliest {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].MilestoneID < out[j].MilestoneID
		}
		return out[i].CompletedAt.Before(out[j].CompletedAt)
	})
	return out
}
