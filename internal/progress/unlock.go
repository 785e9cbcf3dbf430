package progress

import (
	"sort"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// NodesUnlockedBy returns the milestones that were locked under
// completedBefore and become unlockable once newlyCompleted is added.
// Only direct dependents can flip, so milestones unlocked by an earlier
// completion are never reported again. Re-completing a milestone, or
// completing an unknown one, yields an empty list.
func NodesUnlockedBy(c *roadmap.Catalog, completedBefore map[string]bool, newlyCompleted string) []string {
	unlocked := []string{}
	if c == nil || !c.Has(newlyCompleted) || completedBefore[newlyCompleted] {
		return unlocked
	}

	after := make(map[string]bool, len(completedBefore)+1)
	for id, done := range completedBefore {
		if done {
			after[id] = true
		}
	}
	after[newlyCompleted] = true

	for _, depID := range c.NextSteps(newlyCompleted) {
		if completedBefore[depID] {
			continue
		}
		if !c.IsUnlockable(depID, completedBefore) && c.IsUnlockable(depID, after) {
			unlocked = append(unlocked, depID)
		}
	}
	sort.Strings(unlocked)
	return unlocked
}
