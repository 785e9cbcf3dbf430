package progress

import (
	"fmt"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// Group is the completion tally of a set of milestones.
type Group struct {
	Label     string
	Completed int
	Total     int
}

// Percent returns the completed share, 0 for an empty group.
func (g Group) Percent() float64 {
	if g.Total == 0 {
		return 0
	}
	return 100 * float64(g.Completed) / float64(g.Total)
}

// ByLevel tallies completion per catalog level, roots first.
func ByLevel(c *roadmap.Catalog, statuses map[string]Status) []Group {
	levels := c.Levels()
	out := make([]Group, len(levels))
	for i, lvl := range levels {
		out[i] = tally(fmt.Sprintf("Level %d", i+1), lvl, statuses)
	}
	return out
}

// ByCategory tallies completion per category, skipping empty ones.
func ByCategory(c *roadmap.Catalog, statuses map[string]Status) []Group {
	var out []Group
	for _, cat := range roadmap.AllCategories() {
		var ms []roadmap.Milestone
		for _, m := range c.Milestones() {
			if m.Category == cat {
				ms = append(ms, m)
			}
		}
		if len(ms) > 0 {
			out = append(out, tally(cat.DisplayName(), ms, statuses))
		}
	}
	return out
}

func tally(label string, ms []roadmap.Milestone, statuses map[string]Status) Group {
	g := Group{Label: label, Total: len(ms)}
	for _, m := range ms {
		if statuses[m.ID] == StatusCompleted {
			g.Completed++
		}
	}
	return g
}
