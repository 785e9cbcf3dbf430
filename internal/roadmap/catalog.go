package roadmap

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Catalog is a validated, immutable milestone graph with precomputed indices.
// The only way to obtain one is NewCatalog, so every Catalog is acyclic and
// referentially complete.
type Catalog struct {
	version     string
	milestones  []Milestone
	byID        map[string]*Milestone
	dependents  map[string][]string
	roots       []Milestone
	topoOrder   []Milestone
	depth       map[string]int
	levels      [][]Milestone
	fingerprint uint64
}

// NewCatalog validates milestones and builds the graph indices.
// Structural problems are returned as a joined error wrapping ErrInvalidCatalog.
func NewCatalog(version string, milestones []Milestone) (*Catalog, error) {
	if err := errors.Join(validateFields(milestones), ValidateGraph(milestones)); err != nil {
		return nil, fmt.Errorf("roadmap catalog validation failed: %w", err)
	}

	cloned := make([]Milestone, len(milestones))
	for i, m := range milestones {
		cloned[i] = m.clone()
	}
	return buildCatalog(version, cloned), nil
}

// buildCatalog constructs all indices including topological order (Kahn's algorithm).
// The input must already be validated.
func buildCatalog(version string, milestones []Milestone) *Catalog {
	c := &Catalog{
		version:    version,
		milestones: milestones,
		byID:       make(map[string]*Milestone, len(milestones)),
		dependents: make(map[string][]string),
		depth:      make(map[string]int, len(milestones)),
	}

	for i := range c.milestones {
		c.byID[c.milestones[i].ID] = &c.milestones[i]
	}

	// Reverse edges, the derived "next steps".
	for i := range c.milestones {
		for _, prereqID := range c.milestones[i].Prerequisites {
			c.dependents[prereqID] = append(c.dependents[prereqID], c.milestones[i].ID)
		}
	}
	for id := range c.dependents {
		sort.Strings(c.dependents[id])
	}

	inDegree := make(map[string]int, len(milestones))
	for i := range milestones {
		inDegree[milestones[i].ID] = len(milestones[i].Prerequisites)
	}

	var queue []string
	for id, deg := range inDegree {
		if deg == 0 {
			queue = append(queue, id)
		}
	}
	sort.Strings(queue)

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		m := c.byID[id]
		c.topoOrder = append(c.topoOrder, *m)

		for _, depID := range c.dependents[id] {
			inDegree[depID]--
			if inDegree[depID] == 0 {
				queue = append(queue, depID)
			}
		}
	}

	// Level = longest prerequisite chain from a root.
	maxDepth := -1
	for _, m := range c.topoOrder {
		d := 0
		for _, prereqID := range m.Prerequisites {
			if pd := c.depth[prereqID] + 1; pd > d {
				d = pd
			}
		}
		c.depth[m.ID] = d
		maxDepth = max(maxDepth, d)
	}
	c.levels = make([][]Milestone, maxDepth+1)
	for _, m := range c.topoOrder {
		d := c.depth[m.ID]
		c.levels[d] = append(c.levels[d], m)
	}

	for i := range c.milestones {
		if len(c.milestones[i].Prerequisites) == 0 {
			c.roots = append(c.roots, c.milestones[i])
		}
	}

	c.fingerprint = fingerprint(version, c.milestones)
	return c
}

// fingerprint hashes every field that affects status computation or display,
// so any catalog change produces a different value.
func fingerprint(version string, milestones []Milestone) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(version)
	for _, m := range milestones {
		_, _ = d.WriteString("\x00" + m.ID + "\x01" + m.Title + "\x01" + m.Description + "\x01" + string(m.Category))
		_, _ = d.WriteString("\x02" + strings.Join(m.Prerequisites, "\x03"))
		_, _ = d.WriteString("\x02" + strings.Join(m.Skills, "\x03"))
		_, _ = d.WriteString("\x02" + strings.Join(m.CompanyRelevance, "\x03"))
		for _, r := range m.Resources {
			_, _ = d.WriteString("\x04" + string(r.Kind) + "\x05" + r.Title + "\x05" + r.URL + "\x05" + r.Duration + "\x05" + string(r.Difficulty))
		}
		if m.Deadline != nil {
			_, _ = d.WriteString("\x06" + m.Deadline.UTC().String())
		}
	}
	return d.Sum64()
}

// Version returns the catalog version label supplied at load time.
func (c *Catalog) Version() string {
	return c.version
}

// Fingerprint returns a content hash of the catalog.
func (c *Catalog) Fingerprint() uint64 {
	return c.fingerprint
}

// Len returns the number of milestones.
func (c *Catalog) Len() int {
	return len(c.milestones)
}

// Has reports whether id is a milestone of this catalog.
func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Get returns a milestone by ID, or ErrMilestoneNotFound.
func (c *Catalog) Get(id string) (Milestone, error) {
	m, ok := c.byID[id]
	if !ok {
		return Milestone{}, fmt.Errorf("%w: %q", ErrMilestoneNotFound, id)
	}
	return m.clone(), nil
}

// Milestones returns all milestones in catalog order.
func (c *Catalog) Milestones() []Milestone {
	return slices.Clone(c.milestones)
}

// IDs returns all milestone ids in catalog order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.milestones))
	for i, m := range c.milestones {
		ids[i] = m.ID
	}
	return ids
}

// Roots returns all milestones with no prerequisites.
func (c *Catalog) Roots() []Milestone {
	return slices.Clone(c.roots)
}

// TopologicalOrder returns all milestones in a valid, deterministic topological order.
func (c *Catalog) TopologicalOrder() []Milestone {
	return slices.Clone(c.topoOrder)
}

// Levels groups milestones by the length of their longest prerequisite chain.
// Level 0 holds the roots.
func (c *Catalog) Levels() [][]Milestone {
	out := make([][]Milestone, len(c.levels))
	for i, lvl := range c.levels {
		out[i] = slices.Clone(lvl)
	}
	return out
}

// Level returns the level of a milestone, or -1 if unknown.
func (c *Catalog) Level(id string) int {
	d, ok := c.depth[id]
	if !ok {
		return -1
	}
	return d
}

// Prerequisites returns the direct prerequisite milestones for id.
func (c *Catalog) Prerequisites(id string) []Milestone {
	m, ok := c.byID[id]
	if !ok {
		return nil
	}
	result := make([]Milestone, 0, len(m.Prerequisites))
	for _, prereqID := range m.Prerequisites {
		if p, ok := c.byID[prereqID]; ok {
			result = append(result, *p)
		}
	}
	return result
}

// NextSteps returns the ids of milestones that list id as a prerequisite.
func (c *Catalog) NextSteps(id string) []string {
	return slices.Clone(c.dependents[id])
}

// Dependents returns milestones that directly depend on id.
func (c *Catalog) Dependents(id string) []Milestone {
	depIDs := c.dependents[id]
	result := make([]Milestone, 0, len(depIDs))
	for _, depID := range depIDs {
		if m, ok := c.byID[depID]; ok {
			result = append(result, *m)
		}
	}
	return result
}

// IsUnlockable returns true if every prerequisite of id is in completed.
// Unknown ids are never unlockable.
func (c *Catalog) IsUnlockable(id string, completed map[string]bool) bool {
	m, ok := c.byID[id]
	if !ok {
		return false
	}
	for _, prereqID := range m.Prerequisites {
		if !completed[prereqID] {
			return false
		}
	}
	return true
}
