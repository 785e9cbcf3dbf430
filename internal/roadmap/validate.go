package roadmap

import (
	"errors"
	"fmt"
	"slices"
)

// ValidateGraph performs the structural checks on a milestone set: unique ids,
// no dangling prerequisites and no prerequisite cycles. All problems are
// returned together; each can be matched with errors.As.
func ValidateGraph(milestones []Milestone) error {
	var errs []error

	ids := make(map[string]bool, len(milestones))
	for _, m := range milestones {
		if ids[m.ID] {
			errs = append(errs, &DuplicateMilestoneError{ID: m.ID})
		}
		ids[m.ID] = true
	}

	for _, m := range milestones {
		for _, prereqID := range dedupe(m.Prerequisites) {
			if !ids[prereqID] {
				errs = append(errs, &DanglingPrerequisiteError{MilestoneID: m.ID, MissingID: prereqID})
			}
		}
	}

	if cycleErr := findCycles(milestones, ids); cycleErr != nil {
		errs = append(errs, cycleErr)
	}

	return errors.Join(errs...)
}

// validateFields checks per-milestone attributes that the graph check does not cover.
func validateFields(milestones []Milestone) error {
	var errs []error
	for i, m := range milestones {
		if m.ID == "" {
			errs = append(errs, &FieldError{MilestoneID: fmt.Sprintf("#%d", i), Field: "id", Reason: "must not be empty"})
			continue
		}
		if m.Title == "" {
			errs = append(errs, &FieldError{MilestoneID: m.ID, Field: "title", Reason: "must not be empty"})
		}
		if !m.Category.valid() {
			errs = append(errs, &FieldError{MilestoneID: m.ID, Field: "category", Reason: fmt.Sprintf("unknown category %q", m.Category)})
		}
		for j, r := range m.Resources {
			field := fmt.Sprintf("resources[%d]", j)
			if !r.Kind.valid() {
				errs = append(errs, &FieldError{MilestoneID: m.ID, Field: field, Reason: fmt.Sprintf("unknown kind %q", r.Kind)})
			}
			if !r.Difficulty.valid() {
				errs = append(errs, &FieldError{MilestoneID: m.ID, Field: field, Reason: fmt.Sprintf("unknown difficulty %q", r.Difficulty)})
			}
			if r.URL == "" {
				errs = append(errs, &FieldError{MilestoneID: m.ID, Field: field, Reason: "url must not be empty"})
			}
		}
	}
	return errors.Join(errs...)
}

// findCycles runs Tarjan's strongly connected components over the
// prerequisite edges. Any component with more than one member, or a
// milestone that requires itself, is a cycle. Edges to unknown ids are skipped.
func findCycles(milestones []Milestone, ids map[string]bool) *CycleError {
	edges := make(map[string][]string, len(milestones))
	selfLoop := make(map[string]bool)
	for _, m := range milestones {
		for _, prereqID := range dedupe(m.Prerequisites) {
			if !ids[prereqID] {
				continue
			}
			if prereqID == m.ID {
				selfLoop[m.ID] = true
			}
			edges[m.ID] = append(edges[m.ID], prereqID)
		}
	}

	var (
		counter    int
		index      = make(map[string]int, len(milestones))
		lowlink    = make(map[string]int, len(milestones))
		onStack    = make(map[string]bool, len(milestones))
		stack      []string
		components [][]string
	)

	var strongConnect func(v string)
	strongConnect = func(v string) {
		index[v] = counter
		lowlink[v] = counter
		counter++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range edges[v] {
			if _, seen := index[w]; !seen {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], index[w])
			}
		}

		if lowlink[v] != index[v] {
			return
		}
		var comp []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			comp = append(comp, w)
			if w == v {
				break
			}
		}
		if len(comp) > 1 || selfLoop[v] {
			slices.Sort(comp)
			components = append(components, comp)
		}
	}

	for _, m := range milestones {
		if _, seen := index[m.ID]; !seen {
			strongConnect(m.ID)
		}
	}

	if len(components) == 0 {
		return nil
	}

	var all []string
	for _, comp := range components {
		all = append(all, comp...)
	}
	slices.Sort(all)
	all = slices.Compact(all)
	slices.SortFunc(components, func(a, b []string) int {
		return slices.Compare(a, b)
	})

	return &CycleError{IDs: all, Components: components}
}
