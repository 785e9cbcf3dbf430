package roadmap

// Selection is the detail projection of one milestone for display.
type Selection struct {
	Milestone     Milestone
	Resources     []Resource
	Companies     []string
	Prerequisites []Milestone
	NextSteps     []Milestone
}

// ResourcesFor returns the resources of the selected milestone.
// An empty selection or an unknown id yields an empty list.
func ResourcesFor(c *Catalog, selectedID string) []Resource {
	if c == nil || selectedID == "" {
		return []Resource{}
	}
	m, ok := c.byID[selectedID]
	if !ok {
		return []Resource{}
	}
	return append([]Resource{}, m.Resources...)
}

// CompaniesFor returns the related-company tags of the selected milestone.
func CompaniesFor(c *Catalog, selectedID string) []string {
	if c == nil || selectedID == "" {
		return []string{}
	}
	m, ok := c.byID[selectedID]
	if !ok {
		return []string{}
	}
	return append([]string{}, m.CompanyRelevance...)
}

// Select builds the full detail view of a milestone. ok is false for an
// empty or unknown selection.
func Select(c *Catalog, selectedID string) (sel Selection, ok bool) {
	if c == nil || !c.Has(selectedID) {
		return Selection{}, false
	}
	m, _ := c.Get(selectedID)
	return Selection{
		Milestone:     m,
		Resources:     ResourcesFor(c, selectedID),
		Companies:     CompaniesFor(c, selectedID),
		Prerequisites: c.Prerequisites(selectedID),
		NextSteps:     c.Dependents(selectedID),
	}, true
}
