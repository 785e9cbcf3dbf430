package roadmap

import "time"

// Category groups milestones by depth of study.
type Category string

const (
	CategoryFundamentals   Category = "fundamentals"
	CategoryAdvanced       Category = "advanced"
	CategorySpecialization Category = "specialization"
)

// AllCategories returns all categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryFundamentals,
		CategoryAdvanced,
		CategorySpecialization,
	}
}

// DisplayName returns a human-readable name for a category.
func (c Category) DisplayName() string {
	switch c {
	case CategoryFundamentals:
		return "Fundamentals"
	case CategoryAdvanced:
		return "Advanced"
	case CategorySpecialization:
		return "Specialization"
	default:
		return string(c)
	}
}

func (c Category) valid() bool {
	switch c {
	case CategoryFundamentals, CategoryAdvanced, CategorySpecialization:
		return true
	}
	return false
}

// ResourceKind is the medium of a learning resource.
type ResourceKind string

const (
	ResourceVideo   ResourceKind = "video"
	ResourceArticle ResourceKind = "article"
	ResourceProject ResourceKind = "project"
)

// Icon returns the display icon for a resource kind.
func (k ResourceKind) Icon() string {
	switch k {
	case ResourceVideo:
		return "▶"
	case ResourceArticle:
		return "📄"
	case ResourceProject:
		return "🛠"
	default:
		return "•"
	}
}

func (k ResourceKind) valid() bool {
	switch k {
	case ResourceVideo, ResourceArticle, ResourceProject:
		return true
	}
	return false
}

// Difficulty is the optional level label of a resource.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) valid() bool {
	switch d {
	case "", DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Resource is a link attached to a milestone.
type Resource struct {
	Kind       ResourceKind `json:"kind" yaml:"kind"`
	Title      string       `json:"title" yaml:"title"`
	URL        string       `json:"url" yaml:"url"`
	Duration   string       `json:"duration,omitempty" yaml:"duration,omitempty"`
	Difficulty Difficulty   `json:"difficulty,omitempty" yaml:"difficulty,omitempty"`
}

// Milestone is a single learning unit in the roadmap graph.
// Prerequisites is the only stored edge list; dependents are derived by the Catalog.
type Milestone struct {
	ID               string     `json:"id" yaml:"id"`
	Title            string     `json:"title" yaml:"title"`
	Description      string     `json:"description" yaml:"description"`
	Category         Category   `json:"category" yaml:"category"`
	Skills           []string   `json:"skills" yaml:"skills"`
	Resources        []Resource `json:"resources" yaml:"resources"`
	CompanyRelevance []string   `json:"company_relevance" yaml:"company_relevance"`
	Prerequisites    []string   `json:"prerequisites" yaml:"prerequisites"`
	Deadline         *time.Time `json:"deadline,omitempty" yaml:"deadline,omitempty"`
}

// clone returns a deep copy so the catalog never aliases caller-owned slices.
func (m Milestone) clone() Milestone {
	c := m
	c.Skills = append([]string(nil), m.Skills...)
	c.Resources = append([]Resource(nil), m.Resources...)
	c.CompanyRelevance = dedupe(m.CompanyRelevance)
	c.Prerequisites = dedupe(m.Prerequisites)
	if m.Deadline != nil {
		d := *m.Deadline
		c.Deadline = &d
	}
	return c
}

// dedupe drops repeated entries, keeping first-seen order.
func dedupe(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
