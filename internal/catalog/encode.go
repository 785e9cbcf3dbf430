package catalog

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// Encode writes c in the catalog file layout. next_steps are filled in from
// prerequisites so the file reads both ways.
func Encode(c *roadmap.Catalog, name string, format Format) ([]byte, error) {
	doc := document{Version: c.Version(), Name: name}
	for _, m := range c.TopologicalOrder() {
		m.Skills = nonNil(m.Skills)
		m.Resources = nonNil(m.Resources)
		m.CompanyRelevance = nonNil(m.CompanyRelevance)
		m.Prerequisites = nonNil(m.Prerequisites)
		doc.Milestones = append(doc.Milestones, milestoneDoc{
			Milestone: m,
			NextSteps: c.NextSteps(m.ID),
		})
	}

	switch format {
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		return json.MarshalIndent(doc, "", "  ")
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
