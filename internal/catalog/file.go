package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/careerpath/internal/roadmap"
)

//go:embed catalog.schema.json
var schemaJSON []byte

const schemaURL = "schema://careerpath/catalog.schema.json"

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

// Format is the encoding of a catalog file.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// document is the on-disk catalog layout.
type document struct {
	Version    string         `json:"version" yaml:"version"`
	Name       string         `json:"name,omitempty" yaml:"name,omitempty"`
	Milestones []milestoneDoc `json:"milestones" yaml:"milestones"`
}

type milestoneDoc struct {
	roadmap.Milestone `yaml:",inline"`
	NextSteps         []string `json:"next_steps,omitempty" yaml:"next_steps,omitempty"`
}

// Result is a parsed catalog file.
type Result struct {
	Catalog    *roadmap.Catalog
	Name       string
	Mismatches []NextStepsMismatch
}

// Parse decodes data, checks it against the catalog schema and builds a
// validated catalog. Declared next_steps that disagree with prerequisites
// are reported in Result.Mismatches, not as an error.
func Parse(data []byte, format Format) (*Result, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatJSON:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	// Round-trip through JSON so YAML and JSON documents validate and
	// decode identically.
	canonical, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}
	var parsed any
	if err := json.Unmarshal(canonical, &parsed); err != nil {
		return nil, fmt.Errorf("normalize document: %w", err)
	}

	schema, err := catalogSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %w", roadmap.ErrInvalidCatalog, err)
	}

	var doc document
	if err := json.Unmarshal(canonical, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	version, err := CanonicalVersion(doc.Version)
	if err != nil {
		return nil, err
	}

	milestones := make([]roadmap.Milestone, len(doc.Milestones))
	for i, m := range doc.Milestones {
		milestones[i] = m.Milestone
	}
	c, err := roadmap.NewCatalog(version, milestones)
	if err != nil {
		return nil, err
	}

	return &Result{
		Catalog:    c,
		Name:       doc.Name,
		Mismatches: nextStepsMismatches(c, doc.Milestones),
	}, nil
}

// LoadFile reads and parses the catalog at path.
func LoadFile(path string) (*Result, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	res, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return res, nil
}

// File loads a catalog from a YAML or JSON file.
type File struct {
	Path   string
	Logger *slog.Logger
}

// Load parses the file and logs any next_steps mismatches.
func (f *File) Load(_ context.Context) (*roadmap.Catalog, error) {
	res, err := LoadFile(f.Path)
	if err != nil {
		return nil, err
	}
	logMismatches(f.logger(), f.Path, res.Mismatches)
	return res.Catalog, nil
}

func (f *File) logger() *slog.Logger {
	if f.Logger == nil {
		return slog.Default()
	}
	return f.Logger
}

func logMismatches(logger *slog.Logger, path string, mismatches []NextStepsMismatch) {
	for _, m := range mismatches {
		logger.Warn("next_steps ignored",
			"path", path,
			"milestone_id", m.MilestoneID,
			"declared", m.Declared,
			"derived", m.Derived,
		)
	}
}

func nextStepsMismatches(c *roadmap.Catalog, docs []milestoneDoc) []NextStepsMismatch {
	var out []NextStepsMismatch
	for _, m := range docs {
		if m.NextSteps == nil {
			continue
		}
		declared := slices.Clone(m.NextSteps)
		sort.Strings(declared)
		declared = slices.Compact(declared)
		derived := c.NextSteps(m.ID)
		if !slices.Equal(declared, derived) {
			out = append(out, NextStepsMismatch{MilestoneID: m.ID, Declared: declared, Derived: derived})
		}
	}
	return out
}

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(schemaJSON, &def); err != nil {
			schemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		c.AssertFormat()
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(schemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile catalog schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}
