// Package catalog loads roadmap catalogs from the built-in sample, from
// YAML or JSON files, or from a Postgres milestone store, and watches
// catalog files for changes.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/abhisek/careerpath/internal/roadmap"
)

// ErrUnsupportedFormat is returned for catalog files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("unsupported catalog format")

// ErrInvalidVersion is returned when a catalog version is not a semantic version.
var ErrInvalidVersion = errors.New("invalid catalog version")

// ErrCatalogNotFound is returned when a store has no published catalog to
// load. It does not wrap roadmap.ErrInvalidCatalog.
var ErrCatalogNotFound = errors.New("no published catalog")

// Source loads a validated catalog.
type Source interface {
	Load(ctx context.Context) (*roadmap.Catalog, error)
}

// Sample serves the catalog compiled into the binary.
type Sample struct{}

// Load returns the built-in catalog.
func (Sample) Load(context.Context) (*roadmap.Catalog, error) {
	return roadmap.Sample(), nil
}

// CanonicalVersion normalizes a catalog version to canonical semver form.
// A missing "v" prefix is accepted: "1.2" becomes "v1.2.0".
func CanonicalVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v != "" && !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, v)
	}
	return semver.Canonical(v), nil
}

// IsDowngrade reports whether next is an older version than prev.
// Invalid versions never count as a downgrade.
func IsDowngrade(prev, next string) bool {
	if !semver.IsValid(prev) || !semver.IsValid(next) {
		return false
	}
	return semver.Compare(next, prev) < 0
}

// NextStepsMismatch records a milestone whose declared next steps disagree
// with the ones derived from prerequisites. Prerequisites win.
type NextStepsMismatch struct {
	MilestoneID string
	Declared    []string
	Derived     []string
}

func (m NextStepsMismatch) String() string {
	return fmt.Sprintf("milestone %s declares next steps [%s], prerequisites imply [%s]",
		m.MilestoneID, strings.Join(m.Declared, ", "), strings.Join(m.Derived, ", "))
}
