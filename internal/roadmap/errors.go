package roadmap

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCatalog is wrapped by every structural catalog error.
	ErrInvalidCatalog = errors.New("invalid roadmap catalog")

	// ErrMilestoneNotFound is returned by lookups for unknown ids.
	ErrMilestoneNotFound = errors.New("milestone not found")
)

// DanglingPrerequisiteError reports a prerequisite id that is not in the catalog.
type DanglingPrerequisiteError struct {
	MilestoneID string
	MissingID   string
}

func (e *DanglingPrerequisiteError) Error() string {
	return fmt.Sprintf("milestone %q references nonexistent prerequisite %q", e.MilestoneID, e.MissingID)
}

func (e *DanglingPrerequisiteError) Unwrap() error { return ErrInvalidCatalog }

// CycleError reports every milestone that lies on a prerequisite cycle.
// Components holds each strongly connected group separately.
type CycleError struct {
	IDs        []string
	Components [][]string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("prerequisite cycle detected involving milestones: %s", strings.Join(e.IDs, ", "))
}

func (e *CycleError) Unwrap() error { return ErrInvalidCatalog }

// DuplicateMilestoneError reports an id used by more than one milestone.
type DuplicateMilestoneError struct {
	ID string
}

func (e *DuplicateMilestoneError) Error() string {
	return fmt.Sprintf("duplicate milestone ID: %q", e.ID)
}

func (e *DuplicateMilestoneError) Unwrap() error { return ErrInvalidCatalog }

// FieldError reports a malformed milestone attribute.
type FieldError struct {
	MilestoneID string
	Field       string
	Reason      string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("milestone %q: %s: %s", e.MilestoneID, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrInvalidCatalog }
