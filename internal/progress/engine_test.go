package progress

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/roadmap"
)

func set(ids ...string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func TestComputeStatuses_SampleGraph(t *testing.T) {
	c := roadmap.Sample()

	tests := []struct {
		name      string
		completed map[string]bool
		want      map[string]Status
	}{
		{
			name:      "nothing completed",
			completed: set(),
			want: map[string]Status{
				"1": StatusInProgress, "2": StatusLocked, "3": StatusLocked,
				"4": StatusLocked, "5": StatusLocked,
			},
		},
		{
			name:      "root completed",
			completed: set("1"),
			want: map[string]Status{
				"1": StatusCompleted, "2": StatusInProgress, "3": StatusLocked,
				"4": StatusLocked, "5": StatusLocked,
			},
		},
		{
			name:      "branch point completed",
			completed: set("1", "2"),
			want: map[string]Status{
				"1": StatusCompleted, "2": StatusCompleted, "3": StatusInProgress,
				"4": StatusInProgress, "5": StatusLocked,
			},
		},
		{
			name:      "one branch completed",
			completed: set("1", "2", "3"),
			want: map[string]Status{
				"1": StatusCompleted, "2": StatusCompleted, "3": StatusCompleted,
				"4": StatusInProgress, "5": StatusLocked,
			},
		},
		{
			name:      "both branches completed",
			completed: set("1", "2", "3", "4"),
			want: map[string]Status{
				"1": StatusCompleted, "2": StatusCompleted, "3": StatusCompleted,
				"4": StatusCompleted, "5": StatusInProgress,
			},
		},
		{
			name:      "unknown ids ignored",
			completed: set("1", "ghost"),
			want: map[string]Status{
				"1": StatusCompleted, "2": StatusInProgress, "3": StatusLocked,
				"4": StatusLocked, "5": StatusLocked,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeStatuses(c, tt.completed)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestComputeStatuses_NilCatalog(t *testing.T) {
	_, err := ComputeStatuses(nil, nil)
	assert.ErrorIs(t, err, ErrNoCatalog)
}

func TestComputeStatuses_CompletedWithoutPrerequisites(t *testing.T) {
	got, err := ComputeStatuses(roadmap.Sample(), set("5"))
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, got["5"])
	assert.Equal(t, StatusLocked, got["3"])
}

func TestComputeStatusesFor_DanglingPrerequisite(t *testing.T) {
	milestones := []roadmap.Milestone{
		{ID: "a", Title: "A", Category: roadmap.CategoryFundamentals},
		{ID: "b", Title: "B", Category: roadmap.CategoryFundamentals, Prerequisites: []string{"X"}},
	}
	statuses, err := ComputeStatusesFor(milestones, nil)
	require.Error(t, err)
	assert.Nil(t, statuses)

	var dangling *roadmap.DanglingPrerequisiteError
	require.True(t, errors.As(err, &dangling))
	assert.Equal(t, "b", dangling.MilestoneID)
	assert.Equal(t, "X", dangling.MissingID)
}

func TestComputeStatusesFor_Valid(t *testing.T) {
	statuses, err := ComputeStatusesFor(roadmap.SampleMilestones(), set("1"))
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, statuses["2"])
}

func TestComputeProgress(t *testing.T) {
	c := roadmap.Sample()

	tests := []struct {
		name        string
		completed   map[string]bool
		wantPercent float64
		wantCounts  map[Status]int
	}{
		{"none", set(), 0, map[Status]int{StatusCompleted: 0, StatusInProgress: 1, StatusLocked: 4}},
		{"two of five", set("1", "2"), 40, map[Status]int{StatusCompleted: 2, StatusInProgress: 2, StatusLocked: 1}},
		{"all", set("1", "2", "3", "4", "5"), 100, map[Status]int{StatusCompleted: 5, StatusInProgress: 0, StatusLocked: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses, err := ComputeStatuses(c, tt.completed)
			require.NoError(t, err)
			p := ComputeProgress(statuses)
			assert.InDelta(t, tt.wantPercent, p.OverallPercent, 1e-9)
			assert.Equal(t, tt.wantCounts, p.Counts)
			assert.Equal(t, 5, p.Total)
		})
	}
}

func TestComputeProgress_EmptyCatalog(t *testing.T) {
	p := ComputeProgress(map[string]Status{})
	assert.Equal(t, 0.0, p.OverallPercent)
	assert.Equal(t, map[Status]int{StatusCompleted: 0, StatusInProgress: 0, StatusLocked: 0}, p.Counts)
}

func TestWithFocus(t *testing.T) {
	statuses, err := ComputeStatuses(roadmap.Sample(), set("1"))
	require.NoError(t, err)

	focused := WithFocus(statuses, "4")
	assert.Equal(t, StatusInProgress, focused["4"])
	assert.Equal(t, StatusLocked, statuses["4"], "input must not be mutated")

	assert.Equal(t, StatusCompleted, WithFocus(statuses, "1")["1"])
	assert.Equal(t, statuses, WithFocus(statuses, ""))
	assert.Equal(t, statuses, WithFocus(statuses, "ghost"))
}

func TestStatusLabels(t *testing.T) {
	assert.Equal(t, "In Progress", StatusInProgress.Label())
	assert.Equal(t, "in-progress", string(StatusInProgress))
	assert.Equal(t, "✓", StatusCompleted.Icon())
}
