package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/roadmap"
)

func TestByLevel(t *testing.T) {
	c := roadmap.Sample()
	statuses, err := ComputeStatuses(c, set("1", "2", "3"))
	require.NoError(t, err)

	got := ByLevel(c, statuses)
	want := []Group{
		{Label: "Level 1", Completed: 1, Total: 1},
		{Label: "Level 2", Completed: 1, Total: 1},
		{Label: "Level 3", Completed: 1, Total: 2},
		{Label: "Level 4", Completed: 0, Total: 1},
	}
	assert.Equal(t, want, got)
	assert.InDelta(t, 50.0, got[2].Percent(), 0.001)
}

func TestByCategory(t *testing.T) {
	c := roadmap.Sample()
	statuses, err := ComputeStatuses(c, set("1"))
	require.NoError(t, err)

	want := []Group{
		{Label: "Fundamentals", Completed: 1, Total: 2},
		{Label: "Advanced", Completed: 0, Total: 2},
		{Label: "Specialization", Completed: 0, Total: 1},
	}
	assert.Equal(t, want, ByCategory(c, statuses))
}

func TestGroupPercentEmpty(t *testing.T) {
	assert.Zero(t, Group{}.Percent())
}
