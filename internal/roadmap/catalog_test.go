package roadmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milestoneIDs(milestones []Milestone) []string {
	ids := make([]string, len(milestones))
	for i, m := range milestones {
		ids[i] = m.ID
	}
	return ids
}

func TestSample_IsValid(t *testing.T) {
	c := Sample()
	assert.Equal(t, 5, c.Len())
	assert.Equal(t, SampleVersion, c.Version())
}

func TestNewCatalog_RejectsInvalidGraph(t *testing.T) {
	c, err := NewCatalog("v1", []Milestone{ms("A", "B"), ms("B", "A")})
	require.Error(t, err)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrInvalidCatalog)

	var cycleErr *CycleError
	require.ErrorAs(t, err, &cycleErr)
	assert.Equal(t, []string{"A", "B"}, cycleErr.IDs)
}

func TestNewCatalog_RejectsFieldErrors(t *testing.T) {
	_, err := NewCatalog("v1", []Milestone{{ID: "a", Category: CategoryFundamentals}})
	var fieldErr *FieldError
	require.ErrorAs(t, err, &fieldErr)
	assert.Equal(t, "title", fieldErr.Field)
}

func TestNewCatalog_DoesNotAliasInput(t *testing.T) {
	input := []Milestone{ms("a"), ms("b", "a")}
	c, err := NewCatalog("v1", input)
	require.NoError(t, err)

	input[1].Prerequisites[0] = "zzz"
	input[0].Title = "changed"

	got, err := c.Get("b")
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, got.Prerequisites)
	a, _ := c.Get("a")
	assert.Equal(t, "Milestone a", a.Title)
}

func TestNewCatalog_DedupesPrerequisites(t *testing.T) {
	c, err := NewCatalog("v1", []Milestone{ms("a"), ms("b", "a", "a")})
	require.NoError(t, err)
	assert.Equal(t, []string{"b"}, c.NextSteps("a"))
	assert.Len(t, c.Prerequisites("b"), 1)
}

func TestCatalog_Get(t *testing.T) {
	c := Sample()

	m, err := c.Get("2")
	require.NoError(t, err)
	assert.Equal(t, "React Fundamentals", m.Title)

	_, err = c.Get("nope")
	assert.True(t, errors.Is(err, ErrMilestoneNotFound))
}

func TestCatalog_Roots(t *testing.T) {
	assert.Equal(t, []string{"1"}, milestoneIDs(Sample().Roots()))
}

func TestCatalog_NextStepsDerivedFromPrerequisites(t *testing.T) {
	c := Sample()
	tests := []struct {
		id   string
		want []string
	}{
		{"1", []string{"2"}},
		{"2", []string{"3", "4"}},
		{"3", []string{"5"}},
		{"4", []string{"5"}},
		{"5", []string{}},
	}
	for _, tt := range tests {
		got := c.NextSteps(tt.id)
		if len(tt.want) == 0 {
			assert.Empty(t, got, "next steps of %s", tt.id)
			continue
		}
		assert.Equal(t, tt.want, got, "next steps of %s", tt.id)
	}
}

func TestCatalog_TopologicalOrder(t *testing.T) {
	c := Sample()
	order := c.TopologicalOrder()
	require.Len(t, order, c.Len())

	pos := make(map[string]int, len(order))
	for i, m := range order {
		pos[m.ID] = i
	}
	for _, m := range order {
		for _, p := range m.Prerequisites {
			assert.Less(t, pos[p], pos[m.ID], "%s must come before %s", p, m.ID)
		}
	}
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, milestoneIDs(order))
}

func TestCatalog_LevelsUseLongestChain(t *testing.T) {
	// d depends on a root directly and on c via a longer chain.
	c, err := NewCatalog("v1", []Milestone{
		ms("a"), ms("b", "a"), ms("c", "b"), ms("d", "a", "c"), ms("e"),
	})
	require.NoError(t, err)

	levels := c.Levels()
	require.Len(t, levels, 4)
	assert.Equal(t, []string{"a", "e"}, milestoneIDs(levels[0]))
	assert.Equal(t, []string{"b"}, milestoneIDs(levels[1]))
	assert.Equal(t, []string{"c"}, milestoneIDs(levels[2]))
	assert.Equal(t, []string{"d"}, milestoneIDs(levels[3]))
	assert.Equal(t, 3, c.Level("d"))
	assert.Equal(t, -1, c.Level("missing"))
}

func TestCatalog_IsUnlockable(t *testing.T) {
	c := Sample()
	assert.True(t, c.IsUnlockable("1", nil))
	assert.False(t, c.IsUnlockable("2", nil))
	assert.True(t, c.IsUnlockable("2", map[string]bool{"1": true}))
	assert.False(t, c.IsUnlockable("5", map[string]bool{"1": true, "2": true, "3": true}))
	assert.True(t, c.IsUnlockable("5", map[string]bool{"3": true, "4": true}))
	assert.False(t, c.IsUnlockable("ghost", nil))
}

func TestCatalog_FingerprintTracksContent(t *testing.T) {
	a := Sample()
	b := Sample()
	assert.Equal(t, a.Fingerprint(), b.Fingerprint())

	changed := SampleMilestones()
	changed[4].Prerequisites = []string{"3"}
	c, err := NewCatalog(SampleVersion, changed)
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())

	relabeled, err := NewCatalog("v2.0.0", SampleMilestones())
	require.NoError(t, err)
	assert.NotEqual(t, a.Fingerprint(), relabeled.Fingerprint())
}

func TestCatalog_EmptyCatalog(t *testing.T) {
	c, err := NewCatalog("v0", nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Levels())
	assert.Empty(t, c.Roots())
}
