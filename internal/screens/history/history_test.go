package history

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/screens/screentest"
	"github.com/abhisek/careerpath/internal/session"
)

func TestLoad_GroupsBySessionNewestFirst(t *testing.T) {
	first, st := screentest.NewSession(t, "1", "2")

	second := session.NewService(session.Options{
		EventRepo:    st.EventRepo(),
		SnapshotRepo: st.SnapshotRepo(),
		Logger:       slog.New(slog.DiscardHandler),
	})
	ctx := context.Background()
	require.NoError(t, second.Start(ctx, roadmap.Sample()))
	_, err := second.Complete(ctx, "3")
	require.NoError(t, err)

	entries, err := Load(ctx, st.EventRepo(), 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, second.SessionID(), entries[0].SessionID)
	assert.Len(t, entries[0].Completions, 1)

	assert.Equal(t, first.SessionID(), entries[1].SessionID)
	assert.Len(t, entries[1].Completions, 2)
	require.Len(t, entries[1].Achievements, 1)
	assert.Equal(t, "First Step", entries[1].Achievements[0].Title)

	limited, err := Load(ctx, st.EventRepo(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestHistoryScreen_ExpandShowsDetails(t *testing.T) {
	svc, st := screentest.NewSession(t, "1", "2")
	s := New(st.EventRepo(), svc)

	if !strings.Contains(s.View(100, 30), "Loading history") {
		t.Error("expected loading state before Init runs")
	}
	s.Update(s.Init()())

	view := s.View(100, 30)
	if !strings.Contains(view, "2 milestones") || !strings.Contains(view, "1 achievement") {
		t.Errorf("summary line missing:\n%s", view)
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	view = s.View(100, 30)
	for _, want := range []string{"✓ Frontend Fundamentals", "✓ React Fundamentals", "★ Common First Step"} {
		if !strings.Contains(view, want) {
			t.Errorf("expanded view missing %q", want)
		}
	}
}

func TestHistoryScreen_Empty(t *testing.T) {
	svc, st := screentest.NewSession(t)
	s := New(st.EventRepo(), svc)
	s.Update(s.Init()())

	if !strings.Contains(s.View(100, 30), "Nothing completed yet") {
		t.Error("expected empty state")
	}
}
