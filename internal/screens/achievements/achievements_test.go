package achievements

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screens/screentest"
)

func TestScreen_ShowsUnlockedAndLocked(t *testing.T) {
	// Three completions an hour apart unlock First Step and Fast Learner.
	svc, _ := screentest.NewSession(t, "1", "2", "3")
	s := New(svc)

	view := s.View(100, 40)
	for _, want := range []string{"Unlocked: 2 of 3", "First Step", "Fast Learner", "Master", "Legendary"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if !strings.Contains(view, screentest.Epoch.Add(time.Hour).Local().Format("Jan 02, 2006")) {
		t.Error("unlock date not shown")
	}
}

func TestScreen_TabFilters(t *testing.T) {
	svc, _ := screentest.NewSession(t, "1")
	s := New(svc)

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if got := len(s.filtered()); got != 1 {
		t.Fatalf("unlocked tab shows %d, want 1", got)
	}
	if !strings.Contains(s.View(100, 40), "First Step") {
		t.Error("unlocked tab should list First Step")
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	locked := s.filtered()
	if len(locked) != 2 {
		t.Fatalf("locked tab shows %d, want 2", len(locked))
	}
	for _, a := range locked {
		if a.Unlocked {
			t.Errorf("%s is unlocked but listed as locked", a.ID)
		}
	}

	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	if s.selectedTab != tabAll {
		t.Errorf("tab should wrap to All, got %v", s.selectedTab)
	}
}

func TestScreen_EmptyTab(t *testing.T) {
	svc, _ := screentest.NewSession(t)
	s := New(svc)
	s.Update(tea.KeyPressMsg{Code: tea.KeyTab})

	if !strings.Contains(s.View(100, 40), "Nothing here yet") {
		t.Error("expected empty-state message")
	}
}

func TestScreen_EscPops(t *testing.T) {
	svc, _ := screentest.NewSession(t)
	_, cmd := New(svc).Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}
