package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title     string
	initRan   bool
	refreshed int
	updates   int
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Refresh()                                { s.refreshed++ }

// plainScreen does not implement screen.Refresher.
type plainScreen struct{ title string }

func (s *plainScreen) Init() tea.Cmd                           { return nil }
func (s *plainScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *plainScreen) View(int, int) string                    { return s.title }
func (s *plainScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	r := New(&stubScreen{title: "roadmap"})

	detail := &stubScreen{title: "detail"}
	r.Push(detail)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "detail" {
		t.Errorf("expected active 'detail', got %q", r.Active().Title())
	}
	if !detail.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "detail"})
	r.Pop()
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after popping to the bottom, got %d", r.Depth())
	}
	if r.Active().Title() != "home" {
		t.Errorf("expected active 'home', got %q", r.Active().Title())
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	r := New(&stubScreen{title: "home"})
	r.Push(&stubScreen{title: "roadmap"})

	unavailable := &stubScreen{title: "unavailable"}
	r.Update(ReplaceScreenMsg{Screen: unavailable})

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "unavailable" {
		t.Errorf("expected active 'unavailable', got %q", r.Active().Title())
	}
	if !unavailable.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestUpdateForwardsToActiveOnly(t *testing.T) {
	home := &stubScreen{title: "home"}
	top := &stubScreen{title: "top"}
	r := New(home)
	r.Push(top)

	r.Update(tea.KeyPressMsg{Code: 'j', Text: "j"})

	if top.updates != 1 || home.updates != 0 {
		t.Errorf("updates home=%d top=%d, want 0 and 1", home.updates, top.updates)
	}
}

func TestRefreshReachesWholeStack(t *testing.T) {
	home := &stubScreen{title: "home"}
	plain := &plainScreen{title: "plain"}
	top := &stubScreen{title: "top"}
	r := New(home)
	r.Push(plain)
	r.Push(top)

	r.Refresh()

	if home.refreshed != 1 || top.refreshed != 1 {
		t.Errorf("refreshed home=%d top=%d, want 1 each", home.refreshed, top.refreshed)
	}
}
