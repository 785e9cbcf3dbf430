package roadmap

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/session"
)

var keys = struct {
	Up, Down, Open, Complete, Focus, Unfocus, Filter, NextLevel, PrevLevel, Back key.Binding
}{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "Navigate")),
	Down:      key.NewBinding(key.WithKeys("down", "j")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Details")),
	Complete:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "Complete")),
	Focus:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "Focus")),
	Unfocus:   key.NewBinding(key.WithKeys("F"), key.WithHelp("F", "Clear focus")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "Filter")),
	NextLevel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Level")),
	PrevLevel: key.NewBinding(key.WithKeys("shift+tab")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("Esc", "Back")),
}

// CompletedMsg carries the outcome of completing a milestone.
type CompletedMsg struct {
	MilestoneID string
	Update      session.Update
	Err         error
}

// FocusedMsg carries the outcome of a focus change.
type FocusedMsg struct {
	MilestoneID string
	Err         error
}

func completeCmd(svc *session.Service, id string) tea.Cmd {
	return func() tea.Msg {
		u, err := svc.Complete(context.Background(), id)
		return CompletedMsg{MilestoneID: id, Update: u, Err: err}
	}
}

func focusCmd(svc *session.Service, id string) tea.Cmd {
	return func() tea.Msg {
		return FocusedMsg{MilestoneID: id, Err: svc.Focus(context.Background(), id)}
	}
}

// flash is a one-line status message shown under a list or detail view.
type flash struct {
	text string
	err  bool
}

func completedFlash(c *roadmap.Catalog, msg CompletedMsg) flash {
	if msg.Err != nil {
		return flash{text: msg.Err.Error(), err: true}
	}
	name := titleOf(c, msg.MilestoneID)
	if msg.Update.Duplicate {
		return flash{text: fmt.Sprintf("%s is already completed", name)}
	}

	parts := []string{fmt.Sprintf("Completed %s.", name)}
	if len(msg.Update.NewlyUnlocked) > 0 {
		titles := make([]string, len(msg.Update.NewlyUnlocked))
		for i, id := range msg.Update.NewlyUnlocked {
			titles[i] = titleOf(c, id)
		}
		parts = append(parts, "Unlocked: "+strings.Join(titles, ", ")+".")
	}
	for _, a := range msg.Update.NewAchievements {
		parts = append(parts, fmt.Sprintf("%s %s!", a.Icon(), a.Title))
	}
	return flash{text: strings.Join(parts, " ")}
}

func focusedFlash(c *roadmap.Catalog, msg FocusedMsg) flash {
	switch {
	case errors.Is(msg.Err, session.ErrFocusCompleted):
		return flash{text: fmt.Sprintf("%s is already completed", titleOf(c, msg.MilestoneID)), err: true}
	case msg.Err != nil:
		return flash{text: msg.Err.Error(), err: true}
	case msg.MilestoneID == "":
		return flash{text: "Focus cleared"}
	default:
		return flash{text: fmt.Sprintf("Focusing on %s", titleOf(c, msg.MilestoneID))}
	}
}

func titleOf(c *roadmap.Catalog, id string) string {
	if c != nil {
		if m, err := c.Get(id); err == nil {
			return m.Title
		}
	}
	return id
}
