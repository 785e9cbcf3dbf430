// Package achievements lists every badge with its rarity and unlock date.
package achievements

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/achievements"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

type tab int

const (
	tabAll tab = iota
	tabUnlocked
	tabLocked
	tabCount
)

func (t tab) label() string {
	switch t {
	case tabUnlocked:
		return "Unlocked"
	case tabLocked:
		return "Locked"
	default:
		return "All"
	}
}

// Screen displays the achievement table.
type Screen struct {
	svc          *session.Service
	selectedTab  tab
	scrollOffset int
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates the achievements screen.
func New(svc *session.Service) *Screen {
	return &Screen{svc: svc}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Achievements" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		s.selectedTab = (s.selectedTab + 1) % tabCount
		s.scrollOffset = 0
	case "shift+tab":
		s.selectedTab = (s.selectedTab - 1 + tabCount) % tabCount
		s.scrollOffset = 0
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.filtered())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

func (s *Screen) filtered() []achievements.Achievement {
	var out []achievements.Achievement
	for _, a := range s.svc.Achievements() {
		switch {
		case s.selectedTab == tabUnlocked && !a.Unlocked:
		case s.selectedTab == tabLocked && a.Unlocked:
		default:
			out = append(out, a)
		}
	}
	return out
}

func (s *Screen) View(width, height int) string {
	all := s.svc.Achievements()
	unlocked := 0
	for _, a := range all {
		if a.Unlocked {
			unlocked++
		}
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nUnlocked: %d of %d\n", unlocked, len(all))))
	b.WriteString("\n")

	var tabs []string
	for t := range tabCount {
		label := t.label()
		if t == s.selectedTab {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, theme.Dim.Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", min(width-8, 64)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	list := s.filtered()
	if len(list) == 0 {
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("Nothing here yet"))
		return b.String()
	}

	// Each achievement takes two lines.
	maxVisible := max((height-10)/2, 1)
	start := min(s.scrollOffset, len(list)-1)
	end := min(start+maxVisible, len(list))

	for _, a := range list[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderAchievement(a)))
		b.WriteString("\n")
	}
	if end < len(list) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(list)-end)))
	}
	return b.String()
}

func renderAchievement(a achievements.Achievement) string {
	icon, when := "🔒", "locked"
	style := theme.Dim
	if a.Unlocked {
		icon = a.Icon()
		when = a.UnlockedAt.Local().Format("Jan 02, 2006")
		style = lipgloss.NewStyle().Foreground(theme.RarityColor(a.Rarity)).Bold(true)
	}
	head := fmt.Sprintf("%s  %-14s %-10s %12s", icon, a.Title, a.Rarity.DisplayName(), when)
	return style.Render(head) + "\n" + theme.Hint.Render("    "+a.Description)
}
