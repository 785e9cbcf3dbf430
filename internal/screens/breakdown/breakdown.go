// Package breakdown renders the progress panel: overall completion, counts
// per status, and completion per level and per category.
package breakdown

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// Screen shows the breakdown panel.
type Screen struct {
	svc *session.Service
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates the progress screen.
func New(svc *session.Service) *Screen {
	return &Screen{svc: svc}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Progress" }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	view, err := s.svc.View()
	if err != nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render("\n\n" + err.Error())
	}
	c := s.svc.State().Catalog()
	cw := min(width-8, 64)
	p := view.Progress

	var b strings.Builder
	b.WriteString(theme.Section.Render("Overall"))
	b.WriteString("\n")
	b.WriteString(components.NewProgressBar(fmt.Sprintf("%d/%d", p.Completed, p.Total), p.OverallPercent, cw).View())
	b.WriteString("\n\n")

	for _, st := range progress.AllStatuses() {
		style := lipgloss.NewStyle().Foreground(theme.StatusColor(st))
		b.WriteString(style.Render(fmt.Sprintf("  %s %-12s %3d", st.Icon(), st.Label(), p.Counts[st])))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("By level"))
	b.WriteString("\n")
	for _, g := range progress.ByLevel(c, view.Statuses) {
		b.WriteString(groupBar(g, cw))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("By category"))
	b.WriteString("\n")
	for _, g := range progress.ByCategory(c, view.Statuses) {
		b.WriteString(groupBar(g, cw))
		b.WriteString("\n")
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Render(strings.TrimRight(b.String(), "\n")))
}

func groupBar(g progress.Group, width int) string {
	bar := components.NewProgressBar(fmt.Sprintf("%-16s", g.Label), g.Percent(), width)
	if g.Completed == g.Total {
		bar.Fill = theme.Success
	}
	return bar.View()
}
