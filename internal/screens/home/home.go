// Package home is the landing screen: overall progress, what to learn next,
// and the main menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	achievementscreen "github.com/abhisek/careerpath/internal/screens/achievements"
	"github.com/abhisek/careerpath/internal/screens/breakdown"
	"github.com/abhisek/careerpath/internal/screens/history"
	roadmapscreen "github.com/abhisek/careerpath/internal/screens/roadmap"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// HomeScreen is the bottom screen of the router stack.
type HomeScreen struct {
	svc  *session.Service
	menu components.Menu
}

var (
	_ screen.Screen          = (*HomeScreen)(nil)
	_ screen.KeyHintProvider = (*HomeScreen)(nil)
)

// New creates the home screen. eventRepo backs the history screen and may be
// nil, in which case the entry is disabled.
func New(svc *session.Service, eventRepo store.EventRepo) *HomeScreen {
	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			s := build()
			return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
		}
	}

	items := []components.MenuItem{
		{Label: "ROADMAP", Detail: "browse milestones", Action: push(func() screen.Screen { return roadmapscreen.New(svc) })},
		{Label: "PROGRESS", Detail: "status breakdown", Action: push(func() screen.Screen { return breakdown.New(svc) })},
		{Label: "ACHIEVEMENTS", Action: push(func() screen.Screen { return achievementscreen.New(svc) })},
		{Label: "HISTORY", Disabled: eventRepo == nil, Action: push(func() screen.Screen { return history.New(eventRepo, svc) })},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	}

	return &HomeScreen{svc: svc, menu: components.NewMenu(items)}
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFor(components.MenuKeys.Up, components.MenuKeys.Select)
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// Header and footer take about eight rows of the terminal.
	compact := height+8 < 30 || layout.IsCompactWidth(width)
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact)}

	view, err := h.svc.View()
	if err != nil {
		sections = append(sections, lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Foreground(theme.Error).Render(err.Error()))
	} else {
		all := h.svc.Achievements()
		unlocked := 0
		for _, a := range all {
			if a.Unlocked {
				unlocked++
			}
		}
		sections = append(sections, renderStatsPanel(view.Progress, unlocked, len(all), cw, compact))
		label, title := h.nextUp(view)
		if next := renderNextUp(label, title, cw); next != "" {
			sections = append(sections, next)
		}
	}

	sections = append(sections, renderMenuBox(h.menu.View(), cw))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n\n"))
}

// nextUp picks the focus milestone, else the first in-progress milestone in
// topological order. Both are empty when the roadmap is finished.
func (h *HomeScreen) nextUp(view session.View) (label, title string) {
	c := h.svc.State().Catalog()
	if c == nil {
		return "", ""
	}
	if view.Focus != "" {
		if m, err := c.Get(view.Focus); err == nil {
			return "FOCUS", m.Title
		}
	}
	for _, m := range c.TopologicalOrder() {
		if view.Statuses[m.ID] == progress.StatusInProgress {
			return "NEXT UP", m.Title
		}
	}
	if view.Progress.Total > 0 && view.Progress.Completed == view.Progress.Total {
		return "DONE", "Roadmap complete"
	}
	return "", ""
}
