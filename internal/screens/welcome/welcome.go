// Package welcome is the splash shown at startup: the banner, a path that
// draws itself one milestone at a time, and a resume line for returning
// learners.
package welcome

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	stepEvery    = 300 * time.Millisecond
	maxNodes     = 8
)

type tickMsg time.Time

// Summary is what the splash knows about the learner.
type Summary struct {
	Completed int
	Total     int
}

// WelcomeScreen draws the path and hands over to the home screen on any key.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	summary      Summary
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that replaces itself with homeFactory's screen.
func New(homeFactory func() screen.Screen, summary Summary) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		summary:     summary,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// nodes is the number of path nodes drawn.
func (w *WelcomeScreen) nodes() int {
	return min(max(w.summary.Total, 1), maxNodes)
}

// drawn is the number of nodes revealed so far.
func (w *WelcomeScreen) drawn() int {
	return min(int(w.elapsed/stepEvery), w.nodes())
}

func (w *WelcomeScreen) done() bool {
	return w.drawn() >= w.nodes()
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.done() {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	home := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: home}
	}
}

// filled is how many of the drawn nodes represent completed milestones,
// scaled to the node count.
func (w *WelcomeScreen) filled() int {
	if w.summary.Total == 0 {
		return 0
	}
	return w.summary.Completed * w.nodes() / w.summary.Total
}

func (w *WelcomeScreen) renderPath() string {
	done := lipgloss.NewStyle().Foreground(theme.Success)
	open := lipgloss.NewStyle().Foreground(theme.Secondary)
	edge := lipgloss.NewStyle().Foreground(theme.Border)

	var parts []string
	for i := range w.drawn() {
		if i > 0 {
			parts = append(parts, edge.Render("──"))
		}
		if i < w.filled() {
			parts = append(parts, done.Render("●"))
		} else {
			parts = append(parts, open.Render("○"))
		}
	}
	return strings.Join(parts, "")
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{
		RenderBanner(width),
		"",
		w.renderPath(),
	}

	if w.done() {
		sections = append(sections, "")
		tagline := "Map your path from fundamentals to specialization."
		if w.summary.Completed > 0 {
			tagline = fmt.Sprintf("Welcome back! %d of %d milestones completed.",
				w.summary.Completed, w.summary.Total)
		}
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render(tagline))
		sections = append(sections, "")
	}

	sections = append(sections, lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Italic(true).
		Render("press any key to continue"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
