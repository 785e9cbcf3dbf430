// Package unavailable is shown in place of the roadmap when no valid catalog
// could be loaded.
package unavailable

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// Screen reports why the roadmap cannot be shown.
type Screen struct {
	err error
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates the screen for a catalog load error.
func New(err error) *Screen {
	return &Screen{err: err}
}

// Err returns the load error being shown.
func (s *Screen) Err() error { return s.err }

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *Screen) Title() string { return "Roadmap unavailable" }

// KeyHints is empty; the app adds Ctrl+C.
func (s *Screen) KeyHints() []layout.KeyHint {
	return nil
}

func (s *Screen) View(width, height int) string {
	detail := "no catalog loaded"
	if s.err != nil {
		detail = s.err.Error()
	}
	body := theme.Warning.Render("╌╌ Roadmap unavailable ╌╌") +
		"\n\n" +
		theme.Body.Width(min(width-8, 72)).Render(detail) +
		"\n\n" +
		theme.Hint.Render("Fix the catalog file; it is reloaded automatically when watched.")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(body)
}
