// Package app wires the router, the session and catalog hot reload into the
// root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/catalog"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/screens/home"
	"github.com/abhisek/careerpath/internal/screens/unavailable"
	"github.com/abhisek/careerpath/internal/screens/welcome"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/layout"
)

// Options configures the TUI.
type Options struct {
	// Session must be started unless LoadErr is set.
	Session   *session.Service
	EventRepo store.EventRepo

	// Reloads delivers catalog hot reloads; nil disables them.
	Reloads <-chan catalog.Reload

	// LoadErr is the startup catalog error. The roadmap stays unavailable
	// until a valid reload arrives.
	LoadErr error

	Logger *slog.Logger
}

type reloadMsg catalog.Reload

type reloadsClosedMsg struct{}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	opts    Options
	logger  *slog.Logger
	banner  string
	started bool
	width   int
	height  int
}

// newAppModel starts on the welcome splash, or on the unavailable screen
// when no catalog could be loaded.
func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts, logger: opts.Logger, started: opts.LoadErr == nil}
	if m.logger == nil {
		m.logger = slog.Default()
	}

	if !m.started {
		m.router = router.New(unavailable.New(opts.LoadErr))
		return m
	}

	summary := welcome.Summary{}
	if v, err := opts.Session.View(); err == nil {
		summary = welcome.Summary{Completed: v.Progress.Completed, Total: v.Progress.Total}
	}
	m.router = router.New(welcome.New(m.homeFactory(), summary))
	return m
}

func (m AppModel) homeFactory() func() screen.Screen {
	return func() screen.Screen {
		return home.New(m.opts.Session, m.opts.EventRepo)
	}
}

func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), waitForReload(m.opts.Reloads))
}

func waitForReload(ch <-chan catalog.Reload) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return reloadsClosedMsg{}
		}
		return reloadMsg(r)
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reloadMsg:
		cmd := m.applyReload(catalog.Reload(msg))
		return m, tea.Batch(cmd, waitForReload(m.opts.Reloads))

	case reloadsClosedMsg:
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// applyReload swaps in a valid catalog or reports an invalid one. An invalid
// reload never replaces a catalog that is already in use.
func (m *AppModel) applyReload(r catalog.Reload) tea.Cmd {
	if r.Err != nil {
		if m.started {
			m.banner = fmt.Sprintf("Roadmap unavailable: %v. Showing the last valid catalog.", r.Err)
			return nil
		}
		return m.router.Replace(unavailable.New(r.Err))
	}

	m.banner = ""
	if r.Downgrade {
		m.banner = fmt.Sprintf("Catalog version went back to %s", r.Catalog.Version())
	}

	if !m.started {
		if err := m.opts.Session.Start(context.Background(), r.Catalog); err != nil {
			m.logger.Error("start session after reload", "error", err)
			return m.router.Replace(unavailable.New(err))
		}
		m.started = true
		return m.router.Replace(m.homeFactory()())
	}

	newly := m.opts.Session.ReloadCatalog(context.Background(), r.Catalog)
	if len(newly) > 0 {
		titles := make([]string, len(newly))
		for i, a := range newly {
			titles[i] = a.Icon() + " " + a.Title
		}
		notice := "Achievement unlocked: " + strings.Join(titles, ", ")
		if m.banner != "" {
			notice = m.banner + ". " + notice
		}
		m.banner = notice
	}
	m.router.Refresh()
	return nil
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.frame())
	return v
}

// frame renders header, optional banner, active screen and footer.
func (m AppModel) frame() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	var percent float64
	var unlocked int
	if m.started {
		if view, err := m.opts.Session.View(); err == nil {
			percent = view.Progress.OverallPercent
		}
		for _, a := range m.opts.Session.Achievements() {
			if a.Unlocked {
				unlocked++
			}
		}
	}
	header := layout.RenderHeader(title, percent, unlocked, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(p.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	footer := layout.RenderFooter(footerHints, m.width)

	used := lipgloss.Height(header) + lipgloss.Height(footer)
	banner := ""
	if m.banner != "" {
		banner = layout.RenderBanner(m.banner, m.width)
		used += lipgloss.Height(banner)
	}
	contentHeight := max(m.height-used, 0)

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, banner, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
