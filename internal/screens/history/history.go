// Package history shows past sessions from the event log: what was
// completed in each and which achievements it unlocked.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/achievements"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/store"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// sessionLimit bounds how many sessions are listed.
const sessionLimit = 50

// Entry groups the events of one session.
type Entry struct {
	SessionID    string
	Completions  []store.CompletionEventRecord
	Achievements []store.AchievementEventRecord
}

type historyLoadedMsg struct {
	Entries []Entry
	Err     error
}

// HistoryScreen lists sessions newest first.
type HistoryScreen struct {
	eventRepo store.EventRepo
	svc       *session.Service
	entries   []Entry
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var (
	_ screen.Screen          = (*HistoryScreen)(nil)
	_ screen.KeyHintProvider = (*HistoryScreen)(nil)
)

// New creates a HistoryScreen. svc resolves milestone titles and may be nil.
func New(eventRepo store.EventRepo, svc *session.Service) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		svc:       svc,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		entries, err := Load(context.Background(), s.eventRepo, sessionLimit)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

// Load reads the event log and groups it by session, newest session first.
// A failure to read achievements is not fatal; completions are still shown.
func Load(ctx context.Context, repo store.EventRepo, limit int) ([]Entry, error) {
	completions, err := repo.QueryCompletionEvents(ctx, store.QueryOpts{})
	if err != nil {
		return nil, err
	}

	var entries []Entry
	index := make(map[string]int)
	for _, c := range completions {
		i, ok := index[c.SessionID]
		if !ok {
			i = len(entries)
			index[c.SessionID] = i
			entries = append(entries, Entry{SessionID: c.SessionID})
		}
		entries[i].Completions = append(entries[i].Completions, c)
	}

	unlocks, err := repo.QueryAchievementEvents(ctx, store.QueryOpts{})
	if err == nil {
		for _, a := range unlocks {
			if i, ok := index[a.SessionID]; ok {
				entries[i].Achievements = append(entries[i].Achievements, a)
			}
		}
	}

	for l, r := 0, len(entries)-1; l < r; l, r = l+1, r-1 {
		entries[l], entries[r] = entries[r], entries[l]
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = msg.Entries
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.entries)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	if s.errMsg != "" {
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center.Foreground(theme.TextDim).Render("\n\n  Loading history...")
	}
	if len(s.entries) == 0 {
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\n  Nothing completed yet. Pick a milestone and get going!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, e := range s.entries {
		first := e.Completions[0].CompletedAt
		last := e.Completions[len(e.Completions)-1].CompletedAt

		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}

		line := fmt.Sprintf("%s%s  %s–%s  %s",
			prefix,
			first.Local().Format("Jan 02, 2006"),
			first.Local().Format("15:04"),
			last.Local().Format("15:04"),
			plural(len(e.Completions), "milestone"))
		if n := len(e.Achievements); n > 0 {
			line += "  " + plural(n, "achievement")
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, c := range e.Completions {
				detail := fmt.Sprintf("    ✓ %s  %s", s.titleOf(c.MilestoneID), c.CompletedAt.Local().Format("15:04"))
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.Success).Render(detail)))
				b.WriteString("\n")
			}
			for _, a := range e.Achievements {
				rarity := achievements.Rarity(a.Rarity)
				detail := fmt.Sprintf("    ★ %s %s", rarity.DisplayName(), a.Title)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.RarityColor(rarity)).Render(detail)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func (s *HistoryScreen) titleOf(id string) string {
	if s.svc == nil {
		return id
	}
	if c := s.svc.State().Catalog(); c != nil {
		if m, err := c.Get(id); err == nil {
			return m.Title
		}
	}
	return id
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
