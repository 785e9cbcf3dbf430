// Package roadmap holds the roadmap list and milestone detail screens.
package roadmap

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/router"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

type rowKind int

const (
	rowLevelHeader rowKind = iota
	rowMilestone
)

type row struct {
	kind      rowKind
	level     int
	milestone roadmap.Milestone
}

// ListScreen shows the roadmap grouped by level, roots first.
type ListScreen struct {
	svc          *session.Service
	rows         []row
	cursor       int
	scrollOffset int
	filter       components.FilterInput
	flash        flash
}

var (
	_ screen.Screen          = (*ListScreen)(nil)
	_ screen.KeyHintProvider = (*ListScreen)(nil)
	_ screen.Refresher       = (*ListScreen)(nil)
	_ screen.InputCapturer   = (*ListScreen)(nil)
)

// New creates the roadmap list for the session's catalog.
func New(svc *session.Service) *ListScreen {
	s := &ListScreen{
		svc:    svc,
		filter: components.NewFilterInput("title, skill or company"),
	}
	s.Refresh()
	return s
}

func (s *ListScreen) Init() tea.Cmd { return nil }

func (s *ListScreen) Title() string { return "Roadmap" }

func (s *ListScreen) CapturingInput() bool { return s.filter.Active() }

func (s *ListScreen) KeyHints() []layout.KeyHint {
	if s.filter.Active() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return layout.HintsFor(keys.Up, keys.Open, keys.Complete, keys.Focus, keys.Filter, keys.NextLevel, keys.Back)
}

// Refresh rebuilds the rows from the current catalog and filter, keeping
// the cursor on the same milestone when it is still listed.
func (s *ListScreen) Refresh() {
	selected := s.SelectedID()

	s.rows = s.rows[:0]
	if c := s.svc.State().Catalog(); c != nil {
		for lvl, milestones := range c.Levels() {
			var matched []roadmap.Milestone
			for _, m := range milestones {
				if s.matches(m) {
					matched = append(matched, m)
				}
			}
			if len(matched) == 0 {
				continue
			}
			s.rows = append(s.rows, row{kind: rowLevelHeader, level: lvl})
			for _, m := range matched {
				s.rows = append(s.rows, row{kind: rowMilestone, level: lvl, milestone: m})
			}
		}
	}

	s.cursor = -1
	for i, r := range s.rows {
		if r.kind != rowMilestone {
			continue
		}
		if s.cursor < 0 || r.milestone.ID == selected {
			s.cursor = i
		}
		if r.milestone.ID == selected {
			break
		}
	}
	s.scrollOffset = 0
}

// SelectedID returns the milestone under the cursor, or "".
func (s *ListScreen) SelectedID() string {
	if s.cursor < 0 || s.cursor >= len(s.rows) {
		return ""
	}
	return s.rows[s.cursor].milestone.ID
}

func (s *ListScreen) matches(m roadmap.Milestone) bool {
	fields := append([]string{m.Title, m.Description}, m.Skills...)
	fields = append(fields, m.CompanyRelevance...)
	return s.filter.Matches(fields...)
}

func (s *ListScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case CompletedMsg:
		s.flash = completedFlash(s.svc.State().Catalog(), msg)
		return s, nil

	case FocusedMsg:
		s.flash = focusedFlash(s.svc.State().Catalog(), msg)
		return s, nil

	case tea.KeyMsg:
		if s.filter.Active() {
			return s, s.updateFilter(msg)
		}
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *ListScreen) updateFilter(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		s.filter.Clear()
		s.Refresh()
		return nil
	case "enter":
		s.filter.Deactivate()
		return nil
	}
	var cmd tea.Cmd
	s.filter, cmd = s.filter.Update(msg)
	s.Refresh()
	return cmd
}

func (s *ListScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Up):
		s.moveCursor(-1)
	case key.Matches(msg, keys.Down):
		s.moveCursor(1)
	case key.Matches(msg, keys.NextLevel):
		s.jumpLevel(1)
	case key.Matches(msg, keys.PrevLevel):
		s.jumpLevel(-1)
	case key.Matches(msg, keys.Filter):
		return s.filter.Activate()
	case key.Matches(msg, keys.Unfocus):
		return focusCmd(s.svc, "")
	}

	id := s.SelectedID()
	if id == "" {
		return nil
	}
	switch {
	case key.Matches(msg, keys.Open):
		detail := NewDetail(s.svc, id)
		return func() tea.Msg { return router.PushScreenMsg{Screen: detail} }
	case key.Matches(msg, keys.Complete):
		return completeCmd(s.svc, id)
	case key.Matches(msg, keys.Focus):
		return focusCmd(s.svc, id)
	}
	return nil
}

// moveCursor moves by delta, skipping level headers.
func (s *ListScreen) moveCursor(delta int) {
	for next := s.cursor + delta; next >= 0 && next < len(s.rows); next += delta {
		if s.rows[next].kind == rowMilestone {
			s.cursor = next
			return
		}
	}
}

// jumpLevel moves to the first milestone of the next or previous level.
func (s *ListScreen) jumpLevel(delta int) {
	if s.cursor < 0 {
		return
	}
	target := s.rows[s.cursor].level + delta
	for i, r := range s.rows {
		if r.kind == rowMilestone && r.level == target {
			s.cursor = i
			return
		}
	}
}

func (s *ListScreen) View(width, height int) string {
	view, err := s.svc.View()
	if err != nil {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Error).Render("\n\n" + err.Error())
	}

	var footer []string
	if f := s.filter.View(); f != "" {
		footer = append(footer, "  "+f)
	}
	if s.flash.text != "" {
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if s.flash.err {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		footer = append(footer, "  "+style.Render(s.flash.text))
	}

	listHeight := max(height-len(footer)-1, 1)
	if len(s.rows) == 0 {
		return theme.Hint.Render("\n  No milestones match the filter") + "\n\n" + strings.Join(footer, "\n")
	}
	s.adjustScroll(listHeight)

	var lines []string
	for i := s.scrollOffset; i < len(s.rows) && len(lines) < listHeight; i++ {
		r := s.rows[i]
		switch r.kind {
		case rowLevelHeader:
			lines = append(lines, s.renderLevelHeader(r.level, view, width))
		case rowMilestone:
			lines = append(lines, s.renderRow(r.milestone, view, i == s.cursor, width))
		}
	}

	out := strings.Join(lines, "\n")
	if len(footer) > 0 {
		out += "\n\n" + strings.Join(footer, "\n")
	}
	return out
}

func (s *ListScreen) adjustScroll(height int) {
	header := s.cursor
	for header > 0 && s.rows[header-1].kind == rowLevelHeader {
		header--
	}
	if header < s.scrollOffset {
		s.scrollOffset = header
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

func (s *ListScreen) renderLevelHeader(level int, view session.View, width int) string {
	done, total := 0, 0
	for _, r := range s.rows {
		if r.kind == rowMilestone && r.level == level {
			total++
			if view.Statuses[r.milestone.ID] == progress.StatusCompleted {
				done++
			}
		}
	}
	return theme.Section.
		Width(width).
		PaddingLeft(2).
		Render(fmt.Sprintf("LEVEL %d  %s", level+1, theme.Dim.Render(fmt.Sprintf("%d/%d", done, total))))
}

func (s *ListScreen) renderRow(m roadmap.Milestone, view session.View, selected bool, width int) string {
	status := view.Statuses[m.ID]

	const categoryWidth, labelWidth = 15, 12
	nameWidth := max(width-4-3-categoryWidth-labelWidth-6, 10)
	name := m.Title
	if lipgloss.Width(name) > nameWidth {
		name = string([]rune(name)[:nameWidth-1]) + "…"
	}
	if m.ID == view.Focus {
		name = "◎ " + name
	}

	nameStyle := lipgloss.NewStyle().Foreground(theme.StatusColor(status))
	labelStyle := nameStyle
	if status == progress.StatusInProgress {
		nameStyle = theme.Body
	}
	cursor := "  "
	if selected {
		cursor = "▸ "
		nameStyle = theme.Selected
		labelStyle = lipgloss.NewStyle().Foreground(theme.Primary)
	}

	return fmt.Sprintf("  %s%s %s  %s  %s",
		cursor,
		status.Icon(),
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, name)),
		theme.Dim.Render(fmt.Sprintf("%-*s", categoryWidth, m.Category.DisplayName())),
		labelStyle.Render(fmt.Sprintf("%*s", labelWidth, status.Label())),
	)
}
