package roadmap

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/screen"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/ui/layout"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// DetailScreen shows one milestone with its resources, related companies,
// prerequisites and next steps.
type DetailScreen struct {
	svc   *session.Service
	id    string
	flash flash
}

var (
	_ screen.Screen          = (*DetailScreen)(nil)
	_ screen.KeyHintProvider = (*DetailScreen)(nil)
)

// NewDetail creates the detail screen for milestone id.
func NewDetail(svc *session.Service, id string) *DetailScreen {
	return &DetailScreen{svc: svc, id: id}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }

func (d *DetailScreen) Title() string {
	return titleOf(d.svc.State().Catalog(), d.id)
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return layout.HintsFor(keys.Complete, keys.Focus, keys.Back)
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case CompletedMsg:
		d.flash = completedFlash(d.svc.State().Catalog(), msg)
	case FocusedMsg:
		d.flash = focusedFlash(d.svc.State().Catalog(), msg)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Complete):
			return d, completeCmd(d.svc, d.id)
		case key.Matches(msg, keys.Focus):
			return d, focusCmd(d.svc, d.id)
		}
	}
	return d, nil
}

func (d *DetailScreen) View(width, height int) string {
	sel, ok := roadmap.Select(d.svc.State().Catalog(), d.id)
	if !ok {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("This milestone is no longer in the roadmap"))
	}
	view, err := d.svc.View()
	if err != nil {
		return theme.Warning.Render(err.Error())
	}

	m := sel.Milestone
	status := view.Statuses[m.ID]
	contentWidth := min(width-8, 72)
	dim := theme.Dim
	val := theme.Body

	var b strings.Builder

	b.WriteString(theme.Title.Render(fmt.Sprintf("  %s  %s", status.Icon(), m.Title)))
	b.WriteString("\n")
	label := status.Label()
	if view.Focus == m.ID {
		label += " · focus"
	}
	b.WriteString(lipgloss.NewStyle().Foreground(theme.StatusColor(status)).Render("  " + label))
	b.WriteString("\n\n")

	if m.Description != "" {
		b.WriteString(val.Width(contentWidth).PaddingLeft(2).Render(m.Description))
		b.WriteString("\n\n")
	}

	b.WriteString(dim.Render("  Category:  ") + val.Render(m.Category.DisplayName()) + "\n")
	if len(m.Skills) > 0 {
		b.WriteString(dim.Render("  Skills:    ") + val.Render(strings.Join(m.Skills, ", ")) + "\n")
	}
	if m.Deadline != nil {
		b.WriteString(dim.Render("  Deadline:  ") + val.Render(m.Deadline.Local().Format("Jan 02, 2006")) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("  Resources"))
	b.WriteString("\n")
	if len(sel.Resources) == 0 {
		b.WriteString(theme.Hint.Render("  No resources yet") + "\n")
	}
	for _, r := range sel.Resources {
		line := fmt.Sprintf("  %s %s", r.Kind.Icon(), r.Title)
		var meta []string
		if r.Duration != "" {
			meta = append(meta, r.Duration)
		}
		if r.Difficulty != "" {
			meta = append(meta, string(r.Difficulty))
		}
		b.WriteString(val.Render(line))
		if len(meta) > 0 {
			b.WriteString(dim.Render("  (" + strings.Join(meta, ", ") + ")"))
		}
		b.WriteString("\n")
		b.WriteString(dim.Render("    "+r.URL) + "\n")
	}
	b.WriteString("\n")

	if len(sel.Companies) > 0 {
		b.WriteString(theme.Section.Render("  Relevant at"))
		b.WriteString("\n")
		b.WriteString(val.Render("  "+strings.Join(sel.Companies, " · ")) + "\n\n")
	}

	if len(sel.Prerequisites) > 0 {
		b.WriteString(theme.Section.Render("  Prerequisites"))
		b.WriteString("\n")
		for _, p := range sel.Prerequisites {
			icon, style := "○", dim
			if view.Statuses[p.ID] == progress.StatusCompleted {
				icon, style = "●", lipgloss.NewStyle().Foreground(theme.Success)
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s", icon, p.Title)) + "\n")
		}
		b.WriteString("\n")
	}

	if len(sel.NextSteps) > 0 {
		b.WriteString(theme.Section.Render("  Unlocks"))
		b.WriteString("\n")
		for _, n := range sel.NextSteps {
			b.WriteString(dim.Render(fmt.Sprintf("  → %s", n.Title)) + "\n")
		}
	}

	if d.flash.text != "" {
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if d.flash.err {
			style = lipgloss.NewStyle().Foreground(theme.Error)
		}
		b.WriteString("\n" + style.Render("  "+d.flash.text))
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, "\n"+b.String())
}
