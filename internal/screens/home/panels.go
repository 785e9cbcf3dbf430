package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/progress"
	"github.com/abhisek/careerpath/internal/screens/welcome"
	"github.com/abhisek/careerpath/internal/ui/components"
	"github.com/abhisek/careerpath/internal/ui/theme"
)

// contentWidth returns the shared inner width of every home panel.
func contentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 60)
}

func renderTitle(cw int, compact bool) string {
	w := cw
	if compact {
		w = 0
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(welcome.RenderBanner(w))
}

// renderStatsPanel shows overall progress, status counts and achievements.
func renderStatsPanel(p progress.Progress, unlocked, total, cw int, compact bool) string {
	bar := components.NewProgressBar("", p.OverallPercent, cw-4).View()

	counts := make([]string, 0, 3)
	for _, s := range progress.AllStatuses() {
		style := lipgloss.NewStyle().Foreground(theme.StatusColor(s)).Bold(true)
		if compact {
			counts = append(counts, style.Render(fmt.Sprintf("%s%d", s.Icon(), p.Counts[s])))
		} else {
			counts = append(counts, style.Render(fmt.Sprintf("%s %d %s", s.Icon(), p.Counts[s], strings.ToUpper(s.Label()))))
		}
	}
	achieved := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("★ %d/%d", unlocked, total))

	lines := []string{
		bar,
		lipgloss.PlaceHorizontal(cw-4, lipgloss.Center, strings.Join(counts, "  ")+"  "+achieved),
	}
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

// renderNextUp shows the focus milestone, or the first unlocked one.
func renderNextUp(label, title string, cw int) string {
	if title == "" {
		return ""
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Dim.Render(label+"  ") + theme.Body.Bold(true).Render(title))
}

func renderMenuBox(menu string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(cw).
		Padding(1, 2).
		Render(strings.TrimRight(menu, "\n"))
}
