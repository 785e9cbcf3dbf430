package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar.
type ProgressBar struct {
	Label   string
	Percent float64 // 0..100
	Width   int
	Fill    color.Color
}

// NewProgressBar creates a teal progress bar.
func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width, Fill: theme.Secondary}
}

// View renders the bar followed by the rounded percentage.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	const percentWidth = 6 // "  100%"
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	filled := int(float64(barWidth) * p.Percent / 100)
	filled = min(max(filled, 0), barWidth)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	result += lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += theme.Dim.Render(fmt.Sprintf("  %.0f%%", p.Percent))
	return result
}
