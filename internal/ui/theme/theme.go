package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/achievements"
	"github.com/abhisek/careerpath/internal/progress"
)

// Color palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Warning = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)
)

// StatusColor returns the foreground used for a milestone status.
func StatusColor(s progress.Status) color.Color {
	switch s {
	case progress.StatusCompleted:
		return Success
	case progress.StatusInProgress:
		return Secondary
	default:
		return TextDim
	}
}

// RarityColor returns the foreground used for an achievement rarity.
func RarityColor(r achievements.Rarity) color.Color {
	switch r {
	case achievements.RarityRare:
		return Secondary
	case achievements.RarityEpic:
		return Primary
	case achievements.RarityLegendary:
		return Accent
	default:
		return Text
	}
}
