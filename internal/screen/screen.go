package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/careerpath/internal/ui/layout"
)

// Screen is one page of the roadmap TUI.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider is implemented by screens with their own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Refresher is implemented by screens that cache catalog-derived rows and
// must rebuild them after a catalog reload.
type Refresher interface {
	Refresh()
}

// InputCapturer is implemented by screens that temporarily own every key,
// e.g. while a filter box is open. The app then skips its global Esc.
type InputCapturer interface {
	CapturingInput() bool
}
