package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// FilterInput is a one-line search box for narrowing lists.
type FilterInput struct {
	Model  textinput.Model
	active bool
}

// NewFilterInput creates an inactive filter box.
func NewFilterInput(placeholder string) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	return FilterInput{Model: ti}
}

// Active reports whether the box is taking keystrokes.
func (f FilterInput) Active() bool { return f.active }

// Activate focuses the box.
func (f *FilterInput) Activate() tea.Cmd {
	f.active = true
	return f.Model.Focus()
}

// Deactivate stops taking keystrokes but keeps the query.
func (f *FilterInput) Deactivate() {
	f.active = false
	f.Model.Blur()
}

// Clear empties and deactivates the box.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
	f.Deactivate()
}

// Update forwards messages to the text input while active.
func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	if !f.active {
		return f, nil
	}
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

// Query returns the lowercased, trimmed filter text.
func (f FilterInput) Query() string {
	return strings.ToLower(strings.TrimSpace(f.Model.Value()))
}

// Matches reports whether any field contains the query. An empty query
// matches everything.
func (f FilterInput) Matches(fields ...string) bool {
	q := f.Query()
	if q == "" {
		return true
	}
	for _, s := range fields {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

// View renders the box, or nothing when inactive and empty.
func (f FilterInput) View() string {
	if !f.active && f.Model.Value() == "" {
		return ""
	}
	return f.Model.View()
}
