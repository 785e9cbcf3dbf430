package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerpath/internal/ui/theme"
)

// MenuKeys are the bindings a Menu responds to.
var MenuKeys = struct {
	Up, Down, Select key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "Up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "Down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Select")),
}

// MenuItem is a single entry in a Menu.
type MenuItem struct {
	Label    string
	Detail   string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	selected := 0
	for i, item := range items {
		if !item.Disabled {
			selected = i
			break
		}
	}
	return Menu{Items: items, Selected: selected}
}

// Update handles keyboard navigation.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, MenuKeys.Up):
		m.Selected = m.step(-1)
	case key.Matches(kmsg, MenuKeys.Down):
		m.Selected = m.step(1)
	case key.Matches(kmsg, MenuKeys.Select):
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			item := m.Items[m.Selected]
			if item.Action != nil && !item.Disabled {
				return m, item.Action()
			}
		}
	}
	return m, nil
}

func (m Menu) step(delta int) int {
	for i := m.Selected + delta; i >= 0 && i < len(m.Items); i += delta {
		if !m.Items[i].Disabled {
			return i
		}
	}
	return m.Selected
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		line := "    " + item.Label
		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case item.Disabled:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			line = "  ▸ " + item.Label
			style = theme.Selected
		}
		b.WriteString(style.Render(line))
		if item.Detail != "" {
			b.WriteString("  " + theme.Dim.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
