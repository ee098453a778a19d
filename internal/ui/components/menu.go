package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// MenuItem is one entry of a vertical menu. Key, when set, activates the
// item directly.
type MenuItem struct {
	Label    string
	Key      string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical navigation menu that skips disabled items.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items}
	for i, item := range items {
		if !item.Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) move(step int) Menu {
	for i := m.Selected + step; i >= 0 && i < len(m.Items); i += step {
		if !m.Items[i].Disabled {
			m.Selected = i
			break
		}
	}
	return m
}

func (m Menu) activate(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) {
		return nil
	}
	item := m.Items[i]
	if item.Disabled || item.Action == nil {
		return nil
	}
	return item.Action()
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		return m.move(-1), nil
	case "down", "j":
		return m.move(1), nil
	case "enter":
		return m, m.activate(m.Selected)
	}
	for i, item := range m.Items {
		if item.Key != "" && item.Key == key && !item.Disabled {
			m.Selected = i
			return m, m.activate(i)
		}
	}
	return m, nil
}

// View renders the menu as plain rows.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Disabled:
			b.WriteString(theme.Muted.Render("  " + item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render(Cursor) + theme.Selected.Render(item.Label) + labelSuffix(item))
		default:
			b.WriteString("  " + theme.Unselected.Render(item.Label) + labelSuffix(item))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func labelSuffix(item MenuItem) string {
	if item.Key == "" {
		return ""
	}
	return theme.Muted.Render("  [" + item.Key + "]")
}
