package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// Cursor marks the focused row or button.
const Cursor = "▸ "

// Button is a focusable push button.
type Button struct {
	Label   string
	Focused bool
	OnPress func() tea.Cmd
}

func NewButton(label string, focused bool, onPress func() tea.Cmd) Button {
	return Button{Label: label, Focused: focused, OnPress: onPress}
}

// Update fires OnPress on enter while focused.
func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Focused || b.OnPress == nil {
		return b, nil
	}
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return b, b.OnPress()
	}
	return b, nil
}

func (b Button) View() string {
	if b.Focused {
		return theme.ButtonActive.Render(Cursor + b.Label)
	}
	return theme.ButtonInactive.Render(b.Label)
}

// ButtonRow is a horizontal group of buttons with one focused.
type ButtonRow struct {
	Buttons []Button
	focus   int
}

func NewButtonRow(buttons ...Button) ButtonRow {
	r := ButtonRow{Buttons: buttons}
	r.setFocus(0)
	return r
}

// Focus returns the index of the focused button.
func (r ButtonRow) Focus() int { return r.focus }

func (r *ButtonRow) setFocus(i int) {
	if len(r.Buttons) == 0 {
		return
	}
	r.focus = (i + len(r.Buttons)) % len(r.Buttons)
	for j := range r.Buttons {
		r.Buttons[j].Focused = j == r.focus
	}
}

// Update moves focus with left/right/tab and presses on enter.
func (r ButtonRow) Update(msg tea.Msg) (ButtonRow, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(r.Buttons) == 0 {
		return r, nil
	}
	switch kmsg.String() {
	case "left", "h", "shift+tab":
		r.setFocus(r.focus - 1)
		return r, nil
	case "right", "l", "tab":
		r.setFocus(r.focus + 1)
		return r, nil
	}
	var cmd tea.Cmd
	r.Buttons[r.focus], cmd = r.Buttons[r.focus].Update(msg)
	return r, cmd
}

func (r ButtonRow) View() string {
	parts := make([]string, 0, 2*len(r.Buttons))
	for i, b := range r.Buttons {
		if i > 0 {
			parts = append(parts, "  ")
		}
		parts = append(parts, b.View())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
