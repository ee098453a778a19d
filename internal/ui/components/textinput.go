package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// FilterInput is a one-line search box. Query returns the trimmed,
// lower-cased value so callers can match case-insensitively.
type FilterInput struct {
	Model textinput.Model
}

func NewFilterInput(placeholder string, width int) FilterInput {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = placeholder
	ti.CharLimit = 64
	if width > 0 {
		ti.SetWidth(width)
	}
	return FilterInput{Model: ti}
}

func (f FilterInput) Focused() bool { return f.Model.Focused() }

func (f *FilterInput) Focus() tea.Cmd { return f.Model.Focus() }

func (f *FilterInput) Blur() { f.Model.Blur() }

// Clear empties the box and blurs it.
func (f *FilterInput) Clear() {
	f.Model.SetValue("")
	f.Model.Blur()
}

func (f FilterInput) Update(msg tea.Msg) (FilterInput, tea.Cmd) {
	var cmd tea.Cmd
	f.Model, cmd = f.Model.Update(msg)
	return f, cmd
}

func (f FilterInput) Value() string { return f.Model.Value() }

func (f FilterInput) Query() string {
	return strings.ToLower(strings.TrimSpace(f.Model.Value()))
}

func (f FilterInput) View() string {
	if !f.Model.Focused() && f.Model.Value() == "" {
		return theme.Hint.Render("/ to filter")
	}
	return f.Model.View()
}
