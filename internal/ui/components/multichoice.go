package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// MaxChoices is the number of options that can be addressed by letter.
const MaxChoices = 9

// ChoiceMsg reports that the learner picked an option.
type ChoiceMsg struct {
	Index int
}

// OptionLabel returns "A" for 0, "B" for 1 and so on.
func OptionLabel(i int) string {
	return string(rune('A' + i))
}

// MultiChoice is a lettered option list. It only tracks the cursor;
// scoring belongs to the caller, which calls Reveal once the answer is in.
type MultiChoice struct {
	Options []string
	Width   int

	cursor   int
	revealed bool
	chosen   int
	correct  int
}

// NewMultiChoice takes options that are already rendered for display.
// Options beyond MaxChoices are dropped.
func NewMultiChoice(options []string, width int) MultiChoice {
	if len(options) > MaxChoices {
		options = options[:MaxChoices]
	}
	return MultiChoice{Options: options, Width: width, chosen: -1, correct: -1}
}

func (m MultiChoice) Cursor() int    { return m.cursor }
func (m MultiChoice) Revealed() bool { return m.revealed }

// Reveal freezes the list and marks the chosen and correct options.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.chosen = chosen
	m.correct = correct
}

// Update moves the cursor and emits a ChoiceMsg on enter, on a letter
// key or on a digit key.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed || len(m.Options) == 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down", "j":
		if m.cursor < len(m.Options)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		return m, choose(m.cursor)
	}

	if len(key) == 1 {
		c := key[0]
		switch {
		case c >= 'a' && c < 'a'+byte(len(m.Options)):
			m.cursor = int(c - 'a')
			return m, choose(m.cursor)
		case c >= '1' && c < '1'+byte(len(m.Options)):
			m.cursor = int(c - '1')
			return m, choose(m.cursor)
		}
	}
	return m, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: i} }
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.cursor && !m.revealed {
			prefix = Cursor
		}
		label := prefix + "(" + OptionLabel(i) + ") "
		indent := lipgloss.Width(label)

		style := theme.Unselected
		switch {
		case m.revealed && i == m.correct:
			style = theme.Correct
			opt += "  ✓"
		case m.revealed && i == m.chosen:
			style = theme.Incorrect
			opt += "  ✗"
		case m.revealed:
			style = theme.Muted
		case i == m.cursor:
			style = theme.Selected
		}

		body := opt
		if m.Width > indent {
			body = ansi.Wrap(opt, m.Width-indent, "")
		}
		lines := strings.Split(body, "\n")
		for j, line := range lines {
			if j == 0 {
				b.WriteString(style.Render(label + line))
			} else {
				b.WriteString(strings.Repeat(" ", indent) + style.Render(line))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
