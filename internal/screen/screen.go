// Package screen defines what the router and app expect from a screen.
package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fmaprep/internal/ui/layout"
)

// Screen is one full-window view.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the content area, excluding header and footer.
	View(width, height int) string

	// Title is shown in the header.
	Title() string
}

// KeyHintProvider lets a screen supply its own footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// EscapeCapturer is implemented by screens that handle esc themselves,
// for example to close a modal or clear a filter, instead of letting the
// app pop them.
type EscapeCapturer interface {
	CapturesEscape() bool
}
