package home

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/screens/formulary"
	"github.com/abhisek/fmaprep/internal/screens/notes"
	"github.com/abhisek/fmaprep/internal/screens/practice"
	"github.com/abhisek/fmaprep/internal/screens/resources"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testHome(t *testing.T, xp int) *Screen {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return New(Deps{
		Catalog: cat,
		Math:    mathrender.NewRenderer(nil),
		XP:      func() int { return xp },
	})
}

func pushed(t *testing.T, cmd tea.Cmd) any {
	t.Helper()
	require.NotNil(t, cmd)
	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok, "expected a push")
	return msg.Screen
}

func TestMenuShortcuts(t *testing.T) {
	h := testHome(t, 0)

	tests := []struct {
		key  rune
		want any
	}{
		{'p', &practice.Screen{}},
		{'n', &notes.Screen{}},
		{'f', &formulary.Screen{}},
		{'r', &resources.Screen{}},
	}
	for _, tt := range tests {
		_, cmd := h.Update(keyPress(tt.key))
		assert.IsType(t, tt.want, pushed(t, cmd), "key %q", tt.key)
	}
}

func TestMenuEnter(t *testing.T) {
	h := testHome(t, 0)

	_, cmd := h.Update(specialKey(tea.KeyDown))
	assert.Nil(t, cmd)
	_, cmd = h.Update(specialKey(tea.KeyEnter))
	assert.IsType(t, &notes.Screen{}, pushed(t, cmd))
}

func TestQuit(t *testing.T) {
	h := testHome(t, 0)
	_, cmd := h.Update(keyPress('q'))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestViewShowsStanding(t *testing.T) {
	view := testHome(t, 310).View(120, 40)
	assert.Contains(t, view, "GOLD")
	assert.Contains(t, view, "310 XP")
	assert.Contains(t, view, "190 XP TO PLATINUM")

	top := testHome(t, 9000).View(120, 40)
	assert.Contains(t, top, "UNREAL")
	assert.Contains(t, top, "TOP TIER")
}
