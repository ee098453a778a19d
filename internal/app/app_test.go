package app

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	prac "github.com/abhisek/fmaprep/internal/practice"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/screens/notes"
	"github.com/abhisek/fmaprep/internal/screens/practice"
	"github.com/abhisek/fmaprep/internal/xp"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

type failingStore struct{ xp.MemStore }

func (*failingStore) Set(context.Context, string, string) error { return errors.New("disk full") }

func testModel(t *testing.T, store xp.Store) Model {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	return New(Options{
		Catalog:    cat,
		XP:         xp.Load(context.Background(), store, nil),
		MathEngine: mathrender.EngineUnicode,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out, cmd
}

func TestEngineLoadsAsync(t *testing.T) {
	m := testModel(t, xp.NewMemStore())
	assert.False(t, m.math.Ready())

	msg := loadEngine(mathrender.EngineUnicode)()
	m, _ = update(t, m, msg)
	assert.True(t, m.math.Ready())
}

func TestEngineLoadFailureKeepsSource(t *testing.T) {
	m := testModel(t, xp.NewMemStore())
	m, _ = update(t, m, loadEngine("katex")())
	assert.False(t, m.math.Ready())
	assert.Equal(t, "$x$", m.math.Render("$x$"))
}

func TestSessionCompleteAwardsXP(t *testing.T) {
	store := xp.NewMemStore()
	m := testModel(t, store)

	m, cmd := update(t, m, practice.SessionCompleteMsg{Summary: prac.Summary{Score: 3, XPAwarded: 75}})
	require.NotNil(t, cmd)
	saved, ok := cmd().(xpSavedMsg)
	require.True(t, ok)
	assert.NoError(t, saved.err)
	assert.Equal(t, 75, saved.total)
	assert.Equal(t, 75, m.opts.XP.Total())

	raw, found, err := store.Get(context.Background(), xp.Key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "75", raw)

	// nothing to award
	_, cmd = update(t, m, practice.SessionCompleteMsg{})
	assert.Nil(t, cmd)
}

func TestSaveFailureShowsNotice(t *testing.T) {
	m := testModel(t, &failingStore{})
	m, cmd := update(t, m, practice.SessionCompleteMsg{Summary: prac.Summary{XPAwarded: 25}})
	m, _ = update(t, m, cmd())

	assert.Equal(t, 25, m.opts.XP.Total(), "the in-memory total still moves")
	assert.NotEmpty(t, m.notice)
}

func TestEscape(t *testing.T) {
	m := testModel(t, xp.NewMemStore())

	_, cmd := update(t, m, specialKey(tea.KeyEscape))
	assert.Nil(t, cmd, "esc at the root does nothing")

	// open notes from home, esc pops it
	m, cmd = update(t, m, keyPress('n'))
	m, _ = update(t, m, cmd())
	require.IsType(t, &notes.Screen{}, m.router.Active())
	_, cmd = update(t, m, specialKey(tea.KeyEscape))
	require.NotNil(t, cmd)
	assert.IsType(t, router.PopScreenMsg{}, cmd())
}

func TestEscapeCapturedDuringSession(t *testing.T) {
	m := testModel(t, xp.NewMemStore())
	m, cmd := update(t, m, keyPress('p'))
	m, _ = update(t, m, cmd())
	require.IsType(t, &practice.Screen{}, m.router.Active())

	m, _ = update(t, m, specialKey(tea.KeySpace))
	m, _ = update(t, m, specialKey(tea.KeyEnter))

	_, cmd = update(t, m, specialKey(tea.KeyEscape))
	assert.Nil(t, cmd, "the practice screen opens its confirm dialog instead of popping")
	assert.Equal(t, 2, m.router.Depth())
}

func TestViewHeader(t *testing.T) {
	store := xp.NewMemStore()
	require.NoError(t, store.Set(context.Background(), xp.Key, "260"))
	m := testModel(t, store)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	out := ansi.Strip(m.render())
	assert.Contains(t, out, "F=ma Prep")
	assert.Contains(t, out, "Gold")
	assert.Contains(t, out, "260 XP")
}

func TestViewTooSmall(t *testing.T) {
	m := testModel(t, xp.NewMemStore())
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small")
}

func TestStartInPractice(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)
	m := New(Options{
		Catalog:         cat,
		XP:              xp.Load(context.Background(), xp.NewMemStore(), nil),
		StartInPractice: true,
	})
	require.NotNil(t, m.Init())
}
