package practice

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/llm"
	"github.com/abhisek/fmaprep/internal/mathrender"
	prac "github.com/abhisek/fmaprep/internal/practice"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/ui/components"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func identity(int, func(i, j int)) {}

func testScreen(t *testing.T, svc *tutor.Service) (*Screen, *prac.Controller, *content.Catalog) {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)
	ctrl := prac.NewController(cat, prac.WithShuffle(identity))
	s := New(cat, mathrender.NewRenderer(mathrender.NewUnicodeEngine()), svc, WithController(ctrl))
	return s, ctrl, cat
}

// send delivers msg and returns the message its command produces, if any.
func send(t *testing.T, s *Screen, msg tea.Msg) tea.Msg {
	t.Helper()
	_, cmd := s.Update(msg)
	if cmd == nil {
		return nil
	}
	return cmd()
}

// startKinematics selects the first topic and starts an untimed run.
func startKinematics(t *testing.T, s *Screen) {
	t.Helper()
	send(t, s, specialKey(tea.KeySpace))
	send(t, s, specialKey(tea.KeyEnter))
	require.Equal(t, stageQuestion, s.stage)
}

func TestSetup_RequiresTopic(t *testing.T) {
	s, ctrl, _ := testScreen(t, nil)

	assert.Nil(t, send(t, s, specialKey(tea.KeyEnter)))
	assert.Equal(t, stageSetup, s.stage)
	assert.Contains(t, s.setupErr, "at least one topic")
	assert.False(t, ctrl.Phase().InProgress())
	assert.False(t, s.CapturesEscape())
}

func TestSetup_StartsSession(t *testing.T) {
	s, ctrl, _ := testScreen(t, nil)
	startKinematics(t, s)

	assert.Equal(t, prac.PhaseAnswering, ctrl.Phase())
	assert.Equal(t, []string{"Kinematics"}, ctrl.Topics())
	assert.False(t, ctrl.TimerArmed())
	assert.True(t, s.CapturesEscape())
	assert.Contains(t, s.View(100, 40), "Q 1/")
}

func TestAnswerAndAdvance(t *testing.T) {
	s, ctrl, _ := testScreen(t, nil)
	startKinematics(t, s)
	q, _ := ctrl.Current()

	// letter keys answer directly
	msg := send(t, s, keyPress('a'+rune(q.CorrectIndex)))
	require.Equal(t, components.ChoiceMsg{Index: q.CorrectIndex}, msg)
	send(t, s, msg)

	assert.True(t, ctrl.Revealed())
	assert.Equal(t, 1, ctrl.Score())
	assert.Contains(t, s.View(100, 200), "Correct!")

	// a second answer is ignored
	send(t, s, components.ChoiceMsg{Index: 0})
	assert.Equal(t, 1, ctrl.Score())

	send(t, s, specialKey(tea.KeyEnter))
	idx, _ := ctrl.Position()
	assert.Equal(t, 1, idx)
	assert.False(t, ctrl.Revealed())
}

func TestRunToCompletion(t *testing.T) {
	s, ctrl, cat := testScreen(t, nil)
	startKinematics(t, s)
	n := cat.CountFor([]string{"Kinematics"})

	var done tea.Msg
	for i := 0; i < n; i++ {
		q, ok := ctrl.Current()
		require.True(t, ok)
		send(t, s, components.ChoiceMsg{Index: q.CorrectIndex})
		done = send(t, s, specialKey(tea.KeyEnter))
	}

	complete, ok := done.(SessionCompleteMsg)
	require.True(t, ok, "last advance should report the session, got %#v", done)
	assert.Equal(t, n, complete.Summary.Score)
	assert.Equal(t, n, complete.Summary.Total)
	assert.Equal(t, n*25, complete.Summary.XPAwarded)
	assert.Equal(t, prac.ReasonCompleted, complete.Summary.Reason)
	assert.Equal(t, stageSummary, s.stage)
	assert.Contains(t, s.View(100, 40), "Session complete!")
}

func TestQuitConfirm(t *testing.T) {
	s, ctrl, _ := testScreen(t, nil)
	startKinematics(t, s)

	send(t, s, specialKey(tea.KeyEscape))
	assert.True(t, s.confirmQuit)

	send(t, s, keyPress('n'))
	assert.False(t, s.confirmQuit)
	assert.True(t, ctrl.Phase().InProgress())

	send(t, s, specialKey(tea.KeyEscape))
	msg := send(t, s, keyPress('y'))
	complete, ok := msg.(SessionCompleteMsg)
	require.True(t, ok)
	assert.Equal(t, prac.ReasonEnded, complete.Summary.Reason)
	assert.Equal(t, 0, complete.Summary.XPAwarded)
}

func TestSummaryButtons(t *testing.T) {
	s, ctrl, _ := testScreen(t, nil)
	startKinematics(t, s)
	send(t, s, specialKey(tea.KeyEscape))
	send(t, s, keyPress('y'))
	require.Equal(t, stageSummary, s.stage)

	// "Practice again" is focused first
	msg := send(t, s, specialKey(tea.KeyEnter))
	require.IsType(t, againMsg{}, msg)
	send(t, s, msg)
	assert.Equal(t, stageSetup, s.stage)
	assert.Equal(t, prac.PhaseUnconfigured, ctrl.Phase())
	assert.Equal(t, []string{"Kinematics"}, s.topics.Checked(), "selection survives a reset")

	send(t, s, specialKey(tea.KeyEnter))
	require.Equal(t, stageQuestion, s.stage)
	send(t, s, specialKey(tea.KeyEscape))
	send(t, s, keyPress('y'))
	send(t, s, specialKey(tea.KeyRight))
	msg = send(t, s, specialKey(tea.KeyEnter))
	assert.IsType(t, router.PopScreenMsg{}, msg)
}

func TestTimedTicks(t *testing.T) {
	s, ctrl, cat := testScreen(t, nil)
	send(t, s, specialKey(tea.KeySpace))
	send(t, s, keyPress('t'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd, "a timed start arms the first tick")
	require.True(t, ctrl.TimerArmed())

	n := cat.CountFor([]string{"Kinematics"})
	assert.Equal(t, 90*n, ctrl.TimeLeft())

	_, cmd = s.Update(tickMsg{sessionID: "someone-else"})
	assert.Nil(t, cmd)
	assert.Equal(t, 90*n, ctrl.TimeLeft())

	_, cmd = s.Update(tickMsg{sessionID: ctrl.SessionID()})
	assert.NotNil(t, cmd)
	assert.Equal(t, 90*n-1, ctrl.TimeLeft())

	id := ctrl.SessionID()
	var final tea.Cmd
	for i := 0; i < 90*n && s.stage == stageQuestion; i++ {
		_, final = s.Update(tickMsg{sessionID: id})
	}
	require.Equal(t, stageSummary, s.stage)
	complete, ok := final().(SessionCompleteMsg)
	require.True(t, ok)
	assert.Equal(t, prac.ReasonTimeout, complete.Summary.Reason)

	_, cmd = s.Update(tickMsg{sessionID: id})
	assert.Nil(t, cmd, "no tick is re-armed after the session ends")
}

func TestExplain(t *testing.T) {
	mock := llm.NewMockProvider().Reply(`{"summary":"Use kinematics.","steps":["Step one."],"key_idea":"Constant $a$.","common_mistake":"Sign errors."}`)
	s, ctrl, _ := testScreen(t, tutor.NewService(mock, tutor.DefaultConfig()))
	startKinematics(t, s)

	// not available before the solution is revealed
	send(t, s, keyPress('e'))
	assert.Equal(t, 0, mock.CallCount())

	q, _ := ctrl.Current()
	send(t, s, components.ChoiceMsg{Index: q.CorrectIndex})

	msg := send(t, s, keyPress('e'))
	assert.True(t, s.explaining)
	require.IsType(t, explainDoneMsg{}, msg)
	send(t, s, msg)

	assert.False(t, s.explaining)
	require.NotNil(t, s.exp)
	assert.Equal(t, "Use kinematics.", s.exp.Summary)
	assert.Contains(t, s.renderExplanation(s.exp, 80), "Use kinematics.")
	assert.Equal(t, 1, mock.CallCount())
}

func TestExplain_Disabled(t *testing.T) {
	s, ctrl, _ := testScreen(t, nil)
	startKinematics(t, s)
	q, _ := ctrl.Current()
	send(t, s, components.ChoiceMsg{Index: q.CorrectIndex})

	assert.Nil(t, send(t, s, keyPress('e')))
	assert.False(t, s.explaining)
}
