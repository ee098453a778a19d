// Package practice is the practice screen: topic setup, the question
// loop with revealed solutions, and the end-of-session modal.
package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	prac "github.com/abhisek/fmaprep/internal/practice"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/screen"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/layout"
)

type stage int

const (
	stageSetup stage = iota
	stageQuestion
	stageSummary
)

// Screen implements screen.Screen for practice runs.
type Screen struct {
	ctrl    *prac.Controller
	catalog *content.Catalog
	math    *mathrender.Renderer
	tutor   *tutor.Service
	logger  *zap.Logger

	stage    stage
	topics   components.Checklist
	timed    bool
	setupErr string

	choices     components.MultiChoice
	confirmQuit bool
	body        viewport.Model

	explaining bool
	explainFor string
	exp        *tutor.Explanation
	explainErr string

	summary prac.Summary
	modal   components.ButtonRow
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.EscapeCapturer  = (*Screen)(nil)
)

type Option func(*Screen)

// WithController replaces the default controller, e.g. to fix the
// shuffle in tests.
func WithController(c *prac.Controller) Option {
	return func(s *Screen) { s.ctrl = c }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Screen) { s.logger = l }
}

// New creates the screen in its setup stage. tutorSvc may be nil.
func New(catalog *content.Catalog, math *mathrender.Renderer, tutorSvc *tutor.Service, opts ...Option) *Screen {
	s := &Screen{
		catalog: catalog,
		math:    math,
		tutor:   tutorSvc,
		logger:  zap.NewNop(),
		body:    viewport.New(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.ctrl == nil {
		s.ctrl = prac.NewController(catalog, prac.WithLogger(s.logger))
	}

	items := make([]components.ChecklistItem, 0, len(catalog.TopicNames()))
	for _, name := range catalog.TopicNames() {
		items = append(items, components.ChecklistItem{
			Label: name,
			Note:  fmt.Sprintf("%d questions", catalog.CountFor([]string{name})),
		})
	}
	s.topics = components.NewChecklist(items)
	return s
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string {
	switch s.stage {
	case stageQuestion:
		return "Practice"
	case stageSummary:
		return "Session Complete"
	default:
		return "Practice Setup"
	}
}

// CapturesEscape keeps esc inside the screen while a run is going or
// the summary is open.
func (s *Screen) CapturesEscape() bool {
	return s.stage != stageSetup
}

func (s *Screen) KeyHints() []layout.KeyHint {
	switch {
	case s.stage == stageSetup:
		return []layout.KeyHint{
			{Key: "Space", Description: "Toggle topic"},
			{Key: "A", Description: "All"},
			{Key: "T", Description: "Timed"},
			{Key: "Enter", Description: "Start"},
			{Key: "Esc", Description: "Back"},
		}
	case s.stage == stageSummary:
		return []layout.KeyHint{
			{Key: "←→", Description: "Choose"},
			{Key: "Enter", Description: "Select"},
			{Key: "Esc", Description: "Home"},
		}
	case s.confirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "End session"},
			{Key: "N", Description: "Keep going"},
		}
	case s.ctrl.Revealed():
		hints := []layout.KeyHint{
			{Key: "Enter", Description: "Next"},
			{Key: "↑↓", Description: "Scroll"},
		}
		if s.tutor.Enabled() {
			hints = append(hints, layout.KeyHint{Key: "E", Description: "Explain"})
		}
		return append(hints, layout.KeyHint{Key: "Esc", Description: "End"})
	default:
		return []layout.KeyHint{
			{Key: "A-" + components.OptionLabel(len(s.choices.Options)-1), Description: "Answer"},
			{Key: "↑↓", Description: "Move"},
			{Key: "Enter", Description: "Submit"},
			{Key: "Esc", Description: "End"},
		}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		return s.handleTick(msg)
	case components.ChoiceMsg:
		return s.handleChoice(msg)
	case explainDoneMsg:
		return s.handleExplained(msg)
	case againMsg:
		s.again()
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.stage {
	case stageSetup:
		return s.handleSetupKey(msg)
	case stageSummary:
		return s.handleSummaryKey(msg)
	}

	key := msg.String()
	if s.confirmQuit {
		switch key {
		case "y", "Y":
			s.confirmQuit = false
			sum, ended := s.ctrl.EndSession()
			if !ended {
				return s, nil
			}
			return s.complete(sum)
		case "n", "N", "esc":
			s.confirmQuit = false
		}
		return s, nil
	}
	if key == "esc" {
		s.confirmQuit = true
		return s, nil
	}

	if s.ctrl.Revealed() {
		switch key {
		case "enter", "n", "right", "l":
			return s.advance()
		case "e", "E":
			return s.explain()
		}
		var cmd tea.Cmd
		s.body, cmd = s.body.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.choices, cmd = s.choices.Update(msg)
	return s, cmd
}

func (s *Screen) handleSetupKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "t", "T":
		s.timed = !s.timed
		return s, nil
	case "enter":
		return s.start()
	}
	s.setupErr = ""
	s.topics, _ = s.topics.Update(msg)
	return s, nil
}

func (s *Screen) handleSummaryKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if msg.String() == "esc" {
		return s, router.Pop
	}
	var cmd tea.Cmd
	s.modal, cmd = s.modal.Update(msg)
	return s, cmd
}

func (s *Screen) start() (screen.Screen, tea.Cmd) {
	if err := s.ctrl.Configure(s.topics.Checked(), s.timed); err != nil {
		s.setupErr = err.Error()
		return s, nil
	}
	if err := s.ctrl.Start(); err != nil {
		switch {
		case errors.Is(err, prac.ErrNoTopics):
			s.setupErr = "Select at least one topic."
		case errors.Is(err, prac.ErrNoQuestions):
			s.setupErr = "No questions for those topics yet."
		default:
			s.setupErr = err.Error()
		}
		return s, nil
	}

	s.setupErr = ""
	s.stage = stageQuestion
	s.loadQuestion()
	if s.ctrl.TimerArmed() {
		return s, tick(s.ctrl.SessionID())
	}
	return s, nil
}

func tick(sessionID string) tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{sessionID: sessionID}
	})
}

// handleTick is the only place the countdown is re-armed. A tick for a
// session that is over, or any session but the current one, is dropped.
func (s *Screen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	if msg.sessionID != s.ctrl.SessionID() || !s.ctrl.TimerArmed() {
		return s, nil
	}
	if sum := s.ctrl.Tick(); sum != nil {
		s.confirmQuit = false
		return s.complete(*sum)
	}
	return s, tick(msg.sessionID)
}

func (s *Screen) handleChoice(msg components.ChoiceMsg) (screen.Screen, tea.Cmd) {
	q, ok := s.ctrl.Current()
	if !ok {
		return s, nil
	}
	if _, accepted := s.ctrl.SubmitAnswer(msg.Index); accepted {
		s.choices.Reveal(msg.Index, q.CorrectIndex)
		s.body.GotoTop()
	}
	return s, nil
}

func (s *Screen) advance() (screen.Screen, tea.Cmd) {
	sum, err := s.ctrl.Advance()
	if err != nil {
		return s, nil
	}
	if sum != nil {
		return s.complete(*sum)
	}
	s.loadQuestion()
	return s, nil
}

func (s *Screen) loadQuestion() {
	q, ok := s.ctrl.Current()
	if !ok {
		return
	}
	s.choices = components.NewMultiChoice(q.Options, 0)
	s.exp = nil
	s.explainErr = ""
	s.explaining = false
	s.explainFor = ""
	s.body.GotoTop()
}

func (s *Screen) explain() (screen.Screen, tea.Cmd) {
	if !s.tutor.Enabled() || s.explaining || s.exp != nil {
		return s, nil
	}
	q, ok := s.ctrl.Current()
	if !ok {
		return s, nil
	}
	chosen, _ := s.ctrl.Chosen()
	s.explaining = true
	s.explainFor = q.ID
	s.explainErr = ""

	svc := s.tutor
	return s, func() tea.Msg {
		exp, err := svc.Explain(context.Background(), tutor.Input{Question: q, Chosen: chosen})
		return explainDoneMsg{questionID: q.ID, chosen: chosen, exp: exp, err: err}
	}
}

func (s *Screen) handleExplained(msg explainDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.questionID != s.explainFor {
		return s, nil
	}
	s.explaining = false
	if msg.err != nil {
		s.logger.Warn("explanation failed", zap.String("question_id", msg.questionID), zap.Error(msg.err))
		s.explainErr = "Could not get an explanation right now."
		return s, nil
	}
	s.exp = msg.exp
	return s, nil
}

// complete shows the summary modal and hands the result to the app.
func (s *Screen) complete(sum prac.Summary) (screen.Screen, tea.Cmd) {
	s.stage = stageSummary
	s.summary = sum
	s.confirmQuit = false
	s.explaining = false
	s.explainFor = ""
	s.modal = components.NewButtonRow(
		components.NewButton("Practice again", true, func() tea.Cmd {
			return func() tea.Msg { return againMsg{} }
		}),
		components.NewButton("Home", false, func() tea.Cmd { return router.Pop }),
	)
	return s, func() tea.Msg { return SessionCompleteMsg{Summary: sum} }
}

// again resets the controller and returns to setup with the previous
// topic selection kept on screen.
func (s *Screen) again() {
	s.ctrl.Reset()
	s.stage = stageSetup
	s.summary = prac.Summary{}
}
