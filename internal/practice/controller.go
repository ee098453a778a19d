// Package practice runs a single practice session: topic selection,
// question sequencing, scoring, an optional shared countdown and the final
// summary.
package practice

import (
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/xp"
)

// QuestionSource supplies the question bank. *content.Catalog satisfies it.
type QuestionSource interface {
	HasTopic(name string) bool
	QuestionsFor(topics []string) []content.Question
}

// Option configures a Controller.
type Option func(*Controller)

// WithShuffle replaces the permutation function. It must have the
// signature and semantics of rand.Shuffle.
func WithShuffle(fn func(n int, swap func(i, j int))) Option {
	return func(c *Controller) { c.shuffle = fn }
}

// WithIDGenerator replaces the session ID generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Controller) { c.newID = fn }
}

// WithLogger sets the logger for session events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// Controller owns one practice run at a time. It is not safe for
// concurrent use; drive it from a single event loop.
type Controller struct {
	source  QuestionSource
	shuffle func(n int, swap func(i, j int))
	newID   func() string
	logger  *zap.Logger

	phase  Phase
	topics []string
	timed  bool

	sessionID  string
	questions  []content.Question
	pos        int
	score      int
	answered   int
	chosen     int
	timeLeft   int
	timerArmed bool

	summary *Summary
}

// NewController creates an unconfigured controller.
func NewController(source QuestionSource, opts ...Option) *Controller {
	c := &Controller{
		source:  source,
		shuffle: rand.Shuffle,
		newID:   func() string { return uuid.New().String() },
		logger:  zap.NewNop(),
		chosen:  -1,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Configure sets the topic selection and timing mode. An empty topic set
// is accepted here but Start will refuse it. Fails while a session is in
// progress or summarized.
func (c *Controller) Configure(topics []string, timed bool) error {
	switch {
	case c.phase.InProgress():
		return ErrSessionActive
	case c.phase == PhaseSummarized:
		return ErrSummarized
	}

	var selected []string
	for _, t := range topics {
		if !c.source.HasTopic(t) {
			return fmt.Errorf("%w: %q", ErrUnknownTopic, t)
		}
		if !slices.Contains(selected, t) {
			selected = append(selected, t)
		}
	}

	c.topics = selected
	c.timed = timed
	c.phase = PhaseConfigured
	return nil
}

// Start begins a session over every question in the configured topics,
// in a fresh random order. A timed session gets a shared budget of
// SecondsPerQuestion for each question.
func (c *Controller) Start() error {
	switch {
	case c.phase.InProgress():
		return ErrSessionActive
	case c.phase == PhaseSummarized:
		return ErrSummarized
	case c.phase != PhaseConfigured:
		return ErrNotConfigured
	case len(c.topics) == 0:
		return ErrNoTopics
	}

	qs := c.source.QuestionsFor(c.topics)
	if len(qs) == 0 {
		return ErrNoQuestions
	}
	c.shuffle(len(qs), func(i, j int) { qs[i], qs[j] = qs[j], qs[i] })

	c.sessionID = c.newID()
	c.questions = qs
	c.pos = 0
	c.score = 0
	c.answered = 0
	c.chosen = -1
	c.summary = nil
	c.timeLeft = 0
	c.timerArmed = c.timed
	if c.timed {
		c.timeLeft = SecondsPerQuestion * len(qs)
	}
	c.phase = PhaseAnswering

	c.logger.Info("practice session started",
		zap.String("session_id", c.sessionID),
		zap.Strings("topics", c.topics),
		zap.Int("questions", len(qs)),
		zap.Bool("timed", c.timed),
		zap.Int("time_budget_secs", c.timeLeft),
	)
	return nil
}

// SubmitAnswer records the chosen option for the current question and
// reveals its solution. It is a no-op (accepted=false) when no question
// is awaiting an answer, including when the solution is already revealed,
// and when optionIndex is out of range.
func (c *Controller) SubmitAnswer(optionIndex int) (correct, accepted bool) {
	if c.phase != PhaseAnswering {
		return false, false
	}
	q := c.questions[c.pos]
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return false, false
	}

	c.chosen = optionIndex
	c.answered++
	correct = q.IsCorrect(optionIndex)
	if correct {
		c.score++
	}
	c.phase = PhaseRevealed
	return correct, true
}

// Advance moves past a revealed question. After the last question it
// ends the session and returns the summary. Advancing before the solution
// is revealed is rejected with ErrNotRevealed and changes nothing.
func (c *Controller) Advance() (*Summary, error) {
	switch c.phase {
	case PhaseRevealed:
	case PhaseAnswering:
		return nil, ErrNotRevealed
	default:
		return nil, ErrNotInProgress
	}

	if c.pos+1 < len(c.questions) {
		c.pos++
		c.chosen = -1
		c.phase = PhaseAnswering
		return nil, nil
	}
	s := c.finish(ReasonCompleted)
	return &s, nil
}

// EndSession ends a running session and returns its summary with
// ended=true. Once summarized, later calls return the same summary with
// ended=false. Without any session it returns the zero Summary.
func (c *Controller) EndSession() (s Summary, ended bool) {
	if c.phase == PhaseSummarized && c.summary != nil {
		return *c.summary, false
	}
	if !c.phase.InProgress() {
		return Summary{}, false
	}
	return c.finish(ReasonEnded), true
}

// Tick advances the shared countdown by one second. It does nothing
// unless a timed session is in progress. When the countdown reaches zero
// the session ends and the summary is returned; this happens once.
func (c *Controller) Tick() *Summary {
	if !c.timerArmed || !c.phase.InProgress() {
		return nil
	}
	c.timeLeft--
	if c.timeLeft > 0 {
		return nil
	}
	c.timeLeft = 0
	s := c.finish(ReasonTimeout)
	return &s
}

// Reset discards any session and configuration.
func (c *Controller) Reset() {
	if c.phase.InProgress() {
		c.logger.Info("practice session discarded", zap.String("session_id", c.sessionID))
	}
	c.phase = PhaseUnconfigured
	c.topics = nil
	c.timed = false
	c.clearSession()
	c.sessionID = ""
	c.summary = nil
}

// finish disarms the countdown, collapses the session into a summary and
// discards per-session state.
func (c *Controller) finish(reason EndReason) Summary {
	c.timerArmed = false

	s := Summary{
		SessionID: c.sessionID,
		Topics:    slices.Clone(c.topics),
		Score:     c.score,
		Total:     len(c.questions),
		Answered:  c.answered,
		XPAwarded: xp.ForScore(c.score),
		Timed:     c.timed,
		TimeLeft:  c.timeLeft,
		Reason:    reason,
	}
	c.summary = &s
	c.phase = PhaseSummarized
	c.clearSession()

	c.logger.Info("practice session finished",
		zap.String("session_id", s.SessionID),
		zap.String("reason", string(reason)),
		zap.Int("score", s.Score),
		zap.Int("total", s.Total),
		zap.Int("xp_awarded", s.XPAwarded),
	)
	return s
}

func (c *Controller) clearSession() {
	c.questions = nil
	c.pos = 0
	c.score = 0
	c.answered = 0
	c.chosen = -1
	c.timeLeft = 0
	c.timerArmed = false
}

// Phase returns the current life-cycle state.
func (c *Controller) Phase() Phase { return c.phase }

// Topics returns the configured topics.
func (c *Controller) Topics() []string { return slices.Clone(c.topics) }

// Timed reports whether the configuration enables the countdown.
func (c *Controller) Timed() bool { return c.timed }

// SessionID returns the ID of the running or most recently finished session.
func (c *Controller) SessionID() string { return c.sessionID }

// Current returns the question being shown.
func (c *Controller) Current() (content.Question, bool) {
	if !c.phase.InProgress() {
		return content.Question{}, false
	}
	return c.questions[c.pos], true
}

// Position returns the zero-based index of the current question and the
// session length.
func (c *Controller) Position() (index, total int) {
	return c.pos, len(c.questions)
}

// Score returns the number of correct answers so far.
func (c *Controller) Score() int { return c.score }

// Answered returns the number of questions answered so far.
func (c *Controller) Answered() int { return c.answered }

// TimeLeft returns the remaining countdown in seconds.
func (c *Controller) TimeLeft() int { return c.timeLeft }

// TimerArmed reports whether ticks currently count down.
func (c *Controller) TimerArmed() bool { return c.timerArmed }

// Revealed reports whether the current question's solution is showing.
func (c *Controller) Revealed() bool { return c.phase == PhaseRevealed }

// Chosen returns the option picked for the current question.
func (c *Controller) Chosen() (int, bool) {
	if c.phase != PhaseRevealed {
		return 0, false
	}
	return c.chosen, true
}

// Summary returns the summary of the finished session.
func (c *Controller) Summary() (Summary, bool) {
	if c.phase != PhaseSummarized || c.summary == nil {
		return Summary{}, false
	}
	return *c.summary, true
}
