package practice

import "errors"

// Phase is the controller's life-cycle state.
type Phase int

const (
	PhaseUnconfigured Phase = iota
	PhaseConfigured
	PhaseAnswering
	PhaseRevealed
	PhaseSummarized
)

func (p Phase) String() string {
	switch p {
	case PhaseUnconfigured:
		return "unconfigured"
	case PhaseConfigured:
		return "configured"
	case PhaseAnswering:
		return "answering"
	case PhaseRevealed:
		return "revealed"
	case PhaseSummarized:
		return "summarized"
	default:
		return "unknown"
	}
}

// InProgress reports whether a session is running.
func (p Phase) InProgress() bool {
	return p == PhaseAnswering || p == PhaseRevealed
}

// EndReason records how a session left the in-progress state.
type EndReason string

const (
	// ReasonCompleted means every question was answered and advanced past.
	ReasonCompleted EndReason = "completed"
	// ReasonEnded means the learner ended the session early.
	ReasonEnded EndReason = "ended"
	// ReasonTimeout means the shared countdown reached zero.
	ReasonTimeout EndReason = "timeout"
)

// SecondsPerQuestion is the time budget contributed by each question in
// a timed session. The budget is shared across the whole run.
const SecondsPerQuestion = 90

// Summary is the outcome of a finished session.
type Summary struct {
	SessionID string
	Topics    []string
	Score     int
	Total     int
	Answered  int
	XPAwarded int
	Timed     bool
	TimeLeft  int
	Reason    EndReason
}

var (
	ErrNotConfigured = errors.New("practice: not configured")
	ErrNoTopics      = errors.New("practice: no topics selected")
	ErrNoQuestions   = errors.New("practice: no questions for the selected topics")
	ErrUnknownTopic  = errors.New("practice: unknown topic")
	ErrSessionActive = errors.New("practice: session in progress")
	ErrSummarized    = errors.New("practice: session already summarized, reset first")
	ErrNotRevealed   = errors.New("practice: solution not revealed yet")
	ErrNotInProgress = errors.New("practice: no session in progress")
)
