package practice

import (
	prac "github.com/abhisek/fmaprep/internal/practice"
	"github.com/abhisek/fmaprep/internal/tutor"
)

// SessionCompleteMsg carries a finished session's summary to the app,
// which awards the XP.
type SessionCompleteMsg struct {
	Summary prac.Summary
}

// tickMsg is the one-second countdown tick. It carries the session it
// was armed for so a tick outliving its session is ignored.
type tickMsg struct {
	sessionID string
}

// explainDoneMsg delivers a tutor explanation.
type explainDoneMsg struct {
	questionID string
	chosen     int
	exp        *tutor.Explanation
	err        error
}

// againMsg is sent by the summary modal's "Practice again" button.
type againMsg struct{}
