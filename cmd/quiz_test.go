package cmd

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/practice"
)

func noShuffle(int, func(i, j int)) {}

func startQuiz(t *testing.T, topics []string, timed bool) (*quiz, *bytes.Buffer, []content.Question) {
	t.Helper()
	cat, err := content.Default()
	require.NoError(t, err)

	ctrl := practice.NewController(cat, practice.WithShuffle(noShuffle))
	require.NoError(t, ctrl.Configure(topics, timed))
	require.NoError(t, ctrl.Start())

	var out bytes.Buffer
	q := &quiz{ctrl: ctrl, math: mathrender.NewRenderer(mathrender.NewUnicodeEngine()), out: &out}
	return q, &out, cat.QuestionsFor(topics)
}

func letter(i int) string { return string(rune('A' + i)) }

func TestQuizRunToCompletion(t *testing.T) {
	q, out, questions := startQuiz(t, []string{"Kinematics"}, false)
	require.NotEmpty(t, questions)

	var in strings.Builder
	in.WriteString("zz\n") // rejected
	for i, qq := range questions {
		if i == 0 {
			in.WriteString(letter(qq.CorrectIndex) + "\n")
		} else {
			in.WriteString(letter((qq.CorrectIndex+1)%len(qq.Options)) + "\n")
		}
		in.WriteString("\n")
	}

	sum, err := q.run(context.Background(), strings.NewReader(in.String()), nil)
	require.NoError(t, err)
	assert.Equal(t, practice.ReasonCompleted, sum.Reason)
	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, len(questions), sum.Total)
	assert.Equal(t, len(questions), sum.Answered)
	assert.Equal(t, 25, sum.XPAwarded)

	text := ansi.Strip(out.String())
	assert.Contains(t, text, "Question 1/")
	assert.Contains(t, text, "Answer with a letter")
	assert.Contains(t, text, "Correct!")
	assert.Contains(t, text, "Incorrect. The answer is")
}

func TestQuizQuitEarly(t *testing.T) {
	q, _, questions := startQuiz(t, []string{"Dynamics"}, false)
	in := letter(questions[0].CorrectIndex) + "\nq\n"

	sum, err := q.run(context.Background(), strings.NewReader(in), nil)
	require.NoError(t, err)
	assert.Equal(t, practice.ReasonEnded, sum.Reason)
	assert.Equal(t, 1, sum.Score)
	assert.Equal(t, 1, sum.Answered)
}

func TestQuizEOFEndsSession(t *testing.T) {
	q, _, _ := startQuiz(t, []string{"Momentum"}, false)
	sum, err := q.run(context.Background(), strings.NewReader(""), nil)
	require.NoError(t, err)
	assert.Equal(t, practice.ReasonEnded, sum.Reason)
	assert.Zero(t, sum.Answered)
}

func TestQuizTimeout(t *testing.T) {
	q, out, questions := startQuiz(t, []string{"Gravitation"}, true)

	pr, pw := io.Pipe()
	defer pw.Close()
	ticks := make(chan time.Time)
	done := make(chan practice.Summary, 1)
	go func() {
		s, err := q.run(context.Background(), pr, ticks)
		assert.NoError(t, err)
		done <- s
	}()

	budget := len(questions) * practice.SecondsPerQuestion
	for range budget {
		ticks <- time.Time{}
	}
	select {
	case s := <-done:
		assert.Equal(t, practice.ReasonTimeout, s.Reason)
		assert.True(t, s.Timed)
		assert.Zero(t, s.TimeLeft)
	case <-time.After(5 * time.Second):
		t.Fatal("quiz did not end on timeout")
	}
	assert.Contains(t, out.String(), "Time's up!")
}

func TestQuizContextCancel(t *testing.T) {
	q, _, _ := startQuiz(t, []string{"Kinematics"}, false)
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sum, err := q.run(ctx, pr, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, practice.ReasonEnded, sum.Reason)
}

func TestParseChoice(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want int
		ok   bool
	}{
		{"a", 4, 0, true},
		{"D", 4, 3, true},
		{"e", 4, 4, false},
		{"1", 4, 0, true},
		{"4", 4, 3, true},
		{"5", 4, 4, false},
		{"0", 4, -1, false},
		{"", 4, 0, false},
		{"ab", 4, 0, false},
		{"?", 4, 0, false},
	}
	for _, tt := range tests {
		got, ok := parseChoice(tt.in, tt.n)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestResolveTopics(t *testing.T) {
	cat, err := content.Default()
	require.NoError(t, err)

	all, err := resolveTopics(cat, nil)
	require.NoError(t, err)
	assert.Equal(t, cat.TopicNames(), all)

	got, err := resolveTopics(cat, []string{"energy-and-work", "kinematics"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Energy & Work", "Kinematics"}, got)

	_, err = resolveTopics(cat, []string{"optics"})
	assert.ErrorContains(t, err, `unknown topic "optics"`)
}

func TestPrintSummary(t *testing.T) {
	var b bytes.Buffer
	printSummary(&b, practice.Summary{
		Score: 3, Total: 4, Answered: 4, XPAwarded: 75,
		Timed: true, TimeLeft: 65, Reason: practice.ReasonTimeout,
	}, 260)

	text := b.String()
	assert.Contains(t, text, "Time's up!")
	assert.Contains(t, text, "Score: 3/4 (4 answered)")
	assert.Contains(t, text, "Time left: 1:05")
	assert.Contains(t, text, "XP earned: +75")
	assert.Contains(t, text, "Total XP: 260 (Gold)")
}
