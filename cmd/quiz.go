package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/practice"
	"github.com/abhisek/fmaprep/internal/tier"
	"github.com/abhisek/fmaprep/internal/ui/richtext"
)

const quizWidth = 80

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Run a practice session in line mode",
	Long: "Run a practice session without the full-screen interface. Answer with a letter " +
		"or number, press Enter to continue after the solution, and type q to stop early.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		e, err := setup(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		cat, err := loadCatalog()
		if err != nil {
			return err
		}
		queries, _ := cmd.Flags().GetStringArray("topic")
		topics, err := resolveTopics(cat, queries)
		if err != nil {
			return err
		}
		timed, _ := cmd.Flags().GetBool("timed")

		st, counter, err := e.openXP(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		ctrl := practice.NewController(cat, practice.WithLogger(e.logger))
		if err := ctrl.Configure(topics, timed); err != nil {
			return err
		}
		if err := ctrl.Start(); err != nil {
			return err
		}

		var ticks <-chan time.Time
		if timed {
			t := time.NewTicker(time.Second)
			defer t.Stop()
			ticks = t.C
		}

		out := cmd.OutOrStdout()
		q := &quiz{ctrl: ctrl, math: e.renderer(), out: out}
		sum, err := q.run(ctx, cmd.InOrStdin(), ticks)
		if err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		// An interrupt still ends the session and keeps what was earned.
		ctx = context.WithoutCancel(ctx)

		total := counter.Total()
		if sum.XPAwarded > 0 {
			total, err = counter.Add(ctx, sum.XPAwarded)
			if err != nil {
				e.logger.Error("xp save failed", zap.Error(err))
				fmt.Fprintln(cmd.ErrOrStderr(), "warning: XP could not be saved:", err)
			}
		}
		printSummary(out, sum, total)
		return nil
	},
}

func init() {
	quizCmd.Flags().StringArrayP("topic", "t", nil, "Topic name or slug to include (repeatable, default all)")
	quizCmd.Flags().Bool("timed", false, "Give the session a shared countdown")
}

// resolveTopics maps user queries to canonical topic names. No queries
// selects every topic.
func resolveTopics(cat *content.Catalog, queries []string) ([]string, error) {
	if len(queries) == 0 {
		return cat.TopicNames(), nil
	}
	topics := make([]string, 0, len(queries))
	for _, q := range queries {
		t, ok := cat.FindTopic(q)
		if !ok {
			return nil, fmt.Errorf("unknown topic %q (see 'fmaprep topics')", q)
		}
		topics = append(topics, t.Name)
	}
	return topics, nil
}

// quiz drives a started controller from line input. All controller calls
// happen on the goroutine running run.
type quiz struct {
	ctrl *practice.Controller
	math *mathrender.Renderer
	out  io.Writer
}

func (q *quiz) run(ctx context.Context, in io.Reader, ticks <-chan time.Time) (practice.Summary, error) {
	readCtx, stop := context.WithCancel(ctx)
	defer stop()

	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-readCtx.Done():
				return
			}
		}
	}()

	q.printQuestion()
	for {
		select {
		case <-ctx.Done():
			s, _ := q.ctrl.EndSession()
			return s, ctx.Err()

		case <-ticks:
			if s := q.ctrl.Tick(); s != nil {
				fmt.Fprintln(q.out, "\nTime's up!")
				return *s, nil
			}

		case line, ok := <-lines:
			if !ok {
				s, _ := q.ctrl.EndSession()
				return s, nil
			}
			if s, done := q.handle(strings.TrimSpace(line)); done {
				return s, nil
			}
		}
	}
}

func (q *quiz) handle(line string) (practice.Summary, bool) {
	if strings.EqualFold(line, "q") || strings.EqualFold(line, "quit") {
		s, _ := q.ctrl.EndSession()
		return s, true
	}

	if q.ctrl.Revealed() {
		s, err := q.ctrl.Advance()
		if err != nil {
			fmt.Fprintln(q.out, err)
			return practice.Summary{}, false
		}
		if s != nil {
			return *s, true
		}
		q.printQuestion()
		return practice.Summary{}, false
	}

	cur, _ := q.ctrl.Current()
	idx, ok := parseChoice(line, len(cur.Options))
	if !ok {
		fmt.Fprintf(q.out, "Answer with a letter A-%c, or q to stop.\n", 'A'+rune(len(cur.Options)-1))
		return practice.Summary{}, false
	}
	correct, _ := q.ctrl.SubmitAnswer(idx)
	if correct {
		fmt.Fprintln(q.out, "\nCorrect!")
	} else {
		fmt.Fprintf(q.out, "\nIncorrect. The answer is (%c).\n", 'A'+rune(cur.CorrectIndex))
	}
	if cur.Solution != "" {
		fmt.Fprintln(q.out, richtext.Render(cur.Solution, quizWidth, q.math))
	}
	fmt.Fprintln(q.out, "\nPress Enter to continue.")
	return practice.Summary{}, false
}

func (q *quiz) printQuestion() {
	cur, ok := q.ctrl.Current()
	if !ok {
		return
	}
	i, n := q.ctrl.Position()
	header := fmt.Sprintf("Question %d/%d · %s · %s", i+1, n, cur.Topic, cur.Difficulty)
	if q.ctrl.TimerArmed() {
		header += " · " + clock(q.ctrl.TimeLeft())
	}
	fmt.Fprintf(q.out, "\n%s\n\n%s\n\n", header, richtext.Render(cur.Text, quizWidth, q.math))
	for j, opt := range cur.Options {
		label := fmt.Sprintf("  (%c) ", 'A'+rune(j))
		body := ansi.Wrap(q.math.Render(opt), quizWidth-len(label), "")
		fmt.Fprintln(q.out, label+strings.ReplaceAll(body, "\n", "\n"+strings.Repeat(" ", len(label))))
	}
	fmt.Fprint(q.out, "\n> ")
}

// parseChoice accepts a letter (a, B) or a 1-based number.
func parseChoice(s string, n int) (int, bool) {
	if s == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v - 1, v >= 1 && v <= n
	}
	if len(s) != 1 {
		return 0, false
	}
	c := s[0] | 0x20
	if c < 'a' || c > 'z' {
		return 0, false
	}
	idx := int(c - 'a')
	return idx, idx < n
}

func clock(secs int) string {
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

func printSummary(w io.Writer, s practice.Summary, total int) {
	headline := "Session complete!"
	switch s.Reason {
	case practice.ReasonTimeout:
		headline = "Time's up!"
	case practice.ReasonEnded:
		headline = "Session ended"
	}
	standing := tier.For(total, tier.Default())

	fmt.Fprintf(w, "\n%s\n", headline)
	fmt.Fprintf(w, "Score: %d/%d (%d answered)\n", s.Score, s.Total, s.Answered)
	if s.Timed {
		fmt.Fprintf(w, "Time left: %s\n", clock(s.TimeLeft))
	}
	fmt.Fprintf(w, "XP earned: +%d\n", s.XPAwarded)
	fmt.Fprintf(w, "Total XP: %d (%s)\n", total, standing.Name)
}
