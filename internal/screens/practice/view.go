package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmaprep/internal/content"
	prac "github.com/abhisek/fmaprep/internal/practice"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/layout"
	"github.com/abhisek/fmaprep/internal/ui/richtext"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch s.stage {
	case stageSummary:
		return layout.Overlay(s.renderSummary(), width, height)
	case stageQuestion:
		if s.confirmQuit {
			return layout.Overlay(renderQuitConfirm(), width, height)
		}
		return s.renderQuestion(width, height)
	default:
		return s.renderSetup(width, height)
	}
}

func (s *Screen) renderSetup(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Heading.Render("Choose topics"))
	b.WriteString("\n\n")
	b.WriteString(s.topics.View())
	b.WriteString("\n")

	mode := theme.Muted.Render("[ ] Timed")
	if s.timed {
		mode = theme.Selected.Render("[x] Timed")
	}
	b.WriteString(mode)
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %d s per question, one shared clock", prac.SecondsPerQuestion)))
	b.WriteString("\n\n")

	picked := s.topics.Checked()
	b.WriteString(theme.Body.Render(fmt.Sprintf("%d questions selected", s.catalog.CountFor(picked))))
	if s.setupErr != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.setupErr))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, components.Card("", b.String(), cw))
}

func (s *Screen) renderQuestion(width, height int) string {
	q, ok := s.ctrl.Current()
	if !ok {
		return ""
	}
	inner := max(width-4, 20)

	info := s.renderInfo(q, inner)
	rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", inner))

	var b strings.Builder
	b.WriteString(richtext.Render(q.Text, inner, s.math))
	b.WriteString("\n\n")

	mc := s.choices
	mc.Options = make([]string, len(q.Options))
	for i, opt := range q.Options {
		mc.Options[i] = s.math.Render(opt)
	}
	mc.Width = inner
	b.WriteString(mc.View())

	if s.ctrl.Revealed() {
		b.WriteString("\n")
		b.WriteString(s.renderSolution(q, inner))
	}

	header := "  " + info + "\n  " + rule + "\n"
	s.body.SetWidth(width)
	s.body.SetHeight(max(height-lipgloss.Height(header)-1, 1))
	s.body.SetContent(indent(b.String(), "  "))
	return header + "\n" + s.body.View()
}

func (s *Screen) renderInfo(q content.Question, width int) string {
	idx, total := s.ctrl.Position()
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(q.Topic) +
		theme.Muted.Render(" · "+string(q.Difficulty))

	right := theme.Muted.Render(fmt.Sprintf("Q %d/%d  ", idx+1, total)) +
		theme.Correct.Render(fmt.Sprintf("✓ %d", s.ctrl.Score()))
	if s.ctrl.Timed() {
		secs := s.ctrl.TimeLeft()
		clock := fmt.Sprintf("  ⏱ %d:%02d", secs/60, secs%60)
		style := lipgloss.NewStyle().Foreground(theme.Accent)
		if secs <= 30 {
			style = theme.Incorrect
		}
		right += style.Render(clock)
	}

	gap := max(width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	line := left + strings.Repeat(" ", gap) + right

	bar := components.NewProgressBar("", float64(idx)/float64(max(total, 1)), width)
	return line + "\n  " + bar.View()
}

func (s *Screen) renderSolution(q content.Question, width int) string {
	var b strings.Builder
	chosen, _ := s.ctrl.Chosen()
	if q.IsCorrect(chosen) {
		b.WriteString(theme.Correct.Render("Correct!"))
	} else {
		b.WriteString(theme.Incorrect.Render(fmt.Sprintf("Not quite. The answer is (%s).",
			components.OptionLabel(q.CorrectIndex))))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Heading.Render("Solution"))
	b.WriteString("\n")
	b.WriteString(richtext.Render(q.Solution, width, s.math))

	switch {
	case s.exp != nil:
		b.WriteString("\n\n")
		b.WriteString(components.Card("Tutor", s.renderExplanation(s.exp, width-6), width))
	case s.explaining:
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render("Asking the tutor..."))
	case s.explainErr != "":
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.explainErr))
	}
	return b.String()
}

func (s *Screen) renderExplanation(exp *tutor.Explanation, width int) string {
	return richtext.Render(exp.Markup(), width, s.math)
}

func (s *Screen) renderSummary() string {
	sum := s.summary

	var headline string
	switch sum.Reason {
	case prac.ReasonTimeout:
		headline = "Time's up!"
	case prac.ReasonEnded:
		headline = "Session ended"
	default:
		headline = "Session complete!"
	}

	var b strings.Builder
	b.WriteString(theme.Title.Render(headline))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("Score      %d / %d", sum.Score, sum.Total)))
	b.WriteString("\n")
	b.WriteString(theme.Muted.Render(fmt.Sprintf("Answered   %d", sum.Answered)))
	b.WriteString("\n")
	if sum.Timed {
		b.WriteString(theme.Muted.Render(fmt.Sprintf("Time left  %d:%02d", sum.TimeLeft/60, sum.TimeLeft%60)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(fmt.Sprintf("+%d XP", sum.XPAwarded)))
	b.WriteString("\n\n")
	b.WriteString(s.modal.View())

	return theme.Modal.Render(b.String())
}

func renderQuitConfirm() string {
	return theme.Modal.Render(
		theme.Heading.Render("End this session?") + "\n\n" +
			theme.Body.Render("Your score so far still earns XP.") + "\n\n" +
			theme.Hint.Render("y to end, n to keep going"))
}

func indent(s, pad string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = pad + l
		}
	}
	return strings.Join(lines, "\n")
}
