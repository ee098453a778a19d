package tutor

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a physics olympiad coach preparing students for the F=ma exam and USAPhO. Explain problems rigorously but briefly, the way a strong senior student would at a whiteboard.`

func optionLetter(i int) string {
	return string(rune('A' + i))
}

func buildUserMessage(in Input) string {
	q := in.Question
	var b strings.Builder

	fmt.Fprintf(&b, "Topic: %s\nDifficulty: %s\n\n", q.Topic, q.Difficulty)
	fmt.Fprintf(&b, "Problem:\n%s\n\nOptions:\n", q.Text)
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "(%s) %s\n", optionLetter(i), opt)
	}
	fmt.Fprintf(&b, "\nCorrect answer: (%s)\n", optionLetter(q.CorrectIndex))

	switch {
	case in.Chosen < 0 || in.Chosen >= len(q.Options):
		b.WriteString("The student has not answered.\n")
	case in.Chosen == q.CorrectIndex:
		b.WriteString("The student answered correctly.\n")
	default:
		fmt.Fprintf(&b, "The student chose (%s), which is wrong.\n", optionLetter(in.Chosen))
	}

	if q.Solution != "" {
		fmt.Fprintf(&b, "\nReference solution (HTML):\n%s\n", q.Solution)
	}

	b.WriteString(`
Instructions:
1. Give a short summary of the approach.
2. Work the problem in numbered steps that reach the correct option. Do not skip algebra that changes the physics.
3. State the key physical idea in one sentence.
4. Name the most tempting mistake. If the student chose a wrong option, explain what reasoning produces that option.
5. Write math in LaTeX between single dollar signs, for example $v = v_0 + at$. No HTML, no markdown.`)

	return b.String()
}
