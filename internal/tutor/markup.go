package tutor

import (
	"fmt"
	"html"
	"strings"
)

// Markup returns the explanation as the same HTML subset the catalog uses,
// so it can go through the rich text renderer with math intact.
func (e *Explanation) Markup() string {
	var b strings.Builder
	fmt.Fprintf(&b, "<p>%s</p>", html.EscapeString(e.Summary))
	if len(e.Steps) > 0 {
		b.WriteString("<ol>")
		for _, step := range e.Steps {
			fmt.Fprintf(&b, "<li>%s</li>", html.EscapeString(step))
		}
		b.WriteString("</ol>")
	}
	if e.KeyIdea != "" {
		fmt.Fprintf(&b, "<p><b>Key idea:</b> %s</p>", html.EscapeString(e.KeyIdea))
	}
	if e.CommonMistake != "" {
		fmt.Fprintf(&b, "<p><b>Watch out:</b> %s</p>", html.EscapeString(e.CommonMistake))
	}
	return b.String()
}
