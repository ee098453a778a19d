package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// ChecklistItem is one toggleable row. Note is drawn dimmed after the
// label, e.g. a question count.
type ChecklistItem struct {
	Label   string
	Note    string
	Checked bool
}

// Checklist is a vertical list of toggles.
type Checklist struct {
	Items  []ChecklistItem
	cursor int
}

func NewChecklist(items []ChecklistItem) Checklist {
	return Checklist{Items: items}
}

func (c Checklist) Cursor() int { return c.cursor }

// Checked returns the labels of checked items in list order.
func (c Checklist) Checked() []string {
	var out []string
	for _, it := range c.Items {
		if it.Checked {
			out = append(out, it.Label)
		}
	}
	return out
}

// SetAll checks or clears every item.
func (c *Checklist) SetAll(v bool) {
	for i := range c.Items {
		c.Items[i].Checked = v
	}
}

// Update handles up/down, space to toggle and a to toggle all.
func (c Checklist) Update(msg tea.Msg) (Checklist, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(c.Items) == 0 {
		return c, nil
	}
	switch kmsg.String() {
	case "up", "k":
		if c.cursor > 0 {
			c.cursor--
		}
	case "down", "j":
		if c.cursor < len(c.Items)-1 {
			c.cursor++
		}
	case "space", " ", "x":
		c.Items[c.cursor].Checked = !c.Items[c.cursor].Checked
	case "a":
		c.SetAll(len(c.Checked()) < len(c.Items))
	}
	return c, nil
}

func (c Checklist) View() string {
	var b strings.Builder
	for i, it := range c.Items {
		box := "[ ]"
		if it.Checked {
			box = "[x]"
		}
		prefix := "  "
		style := theme.Unselected
		if i == c.cursor {
			prefix = Cursor
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", prefix, box, it.Label)))
		if it.Note != "" {
			b.WriteString(theme.Muted.Render("  " + it.Note))
		}
		b.WriteString("\n")
	}
	return b.String()
}
