// Package notes lists the study topics and shows a topic's note in a
// scrollable pane.
package notes

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/screen"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/layout"
	"github.com/abhisek/fmaprep/internal/ui/richtext"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// Screen is the topic picker.
type Screen struct {
	catalog *content.Catalog
	math    *mathrender.Renderer
	menu    components.Menu
}

var _ screen.Screen = (*Screen)(nil)

func New(catalog *content.Catalog, math *mathrender.Renderer) *Screen {
	s := &Screen{catalog: catalog, math: math}

	var items []components.MenuItem
	for _, t := range catalog.Topics() {
		note, ok := catalog.Note(t.Name)
		name := t.Name
		items = append(items, components.MenuItem{
			Label:    name,
			Disabled: !ok,
			Action: func() tea.Cmd {
				return router.Push(NewDetail(name, note, math))
			},
		})
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Study Notes" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	body := components.Card("Pick a topic", s.menu.View(), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// Detail shows one rendered note.
type Detail struct {
	topic string
	src   string
	math  *mathrender.Renderer

	vp           viewport.Model
	renderedAt   int
	renderedWith bool
}

var (
	_ screen.Screen          = (*Detail)(nil)
	_ screen.KeyHintProvider = (*Detail)(nil)
)

func NewDetail(topic, src string, math *mathrender.Renderer) *Detail {
	return &Detail{topic: topic, src: src, math: math, vp: viewport.New()}
}

func (d *Detail) Init() tea.Cmd { return nil }

func (d *Detail) Title() string { return d.topic }

func (d *Detail) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "PgUp/PgDn", Description: "Page"},
		{Key: "Esc", Description: "Back"},
	}
}

func (d *Detail) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

// View re-renders the note only when the width changes or the math
// engine has arrived since the last render, keeping the scroll offset.
func (d *Detail) View(width, height int) string {
	inner := max(min(width-4, 96), 20)
	d.vp.SetWidth(inner + 2)
	d.vp.SetHeight(max(height-1, 1))

	ready := d.math.Ready()
	if d.renderedAt != inner || d.renderedWith != ready {
		d.vp.SetContent(Render(d.src, inner, d.math))
		d.renderedAt = inner
		d.renderedWith = ready
	}

	scroll := theme.Muted.Render(strings.Repeat(" ", max(inner-4, 0)) + percent(d.vp.ScrollPercent()))
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, d.vp.View()+"\n"+scroll)
}

// Render formats a note for display, indented by one column.
func Render(src string, width int, math *mathrender.Renderer) string {
	out := richtext.Render(src, width, math)
	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = " " + lines[i]
	}
	return strings.Join(lines, "\n")
}

func percent(f float64) string {
	return fmt.Sprintf("%3d%%", int(f*100+0.5))
}
