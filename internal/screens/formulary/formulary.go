// Package formulary shows the formula sheet grouped by topic, with a
// live text filter.
package formulary

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/screen"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/layout"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// Section is one topic's formulas after filtering.
type Section struct {
	Topic    string
	Formulas []content.Formula
}

// Filter returns the sections of catalog whose formulas match query.
// An empty query matches everything; topic restricts to one topic when
// set. Matching is case-insensitive over topic, name, description and
// equation source.
func Filter(catalog *content.Catalog, topic, query string) []Section {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Section
	for _, t := range catalog.FormulaTopics() {
		if topic != "" && t != topic {
			continue
		}
		topicHit := strings.Contains(strings.ToLower(t), query)
		var keep []content.Formula
		for _, f := range catalog.Formulas(t) {
			if query == "" || topicHit || matches(f, query) {
				keep = append(keep, f)
			}
		}
		if len(keep) > 0 {
			out = append(out, Section{Topic: t, Formulas: keep})
		}
	}
	return out
}

func matches(f content.Formula, q string) bool {
	return strings.Contains(strings.ToLower(f.Name), q) ||
		strings.Contains(strings.ToLower(f.Description), q) ||
		strings.Contains(strings.ToLower(f.Equation), q)
}

// Render lays sections out as text of the given width.
func Render(sections []Section, width int, math *mathrender.Renderer) string {
	var b strings.Builder
	for i, sec := range sections {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(theme.Heading.Render(sec.Topic))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 1))))
		b.WriteString("\n")
		for _, f := range sec.Formulas {
			b.WriteString(theme.Body.Bold(true).Render(f.Name))
			b.WriteString("\n  ")
			b.WriteString(theme.Math.Render(math.RenderExpr(f.Equation)))
			b.WriteString("\n")
			if f.Description != "" {
				desc := ansi.Wrap(f.Description, max(width-2, 10), "")
				b.WriteString(theme.Muted.Render("  " + strings.ReplaceAll(desc, "\n", "\n  ")))
				b.WriteString("\n")
			}
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// Screen is the formulary.
type Screen struct {
	catalog *content.Catalog
	math    *mathrender.Renderer

	tabs   []string // "" is all topics
	tab    int
	filter components.FilterInput
	vp     viewport.Model
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.EscapeCapturer  = (*Screen)(nil)
)

func New(catalog *content.Catalog, math *mathrender.Renderer) *Screen {
	return &Screen{
		catalog: catalog,
		math:    math,
		tabs:    append([]string{""}, catalog.FormulaTopics()...),
		filter:  components.NewFilterInput("kinetic, torque, \\omega...", 32),
		vp:      viewport.New(),
	}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Formulary" }

// CapturesEscape lets esc clear an active filter before leaving.
func (s *Screen) CapturesEscape() bool {
	return s.filter.Focused() || s.filter.Value() != ""
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.filter.Focused() {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Done"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "/", Description: "Filter"},
		{Key: "←→", Description: "Topic"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

// Topic returns the selected topic tab, "" for all.
func (s *Screen) Topic() string { return s.tabs[s.tab] }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, isKey := msg.(tea.KeyMsg)

	if s.filter.Focused() {
		if isKey {
			switch kmsg.String() {
			case "esc":
				s.filter.Clear()
				s.vp.GotoTop()
				return s, nil
			case "enter":
				s.filter.Blur()
				return s, nil
			}
		}
		var cmd tea.Cmd
		s.filter, cmd = s.filter.Update(msg)
		s.vp.GotoTop()
		return s, cmd
	}

	if isKey {
		switch kmsg.String() {
		case "/":
			return s, s.filter.Focus()
		case "esc":
			s.filter.Clear()
			s.vp.GotoTop()
			return s, nil
		case "left", "h":
			s.tab = (s.tab - 1 + len(s.tabs)) % len(s.tabs)
			s.vp.GotoTop()
			return s, nil
		case "right", "l", "tab":
			s.tab = (s.tab + 1) % len(s.tabs)
			s.vp.GotoTop()
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	inner := max(min(width-4, 96), 20)

	tabs := s.renderTabs(inner)
	filter := s.filter.View()
	top := tabs + "\n" + filter + "\n"

	sections := Filter(s.catalog, s.Topic(), s.filter.Value())
	body := Render(sections, inner, s.math)
	if len(sections) == 0 {
		body = theme.Hint.Render("No formulas match.")
	}

	s.vp.SetWidth(inner)
	s.vp.SetHeight(max(height-lipgloss.Height(top)-1, 1))
	s.vp.SetContent(body)

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, top+"\n"+s.vp.View())
}

func (s *Screen) renderTabs(width int) string {
	parts := make([]string, len(s.tabs))
	for i, t := range s.tabs {
		label := t
		if label == "" {
			label = "All"
		}
		if i == s.tab {
			parts[i] = theme.ButtonActive.Render(label)
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	return ansi.Truncate(strings.Join(parts, " "), width, "…")
}
