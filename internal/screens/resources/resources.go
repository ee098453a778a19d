// Package resources lists external study links.
package resources

import (
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/screen"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

type Screen struct {
	links []content.Resource
	vp    viewport.Model
}

var _ screen.Screen = (*Screen)(nil)

func New(catalog *content.Catalog) *Screen {
	return &Screen{links: catalog.Resources(), vp: viewport.New()}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Resources" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.vp, cmd = s.vp.Update(msg)
	return s, cmd
}

// Cards renders every link as a card of width cw.
func Cards(links []content.Resource, cw int) string {
	cards := make([]string, len(links))
	for i, r := range links {
		body := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Underline(true).Render(r.URL)
		if r.Description != "" {
			body += "\n\n" + theme.Body.Render(r.Description)
		}
		cards[i] = components.Card(r.Title, body, cw)
	}
	return strings.Join(cards, "\n")
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	s.vp.SetWidth(cw)
	s.vp.SetHeight(max(height, 1))
	if len(s.links) == 0 {
		s.vp.SetContent(theme.Hint.Render("No resources."))
	} else {
		s.vp.SetContent(Cards(s.links, cw))
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, s.vp.View())
}
