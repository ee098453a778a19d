// Package home is the landing screen: title, tier standing and the main
// menu.
package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/screen"
	"github.com/abhisek/fmaprep/internal/screens/formulary"
	"github.com/abhisek/fmaprep/internal/screens/notes"
	"github.com/abhisek/fmaprep/internal/screens/practice"
	"github.com/abhisek/fmaprep/internal/screens/resources"
	"github.com/abhisek/fmaprep/internal/tier"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/layout"
)

// Deps are the collaborators the home screen hands to the screens it
// opens.
type Deps struct {
	Catalog    *content.Catalog
	Math       *mathrender.Renderer
	Tutor      *tutor.Service
	XP         func() int
	Thresholds []tier.Threshold
	Logger     *zap.Logger
}

// Screen is the home screen.
type Screen struct {
	deps   Deps
	menu   components.Menu
	labels []string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

func New(deps Deps) *Screen {
	if deps.XP == nil {
		deps.XP = func() int { return 0 }
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if len(deps.Thresholds) == 0 {
		deps.Thresholds = tier.Default()
	}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd { return router.Push(build()) }
	}

	items := []components.MenuItem{
		{Label: "PRACTICE", Key: "p", Action: push(func() screen.Screen {
			return practice.New(deps.Catalog, deps.Math, deps.Tutor, practice.WithLogger(deps.Logger))
		})},
		{Label: "NOTES", Key: "n", Action: push(func() screen.Screen {
			return notes.New(deps.Catalog, deps.Math)
		})},
		{Label: "FORMULARY", Key: "f", Action: push(func() screen.Screen {
			return formulary.New(deps.Catalog, deps.Math)
		})},
		{Label: "RESOURCES", Key: "r", Action: push(func() screen.Screen {
			return resources.New(deps.Catalog)
		})},
		{Label: "QUIT", Key: "q", Action: func() tea.Cmd { return tea.Quit }},
	}

	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label
	}
	return &Screen{deps: deps, menu: components.NewMenu(items), labels: labels}
}

func (h *Screen) Init() tea.Cmd { return nil }

func (h *Screen) Title() string { return "Home" }

func (h *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "P/N/F/R", Description: "Jump"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || height < 26
	cw := components.ContentWidth(width)

	xp := h.deps.XP()
	standing := tier.For(xp, h.deps.Thresholds)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(xp, standing, cw),
		renderMenu(h.labels, h.menu.Selected, cw, compact),
	}
	if !compact {
		sections = append(sections, renderTutorNote(h.deps.Tutor.Enabled(), cw))
	}

	gap := "\n\n"
	if compact {
		gap = "\n"
	}
	return components.CabinetFrame(strings.Join(sections, gap), width, height)
}
