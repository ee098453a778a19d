// Package app is the root Bubble Tea model. It owns the XP counter and
// the math renderer and frames whatever screen the router has on top.
package app

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/fmaprep/internal/content"
	"github.com/abhisek/fmaprep/internal/mathrender"
	"github.com/abhisek/fmaprep/internal/router"
	"github.com/abhisek/fmaprep/internal/screen"
	"github.com/abhisek/fmaprep/internal/screens/home"
	"github.com/abhisek/fmaprep/internal/screens/practice"
	"github.com/abhisek/fmaprep/internal/tier"
	"github.com/abhisek/fmaprep/internal/tutor"
	"github.com/abhisek/fmaprep/internal/ui/layout"
	"github.com/abhisek/fmaprep/internal/xp"
)

// Options configure the app.
type Options struct {
	Catalog *content.Catalog
	XP      *xp.Counter
	Tutor   *tutor.Service
	Logger  *zap.Logger

	// MathEngine names the engine to load at startup.
	MathEngine string

	Thresholds []tier.Threshold

	// StartInPractice opens the practice setup over the home screen.
	StartInPractice bool
}

// engineLoadedMsg reports the result of the startup engine load.
type engineLoadedMsg struct {
	engine mathrender.Engine
	err    error
}

// xpSavedMsg reports a persisted XP award.
type xpSavedMsg struct {
	total int
	err   error
}

// Model is the root model.
type Model struct {
	opts   Options
	math   *mathrender.Renderer
	router *router.Router
	logger *zap.Logger

	notice string
	width  int
	height int
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if len(opts.Thresholds) == 0 {
		opts.Thresholds = tier.Default()
	}

	math := mathrender.NewRenderer(nil)
	deps := home.Deps{
		Catalog:    opts.Catalog,
		Math:       math,
		Tutor:      opts.Tutor,
		XP:         opts.XP.Total,
		Thresholds: opts.Thresholds,
		Logger:     opts.Logger,
	}
	root := home.New(deps)
	return Model{
		opts:   opts,
		math:   math,
		router: router.New(root),
		logger: opts.Logger,
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadEngine(m.opts.MathEngine)}
	if m.opts.StartInPractice {
		cmds = append(cmds, router.Push(practice.New(m.opts.Catalog, m.math, m.opts.Tutor,
			practice.WithLogger(m.logger))))
	}
	return tea.Batch(cmds...)
}

func loadEngine(name string) tea.Cmd {
	return func() tea.Msg {
		e, err := mathrender.Load(name)
		return engineLoadedMsg{engine: e, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case engineLoadedMsg:
		if msg.err != nil {
			// Math stays as source text.
			m.logger.Warn("math engine unavailable", zap.String("engine", m.opts.MathEngine), zap.Error(msg.err))
			return m, nil
		}
		m.math.SetEngine(msg.engine)
		m.logger.Debug("math engine loaded", zap.String("engine", m.opts.MathEngine))
		return m, nil

	case practice.SessionCompleteMsg:
		m.notice = ""
		return m, m.award(msg.Summary.XPAwarded)

	case xpSavedMsg:
		if msg.err != nil {
			m.notice = "XP could not be saved"
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.EscapeCapturer); ok && c.CapturesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Pop
			}
			return m, nil
		}
	}

	return m, m.router.Update(msg)
}

// award adds XP and persists it off the event loop.
func (m Model) award(points int) tea.Cmd {
	if points <= 0 {
		return nil
	}
	counter := m.opts.XP
	return func() tea.Msg {
		total, err := counter.Add(context.Background(), points)
		return xpSavedMsg{total: total, err: err}
	}
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m Model) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	total := m.opts.XP.Total()
	badge := layout.TierBadge(total, tier.For(total, m.opts.Thresholds))
	header := layout.RenderHeader(active.Title(), badge, m.width)

	hints := m.defaultHints()
	if p, ok := active.(screen.KeyHintProvider); ok {
		if h := p.KeyHints(); len(h) > 0 {
			hints = h
		}
	}
	if m.notice != "" {
		hints = append([]layout.KeyHint{{Key: "!", Description: m.notice}}, hints...)
	}
	footer := layout.RenderFooter(hints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(header, footer, m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m Model) defaultHints() []layout.KeyHint {
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the program and blocks until it exits.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts)).Run()
	return err
}
