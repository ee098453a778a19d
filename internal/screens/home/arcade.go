package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmaprep/internal/tier"
	"github.com/abhisek/fmaprep/internal/ui/components"
	"github.com/abhisek/fmaprep/internal/ui/theme"
)

const titleFull = `╔═╗     ╔╦╗╔═╗   ╔═╗╦═╗╔═╗╔═╗
╠╣  ═══ ║║║╠═╣   ╠═╝╠╦╝║╣ ╠═╝
╚   ═══ ╩ ╩╩ ╩   ╩  ╩╚═╚═╝╩  `

const titleCompact = "F = m a   P R E P"

const tagline = "F=ma and USAPhO practice"

func renderTitle(cw int, compact bool) string {
	style := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(style.Render(art) + "\n" + theme.Hint.Render(tagline))
}

// renderStatsBar shows the tier, the XP total and the distance to the
// next tier.
func renderStatsBar(xp int, s tier.Standing, cw int) string {
	name := lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render("★ " + strings.ToUpper(s.Name))
	points := lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(fmt.Sprintf("%d XP", xp))

	next := theme.Muted.Render("TOP TIER")
	if !s.IsTop() {
		next = theme.Muted.Render(fmt.Sprintf("%d XP TO %s", s.Remaining(), strings.ToUpper(s.Next)))
	}
	line := name + "   " + points + "   " + next
	bar := components.NewProgressBar("", s.Progress(), cw-6)

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line + "\n" + bar.View())
}

const buttonWidth = 24

func renderMenu(labels []string, selected, cw int, compact bool) string {
	rows := make([]string, len(labels))
	for i, label := range labels {
		if compact {
			if i == selected {
				rows[i] = theme.Selected.Render(components.Cursor + label)
			} else {
				rows[i] = theme.Unselected.Render("  " + label)
			}
			continue
		}
		rows[i] = components.ArcadeButton(label, i == selected, buttonWidth)
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

func renderTutorNote(enabled bool, cw int) string {
	text := "AI explanations off (set FMAPREP_LLM_PROVIDER and a key to enable)"
	if enabled {
		text = "AI explanations on: press E after revealing a solution"
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
