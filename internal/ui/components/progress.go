package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/fmaprep/internal/ui/theme"
)

// ProgressBar is a horizontal meter with an optional label and caption.
type ProgressBar struct {
	Label   string
	Caption string
	Percent float64
	Width   int
	Fill    color.Color
}

func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width, Fill: theme.Secondary}
}

// WithCaption sets the text shown after the bar, e.g. "3/10".
func (p ProgressBar) WithCaption(format string, args ...any) ProgressBar {
	p.Caption = fmt.Sprintf(format, args...)
	return p
}

func (p ProgressBar) View() string {
	var head string
	if p.Label != "" {
		head = theme.Body.Render(p.Label) + "  "
	}
	var tail string
	if p.Caption != "" {
		tail = "  " + theme.Muted.Render(p.Caption)
	}

	barWidth := max(p.Width-lipgloss.Width(head)-lipgloss.Width(tail), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	fill := p.Fill
	if fill == nil {
		fill = theme.Secondary
	}
	bar := lipgloss.NewStyle().Background(fill).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))

	return head + bar + tail
}
