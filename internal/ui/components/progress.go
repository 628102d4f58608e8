package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/veritas-labs/versewise/internal/ui/theme"
)

// ProgressBar is a labeled horizontal bar used for the countdown and the
// level-progress display.
type ProgressBar struct {
	Label   string
	Percent float64
	Width   int
}

// View renders the bar.
func (p ProgressBar) View() string {
	width := p.Width
	if width <= 0 {
		width = 20
	}
	pct := p.Percent
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}

	filled := int(pct * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	out := ""
	if p.Label != "" {
		out = theme.Body.Render(p.Label) + " "
	}
	color := theme.Primary
	if pct <= 0.25 {
		color = theme.Error
	}
	out += lipgloss.NewStyle().Foreground(color).Render(bar)
	out += theme.Hint.Render(fmt.Sprintf(" %3.0f%%", pct*100))
	return out
}
