package playerbar

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/wavplay/internal/ui/styles"
)

const (
	filledBlock = "▓"
	emptyBlock  = "░"

	playSymbol  = "▶"
	pauseSymbol = "⏸"
)

// RenderProgressBar renders a block-style progress bar.
// Format: ▶  01:23  ▓▓▓▓▓░░░░░  04:56
func RenderProgressBar(elapsed, total string, ratio float64, width int, playing bool) string {
	status := playSymbol
	if !playing {
		status = pauseSymbol
	}

	fixedWidth := lipgloss.Width(status) + 2 + lipgloss.Width(elapsed) + 2 + 2 + lipgloss.Width(total)
	barWidth := width - fixedWidth

	if barWidth < 3 {
		// Too narrow for bar, just show times
		return status + "  " + elapsed + " / " + total
	}

	ratio = min(max(ratio, 0), 1)
	filled := min(int(float64(barWidth)*ratio), barWidth)

	t := styles.T()
	bar := styles.Gradient(strings.Repeat(filledBlock, filled), t.Primary, t.Secondary) +
		t.S().Subtle.Render(strings.Repeat(emptyBlock, barWidth-filled))

	return status + "  " + elapsed + "  " + bar + "  " + total
}
