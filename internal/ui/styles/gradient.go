package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/rivo/uniseg"
)

// neutral is used for colors that are not #rrggbb (ANSI indexes).
var neutral = colorful.Color{R: 0.5, G: 0.5, B: 0.5}

// Gradient renders text with a horizontal color gradient, one color per
// grapheme cluster, blended in HCL space.
func Gradient(text string, from, to lipgloss.Color) string {
	return gradient(text, false, from, to)
}

// BoldGradient is Gradient with bold text.
func BoldGradient(text string, from, to lipgloss.Color) string {
	return gradient(text, true, from, to)
}

func gradient(text string, bold bool, from, to lipgloss.Color) string {
	var clusters []string
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		clusters = append(clusters, gr.Str())
	}
	if len(clusters) == 0 {
		return ""
	}

	style := lipgloss.NewStyle().Bold(bold)
	if len(clusters) == 1 {
		return style.Foreground(from).Render(text)
	}

	start, end := toColorful(from), toColorful(to)
	last := float64(len(clusters) - 1)

	var b strings.Builder
	for i, cluster := range clusters {
		c := start.BlendHcl(end, float64(i)/last).Clamped()
		b.WriteString(style.Foreground(lipgloss.Color(c.Hex())).Render(cluster))
	}
	return b.String()
}

func toColorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return neutral
	}
	return col
}
