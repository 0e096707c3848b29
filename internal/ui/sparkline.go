package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// Sparkline block characters representing 8 vertical levels (lowest to highest).
const sparklineBlocks = "▁▂▃▄▅▆▇█"

// sparklineBlockRunes provides indexed access to block characters.
var sparklineBlockRunes = []rune(sparklineBlocks)

// RenderSparkline renders the most recent width points of a graph on a single
// row. Unavailable points render as a space. Percent graphs are colored by
// the last available value; rate graphs use the info color.
func RenderSparkline(g monitor.Graph, width int) string {
	if len(g.Points) == 0 || width <= 0 {
		return ""
	}

	data := g.Points
	if len(data) > width {
		data = data[len(data)-width:]
	}
	minVal, maxVal := graphRange(data, g.Kind)

	var sb strings.Builder
	sb.Grow(len(data) * 3)

	last := math.NaN()
	numLevels := len(sparklineBlockRunes)
	for _, v := range data {
		if math.IsNaN(v) {
			sb.WriteRune(' ')
			continue
		}
		last = v
		level := int(normalizeValue(v, minVal, maxVal) * float64(numLevels-1))
		sb.WriteRune(sparklineBlockRunes[level])
	}

	color := ColorInfo
	if g.Kind == monitor.GraphPercent && !math.IsNaN(last) {
		color = MetricColor(last)
	}
	return lipgloss.NewStyle().Foreground(color).Render(sb.String())
}
