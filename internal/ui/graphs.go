package ui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character:
//
//	  Col 0  Col 1
//	Row 0:   ⠁      ⠈     (dots 1, 4)
//	Row 1:   ⠂      ⠐     (dots 2, 5)
//	Row 2:   ⠄      ⠠     (dots 3, 6)
//	Row 3:   ⡀      ⢀     (dots 7, 8)
//
// Unicode braille starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// brailleDots maps row/column to the bit offset for braille pattern
// [row][col] where row is 0-3 (top to bottom) and col is 0-1 (left to right)
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// graphRange returns the vertical scale for a graph. Percent graphs use a
// fixed 0-100 range; rate graphs scale to the largest available point.
func graphRange(points []float64, kind monitor.GraphKind) (minVal, maxVal float64) {
	if kind == monitor.GraphPercent {
		return 0, 100
	}
	maxVal = 0
	for _, v := range points {
		if !math.IsNaN(v) && v > maxVal {
			maxVal = v
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}
	return 0, maxVal
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal <= minVal {
		return 0
	}
	n := (val - minVal) / (maxVal - minVal)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}

// downsample compresses data to targetSize points keeping the peak of each
// bucket. A bucket with no available points stays NaN.
func downsample(data []float64, targetSize int) []float64 {
	if len(data) <= targetSize || targetSize <= 0 {
		return data
	}

	result := make([]float64, targetSize)
	bucketSize := float64(len(data)) / float64(targetSize)
	for i := 0; i < targetSize; i++ {
		start := int(float64(i) * bucketSize)
		end := int(float64(i+1) * bucketSize)
		if end > len(data) {
			end = len(data)
		}
		if start >= end {
			start = end - 1
		}

		peak := math.NaN()
		for _, v := range data[start:end] {
			if math.IsNaN(v) {
				continue
			}
			if math.IsNaN(peak) || v > peak {
				peak = v
			}
		}
		result[i] = peak
	}
	return result
}

// RenderGraph renders a history series as a braille area graph of width
// characters and height rows. Data fills from the right; NaN points leave gaps.
func RenderGraph(g monitor.Graph, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	totalDots := height * 4
	targetPoints := width * 2
	points := downsample(g.Points, targetPoints)
	minVal, maxVal := graphRange(points, g.Kind)

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	colMax := make([]float64, width)
	offset := targetPoints - len(points)
	if offset < 0 {
		offset = 0
	}

	for i, val := range points {
		if math.IsNaN(val) {
			continue
		}
		charCol := (i + offset) / 2
		if charCol >= width {
			continue
		}
		if val > colMax[charCol] {
			colMax[charCol] = val
		}

		dotHeight := int(normalizeValue(val, minVal, maxVal) * float64(totalDots))
		// Keep non-zero values visible.
		if dotHeight == 0 && val > minVal {
			dotHeight = 1
		}

		subCol := (i + offset) % 2
		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - (dot / 4)
			subRow := 3 - (dot % 4)
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	lines := make([]string, 0, height)
	for _, row := range grid {
		var b strings.Builder
		for col, ch := range row {
			color := ColorInfo
			if g.Kind == monitor.GraphPercent {
				color = MetricColor(colMax[col])
			}
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(ch)))
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
