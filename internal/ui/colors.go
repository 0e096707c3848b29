package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "#39FF14" // Neon green
	ColorError   lipgloss.Color = "#FF0055" // Hot red-pink
	ColorWarning lipgloss.Color = "#FFAA00" // Electric amber
	ColorInfo    lipgloss.Color = "#00FFFF" // Neon cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "#FFFFFF" // Pure white
	ColorSecondary lipgloss.Color = "#B4B4D0" // Lavender gray
	ColorMuted     lipgloss.Color = "#6B6B8D" // Purple-gray
)

// Surface and accent colors
const (
	ColorAccent    lipgloss.Color = "#FF2E97" // Neon pink
	ColorBorder    lipgloss.Color = "#2A2A4A" // Glass border
	ColorSurfaceBg lipgloss.Color = "#12121A" // Dark surface
)

// Thresholds for percentage metrics
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// MetricColor returns the color for a percentage value:
// green below 70%, amber below 90%, red above.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorError
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorSuccess
	}
}

// DisableColors switches lipgloss to monochrome output.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
