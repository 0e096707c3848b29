package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	WarningTextStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)
)

// Gauge renders a bar for a percentage metric. Unavailable metrics render
// an empty muted bar.
func Gauge(width int, m monitor.Metric) string {
	if width < 1 {
		width = 1
	}
	if !m.Valid {
		return MutedStyle.Render(strings.Repeat("▱", width))
	}

	percent := m.Value
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return lipgloss.NewStyle().Foreground(MetricColor(percent)).Render(bar)
}

// SectionHeader renders a section header with the title on the left and value on the right.
// Format: ╭─ Title ────────────────────────────────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2

	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	valueStyle := lipgloss.NewStyle().Foreground(ColorInfo).Bold(true)

	return borderStyle.Render("╭─ ") +
		TitleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fillWidth)+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
// Format: ╰────────────────────────────────────────────────────╯
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	return borderStyle.Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders a content line with left and right borders, padded
// or truncated to width.
// Format: │ content                                              │
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	innerWidth := width - 4

	if lipgloss.Width(content) > innerWidth {
		content = lipgloss.NewStyle().MaxWidth(innerWidth).Render(content)
	}
	padding := innerWidth - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}

	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}

// Section wraps content lines in a titled box of the given width.
func Section(title, value string, lines []string, width int) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, SectionHeader(title, value, width))
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width))
	}
	out = append(out, SectionFooter(width))
	return strings.Join(out, "\n")
}
