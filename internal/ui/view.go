package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

const (
	defaultWidth = 100
	gaugeWidth   = 20
	labelWidth   = 10
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.dashboard == nil {
		return HeaderStyle.Render(TitleStyle.Render("taskmanager")) + "\n\n" +
			LabelStyle.Render("Collecting first sample...")
	}
	d := *m.dashboard
	width := m.contentWidth()

	var b strings.Builder
	b.WriteString(RenderHeader(d))
	b.WriteString("\n\n")

	b.WriteString(m.renderPanels(d.Panels, width))
	b.WriteString("\n")
	b.WriteString(m.renderBottom(d, width))

	if m.ShowFooter() {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}
	return b.String()
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

// renderPanels lays out the metric panels for the current layout mode.
func (m Model) renderPanels(panels []monitor.Panel, width int) string {
	switch m.LayoutMode() {
	case LayoutMinimal:
		lines := make([]string, 0, len(panels))
		for _, p := range panels {
			lines = append(lines, renderPanelLine(p))
		}
		return strings.Join(lines, "\n")

	case LayoutCompact:
		sections := make([]string, 0, len(panels))
		for _, p := range panels {
			sections = append(sections, renderCompactPanel(p, width))
		}
		return strings.Join(sections, "\n")

	default:
		graphHeight := 2
		if m.CanShowExtendedInfo() {
			graphHeight = 3
		}
		colWidth := (width - 1) / 2

		var rows []string
		for i := 0; i < len(panels); i += 2 {
			left := renderGraphPanel(panels[i], colWidth, graphHeight)
			if i+1 >= len(panels) {
				rows = append(rows, left)
				continue
			}
			right := renderGraphPanel(panels[i+1], colWidth, graphHeight)
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
		}
		return lipgloss.JoinVertical(lipgloss.Left, rows...)
	}
}

func isPercentPanel(p monitor.Panel) bool {
	return len(p.Graphs) > 0 && p.Graphs[0].Kind == monitor.GraphPercent
}

// renderPanelLine renders a panel as a single line for narrow terminals.
func renderPanelLine(p monitor.Panel) string {
	line := LabelStyle.Render(padRight(p.Title, labelWidth)) + ValueStyle.Render(p.Summary)
	if isPercentPanel(p) {
		line += "  " + Gauge(10, p.Gauge)
	}
	return line
}

func renderFields(fields []monitor.Field) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, LabelStyle.Render(f.Label+": ")+ValueStyle.Render(f.Value))
	}
	return strings.Join(parts, "   ")
}

// renderCompactPanel renders a full-width panel with one sparkline per graph.
func renderCompactPanel(p monitor.Panel, width int) string {
	inner := width - 4

	var lines []string
	if isPercentPanel(p) {
		lines = append(lines, Gauge(minInt(gaugeWidth, inner), p.Gauge))
	}
	lines = append(lines, renderFields(p.Fields))
	for _, g := range p.Graphs {
		label := LabelStyle.Render(padRight(g.Label, labelWidth))
		lines = append(lines, label+RenderSparkline(g, inner-labelWidth))
	}
	return Section(p.Title, p.Summary, lines, width)
}

// renderGraphPanel renders a panel with braille history graphs.
func renderGraphPanel(p monitor.Panel, width, graphHeight int) string {
	inner := width - 4

	var lines []string
	if isPercentPanel(p) {
		lines = append(lines, Gauge(inner, p.Gauge))
	}
	lines = append(lines, renderFields(p.Fields))

	height := graphHeight
	if len(p.Graphs) > 1 {
		height = maxInt(1, graphHeight-1)
	}
	for _, g := range p.Graphs {
		if len(p.Graphs) > 1 {
			lines = append(lines, LabelStyle.Render(g.Label))
		}
		lines = append(lines, strings.Split(RenderGraph(g, inner, height), "\n")...)
	}
	return Section(p.Title, p.Summary, lines, width)
}

// renderBottom renders the process table and system information.
func (m Model) renderBottom(d monitor.Dashboard, width int) string {
	if m.LayoutMode() == LayoutWide {
		procWidth := width * 3 / 5
		sysWidth := width - procWidth - 1
		procs := renderProcessSection(d.Processes, procWidth)
		sys := renderSystemSection(d.System, sysWidth)
		return lipgloss.JoinHorizontal(lipgloss.Top, procs, " ", sys)
	}
	return renderProcessSection(d.Processes, width) + "\n" + renderSystemSection(d.System, width)
}

func renderProcessSection(pt monitor.ProcessTable, width int) string {
	value := fmt.Sprintf("%d shown", len(pt.Rows))
	if !pt.Available {
		value = monitor.NotAvailable
	}
	table := RenderProcessTable(pt, width-4)
	return Section("Top Processes", value, strings.Split(table, "\n"), width)
}

func renderSystemSection(fields []monitor.Field, width int) string {
	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, LabelStyle.Render(padRight(f.Label, labelWidth))+ValueStyle.Render(f.Value))
	}
	return Section("System", "", lines, width)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

func (m Model) renderTooSmall() string {
	msg := WarningTextStyle.Render("Terminal too small") + "\n" +
		MutedStyle.Render(fmt.Sprintf("Need at least %dx%d, have %dx%d", MinWidth, MinHeight, m.width, m.height))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s + " "
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
