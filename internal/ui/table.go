package ui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// Fixed process table column widths. COMMAND takes the remaining width.
const (
	pidWidth         = 7
	nameWidth        = 16
	percentWidth     = 6
	minCommandWidth  = 10
	tableCellPadding = 2
)

// processColumns sizes the process table columns to fit width.
func processColumns(titles []string, width int) []table.Column {
	fixed := []int{pidWidth, nameWidth, percentWidth, percentWidth}

	used := 0
	for _, w := range fixed {
		used += w + tableCellPadding
	}
	commandWidth := width - used - tableCellPadding
	if commandWidth < minCommandWidth {
		commandWidth = minCommandWidth
	}

	cols := make([]table.Column, len(titles))
	for i, title := range titles {
		w := commandWidth
		if i < len(fixed) {
			w = fixed[i]
		}
		cols[i] = table.Column{Title: title, Width: w}
	}
	return cols
}

// NewProcessTable creates a non-interactive Bubbles table for the process listing.
func NewProcessTable(pt monitor.ProcessTable, width int) table.Model {
	rows := make([]table.Row, len(pt.Rows))
	for i, r := range pt.Rows {
		rows[i] = table.Row{r.PID, r.Name, r.CPU, r.Memory, r.Command}
	}

	t := table.New(
		table.WithColumns(processColumns(pt.Columns, width)),
		table.WithRows(rows),
		table.WithFocused(false),
		table.WithHeight(len(rows)+1), // +1 for header
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorSecondary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	s.Selected = lipgloss.NewStyle()

	t.SetStyles(s)
	return t
}

// RenderProcessTable renders the process listing, or a notice when the
// process table could not be read.
func RenderProcessTable(pt monitor.ProcessTable, width int) string {
	if !pt.Available {
		return WarningTextStyle.Render(SymbolWarning + " Process list unavailable")
	}
	if len(pt.Rows) == 0 {
		return MutedStyle.Render("No processes")
	}
	return NewProcessTable(pt, width).View()
}
