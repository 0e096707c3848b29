package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
)

// LayoutMode represents the responsive layout mode based on terminal size.
type LayoutMode int

const (
	// LayoutMinimal is for terminals < 80 columns: one line per metric, no graphs
	LayoutMinimal LayoutMode = iota
	// LayoutCompact is for terminals 80-120 columns: single column with inline sparklines
	LayoutCompact
	// LayoutStandard is for terminals 120-160 columns: two columns of panels with graphs
	LayoutStandard
	// LayoutWide is for terminals 160+ columns: processes and system info side by side
	LayoutWide
)

// Width breakpoints for layout modes
const (
	BreakpointCompact  = 80
	BreakpointStandard = 120
	BreakpointWide     = 160
)

// Height breakpoints for layout adjustments
const (
	HeightMinimal  = 24
	HeightStandard = 40
)

// Below this size the dashboard is replaced by a notice.
const (
	MinWidth  = 40
	MinHeight = 10
)

// Model is the Bubble Tea model for the dashboard. It holds the latest
// dashboard sent by the scheduler and never reads metrics itself.
type Model struct {
	dashboard *monitor.Dashboard
	width     int
	height    int
	showHelp  bool
	quitting  bool
}

// dashboardMsg carries a new dashboard from the scheduler.
type dashboardMsg struct {
	dashboard monitor.Dashboard
}

// NewModel creates an empty dashboard model.
func NewModel() Model {
	return Model{}
}

// Init implements tea.Model. The scheduler drives all updates.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if handled, cmd := m.HandleKeyMsg(msg); handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case dashboardMsg:
		d := msg.dashboard
		m.dashboard = &d
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width > 0 && m.height > 0 && (m.width < MinWidth || m.height < MinHeight) {
		return m.renderTooSmall()
	}
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	return m.renderDashboard()
}

// LayoutMode returns the current layout mode based on terminal width.
func (m Model) LayoutMode() LayoutMode {
	switch {
	case m.width >= BreakpointWide:
		return LayoutWide
	case m.width >= BreakpointStandard:
		return LayoutStandard
	case m.width >= BreakpointCompact:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

// ShowFooter returns true if the terminal is tall enough to show the footer.
func (m Model) ShowFooter() bool {
	return m.height >= HeightMinimal
}

// CanShowExtendedInfo returns true if the terminal is tall enough for taller graphs.
func (m Model) CanShowExtendedInfo() bool {
	return m.height >= HeightStandard
}

// Quitting reports whether the user asked to quit.
func (m Model) Quitting() bool {
	return m.quitting
}
