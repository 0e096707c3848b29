// Package ui renders taskmanager dashboards on a terminal.
//
// The scheduler produces a declarative monitor.Dashboard every tick and hands
// it to a Display. Two displays exist:
//
//	TeaDisplay   - full-screen Bubble Tea program, used when stdout is a terminal
//	PlainDisplay - one summary line per tick, for pipes and files
//
// TeaDisplay runs the Bubble Tea event loop on its own goroutine so the
// terminal stays responsive to q and Ctrl+C while the scheduler sleeps.
// Quitting cancels the context passed to NewTeaDisplay.
//
// # Layout
//
// The Model picks a layout from the terminal width:
//
//	< 80     one line per metric, no graphs
//	80-120   single column with sparklines
//	120-160  two columns of panels with braille graphs
//	160+     process table and system info side by side
//
// Below 40x10 the dashboard is replaced by a "Terminal too small" notice.
//
// # Graphs
//
// History series may contain NaN for ticks where a metric was unavailable.
// RenderGraph and RenderSparkline leave those points blank. Percent graphs
// use a fixed 0-100 scale with threshold colors; rate
// graphs scale to their peak.
//
// Use DisableColors() to switch to monochrome output.
package ui
