package ui

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
	"golang.org/x/term"
)

// DebugLogFile receives standard log output while the TUI owns the terminal
// and TASKMANAGER_DEBUG is set.
const DebugLogFile = "taskmanager-debug.log"

// Display shows dashboards on a terminal.
type Display interface {
	Show(monitor.Dashboard) error
	Close() error
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// TeaDisplay runs a Bubble Tea program and forwards dashboards to it via
// program.Send(), which is goroutine-safe. When the user quits, the cancel
// function passed to NewTeaDisplay is called so the scheduler stops.
type TeaDisplay struct {
	program *tea.Program
	cancel  context.CancelFunc

	started bool
	done    chan struct{}
	err     error

	closeOnce sync.Once
	logFile   io.Closer
}

// NewTeaDisplay creates a display for a full-screen dashboard. Extra program
// options are appended to the defaults.
func NewTeaDisplay(cancel context.CancelFunc, opts ...tea.ProgramOption) *TeaDisplay {
	options := append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	return &TeaDisplay{
		program: tea.NewProgram(NewModel(), options...),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start runs the program in the background. Standard log output is sent to
// DebugLogFile when debugging and discarded otherwise, so stray log lines do
// not corrupt the screen.
func (d *TeaDisplay) Start() error {
	if logger.DebugEnabled() {
		f, err := tea.LogToFile(DebugLogFile, "taskmanager")
		if err != nil {
			return errors.WrapWithCode(err, errors.ErrRender,
				"Couldn't open the debug log",
				"Check write permissions in the current directory or unset "+logger.DebugEnv+".")
		}
		d.logFile = f
	} else {
		log.SetOutput(io.Discard)
	}

	d.started = true
	go func() {
		defer close(d.done)
		_, err := d.program.Run()
		if err != nil {
			d.err = errors.WrapWithCode(err, errors.ErrRender,
				"The dashboard stopped unexpectedly",
				"Try --plain to print samples as lines instead.")
		}
		if d.cancel != nil {
			d.cancel()
		}
	}()
	return nil
}

// Show sends a dashboard to the program. It fails once the program has exited.
func (d *TeaDisplay) Show(db monitor.Dashboard) error {
	select {
	case <-d.done:
		return errors.New(errors.ErrRender,
			"The dashboard is no longer running",
			"")
	default:
	}
	d.program.Send(dashboardMsg{dashboard: db})
	return nil
}

// Close stops the program, restores the terminal and log output, and returns
// any error from the program.
func (d *TeaDisplay) Close() error {
	d.closeOnce.Do(func() {
		if !d.started {
			return
		}
		d.program.Quit()
		<-d.done
		if d.logFile != nil {
			_ = d.logFile.Close()
		}
		log.SetOutput(os.Stderr)
	})
	return d.err
}

// PlainDisplay writes one summary line per dashboard, for output that is not
// a terminal.
type PlainDisplay struct {
	w io.Writer
}

// NewPlainDisplay creates a line-oriented display writing to w.
func NewPlainDisplay(w io.Writer) *PlainDisplay {
	DisableColors()
	return &PlainDisplay{w: w}
}

// Show writes the dashboard summary line.
func (p *PlainDisplay) Show(d monitor.Dashboard) error {
	if _, err := fmt.Fprintln(p.w, PlainLine(d)); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Couldn't write to the output",
			"Check that the output pipe or file is still open.")
	}
	return nil
}

// Close is a no-op.
func (p *PlainDisplay) Close() error {
	return nil
}

// PlainLine summarizes a dashboard on one line:
// time, each panel summary, the busiest process and the log state.
func PlainLine(d monitor.Dashboard) string {
	parts := []string{d.Time.Format("2006-01-02 15:04:05")}
	for _, p := range d.Panels {
		parts = append(parts, p.Title+" "+p.Summary)
	}

	switch {
	case !d.Processes.Available:
		parts = append(parts, "top "+monitor.NotAvailable)
	case len(d.Processes.Rows) > 0:
		top := d.Processes.Rows[0]
		parts = append(parts, fmt.Sprintf("top %s (%s) %s%%", top.Name, top.PID, top.CPU))
	}

	if !d.LogOK {
		parts = append(parts, d.Log.Label+" "+d.Log.Value)
	}
	return strings.Join(parts, " | ")
}

var (
	_ Display         = (*TeaDisplay)(nil)
	_ Display         = (*PlainDisplay)(nil)
	_ monitor.Display = Display(nil)
)
