package cli

import (
	"context"
	"io"
	"os"

	"github.com/kartikahlawat/Taks-manager/internal/config"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
	"github.com/kartikahlawat/Taks-manager/internal/perflog"
	"github.com/kartikahlawat/Taks-manager/internal/source"
	"github.com/kartikahlawat/Taks-manager/internal/ui"
)

// starter is implemented by displays that run in the background.
type starter interface {
	Start() error
}

// runner wires one monitoring session from a config.
type runner struct {
	cfg    *config.Config
	stdout io.Writer
	log    logger.Logger

	source source.Source
	clock  monitor.Clock
	// newDisplay builds the display; cancel stops the session when the user quits.
	newDisplay func(cancel context.CancelFunc) ui.Display
}

func newRunner(cfg *config.Config, stdout io.Writer) *runner {
	r := &runner{
		cfg:    cfg,
		stdout: stdout,
		log:    logger.NewEnvLogger("[taskmanager]"),
		source: source.NewHost(logger.NewEnvLogger("[source]")),
	}
	r.newDisplay = r.defaultDisplay
	return r
}

// useTUI reports whether the full-screen dashboard should be used.
func (r *runner) useTUI() bool {
	switch r.cfg.Display.Mode {
	case config.DisplayTUI:
		return true
	case config.DisplayPlain:
		return false
	default:
		f, ok := r.stdout.(*os.File)
		return ok && ui.IsTerminal(f)
	}
}

func (r *runner) defaultDisplay(cancel context.CancelFunc) ui.Display {
	if r.useTUI() {
		return ui.NewTeaDisplay(cancel)
	}
	return ui.NewPlainDisplay(r.stdout)
}

// newPerfLogger returns nil when logging is disabled.
func (r *runner) newPerfLogger() (*perflog.Logger, error) {
	if !r.cfg.Log.Enabled {
		return nil, nil
	}
	sink, err := perflog.NewSink(r.cfg.Log.Format, r.cfg.Log.Path)
	if err != nil {
		return nil, err
	}
	return perflog.New(sink, perflog.Options{
		Path:       r.cfg.Log.Path,
		Format:     r.cfg.Log.Format,
		RetryEvery: r.cfg.Log.RetryEvery,
		QueueSize:  r.cfg.Log.QueueSize,
	}, logger.NewEnvLogger("[perflog]")), nil
}

// run probes the source, starts the display and ticks until ctx is canceled
// or the user quits. A failed probe returns before anything is drawn.
func (r *runner) run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pl, err := r.newPerfLogger()
	if err != nil {
		return err
	}
	var perf monitor.PerfLogger
	if pl != nil {
		perf = pl
	}

	display := r.newDisplay(cancel)
	sched := monitor.NewScheduler(r.source, display, perf, monitor.Options{
		Interval:       r.cfg.Interval,
		ReadTimeout:    r.cfg.ReadTimeout,
		ProcessTimeout: r.cfg.ProcessTimeout,
		HistorySize:    r.cfg.HistorySize,
		TopProcesses:   r.cfg.TopProcesses,
		Title:          "taskmanager " + formatVersion(version),
		Clock:          r.clock,
		Logger:         r.log,
	})

	if err := sched.Start(ctx); err != nil {
		if pl != nil {
			_ = pl.Close(context.Background())
		}
		return err
	}

	if s, ok := display.(starter); ok {
		if err := s.Start(); err != nil {
			if pl != nil {
				_ = pl.Close(context.Background())
			}
			return err
		}
	}

	runErr := sched.Run(ctx)

	if err := display.Close(); err != nil {
		r.log.Warn("display closed with error: %v", err)
	}
	return runErr
}
