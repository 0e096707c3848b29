package monitor

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/source"
)

// DefaultInterval is the default tick period.
const DefaultInterval = time.Second

// defaultFlushTimeout bounds how long shutdown waits for the log to drain.
const defaultFlushTimeout = 5 * time.Second

// State is the scheduler lifecycle state.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateStopping
	StateStopped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Display shows a rendered dashboard.
type Display interface {
	Show(Dashboard) error
}

// PerfLogger persists samples without blocking the caller.
type PerfLogger interface {
	Write(Sample)
	Status() LogStatus
	Close(ctx context.Context) error
}

// Options configures a Scheduler. Zero values select defaults.
type Options struct {
	Interval       time.Duration
	ReadTimeout    time.Duration
	ProcessTimeout time.Duration
	HistorySize    int
	TopProcesses   int
	FlushTimeout   time.Duration
	Title          string
	Clock          Clock
	Logger         logger.Logger
}

// Scheduler drives the sample, render, persist pipeline at a steady cadence.
// It owns all cross-tick state and runs one tick at a time.
type Scheduler struct {
	collector *Collector
	history   *History
	ranker    *Ranker
	renderer  Renderer
	display   Display
	perf      PerfLogger
	clock     Clock
	log       logger.Logger

	interval     time.Duration
	flushTimeout time.Duration

	state   atomic.Int32
	started bool
	system  source.SystemInfo
	sysOK   bool
	ticks   uint64

	renderFailing bool
	last          Dashboard

	// onTick, when set, is called after every completed tick.
	onTick func(Dashboard)
}

// NewScheduler wires a scheduler. display and perf may be nil.
func NewScheduler(src source.Source, display Display, perf PerfLogger, opts Options) *Scheduler {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = DefaultReadTimeout
	}
	if opts.ProcessTimeout == 0 {
		opts.ProcessTimeout = DefaultProcessTimeout
	}
	if opts.FlushTimeout <= 0 {
		opts.FlushTimeout = defaultFlushTimeout
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if perf == nil {
		perf = noopPerfLogger{}
	}

	collector := NewCollector(src, opts.Clock, opts.Logger)
	collector.SetTimeout(opts.ReadTimeout)
	collector.SetProcessTimeout(opts.ProcessTimeout)

	return &Scheduler{
		collector:    collector,
		history:      NewHistory(opts.HistorySize),
		ranker:       NewRanker(opts.TopProcesses, 1),
		renderer:     Renderer{Title: opts.Title},
		display:      display,
		perf:         perf,
		clock:        opts.Clock,
		log:          opts.Logger,
		interval:     opts.Interval,
		flushTimeout: opts.FlushTimeout,
	}
}

// State returns the current lifecycle state. Safe to call from any goroutine.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// History exposes the metric history for inspection.
func (s *Scheduler) History() *History {
	return s.history
}

// Last returns the most recently drawn dashboard.
func (s *Scheduler) Last() Dashboard {
	return s.last
}

// Start verifies the source is usable and reads the system description.
// It fails with an ErrSource error when no metric can be read at all.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.started {
		return nil
	}
	if err := s.collector.Probe(ctx); err != nil {
		return err
	}

	info, err := s.collector.SystemInfo(ctx)
	if err == nil {
		s.system, s.sysOK = info, true
		s.ranker.SetCores(info.Cores)
	}

	s.started = true
	return nil
}

// Run ticks until ctx is canceled. On cancellation the in-flight tick
// completes, the performance log is flushed and the state becomes Stopped.
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return errors.New(errors.ErrSource,
			"Scheduler already ran",
			"Create a new scheduler for each run.")
	}

	if err := s.Start(ctx); err != nil {
		s.stop()
		return err
	}

	s.log.Debug("scheduler running every %s", s.interval)

loop:
	for {
		start := s.clock.Now()
		s.tick(ctx)

		if ctx.Err() != nil {
			break
		}

		sleep := s.interval - s.clock.Now().Sub(start)
		if sleep < 0 {
			sleep = 0
		}

		select {
		case <-ctx.Done():
			break loop
		case <-s.clock.After(sleep):
		}
	}

	s.stop()
	return nil
}

// stop flushes the performance log and moves to Stopped.
func (s *Scheduler) stop() {
	s.state.Store(int32(StateStopping))

	flushCtx, cancel := context.WithTimeout(context.Background(), s.flushTimeout)
	defer cancel()
	if err := s.perf.Close(flushCtx); err != nil {
		s.log.Warn("performance log did not flush cleanly: %v", err)
	}

	s.state.Store(int32(StateStopped))
	s.log.Debug("scheduler stopped after %d ticks", s.ticks)
}

// tick runs one collect, history, rank, draw, log pass. Reads are detached
// from cancellation so a tick that has started always completes; each read is
// still bounded by its own timeout.
func (s *Scheduler) tick(ctx context.Context) {
	readCtx := context.WithoutCancel(ctx)
	sample := s.collector.Collect(readCtx)
	procs, procsAt, procsErr := s.collector.Processes(readCtx)

	s.history.PushSample(sample)

	var ranked []ProcessInfo
	if procsErr == nil {
		ranked = s.ranker.Update(procs, procsAt)
	}

	s.ticks++
	dash := s.renderer.Draw(Frame{
		Sample:      sample,
		History:     s.history.Snapshots(),
		Capacity:    s.history.Capacity(),
		Processes:   ranked,
		ProcessesOK: procsErr == nil,
		System:      s.system,
		SystemOK:    s.sysOK,
		Log:         s.perf.Status(),
		Tick:        s.ticks,
		Interval:    s.interval,
	})
	s.last = dash
	s.show(dash)

	s.perf.Write(sample)

	if s.onTick != nil {
		s.onTick(dash)
	}
}

// show hands the dashboard to the display. Failures are logged once per outage.
func (s *Scheduler) show(d Dashboard) {
	if s.display == nil {
		return
	}
	if err := s.display.Show(d); err != nil {
		if !s.renderFailing {
			s.renderFailing = true
			s.log.Warn("%v", errors.WrapWithCode(err, errors.ErrRender, "Couldn't draw the dashboard", ""))
		}
		return
	}
	s.renderFailing = false
}

type noopPerfLogger struct{}

func (noopPerfLogger) Write(Sample)                    {}
func (noopPerfLogger) Status() LogStatus               { return LogStatus{} }
func (noopPerfLogger) Close(ctx context.Context) error { return nil }
