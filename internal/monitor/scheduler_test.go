package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	tmerrors "github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/source"
	sourcetesting "github.com/kartikahlawat/Taks-manager/internal/source/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures the order of pipeline side effects.
type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(e string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) all() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeDisplay struct {
	rec    *recorder
	shown  []Dashboard
	err    error
	onShow func()
}

func (d *fakeDisplay) Show(db Dashboard) error {
	if d.rec != nil {
		d.rec.add("draw")
	}
	d.shown = append(d.shown, db)
	if d.onShow != nil {
		d.onShow()
	}
	return d.err
}

type fakePerf struct {
	rec     *recorder
	mu      sync.Mutex
	samples []Sample
	closed  bool
}

func (p *fakePerf) Write(s Sample) {
	if p.rec != nil {
		p.rec.add("log")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.samples = append(p.samples, s)
}

func (p *fakePerf) Status() LogStatus {
	return LogStatus{Enabled: true, Healthy: true, Path: "test.log"}
}

func (p *fakePerf) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

func (p *fakePerf) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

// sleepRecorder wraps a clock and records every requested sleep.
type sleepRecorder struct {
	*fakeClock
	sleeps []time.Duration
}

func (c *sleepRecorder) After(d time.Duration) <-chan time.Time {
	c.sleeps = append(c.sleeps, d)
	return c.fakeClock.After(d)
}

func healthySource() *sourcetesting.FakeSource {
	return sourcetesting.NewFakeSource().
		SetCPU(10).
		SetMemory(2<<30, 8<<30).
		SetDisk(100, 200).
		SetNet(1000, 2000).
		SetProcesses(source.Process{PID: 42, Name: "worker", CPUTime: 10})
}

func stopAfter(s *Scheduler, cancel context.CancelFunc, n int) {
	count := 0
	s.onTick = func(Dashboard) {
		count++
		if count >= n {
			cancel()
		}
	}
}

func TestSchedulerRunsTicksAndStops(t *testing.T) {
	display := &fakeDisplay{}
	perf := &fakePerf{}
	s := NewScheduler(healthySource(), display, perf, Options{
		Interval:    time.Second,
		HistorySize: 5,
		Clock:       newAutoClock(),
	})
	assert.Equal(t, StateIdle, s.State())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 8)

	require.NoError(t, s.Run(ctx))

	assert.Equal(t, StateStopped, s.State())
	assert.Len(t, display.shown, 8)
	assert.Len(t, perf.samples, 8)
	assert.True(t, perf.isClosed(), "log flushed on shutdown")
	for _, name := range TrackedMetrics {
		assert.Equal(t, 5, s.History().Len(name), "history is capped at capacity")
	}
	assert.Equal(t, uint64(8), s.Last().Tick)
}

func TestSchedulerFirstTickRatesAreZero(t *testing.T) {
	perf := &fakePerf{}
	s := NewScheduler(healthySource(), nil, perf, Options{Clock: newAutoClock()})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 1)

	require.NoError(t, s.Run(ctx))
	require.Len(t, perf.samples, 1)

	first := perf.samples[0]
	assert.Equal(t, Available(0), first.DiskReadRate)
	assert.Equal(t, Available(0), first.DiskWriteRate)
	assert.Equal(t, Available(0), first.NetSentRate)
	assert.Equal(t, Available(0), first.NetRecvRate)
}

func TestSchedulerTickOrder(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(healthySource(), &fakeDisplay{rec: rec}, &fakePerf{rec: rec}, Options{Clock: newAutoClock()})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 3)

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, []string{"draw", "log", "draw", "log", "draw", "log"}, rec.all())
}

func TestSchedulerSleepCompensatesForTickDuration(t *testing.T) {
	clock := &sleepRecorder{fakeClock: newAutoClock()}
	display := &fakeDisplay{}
	display.onShow = func() { clock.Advance(300 * time.Millisecond) }

	s := NewScheduler(healthySource(), display, nil, Options{Interval: time.Second, Clock: clock})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 3)

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, []time.Duration{700 * time.Millisecond, 700 * time.Millisecond}, clock.sleeps)
}

func TestSchedulerOverrunNeverSleepsNegative(t *testing.T) {
	clock := &sleepRecorder{fakeClock: newAutoClock()}
	display := &fakeDisplay{}
	display.onShow = func() { clock.Advance(1500 * time.Millisecond) }

	s := NewScheduler(healthySource(), display, nil, Options{Interval: time.Second, Clock: clock})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 2)

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, []time.Duration{0}, clock.sleeps)
}

func TestSchedulerCancelDuringSleep(t *testing.T) {
	clock := newFakeClock()
	perf := &fakePerf{}
	s := NewScheduler(healthySource(), &fakeDisplay{}, perf, Options{Interval: time.Hour, Clock: clock})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	select {
	case <-clock.Waited():
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler never went to sleep")
	}
	assert.Equal(t, StateRunning, s.State())

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop promptly")
	}
	assert.Equal(t, StateStopped, s.State())
	assert.True(t, perf.isClosed())
	assert.Len(t, perf.samples, 1)
}

// cancelingSource cancels the run from inside a CPU read once armed, the way
// a signal can land while a tick is reading the host.
type cancelingSource struct {
	*sourcetesting.FakeSource
	armed  atomic.Bool
	cancel context.CancelFunc
}

func (c *cancelingSource) CPUPercent(ctx context.Context) (float64, error) {
	if c.armed.Load() {
		c.cancel()
	}
	return c.FakeSource.CPUPercent(ctx)
}

func TestSchedulerCancelDuringTickFinishesTick(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	src := &cancelingSource{FakeSource: healthySource(), cancel: cancel}
	log := logger.NewBufferLogger()
	perf := &fakePerf{}
	s := NewScheduler(src, &fakeDisplay{}, perf, Options{Clock: newAutoClock(), Logger: log})
	s.onTick = func(Dashboard) { src.armed.Store(true) }

	require.NoError(t, s.Run(ctx))

	assert.Equal(t, StateStopped, s.State())
	require.Len(t, perf.samples, 2, "the interrupted tick still logs")
	last := perf.samples[1]
	assert.True(t, last.CPUPercent.Valid)
	assert.True(t, last.MemoryUsed.Valid)
	assert.True(t, last.DiskReadRate.Valid)
	assert.True(t, last.NetSentRate.Valid)
	assert.True(t, s.Last().Processes.Available)
	assert.False(t, log.HasLevel("warn"), "no read is reported as failed")
	assert.True(t, perf.isClosed())
}

func TestSchedulerStartupFailure(t *testing.T) {
	src := sourcetesting.NewFakeSource().FailAll(errors.New("permission denied"))
	display := &fakeDisplay{}
	perf := &fakePerf{}
	s := NewScheduler(src, display, perf, Options{Clock: newAutoClock()})

	err := s.Run(context.Background())

	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrSource))
	assert.Equal(t, StateStopped, s.State())
	assert.Empty(t, display.shown)
	assert.True(t, perf.isClosed())
}

func TestSchedulerPartialSourceStillRuns(t *testing.T) {
	src := healthySource()
	src.CPUErr = errors.New("no cpu")
	src.InfoErr = errors.New("no info")
	perf := &fakePerf{}
	s := NewScheduler(src, nil, perf, Options{Clock: newAutoClock()})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 2)

	require.NoError(t, s.Run(ctx))
	require.Len(t, perf.samples, 2)
	assert.False(t, perf.samples[0].CPUPercent.Valid)
	assert.True(t, perf.samples[0].MemoryUsed.Valid)
	assert.Equal(t, []Field{{Label: "System", Value: NotAvailable}}, s.Last().System)
}

func TestSchedulerRunTwice(t *testing.T) {
	s := NewScheduler(healthySource(), nil, nil, Options{Clock: newAutoClock()})

	ctx, cancel := context.WithCancel(context.Background())
	stopAfter(s, cancel, 1)
	require.NoError(t, s.Run(ctx))

	err := s.Run(context.Background())
	assert.Error(t, err)
}

func TestSchedulerDisplayFailureLoggedOnce(t *testing.T) {
	log := logger.NewBufferLogger()
	display := &fakeDisplay{err: errors.New("terminal gone")}
	perf := &fakePerf{}
	s := NewScheduler(healthySource(), display, perf, Options{Clock: newAutoClock(), Logger: log})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stopAfter(s, cancel, 4)

	require.NoError(t, s.Run(ctx))
	assert.Equal(t, 1, log.Count("warn"))
	assert.Len(t, perf.samples, 4, "logging continues when drawing fails")
}

func TestSchedulerProcessesRankedAcrossTicks(t *testing.T) {
	src := healthySource()
	clock := newAutoClock()
	s := NewScheduler(src, nil, nil, Options{Interval: time.Second, Clock: clock})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	count := 0
	s.onTick = func(d Dashboard) {
		count++
		if count == 1 {
			src.SetProcesses(source.Process{PID: 42, Name: "worker", CPUTime: 10.5})
			return
		}
		cancel()
	}

	require.NoError(t, s.Run(ctx))
	rows := s.Last().Processes.Rows
	require.Len(t, rows, 1)
	assert.Equal(t, "50.0", rows[0].CPU)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "running", StateRunning.String())
	assert.Equal(t, "stopping", StateStopping.String())
	assert.Equal(t, "stopped", StateStopped.String())
	assert.Equal(t, "unknown", State(42).String())
}
