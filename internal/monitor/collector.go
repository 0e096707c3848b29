package monitor

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/source"
)

// DefaultReadTimeout bounds each individual source read.
const DefaultReadTimeout = 500 * time.Millisecond

// DefaultProcessTimeout bounds the process table read, which grows with the
// number of processes on the host.
const DefaultProcessTimeout = 2 * time.Second

// counterState remembers the last successful reading of a pair of
// cumulative counters so the next reading can be turned into rates.
type counterState struct {
	a, b uint64
	at   time.Time
	seen bool
}

// Collector turns raw source readings into a Sample.
// It owns the previous disk and network counters; a failed read leaves them
// untouched so the next success spans the real interval.
type Collector struct {
	src            source.Source
	clock          Clock
	timeout        time.Duration
	processTimeout time.Duration
	log            logger.Logger

	disk counterState
	net  counterState

	// failing tracks which reads failed last tick so transitions are logged once.
	failing map[string]bool
}

// NewCollector creates a collector reading from src.
func NewCollector(src source.Source, clock Clock, log logger.Logger) *Collector {
	if clock == nil {
		clock = RealClock()
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Collector{
		src:            src,
		clock:          clock,
		timeout:        DefaultReadTimeout,
		processTimeout: DefaultProcessTimeout,
		log:            log,
		failing:        make(map[string]bool),
	}
}

// SetTimeout sets the per-read timeout. Zero or negative disables it.
func (c *Collector) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// SetProcessTimeout sets the timeout for the process table read. Zero or
// negative disables it.
func (c *Collector) SetProcessTimeout(timeout time.Duration) {
	c.processTimeout = timeout
}

// Collect reads every metric once. A read that fails or times out leaves only
// its own fields unavailable.
func (c *Collector) Collect(ctx context.Context) Sample {
	s := Sample{Time: c.clock.Now()}

	if pct, err := readWithTimeout(ctx, c.timeout, c.src.CPUPercent); c.track("cpu", err) == nil {
		s.CPUPercent = Available(clamp(pct, 0, 100))
	}

	if m, err := readWithTimeout(ctx, c.timeout, c.src.Memory); c.track("memory", err) == nil && m.Total > 0 {
		used := m.Used
		if used > m.Total {
			used = m.Total
		}
		s.MemoryUsed = Available(float64(used))
		s.MemoryTotal = Available(float64(m.Total))
	}

	if d, err := readWithTimeout(ctx, c.timeout, c.src.DiskCounters); c.track("disk", err) == nil {
		r, w := c.disk.rates(d.ReadBytes, d.WriteBytes, c.clock.Now())
		s.DiskReadRate, s.DiskWriteRate = Available(r), Available(w)
	}

	if n, err := readWithTimeout(ctx, c.timeout, c.src.NetCounters); c.track("network", err) == nil {
		sent, recv := c.net.rates(n.BytesSent, n.BytesRecv, c.clock.Now())
		s.NetSentRate, s.NetRecvRate = Available(sent), Available(recv)
	}

	if b, err := readWithTimeout(ctx, c.timeout, c.src.Battery); c.track("battery", err) == nil && b != nil {
		s.Battery = b
	}

	return s
}

// Processes reads the process table and returns it with the time of the read.
func (c *Collector) Processes(ctx context.Context) ([]source.Process, time.Time, error) {
	procs, err := readWithTimeout(ctx, c.processTimeout, c.src.Processes)
	if err := c.track("processes", err); err != nil {
		return nil, time.Time{}, err
	}
	return procs, c.clock.Now(), nil
}

// SystemInfo reads the static host description.
func (c *Collector) SystemInfo(ctx context.Context) (source.SystemInfo, error) {
	info, err := readWithTimeout(ctx, c.timeout, c.src.SystemInfo)
	if err := c.track("system info", err); err != nil {
		return source.SystemInfo{}, err
	}
	return info, nil
}

// Probe checks that the source can serve at least one reading. It does not
// touch the counter state, so the first Collect still reports zero rates.
func (c *Collector) Probe(ctx context.Context) error {
	probes := []struct {
		timeout time.Duration
		read    func(context.Context) error
	}{
		{c.timeout, func(ctx context.Context) error { _, err := c.src.CPUPercent(ctx); return err }},
		{c.timeout, func(ctx context.Context) error { _, err := c.src.Memory(ctx); return err }},
		{c.timeout, func(ctx context.Context) error { _, err := c.src.DiskCounters(ctx); return err }},
		{c.timeout, func(ctx context.Context) error { _, err := c.src.NetCounters(ctx); return err }},
		{c.processTimeout, func(ctx context.Context) error { _, err := c.src.Processes(ctx); return err }},
	}

	var lastErr error
	for _, probe := range probes {
		_, err := readWithTimeout(ctx, probe.timeout, func(ctx context.Context) (struct{}, error) {
			return struct{}{}, probe.read(ctx)
		})
		if err == nil {
			return nil
		}
		lastErr = err
	}

	return errors.WrapWithCode(lastErr, errors.ErrSource,
		"Couldn't read any system metrics",
		"Check that the process can read /proc (or the platform equivalent) and try again.")
}

// track turns a failed read into an ErrRead error and logs failures and
// recoveries on transition. It returns nil when the read succeeded.
func (c *Collector) track(name string, err error) error {
	if err != nil {
		readErr := errors.Wrap(err, fmt.Sprintf("Couldn't read %s", name))
		if !c.failing[name] {
			c.failing[name] = true
			c.log.Warn("%s: %v", readErr.Message, err)
		}
		return readErr
	}
	if c.failing[name] {
		delete(c.failing, name)
		c.log.Info("%s readable again", name)
	}
	return nil
}

// rates converts a new counter reading into per-second rates and stores it.
// The first reading, a counter that went backwards, or a non-positive
// interval all yield zero.
func (s *counterState) rates(a, b uint64, now time.Time) (float64, float64) {
	defer func() {
		s.a, s.b, s.at, s.seen = a, b, now, true
	}()

	if !s.seen {
		return 0, 0
	}
	elapsed := now.Sub(s.at).Seconds()
	return deltaRate(s.a, a, elapsed), deltaRate(s.b, b, elapsed)
}

func deltaRate(prev, cur uint64, elapsed float64) float64 {
	if elapsed <= 0 || cur < prev {
		return 0
	}
	return float64(cur-prev) / elapsed
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}

// readWithTimeout runs read in its own goroutine so a hung source call
// cannot stall the tick. The goroutine is abandoned on timeout; its result
// channel is buffered so it can still finish.
func readWithTimeout[T any](ctx context.Context, timeout time.Duration, read func(context.Context) (T, error)) (T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	type result struct {
		v   T
		err error
	}
	resultCh := make(chan result, 1)

	go func() {
		v, err := read(ctx)
		resultCh <- result{v, err}
	}()

	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case r := <-resultCh:
		return r.v, r.err
	}
}
