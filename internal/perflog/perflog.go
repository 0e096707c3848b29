package perflog

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/monitor"
	"github.com/kartikahlawat/Taks-manager/internal/util"
)

// Defaults for Options.
const (
	DefaultPath       = "system_performance.log"
	DefaultRetryEvery = 10
	DefaultQueueSize  = 64
)

// Options configures a Logger.
type Options struct {
	// Path and Format are reported in Status.
	Path   string
	Format string
	// RetryEvery is how many ticks to wait between attempts while the sink is failing.
	RetryEvery int
	// QueueSize bounds how many records may wait for the writer.
	QueueSize int
}

// request is one queued unit of work for the writer goroutine.
type request struct {
	sample monitor.Sample
	tick   uint64
	flush  chan struct{}
}

// Logger writes samples to a Sink from a single background goroutine.
type Logger struct {
	sink Sink
	opts Options
	log  logger.Logger

	// qmu guards queue against sends after Close.
	qmu    sync.RWMutex
	queue  chan request
	closed bool
	done   chan struct{}

	// tick is only touched by the Write caller.
	tick    uint64
	dropped atomic.Uint64

	// mu guards the failure state shared between Write and the writer.
	mu        sync.Mutex
	disabled  bool
	retryAt   uint64
	lastErr   string
	written   uint64
	droppedAt uint64
}

// New starts a Logger writing to sink.
func New(sink Sink, opts Options, log logger.Logger) *Logger {
	if opts.RetryEvery <= 0 {
		opts.RetryEvery = DefaultRetryEvery
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = DefaultQueueSize
	}
	if log == nil {
		log = logger.Noop()
	}

	l := &Logger{
		sink:  sink,
		opts:  opts,
		log:   log,
		queue: make(chan request, opts.QueueSize),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Write queues a sample. It never blocks: while the sink is failing, samples
// between retries are skipped, and a full queue drops the sample.
func (l *Logger) Write(s monitor.Sample) {
	l.tick++
	tick := l.tick

	l.mu.Lock()
	skip := l.disabled && tick < l.retryAt
	l.mu.Unlock()
	if skip {
		return
	}

	l.qmu.RLock()
	defer l.qmu.RUnlock()
	if l.closed {
		return
	}

	select {
	case l.queue <- request{sample: s, tick: tick}:
	default:
		l.dropped.Add(1)
	}
}

// Flush blocks until every sample queued before the call has been handled.
func (l *Logger) Flush(ctx context.Context) error {
	l.qmu.RLock()
	if l.closed {
		l.qmu.RUnlock()
		return nil
	}

	ack := make(chan struct{})
	select {
	case l.queue <- request{flush: ack}:
		l.qmu.RUnlock()
	case <-ctx.Done():
		l.qmu.RUnlock()
		return ctx.Err()
	}

	select {
	case <-ack:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue, then flushes and syncs the sink.
// Calling Close more than once is safe.
func (l *Logger) Close(ctx context.Context) error {
	l.qmu.Lock()
	if !l.closed {
		l.closed = true
		close(l.queue)
	}
	l.qmu.Unlock()

	select {
	case <-l.done:
	case <-ctx.Done():
		return errors.WrapWithCode(ctx.Err(), errors.ErrSink,
			"Performance log did not finish writing",
			"Some of the last samples may be missing from "+l.opts.Path)
	}

	if err := l.sink.Close(); err != nil {
		return errors.WrapWithCode(err, errors.ErrSink,
			"Couldn't close the performance log",
			"Check free disk space and permissions for "+l.opts.Path)
	}
	return nil
}

// Status reports the logger state for the dashboard.
func (l *Logger) Status() monitor.LogStatus {
	l.mu.Lock()
	defer l.mu.Unlock()
	return monitor.LogStatus{
		Enabled:   true,
		Healthy:   !l.disabled,
		Path:      l.opts.Path,
		Format:    l.opts.Format,
		Written:   l.written,
		Dropped:   l.dropped.Load(),
		LastError: l.lastErr,
	}
}

// run is the single writer goroutine.
func (l *Logger) run() {
	defer close(l.done)

	for req := range l.queue {
		if req.flush != nil {
			if err := l.sink.Flush(); err != nil {
				l.log.Debug("flush performance log: %v", err)
			}
			close(req.flush)
			continue
		}
		l.write(req)
	}
}

func (l *Logger) write(req request) {
	l.mu.Lock()
	disabled, retryAt := l.disabled, l.retryAt
	l.mu.Unlock()

	// Queued before the failure was noticed and not a retry: skip.
	if disabled && req.tick < retryAt {
		return
	}

	err := l.sink.Write(req.sample)

	l.mu.Lock()
	defer l.mu.Unlock()

	if err != nil {
		l.lastErr = err.Error()
		l.retryAt = req.tick + uint64(l.opts.RetryEvery)
		if !l.disabled {
			l.disabled = true
			l.log.Error("%v", errors.WrapWithCode(err, errors.ErrSink,
				"Couldn't write the performance log",
				"Logging is paused and will be retried automatically. Check free disk space and permissions."))
		}
		return
	}

	l.written++
	if l.disabled {
		l.disabled = false
		l.lastErr = ""
		l.log.Info("performance log resumed: %s", l.opts.Path)
	}
	if d := l.dropped.Load(); d > l.droppedAt {
		l.log.Warn("performance log queue was full, %s dropped", util.CountOf(d-l.droppedAt, "sample", "samples"))
		l.droppedAt = d
	}
}

var _ monitor.PerfLogger = (*Logger)(nil)
