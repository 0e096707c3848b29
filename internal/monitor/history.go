package monitor

// DefaultHistorySize is the default number of data points to retain per metric.
const DefaultHistorySize = 60

// Names of the series kept by History.
const (
	MetricCPU       = "cpu"
	MetricMemory    = "memory"
	MetricDiskRead  = "disk_read"
	MetricDiskWrite = "disk_write"
	MetricNetSent   = "net_sent"
	MetricNetRecv   = "net_recv"
)

// TrackedMetrics lists the series PushSample appends to, in display order.
var TrackedMetrics = []string{
	MetricCPU,
	MetricMemory,
	MetricDiskRead,
	MetricDiskWrite,
	MetricNetSent,
	MetricNetRecv,
}

// History keeps a fixed-size window of recent values per metric using ring buffers.
// Unavailable readings are stored as NaN so every series stays aligned by tick.
// It is owned by the scheduler goroutine and is not safe for concurrent use.
type History struct {
	size   int
	series map[string]*ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a new history with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:   size,
		series: make(map[string]*ringBuffer),
	}
}

// Push appends a value to the named series, evicting the oldest when full.
func (h *History) Push(name string, value float64) {
	rb, ok := h.series[name]
	if !ok {
		rb = newRingBuffer(h.size)
		h.series[name] = rb
	}
	rb.push(value)
}

// PushSample appends one point to every tracked series.
func (h *History) PushSample(s Sample) {
	h.Push(MetricCPU, s.CPUPercent.OrNaN())
	h.Push(MetricMemory, s.MemoryPercent().OrNaN())
	h.Push(MetricDiskRead, s.DiskReadRate.OrNaN())
	h.Push(MetricDiskWrite, s.DiskWriteRate.OrNaN())
	h.Push(MetricNetSent, s.NetSentRate.OrNaN())
	h.Push(MetricNetRecv, s.NetRecvRate.OrNaN())
}

// Snapshot returns a copy of the named series, oldest first.
func (h *History) Snapshot(name string) []float64 {
	rb, ok := h.series[name]
	if !ok {
		return nil
	}
	return rb.getAll()
}

// Snapshots copies every tracked series.
func (h *History) Snapshots() map[string][]float64 {
	out := make(map[string][]float64, len(TrackedMetrics))
	for _, name := range TrackedMetrics {
		out[name] = h.Snapshot(name)
	}
	return out
}

// Len returns the number of points stored for the named series.
func (h *History) Len(name string) int {
	rb, ok := h.series[name]
	if !ok {
		return 0
	}
	return rb.count
}

// Capacity returns the maximum number of points kept per series.
func (h *History) Capacity() int {
	return h.size
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head is the next write position, so the newest value sits at head-1.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		idx := (start + i) % r.size
		result[i] = r.data[idx]
	}

	return result
}

// getAll returns all stored values in chronological order.
func (r *ringBuffer) getAll() []float64 {
	return r.getLast(r.count)
}
