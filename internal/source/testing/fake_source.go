// Package testing provides test doubles for the source package.
package testing

import (
	"context"
	"sync"

	"github.com/kartikahlawat/Taks-manager/internal/source"
)

// FakeSource is a scripted source.Source. Each reading is served from the
// current field values; tests mutate them between ticks with the setters.
// A non-nil error field makes the matching method fail.
type FakeSource struct {
	mu sync.Mutex

	cpu      float64
	memory   source.Memory
	disk     source.IOCounters
	net      source.NetCounters
	procs    []source.Process
	battery  *source.Battery
	sysInfo  source.SystemInfo
	blockCPU chan struct{}

	CPUErr     error
	MemoryErr  error
	DiskErr    error
	NetErr     error
	ProcsErr   error
	BatteryErr error
	InfoErr    error

	// Calls counts invocations per method name, for assertions.
	Calls map[string]int
}

// NewFakeSource creates a fake with a single-core host and no battery.
func NewFakeSource() *FakeSource {
	return &FakeSource{
		sysInfo: source.SystemInfo{
			Hostname: "testhost",
			OS:       "linux",
			Platform: "ubuntu",
			Release:  "24.04",
			Kernel:   "6.8.0",
			Arch:     "x86_64",
			CPUModel: "Fake CPU",
			Cores:    1,
		},
		Calls: make(map[string]int),
	}
}

// SetCPU sets the CPU percent returned by CPUPercent.
func (f *FakeSource) SetCPU(p float64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cpu = p
	return f
}

// SetMemory sets the memory reading.
func (f *FakeSource) SetMemory(used, total uint64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.memory = source.Memory{Used: used, Total: total}
	return f
}

// SetDisk sets the cumulative disk counters.
func (f *FakeSource) SetDisk(read, write uint64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disk = source.IOCounters{ReadBytes: read, WriteBytes: write}
	return f
}

// SetNet sets the cumulative network counters.
func (f *FakeSource) SetNet(sent, recv uint64) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.net = source.NetCounters{BytesSent: sent, BytesRecv: recv}
	return f
}

// SetProcesses replaces the process table.
func (f *FakeSource) SetProcesses(procs ...source.Process) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.procs = append([]source.Process(nil), procs...)
	return f
}

// SetBattery sets the battery reading; nil means no battery.
func (f *FakeSource) SetBattery(b *source.Battery) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.battery = b
	return f
}

// SetSystemInfo replaces the system description.
func (f *FakeSource) SetSystemInfo(info source.SystemInfo) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sysInfo = info
	return f
}

// BlockCPU makes CPUPercent hang until ctx is done or the returned func is called.
func (f *FakeSource) BlockCPU() (release func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan struct{})
	f.blockCPU = ch
	var once sync.Once
	return func() {
		once.Do(func() { close(ch) })
	}
}

// FailAll makes every read fail with err.
func (f *FakeSource) FailAll(err error) *FakeSource {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.CPUErr, f.MemoryErr, f.DiskErr, f.NetErr = err, err, err, err
	f.ProcsErr, f.BatteryErr, f.InfoErr = err, err, err
	return f
}

// CallCount returns how many times the named method was called.
func (f *FakeSource) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Calls[method]
}

func (f *FakeSource) record(method string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls[method]++
}

func (f *FakeSource) CPUPercent(ctx context.Context) (float64, error) {
	f.record("CPUPercent")
	f.mu.Lock()
	block := f.blockCPU
	f.mu.Unlock()
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CPUErr != nil {
		return 0, f.CPUErr
	}
	return f.cpu, nil
}

func (f *FakeSource) Memory(ctx context.Context) (source.Memory, error) {
	f.record("Memory")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.MemoryErr != nil {
		return source.Memory{}, f.MemoryErr
	}
	return f.memory, nil
}

func (f *FakeSource) DiskCounters(ctx context.Context) (source.IOCounters, error) {
	f.record("DiskCounters")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DiskErr != nil {
		return source.IOCounters{}, f.DiskErr
	}
	return f.disk, nil
}

func (f *FakeSource) NetCounters(ctx context.Context) (source.NetCounters, error) {
	f.record("NetCounters")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.NetErr != nil {
		return source.NetCounters{}, f.NetErr
	}
	return f.net, nil
}

func (f *FakeSource) Processes(ctx context.Context) ([]source.Process, error) {
	f.record("Processes")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ProcsErr != nil {
		return nil, f.ProcsErr
	}
	return append([]source.Process(nil), f.procs...), nil
}

func (f *FakeSource) Battery(ctx context.Context) (*source.Battery, error) {
	f.record("Battery")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.BatteryErr != nil {
		return nil, f.BatteryErr
	}
	if f.battery == nil {
		return nil, nil
	}
	b := *f.battery
	return &b, nil
}

func (f *FakeSource) SystemInfo(ctx context.Context) (source.SystemInfo, error) {
	f.record("SystemInfo")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InfoErr != nil {
		return source.SystemInfo{}, f.InfoErr
	}
	return f.sysInfo, nil
}

var _ source.Source = (*FakeSource)(nil)
