package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	hostinfo "github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	gnet "github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/kartikahlawat/Taks-manager/internal/logger"
)

// Host reads telemetry from the local machine through gopsutil.
type Host struct {
	log logger.Logger
}

// NewHost creates a Source for the local machine.
func NewHost(log logger.Logger) *Host {
	if log == nil {
		log = logger.Noop()
	}
	return &Host{log: log}
}

// CPUPercent returns utilization across all cores since the previous call.
func (h *Host) CPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("read cpu percent: %w", err)
	}
	if len(percents) == 0 {
		return 0, errors.New("read cpu percent: no data")
	}
	return percents[0], nil
}

// Memory returns used and total virtual memory.
func (h *Host) Memory(ctx context.Context) (Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return Memory{}, fmt.Errorf("read memory: %w", err)
	}
	return Memory{Used: vm.Used, Total: vm.Total}, nil
}

// DiskCounters sums the byte counters of every disk.
func (h *Host) DiskCounters(ctx context.Context) (IOCounters, error) {
	stats, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return IOCounters{}, fmt.Errorf("read disk counters: %w", err)
	}
	var c IOCounters
	for _, s := range stats {
		c.ReadBytes += s.ReadBytes
		c.WriteBytes += s.WriteBytes
	}
	return c, nil
}

// NetCounters returns the byte counters summed over all interfaces.
func (h *Host) NetCounters(ctx context.Context) (NetCounters, error) {
	stats, err := gnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return NetCounters{}, fmt.Errorf("read network counters: %w", err)
	}
	var c NetCounters
	for _, s := range stats {
		c.BytesSent += s.BytesSent
		c.BytesRecv += s.BytesRecv
	}
	return c, nil
}

// Processes lists every process. Per-process failures are recorded on the
// record instead of failing the whole listing.
func (h *Host) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		out = append(out, h.readProcess(ctx, p))
	}
	return out, nil
}

func (h *Host) readProcess(ctx context.Context, p *process.Process) Process {
	rec := Process{PID: p.Pid}

	name, err := p.NameWithContext(ctx)
	if err != nil {
		rec.Err = classifyProcessError(err)
		return rec
	}
	rec.Name = name

	times, err := p.TimesWithContext(ctx)
	if err != nil {
		rec.Err = classifyProcessError(err)
		return rec
	}
	rec.CPUTime = times.User + times.System

	if pct, err := p.MemoryPercentWithContext(ctx); err == nil {
		rec.MemoryPercent = pct
	} else if perr := classifyProcessError(err); !errors.Is(perr, ErrAccessDenied) {
		rec.Err = perr
		return rec
	}

	// The command line is best effort; a denied read leaves it empty.
	if args, err := p.CmdlineSliceWithContext(ctx); err == nil {
		rec.Cmdline = args
	} else {
		h.log.Debug("cmdline for pid %d: %v", p.Pid, err)
	}

	return rec
}

// classifyProcessError maps gopsutil and syscall errors onto the package sentinels.
func classifyProcessError(err error) error {
	switch {
	case errors.Is(err, process.ErrorProcessNotRunning), errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %v", ErrProcessGone, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %v", ErrAccessDenied, err)
	default:
		return err
	}
}

// Battery reports the first battery found, or nil when there is none.
func (h *Host) Battery(ctx context.Context) (*Battery, error) {
	return readBattery(ctx)
}

// SystemInfo describes the local machine.
func (h *Host) SystemInfo(ctx context.Context) (SystemInfo, error) {
	info, err := hostinfo.InfoWithContext(ctx)
	if err != nil {
		return SystemInfo{}, fmt.Errorf("read host info: %w", err)
	}

	si := SystemInfo{
		Hostname: info.Hostname,
		OS:       info.OS,
		Platform: info.Platform,
		Release:  info.PlatformVersion,
		Kernel:   info.KernelVersion,
		Arch:     info.KernelArch,
		BootTime: time.Unix(int64(info.BootTime), 0),
	}
	if si.Arch == "" {
		si.Arch = runtime.GOARCH
	}

	if cores, err := cpu.CountsWithContext(ctx, true); err == nil {
		si.Cores = cores
	} else {
		h.log.Debug("cpu count: %v", err)
		si.Cores = runtime.NumCPU()
	}

	if cpus, err := cpu.InfoWithContext(ctx); err == nil && len(cpus) > 0 {
		si.CPUModel = cpus[0].ModelName
	} else if err != nil {
		h.log.Debug("cpu info: %v", err)
	}

	return si, nil
}
