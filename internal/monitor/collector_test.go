package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	tmerrors "github.com/kartikahlawat/Taks-manager/internal/errors"
	"github.com/kartikahlawat/Taks-manager/internal/logger"
	"github.com/kartikahlawat/Taks-manager/internal/source"
	sourcetesting "github.com/kartikahlawat/Taks-manager/internal/source/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectorDiskRates(t *testing.T) {
	clock := newFakeClock()
	src := sourcetesting.NewFakeSource().SetDisk(100, 200)
	c := NewCollector(src, clock, nil)

	first := c.Collect(context.Background())
	assert.Equal(t, Available(0), first.DiskReadRate, "first reading has no baseline")
	assert.Equal(t, Available(0), first.DiskWriteRate)

	clock.Advance(time.Second)
	src.SetDisk(150, 260)

	second := c.Collect(context.Background())
	assert.Equal(t, Available(50), second.DiskReadRate)
	assert.Equal(t, Available(60), second.DiskWriteRate)
}

func TestCollectorNetworkRates(t *testing.T) {
	clock := newFakeClock()
	src := sourcetesting.NewFakeSource().SetNet(1000, 4000)
	c := NewCollector(src, clock, nil)

	c.Collect(context.Background())
	clock.Advance(2 * time.Second)
	src.SetNet(3000, 5000)

	s := c.Collect(context.Background())
	assert.Equal(t, Available(1000), s.NetSentRate)
	assert.Equal(t, Available(500), s.NetRecvRate)
}

func TestCollectorCounterResetYieldsZero(t *testing.T) {
	clock := newFakeClock()
	src := sourcetesting.NewFakeSource().SetDisk(1_000_000, 1_000_000).SetNet(500, 500)
	c := NewCollector(src, clock, nil)

	c.Collect(context.Background())
	clock.Advance(time.Second)
	src.SetDisk(10, 2_000_000).SetNet(100, 900)

	s := c.Collect(context.Background())
	assert.Equal(t, Available(0), s.DiskReadRate)
	assert.Equal(t, Available(1_000_000), s.DiskWriteRate)
	assert.Equal(t, Available(0), s.NetSentRate)
	assert.Equal(t, Available(400), s.NetRecvRate)
}

func TestCollectorFailedReadKeepsPreviousCounters(t *testing.T) {
	clock := newFakeClock()
	src := sourcetesting.NewFakeSource().SetDisk(100, 200)
	c := NewCollector(src, clock, nil)

	c.Collect(context.Background())

	clock.Advance(time.Second)
	src.DiskErr = errors.New("device busy")
	s := c.Collect(context.Background())
	assert.False(t, s.DiskReadRate.Valid)
	assert.False(t, s.DiskWriteRate.Valid)
	assert.True(t, s.NetSentRate.Valid, "other metrics are unaffected")

	clock.Advance(time.Second)
	src.DiskErr = nil
	src.SetDisk(300, 400)
	s = c.Collect(context.Background())
	assert.Equal(t, Available(100), s.DiskReadRate, "rate spans both seconds")
	assert.Equal(t, Available(100), s.DiskWriteRate)
}

func TestCollectorZeroElapsedYieldsZero(t *testing.T) {
	clock := newFakeClock()
	src := sourcetesting.NewFakeSource().SetDisk(0, 0)
	c := NewCollector(src, clock, nil)

	c.Collect(context.Background())
	src.SetDisk(5000, 5000)
	s := c.Collect(context.Background())

	assert.Equal(t, Available(0), s.DiskReadRate)
}

func TestCollectorMemory(t *testing.T) {
	tests := []struct {
		name      string
		used      uint64
		total     uint64
		wantUsed  Metric
		wantTotal Metric
	}{
		{"normal", 4 << 30, 16 << 30, Available(4 << 30), Available(16 << 30)},
		{"used clamped to total", 20, 10, Available(10), Available(10)},
		{"zero total is unavailable", 5, 0, Unavailable, Unavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := sourcetesting.NewFakeSource().SetMemory(tt.used, tt.total)
			s := NewCollector(src, newFakeClock(), nil).Collect(context.Background())
			assert.Equal(t, tt.wantUsed, s.MemoryUsed)
			assert.Equal(t, tt.wantTotal, s.MemoryTotal)
		})
	}
}

func TestCollectorCPUClamped(t *testing.T) {
	src := sourcetesting.NewFakeSource().SetCPU(130)
	s := NewCollector(src, newFakeClock(), nil).Collect(context.Background())
	assert.Equal(t, Available(100), s.CPUPercent)
}

func TestCollectorBattery(t *testing.T) {
	src := sourcetesting.NewFakeSource()
	c := NewCollector(src, newFakeClock(), nil)

	assert.Nil(t, c.Collect(context.Background()).Battery, "no battery")

	src.SetBattery(&source.Battery{Percent: 87, Charging: true})
	b := c.Collect(context.Background()).Battery
	require.NotNil(t, b)
	assert.Equal(t, 87.0, b.Percent)
	assert.True(t, b.Charging)

	src.BatteryErr = errors.New("no power supply class")
	assert.Nil(t, c.Collect(context.Background()).Battery)
}

func TestCollectorHungReadTimesOut(t *testing.T) {
	src := sourcetesting.NewFakeSource().SetCPU(40).SetMemory(1, 2)
	release := src.BlockCPU()
	defer release()

	c := NewCollector(src, newFakeClock(), nil)
	c.SetTimeout(20 * time.Millisecond)

	done := make(chan Sample, 1)
	go func() { done <- c.Collect(context.Background()) }()

	select {
	case s := <-done:
		assert.False(t, s.CPUPercent.Valid, "hung read becomes unavailable")
		assert.True(t, s.MemoryUsed.Valid)
	case <-time.After(2 * time.Second):
		t.Fatal("Collect blocked on a hung read")
	}
}

func TestCollectorLogsFailureOncePerOutage(t *testing.T) {
	log := logger.NewBufferLogger()
	src := sourcetesting.NewFakeSource()
	src.CPUErr = errors.New("denied")
	c := NewCollector(src, newFakeClock(), log)

	c.Collect(context.Background())
	c.Collect(context.Background())
	c.Collect(context.Background())
	assert.Equal(t, 1, log.Count("warn"))

	src.CPUErr = nil
	c.Collect(context.Background())
	assert.Equal(t, 1, log.Count("info"))
}

func TestCollectorProcesses(t *testing.T) {
	clock := newFakeClock()
	src := sourcetesting.NewFakeSource().SetProcesses(source.Process{PID: 1, Name: "init"})
	c := NewCollector(src, clock, nil)

	procs, at, err := c.Processes(context.Background())
	require.NoError(t, err)
	assert.Len(t, procs, 1)
	assert.Equal(t, clock.Now(), at)

	src.ProcsErr = errors.New("boom")
	_, _, err = c.Processes(context.Background())
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrRead))
	assert.ErrorIs(t, err, src.ProcsErr)
}

func TestCollectorFailedReadsAreReadErrors(t *testing.T) {
	log := logger.NewBufferLogger()
	src := sourcetesting.NewFakeSource()
	src.InfoErr = errors.New("permission denied")
	src.DiskErr = errors.New("open /proc/diskstats: no such file or directory")
	c := NewCollector(src, newFakeClock(), log)

	_, err := c.SystemInfo(context.Background())
	require.Error(t, err)
	assert.True(t, tmerrors.IsCode(err, tmerrors.ErrRead))
	assert.Contains(t, err.Error(), "Couldn't read system info")

	c.Collect(context.Background())
	require.Len(t, log.Messages, 2)
	assert.Equal(t, "Couldn't read disk: open /proc/diskstats: no such file or directory", log.Messages[1].Message)
}

// slowProcesses serves the process table after a fixed delay.
type slowProcesses struct {
	*sourcetesting.FakeSource
	delay time.Duration
}

func (s slowProcesses) Processes(ctx context.Context) ([]source.Process, error) {
	select {
	case <-time.After(s.delay):
		return s.FakeSource.Processes(ctx)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCollectorProcessesUseTheirOwnTimeout(t *testing.T) {
	src := slowProcesses{
		FakeSource: sourcetesting.NewFakeSource().SetProcesses(source.Process{PID: 1, Name: "init"}),
		delay:      50 * time.Millisecond,
	}

	t.Run("large table outlasts the read timeout", func(t *testing.T) {
		c := NewCollector(src, newFakeClock(), nil)
		c.SetTimeout(10 * time.Millisecond)
		c.SetProcessTimeout(2 * time.Second)

		procs, _, err := c.Processes(context.Background())
		require.NoError(t, err)
		assert.Len(t, procs, 1)
	})

	t.Run("process timeout still applies", func(t *testing.T) {
		c := NewCollector(src, newFakeClock(), nil)
		c.SetProcessTimeout(10 * time.Millisecond)

		_, _, err := c.Processes(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestCollectorProbe(t *testing.T) {
	t.Run("one readable metric is enough", func(t *testing.T) {
		src := sourcetesting.NewFakeSource().FailAll(errors.New("nope"))
		src.NetErr = nil
		c := NewCollector(src, newFakeClock(), nil)
		assert.NoError(t, c.Probe(context.Background()))
	})

	t.Run("nothing readable is a source error", func(t *testing.T) {
		src := sourcetesting.NewFakeSource().FailAll(errors.New("nope"))
		c := NewCollector(src, newFakeClock(), nil)
		err := c.Probe(context.Background())
		require.Error(t, err)
		assert.True(t, tmerrors.IsCode(err, tmerrors.ErrSource))
	})

	t.Run("probe does not prime rates", func(t *testing.T) {
		clock := newFakeClock()
		src := sourcetesting.NewFakeSource().SetDisk(100, 100)
		c := NewCollector(src, clock, nil)
		require.NoError(t, c.Probe(context.Background()))

		clock.Advance(time.Second)
		src.SetDisk(500, 500)
		s := c.Collect(context.Background())
		assert.Equal(t, Available(0), s.DiskReadRate)
	})
}

func TestReadWithTimeout_ParentCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := readWithTimeout(ctx, time.Second, func(ctx context.Context) (int, error) {
		<-ctx.Done()
		return 0, ctx.Err()
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeltaRate(t *testing.T) {
	tests := []struct {
		name    string
		prev    uint64
		cur     uint64
		elapsed float64
		want    float64
	}{
		{"normal", 100, 150, 1, 50},
		{"half second", 0, 100, 0.5, 200},
		{"decrease", 200, 100, 1, 0},
		{"zero elapsed", 0, 100, 0, 0},
		{"negative elapsed", 0, 100, -1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, deltaRate(tt.prev, tt.cur, tt.elapsed))
		})
	}
}
