package monitor

import (
	"math"
	"testing"

	"github.com/kartikahlawat/Taks-manager/internal/source"
	"github.com/stretchr/testify/assert"
)

func TestMetricOrNaN(t *testing.T) {
	assert.Equal(t, 3.5, Available(3.5).OrNaN())
	assert.True(t, math.IsNaN(Unavailable.OrNaN()))
}

func TestSampleMemoryPercent(t *testing.T) {
	s := Sample{MemoryUsed: Available(4), MemoryTotal: Available(16)}
	assert.Equal(t, Available(25), s.MemoryPercent())

	assert.Equal(t, Unavailable, Sample{MemoryUsed: Available(4)}.MemoryPercent())
	assert.Equal(t, Unavailable, Sample{MemoryUsed: Available(0), MemoryTotal: Available(0)}.MemoryPercent())
}

func TestSampleAnyValid(t *testing.T) {
	assert.False(t, Sample{}.AnyValid())
	assert.True(t, Sample{NetRecvRate: Available(0)}.AnyValid())
	assert.True(t, Sample{Battery: &source.Battery{Percent: 50}}.AnyValid())
}
