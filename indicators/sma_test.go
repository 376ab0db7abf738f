package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSMAWarmupAndValue(t *testing.T) {
	m := NewSMA(3)
	assert.Equal(t, 3, m.Warmup())
	assert.Equal(t, "SMA(3)", m.Name())

	m.Update(10)
	m.Update(11)
	assert.False(t, m.Ready())
	assert.Zero(t, m.Value(), "no value before warmup")

	m.Update(12)
	assert.True(t, m.Ready())
	assert.InDelta(t, 11.0, m.Value(), 1e-9)
}

func TestSMASlidesWindow(t *testing.T) {
	m := NewSMA(3)
	for _, c := range []float64{10, 11, 12, 16} {
		m.Update(c)
	}
	assert.InDelta(t, 13.0, m.Value(), 1e-9)

	m.Update(20)
	assert.InDelta(t, 16.0, m.Value(), 1e-9)
}

func TestSMAReset(t *testing.T) {
	m := NewSMA(2)
	m.Update(10)
	m.Update(12)
	assert.True(t, m.Ready())

	m.Reset()
	assert.False(t, m.Ready())
	m.Update(4)
	m.Update(6)
	assert.InDelta(t, 5.0, m.Value(), 1e-9)
}
