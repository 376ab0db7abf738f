// Package indicators provides streaming indicators computed over daily
// closing prices.
package indicators

import "fmt"

// SMA is a streaming Simple Moving Average over the most recent closes.
type SMA struct {
	period int
	window []float64
}

// NewSMA creates a Simple Moving Average indicator with the given period.
func NewSMA(period int) *SMA {
	return &SMA{
		period: period,
		window: make([]float64, 0, period),
	}
}

func (m *SMA) Name() string {
	return fmt.Sprintf("SMA(%d)", m.period)
}

func (m *SMA) Warmup() int {
	return m.period
}

func (m *SMA) Reset() {
	m.window = m.window[:0]
}

// Update feeds one closing price. Only the last 'period' values are kept.
func (m *SMA) Update(close float64) {
	m.window = append(m.window, close)
	if len(m.window) > m.period {
		copy(m.window, m.window[1:])
		m.window = m.window[:m.period]
	}
}

func (m *SMA) Ready() bool {
	return len(m.window) >= m.period
}

func (m *SMA) Value() float64 {
	if !m.Ready() {
		return 0
	}
	sum := 0.0
	for _, c := range m.window {
		sum += c
	}
	return sum / float64(len(m.window))
}
