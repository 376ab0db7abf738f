package strategies

import "stockbt/market"

// Ring is a fixed-capacity buffer of the most recent bars for one symbol.
// Pushing beyond capacity evicts the oldest bar, so per-symbol history stays
// bounded no matter how long the replay runs.
type Ring struct {
	buf   []market.Bar
	start int
	n     int
}

// NewRing creates a ring holding at most capacity bars.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring{buf: make([]market.Bar, capacity)}
}

// Push appends a bar, evicting the oldest when full.
func (r *Ring) Push(b market.Bar) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = b
		r.n++
		return
	}
	r.buf[r.start] = b
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of bars currently held.
func (r *Ring) Len() int {
	return r.n
}

// At returns the i-th bar in chronological order (0 is the oldest).
func (r *Ring) At(i int) market.Bar {
	return r.buf[(r.start+i)%len(r.buf)]
}

// Last returns a copy of the most recent n bars in chronological order, or
// nil when fewer than n are held.
func (r *Ring) Last(n int) []market.Bar {
	if n <= 0 || n > r.n {
		return nil
	}
	out := make([]market.Bar, n)
	for i := 0; i < n; i++ {
		out[i] = r.At(r.n - n + i)
	}
	return out
}
