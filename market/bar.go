// Package market holds the daily bar data model shared by the data store,
// the backtest engine and the strategies.
package market

import (
	"fmt"
	"time"
)

// DateLayout is the trade date key format used throughout: YYYYMMDD.
const DateLayout = "20060102"

// Bar is one symbol's OHLCV record for one trading date. Bars are immutable
// once loaded.
type Bar struct {
	Symbol   string
	Date     string // trade date key, YYYYMMDD
	Open     float64
	High     float64
	Low      float64
	Close    float64
	PreClose float64
	Volume   float64
	Amount   float64
	PctChg   float64 // percent change vs previous close, e.g. 2.5 for +2.5%
}

// IsUp reports whether the bar closed above its open.
func (b Bar) IsUp() bool {
	return b.Close > b.Open
}

// BodyRatio returns the candle body (|close-open|) as a fraction of the full
// high-low range. Returns 0 when the range is zero.
func (b Bar) BodyRatio() float64 {
	r := b.High - b.Low
	if r <= 0 {
		return 0
	}
	body := b.Close - b.Open
	if body < 0 {
		body = -body
	}
	return body / r
}

// Gain returns the close-over-open change as a fraction of the open.
func (b Bar) Gain() float64 {
	if b.Open <= 0 {
		return 0
	}
	return (b.Close - b.Open) / b.Open
}

// ParseDate converts a YYYYMMDD date key to a time.Time in UTC.
func ParseDate(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, key, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad trade date %q: %w", key, err)
	}
	return t, nil
}

// FormatDate converts a time.Time to a YYYYMMDD date key.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns the number of calendar days from key a to key b,
// negative when b is before a.
func DaysBetween(a, b string) (int, error) {
	ta, err := ParseDate(a)
	if err != nil {
		return 0, err
	}
	tb, err := ParseDate(b)
	if err != nil {
		return 0, err
	}
	return int(tb.Sub(ta).Hours() / 24), nil
}
