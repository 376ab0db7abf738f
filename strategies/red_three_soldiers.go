package strategies

import (
	"log/slog"
	"strings"

	"stockbt/market"
)

var (
	_ BuySignaler  = (*RedThreeSoldiers)(nil)
	_ SellSignaler = (*RedThreeSoldiers)(nil)
)

// Bars of history kept per symbol: 5 baseline days for the volume test plus
// the 3 pattern days.
const red3Lookback = 8

// RedThreeSoldiers buys the classic three-white-soldiers candle pattern and
// exits at the close of the first bar after the entry date.
//
// Entry requires, over the last three bars:
//   - every bar closes above its open
//   - each open steps up but stays inside the previous bar's body
//   - closes strictly rising
//   - each bar's volume exceeds half the maximum volume of the 5 bars
//     before the pattern
//   - each bar's body covers at least half of its high-low range
//   - each bar gains at least 1% close-over-open
//   - the symbol is a Shanghai/Shenzhen main-board listing
type RedThreeSoldiers struct {
	cfg     Config
	history map[string]*Ring
}

func NewRedThreeSoldiers(cfg Config) *RedThreeSoldiers {
	return &RedThreeSoldiers{
		cfg:     cfg,
		history: make(map[string]*Ring),
	}
}

func (s *RedThreeSoldiers) Name() string {
	return "red-three-soldiers"
}

func (s *RedThreeSoldiers) Initialize() error {
	return nil
}

func (s *RedThreeSoldiers) Capability() Capability {
	return CanBuy | CanSell
}

func (s *RedThreeSoldiers) OnBar(bar market.Bar) {
	r, ok := s.history[bar.Symbol]
	if !ok {
		r = NewRing(red3Lookback)
		s.history[bar.Symbol] = r
	}
	r.Push(bar)
}

func (s *RedThreeSoldiers) ShouldBuy(symbol string, bar market.Bar) bool {
	if !IsMainBoard(symbol) {
		return false
	}
	r := s.history[symbol]
	if r == nil || r.Len() < red3Lookback {
		return false
	}

	bars := r.Last(red3Lookback)
	baseline, pattern := bars[:red3Lookback-3], bars[red3Lookback-3:]

	if !isRedThreeSoldiers(pattern) {
		return false
	}

	// Volume confirmation: each pattern day trades more than half of the
	// busiest baseline day.
	maxVol := 0.0
	for _, b := range baseline {
		if b.Volume > maxVol {
			maxVol = b.Volume
		}
	}
	for _, b := range pattern {
		if b.Volume <= maxVol*0.5 {
			return false
		}
	}

	slog.Debug("red three soldiers pattern",
		"symbol", symbol, "date", bar.Date,
		"closes", []float64{pattern[0].Close, pattern[1].Close, pattern[2].Close})
	return true
}

// ShouldSell exits on the first bar strictly after the entry date,
// regardless of profit or loss.
func (s *RedThreeSoldiers) ShouldSell(_ string, bar market.Bar, h Holding) bool {
	return h.BuyDate != "" && bar.Date > h.BuyDate
}

func (s *RedThreeSoldiers) PositionSize(_ string, price, cash float64) int {
	return AllocQuantity(cash, price, s.cfg.Allocation(), s.cfg.Lot())
}

// isRedThreeSoldiers checks the candle geometry over exactly three bars in
// chronological order.
func isRedThreeSoldiers(bars []market.Bar) bool {
	if len(bars) != 3 {
		return false
	}
	d1, d2, d3 := bars[0], bars[1], bars[2]

	// Three up days.
	if !d1.IsUp() || !d2.IsUp() || !d3.IsUp() {
		return false
	}

	// Opens step up inside the previous body.
	if !(d2.Open > d1.Open && d2.Open <= d1.Close) {
		return false
	}
	if !(d3.Open > d2.Open && d3.Open <= d2.Close) {
		return false
	}

	// Closes strictly rising.
	if !(d2.Close > d1.Close && d3.Close > d2.Close) {
		return false
	}

	// Solid bodies and meaningful gains.
	for _, b := range bars {
		if b.BodyRatio() < 0.5 {
			return false
		}
		if b.Gain() < 0.01 {
			return false
		}
	}
	return true
}

// IsMainBoard reports whether the symbol is a Shanghai/Shenzhen main-board
// listing, e.g. 000001.SZ or 600519.SH.
func IsMainBoard(symbol string) bool {
	code, exchange, ok := strings.Cut(symbol, ".")
	if !ok || len(code) != 6 {
		return false
	}
	switch exchange {
	case "SZ":
		return strings.HasPrefix(code, "000")
	case "SH":
		for _, p := range []string{"600", "601", "603", "605"} {
			if strings.HasPrefix(code, p) {
				return true
			}
		}
	}
	return false
}
