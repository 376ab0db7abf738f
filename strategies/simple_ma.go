package strategies

import (
	"log/slog"

	"stockbt/indicators"
	"stockbt/market"
)

// Compile-time interface checks.
var (
	_ BuySignaler  = (*SimpleMA)(nil)
	_ SellSignaler = (*SimpleMA)(nil)
)

// SimpleMA is a moving-average crossover strategy: buy when the short SMA
// crosses above the long SMA (golden cross), sell when it crosses below.
// Per-symbol state is bounded by the SMA windows themselves.
type SimpleMA struct {
	cfg   Config
	short int
	long  int

	fast  map[string]*indicators.SMA
	slow  map[string]*indicators.SMA
	trend map[string]int // +1 bullish, -1 bearish, 0 unknown
	cross map[string]int // cross event on the current bar, reset each OnBar
}

// NewSimpleMA creates the crossover strategy with the given windows
// (defaults 5/20 when non-positive).
func NewSimpleMA(cfg Config, short, long int) *SimpleMA {
	if short <= 0 {
		short = 5
	}
	if long <= 0 {
		long = 20
	}
	return &SimpleMA{
		cfg:   cfg,
		short: short,
		long:  long,
		fast:  make(map[string]*indicators.SMA),
		slow:  make(map[string]*indicators.SMA),
		trend: make(map[string]int),
		cross: make(map[string]int),
	}
}

func (s *SimpleMA) Name() string {
	return "simple-ma"
}

func (s *SimpleMA) Initialize() error {
	return nil
}

func (s *SimpleMA) Capability() Capability {
	return CanBuy | CanSell
}

func (s *SimpleMA) OnBar(bar market.Bar) {
	sym := bar.Symbol
	fast, ok := s.fast[sym]
	if !ok {
		fast = indicators.NewSMA(s.short)
		s.fast[sym] = fast
	}
	slow, ok := s.slow[sym]
	if !ok {
		slow = indicators.NewSMA(s.long)
		s.slow[sym] = slow
	}

	fast.Update(bar.Close)
	slow.Update(bar.Close)

	s.cross[sym] = 0
	if !fast.Ready() || !slow.Ready() {
		return
	}

	tr := 0
	switch {
	case fast.Value() > slow.Value():
		tr = +1
	case fast.Value() < slow.Value():
		tr = -1
	}
	if tr != 0 && tr != s.trend[sym] {
		s.cross[sym] = tr
		slog.Debug("ma cross",
			"symbol", sym, "date", bar.Date, "dir", tr,
			"fast", fast.Value(), "slow", slow.Value())
	}
	if tr != 0 {
		s.trend[sym] = tr
	}
}

// ShouldBuy fires on the bar where the golden cross happened.
func (s *SimpleMA) ShouldBuy(symbol string, _ market.Bar) bool {
	return s.cross[symbol] == +1
}

// ShouldSell fires on the bar where the death cross happened.
func (s *SimpleMA) ShouldSell(symbol string, _ market.Bar, _ Holding) bool {
	return s.cross[symbol] == -1
}

// PositionSize allocates an equal-weight slice of available cash, floored to
// whole lots.
func (s *SimpleMA) PositionSize(_ string, price, cash float64) int {
	return AllocQuantity(cash, price, s.cfg.Allocation(), s.cfg.Lot())
}
