// Package strategies defines the signal-source contract consumed by the
// backtest engine and the concrete strategies that implement it.
package strategies

import (
	"fmt"
	"strings"

	"stockbt/market"
)

// Capability declares which signal roles a strategy supports. The engine only
// invokes the operations the capability advertises, so a buy-only strategy is
// never asked for exits.
type Capability uint8

const (
	CanBuy Capability = 1 << iota
	CanSell
)

func (c Capability) Buys() bool  { return c&CanBuy != 0 }
func (c Capability) Sells() bool { return c&CanSell != 0 }

func (c Capability) String() string {
	switch {
	case c.Buys() && c.Sells():
		return "combined"
	case c.Buys():
		return "buy-only"
	case c.Sells():
		return "sell-only"
	}
	return "none"
}

// Holding is a read-only snapshot of an open position, handed to
// sell-capable strategies. Strategies never touch the ledger itself.
type Holding struct {
	Symbol   string
	Quantity int
	AvgCost  float64
	BuyDate  string // trade date key of the opening buy
}

// Strategy is the base contract every signal source implements.
//
// OnBar is called exactly once per symbol per trading date, before any signal
// query for that bar, and is where a strategy maintains its own bounded
// rolling state. ShouldBuy/ShouldSell must be pure queries on that state.
type Strategy interface {
	Name() string
	Initialize() error
	Capability() Capability
	OnBar(bar market.Bar)
}

// BuySignaler produces entry signals and advises a position size.
type BuySignaler interface {
	Strategy
	ShouldBuy(symbol string, bar market.Bar) bool
	// PositionSize recommends a buy quantity given the bar's close price and
	// the cash currently available. The result is floored to whole lots.
	PositionSize(symbol string, price, cash float64) int
}

// SellSignaler produces exit signals for a currently held symbol.
type SellSignaler interface {
	Strategy
	ShouldSell(symbol string, bar market.Bar, h Holding) bool
}

// Config carries the allocation parameters strategies are constructed with.
type Config struct {
	InitialCash   float64 `json:"initial_cash" yaml:"initial_cash"`
	MaxPositions  int     `json:"max_positions" yaml:"max_positions"`
	AllocationPct float64 `json:"allocation_pct" yaml:"allocation_pct"`
	LotSize       int     `json:"lot_size" yaml:"lot_size"`
}

// DefaultConfig mirrors the reference-market conventions: 100k starting
// cash, at most 5 concurrent names, 100-share lots.
func DefaultConfig() Config {
	return Config{
		InitialCash:  100_000,
		MaxPositions: 5,
		LotSize:      100,
	}
}

// Allocation returns the cash fraction to target per new position:
// an explicit AllocationPct wins, otherwise equal weight across
// MaxPositions, otherwise 95% of cash.
func (c Config) Allocation() float64 {
	if c.AllocationPct > 0 {
		return c.AllocationPct
	}
	if c.MaxPositions > 0 {
		return 1.0 / float64(c.MaxPositions)
	}
	return 0.95
}

// Lot returns the configured lot size, defaulting to 100 shares.
func (c Config) Lot() int {
	if c.LotSize > 0 {
		return c.LotSize
	}
	return 100
}

// AllocQuantity converts a cash allocation into a lot-floored share count.
func AllocQuantity(cash, price, alloc float64, lot int) int {
	if cash <= 0 || price <= 0 || alloc <= 0 || lot <= 0 {
		return 0
	}
	return int(cash*alloc/price) / lot * lot
}

// New constructs a strategy by name. Moving-average windows apply to
// simple-ma only; other strategies ignore them.
func New(name string, cfg Config, short, long int) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "simple-ma", "ma-cross":
		return NewSimpleMA(cfg, short, long), nil

	case "red-three-soldiers", "red3":
		return NewRedThreeSoldiers(cfg), nil

	case "drop-stop-loss":
		return NewDropStopLoss(), nil

	case "red3-stop-loss":
		// Pattern entries with the stop-loss exit instead of next-day sell.
		return Compose(NewRedThreeSoldiers(cfg), NewDropStopLoss()), nil

	default:
		return nil, fmt.Errorf("unknown strategy %q (supported: simple-ma, red-three-soldiers, drop-stop-loss, red3-stop-loss)", name)
	}
}

// Names lists the strategy names New accepts.
func Names() []string {
	return []string{"simple-ma", "red-three-soldiers", "drop-stop-loss", "red3-stop-loss"}
}
