package strategies

import "stockbt/market"

var (
	_ BuySignaler  = (*Composite)(nil)
	_ SellSignaler = (*Composite)(nil)
)

// Composite pairs an entry strategy with an independent exit strategy into a
// single combined signal source, e.g. pattern entries with a stop-loss exit.
type Composite struct {
	buy  BuySignaler
	sell SellSignaler
}

// Compose builds a combined strategy from a buy leg and a sell leg.
func Compose(buy BuySignaler, sell SellSignaler) *Composite {
	return &Composite{buy: buy, sell: sell}
}

func (c *Composite) Name() string {
	return c.buy.Name() + "+" + c.sell.Name()
}

func (c *Composite) Initialize() error {
	if err := c.buy.Initialize(); err != nil {
		return err
	}
	return c.sell.Initialize()
}

func (c *Composite) Capability() Capability {
	return CanBuy | CanSell
}

func (c *Composite) OnBar(bar market.Bar) {
	c.buy.OnBar(bar)
	c.sell.OnBar(bar)
}

func (c *Composite) ShouldBuy(symbol string, bar market.Bar) bool {
	return c.buy.ShouldBuy(symbol, bar)
}

func (c *Composite) PositionSize(symbol string, price, cash float64) int {
	return c.buy.PositionSize(symbol, price, cash)
}

func (c *Composite) ShouldSell(symbol string, bar market.Bar, h Holding) bool {
	return c.sell.ShouldSell(symbol, bar, h)
}
