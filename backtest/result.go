// Package backtest simulates strategy trading over historical daily bars and
// derives performance metrics from the resulting equity curve and trade log.
package backtest

// Action is the side of an executed trade.
type Action string

const (
	Buy  Action = "buy"
	Sell Action = "sell"
)

// Trade is one executed order, appended to the run's trade log and never
// mutated afterwards. Amount is the gross quantity*price, commission is
// charged on top.
type Trade struct {
	Symbol     string
	Date       string
	Action     Action
	Quantity   int
	Price      float64
	Amount     float64
	Commission float64
}

// DailyValuation is one end-of-date snapshot of the portfolio. TotalValue is
// recomputed from the day's prices every date, never carried forward by
// addition, so TotalValue == Cash + StockValue holds by construction.
type DailyValuation struct {
	Date             string
	Cash             float64
	StockValue       float64
	TotalValue       float64
	DailyReturn      float64
	CumulativeReturn float64
	Positions        int
}

// Summary is the reduced view of a whole backtest run.
type Summary struct {
	StrategyName     string
	StartDate        string
	EndDate          string
	InitialCash      float64
	FinalValue       float64
	TotalReturn      float64
	AnnualizedReturn float64
	MaxDrawdown      float64 // peak-to-trough, in [-1, 0]
	Volatility       float64 // annualized stddev of daily returns
	SharpeRatio      float64
	TotalTrades      int
	WinRate          float64 // fraction of matched exits closed at a profit
	AvgHoldingDays   float64
	TradingDays      int
}

// Result bundles the summary with the full logs, handed off to reporting.
type Result struct {
	Summary    Summary
	Trades     []Trade
	Valuations []DailyValuation
}
