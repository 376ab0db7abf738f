package backtest

import (
	"fmt"
	"log/slog"

	"stockbt/market"
	"stockbt/strategies"
)

// Config carries the execution parameters of one backtest run.
type Config struct {
	InitialCash    float64
	CommissionRate float64 // per-side fraction of the gross amount
	MinCashToBuy   float64 // working threshold below which buys stop
	RiskFreeRate   float64 // annual, for the Sharpe ratio
}

// Defaults mirror the reference market conventions: 100k starting cash,
// 0.03% commission, a 1000 working-cash floor and a 3% risk-free rate.
func (c Config) withDefaults() Config {
	if c.InitialCash <= 0 {
		c.InitialCash = 100_000
	}
	if c.CommissionRate < 0 {
		c.CommissionRate = 0
	}
	if c.MinCashToBuy <= 0 {
		c.MinCashToBuy = 1000
	}
	return c
}

// Engine replays a BarSet through a strategy, one trading date at a time,
// against a single Ledger it owns exclusively. The replay is synchronous and
// deterministic: dates ascend, bars within a date are symbol-ordered, and
// within a date a symbol's exit is always evaluated before any entry, so a
// name sold today is never re-entered on the same bar.
type Engine struct {
	feed *market.BarSet
	cfg  Config
	log  *slog.Logger
}

func NewEngine(feed *market.BarSet, cfg Config) *Engine {
	return &Engine{
		feed: feed,
		cfg:  cfg.withDefaults(),
		log:  slog.Default(),
	}
}

// SetLogger replaces the engine's logger (defaults to slog.Default).
func (e *Engine) SetLogger(l *slog.Logger) {
	if l != nil {
		e.log = l
	}
}

// Run executes the full replay and reduces it into a Result. An empty feed
// yields an empty result (initial capital unchanged, zero trades), not an
// error; only structural violations, such as a strategy requesting an
// oversized sell, abort the run.
func (e *Engine) Run(strat strategies.Strategy) (*Result, error) {
	if err := strat.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize %s: %w", strat.Name(), err)
	}

	capability := strat.Capability()
	buyer, _ := strat.(strategies.BuySignaler)
	seller, _ := strat.(strategies.SellSignaler)
	if capability.Buys() && buyer == nil {
		return nil, fmt.Errorf("strategy %s declares buy capability but implements no buy signals", strat.Name())
	}
	if capability.Sells() && seller == nil {
		return nil, fmt.Errorf("strategy %s declares sell capability but implements no sell signals", strat.Name())
	}

	dates := e.feed.Dates()
	analyzer := Analyzer{RiskFreeRate: e.cfg.RiskFreeRate}
	if len(dates) == 0 {
		e.log.Warn("no bars in range", "strategy", strat.Name())
		return &Result{Summary: analyzer.Summarize(strat.Name(), e.cfg.InitialCash, nil, nil)}, nil
	}

	e.log.Info("backtest start",
		"strategy", strat.Name(), "capability", capability.String(),
		"days", len(dates), "initial_cash", e.cfg.InitialCash)

	ledger := NewLedger(e.cfg.InitialCash)
	var trades []Trade
	valuations := make([]DailyValuation, 0, len(dates))
	prevTotal := e.cfg.InitialCash

	for _, date := range dates {
		bars := e.feed.ForDate(date)

		prices := make(map[string]float64, len(bars))
		for _, b := range bars {
			prices[b.Symbol] = b.Close
		}

		for _, bar := range bars {
			strat.OnBar(bar)
			symbol := bar.Symbol

			if pos, held := ledger.Position(symbol); held {
				if capability.Sells() && seller.ShouldSell(symbol, bar, holding(pos)) {
					// Exits always close the entire held quantity.
					commission := float64(pos.Quantity) * bar.Close * e.cfg.CommissionRate
					tr, err := ledger.ApplySell(symbol, date, pos.Quantity, bar.Close, commission)
					if err != nil {
						return nil, fmt.Errorf("%s %s: %w", date, strat.Name(), err)
					}
					trades = append(trades, tr)
					e.log.Info("sell",
						"date", date, "symbol", symbol, "quantity", tr.Quantity,
						"price", tr.Price, "commission", tr.Commission)
				}
				// Held at the start of this bar: no entry evaluation today.
				continue
			}

			if !capability.Buys() || ledger.Cash() <= e.cfg.MinCashToBuy {
				continue
			}
			if !buyer.ShouldBuy(symbol, bar) {
				continue
			}

			quantity := buyer.PositionSize(symbol, bar.Close, ledger.Cash())
			if quantity <= 0 {
				continue
			}
			amount := float64(quantity) * bar.Close
			commission := amount * e.cfg.CommissionRate
			if amount+commission > ledger.Cash() {
				// Unaffordable signal is dropped for this date, not queued.
				e.log.Debug("buy dropped: insufficient cash",
					"date", date, "symbol", symbol, "quantity", quantity, "cash", ledger.Cash())
				continue
			}
			tr, err := ledger.ApplyBuy(symbol, date, quantity, bar.Close, commission)
			if err != nil {
				return nil, fmt.Errorf("%s %s: %w", date, strat.Name(), err)
			}
			trades = append(trades, tr)
			e.log.Info("buy",
				"date", date, "symbol", symbol, "quantity", tr.Quantity,
				"price", tr.Price, "commission", tr.Commission)
		}

		total, stockValue := ledger.Valuate(prices)
		dailyReturn := 0.0
		if prevTotal > 0 {
			dailyReturn = (total - prevTotal) / prevTotal
		}
		cumulative := 0.0
		if e.cfg.InitialCash > 0 {
			cumulative = (total - e.cfg.InitialCash) / e.cfg.InitialCash
		}
		valuations = append(valuations, DailyValuation{
			Date:             date,
			Cash:             ledger.Cash(),
			StockValue:       stockValue,
			TotalValue:       total,
			DailyReturn:      dailyReturn,
			CumulativeReturn: cumulative,
			Positions:        ledger.OpenPositions(),
		})
		prevTotal = total
	}

	result := &Result{
		Summary:    analyzer.Summarize(strat.Name(), e.cfg.InitialCash, valuations, trades),
		Trades:     trades,
		Valuations: valuations,
	}
	e.log.Info("backtest done",
		"strategy", strat.Name(),
		"final_value", result.Summary.FinalValue,
		"total_return", result.Summary.TotalReturn,
		"trades", result.Summary.TotalTrades)
	return result, nil
}

func holding(p Position) strategies.Holding {
	return strategies.Holding{
		Symbol:   p.Symbol,
		Quantity: p.Quantity,
		AvgCost:  p.AvgCost,
		BuyDate:  p.BuyDate,
	}
}
