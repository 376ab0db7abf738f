package backtest

import "math"

// TradingDaysPerYear is the annualization convention for daily bars.
const TradingDaysPerYear = 252

// Analyzer reduces a run's valuation series and trade log into summary
// metrics.
type Analyzer struct {
	RiskFreeRate float64 // annual
}

// Summarize computes the full metric set. A run with no trading days yields
// a degenerate summary (final value == initial cash, zero everything); the
// zero trading-day count is the caller's signal, never an error.
func (a Analyzer) Summarize(strategyName string, initialCash float64, valuations []DailyValuation, trades []Trade) Summary {
	s := Summary{
		StrategyName: strategyName,
		InitialCash:  initialCash,
		FinalValue:   initialCash,
		TotalTrades:  len(trades),
		TradingDays:  len(valuations),
	}
	if len(valuations) == 0 {
		return s
	}

	s.StartDate = valuations[0].Date
	s.EndDate = valuations[len(valuations)-1].Date
	s.FinalValue = valuations[len(valuations)-1].TotalValue

	if initialCash > 0 {
		s.TotalReturn = s.FinalValue/initialCash - 1
	}
	if s.TradingDays > 0 {
		s.AnnualizedReturn = math.Pow(1+s.TotalReturn, TradingDaysPerYear/float64(s.TradingDays)) - 1
	}

	returns := make([]float64, len(valuations))
	for i, v := range valuations {
		returns[i] = v.DailyReturn
	}
	s.MaxDrawdown = maxDrawdown(returns)
	s.Volatility = annualizedVolatility(returns)
	if s.Volatility > 0 {
		s.SharpeRatio = (s.AnnualizedReturn - a.RiskFreeRate) / s.Volatility
	}

	s.WinRate, s.AvgHoldingDays = matchTrades(trades, valuations)
	return s
}

// maxDrawdown builds the cumulative curve as a running product of
// (1+dailyReturn) and reports the most negative distance from the running
// peak. Always in [-1, 0].
func maxDrawdown(returns []float64) float64 {
	cum, peak, maxDD := 1.0, 1.0, 0.0
	for _, r := range returns {
		cum *= 1 + r
		if cum > peak {
			peak = cum
		}
		if peak > 0 {
			if dd := (cum - peak) / peak; dd < maxDD {
				maxDD = dd
			}
		}
	}
	if maxDD < -1 {
		maxDD = -1
	}
	return maxDD
}

// annualizedVolatility is the sample standard deviation of daily returns
// scaled by sqrt(252); zero with fewer than two observations.
func annualizedVolatility(returns []float64) float64 {
	if len(returns) < 2 {
		return 0
	}
	mean := 0.0
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	variance := 0.0
	for _, r := range returns {
		d := r - mean
		variance += d * d
	}
	variance /= float64(len(returns) - 1)

	return math.Sqrt(variance) * math.Sqrt(TradingDaysPerYear)
}

// matchTrades pairs buys and sells per symbol with the same running
// average-cost rule the Ledger uses (buy commission in the basis) and
// derives the win rate and the average holding period in trading days.
// Sells with no matching prior buy are data anomalies and are excluded from
// both metrics.
func matchTrades(trades []Trade, valuations []DailyValuation) (winRate, avgHoldingDays float64) {
	dateIndex := make(map[string]int, len(valuations))
	for i, v := range valuations {
		dateIndex[v.Date] = i
	}

	type lot struct {
		quantity int
		basis    float64
		buyIdx   int
	}
	open := make(map[string]*lot)

	wins, losses := 0, 0
	holdSum, holdCount := 0.0, 0

	for _, t := range trades {
		switch t.Action {
		case Buy:
			p, ok := open[t.Symbol]
			if !ok {
				p = &lot{buyIdx: dateIndex[t.Date]}
				open[t.Symbol] = p
			}
			p.basis += t.Amount + t.Commission
			p.quantity += t.Quantity

		case Sell:
			p, ok := open[t.Symbol]
			if !ok || p.quantity <= 0 || t.Quantity > p.quantity {
				continue
			}
			avgCost := p.basis / float64(p.quantity)
			net := float64(t.Quantity)*(t.Price-avgCost) - t.Commission
			if net > 0 {
				wins++
			} else {
				losses++
			}
			if sellIdx, ok := dateIndex[t.Date]; ok {
				holdSum += float64(sellIdx - p.buyIdx)
				holdCount++
			}
			p.basis -= avgCost * float64(t.Quantity)
			p.quantity -= t.Quantity
			if p.quantity == 0 {
				delete(open, t.Symbol)
			}
		}
	}

	if wins+losses > 0 {
		winRate = float64(wins) / float64(wins+losses)
	}
	if holdCount > 0 {
		avgHoldingDays = holdSum / float64(holdCount)
	}
	return winRate, avgHoldingDays
}
