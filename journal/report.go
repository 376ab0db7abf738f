package journal

import (
	"io"
	"text/template"
)

var reportFuncs = template.FuncMap{
	"mul100": func(x float64) float64 { return x * 100.0 },
}

// WriteReport renders the run as a plain-text summary block.
func (r Run) WriteReport(w io.Writer) error {
	t, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return t.Execute(w, r)
}

const reportTemplate = `==================== Backtest Summary ====================
Strategy:          {{.Strategy}}
Run ID:            {{.RunID}}
Period:            {{.StartDate}} ~ {{.EndDate}} ({{.TradingDays}} trading days)
Initial capital:   {{printf "%.2f" .InitialCash}}
Final value:       {{printf "%.2f" .FinalValue}}
Total return:      {{printf "%.2f" (mul100 .TotalReturn)}}%
Annualized return: {{printf "%.2f" (mul100 .AnnualizedReturn)}}%
Max drawdown:      {{printf "%.2f" (mul100 .MaxDrawdown)}}%
Volatility:        {{printf "%.2f" (mul100 .Volatility)}}%
Sharpe ratio:      {{printf "%.2f" .SharpeRatio}}
Trades:            {{.Trades}}
Win rate:          {{printf "%.1f" (mul100 .WinRate)}}%
Avg holding days:  {{printf "%.1f" .AvgHoldingDays}}
==========================================================
`
