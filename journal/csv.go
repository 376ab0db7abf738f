package journal

import (
	"encoding/csv"
	"os"
	"strconv"

	"stockbt/backtest"
)

// CSVJournal writes one run's trades and daily valuations to a pair of CSV
// files for spreadsheet review.
type CSVJournal struct {
	tradesPath     string
	valuationsPath string
}

func NewCSV(tradesPath, valuationsPath string) *CSVJournal {
	return &CSVJournal{tradesPath: tradesPath, valuationsPath: valuationsPath}
}

func (j *CSVJournal) RecordRun(_ Run, trades []backtest.Trade, valuations []backtest.DailyValuation) error {
	if err := j.writeTrades(trades); err != nil {
		return err
	}
	return j.writeValuations(valuations)
}

func (j *CSVJournal) Close() error {
	return nil
}

func (j *CSVJournal) writeTrades(trades []backtest.Trade) error {
	f, err := os.Create(j.tradesPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"symbol", "trade_date", "action", "quantity", "price", "amount", "commission"}); err != nil {
		return err
	}
	for _, t := range trades {
		w.Write([]string{
			t.Symbol,
			t.Date,
			string(t.Action),
			strconv.Itoa(t.Quantity),
			f2(t.Price),
			f2(t.Amount),
			f2(t.Commission),
		})
	}
	w.Flush()
	return w.Error()
}

func (j *CSVJournal) writeValuations(valuations []backtest.DailyValuation) error {
	f, err := os.Create(j.valuationsPath)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"trade_date", "cash", "stock_value", "total_value", "daily_return", "cumulative_return", "positions"}); err != nil {
		return err
	}
	for _, v := range valuations {
		w.Write([]string{
			v.Date,
			f2(v.Cash),
			f2(v.StockValue),
			f2(v.TotalValue),
			f6(v.DailyReturn),
			f6(v.CumulativeReturn),
			strconv.Itoa(v.Positions),
		})
	}
	w.Flush()
	return w.Error()
}

func f2(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

func f6(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
