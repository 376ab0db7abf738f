package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"stockbt/backtest"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

// RecordRun writes the run row and its trade and valuation logs in one
// transaction.
func (j *SQLite) RecordRun(run Run, trades []backtest.Trade, valuations []backtest.DailyValuation) error {
	tx, err := j.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO backtest_runs
		(run_id, created, strategy, start_date, end_date, initial_cash, final_value,
		 total_return, annualized_return, max_drawdown, volatility, sharpe_ratio,
		 trades, win_rate, avg_holding_days, trading_days)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Created, run.Strategy, run.StartDate, run.EndDate,
		run.InitialCash, run.FinalValue, run.TotalReturn, run.AnnualizedReturn,
		run.MaxDrawdown, run.Volatility, run.SharpeRatio,
		run.Trades, run.WinRate, run.AvgHoldingDays, run.TradingDays,
	)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}

	for _, t := range trades {
		if _, err := tx.Exec(`
			INSERT INTO trades
			(run_id, symbol, trade_date, action, quantity, price, amount, commission)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, t.Symbol, t.Date, string(t.Action), t.Quantity, t.Price, t.Amount, t.Commission,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record trade: %w", err)
		}
	}

	for _, v := range valuations {
		if _, err := tx.Exec(`
			INSERT INTO daily_valuations
			(run_id, trade_date, cash, stock_value, total_value, daily_return, cumulative_return, positions)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, v.Date, v.Cash, v.StockValue, v.TotalValue, v.DailyReturn, v.CumulativeReturn, v.Positions,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record valuation: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun returns a single run row by ID.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var r Run
	row := j.db.QueryRow(`
		SELECT run_id, created, strategy, start_date, end_date, initial_cash, final_value,
		       total_return, annualized_return, max_drawdown, volatility, sharpe_ratio,
		       trades, win_rate, avg_holding_days, trading_days
		FROM backtest_runs WHERE run_id = ?`, runID)

	err := row.Scan(
		&r.RunID, &r.Created, &r.Strategy, &r.StartDate, &r.EndDate,
		&r.InitialCash, &r.FinalValue, &r.TotalReturn, &r.AnnualizedReturn,
		&r.MaxDrawdown, &r.Volatility, &r.SharpeRatio,
		&r.Trades, &r.WinRate, &r.AvgHoldingDays, &r.TradingDays,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns all run rows, newest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, created, strategy, start_date, end_date, initial_cash, final_value,
		       total_return, annualized_return, max_drawdown, volatility, sharpe_ratio,
		       trades, win_rate, avg_holding_days, trading_days
		FROM backtest_runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.RunID, &r.Created, &r.Strategy, &r.StartDate, &r.EndDate,
			&r.InitialCash, &r.FinalValue, &r.TotalReturn, &r.AnnualizedReturn,
			&r.MaxDrawdown, &r.Volatility, &r.SharpeRatio,
			&r.Trades, &r.WinRate, &r.AvgHoldingDays, &r.TradingDays,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// TradesByRun returns the trade log of a run in date order.
func (j *SQLite) TradesByRun(runID string) ([]backtest.Trade, error) {
	rows, err := j.db.Query(`
		SELECT symbol, trade_date, action, quantity, price, amount, commission
		FROM trades WHERE run_id = ? ORDER BY trade_date, symbol`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backtest.Trade
	for rows.Next() {
		var t backtest.Trade
		var action string
		if err := rows.Scan(&t.Symbol, &t.Date, &action, &t.Quantity, &t.Price, &t.Amount, &t.Commission); err != nil {
			return nil, err
		}
		t.Action = backtest.Action(action)
		out = append(out, t)
	}
	return out, rows.Err()
}

// ValuationsByRun returns the daily valuation series of a run in date order.
func (j *SQLite) ValuationsByRun(runID string) ([]backtest.DailyValuation, error) {
	rows, err := j.db.Query(`
		SELECT trade_date, cash, stock_value, total_value, daily_return, cumulative_return, positions
		FROM daily_valuations WHERE run_id = ? ORDER BY trade_date`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []backtest.DailyValuation
	for rows.Next() {
		var v backtest.DailyValuation
		if err := rows.Scan(&v.Date, &v.Cash, &v.StockValue, &v.TotalValue, &v.DailyReturn, &v.CumulativeReturn, &v.Positions); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
