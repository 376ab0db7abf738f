package journal

const schema = `
CREATE TABLE IF NOT EXISTS backtest_runs (
	run_id TEXT PRIMARY KEY,
	created DATETIME NOT NULL,
	strategy TEXT NOT NULL,
	start_date TEXT NOT NULL,
	end_date TEXT NOT NULL,
	initial_cash REAL NOT NULL,
	final_value REAL NOT NULL,
	total_return REAL NOT NULL,
	annualized_return REAL NOT NULL,
	max_drawdown REAL NOT NULL,
	volatility REAL NOT NULL,
	sharpe_ratio REAL NOT NULL,
	trades INTEGER NOT NULL,
	win_rate REAL NOT NULL,
	avg_holding_days REAL NOT NULL,
	trading_days INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS trades (
	run_id TEXT NOT NULL,
	symbol TEXT NOT NULL,
	trade_date TEXT NOT NULL,
	action TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	price REAL NOT NULL,
	amount REAL NOT NULL,
	commission REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS daily_valuations (
	run_id TEXT NOT NULL,
	trade_date TEXT NOT NULL,
	cash REAL NOT NULL,
	stock_value REAL NOT NULL,
	total_value REAL NOT NULL,
	daily_return REAL NOT NULL,
	cumulative_return REAL NOT NULL,
	positions INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run ON trades(run_id, trade_date);
CREATE INDEX IF NOT EXISTS idx_valuations_run ON daily_valuations(run_id, trade_date);
`
