// Package store persists daily price bars in SQLite and serves them back as
// replay-ready bar sets.
package store

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"stockbt/market"
)

const schema = `
CREATE TABLE IF NOT EXISTS daily_prices (
	symbol TEXT NOT NULL,
	trade_date TEXT NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	pre_close REAL NOT NULL DEFAULT 0,
	vol REAL NOT NULL DEFAULT 0,
	amount REAL NOT NULL DEFAULT 0,
	pct_chg REAL NOT NULL DEFAULT 0,
	PRIMARY KEY (symbol, trade_date)
);

CREATE INDEX IF NOT EXISTS idx_daily_prices_date ON daily_prices(trade_date);
`

// Store is a SQLite-backed daily bar repository.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the bar database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// UpsertBars writes bars in one transaction, replacing rows that already
// exist for the same (symbol, trade_date).
func (s *Store) UpsertBars(bars []market.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO daily_prices
		(symbol, trade_date, open, high, low, close, pre_close, vol, amount, pct_chg)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, b := range bars {
		if _, err := stmt.Exec(
			b.Symbol, b.Date, b.Open, b.High, b.Low, b.Close,
			b.PreClose, b.Volume, b.Amount, b.PctChg,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("upsert %s %s: %w", b.Symbol, b.Date, err)
		}
	}
	return tx.Commit()
}

// Bars loads all bars for the symbols within [start, end] (YYYYMMDD keys,
// inclusive), ordered by trade date then symbol. An empty symbol list loads
// every symbol in range.
func (s *Store) Bars(symbols []string, start, end string) ([]market.Bar, error) {
	query := `
		SELECT symbol, trade_date, open, high, low, close, pre_close, vol, amount, pct_chg
		FROM daily_prices
		WHERE trade_date >= ? AND trade_date <= ?`
	args := []any{start, end}

	if len(symbols) > 0 {
		query += fmt.Sprintf(" AND symbol IN (%s)", placeholders(len(symbols)))
		for _, sym := range symbols {
			args = append(args, sym)
		}
	}
	query += " ORDER BY trade_date, symbol"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []market.Bar
	for rows.Next() {
		var b market.Bar
		if err := rows.Scan(
			&b.Symbol, &b.Date, &b.Open, &b.High, &b.Low, &b.Close,
			&b.PreClose, &b.Volume, &b.Amount, &b.PctChg,
		); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// BarSet loads the range and groups it for replay.
func (s *Store) BarSet(symbols []string, start, end string) (*market.BarSet, error) {
	bars, err := s.Bars(symbols, start, end)
	if err != nil {
		return nil, err
	}
	return market.NewBarSet(bars), nil
}

// Symbols returns the distinct symbols present in the store, sorted.
func (s *Store) Symbols() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT symbol FROM daily_prices ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

// Count returns the number of bar rows in the store.
func (s *Store) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM daily_prices`).Scan(&n)
	return n, err
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
