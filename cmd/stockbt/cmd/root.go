package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stockbt",
	Short: "A daily-bar stock strategy backtester",
	Long: `Stockbt backtests trading strategies against historical daily price bars.

It provides tools for:
  - Importing daily bar data into a local SQLite store
  - Replaying buy/sell strategies over a date range with realistic
    commissions and lot sizing
  - Deriving performance metrics (return, drawdown, volatility, Sharpe,
    win rate) from the equity curve and trade log
  - Journaling runs for later comparison across strategies`,
}

var logLevel string

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cobra.OnInitialize(func() {
		slog.SetDefault(newLogger(logLevel))
	})
}

func newLogger(level string) *slog.Logger {
	var slevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		slevel = slog.LevelDebug
	case "info":
		slevel = slog.LevelInfo
	case "warn":
		slevel = slog.LevelWarn
	case "error":
		slevel = slog.LevelError
	default:
		slevel = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slevel}))
}
