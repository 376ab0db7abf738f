package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stockbt/backtest"
	"stockbt/config"
	"stockbt/journal"
	"stockbt/store"
	"stockbt/strategies"
)

var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run a strategy backtest over a date range",
	Long: `Backtest replays daily bars from the bar database through a strategy.

Supported strategies:
  - simple-ma: moving-average crossover (combined buy/sell)
  - red-three-soldiers: three-white-soldiers pattern entry, next-day exit
  - drop-stop-loss: sell-only stop-loss exit (pair it via red3-stop-loss)
  - red3-stop-loss: pattern entries with the stop-loss exit

Example:
  stockbt backtest --db bars.sqlite --strategy simple-ma \
    --start 20230101 --end 20231231 --symbols 000001.SZ,600519.SH`,
	RunE: runBacktest,
}

var (
	btConfigPath string
	btDBPath     string
	btSymbols    []string
	btStart      string
	btEnd        string
	btStrategy   string
	btCash       float64
	btCommission float64
	btShort      int
	btLong       int
	btMaxPos     int
	btJournalDB  string
)

func init() {
	rootCmd.AddCommand(backtestCmd)

	backtestCmd.Flags().StringVarP(&btConfigPath, "config", "c", "", "path to YAML/JSON config (takes precedence over the other flags)")
	backtestCmd.Flags().StringVarP(&btDBPath, "db", "d", "./bars.sqlite", "path to the daily bar SQLite DB")
	backtestCmd.Flags().StringSliceVar(&btSymbols, "symbols", nil, "symbols to replay (default: all in range)")
	backtestCmd.Flags().StringVar(&btStart, "start", "", "start date YYYYMMDD (required without --config)")
	backtestCmd.Flags().StringVar(&btEnd, "end", "", "end date YYYYMMDD (required without --config)")
	backtestCmd.Flags().StringVarP(&btStrategy, "strategy", "s", "simple-ma", "strategy name")
	backtestCmd.Flags().Float64Var(&btCash, "cash", 100_000, "initial capital")
	backtestCmd.Flags().Float64Var(&btCommission, "commission", 0.0003, "per-side commission rate")
	backtestCmd.Flags().IntVar(&btShort, "short", 5, "simple-ma: short SMA window")
	backtestCmd.Flags().IntVar(&btLong, "long", 20, "simple-ma: long SMA window")
	backtestCmd.Flags().IntVar(&btMaxPos, "max-positions", 5, "maximum concurrent holdings for sizing")
	backtestCmd.Flags().StringVar(&btJournalDB, "journal", "./backtests.sqlite", "path to the run journal SQLite DB (empty disables journaling)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Data.DBPath)
	if err != nil {
		return fmt.Errorf("open bar db: %w", err)
	}
	defer st.Close()

	feed, err := st.BarSet(cfg.Data.Symbols, cfg.Data.Start, cfg.Data.End)
	if err != nil {
		return fmt.Errorf("load bars: %w", err)
	}

	strat, err := strategies.New(cfg.Strategy.Name, strategies.Config{
		InitialCash:   cfg.Account.InitialCash,
		MaxPositions:  cfg.Strategy.MaxPositions,
		AllocationPct: cfg.Strategy.AllocationPct,
		LotSize:       cfg.Strategy.LotSize,
	}, cfg.Strategy.ShortWindow, cfg.Strategy.LongWindow)
	if err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	engine := backtest.NewEngine(feed, backtest.Config{
		InitialCash:    cfg.Account.InitialCash,
		CommissionRate: cfg.Engine.CommissionRate,
		MinCashToBuy:   cfg.Engine.MinCashToBuy,
		RiskFreeRate:   cfg.Engine.RiskFreeRate,
	})

	result, err := engine.Run(strat)
	if err != nil {
		return fmt.Errorf("backtest: %w", err)
	}

	run := journal.NewRun(result.Summary)
	if j, err := openJournal(cfg.Journal); err != nil {
		return err
	} else if j != nil {
		defer j.Close()
		if err := j.RecordRun(run, result.Trades, result.Valuations); err != nil {
			return fmt.Errorf("journal: %w", err)
		}
	}

	return run.WriteReport(os.Stdout)
}

// buildConfig prefers an explicit config file and otherwise assembles one
// from the command-line flags.
func buildConfig() (*config.Config, error) {
	if btConfigPath != "" {
		return config.LoadFromFile(btConfigPath)
	}

	cfg := config.Default()
	cfg.Account.InitialCash = btCash
	cfg.Engine.CommissionRate = btCommission
	cfg.Strategy.Name = btStrategy
	cfg.Strategy.ShortWindow = btShort
	cfg.Strategy.LongWindow = btLong
	cfg.Strategy.MaxPositions = btMaxPos
	cfg.Data.DBPath = btDBPath
	cfg.Data.Symbols = btSymbols
	cfg.Data.Start = btStart
	cfg.Data.End = btEnd
	if btJournalDB == "" {
		cfg.Journal = config.JournalConfig{Type: "none"}
	} else {
		cfg.Journal = config.JournalConfig{Type: "sqlite", DBPath: btJournalDB}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func openJournal(jc config.JournalConfig) (journal.Journal, error) {
	switch jc.Type {
	case "", "none":
		return nil, nil
	case "sqlite":
		j, err := journal.NewSQLite(jc.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open journal db: %w", err)
		}
		return j, nil
	case "csv":
		return journal.NewCSV(jc.TradesFile, jc.ValuationsFile), nil
	default:
		return nil, fmt.Errorf("unknown journal type %q", jc.Type)
	}
}
