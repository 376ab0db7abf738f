package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stockbt/journal"
)

var runsCmd = &cobra.Command{
	Use:   "runs [run-id]",
	Short: "List journaled backtest runs or show one run in detail",
	Long: `Runs queries the run journal.

Without arguments it lists all recorded runs, newest first. With a run ID it
prints the full summary report, optionally with the trade log and the daily
equity curve.

Examples:
  stockbt runs --journal backtests.sqlite
  stockbt runs --journal backtests.sqlite 01JF... --trades --equity`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

var (
	runsJournalDB  string
	runsShowTrades bool
	runsShowEquity bool
)

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.Flags().StringVar(&runsJournalDB, "journal", "./backtests.sqlite", "path to the run journal SQLite DB")
	runsCmd.Flags().BoolVar(&runsShowTrades, "trades", false, "print the trade log")
	runsCmd.Flags().BoolVar(&runsShowEquity, "equity", false, "print the daily valuation series")
}

func runRuns(cmd *cobra.Command, args []string) error {
	j, err := journal.NewSQLite(runsJournalDB)
	if err != nil {
		return fmt.Errorf("open journal db: %w", err)
	}
	defer j.Close()

	if len(args) == 0 {
		return listRuns(j)
	}
	return showRun(j, args[0])
}

func listRuns(j *journal.SQLite) error {
	runs, err := j.ListRuns()
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("no runs recorded")
		return nil
	}

	fmt.Printf("%-26s  %-24s  %-17s  %10s  %8s  %6s\n",
		"RUN ID", "STRATEGY", "PERIOD", "RETURN", "MAX DD", "TRADES")
	for _, r := range runs {
		fmt.Printf("%-26s  %-24s  %s~%s  %9.2f%%  %7.2f%%  %6d\n",
			r.RunID, r.Strategy, r.StartDate, r.EndDate,
			r.TotalReturn*100, r.MaxDrawdown*100, r.Trades)
	}
	return nil
}

func showRun(j *journal.SQLite, runID string) error {
	run, err := j.GetRun(runID)
	if err != nil {
		return err
	}
	if err := run.WriteReport(os.Stdout); err != nil {
		return err
	}

	if runsShowTrades {
		trades, err := j.TradesByRun(runID)
		if err != nil {
			return fmt.Errorf("load trades: %w", err)
		}
		fmt.Printf("\n%-10s  %-10s  %-4s  %8s  %10s  %12s  %10s\n",
			"DATE", "SYMBOL", "SIDE", "QTY", "PRICE", "AMOUNT", "COMMISSION")
		for _, t := range trades {
			fmt.Printf("%-10s  %-10s  %-4s  %8d  %10.2f  %12.2f  %10.2f\n",
				t.Date, t.Symbol, t.Action, t.Quantity, t.Price, t.Amount, t.Commission)
		}
	}

	if runsShowEquity {
		valuations, err := j.ValuationsByRun(runID)
		if err != nil {
			return fmt.Errorf("load valuations: %w", err)
		}
		fmt.Printf("\n%-10s  %12s  %12s  %12s  %9s  %4s\n",
			"DATE", "CASH", "STOCK", "TOTAL", "CUM RET", "POS")
		for _, v := range valuations {
			fmt.Printf("%-10s  %12.2f  %12.2f  %12.2f  %8.2f%%  %4d\n",
				v.Date, v.Cash, v.StockValue, v.TotalValue, v.CumulativeReturn*100, v.Positions)
		}
	}
	return nil
}
