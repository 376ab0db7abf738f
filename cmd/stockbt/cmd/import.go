package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbt/store"
)

var importCmd = &cobra.Command{
	Use:   "import <file>...",
	Short: "Import daily bar data into the bar database",
	Long: `Import loads daily bars from CSV files into the SQLite bar store.

Accepted inputs:
  - plain .csv files (symbol,trade_date,open,high,low,close,pre_close,vol,amount,pct_chg)
  - .xz compressed CSV streams
  - .zip archives containing CSV files

Rows already present for the same symbol and date are replaced.

Example:
  stockbt import --db bars.sqlite daily_2023.csv archive_2022.zip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

var importDBPath string

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().StringVarP(&importDBPath, "db", "d", "./bars.sqlite", "path to the daily bar SQLite DB")
}

func runImport(cmd *cobra.Command, args []string) error {
	st, err := store.Open(importDBPath)
	if err != nil {
		return fmt.Errorf("open bar db: %w", err)
	}
	defer st.Close()

	total := 0
	for _, path := range args {
		n, err := st.ImportFile(path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Printf("%s: %d bars\n", path, n)
		total += n
	}

	count, err := st.Count()
	if err != nil {
		return err
	}
	fmt.Printf("imported %d bars (%d total in store)\n", total, count)
	return nil
}
