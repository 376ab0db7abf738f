package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"stockbt/strategies"
)

var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List available strategies and their capabilities",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := strategies.DefaultConfig()
		for _, name := range strategies.Names() {
			s, err := strategies.New(name, cfg, 0, 0)
			if err != nil {
				continue
			}
			fmt.Printf("%-22s  %s\n", name, s.Capability())
		}
	},
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}
