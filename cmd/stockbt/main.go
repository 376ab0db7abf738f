package main

import (
	"os"

	"stockbt/cmd/stockbt/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
