// Package main is the entry point for the statetax CLI.
package main

import (
	"os"

	"github.com/jacklambert122/NursingSalaryByStateComparison/cmd/cli/cmd"
	"github.com/jacklambert122/NursingSalaryByStateComparison/internal/logging"
)

func main() {
	defer logging.Sync()
	if err := cmd.Execute(); err != nil {
		logging.Sync()
		os.Exit(1)
	}
}
