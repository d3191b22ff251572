// Package commands implements the fundquant CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fundquant",
	Short: "Fund NAV backtesting toolkit",
	Long: `fundquant collects fund net-asset-value histories and replays
regular-investment plans against them.

Usage:
  go run ./cmd/fundquant [command]

Examples:
  go run ./cmd/fundquant fetch 161725
  go run ./cmd/fundquant nav list 161725
  go run ./cmd/fundquant backtest run --plan plan.yaml
  go run ./cmd/fundquant api`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}
