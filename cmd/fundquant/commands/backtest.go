package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wonny/fundquant/internal/plan"
	"github.com/wonny/fundquant/internal/runner"
)

// backtestCmd represents the backtest command
var backtestCmd = &cobra.Command{
	Use:   "backtest",
	Short: "Run regular-investment backtests",
}

// backtestRunCmd represents the run subcommand
var backtestRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a backtest plan",
	Long: `Replays the NAV series selected by a YAML plan through the
regular-investment engine and prints the resulting ledger.

Example:
  go run ./cmd/fundquant backtest run --plan plan.yaml`,
	RunE: runBacktest,
}

var (
	backtestPlanFile string
	backtestFrom     string
	backtestTo       string
)

func init() {
	rootCmd.AddCommand(backtestCmd)
	backtestCmd.AddCommand(backtestRunCmd)

	backtestRunCmd.Flags().StringVar(&backtestPlanFile, "plan", "plan.yaml", "backtest plan file")
	backtestRunCmd.Flags().StringVar(&backtestFrom, "from", "", "override plan start date (YYYY-MM-DD)")
	backtestRunCmd.Flags().StringVar(&backtestTo, "to", "", "override plan end date (YYYY-MM-DD)")
}

func runBacktest(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(backtestPlanFile)
	if err != nil {
		return err
	}
	if backtestFrom != "" {
		p.Fund.Start = backtestFrom
	}
	if backtestTo != "" {
		p.Fund.End = backtestTo
	}

	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	result, err := runner.New(d.repo, d.log).Run(cmd.Context(), p)
	if err != nil {
		return err
	}

	record := result.Record
	summary := result.Summary

	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  Backtest %s (%d trading days)\n", p.Fund.Code, result.Days)
	PrintSeparator()
	PrintKeyValue("total cost", record.TotalCost().String(), 16)
	PrintKeyValue("total amount", record.TotalAmount().String(), 16)
	PrintKeyValue("total profit", record.TotalProfit().String(), 16)
	PrintKeyValue("profit rate", record.TotalProfitRate().String(), 16)
	PrintKeyValue("position equity", record.PositionEquity().String(), 16)
	PrintKeyValue("buys", fmt.Sprintf("%d", len(record.AccBuy.Histories)), 16)
	PrintKeyValue("sells", fmt.Sprintf("%d", len(record.AccSell.Histories)), 16)
	PrintSeparator()
	PrintKeyValue("strategy profit", summary.StrategyProfit.String()+" ("+summary.StrategyRate.String()+")", 16)
	PrintKeyValue("regular profit", summary.RegularProfit.String()+" ("+summary.RegularRate.String()+")", 16)
	PrintKeyValue("fund change", summary.FundChangeProfit.String()+" ("+summary.FundChangeRate.String()+")", 16)
	PrintDoubleSeparator()

	if p.Output.Dir != "" {
		fmt.Printf("\nReports written to %s\n", p.Output.Dir)
	}
	return nil
}
