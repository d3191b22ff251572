package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// navCmd represents the nav command
var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Inspect stored NAV series",
}

// navListCmd represents the list subcommand
var navListCmd = &cobra.Command{
	Use:   "list [code]",
	Short: "List stored NAV records for a fund",
	Args:  cobra.ExactArgs(1),
	RunE:  runNavList,
}

// navStatCmd represents the stat subcommand
var navStatCmd = &cobra.Command{
	Use:   "stat [code]",
	Short: "Show aggregate statistics for a stored series",
	Args:  cobra.ExactArgs(1),
	RunE:  runNavStat,
}

var (
	navFrom string
	navTo   string
)

func init() {
	rootCmd.AddCommand(navCmd)
	navCmd.AddCommand(navListCmd)
	navCmd.AddCommand(navStatCmd)

	navListCmd.Flags().StringVar(&navFrom, "from", "", "start date (YYYY-MM-DD)")
	navListCmd.Flags().StringVar(&navTo, "to", "", "end date (YYYY-MM-DD)")
}

func runNavList(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	navs, err := d.repo.ListByCodeAndRange(cmd.Context(), args[0], navFrom, navTo)
	if err != nil {
		return err
	}
	if len(navs) == 0 {
		return fmt.Errorf("no NAV records for fund %s", args[0])
	}

	widths := []int{12, 10, 10}
	PrintTableHeader([]string{"date", "value", "increase"}, widths)
	for _, nav := range navs {
		PrintTableRow([]string{nav.Date, nav.Value.String(), nav.Increase.String() + "%"}, widths)
	}
	fmt.Printf("\n%d records\n", len(navs))
	return nil
}

func runNavStat(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	stats, err := d.repo.Stats(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if stats.Count == 0 {
		return fmt.Errorf("no NAV records for fund %s", args[0])
	}

	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  Fund %s\n", stats.Code)
	PrintSeparator()
	PrintKeyValue("records", fmt.Sprintf("%d", stats.Count), 10)
	PrintKeyValue("first", stats.FirstDate, 10)
	PrintKeyValue("last", stats.LastDate, 10)
	PrintKeyValue("min value", stats.MinValue.String(), 10)
	PrintKeyValue("max value", stats.MaxValue.String(), 10)
	PrintKeyValue("avg value", stats.AvgValue.String(), 10)
	PrintDoubleSeparator()
	return nil
}
