package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wonny/fundquant/internal/scheduler"
	"github.com/wonny/fundquant/internal/scheduler/jobs"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch [code...]",
	Short: "Fetch fund NAV histories from Eastmoney",
	Long: `Downloads the full published NAV history for one or more funds
and upserts it into the database. With --daemon the sync re-runs on a
cron schedule instead of exiting.

Example:
  go run ./cmd/fundquant fetch 161725
  go run ./cmd/fundquant fetch 161725 005827 --daemon`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFetch,
}

var (
	fetchDaemon bool
	fetchCron   string
)

func init() {
	rootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().BoolVar(&fetchDaemon, "daemon", false, "keep running and sync on a schedule")
	fetchCmd.Flags().StringVar(&fetchCron, "cron", jobs.DefaultNavSyncSchedule, "cron schedule for --daemon (with seconds field)")
}

func runFetch(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	collector := d.collector()

	if !fetchDaemon {
		for _, code := range args {
			fund, err := collector.SyncFund(cmd.Context(), code)
			if err != nil {
				return err
			}
			fmt.Printf("synced %s (%s): %d records, %s .. %s\n",
				fund.Code, fund.Name, len(fund.Navs),
				fund.Navs[0].Date, fund.Navs[len(fund.Navs)-1].Date)
		}
		return nil
	}

	sched := scheduler.New(d.log)
	if err := sched.AddJob(jobs.NewNavSync(collector, args, fetchCron)); err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	// First sync right away so a fresh database is usable immediately.
	if err := sched.RunJob("nav_sync"); err != nil {
		return err
	}

	fmt.Printf("NAV sync daemon running (schedule %q), press Ctrl+C to stop\n", fetchCron)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	return nil
}
