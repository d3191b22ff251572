package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/fundquant/internal/api"
	"github.com/wonny/fundquant/internal/api/handlers"
	"github.com/wonny/fundquant/internal/runner"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the HTTP API server",
	Long: `Serves stored NAV series and on-demand backtests.

Endpoints:
  GET  /healthz                     - health check
  GET  /api/v1/funds/{code}/navs    - NAV series
  GET  /api/v1/funds/{code}/stats   - series statistics
  POST /api/v1/backtests            - run a backtest plan

Example:
  go run ./cmd/fundquant api
  go run ./cmd/fundquant api --port 8086`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from config)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	d, err := initDeps()
	if err != nil {
		return err
	}
	defer d.Close()

	if apiPort != "" {
		d.cfg.Port = apiPort
	}

	navHandler := handlers.NewNavHandler(d.repo, d.log)
	backtestHandler := handlers.NewBacktestHandler(runner.New(d.repo, d.log), d.log)
	router := api.NewRouter(navHandler, backtestHandler, d.log)
	server := api.New(d.cfg, d.log, router)

	go func() {
		if err := server.Start(); err != nil {
			d.log.WithError(err).Fatal("failed to start server")
		}
	}()

	fmt.Printf("API server running on http://localhost:%s, press Ctrl+C to stop\n", d.cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return server.Shutdown(ctx)
}
