package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pable/go-draft-metrics/internal/httpapi"
	"github.com/pable/go-draft-metrics/internal/logger"
	"github.com/pable/go-draft-metrics/internal/metrics"
	"github.com/pable/go-draft-metrics/internal/service"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve stats, profiles and insights over HTTP/JSON",
	Long: `Start the HTTP API:

  GET /api/stats?version=&mode=&tournament=&team=
  GET /api/teams/{team}/profile
  GET /api/teams/{team}/insights
  GET /healthz
  GET /metrics   (Prometheus)`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	rec := metrics.New()
	log := logger.Named("http")
	h := httpapi.NewRouter(newAnalyzer(db, service.WithMetrics(rec)), rec, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return httpapi.Serve(ctx, cfg, h, log)
}
