package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matsen/confnet/internal/metrics"
	"github.com/matsen/confnet/internal/record"
	"github.com/matsen/confnet/internal/reload"
	"github.com/matsen/confnet/internal/server"
	"github.com/matsen/confnet/internal/viz"
)

var (
	serveAddr  string
	serveWatch bool
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Reload the dataset when the file changes")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the live dashboard",
	Long: `Serve the dashboard over HTTP. Toggling an option on the page fetches a
fresh render from /api/render.

Endpoints:
  GET /                              dashboard page
  GET /api/render                    render model (options=... or remove_sandy/remove_posters)
  GET /api/people/{name}/papers      records of one participant
  GET /health                        liveness and dataset size
  GET /metrics                       Prometheus metrics

Examples:
  confnet serve
  confnet serve --addr 127.0.0.1:8080 --watch`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)
	defer logger.Sync()

	ds := mustLoadDataset(cfg)
	logger.Info("Loaded dataset",
		zap.String("path", ds.Source()),
		zap.Int("records", ds.Len()),
	)

	db := mustOpenIndex(cfg, ds)
	defer db.Close()

	holder := reload.NewHolder(ds)
	collector := metrics.NewCollector("confnet")
	collector.SetDataset(ds)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if serveWatch || cfg.Watch {
		watcher := reload.NewWatcher(cfg.DatasetPath, holder, logger)
		watcher.OnReload(func(next *record.Dataset, err error) {
			collector.ObserveReload(next, err)
			if err != nil {
				return
			}
			if _, err := db.Rebuild(next.Records()); err != nil {
				logger.Warn("Failed to rebuild query cache", zap.Error(err))
			}
		})
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("Dataset watcher stopped", zap.Error(err))
			}
		}()
	}

	page := viz.DefaultOptions()
	page.Layout = cfg.Layout

	srv := server.New(holder, db, server.Options{
		Render:         renderOptions(cfg),
		Page:           page,
		RateLimit:      cfg.RateLimit,
		AllowedOrigins: cfg.AllowedOrigins,
	}, logger, collector)

	addr := cfg.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}
	if err := srv.Run(ctx, addr); err != nil {
		logger.Error("Server failed", zap.Error(err))
		exitWithError(ExitError, "%v", err)
	}
	return nil
}
