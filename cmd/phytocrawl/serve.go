package main

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/adapter/filesystem"
	redis_adapter "github.com/user/phytochem-crawler/internal/adapter/redis"
	"github.com/user/phytochem-crawler/internal/delivery/http/handler"
	"github.com/user/phytochem-crawler/internal/delivery/http/router"
	"github.com/user/phytochem-crawler/internal/delivery/http/server"
	"github.com/user/phytochem-crawler/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

var servePort string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API and the queue worker",
	Long: `Start the HTTP API and a worker that scrapes queued plants one at a
time. REDIS_ADDR is required for the queue; POSTGRES_URL is optional.

Endpoints:
  GET  /api/health
  POST /api/plants          {"plants": [...], "force": false}
  GET  /api/plants/status?name=NAME
  GET  /api/plants/{name}
  POST /api/extract         {"html" | "text", "labels": [...], "closeouts": [...]}
  GET  /metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		if servePort != "" {
			cfg.ServerPort = servePort
		}
		if cfg.RedisAddr == "" {
			return errors.New("serve needs REDIS_ADDR for the scrape queue")
		}

		a := newApp(cfg, logger)
		defer a.Close()
		if err := a.connectStores(ctx); err != nil {
			return err
		}

		pipeline, err := a.pipeline()
		if err != nil {
			return err
		}
		queue := redis_adapter.NewQueueRepo(a.rdb)
		plantManager := usecase.NewPlantManager(
			filesystem.NewPlantList(cfg.PlantCSV),
			redis_adapter.NewVisitedRepo(a.rdb),
			queue,
			a.recordRepo(),
			logger,
		)
		worker := usecase.NewWorker(queue, pipeline, cfg.PollInterval(), a.metrics, logger)

		checks := map[string]handler.HealthCheck{
			"redis": func(ctx context.Context) error { return a.rdb.Ping(ctx).Err() },
		}
		if a.pool != nil {
			checks["postgres"] = a.pool.Ping
		}
		h := handler.NewHandler(plantManager, checks, logger)
		srv := server.New(cfg.ServerPort, router.New(h, a.metrics, a.reg, logger), logger)

		return serve(ctx, srv, worker.Run, logger)
	},
}

type httpServer interface {
	Start() error
	Shutdown(ctx context.Context) error
}

// serve runs srv and the queue worker until ctx is done or srv stops on its
// own, then shuts both down. The worker always gets a canceled context
// before serve waits on it.
func serve(ctx context.Context, srv httpServer, runWorker func(context.Context) error, logger *zap.Logger) error {
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()

	workerDone := make(chan struct{})
	go func() {
		defer close(workerDone)
		if err := runWorker(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("worker exited", zap.Error(err))
		}
	}()

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Start() }()

	var err error
	select {
	case err = <-serveErr:
		if err != nil {
			logger.Error("server stopped", zap.Error(err))
		}
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		logger.Error("server forced to shutdown", zap.Error(shutdownErr))
	}
	stopWorker()
	<-workerDone
	logger.Info("server exiting")
	return err
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default: SERVER_PORT)")
}
