package main

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/user/phytochem-crawler/internal/adapter/chromedp_crawler"
	"github.com/user/phytochem-crawler/internal/adapter/filesystem"
	"github.com/user/phytochem-crawler/internal/adapter/httpfetch"
	"github.com/user/phytochem-crawler/internal/adapter/postgres"
	redis_adapter "github.com/user/phytochem-crawler/internal/adapter/redis"
	"github.com/user/phytochem-crawler/internal/repository"
	"github.com/user/phytochem-crawler/internal/usecase"
	"github.com/user/phytochem-crawler/pkg/config"
	"github.com/user/phytochem-crawler/pkg/metrics"
	"github.com/user/phytochem-crawler/pkg/pacer"
)

// app holds everything a command may need. Stores that are not configured
// are nil.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	reg     *prometheus.Registry

	fetcher repository.PageFetcher
	records *filesystem.RecordWriterImpl
	pool    *pgxpool.Pool
	rdb     *goredis.Client

	closers []func()
}

func newApp(cfg *config.Config, logger *zap.Logger) *app {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	a := &app{
		cfg:     cfg,
		logger:  logger,
		metrics: metrics.New(reg),
		reg:     reg,
		records: filesystem.NewRecordWriter(cfg.JSONsDir),
	}
	a.fetcher = a.newFetcher()
	return a
}

// connectStores opens PostgreSQL and Redis when they are configured.
func (a *app) connectStores(ctx context.Context) error {
	cfg, logger := a.cfg, a.logger
	if cfg.PostgresURL != "" {
		pool, err := postgres.Connect(ctx, cfg.PostgresURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, pool.Close)
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			return err
		}
		a.pool = pool
		logger.Info("PostgreSQL connection pool established")
	}

	if cfg.RedisAddr != "" {
		rdb, err := redis_adapter.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() { _ = rdb.Close() })
		a.rdb = rdb
		logger.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
	}
	return nil
}

// newFetcher builds the page fetcher for FETCH_MODE around one shared pacer.
func (a *app) newFetcher() repository.PageFetcher {
	p := pacer.New(a.cfg.RequestDelay(), a.cfg.CooldownEvery, a.cfg.CooldownPeriod())

	if a.cfg.FetchMode == config.FetchModeBrowser {
		c := chromedp_crawler.NewChromedpCrawler(chromedp_crawler.Options{
			PageLoadTimeout: a.cfg.RequestTimeout(),
			Attempts:        uint(a.cfg.MaxRetries),
			RetryDelay:      a.cfg.RequestDelay(),
			UserAgent:       a.cfg.UserAgent,
		}, p, a.logger)
		a.closers = append(a.closers, c.Close)
		return c
	}
	return httpfetch.New(httpfetch.Options{
		Timeout:    a.cfg.RequestTimeout(),
		Attempts:   uint(a.cfg.MaxRetries),
		RetryDelay: a.cfg.RequestDelay(),
		UserAgent:  a.cfg.UserAgent,
	}, p, a.logger)
}

// recordRepo is where finished records are looked up: PostgreSQL when
// configured, the JSON files otherwise.
func (a *app) recordRepo() repository.PlantRecordRepository {
	if a.pool != nil {
		return postgres.NewPlantRecordRepo(a.pool)
	}
	return a.records
}

func (a *app) pipeline() (*usecase.Pipeline, error) {
	deps := usecase.PipelineDeps{
		Plants:  filesystem.NewPlantList(a.cfg.PlantCSV),
		Fetcher: a.fetcher,
		Pages:   filesystem.NewPageStore(a.cfg.WebpagesDir),
		Sinks:   []repository.RecordSink{a.records},
		Metrics: a.metrics,
		Logger:  a.logger,
	}
	if a.pool != nil {
		deps.Sinks = append(deps.Sinks, postgres.NewPlantRecordRepo(a.pool))
		deps.Failed = postgres.NewFailedPageRepo(a.pool)
	}
	if a.rdb != nil {
		deps.Visited = redis_adapter.NewVisitedRepo(a.rdb)
	}
	return usecase.NewPipeline(a.cfg.BaseURL, a.cfg.DeduplicationWindow(), deps)
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	_ = a.logger.Sync()
}
