package main

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/config"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/httpserver"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/logging"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/metrics"
	"github.com/swapnilpawar7-gpu/AI-worker-productivity-dashboard/internal/store"
)

// main boots the service: config → logger → store → schema → HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	st, err := openStore(cfg)
	if err != nil {
		logger.Fatal("open event store", zap.Error(err))
	}
	defer st.Close()

	engine := metrics.NewEngine(st)
	router := httpserver.NewRouter(logger, st, engine)

	if cfg.SnapshotSchedule != "" {
		c := cron.New()
		if _, err := c.AddFunc(cfg.SnapshotSchedule, func() {
			logSnapshot(logger, engine)
		}); err != nil {
			logger.Fatal("invalid SNAPSHOT_SCHEDULE", zap.Error(err))
		}
		c.Start()
		defer c.Stop()
	}

	logger.Info("server started", zap.String("addr", cfg.Addr), zap.String("store", cfg.StoreDriver))
	if err := router.Run(cfg.Addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// openStore selects the configured event store driver. The postgres driver
// self-bootstraps its schema so a fresh database is enough.
func openStore(cfg config.Config) (store.EventStore, error) {
	if cfg.StoreDriver == "memory" {
		return store.NewMemoryStore(), nil
	}

	pg, err := store.NewPostgresStore(cfg.DBURL)
	if err != nil {
		return nil, err
	}
	if err := pg.EnsureSchema(); err != nil {
		pg.Close()
		return nil, err
	}
	return pg, nil
}

// logSnapshot records the factory view so operators get a periodic trace of
// floor-level productivity without polling the API.
func logSnapshot(logger *zap.Logger, engine *metrics.Engine) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	view, err := engine.FactoryMetrics(ctx, time.Time{})
	if err != nil {
		logger.Error("factory snapshot failed", zap.Error(err))
		return
	}
	logger.Info("factory snapshot",
		zap.Float64("total_productive_hours", view.TotalProductiveHours),
		zap.Int("total_production_count", view.TotalProductionCount),
		zap.Float64("average_production_rate", view.AverageProductionRate),
		zap.Float64("average_worker_utilization", view.AverageWorkerUtilization),
		zap.Int("active_workers", view.ActiveWorkers),
		zap.Time("computed_at", view.ComputedAt),
	)
}
