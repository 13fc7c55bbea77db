package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/chain/repository/clickhouse"
	"github.com/teiki-network/teiki-backend/internal/content/postgres"
	"github.com/teiki-network/teiki-backend/internal/metrics"
	"github.com/teiki-network/teiki-backend/internal/service"
)

var config struct {
	ClickhouseDSN string        `long:"clickhouse-dsn" env:"TEIKI_CLICKHOUSE_DSN" description:"chain store DSN" default:"clickhouse://localhost:9000/default"`
	PostgresDSN   string        `long:"postgres-dsn" env:"TEIKI_POSTGRES_DSN" description:"content store DSN" default:"postgres://localhost:5432/teiki"`
	Interval      time.Duration `long:"interval" env:"TEIKI_STATS_REFRESH_INTERVAL" description:"delay between refresh sweeps" default:"5m"`
	BatchSize     int           `long:"batch-size" env:"TEIKI_STATS_BATCH_SIZE" description:"stats rows per upsert batch" default:"100"`
	FlushInterval time.Duration `long:"flush-interval" env:"TEIKI_STATS_FLUSH_INTERVAL" description:"max age of a pending batch" default:"2s"`
	FlushRPS      int           `long:"flush-rps" env:"TEIKI_STATS_FLUSH_RPS" description:"batch flushes per second" default:"5"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()
	if _, err := flags.ParseArgs(&config, os.Args); err != nil {
		logger.Fatal("Failed to parse arguments", zap.Error(err))
	}

	chainRepo, err := clickhouse.NewRepository(config.ClickhouseDSN, metrics.NewChainRepository())
	if err != nil {
		logger.Fatal("Failed to connect to the chain store", zap.Error(err))
	}

	contentRepo, err := postgres.NewRepository(ctx, config.PostgresDSN, metrics.NewContentRepository())
	if err != nil {
		logger.Fatal("Failed to connect to the content store", zap.Error(err))
	}
	defer contentRepo.Close()

	resolver := service.NewOutputResolver(chainRepo, logger, metrics.NewResolver())
	refresher := service.NewStatsRefresher(
		chainRepo,
		contentRepo,
		resolver,
		logger,
		metrics.NewStatsRefresher(),
		service.StatsRefresherConfig{
			Interval:      config.Interval,
			BatchSize:     config.BatchSize,
			FlushInterval: config.FlushInterval,
			FlushRPS:      config.FlushRPS,
		},
	)

	logger.Info("Starting stats refresher", zap.Duration("interval", config.Interval))
	if err := refresher.Run(ctx); err != nil {
		logger.Error("Stats refresher stopped", zap.Error(err))
		return
	}
	logger.Info("Stats refresher stopped")
}
