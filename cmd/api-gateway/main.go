package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/chain/repository/clickhouse"
	"github.com/teiki-network/teiki-backend/internal/content/postgres"
	"github.com/teiki-network/teiki-backend/internal/metrics"
	"github.com/teiki-network/teiki-backend/internal/service"
	"github.com/teiki-network/teiki-backend/internal/transport"
)

var config struct {
	Addr           string        `long:"addr" env:"TEIKI_API_GATEWAY_ADDR" description:"http listen addr" default:":8000"`
	ClickhouseDSN  string        `long:"clickhouse-dsn" env:"TEIKI_CLICKHOUSE_DSN" description:"chain store DSN" default:"clickhouse://localhost:9000/default"`
	PostgresDSN    string        `long:"postgres-dsn" env:"TEIKI_POSTGRES_DSN" description:"content store DSN" default:"postgres://localhost:5432/teiki"`
	RequestTimeout time.Duration `long:"request-timeout" env:"TEIKI_REQUEST_TIMEOUT" description:"per-request store deadline" default:"10s"`
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
	feed := service.NewActivityFeedBuilder(chainRepo, contentRepo, logger)
	aggregator := service.NewProjectAggregator(chainRepo, contentRepo, resolver, feed, logger)

	projectHandler := transport.NewProjectHandler(aggregator, logger, config.RequestTimeout)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/project", metrics.InstrumentHandler("/api/v1/project", http.HandlerFunc(projectHandler.GetProject)))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	s := &http.Server{
		Addr:              config.Addr,
		Handler:           cors.Default().Handler(mux),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    http.DefaultMaxHeaderBytes,
	}
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down the http server")
		if err := s.Shutdown(context.Background()); err != nil {
			logger.Error("Failed to shutdown http server", zap.Error(err))
		}
	}()

	logger.Info("Starting HTTP server", zap.String("addr", config.Addr))
	if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to listen and serve", zap.Error(err))
	}
}
