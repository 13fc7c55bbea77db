package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/clock"
	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/batcher"
)

// StatsRefresherConfig tunes the background sweep.
type StatsRefresherConfig struct {
	Interval      time.Duration
	BatchSize     int
	FlushInterval time.Duration
	FlushRPS      int
}

// DefaultStatsRefresherConfig returns sane defaults for the sweep.
func DefaultStatsRefresherConfig() StatsRefresherConfig {
	return StatsRefresherConfig{
		Interval:      5 * time.Minute,
		BatchSize:     100,
		FlushInterval: 2 * time.Second,
		FlushRPS:      5,
	}
}

// StatsRefresher periodically recomputes per-project chain statistics and
// caches them in the content store, so the aggregator can serve stats
// without hitting the chain store on every request.
type StatsRefresher struct {
	chain    ChainRepository
	content  ContentRepository
	resolver *OutputResolver
	logger   *zap.Logger
	metrics  RefresherMetrics
	cfg      StatsRefresherConfig
}

// NewStatsRefresher builds the refresher with the provided dependencies.
func NewStatsRefresher(
	chain ChainRepository,
	content ContentRepository,
	resolver *OutputResolver,
	logger *zap.Logger,
	metrics RefresherMetrics,
	cfg StatsRefresherConfig,
) *StatsRefresher {
	if cfg.Interval <= 0 || cfg.BatchSize <= 0 || cfg.FlushInterval <= 0 || cfg.FlushRPS <= 0 {
		cfg = DefaultStatsRefresherConfig()
	}
	return &StatsRefresher{
		chain:    chain,
		content:  content,
		resolver: resolver,
		logger:   logger,
		metrics:  metrics,
		cfg:      cfg,
	}
}

// Run sweeps until the context is canceled.
func (s *StatsRefresher) Run(ctx context.Context) error {
	for {
		err := s.refreshAll(ctx)
		s.metrics.ObserveRun(err)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.logger.Error("stats sweep failed", zap.Error(err))
		}

		if err := clock.Wait(ctx, s.cfg.Interval); err != nil {
			return nil
		}
	}
}

func (s *StatsRefresher) refreshAll(ctx context.Context) error {
	ids, err := s.chain.ProjectIDs(ctx)
	if err != nil {
		return fmt.Errorf("list projects: %w", err)
	}

	sink := batcher.Start(ctx, s.logger, s.content.UpsertStats, batcher.Options{
		Size:     s.cfg.BatchSize,
		Interval: s.cfg.FlushInterval,
		RPS:      s.cfg.FlushRPS,
	})
	defer sink.Stop()

	for _, id := range ids {
		stats, err := computeChainStats(ctx, s.chain, s.content, s.resolver, id)
		s.metrics.ObserveProject(err)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.logger.Warn("skipping project stats refresh",
				zap.String("project_id", id),
				zap.Error(err))
			continue
		}

		if err := sink.Add(ctx, model.ProjectStatsRow{ProjectID: id, Stats: *stats}); err != nil {
			return fmt.Errorf("queue stats row: %w", err)
		}
	}

	return nil
}
