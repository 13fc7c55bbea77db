package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// OutputResolver finds the single unspent output that currently represents
// a project's staking script. "Current state" in a UTXO ledger is not a
// mutable pointer but the unique unspent output at the end of a spend
// chain, so resolution is a query over the append/spend log, issued as one
// snapshot read.
type OutputResolver struct {
	chain   ChainRepository
	logger  *zap.Logger
	metrics ResolverMetrics
}

// NewOutputResolver constructs the resolver.
func NewOutputResolver(chain ChainRepository, logger *zap.Logger, metrics ResolverMetrics) *OutputResolver {
	return &OutputResolver{
		chain:   chain,
		logger:  logger,
		metrics: metrics,
	}
}

// ResolveLiveScriptOutput returns the live staking script output of a
// project, or nil when the project has none (never staked, or fully
// withdrawn). More than one unspent output is anomalous but tolerated: the
// one with the greatest created slot wins (re-staking supersedes prior
// staking), with the highest output id as the final tie-break. The anomaly
// is logged and counted so operators can see it happening.
func (r *OutputResolver) ResolveLiveScriptOutput(ctx context.Context, projectID string) (*model.Output, error) {
	outputs, err := r.chain.UnspentProjectScriptOutputs(ctx, projectID)
	if err != nil {
		return nil, storeErr(err)
	}

	switch len(outputs) {
	case 0:
		return nil, nil
	case 1:
		return &outputs[0], nil
	}

	r.metrics.AmbiguousLiveOutput()
	r.logger.Warn("project has multiple unspent staking script outputs",
		zap.String("project_id", projectID),
		zap.Int("count", len(outputs)),
		zap.Uint64("chosen_output_id", outputs[0].ID),
		zap.Uint64("chosen_created_slot", outputs[0].CreatedSlot))

	// The repository orders by created_slot DESC, id DESC; the first row is
	// the canonical one.
	return &outputs[0], nil
}
