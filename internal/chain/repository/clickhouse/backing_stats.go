package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/safe"
)

// BackingStats aggregates the backer outputs of a project in one query:
// supporters and staked lovelace over currently unspent outputs, withdrawn
// lovelace over spent ones.
func (r *Repository) BackingStats(ctx context.Context, projectID string) (*model.ChainBackingStats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("backing_stats", err, start)
	}()

	const query = `
SELECT
	uniqExactIf(address, spent_slot IS NULL) AS num_supporters,
	sumIf(value, spent_slot IS NULL) AS staked,
	sumIf(value, spent_slot IS NOT NULL) AS withdrawn
FROM chain_backings FINAL
WHERE project_id = ?`

	rows, err := r.conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query backing stats: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate backing stats: %w", err)
		}
		err = fmt.Errorf("backing stats row missing")
		return nil, err
	}

	var (
		supporters uint64
		staked     uint64
		withdrawn  uint64
	)
	if err = rows.Scan(&supporters, &staked, &withdrawn); err != nil {
		return nil, fmt.Errorf("scan backing stats: %w", err)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backing stats: %w", err)
	}

	stats := model.ChainBackingStats{}
	if stats.NumLovelacesStaked, err = safe.Int64(staked); err != nil {
		return nil, fmt.Errorf("staked amount: %w", err)
	}
	if stats.NumLovelacesWithdrawn, err = safe.Int64(withdrawn); err != nil {
		return nil, fmt.Errorf("withdrawn amount: %w", err)
	}
	var numSupporters int64
	if numSupporters, err = safe.Int64(supporters); err != nil {
		return nil, fmt.Errorf("supporter count: %w", err)
	}
	stats.NumSupporters = int(numSupporters)

	return &stats, nil
}
