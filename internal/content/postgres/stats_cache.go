package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// CachedStats returns the cached chain statistics of a project, or nil when
// the refresher has not written the project yet.
func (r *Repository) CachedStats(ctx context.Context, projectID string) (*model.ProjectStats, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("cached_stats", err, start)
	}()

	const query = `
		SELECT num_supporters, num_lovelaces_staked, num_lovelaces_withdrawn,
		       num_lovelaces_available, num_lovelaces_raised, avg_update_interval_ms
		FROM project_stats
		WHERE project_id = $1`

	var stats model.ProjectStats
	err = r.pool.QueryRow(ctx, query, projectID).Scan(
		&stats.NumSupporters,
		&stats.NumLovelacesStaked,
		&stats.NumLovelacesWithdrawn,
		&stats.NumLovelacesAvailable,
		&stats.NumLovelacesRaised,
		&stats.AverageMillisecondsBetweenProjectUpdates,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
			return nil, nil
		}
		err = fmt.Errorf("query cached stats: %w", err)
		return nil, err
	}

	return &stats, nil
}

// UpsertStats writes a batch of refreshed per-project stats rows.
func (r *Repository) UpsertStats(ctx context.Context, statsRows []model.ProjectStatsRow) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("upsert_stats", err, start)
	}()

	if len(statsRows) == 0 {
		return nil
	}

	const query = `
		INSERT INTO project_stats
			(project_id, num_supporters, num_lovelaces_staked, num_lovelaces_withdrawn,
			 num_lovelaces_available, num_lovelaces_raised, avg_update_interval_ms, refreshed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (project_id) DO UPDATE SET
			num_supporters = EXCLUDED.num_supporters,
			num_lovelaces_staked = EXCLUDED.num_lovelaces_staked,
			num_lovelaces_withdrawn = EXCLUDED.num_lovelaces_withdrawn,
			num_lovelaces_available = EXCLUDED.num_lovelaces_available,
			num_lovelaces_raised = EXCLUDED.num_lovelaces_raised,
			avg_update_interval_ms = EXCLUDED.avg_update_interval_ms,
			refreshed_at = EXCLUDED.refreshed_at`

	batch := &pgx.Batch{}
	for _, row := range statsRows {
		batch.Queue(query,
			row.ProjectID,
			row.Stats.NumSupporters,
			row.Stats.NumLovelacesStaked,
			row.Stats.NumLovelacesWithdrawn,
			row.Stats.NumLovelacesAvailable,
			row.Stats.NumLovelacesRaised,
			row.Stats.AverageMillisecondsBetweenProjectUpdates,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer func() {
		if cerr := results.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close stats batch: %w", cerr)
		}
	}()

	for range statsRows {
		if _, err = results.Exec(); err != nil {
			return fmt.Errorf("upsert stats row: %w", err)
		}
	}

	return nil
}
