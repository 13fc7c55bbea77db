package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// ProjectCreation returns the on-chain creation event of a project, or nil
// when ingestion has not observed it yet.
func (r *Repository) ProjectCreation(ctx context.Context, projectID string) (*model.ProjectCreationEvent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("project_creation", err, start)
	}()

	const query = `
SELECT
	created_slot,
	created_time,
	created_by,
	created_tx,
	sponsorship_amount
FROM chain_project_creations
WHERE project_id = ?
ORDER BY created_slot ASC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project creation: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("iterate project creation: %w", err)
		}
		return nil, nil
	}

	var (
		event       model.ProjectCreationEvent
		createdTime time.Time
		sponsorship *uint64
	)
	if err = rows.Scan(
		&event.CreatedSlot,
		&createdTime,
		&event.CreatedBy,
		&event.CreatedTx,
		&sponsorship,
	); err != nil {
		return nil, fmt.Errorf("scan project creation: %w", err)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project creation: %w", err)
	}

	event.ProjectID = projectID
	event.CreatedTime = createdTime.UnixMilli()
	if sponsorship != nil {
		amount := int64(*sponsorship)
		event.SponsorshipAmount = &amount
	}

	return &event, nil
}
