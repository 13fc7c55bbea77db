package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// ProtocolMilestones returns the protocol milestone crossings of a project,
// newest first.
func (r *Repository) ProtocolMilestones(ctx context.Context, projectID string) ([]model.ProtocolMilestoneEvent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("protocol_milestones", err, start)
	}()

	const query = `
SELECT
	milestones_snapshot,
	slot,
	time
FROM chain_protocol_milestones
WHERE project_id = ?
ORDER BY slot DESC`

	rows, err := r.conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query protocol milestones: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var events []model.ProtocolMilestoneEvent
	for rows.Next() {
		var (
			event     model.ProtocolMilestoneEvent
			snapshot  uint32
			eventTime time.Time
		)
		if err = rows.Scan(&snapshot, &event.Slot, &eventTime); err != nil {
			return nil, fmt.Errorf("scan protocol milestone: %w", err)
		}

		event.ProjectID = projectID
		event.MilestonesSnapshot = int(snapshot)
		event.Time = eventTime.UnixMilli()

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate protocol milestones: %w", err)
	}

	return events, nil
}
