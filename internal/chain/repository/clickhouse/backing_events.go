package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/safe"
)

// BackingEvents returns every backer output lifecycle of a project, newest
// first. A row with a spent slot contributes both a back and a later unback
// entry to the activity feed.
func (r *Repository) BackingEvents(ctx context.Context, projectID string) ([]model.BackingEvent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("backing_events", err, start)
	}()

	const query = `
SELECT
	id,
	address,
	value,
	created_slot,
	created_time,
	created_tx,
	spent_slot,
	spent_time,
	spent_tx,
	message,
	moderated_tags
FROM chain_backings FINAL
WHERE project_id = ?
ORDER BY created_slot DESC, id DESC`

	rows, err := r.conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query backing events: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var events []model.BackingEvent
	for rows.Next() {
		var (
			event       model.BackingEvent
			value       uint64
			createdTime time.Time
			spentTime   *time.Time
		)
		if err = rows.Scan(
			&event.ID,
			&event.Address,
			&value,
			&event.CreatedSlot,
			&createdTime,
			&event.CreatedTx,
			&event.SpentSlot,
			&spentTime,
			&event.SpentTx,
			&event.Message,
			&event.ModeratedTags,
		); err != nil {
			return nil, fmt.Errorf("scan backing event: %w", err)
		}

		event.ProjectID = projectID
		event.CreatedTime = createdTime.UnixMilli()
		if spentTime != nil {
			ms := spentTime.UnixMilli()
			event.SpentTime = &ms
		}
		if event.LovelaceAmount, err = safe.Int64(value); err != nil {
			return nil, fmt.Errorf("backing amount: %w", err)
		}

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate backing events: %w", err)
	}

	return events, nil
}
