package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// ProjectUpdates returns the owner content edits of a project, newest first.
func (r *Repository) ProjectUpdates(ctx context.Context, projectID string) ([]model.ProjectUpdateEvent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("project_updates", err, start)
	}()

	const query = `
		SELECT id, scopes, message, created_at, created_by
		FROM project_updates
		WHERE project_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query project updates: %w", err)
	}
	defer rows.Close()

	var events []model.ProjectUpdateEvent
	for rows.Next() {
		var (
			event      model.ProjectUpdateEvent
			scopesJSON []byte
			createdAt  time.Time
		)
		if err = rows.Scan(&event.ID, &scopesJSON, &event.Message, &createdAt, &event.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan project update: %w", err)
		}
		if err = json.Unmarshal(scopesJSON, &event.Scopes); err != nil {
			return nil, fmt.Errorf("decode update scopes: %w", err)
		}

		event.ProjectID = projectID
		event.CreatedAt = createdAt.UnixMilli()

		events = append(events, event)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project updates: %w", err)
	}

	return events, nil
}
