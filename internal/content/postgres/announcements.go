package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// Announcements returns the community updates of a project, newest first.
func (r *Repository) Announcements(ctx context.Context, projectID string) ([]model.ProjectAnnouncement, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("announcements", err, start)
	}()

	const query = `
		SELECT id, title, body, summary, sequence_number, censorship, created_at, created_by
		FROM project_announcements
		WHERE project_id = $1
		ORDER BY created_at DESC, sequence_number DESC`

	rows, err := r.pool.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query announcements: %w", err)
	}
	defer rows.Close()

	var announcements []model.ProjectAnnouncement
	for rows.Next() {
		var (
			a         model.ProjectAnnouncement
			id        uuid.UUID
			createdAt time.Time
		)
		if err = rows.Scan(&id, &a.Title, &a.Body, &a.Summary, &a.SequenceNumber, &a.Censorship, &createdAt, &a.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}

		a.ID = id.String()
		a.CreatedAt = createdAt.UnixMilli()

		announcements = append(announcements, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}

	return announcements, nil
}

// CreateAnnouncement stores a new community update and assigns its
// per-project sequence number. The counter upsert takes a row lock, so
// concurrent creations for the same project serialize and the assigned
// ordinals are gap-free.
func (r *Repository) CreateAnnouncement(ctx context.Context, projectID string, a model.ProjectAnnouncement) (*model.ProjectAnnouncement, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("create_announcement", err, start)
	}()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	const counterQuery = `
		INSERT INTO announcement_counters (project_id, last_sequence_number)
		VALUES ($1, 1)
		ON CONFLICT (project_id)
		DO UPDATE SET last_sequence_number = announcement_counters.last_sequence_number + 1
		RETURNING last_sequence_number`

	var sequenceNumber int
	if err = tx.QueryRow(ctx, counterQuery, projectID).Scan(&sequenceNumber); err != nil {
		return nil, fmt.Errorf("assign sequence number: %w", err)
	}

	id := uuid.New()
	createdAt := time.Now().UTC()

	const insertQuery = `
		INSERT INTO project_announcements
			(id, project_id, title, body, summary, sequence_number, censorship, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	if _, err = tx.Exec(ctx, insertQuery,
		id, projectID, a.Title, []byte(a.Body), a.Summary, sequenceNumber, a.Censorship, createdAt, a.CreatedBy,
	); err != nil {
		return nil, fmt.Errorf("insert announcement: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit announcement: %w", err)
	}

	created := a
	created.ID = id.String()
	created.SequenceNumber = sequenceNumber
	created.CreatedAt = createdAt.UnixMilli()

	return &created, nil
}
