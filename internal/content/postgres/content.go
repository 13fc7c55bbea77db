package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// ProjectContent returns the authored long-form sections of a project.
// Sections the owner has not written yet stay nil; a project with no
// content row at all yields an empty ProjectContent, not an error.
func (r *Repository) ProjectContent(ctx context.Context, projectID string) (*model.ProjectContent, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("project_content", err, start)
	}()

	const query = `
		SELECT description, benefits, roadmap
		FROM project_contents
		WHERE project_id = $1`

	var (
		descriptionJSON []byte
		benefitsJSON    []byte
		roadmapJSON     []byte
	)
	err = r.pool.QueryRow(ctx, query, projectID).Scan(&descriptionJSON, &benefitsJSON, &roadmapJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
			return &model.ProjectContent{}, nil
		}
		err = fmt.Errorf("query project content: %w", err)
		return nil, err
	}

	var content model.ProjectContent
	if len(descriptionJSON) > 0 {
		content.Description = &model.ProjectDescription{Body: json.RawMessage(descriptionJSON)}
	}
	if len(benefitsJSON) > 0 {
		content.Benefits = &model.ProjectBenefits{Perks: json.RawMessage(benefitsJSON)}
	}
	if len(roadmapJSON) > 0 {
		if err = json.Unmarshal(roadmapJSON, &content.Roadmap); err != nil {
			err = fmt.Errorf("decode roadmap: %w", err)
			return nil, err
		}
	}

	return &content, nil
}
