package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/apperrors"
)

// ProjectBySelector resolves the project identity row by whichever selector
// field is set. Returns apperrors.ErrNotFound when nothing matches.
func (r *Repository) ProjectBySelector(ctx context.Context, sel model.ProjectSelector) (*model.ProjectRecord, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("project_by_selector", err, start)
	}()

	conditions := make([]string, 0, 4)
	args := make([]any, 0, 3)
	argIdx := 1

	if sel.ProjectID != nil {
		conditions = append(conditions, fmt.Sprintf("id = $%d", argIdx))
		args = append(args, *sel.ProjectID)
		argIdx++
	}
	if sel.CustomURL != nil {
		conditions = append(conditions, fmt.Sprintf("custom_url = $%d", argIdx))
		args = append(args, *sel.CustomURL)
		argIdx++
	}
	if sel.OwnerAddress != nil {
		conditions = append(conditions, fmt.Sprintf("owner_address = $%d", argIdx))
		args = append(args, *sel.OwnerAddress)
		argIdx++
	}
	if len(conditions) == 0 {
		err = errors.New("project selector is empty")
		return nil, err
	}
	if sel.Active != nil {
		if *sel.Active {
			conditions = append(conditions, "closed_at IS NULL AND delisted_at IS NULL")
		} else {
			conditions = append(conditions, "(closed_at IS NOT NULL OR delisted_at IS NOT NULL)")
		}
	}

	query := fmt.Sprintf(`
		SELECT id, custom_url, owner_address, basics, community, censorship,
		       match, featured, sponsor, sponsorship_amount, sponsorship_until,
		       created_at, updated_at, closed_at, delisted_at
		FROM projects
		WHERE %s
		LIMIT 1`, strings.Join(conditions, " AND "))

	var (
		rec              model.ProjectRecord
		basicsJSON       []byte
		communityJSON    []byte
		sponsorshipUntil *time.Time
		createdAt        *time.Time
		updatedAt        *time.Time
		closedAt         *time.Time
		delistedAt       *time.Time
	)
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rec.ID,
		&rec.CustomURL,
		&rec.OwnerAddress,
		&basicsJSON,
		&communityJSON,
		&rec.Censorship,
		&rec.Match,
		&rec.Featured,
		&rec.Sponsor,
		&rec.SponsorshipAmount,
		&sponsorshipUntil,
		&createdAt,
		&updatedAt,
		&closedAt,
		&delistedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			err = fmt.Errorf("project: %w", apperrors.ErrNotFound)
			return nil, err
		}
		err = fmt.Errorf("query project by selector: %w", err)
		return nil, err
	}

	if err = json.Unmarshal(basicsJSON, &rec.Basics); err != nil {
		err = fmt.Errorf("decode project basics: %w", err)
		return nil, err
	}
	if err = json.Unmarshal(communityJSON, &rec.Community); err != nil {
		err = fmt.Errorf("decode project community: %w", err)
		return nil, err
	}

	rec.SponsorshipUntil = millis(sponsorshipUntil)
	rec.CreatedAt = millis(createdAt)
	rec.UpdatedAt = millis(updatedAt)
	rec.ClosedAt = millis(closedAt)
	rec.DelistedAt = millis(delistedAt)

	return &rec, nil
}
