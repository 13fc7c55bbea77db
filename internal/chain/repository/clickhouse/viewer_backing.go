package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/pkg/safe"
)

// ViewerBacking returns the lovelace a given address currently has locked
// behind the project. Zero means the viewer does not back the project.
func (r *Repository) ViewerBacking(ctx context.Context, projectID, address string) (int64, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("viewer_backing", err, start)
	}()

	const query = `
SELECT sum(value) AS total
FROM chain_backings FINAL
WHERE project_id = ? AND address = ? AND spent_slot IS NULL`

	rows, err := r.conn.Query(ctx, query, projectID, address)
	if err != nil {
		return 0, fmt.Errorf("query viewer backing: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var total uint64
	if rows.Next() {
		if err = rows.Scan(&total); err != nil {
			return 0, fmt.Errorf("scan viewer backing: %w", err)
		}
	}
	if err = rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate viewer backing: %w", err)
	}

	amount, err := safe.Int64(total)
	if err != nil {
		return 0, fmt.Errorf("viewer backing amount: %w", err)
	}
	return amount, nil
}
