package clickhouse

import (
	"context"
	"fmt"
	"time"
)

// ProjectIDs returns every project id the chain has seen a creation event
// for. The stats refresher sweeps over this set.
func (r *Repository) ProjectIDs(ctx context.Context) ([]string, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("project_ids", err, start)
	}()

	const query = `
SELECT DISTINCT project_id
FROM chain_project_creations
ORDER BY project_id ASC`

	rows, err := r.conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query project ids: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err = rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project ids: %w", err)
	}

	return ids, nil
}
