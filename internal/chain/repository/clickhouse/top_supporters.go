package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
	"github.com/teiki-network/teiki-backend/pkg/safe"
)

// TopSupporters returns the addresses with the highest live backing per
// project, largest first. Address breaks ties so pagination stays stable.
func (r *Repository) TopSupporters(ctx context.Context, projectID string, limit int) ([]model.SupporterInfo, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("top_supporters", err, start)
	}()

	const query = `
SELECT
	address,
	sum(value) AS total
FROM chain_backings FINAL
WHERE project_id = ? AND spent_slot IS NULL
GROUP BY address
ORDER BY total DESC, address ASC
LIMIT ?`

	rows, err := r.conn.Query(ctx, query, projectID, limit)
	if err != nil {
		return nil, fmt.Errorf("query top supporters: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var supporters []model.SupporterInfo
	for rows.Next() {
		var (
			supporter model.SupporterInfo
			total     uint64
		)
		if err = rows.Scan(&supporter.Address, &total); err != nil {
			return nil, fmt.Errorf("scan supporter: %w", err)
		}
		if supporter.LovelaceAmount, err = safe.Int64(total); err != nil {
			return nil, fmt.Errorf("supporter amount: %w", err)
		}

		supporters = append(supporters, supporter)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate supporters: %w", err)
	}

	return supporters, nil
}
