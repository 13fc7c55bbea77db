package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/teiki-network/teiki-backend/internal/model"
)

// UnspentProjectScriptOutputs returns every unspent output linked to the
// project's staking scripts, most recent first. FINAL collapses row versions
// so spent markers and their successors are observed in one snapshot. The
// invariant is at most one row; callers tie-break on the query order when
// the chain briefly shows more.
func (r *Repository) UnspentProjectScriptOutputs(ctx context.Context, projectID string) ([]model.Output, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("unspent_project_script_outputs", err, start)
	}()

	const query = `
SELECT
	o.id,
	o.tx_id,
	o.output_index,
	o.address,
	o.value,
	o.created_slot,
	o.spent_slot,
	o.script_hash,
	o.script_type,
	o.script_hex
FROM chain_outputs AS o FINAL
INNER JOIN chain_project_scripts AS ps FINAL ON ps.output_id = o.id
WHERE ps.project_id = ? AND o.spent_slot IS NULL
ORDER BY o.created_slot DESC, o.id DESC`

	rows, err := r.conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("query unspent project script outputs: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	var outputs []model.Output
	for rows.Next() {
		var output model.Output
		if err = rows.Scan(
			&output.ID,
			&output.TxID,
			&output.OutputIndex,
			&output.Address,
			&output.Value,
			&output.CreatedSlot,
			&output.SpentSlot,
			&output.ScriptHash,
			&output.ScriptType,
			&output.ScriptHex,
		); err != nil {
			return nil, fmt.Errorf("scan project script output: %w", err)
		}

		outputs = append(outputs, output)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project script outputs: %w", err)
	}

	return outputs, nil
}
