package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// ExecBatch sends batch through the querier bound to ctx and returns the
// number of affected rows across all queued statements.
func ExecBatch(ctx context.Context, db DB, batch *pgx.Batch) (int, error) {
	if batch.Len() == 0 {
		return 0, nil
	}

	results := QuerierFromCtx(ctx, db).SendBatch(ctx, batch)
	defer results.Close()

	var affected int
	for range batch.Len() {
		tag, err := results.Exec()
		if err != nil {
			return affected, fmt.Errorf("batch exec: %w", err)
		}
		affected += int(tag.RowsAffected())
	}

	return affected, nil
}
