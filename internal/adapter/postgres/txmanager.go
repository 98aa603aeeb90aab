package postgres

import (
	"context"
	"fmt"
)

// TxManager runs callbacks in a transaction carried by the context.
// Repositories pick it up through QuerierFromCtx. Nested RunInTx calls
// join the outer transaction.
type TxManager struct {
	db DB
}

func NewTxManager(db DB) *TxManager {
	return &TxManager{db: db}
}

// RunInTx commits when fn returns nil and rolls back on an error or a
// panic, which is re-raised. Transactions use READ COMMITTED.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", MapError(err, "transaction", ""))
	}

	committed := false
	defer func() {
		if !committed {
			// The context may already be canceled; rollback must still reach the server.
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err := fn(withTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", MapError(err, "transaction", ""))
	}
	committed = true
	return nil
}

