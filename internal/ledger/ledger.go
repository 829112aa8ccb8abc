// Package ledger owns the persisted history of completed sales and the
// derived statistics computed over it.
package ledger

import (
	"context"
	"fmt"

	"github.com/tillworks/till/internal/common"
	"github.com/tillworks/till/internal/model"
	"github.com/tillworks/till/internal/storage"
)

// Ledger is the append-ordered history of completed sales, most recent
// first. Every mutation writes the full ledger back through the store
// before returning, so memory and disk never diverge.
type Ledger struct {
	store        storage.Store
	transactions []model.Transaction
}

// Open loads the persisted ledger from the store. A store that reports
// corruption has already reset itself to empty, so Open only fails on
// genuine I/O errors.
func Open(ctx context.Context, store storage.Store) (*Ledger, error) {
	transactions, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	common.LogDebug("ledger loaded", common.Fields{"transactions": len(transactions)})
	return &Ledger{store: store, transactions: transactions}, nil
}

// Len returns the number of recorded sales.
func (l *Ledger) Len() int {
	return len(l.transactions)
}

// Transactions returns a copy of the ledger, most recent first.
func (l *Ledger) Transactions() []model.Transaction {
	out := make([]model.Transaction, len(l.transactions))
	copy(out, l.transactions)
	return out
}

// Get returns the transaction with the given id.
func (l *Ledger) Get(id string) (*model.Transaction, error) {
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			txn := l.transactions[i]
			return &txn, nil
		}
	}
	return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
}

// Record prepends a completed sale and persists the ledger. On a failed
// save the in-memory ledger is rolled back so no half-committed state
// survives.
func (l *Ledger) Record(ctx context.Context, txn model.Transaction) error {
	updated := make([]model.Transaction, 0, len(l.transactions)+1)
	updated = append(updated, txn)
	updated = append(updated, l.transactions...)

	if err := l.store.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist sale %s: %w", txn.ID, err)
	}
	l.transactions = updated
	common.LogInfo("sale recorded", common.Fields{
		"transaction_id": txn.ID,
		"total":          txn.Total,
		"method":         string(txn.Method),
	})
	return nil
}

// Delete removes the transaction with the given id and persists the
// ledger. Callers are responsible for confirming the action with the
// user first; there is no undo.
func (l *Ledger) Delete(ctx context.Context, id string) error {
	idx := -1
	for i := range l.transactions {
		if l.transactions[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}

	updated := make([]model.Transaction, 0, len(l.transactions)-1)
	updated = append(updated, l.transactions[:idx]...)
	updated = append(updated, l.transactions[idx+1:]...)

	if err := l.store.Save(ctx, updated); err != nil {
		return fmt.Errorf("failed to persist delete of %s: %w", id, err)
	}
	l.transactions = updated
	common.LogInfo("sale deleted", common.Fields{"transaction_id": id})
	return nil
}
