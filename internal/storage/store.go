// Package storage persists the transaction ledger. Implementations write
// the whole ledger on every save; there is exactly one logical writer, so
// no locking is needed beyond what the medium provides.
package storage

import (
	"context"

	"github.com/tillworks/till/internal/model"
)

// Store is the persistence contract for the ledger. Load returns the
// stored transactions most recent first; a missing or malformed payload
// loads as an empty ledger rather than an error. Save atomically replaces
// the stored ledger with the given one.
type Store interface {
	Load(ctx context.Context) ([]model.Transaction, error)
	Save(ctx context.Context, transactions []model.Transaction) error
	Close() error
}
