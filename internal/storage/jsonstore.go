package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tillworks/till/internal/common"
	"github.com/tillworks/till/internal/model"
)

// JSONStore keeps the ledger as a single JSON array on disk, mirroring the
// browser-local payload format: an ordered sequence of records with fields
// id, timestamp, items, total, paymentMethod, receivedAmount, changeAmount.
type JSONStore struct {
	path string
}

// NewJSONStore creates a JSON file store at the given path. The parent
// directory is created if needed.
func NewJSONStore(path string) (*JSONStore, error) {
	if err := validateString(path, "path"); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create ledger directory: %w", err)
	}
	return &JSONStore{path: path}, nil
}

// Load reads the ledger file. An absent file, unreadable JSON, or a
// payload that is not an array all load as an empty ledger; corruption is
// logged and swallowed so a bad file never blocks the register.
func (s *JSONStore) Load(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []model.Transaction{}, nil
		}
		return nil, fmt.Errorf("failed to read ledger file: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		common.LogError(common.ErrMalformedLedger, "resetting ledger to empty", common.Fields{
			"path":  s.path,
			"cause": err.Error(),
		})
		return []model.Transaction{}, nil
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}
	return transactions, nil
}

// Save writes the full ledger to a temporary file and renames it into
// place, so a crash mid-write never leaves a truncated ledger behind.
func (s *JSONStore) Save(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if transactions == nil {
		transactions = []model.Transaction{}
	}

	data, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write ledger file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace ledger file: %w", err)
	}
	return nil
}

// Close is a no-op for the file store.
func (s *JSONStore) Close() error {
	return nil
}
