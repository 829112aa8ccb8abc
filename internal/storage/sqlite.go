package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tillworks/till/internal/common"
	"github.com/tillworks/till/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// schemaVersion is the schema this build expects, tracked via
// PRAGMA user_version.
const schemaVersion = 1

// SQLiteStore implements Store using SQLite. The ledger is small enough
// that every save replaces the whole table inside one transaction, which
// keeps the on-disk order identical to the in-memory order.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the ledger database at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if version >= schemaVersion {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			position INTEGER PRIMARY KEY,
			id TEXT UNIQUE NOT NULL,
			timestamp INTEGER NOT NULL,
			total INTEGER NOT NULL,
			payment_method TEXT NOT NULL,
			received_amount INTEGER NOT NULL DEFAULT 0,
			change_amount INTEGER NOT NULL DEFAULT 0,
			items TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_timestamp ON transactions(timestamp)`,
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	}
	for _, query := range queries {
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute migration: %w", err)
		}
	}
	return tx.Commit()
}

// Load reads the full ledger in stored order (most recent first). A row
// whose item payload no longer parses is kept with empty items rather than
// failing the whole load.
func (s *SQLiteStore) Load(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, timestamp, total, payment_method, received_amount, change_amount, items
		FROM transactions
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	transactions := []model.Transaction{}
	for rows.Next() {
		var (
			txn       model.Transaction
			method    string
			itemsJSON string
		)
		if err := rows.Scan(&txn.ID, &txn.Timestamp, &txn.Total, &method, &txn.Received, &txn.Change, &itemsJSON); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txn.Method = model.PaymentMethod(method)
		if err := json.Unmarshal([]byte(itemsJSON), &txn.Items); err != nil {
			common.LogError(common.ErrMalformedLedger, "dropping unreadable item list", common.Fields{
				"transaction_id": txn.ID,
				"cause":          err.Error(),
			})
			txn.Items = nil
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}

// Save replaces the stored ledger with the given one atomically.
func (s *SQLiteStore) Save(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM transactions"); err != nil {
		return fmt.Errorf("failed to clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO transactions (
			position, id, timestamp, total, payment_method, received_amount, change_amount, items
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, txn := range transactions {
		items := txn.Items
		if items == nil {
			items = []model.OrderLine{}
		}
		itemsJSON, err := json.Marshal(items)
		if err != nil {
			return fmt.Errorf("failed to encode items for %s: %w", txn.ID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			i, txn.ID, txn.Timestamp, txn.Total, string(txn.Method), txn.Received, txn.Change, string(itemsJSON),
		); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return tx.Commit()
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
