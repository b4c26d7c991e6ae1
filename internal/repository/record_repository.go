package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ndewijer/investment-goal-tracker/internal/apperrors"
)

// Storage identifiers, one per logical store.
const (
	UserProfileKey   = "investment-tracker-user"
	NotificationsKey = "investment-tracker-notifications"
	AppConfigKey     = "investment-tracker-config"
)

// RecordRepository stores a single JSON record of type T under a fixed key in
// the store_record table. Every Save replaces the whole record.
type RecordRepository[T any] struct {
	db     *sql.DB
	key    string
	sealer *Sealer
}

// NewRecordRepository creates a RecordRepository for key. sealer may be nil.
func NewRecordRepository[T any](db *sql.DB, key string, sealer *Sealer) *RecordRepository[T] {
	return &RecordRepository[T]{db: db, key: key, sealer: sealer}
}

// Key returns the storage identifier of this repository.
func (r *RecordRepository[T]) Key() string {
	return r.key
}

// Load reads the stored record. The bool is false when nothing is stored.
func (r *RecordRepository[T]) Load(ctx context.Context) (T, bool, error) {
	var zero T

	query := `
		SELECT data
		FROM store_record
		WHERE store_key = ?
	`

	var stored string
	err := r.db.QueryRowContext(ctx, query, r.key).Scan(&stored)
	if errors.Is(err, sql.ErrNoRows) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("failed to query store_record %s: %w", r.key, err)
	}

	payload, err := r.sealer.open([]byte(stored))
	if err != nil {
		return zero, false, fmt.Errorf("%s: %w", r.key, err)
	}

	var record T
	if err := json.Unmarshal(payload, &record); err != nil {
		return zero, false, fmt.Errorf("%w: %s: %w", apperrors.ErrCorruptRecord, r.key, err)
	}
	return record, true, nil
}

// Save replaces the stored record.
func (r *RecordRepository[T]) Save(ctx context.Context, record T) error {
	payload, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", r.key, err)
	}
	stored, err := r.sealer.seal(payload)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO store_record (store_key, data, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(store_key) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, r.key, string(stored)); err != nil {
		return fmt.Errorf("failed to save store_record %s: %w", r.key, err)
	}
	return nil
}

// Clear deletes the stored record. Clearing an empty store is not an error.
func (r *RecordRepository[T]) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM store_record WHERE store_key = ?`, r.key); err != nil {
		return fmt.Errorf("failed to clear store_record %s: %w", r.key, err)
	}
	return nil
}

// StoreRepository operates on the record table as a whole.
type StoreRepository struct {
	db *sql.DB
}

// NewStoreRepository creates a new StoreRepository with the provided database connection.
func NewStoreRepository(db *sql.DB) *StoreRepository {
	return &StoreRepository{db: db}
}

// ClearAll deletes every stored record and returns how many were removed.
func (r *StoreRepository) ClearAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM store_record`)
	if err != nil {
		return 0, fmt.Errorf("failed to clear store_record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count cleared records: %w", err)
	}
	return n, nil
}
