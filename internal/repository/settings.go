package repository

import (
	"context"
	"database/sql"
	"fmt"
)

// SettingsRepository implements store.SettingsStore against the
// settings(key TEXT PK, value TEXT) table.
type SettingsRepository struct {
	db DB
}

// NewSettingsRepository builds a SettingsRepository over db.
func NewSettingsRepository(db DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get returns the stored value for key, or fallback if no row exists.
func (r *SettingsRepository) Get(ctx context.Context, key, fallback string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading setting %q: %w", key, err)
	}
	return value, nil
}

// Set upserts key's value.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	const upsert = `
		INSERT INTO settings (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = $2
	`
	if _, err := r.db.ExecContext(ctx, upsert, key, value); err != nil {
		return fmt.Errorf("saving setting %q: %w", key, err)
	}
	return nil
}
