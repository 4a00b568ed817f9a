package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value string
	err := db.Pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (db *DB) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_entries (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := db.Pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	db.log.Debug("kv set", zap.String("key", key), zap.Int("bytes", len(value)))
	return nil
}

func (db *DB) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	result, err := db.Pool.Exec(ctx, query, key)
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	db.log.Debug("kv delete", zap.String("key", key), zap.Int64("rows", result.RowsAffected()))
	return nil
}

// Keys lists stored keys with the given prefix.
func (db *DB) Keys(ctx context.Context, prefix string) ([]string, error) {
	query := `
		SELECT key
		FROM kv_entries
		WHERE key LIKE $1 || '%'
		ORDER BY key
	`

	rows, err := db.Pool.Query(ctx, query, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	defer rows.Close()

	keys := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("failed to scan key: %w", err)
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating keys: %w", err)
	}
	return keys, nil
}
