package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fileview/internal/repository"
)

// KVPostgres is a PostgreSQL implementation of repository.KeyValueStore.
// It uses database/sql with parameterized queries and contains no business logic.
type KVPostgres struct {
	db *sql.DB
}

// NewKVPostgres creates a new KVPostgres repository.
func NewKVPostgres(db *sql.DB) *KVPostgres {
	return &KVPostgres{db: db}
}

var (
	_ repository.KeyValueStore = (*KVPostgres)(nil)
	_ repository.KeyLocker     = (*KVPostgres)(nil)
)

// Get fetches the value stored under key.
func (r *KVPostgres) Get(ctx context.Context, key string) (string, bool, error) {
	const q = `SELECT value FROM kv_store WHERE key = $1`
	var value string
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// Set upserts the value under key.
func (r *KVPostgres) Set(ctx context.Context, key, value string) error {
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, q, key, value)
	return err
}

// Remove deletes key. It does not return an error if the row does not exist.
func (r *KVPostgres) Remove(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_store WHERE key = $1`
	res, err := r.db.ExecContext(ctx, q, key)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// LockKey takes a session advisory lock derived from key on a dedicated
// connection. Every process sharing the database contends for the same lock.
func (r *KVPostgres) LockKey(ctx context.Context, key string) (func() error, error) {
	conn, err := r.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock(hashtext($1))`, key); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("advisory lock: %w", err)
	}

	return func() error {
		// The lock belongs to the session, so release it on the same conn.
		_, err := conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock(hashtext($1))`, key)
		cerr := conn.Close()
		if err != nil {
			return fmt.Errorf("advisory unlock: %w", err)
		}
		return cerr
	}, nil
}
