package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestKVPostgres_Get(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewKVPostgres(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = ?").
			WithArgs("@recent_files").
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

		value, found, err := repo.Get(ctx, "@recent_files")

		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "[]", value)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = ?").
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		value, found, err := repo.Get(ctx, "missing")

		assert.NoError(t, err)
		assert.False(t, found)
		assert.Empty(t, value)
	})

	t.Run("query error", func(t *testing.T) {
		mock.ExpectQuery("SELECT value FROM kv_store WHERE key = ?").
			WithArgs("broken").
			WillReturnError(errors.New("conn reset"))

		_, found, err := repo.Get(ctx, "broken")

		assert.EqualError(t, err, "conn reset")
		assert.False(t, found)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVPostgres_Set(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewKVPostgres(db)

	mock.ExpectExec("INSERT INTO kv_store (.+) ON CONFLICT \\(key\\) DO UPDATE").
		WithArgs("@recent_files", `[{"uri":"file:///a.pdf"}]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Set(context.Background(), "@recent_files", `[{"uri":"file:///a.pdf"}]`)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVPostgres_Remove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewKVPostgres(db)
	ctx := context.Background()

	mock.ExpectExec("DELETE FROM kv_store WHERE key = ?").
		WithArgs("@recent_files").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = repo.Remove(ctx, "@recent_files")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVPostgres_LockKey(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	defer db.Close()

	repo := NewKVPostgres(db)
	ctx := context.Background()
	lockSQL := regexp.QuoteMeta("SELECT pg_advisory_lock(hashtext($1))")
	unlockSQL := regexp.QuoteMeta("SELECT pg_advisory_unlock(hashtext($1))")

	t.Run("lock and unlock on one session", func(t *testing.T) {
		mock.ExpectExec(lockSQL).WithArgs("@recent_files").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(unlockSQL).WithArgs("@recent_files").WillReturnResult(sqlmock.NewResult(0, 1))

		unlock, err := repo.LockKey(ctx, "@recent_files")
		assert.NoError(t, err)
		assert.NoError(t, unlock())
	})

	t.Run("lock error", func(t *testing.T) {
		mock.ExpectExec(lockSQL).WithArgs("busy").WillReturnError(errors.New("deadlock detected"))

		unlock, err := repo.LockKey(ctx, "busy")

		assert.Nil(t, unlock)
		assert.EqualError(t, err, "advisory lock: deadlock detected")
	})

	t.Run("unlock error", func(t *testing.T) {
		mock.ExpectExec(lockSQL).WithArgs("k").WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(unlockSQL).WithArgs("k").WillReturnError(errors.New("conn reset"))

		unlock, err := repo.LockKey(ctx, "k")
		assert.NoError(t, err)
		assert.EqualError(t, unlock(), "advisory unlock: conn reset")
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
