package postgres_test

import (
	"accounts/pkg/storage"
	"accounts/pkg/storage/postgres"
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPgSQL_Begin(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	txStorage, err := pg.Begin(ctx)
	require.NoError(t, err)

	inner, ok := txStorage.(*postgres.PgSQL)
	require.True(t, ok)
	_, isTx := inner.DB.(*sql.Tx)
	require.True(t, isTx)

	_, err = inner.Begin(ctx)
	require.ErrorIs(t, err, storage.ErrAlreadyInTx)

	require.NoError(t, inner.Rollback())
}

func TestPgSQL_CommitAndRollback_OutsideTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	require.ErrorIs(t, pg.Commit(), storage.ErrNotInTx)
	require.ErrorIs(t, pg.Rollback(), storage.ErrNotInTx)
}

func TestPgSQL_Commit(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tx, err := pg.Begin(ctx)
	require.NoError(t, err)

	stored, err := tx.StoreUser(ctx, newTestUser(t, "commit@example.com"))
	require.NoError(t, err)

	outside, err := pg.UserByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Nil(t, outside, "uncommitted rows are invisible outside the tx")

	require.NoError(t, tx.Commit())

	outside, err = pg.UserByID(ctx, stored.ID)
	require.NoError(t, err)
	require.NotNil(t, outside)
}

func TestPgSQL_Rollback(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	tx, err := pg.Begin(ctx)
	require.NoError(t, err)

	stored, err := tx.StoreUser(ctx, newTestUser(t, "rollback@example.com"))
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	got, err := pg.UserByID(ctx, stored.ID)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestPgSQL_WithTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	err := pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.StoreUser(ctx, newTestUser(t, "kept@example.com"))

		return err //nolint: wrapcheck
	})
	require.NoError(t, err)

	kept, err := pg.UserByEmail(ctx, mustEmail(t, "kept@example.com"))
	require.NoError(t, err)
	require.NotNil(t, kept)

	boom := errors.New("boom")
	err = pg.WithTx(ctx, func(s storage.AllStorage) error {
		_, err := s.StoreUser(ctx, newTestUser(t, "dropped@example.com"))
		require.NoError(t, err)

		return boom
	})
	require.ErrorIs(t, err, boom)

	dropped, err := pg.UserByEmail(ctx, mustEmail(t, "dropped@example.com"))
	require.NoError(t, err)
	require.Nil(t, dropped)
}
