package service

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRunInTx_RetriesTransientConflict(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := runInTx(db, func(tx *gorm.DB) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40001"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRunInTx_DeadlockRetried(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := runInTx(db, func(tx *gorm.DB) error {
		attempts++
		if attempts == 1 {
			return &pgconn.PgError{Code: "40P01"}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
}

func TestRunInTx_ConflictAfterExhaustedRetries(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := runInTx(db, func(tx *gorm.DB) error {
		attempts++
		return &pgconn.PgError{Code: "40001"}
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, maxTxRetries, attempts)
}

func TestRunInTx_BusinessErrorNotRetried(t *testing.T) {
	db := newTestDB(t)

	attempts := 0
	err := runInTx(db, func(tx *gorm.DB) error {
		attempts++
		return ErrInsufficientStock
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, attempts)
}
