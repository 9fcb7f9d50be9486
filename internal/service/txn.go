package service

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// maxTxRetries bounds the transparent re-execution of a unit of work that
// lost a store-level race. Business-rule failures are never retried.
const maxTxRetries = 3

// runInTx executes fn inside a database transaction, re-running the whole
// unit from the initial read when Postgres reports a serialization failure
// or deadlock. After maxTxRetries attempts the caller gets ErrConflict.
func runInTx(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error
	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err = db.Transaction(fn)
		if !isSerializationFailure(err) {
			return err
		}
	}
	return ErrConflict
}

// isSerializationFailure matches SQLSTATE 40001 (serialization_failure)
// and 40P01 (deadlock_detected)
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
