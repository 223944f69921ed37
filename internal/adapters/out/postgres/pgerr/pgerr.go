// Package pgerr classifies PostgreSQL error codes into the application's
// error taxonomy. The admission window relies on row locks, so lock timeouts,
// deadlocks and serialization failures are expected under contention; they map
// to errs.TransientContentionError so callers know the operation performed no
// mutation and is safe to retry.
package pgerr

import (
	"errors"

	"shipping/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// PostgreSQL SQLSTATE codes that indicate transient contention.
const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
)

// Wrap converts transient PostgreSQL failures into TransientContentionError,
// tagged with the failing operation. Other errors pass through unchanged.
// Both the pgx and lib/pq error shapes are recognized; which one surfaces
// depends on how the connection pool was opened.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}

	switch sqlState(err) {
	case serializationFailure, deadlockDetected, lockNotAvailable:
		return errs.NewTransientContentionError(op, err)
	default:
		return err
	}
}

func sqlState(err error) string {
	var pgxError *pgconn.PgError
	if errors.As(err, &pgxError) {
		return pgxError.Code
	}

	var pqError *pq.Error
	if errors.As(err, &pqError) {
		return string(pqError.Code)
	}

	return ""
}
