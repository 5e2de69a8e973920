package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/TmanScript/umoja-swap-collection/internal/domain/entity"
)

// ledgerWriteError wraps a rejected ledger insert, attaching the
// postgres error code when the driver exposes one.
func ledgerWriteError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &entity.LedgerWriteError{Op: op, Code: pgErr.Code, Err: err}
	}
	return &entity.LedgerWriteError{Op: op, Err: err}
}
