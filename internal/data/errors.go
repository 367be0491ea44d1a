package data

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Shared sentinel errors for data-layer repositories.
var (
	ErrAlertNotFound = errors.New("alert not found")

	// Row writer sentinels, surfaced when an event targets a table or column
	// that does not exist.
	ErrTableNotFound  = errors.New("target table does not exist")
	ErrColumnNotFound = errors.New("target column does not exist")
)

// mapPgError translates Postgres error codes relevant to event-supplied
// tables into sentinel errors. Anything else passes through unchanged.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UndefinedTable:
		return ErrTableNotFound
	case pgerrcode.UndefinedColumn:
		return ErrColumnNotFound
	}
	return err
}
