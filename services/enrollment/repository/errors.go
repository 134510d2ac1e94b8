package repository

import (
	"errors"

	"enrollment/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// txError wraps a database failure with the Postgres SQLSTATE and detail when
// the driver exposes them. Domain errors pass through untouched.
func txError(op string, err error) error {
	if err == nil {
		return nil
	}

	var (
		ve *domain.ValidationError
		ne *domain.NotFoundError
		ce *domain.ConnectionError
		te *domain.TransactionError
	)
	if errors.As(err, &ve) || errors.As(err, &ne) || errors.As(err, &ce) || errors.As(err, &te) {
		return err
	}

	out := &domain.TransactionError{Op: op, Err: err}

	var pgErr *pgconn.PgError
	var pqErr *pq.Error
	switch {
	case errors.As(err, &pgErr):
		out.Code = pgErr.Code
		out.Detail = pgErr.Detail
	case errors.As(err, &pqErr):
		out.Code = string(pqErr.Code)
		out.Detail = pqErr.Detail
	}
	return out
}
