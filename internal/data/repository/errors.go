package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrDuplicate is returned when a unique column (email, slug) already holds the value.
	ErrDuplicate = errors.New("duplicate key")
	// ErrReferenced is returned when a row cannot be removed because bookings point at it.
	ErrReferenced = errors.New("still referenced")
)

// postgres error codes
const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
)

func translateError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errors.Join(ErrDuplicate, err)
		case foreignKeyViolation:
			return errors.Join(ErrReferenced, err)
		}
	}
	return err
}
