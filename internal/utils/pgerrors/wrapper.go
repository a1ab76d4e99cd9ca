package pgerrors

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// PgError - server side error rendered with its SQLSTATE code.
type PgError struct {
	Err *pgconn.PgError
}

func NewPgError(err *pgconn.PgError) error {
	return &PgError{Err: err}
}

func (e *PgError) Error() string {
	msg := e.Err.Message
	if e.Err.Detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Err.Detail)
	}
	return fmt.Sprintf("%s (code %s)", msg, e.Err.Code)
}

func (e *PgError) Unwrap() error {
	return e.Err
}

// Wrap - wraps the server error into PgError. Any other error is returned as is.
func Wrap(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return NewPgError(pgErr)
	}
	return err
}
