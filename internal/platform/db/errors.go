package db

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/seth-vargas/biztime/internal/shared"
)

// Postgres SQLSTATE codes mapped to domain errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidTextRep      = "22P02"
)

// Classify wraps driver errors with the matching shared sentinel so callers can
// branch with errors.Is. Unknown errors are returned unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%w: %v", shared.ErrNotFound, err)
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeUniqueViolation:
		return fmt.Errorf("%w: %s", shared.ErrDuplicate, describe(pgErr))
	case codeForeignKeyViolation, codeCheckViolation, codeNotNullViolation, codeInvalidTextRep:
		return fmt.Errorf("%w: %s", shared.ErrValidation, describe(pgErr))
	}
	return err
}

func describe(pgErr *pgconn.PgError) string {
	if pgErr.Detail != "" {
		return pgErr.Detail
	}
	if pgErr.ConstraintName != "" {
		return "violates " + pgErr.ConstraintName
	}
	return pgErr.Message
}
