package pgconv

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error codes the repositories care about.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeExclusionViolation  = "23P01"
)

// IsNoRows checks if the error is a "no rows" error from either sql or pgx
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows) || errors.Is(err, pgx.ErrNoRows)
}

func IsUniqueViolation(err error) bool {
	return hasPgCode(err, codeUniqueViolation)
}

func IsForeignKeyViolation(err error) bool {
	return hasPgCode(err, codeForeignKeyViolation)
}

// IsExclusionViolation reports range-exclusion constraint failures, raised
// when two approved bookings would overlap.
func IsExclusionViolation(err error) bool {
	return hasPgCode(err, codeExclusionViolation)
}

func hasPgCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
