package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// IsUniqueViolation reports whether the error is a PostgreSQL unique
// constraint violation (SQLSTATE 23505). Works on wrapped errors.
func IsUniqueViolation(err error) bool {
	return isSQLState(err, "23505")
}

// IsForeignKeyViolation reports whether the error is a PostgreSQL
// foreign key violation (SQLSTATE 23503).
func IsForeignKeyViolation(err error) bool {
	return isSQLState(err, "23503")
}

func isSQLState(err error, code string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == code
	}
	return false
}
