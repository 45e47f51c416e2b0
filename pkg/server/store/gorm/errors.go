package gorm

import (
	"errors"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE Postgres reports when an insert
// collides with a unique constraint.
const uniqueViolation = "23505"

// isUniqueViolation reports whether err is a Postgres unique-constraint
// violation, whichever driver surfaced it.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}
