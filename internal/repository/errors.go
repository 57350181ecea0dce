package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// pgUniqueViolation is the PostgreSQL error code for a unique constraint hit.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation from
// the underlying store. Postgres surfaces these as pgconn errors with code
// 23505; sqlite (used in tests) only exposes the message text.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key")
}
