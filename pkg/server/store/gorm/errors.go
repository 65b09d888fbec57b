package gorm

import (
	"errors"

	"github.com/jackc/pgconn"
)

// PostgreSQL SQLSTATE codes
const (
	uniqueViolation = "23505"
	checkViolation  = "23514"
)

func isUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

func isCheckViolation(err error) bool {
	return hasCode(err, checkViolation)
}

func hasCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
