package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// ErrNotFound is returned when a database operation that is expected to find a record does not find the record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a database operation that is expected to be unique fails because a duplicate record
// already exists.
var ErrDuplicate = errors.New("duplicate record")

// ErrViolation is returned when a constraint in the database is violated (e.g. multiple rows with the same ID)
// after an operation that should have been unique.
var ErrViolation = errors.New("database constraint violation")

// isUniqueViolation detects unique/primary key failures from either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}

	return false
}
