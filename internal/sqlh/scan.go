// Package sqlh holds small helpers for scanning single-value query results.
package sqlh

import (
	"database/sql"

	"github.com/pkg/errors"
)

// RowScanner is satisfied by *sql.Row and squirrel's RowScanner.
type RowScanner interface {
	Scan(...interface{}) error
}

// ScanWithDefault scans a single column into T. When the query returned no rows the default is returned and the
// second result is true. Any other error is returned as-is.
func ScanWithDefault[T any](row RowScanner, defaultValue T) (T, bool, error) {
	var result T
	err := row.Scan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return defaultValue, true, nil
		}
		return result, false, err
	}
	return result, false, nil
}

// Exists reports whether the row query returned a row.
func Exists(row RowScanner) (bool, error) {
	_, missing, err := ScanWithDefault[int64](row, 0)
	if err != nil {
		return false, err
	}
	return !missing, nil
}
