package test_utils

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

type recordingT struct {
	errors []string
	fatals []string
}

func (r *recordingT) Helper() {}
func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}
func (r *recordingT) Fatalf(format string, args ...interface{}) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}
func (r *recordingT) Logf(format string, args ...interface{}) {}

type versionRow struct {
	Tag       string
	State     string
	UpdatedAt time.Time
}

func newMockDb(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestAssertSql(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.FixedZone("X", 3600))

	t.Run("match", func(t *testing.T) {
		db, mock := newMockDb(t)
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows([]string{"tag", "state", "updated_at"}).
				AddRow("1.0.0", "unsupported", at).
				AddRow("2.0.0", "supported", at),
		)

		rt := &recordingT{}
		AssertSql(rt, db, "SELECT tag, state, updated_at FROM versions", []versionRow{
			{"1.0.0", "unsupported", at.UTC()},
			{"2.0.0", "supported", at.UTC()},
		})
		require.Empty(t, rt.errors)
		require.Empty(t, rt.fatals)
	})

	t.Run("mismatch", func(t *testing.T) {
		db, mock := newMockDb(t)
		mock.ExpectQuery("SELECT").WillReturnRows(
			sqlmock.NewRows([]string{"tag", "state", "updated_at"}).AddRow("1.0.0", "deprecated", at),
		)

		rt := &recordingT{}
		AssertSql(rt, db, "SELECT tag, state, updated_at FROM versions", []versionRow{{"1.0.0", "unsupported", at}})
		require.Len(t, rt.errors, 1)
	})

	t.Run("count mismatch", func(t *testing.T) {
		db, mock := newMockDb(t)
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"tag", "state", "updated_at"}))

		rt := &recordingT{}
		AssertSql(rt, db, "SELECT tag, state, updated_at FROM versions", []versionRow{{"1.0.0", "unsupported", at}})
		require.Len(t, rt.errors, 1)
		require.Contains(t, rt.errors[0], "row count mismatch")
	})

	t.Run("single column", func(t *testing.T) {
		db, mock := newMockDb(t)
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("inactive"))

		rt := &recordingT{}
		AssertSql(rt, db, "SELECT status FROM connections", []string{"inactive"})
		require.Empty(t, rt.errors)
	})
}
