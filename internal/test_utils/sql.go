// Package test_utils holds assertions shared by package tests.
package test_utils

import (
	"database/sql"
	"reflect"
	"time"
)

// SQLQuerier is satisfied by *sql.DB and *sql.Tx.
type SQLQuerier interface {
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

// TestingT is the subset of testing.TB used by the assertions.
type TestingT interface {
	Helper()
	Errorf(format string, args ...interface{})
	Fatalf(format string, args ...interface{})
	Logf(format string, args ...interface{})
}

// AssertSql checks that the query returns exactly the expected rows in order. Each selected column is scanned
// positionally into the exported fields of T, so the select list must match T's field order.
//
//	type row struct {
//	    Tag   string
//	    State string
//	}
//
//	AssertSql(t, db, "SELECT docker_image_tag, support_state FROM actor_definition_versions ORDER BY docker_image_tag", []row{
//	    {"1.0.0", "unsupported"},
//	    {"2.0.0", "supported"},
//	})
func AssertSql[T any](t TestingT, db SQLQuerier, query string, expected []T, args ...interface{}) {
	t.Helper()

	rows, err := db.Query(query, args...)
	if err != nil {
		t.Fatalf("failed to execute query: %v\nquery: %s", err, query)
		return
	}
	defer rows.Close()

	var actual []T
	for rows.Next() {
		var item T
		if err := rows.Scan(fieldPointers(&item)...); err != nil {
			t.Fatalf("failed to scan row: %v\nquery: %s", err, query)
			return
		}
		actual = append(actual, item)
	}

	if err := rows.Err(); err != nil {
		t.Fatalf("failed to read rows: %v\nquery: %s", err, query)
		return
	}

	if len(actual) != len(expected) {
		t.Errorf("row count mismatch: got %d rows, expected %d rows\nquery: %s\nactual: %+v\nexpected: %+v",
			len(actual), len(expected), query, actual, expected)
		return
	}

	for i := range expected {
		if !reflect.DeepEqual(normalizeTimes(actual[i]), normalizeTimes(expected[i])) {
			t.Errorf("row %d mismatch:\ngot:      %+v\nexpected: %+v", i, actual[i], expected[i])
		}
	}
}

func fieldPointers(item any) []any {
	v := reflect.ValueOf(item).Elem()
	if v.Kind() != reflect.Struct {
		return []any{item}
	}

	var ptrs []any
	for i := 0; i < v.NumField(); i++ {
		if v.Type().Field(i).IsExported() {
			ptrs = append(ptrs, v.Field(i).Addr().Interface())
		}
	}
	return ptrs
}

var timeType = reflect.TypeOf(time.Time{})

// normalizeTimes converts top level time fields to UTC so that driver-specific locations compare equal.
func normalizeTimes(item any) any {
	v := reflect.ValueOf(item)
	if v.Kind() != reflect.Struct {
		return item
	}

	out := reflect.New(v.Type()).Elem()
	out.Set(v)
	for i := 0; i < out.NumField(); i++ {
		f := out.Field(i)
		if f.CanSet() && f.Type() == timeType {
			f.Set(reflect.ValueOf(f.Interface().(time.Time).UTC()))
		}
	}
	return out.Interface()
}
