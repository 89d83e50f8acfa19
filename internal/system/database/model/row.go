package model

import (
	"strconv"
	"time"
)

// Row access helpers. The MySQL driver surfaces most column values as []byte;
// these normalize them so store mapping functions stay flat.

// RowString returns the column as a string, or "" when absent or NULL.
func RowString(row map[string]interface{}, key string) string {
	switch v := row[key].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

// RowNullString returns the column as a *string, or nil when absent or NULL.
func RowNullString(row map[string]interface{}, key string) *string {
	if row[key] == nil {
		return nil
	}
	s := RowString(row, key)
	return &s
}

// RowInt64 returns the column as an int64, or 0 when absent or unparseable.
func RowInt64(row map[string]interface{}, key string) int64 {
	switch v := row[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0
		}
		return n
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case time.Time:
		return v.UnixMilli()
	default:
		return 0
	}
}

// RowNullInt64 returns the column as a *int64, or nil when absent or NULL.
func RowNullInt64(row map[string]interface{}, key string) *int64 {
	if row[key] == nil {
		return nil
	}
	n := RowInt64(row, key)
	return &n
}

// RowInt returns the column as an int.
func RowInt(row map[string]interface{}, key string) int {
	return int(RowInt64(row, key))
}

// RowBool interprets the column as a boolean (MySQL TINYINT or driver bool).
func RowBool(row map[string]interface{}, key string) bool {
	switch v := row[key].(type) {
	case bool:
		return v
	default:
		return RowInt64(row, key) != 0
	}
}
