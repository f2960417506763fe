// Package store executes read-only SQL against the inventory database
// and computes the dashboard statistics.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const defaultRowLimit = 200

// Result is one executed query: column names plus row values in column
// order, normalized to JSON-friendly types.
type Result struct {
	Columns   []string      `json:"columns"`
	Rows      [][]any       `json:"rows"`
	Truncated bool          `json:"truncated"`
	Duration  time.Duration `json:"-"`
}

type Store struct {
	db       *sql.DB
	rowLimit int
}

// New wraps an open database handle. rowLimit caps the number of rows a
// single query may return; zero means the default of 200.
func New(db *sql.DB, rowLimit int) *Store {
	if rowLimit <= 0 {
		rowLimit = defaultRowLimit
	}
	return &Store{db: db, rowLimit: rowLimit}
}

// Execute runs one statement and fetches all rows up to the row limit.
// Callers are expected to have validated the statement with sqlguard.
func (s *Store) Execute(ctx context.Context, sqlText string) (Result, error) {
	start := time.Now()

	rows, err := s.db.QueryContext(ctx, sqlText)
	if err != nil {
		return Result{}, fmt.Errorf("execute query: %w", err)
	}
	defer func() { _ = rows.Close() }()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, fmt.Errorf("query columns: %w", err)
	}

	result := Result{Columns: columns, Rows: make([][]any, 0)}
	for rows.Next() {
		if len(result.Rows) >= s.rowLimit {
			result.Truncated = true
			break
		}
		values := make([]any, len(columns))
		scanTargets := make([]any, len(columns))
		for i := range values {
			scanTargets[i] = &values[i]
		}
		if err := rows.Scan(scanTargets...); err != nil {
			return Result{}, fmt.Errorf("scan row: %w", err)
		}
		result.Rows = append(result.Rows, normalizeValues(values))
	}
	if err := rows.Err(); err != nil {
		return Result{}, fmt.Errorf("iterate rows: %w", err)
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (s *Store) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// normalizeValues makes driver-specific scan types presentable: the
// mysql driver hands back []byte for text and decimal columns.
func normalizeValues(values []any) []any {
	normalized := make([]any, len(values))
	for i, value := range values {
		switch v := value.(type) {
		case []byte:
			normalized[i] = string(v)
		case time.Time:
			normalized[i] = v.UTC()
		default:
			normalized[i] = v
		}
	}
	return normalized
}
