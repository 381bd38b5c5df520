package tabler

import (
	"context"
	"database/sql"
	"fmt"
	"iter"
)

// SQLSource runs a query on every iteration and yields one [Record] per
// result row, with fields in result-column order. []byte values are
// converted to strings. It is not safe for concurrent iteration.
type SQLSource struct {
	ctx   context.Context
	db    *sql.DB
	query string
	args  []any
	err   error
}

// NewSQLSource returns a source backed by query on db. ctx bounds every
// execution of the query.
func NewSQLSource(ctx context.Context, db *sql.DB, query string, args ...any) *SQLSource {
	return &SQLSource{ctx: ctx, db: db, query: query, args: args}
}

// Err returns the error that stopped the last iteration, if any.
func (s *SQLSource) Err() error { return s.err }

// Iterate executes the query and yields its rows.
func (s *SQLSource) Iterate() iter.Seq2[int, Row] {
	return func(yield func(int, Row) bool) {
		s.err = nil
		rows, err := s.db.QueryContext(s.ctx, s.query, s.args...)
		if err != nil {
			s.err = fmt.Errorf("failed to query rows: %w", err)
			return
		}
		defer rows.Close()

		columns, err := rows.Columns()
		if err != nil {
			s.err = fmt.Errorf("failed to read columns: %w", err)
			return
		}

		for i := 0; rows.Next(); i++ {
			values := make([]any, len(columns))
			ptrs := make([]any, len(columns))
			for j := range values {
				ptrs[j] = &values[j]
			}
			if err := rows.Scan(ptrs...); err != nil {
				s.err = fmt.Errorf("failed to scan row %d: %w", i, err)
				return
			}
			for j, v := range values {
				if b, ok := v.([]byte); ok {
					values[j] = string(b)
				}
			}
			if !yield(i, RecordOf(columns, values)) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			s.err = fmt.Errorf("failed to iterate rows: %w", err)
		}
	}
}
