package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/pushdown/internal/predsql"
	"github.com/roach88/pushdown/internal/tupledomain"
)

// Select compiles the tuple domain against the base SQL statement, prepares
// the result, binds every pending value in placeholder order, and executes a
// streaming read. The returned rows are forward-only; callers must close
// them. The prepared statement is released once the rows are closed.
//
// baseSQL must be non-empty and must not carry its own WHERE clause.
func (s *Store) Select(
	ctx context.Context,
	baseSQL string,
	columnNames []string,
	columnTypes []tupledomain.ColumnType,
	identifierColumns map[int]bool,
	td tupledomain.TupleDomain,
) (*sql.Rows, error) {
	sqlText, binds, err := predsql.AppendWhere(baseSQL, td, columnNames, columnTypes, identifierColumns)
	if err != nil {
		return nil, fmt.Errorf("compile predicate: %w", err)
	}

	stmt, err := s.db.PrepareContext(ctx, sqlText)
	if err != nil {
		return nil, fmt.Errorf("prepare statement: %w", err)
	}

	args := newArgList(len(binds))
	if err := predsql.BindAll(args, binds, identifierColumns); err != nil {
		stmt.Close()
		return nil, fmt.Errorf("bind parameters: %w", err)
	}

	rows, err := stmt.QueryContext(ctx, args.values...)
	if err != nil {
		stmt.Close()
		return nil, fmt.Errorf("execute query: %w", err)
	}

	// database/sql defers the actual close until the rows are drained.
	stmt.Close()
	return rows, nil
}

// argList adapts predsql.Statement to database/sql, which takes all
// parameters at query time instead of one call per position. Each bind
// lands at values[pos-1]; positions outside [1, len] are rejected rather
// than silently dropped.
type argList struct {
	values []any
}

func newArgList(n int) *argList {
	return &argList{values: make([]any, n)}
}

func (l *argList) set(pos int, v any) error {
	if pos < 1 || pos > len(l.values) {
		return fmt.Errorf("bind position %d out of range [1, %d]", pos, len(l.values))
	}
	l.values[pos-1] = v
	return nil
}

func (l *argList) BindInt64(pos int, v int64) error {
	return l.set(pos, v)
}

func (l *argList) BindDouble(pos int, v float64) error {
	return l.set(pos, v)
}

func (l *argList) BindBool(pos int, v bool) error {
	return l.set(pos, v)
}

func (l *argList) BindText(pos int, v string) error {
	return l.set(pos, v)
}

func (l *argList) BindBytes(pos int, v []byte) error {
	return l.set(pos, v)
}

// BindNull binds SQL NULL. SQLite is dynamically typed, so the type code is
// not carried to the driver; it has already validated the declared type.
func (l *argList) BindNull(pos int, _ predsql.SQLNullType) error {
	return l.set(pos, nil)
}
