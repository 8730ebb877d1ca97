package predsql

import (
	"fmt"

	"github.com/roach88/pushdown/internal/tupledomain"
)

// Statement is the prepared-statement collaborator the binder writes to.
// Positions are 1-based. A Statement is exclusively owned by the caller for
// the duration of a bind walk; implementations are not required to be safe
// for concurrent use.
type Statement interface {
	BindInt64(pos int, v int64) error
	BindDouble(pos int, v float64) error
	BindBool(pos int, v bool) error
	BindText(pos int, v string) error
	BindBytes(pos int, v []byte) error
	BindNull(pos int, code SQLNullType) error
}

// SQLNullType is the SQL type code attached when binding a NULL parameter.
type SQLNullType int

const (
	NullBigint SQLNullType = iota
	NullDouble
	NullBoolean
	NullVarchar
	NullVarbinary
)

// String returns the SQL type name for diagnostics.
func (t SQLNullType) String() string {
	switch t {
	case NullBigint:
		return "BIGINT"
	case NullDouble:
		return "DOUBLE"
	case NullBoolean:
		return "BOOLEAN"
	case NullVarchar:
		return "VARCHAR"
	case NullVarbinary:
		return "VARBINARY"
	default:
		return fmt.Sprintf("SQLNullType(%d)", int(t))
	}
}

// sqlNullTypes maps each declared column type to its NULL type code.
// Extend by adding rows.
var sqlNullTypes = map[tupledomain.ColumnType]SQLNullType{
	tupledomain.TypeInt64:  NullBigint,
	tupledomain.TypeDouble: NullDouble,
	tupledomain.TypeBool:   NullBoolean,
	tupledomain.TypeText:   NullVarchar,
	tupledomain.TypeBytes:  NullVarbinary,
}

// NullTypeFor returns the NULL type code for a declared column type.
// An unmapped type signals a caller/schema mismatch, never a data-dependent
// condition.
func NullTypeFor(t tupledomain.ColumnType) (SQLNullType, error) {
	code, ok := sqlNullTypes[t]
	if !ok {
		return 0, fmt.Errorf("unknown column type: %s", t)
	}
	return code, nil
}

// BindAll attaches each pending value to the statement at position i+1 for
// i in list order. The list must come from the WhereClause call that
// produced the statement's SQL, unmodified and unreordered.
func BindAll(stmt Statement, binds []BindValue, identifierColumns map[int]bool) error {
	for i, bv := range binds {
		pos := i + 1
		if err := bindField(stmt, pos, bv, identifierColumns[bv.ColumnIndex]); err != nil {
			return fmt.Errorf("bind parameter %d: %w", pos, err)
		}
	}
	return nil
}

// bindField dispatches one pending value on its runtime representation.
// Byte-backed values on identifier columns bind raw; on any other column
// their content binds as text.
func bindField(stmt Statement, pos int, bv BindValue, identifier bool) error {
	switch v := bv.Value.(type) {
	case tupledomain.Null:
		code, err := NullTypeFor(bv.Type)
		if err != nil {
			return err
		}
		return stmt.BindNull(pos, code)
	case tupledomain.Int64:
		return stmt.BindInt64(pos, int64(v))
	case tupledomain.Double:
		return stmt.BindDouble(pos, float64(v))
	case tupledomain.Bool:
		return stmt.BindBool(pos, bool(v))
	case tupledomain.Bytes:
		if identifier {
			return stmt.BindBytes(pos, []byte(v))
		}
		return stmt.BindText(pos, string(v))
	case tupledomain.Text:
		return stmt.BindText(pos, string(v))
	default:
		return fmt.Errorf("unknown value type %T for column type %s", bv.Value, bv.Type)
	}
}
