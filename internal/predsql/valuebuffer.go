package predsql

import "github.com/roach88/pushdown/internal/tupledomain"

// BindValue is one pending statement parameter: the column it constrains,
// the column's declared type, and the value to attach. The compiler appends
// BindValues in the exact order their placeholders appear in the rendered
// SQL; the binder consumes the list once, in that order.
//
// Identifier (UUID) values are already converted to their 16-byte binary
// form by the time they land here - conversion happens at compile time, not
// bind time.
type BindValue struct {
	ColumnIndex int
	Type        tupledomain.ColumnType
	Value       tupledomain.Value
}

// IsNull reports whether the pending value is SQL NULL.
func (b BindValue) IsNull() bool {
	return tupledomain.IsNull(b.Value)
}
