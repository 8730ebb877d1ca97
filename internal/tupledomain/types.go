package tupledomain

import "fmt"

// ColumnType is the declared type of a column as seen by the predicate
// compiler and binder.
type ColumnType int

const (
	// TypeInt64 is a 64-bit signed integer column.
	TypeInt64 ColumnType = iota

	// TypeDouble is a 64-bit floating point column.
	TypeDouble

	// TypeBool is a boolean column.
	TypeBool

	// TypeText is a variable-length text column.
	TypeText

	// TypeBytes is a variable-length binary column. Identifier (UUID) columns
	// declare this type and carry their values as 16 raw bytes.
	TypeBytes
)

// String returns the lowercase name used in filter files and diagnostics.
func (t ColumnType) String() string {
	switch t {
	case TypeInt64:
		return "int64"
	case TypeDouble:
		return "double"
	case TypeBool:
		return "bool"
	case TypeText:
		return "text"
	case TypeBytes:
		return "binary"
	default:
		return fmt.Sprintf("ColumnType(%d)", int(t))
	}
}

// ParseColumnType converts a filter-file type name to a ColumnType.
func ParseColumnType(s string) (ColumnType, error) {
	switch s {
	case "int64":
		return TypeInt64, nil
	case "double":
		return TypeDouble, nil
	case "bool":
		return TypeBool, nil
	case "text":
		return TypeText, nil
	case "binary":
		return TypeBytes, nil
	default:
		return 0, fmt.Errorf("unknown column type %q", s)
	}
}
