package tupledomain

import "bytes"

// Value is a sealed interface over the runtime representations a column
// constraint can carry. Only Int64, Double, Bool, Text, Bytes, and Null
// implement it.
type Value interface {
	domainValue() // Sealed - only these types implement it
}

// Int64 represents a 64-bit integer value.
type Int64 int64

func (Int64) domainValue() {}

// Double represents a 64-bit floating point value.
type Double float64

func (Double) domainValue() {}

// Bool represents a boolean value.
type Bool bool

func (Bool) domainValue() {}

// Text represents a variable-length string value.
type Text string

func (Text) domainValue() {}

// Bytes represents a variable-length binary value.
type Bytes []byte

func (Bytes) domainValue() {}

// Null represents an absent value. Using an explicit type keeps the sealed
// interface total - a nil Value never flows through the compiler or binder.
type Null struct{}

func (Null) domainValue() {}

// IsNull reports whether v is the Null value.
func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok
}

// ValuesEqual reports whether two values are the same kind with equal content.
// Bytes are compared by content, not identity.
func ValuesEqual(a, b Value) bool {
	switch av := a.(type) {
	case Int64:
		bv, ok := b.(Int64)
		return ok && av == bv
	case Double:
		bv, ok := b.(Double)
		return ok && av == bv
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Text:
		bv, ok := b.(Text)
		return ok && av == bv
	case Bytes:
		bv, ok := b.(Bytes)
		return ok && bytes.Equal(av, bv)
	case Null:
		_, ok := b.(Null)
		return ok
	default:
		return false
	}
}
