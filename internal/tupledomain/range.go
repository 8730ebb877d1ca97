package tupledomain

import "fmt"

// Bound is the comparison kind carried by a bounded Marker.
type Bound int

const (
	// Above means strictly greater than the carried value. Legal only on the
	// low side of a range.
	Above Bound = iota

	// Exactly means inclusive of the carried value. Legal on either side.
	Exactly

	// Below means strictly less than the carried value. Legal only on the
	// high side of a range.
	Below
)

// String returns the bound name for diagnostics.
func (b Bound) String() string {
	switch b {
	case Above:
		return "ABOVE"
	case Exactly:
		return "EXACTLY"
	case Below:
		return "BELOW"
	default:
		return fmt.Sprintf("Bound(%d)", int(b))
	}
}

// Marker is one end of a Range: either unbounded, or a (Bound, Value) pair.
// The zero Marker is not valid; use the constructors.
type Marker struct {
	unbounded bool
	bound     Bound
	value     Value
}

// LowerUnbounded returns the marker for a range with no lower limit.
func LowerUnbounded() Marker {
	return Marker{unbounded: true, bound: Above}
}

// UpperUnbounded returns the marker for a range with no upper limit.
func UpperUnbounded() Marker {
	return Marker{unbounded: true, bound: Below}
}

// AboveValue returns an exclusive lower marker (column > v).
func AboveValue(v Value) Marker {
	return Marker{bound: Above, value: v}
}

// ExactlyValue returns an inclusive marker, usable on either side.
func ExactlyValue(v Value) Marker {
	return Marker{bound: Exactly, value: v}
}

// BelowValue returns an exclusive upper marker (column < v).
func BelowValue(v Value) Marker {
	return Marker{bound: Below, value: v}
}

// Unbounded reports whether the marker has no limit on its side.
func (m Marker) Unbounded() bool {
	return m.unbounded
}

// Bound returns the comparison kind. Only meaningful when bounded.
func (m Marker) Bound() Bound {
	return m.bound
}

// Value returns the carried value. Only meaningful when bounded.
func (m Marker) Value() Value {
	return m.value
}

// Range is an interval over a single column's value space.
type Range struct {
	low  Marker
	high Marker
}

// NewRange builds a range from a low and high marker, enforcing side
// legality: a low marker never uses Below and a high marker never uses
// Above. A violation is an upstream programming error, not user input.
func NewRange(low, high Marker) (Range, error) {
	if !low.unbounded && low.bound == Below {
		return Range{}, fmt.Errorf("low marker must never use BELOW bound")
	}
	if !high.unbounded && high.bound == Above {
		return Range{}, fmt.Errorf("high marker must never use ABOVE bound")
	}
	return Range{low: low, high: high}, nil
}

// SingleValue returns the range matching exactly one value.
func SingleValue(v Value) Range {
	m := ExactlyValue(v)
	return Range{low: m, high: m}
}

// GreaterThan returns the range (v, +inf).
func GreaterThan(v Value) Range {
	return Range{low: AboveValue(v), high: UpperUnbounded()}
}

// AtLeast returns the range [v, +inf).
func AtLeast(v Value) Range {
	return Range{low: ExactlyValue(v), high: UpperUnbounded()}
}

// LessThan returns the range (-inf, v).
func LessThan(v Value) Range {
	return Range{low: LowerUnbounded(), high: BelowValue(v)}
}

// AtMost returns the range (-inf, v].
func AtMost(v Value) Range {
	return Range{low: LowerUnbounded(), high: ExactlyValue(v)}
}

// Low returns the lower marker.
func (r Range) Low() Marker {
	return r.low
}

// High returns the upper marker.
func (r Range) High() Marker {
	return r.high
}

// IsSingleValue reports whether the range matches exactly one value: both
// markers bounded, both Exactly, carrying equal values.
func (r Range) IsSingleValue() bool {
	return !r.low.unbounded && !r.high.unbounded &&
		r.low.bound == Exactly && r.high.bound == Exactly &&
		ValuesEqual(r.low.value, r.high.value)
}

// IsAll reports whether the range is unbounded on both sides.
func (r Range) IsAll() bool {
	return r.low.unbounded && r.high.unbounded
}
