package tupledomain

import "sort"

// Domain is the allowed-range set plus null allowance for one column.
//
// The range set has two special states alongside a finite range list:
// ranges-none (no non-null value matches) and ranges-all (every non-null
// value matches). The states are mutually exclusive with a non-empty list.
type Domain struct {
	ranges      []Range
	all         bool
	nullAllowed bool
}

// OnlyNull returns the domain matching only the null value
// (ranges-none, null allowed).
func OnlyNull() Domain {
	return Domain{nullAllowed: true}
}

// NotNull returns the domain matching every non-null value
// (ranges-all, null disallowed).
func NotNull() Domain {
	return Domain{all: true}
}

// AllValues returns the ranges-all domain with the given null allowance.
func AllValues(nullAllowed bool) Domain {
	return Domain{all: true, nullAllowed: nullAllowed}
}

// FromRanges returns the domain matching the given ranges, in the given
// order, plus null when nullAllowed is set. Range order is preserved: the
// compiler renders ranges and collects single values in insertion order.
func FromRanges(nullAllowed bool, ranges ...Range) Domain {
	return Domain{ranges: append([]Range(nil), ranges...), nullAllowed: nullAllowed}
}

// SingleValues returns the domain matching exactly the given values.
func SingleValues(nullAllowed bool, values ...Value) Domain {
	ranges := make([]Range, len(values))
	for i, v := range values {
		ranges[i] = SingleValue(v)
	}
	return Domain{ranges: ranges, nullAllowed: nullAllowed}
}

// RangesNone reports whether no non-null value matches.
func (d Domain) RangesNone() bool {
	return !d.all && len(d.ranges) == 0
}

// RangesAll reports whether every non-null value matches.
func (d Domain) RangesAll() bool {
	return d.all
}

// Ranges returns the finite range list. Empty for the none and all states.
func (d Domain) Ranges() []Range {
	return d.ranges
}

// NullAllowed reports whether the null value matches.
func (d Domain) NullAllowed() bool {
	return d.nullAllowed
}

// TupleDomain maps column indexes to per-column Domains across a row.
//
// Two special states exist: the none state, where no row can satisfy the
// constraints, and the implicit all state of an empty mapping. Callers never
// insert a trivially-all Domain for a column; absence means unconstrained.
type TupleDomain struct {
	none    bool
	domains map[int]Domain
}

// None returns the unsatisfiable tuple domain.
func None() TupleDomain {
	return TupleDomain{none: true}
}

// All returns the tuple domain with no constraints on any column.
func All() TupleDomain {
	return TupleDomain{}
}

// FromDomains returns the tuple domain constraining each mapped column.
func FromDomains(domains map[int]Domain) TupleDomain {
	m := make(map[int]Domain, len(domains))
	for k, v := range domains {
		m[k] = v
	}
	return TupleDomain{domains: m}
}

// IsNone reports whether no row can satisfy the constraints.
func (td TupleDomain) IsNone() bool {
	return td.none
}

// Domains returns the per-column constraint map. Nil for the none state.
func (td TupleDomain) Domains() map[int]Domain {
	return td.domains
}

// ColumnIndexes returns the constrained column indexes in ascending order.
// Rendering iterates this, not the map, so output is deterministic.
func (td TupleDomain) ColumnIndexes() []int {
	indexes := make([]int, 0, len(td.domains))
	for i := range td.domains {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	return indexes
}
