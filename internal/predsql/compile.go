package predsql

import (
	"fmt"
	"strings"

	"github.com/roach88/pushdown/internal/tupledomain"
	"github.com/roach88/pushdown/internal/uuidutil"
)

// AppendWhere appends the rendered WHERE clause for td to a base SQL
// statement and returns the full text plus the ordered bind values.
// The base statement must be non-empty and must not already carry a WHERE
// clause of its own.
func AppendWhere(
	baseSQL string,
	td tupledomain.TupleDomain,
	columnNames []string,
	columnTypes []tupledomain.ColumnType,
	identifierColumns map[int]bool,
) (string, []BindValue, error) {
	if strings.TrimSpace(baseSQL) == "" {
		return "", nil, fmt.Errorf("base sql is empty")
	}

	clause, binds, err := WhereClause(td, columnNames, columnTypes, identifierColumns)
	if err != nil {
		return "", nil, err
	}
	if clause == "" {
		return baseSQL, binds, nil
	}
	return baseSQL + " " + clause, binds, nil
}

// WhereClause renders the predicate for a tuple domain.
//
// Each constrained column becomes one OR-group; groups are joined with AND
// and the result is prefixed with "WHERE ". An unconstrained tuple domain
// renders as the empty string. Column indexes are visited in ascending
// order, so compiling the same domain twice yields byte-identical output.
//
// Caveat: a tuple domain in the none state also renders as the empty string,
// meaning the query runs unconstrained rather than matching zero rows.
// Callers must not pass a none domain expecting zero-row semantics.
func WhereClause(
	td tupledomain.TupleDomain,
	columnNames []string,
	columnTypes []tupledomain.ColumnType,
	identifierColumns map[int]bool,
) (string, []BindValue, error) {
	if td.IsNone() {
		return "", nil, nil
	}

	domains := td.Domains()
	var conjuncts []string
	var binds []BindValue
	for _, index := range td.ColumnIndexes() {
		if index < 0 || index >= len(columnNames) || index >= len(columnTypes) {
			return "", nil, fmt.Errorf("column index %d out of range", index)
		}
		predicate, err := toPredicate(index, columnNames[index], columnTypes[index], domains[index], identifierColumns, &binds)
		if err != nil {
			return "", nil, fmt.Errorf("column %s: %w", columnNames[index], err)
		}
		conjuncts = append(conjuncts, predicate)
	}

	if len(conjuncts) == 0 {
		return "", nil, nil
	}
	return "WHERE " + strings.Join(conjuncts, " AND "), binds, nil
}

// toPredicate renders one column's Domain as a predicate fragment, appending
// the bind values for its placeholders to binds in left-to-right order.
func toPredicate(
	index int,
	columnName string,
	columnType tupledomain.ColumnType,
	domain tupledomain.Domain,
	identifierColumns map[int]bool,
	binds *[]BindValue,
) (string, error) {
	if domain.RangesNone() && domain.NullAllowed() {
		return columnName + " IS NULL", nil
	}
	if domain.RangesAll() && !domain.NullAllowed() {
		return columnName + " IS NOT NULL", nil
	}

	var disjuncts []string
	var singleValues []tupledomain.Value
	for _, r := range domain.Ranges() {
		if r.IsAll() {
			// Ranges-all is represented on the Domain, never as a list entry.
			return "", fmt.Errorf("unexpected all-values range")
		}
		if r.IsSingleValue() {
			singleValues = append(singleValues, r.Low().Value())
			continue
		}

		var rangeConjuncts []string
		if low := r.Low(); !low.Unbounded() {
			value, err := bindableValue(index, identifierColumns, low.Value())
			if err != nil {
				return "", err
			}
			switch low.Bound() {
			case tupledomain.Above:
				rangeConjuncts = append(rangeConjuncts, bindPredicate(columnName, ">"))
				*binds = append(*binds, BindValue{ColumnIndex: index, Type: columnType, Value: value})
			case tupledomain.Exactly:
				rangeConjuncts = append(rangeConjuncts, bindPredicate(columnName, ">="))
				*binds = append(*binds, BindValue{ColumnIndex: index, Type: columnType, Value: value})
			default:
				return "", fmt.Errorf("low marker must never use %s bound", low.Bound())
			}
		}
		if high := r.High(); !high.Unbounded() {
			value, err := bindableValue(index, identifierColumns, high.Value())
			if err != nil {
				return "", err
			}
			switch high.Bound() {
			case tupledomain.Exactly:
				rangeConjuncts = append(rangeConjuncts, bindPredicate(columnName, "<="))
				*binds = append(*binds, BindValue{ColumnIndex: index, Type: columnType, Value: value})
			case tupledomain.Below:
				rangeConjuncts = append(rangeConjuncts, bindPredicate(columnName, "<"))
				*binds = append(*binds, BindValue{ColumnIndex: index, Type: columnType, Value: value})
			default:
				return "", fmt.Errorf("high marker must never use %s bound", high.Bound())
			}
		}
		// A fully unbounded range is "all" and was rejected above, so a
		// proper range always yields at least one comparison.
		if len(rangeConjuncts) == 0 {
			return "", fmt.Errorf("range produced no comparisons")
		}
		disjuncts = append(disjuncts, "("+strings.Join(rangeConjuncts, " AND ")+")")
	}

	// Coalesce single values into an equality or an IN predicate, preserving
	// the insertion order of the range list.
	if len(singleValues) == 1 {
		value, err := bindableValue(index, identifierColumns, singleValues[0])
		if err != nil {
			return "", err
		}
		disjuncts = append(disjuncts, bindPredicate(columnName, "="))
		*binds = append(*binds, BindValue{ColumnIndex: index, Type: columnType, Value: value})
	} else if len(singleValues) > 1 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(singleValues)), ",")
		disjuncts = append(disjuncts, columnName+" IN ("+placeholders+")")
		for _, sv := range singleValues {
			value, err := bindableValue(index, identifierColumns, sv)
			if err != nil {
				return "", err
			}
			*binds = append(*binds, BindValue{ColumnIndex: index, Type: columnType, Value: value})
		}
	}

	if len(disjuncts) == 0 {
		return "", fmt.Errorf("domain produced no disjuncts")
	}
	if domain.NullAllowed() {
		disjuncts = append(disjuncts, columnName+" IS NULL")
	}

	return "(" + strings.Join(disjuncts, " OR ") + ")", nil
}

// bindableValue converts a domain-layer value to its bound form. Identifier
// columns carry canonical UUID text at the domain layer but bind as 16 raw
// bytes; every other value passes through unchanged.
func bindableValue(index int, identifierColumns map[int]bool, v tupledomain.Value) (tupledomain.Value, error) {
	if !identifierColumns[index] {
		return v, nil
	}
	text, ok := v.(tupledomain.Text)
	if !ok {
		return nil, fmt.Errorf("identifier column value must be text, got %T", v)
	}
	raw, err := uuidutil.UUIDToBytes(string(text))
	if err != nil {
		return nil, fmt.Errorf("convert identifier value: %w", err)
	}
	return tupledomain.Bytes(raw), nil
}

func bindPredicate(columnName, operator string) string {
	return fmt.Sprintf("%s %s ?", columnName, operator)
}
