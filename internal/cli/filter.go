package cli

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/roach88/pushdown/internal/tupledomain"
)

// FilterFile is the YAML document describing one pushdown filter: the base
// statement, the table's column layout, and the per-column constraints.
type FilterFile struct {
	// BaseSQL is the statement the WHERE clause is appended to.
	// It must not carry a WHERE clause of its own.
	BaseSQL string `yaml:"base_sql"`

	// Columns lists the table's columns in index order. Constraints refer
	// to columns by name; the compiler works with the resulting indexes.
	Columns []FilterColumn `yaml:"columns"`

	// Constraints holds at most one entry per column. Unlisted columns are
	// unconstrained.
	Constraints []FilterConstraint `yaml:"constraints,omitempty"`
}

// FilterColumn declares one column.
type FilterColumn struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"` // int64 | double | bool | text | binary

	// Identifier marks a UUID column: constraint values are written as
	// canonical UUID text but bind as 16 raw bytes.
	Identifier bool `yaml:"identifier,omitempty"`
}

// FilterConstraint is one column's constraint. Exactly one of the shapes
// applies: only_null, not_null, or a values/ranges combination.
type FilterConstraint struct {
	Column string `yaml:"column"`

	// OnlyNull admits only the null value.
	OnlyNull bool `yaml:"only_null,omitempty"`

	// NotNull admits every non-null value.
	NotNull bool `yaml:"not_null,omitempty"`

	// Values are single admitted values, rendered as = or IN.
	Values []any `yaml:"values,omitempty"`

	// Ranges are admitted intervals.
	Ranges []FilterRange `yaml:"ranges,omitempty"`

	// NullAllowed additionally admits null alongside values/ranges.
	NullAllowed bool `yaml:"null_allowed,omitempty"`
}

// FilterRange is one interval; a missing side is unbounded.
type FilterRange struct {
	Min          any  `yaml:"min,omitempty"`
	MinExclusive bool `yaml:"min_exclusive,omitempty"`
	Max          any  `yaml:"max,omitempty"`
	MaxExclusive bool `yaml:"max_exclusive,omitempty"`
}

// CompiledFilter is a filter file resolved into compiler inputs.
type CompiledFilter struct {
	BaseSQL           string
	ColumnNames       []string
	ColumnTypes       []tupledomain.ColumnType
	IdentifierColumns map[int]bool
	TupleDomain       tupledomain.TupleDomain
}

// LoadFilterFile reads and parses a filter file. Unknown YAML fields are
// rejected so typos fail loudly instead of silently relaxing a filter.
func LoadFilterFile(path string) (*FilterFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter file: %w", err)
	}
	return ParseFilter(data)
}

// ParseFilter parses filter YAML.
func ParseFilter(data []byte) (*FilterFile, error) {
	var f FilterFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse filter yaml: %w", err)
	}
	return &f, nil
}

// Build resolves the filter into compiler inputs: column names and types in
// index order, the identifier column set, and the tuple domain.
func (f *FilterFile) Build() (*CompiledFilter, error) {
	if f.BaseSQL == "" {
		return nil, fmt.Errorf("base_sql is required")
	}
	if len(f.Columns) == 0 {
		return nil, fmt.Errorf("at least one column is required")
	}

	names := make([]string, len(f.Columns))
	types := make([]tupledomain.ColumnType, len(f.Columns))
	identifiers := make(map[int]bool)
	indexByName := make(map[string]int, len(f.Columns))
	for i, col := range f.Columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d: name is required", i)
		}
		if _, dup := indexByName[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		ct, err := tupledomain.ParseColumnType(col.Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", col.Name, err)
		}
		if col.Identifier && ct != tupledomain.TypeBytes {
			return nil, fmt.Errorf("column %q: identifier columns must declare type binary", col.Name)
		}
		names[i] = col.Name
		types[i] = ct
		indexByName[col.Name] = i
		if col.Identifier {
			identifiers[i] = true
		}
	}

	domains := make(map[int]tupledomain.Domain, len(f.Constraints))
	for _, c := range f.Constraints {
		index, ok := indexByName[c.Column]
		if !ok {
			return nil, fmt.Errorf("constraint references unknown column %q", c.Column)
		}
		if _, dup := domains[index]; dup {
			return nil, fmt.Errorf("duplicate constraint for column %q", c.Column)
		}
		domain, err := c.domain(types[index], identifiers[index])
		if err != nil {
			return nil, fmt.Errorf("constraint on column %q: %w", c.Column, err)
		}
		domains[index] = domain
	}

	return &CompiledFilter{
		BaseSQL:           f.BaseSQL,
		ColumnNames:       names,
		ColumnTypes:       types,
		IdentifierColumns: identifiers,
		TupleDomain:       tupledomain.FromDomains(domains),
	}, nil
}

// domain converts one constraint entry to a Domain.
func (c FilterConstraint) domain(ct tupledomain.ColumnType, identifier bool) (tupledomain.Domain, error) {
	hasShape := len(c.Values) > 0 || len(c.Ranges) > 0
	if c.OnlyNull {
		if c.NotNull || hasShape {
			return tupledomain.Domain{}, fmt.Errorf("only_null excludes every other constraint shape")
		}
		return tupledomain.OnlyNull(), nil
	}
	if c.NotNull {
		if hasShape || c.NullAllowed {
			return tupledomain.Domain{}, fmt.Errorf("not_null excludes every other constraint shape")
		}
		return tupledomain.NotNull(), nil
	}
	if !hasShape {
		return tupledomain.Domain{}, fmt.Errorf("one of only_null, not_null, values, or ranges is required")
	}

	ranges := make([]tupledomain.Range, 0, len(c.Values)+len(c.Ranges))
	for _, raw := range c.Values {
		v, err := toValue(ct, identifier, raw)
		if err != nil {
			return tupledomain.Domain{}, err
		}
		ranges = append(ranges, tupledomain.SingleValue(v))
	}
	for i, fr := range c.Ranges {
		r, err := fr.toRange(ct, identifier)
		if err != nil {
			return tupledomain.Domain{}, fmt.Errorf("range %d: %w", i, err)
		}
		ranges = append(ranges, r)
	}
	return tupledomain.FromRanges(c.NullAllowed, ranges...), nil
}

// toRange converts one YAML range to a domain Range.
func (fr FilterRange) toRange(ct tupledomain.ColumnType, identifier bool) (tupledomain.Range, error) {
	if fr.Min == nil && fr.Max == nil {
		return tupledomain.Range{}, fmt.Errorf("at least one of min or max is required")
	}

	low := tupledomain.LowerUnbounded()
	if fr.Min != nil {
		v, err := toValue(ct, identifier, fr.Min)
		if err != nil {
			return tupledomain.Range{}, err
		}
		if fr.MinExclusive {
			low = tupledomain.AboveValue(v)
		} else {
			low = tupledomain.ExactlyValue(v)
		}
	}

	high := tupledomain.UpperUnbounded()
	if fr.Max != nil {
		v, err := toValue(ct, identifier, fr.Max)
		if err != nil {
			return tupledomain.Range{}, err
		}
		if fr.MaxExclusive {
			high = tupledomain.BelowValue(v)
		} else {
			high = tupledomain.ExactlyValue(v)
		}
	}

	return tupledomain.NewRange(low, high)
}

// toValue converts a YAML scalar to the domain value for a column. Text is
// NFC-normalized so equivalent filter files compile to byte-identical SQL
// and parameters. Identifier columns carry their UUIDs as text here; the
// compiler converts them to binary.
func toValue(ct tupledomain.ColumnType, identifier bool, raw any) (tupledomain.Value, error) {
	switch ct {
	case tupledomain.TypeInt64:
		switch n := raw.(type) {
		case int:
			return tupledomain.Int64(n), nil
		case int64:
			return tupledomain.Int64(n), nil
		case uint64:
			return tupledomain.Int64(n), nil
		}
	case tupledomain.TypeDouble:
		switch n := raw.(type) {
		case float64:
			return tupledomain.Double(n), nil
		case int:
			return tupledomain.Double(n), nil
		case int64:
			return tupledomain.Double(n), nil
		}
	case tupledomain.TypeBool:
		if b, ok := raw.(bool); ok {
			return tupledomain.Bool(b), nil
		}
	case tupledomain.TypeText:
		if s, ok := raw.(string); ok {
			return tupledomain.Text(norm.NFC.String(s)), nil
		}
	case tupledomain.TypeBytes:
		s, ok := raw.(string)
		if !ok {
			break
		}
		if identifier {
			return tupledomain.Text(norm.NFC.String(s)), nil
		}
		return tupledomain.Bytes(s), nil
	}
	return nil, fmt.Errorf("value %v (%T) does not fit column type %s", raw, raw, ct)
}
