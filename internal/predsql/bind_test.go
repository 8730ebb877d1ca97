package predsql

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pushdown/internal/tupledomain"
)

// recordedBind captures one call against the fake statement.
type recordedBind struct {
	pos   int
	kind  string
	value any
}

// fakeStatement records bind calls in order for assertion.
type fakeStatement struct {
	calls []recordedBind
	fail  error
}

func (s *fakeStatement) BindInt64(pos int, v int64) error {
	return s.record(pos, "int64", v)
}

func (s *fakeStatement) BindDouble(pos int, v float64) error {
	return s.record(pos, "double", v)
}

func (s *fakeStatement) BindBool(pos int, v bool) error {
	return s.record(pos, "bool", v)
}

func (s *fakeStatement) BindText(pos int, v string) error {
	return s.record(pos, "text", v)
}

func (s *fakeStatement) BindBytes(pos int, v []byte) error {
	return s.record(pos, "bytes", v)
}

func (s *fakeStatement) BindNull(pos int, code SQLNullType) error {
	return s.record(pos, "null", code)
}

func (s *fakeStatement) record(pos int, kind string, value any) error {
	if s.fail != nil {
		return s.fail
	}
	s.calls = append(s.calls, recordedBind{pos: pos, kind: kind, value: value})
	return nil
}

func TestBindAll_DispatchesOnRuntimeRepresentation(t *testing.T) {
	stmt := &fakeStatement{}
	binds := []BindValue{
		{ColumnIndex: 1, Type: tupledomain.TypeInt64, Value: tupledomain.Int64(42)},
		{ColumnIndex: 2, Type: tupledomain.TypeDouble, Value: tupledomain.Double(2.5)},
		{ColumnIndex: 3, Type: tupledomain.TypeBool, Value: tupledomain.Bool(true)},
		{ColumnIndex: 4, Type: tupledomain.TypeText, Value: tupledomain.Text("node1")},
	}

	require.NoError(t, BindAll(stmt, binds, nil))
	assert.Equal(t, []recordedBind{
		{pos: 1, kind: "int64", value: int64(42)},
		{pos: 2, kind: "double", value: 2.5},
		{pos: 3, kind: "bool", value: true},
		{pos: 4, kind: "text", value: "node1"},
	}, stmt.calls)
}

func TestBindAll_PositionsAreOneBasedAndAscending(t *testing.T) {
	stmt := &fakeStatement{}
	binds := []BindValue{
		{ColumnIndex: 1, Type: tupledomain.TypeInt64, Value: tupledomain.Int64(1)},
		{ColumnIndex: 1, Type: tupledomain.TypeInt64, Value: tupledomain.Int64(2)},
		{ColumnIndex: 1, Type: tupledomain.TypeInt64, Value: tupledomain.Int64(3)},
	}

	require.NoError(t, BindAll(stmt, binds, nil))
	require.Len(t, stmt.calls, 3)
	for i, call := range stmt.calls {
		assert.Equal(t, i+1, call.pos)
	}
}

func TestBindAll_IdentifierBytesBindRaw(t *testing.T) {
	raw := []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	stmt := &fakeStatement{}
	binds := []BindValue{
		{ColumnIndex: 0, Type: tupledomain.TypeBytes, Value: tupledomain.Bytes(raw)},
	}

	require.NoError(t, BindAll(stmt, binds, map[int]bool{0: true}))
	require.Len(t, stmt.calls, 1)
	assert.Equal(t, "bytes", stmt.calls[0].kind)
	assert.Equal(t, raw, stmt.calls[0].value)
}

func TestBindAll_NonIdentifierBytesBindAsText(t *testing.T) {
	stmt := &fakeStatement{}
	binds := []BindValue{
		{ColumnIndex: 4, Type: tupledomain.TypeBytes, Value: tupledomain.Bytes("node1")},
	}

	require.NoError(t, BindAll(stmt, binds, map[int]bool{0: true}))
	require.Len(t, stmt.calls, 1)
	assert.Equal(t, "text", stmt.calls[0].kind)
	assert.Equal(t, "node1", stmt.calls[0].value)
}

func TestBindAll_NullUsesTypeDerivedCode(t *testing.T) {
	testCases := []struct {
		columnType tupledomain.ColumnType
		code       SQLNullType
	}{
		{tupledomain.TypeInt64, NullBigint},
		{tupledomain.TypeDouble, NullDouble},
		{tupledomain.TypeBool, NullBoolean},
		{tupledomain.TypeText, NullVarchar},
		{tupledomain.TypeBytes, NullVarbinary},
	}

	for _, tc := range testCases {
		t.Run(tc.columnType.String(), func(t *testing.T) {
			stmt := &fakeStatement{}
			binds := []BindValue{
				{ColumnIndex: 1, Type: tc.columnType, Value: tupledomain.Null{}},
			}
			require.NoError(t, BindAll(stmt, binds, nil))
			require.Len(t, stmt.calls, 1)
			assert.Equal(t, "null", stmt.calls[0].kind)
			assert.Equal(t, tc.code, stmt.calls[0].value)
		})
	}
}

func TestBindAll_NullWithUnknownTypeFails(t *testing.T) {
	stmt := &fakeStatement{}
	binds := []BindValue{
		{ColumnIndex: 1, Type: tupledomain.ColumnType(99), Value: tupledomain.Null{}},
	}

	err := BindAll(stmt, binds, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown column type")
	assert.Empty(t, stmt.calls, "no partial binds after a failed lookup")
}

func TestBindAll_UnknownValueKindFails(t *testing.T) {
	stmt := &fakeStatement{}
	binds := []BindValue{
		{ColumnIndex: 1, Type: tupledomain.TypeInt64, Value: nil},
	}

	err := BindAll(stmt, binds, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown value type")
}

func TestBindAll_PropagatesStatementErrors(t *testing.T) {
	stmt := &fakeStatement{fail: fmt.Errorf("statement closed")}
	binds := []BindValue{
		{ColumnIndex: 1, Type: tupledomain.TypeInt64, Value: tupledomain.Int64(1)},
	}

	err := BindAll(stmt, binds, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind parameter 1")
	assert.Contains(t, err.Error(), "statement closed")
}

func TestNullTypeFor_Table(t *testing.T) {
	code, err := NullTypeFor(tupledomain.TypeBytes)
	require.NoError(t, err)
	assert.Equal(t, NullVarbinary, code)
	assert.Equal(t, "VARBINARY", code.String())

	_, err = NullTypeFor(tupledomain.ColumnType(42))
	require.Error(t, err)
}
