package tupledomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomain_SpecialStates(t *testing.T) {
	d := OnlyNull()
	assert.True(t, d.RangesNone())
	assert.False(t, d.RangesAll())
	assert.True(t, d.NullAllowed())

	d = NotNull()
	assert.True(t, d.RangesAll())
	assert.False(t, d.RangesNone())
	assert.False(t, d.NullAllowed())

	d = AllValues(true)
	assert.True(t, d.RangesAll())
	assert.True(t, d.NullAllowed())
}

func TestDomain_FromRangesPreservesOrder(t *testing.T) {
	d := FromRanges(false, SingleValue(Int64(9)), SingleValue(Int64(5)), SingleValue(Int64(7)))
	require.Len(t, d.Ranges(), 3)
	assert.Equal(t, Int64(9), d.Ranges()[0].Low().Value())
	assert.Equal(t, Int64(5), d.Ranges()[1].Low().Value())
	assert.Equal(t, Int64(7), d.Ranges()[2].Low().Value())
	assert.False(t, d.RangesNone())
	assert.False(t, d.RangesAll())
}

func TestDomain_SingleValues(t *testing.T) {
	d := SingleValues(true, Text("a"), Text("b"))
	require.Len(t, d.Ranges(), 2)
	assert.True(t, d.Ranges()[0].IsSingleValue())
	assert.True(t, d.NullAllowed())
}

func TestTupleDomain_None(t *testing.T) {
	td := None()
	assert.True(t, td.IsNone())
	assert.Nil(t, td.Domains())
	assert.Empty(t, td.ColumnIndexes())
}

func TestTupleDomain_All(t *testing.T) {
	td := All()
	assert.False(t, td.IsNone())
	assert.Empty(t, td.ColumnIndexes())
}

func TestTupleDomain_ColumnIndexesSorted(t *testing.T) {
	td := FromDomains(map[int]Domain{
		4: NotNull(),
		0: OnlyNull(),
		2: SingleValues(false, Int64(1)),
	})
	assert.Equal(t, []int{0, 2, 4}, td.ColumnIndexes())
}

func TestTupleDomain_FromDomainsCopies(t *testing.T) {
	src := map[int]Domain{1: NotNull()}
	td := FromDomains(src)
	src[2] = OnlyNull()
	assert.Equal(t, []int{1}, td.ColumnIndexes(), "mutating the source map must not affect the tuple domain")
}

func TestParseColumnType(t *testing.T) {
	for _, ct := range []ColumnType{TypeInt64, TypeDouble, TypeBool, TypeText, TypeBytes} {
		parsed, err := ParseColumnType(ct.String())
		require.NoError(t, err)
		assert.Equal(t, ct, parsed)
	}

	_, err := ParseColumnType("decimal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decimal")
}
