package tupledomain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRange_RejectsIllegalLowBound(t *testing.T) {
	_, err := NewRange(BelowValue(Int64(5)), UpperUnbounded())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BELOW")
}

func TestNewRange_RejectsIllegalHighBound(t *testing.T) {
	_, err := NewRange(LowerUnbounded(), AboveValue(Int64(5)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ABOVE")
}

func TestNewRange_AcceptsLegalMarkers(t *testing.T) {
	testCases := []struct {
		name string
		low  Marker
		high Marker
	}{
		{"bounded both sides", ExactlyValue(Int64(3)), BelowValue(Int64(10))},
		{"exclusive low", AboveValue(Int64(3)), ExactlyValue(Int64(10))},
		{"lower unbounded", LowerUnbounded(), BelowValue(Int64(10))},
		{"upper unbounded", AboveValue(Int64(3)), UpperUnbounded()},
		{"fully unbounded", LowerUnbounded(), UpperUnbounded()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewRange(tc.low, tc.high)
			require.NoError(t, err)
			assert.Equal(t, tc.low, r.Low())
			assert.Equal(t, tc.high, r.High())
		})
	}
}

func TestRange_IsSingleValue(t *testing.T) {
	assert.True(t, SingleValue(Int64(7)).IsSingleValue())
	assert.True(t, SingleValue(Text("abc")).IsSingleValue())
	assert.True(t, SingleValue(Bytes{1, 2}).IsSingleValue())

	r, err := NewRange(ExactlyValue(Int64(3)), ExactlyValue(Int64(4)))
	require.NoError(t, err)
	assert.False(t, r.IsSingleValue(), "distinct values are not a single-value range")

	r, err = NewRange(AboveValue(Int64(3)), ExactlyValue(Int64(3)))
	require.NoError(t, err)
	assert.False(t, r.IsSingleValue(), "exclusive bound is not a single-value range")

	assert.False(t, GreaterThan(Int64(3)).IsSingleValue())
}

func TestRange_IsAll(t *testing.T) {
	r, err := NewRange(LowerUnbounded(), UpperUnbounded())
	require.NoError(t, err)
	assert.True(t, r.IsAll())

	assert.False(t, AtLeast(Int64(0)).IsAll())
	assert.False(t, LessThan(Int64(0)).IsAll())
}

func TestRange_Shorthands(t *testing.T) {
	r := GreaterThan(Int64(5))
	assert.Equal(t, Above, r.Low().Bound())
	assert.True(t, r.High().Unbounded())

	r = AtLeast(Int64(5))
	assert.Equal(t, Exactly, r.Low().Bound())

	r = LessThan(Int64(5))
	assert.True(t, r.Low().Unbounded())
	assert.Equal(t, Below, r.High().Bound())

	r = AtMost(Int64(5))
	assert.Equal(t, Exactly, r.High().Bound())
}

func TestValuesEqual(t *testing.T) {
	assert.True(t, ValuesEqual(Int64(1), Int64(1)))
	assert.True(t, ValuesEqual(Double(1.5), Double(1.5)))
	assert.True(t, ValuesEqual(Bool(true), Bool(true)))
	assert.True(t, ValuesEqual(Text("a"), Text("a")))
	assert.True(t, ValuesEqual(Bytes{1, 2}, Bytes{1, 2}))
	assert.True(t, ValuesEqual(Null{}, Null{}))

	assert.False(t, ValuesEqual(Int64(1), Int64(2)))
	assert.False(t, ValuesEqual(Int64(1), Double(1)), "different kinds never compare equal")
	assert.False(t, ValuesEqual(Bytes{1}, Bytes{1, 2}))
	assert.False(t, ValuesEqual(Null{}, Int64(0)))
}
