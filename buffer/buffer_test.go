package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

func TestNewChunk(t *testing.T) {
	c := NewChunk(dtype.MustParse("float64"), 16)
	assert.Equal(t, 16, c.Elements())
	assert.Equal(t, 128, c.Length())
	assert.Len(t, c.Bytes(), 128)
}

func TestFromSliceRoundTrip(t *testing.T) {
	values := []int16{-3, -2, -1, 0, 1, 2, 3}
	c := FromSlice(dtype.MustParse("int16"), values)

	assert.Equal(t, len(values), c.Elements())
	assert.Equal(t, values, View[int16](c))
}

func TestSliceAdvancesWithoutReallocating(t *testing.T) {
	c := FromSlice(dtype.MustParse("int32"), []int32{10, 20, 30, 40})

	sliced := c.Slice(2 * 4)
	assert.Equal(t, 2, sliced.Elements())
	assert.Equal(t, []int32{30, 40}, View[int32](sliced))
	assert.True(t, SharesAllocation(c, sliced))

	// Original view is untouched
	assert.Equal(t, 4, c.Elements())
}

func TestSliceClamps(t *testing.T) {
	c := NewChunk(dtype.MustParse("int8"), 4)
	assert.Equal(t, 0, c.Slice(100).Elements())
	assert.Equal(t, 4, c.Slice(-5).Elements())
}

func TestSetElementsTruncates(t *testing.T) {
	c := FromSlice(dtype.MustParse("float32"), []float32{1, 2, 3, 4, 5})

	head := c.SetElements(2)
	assert.Equal(t, 2, head.Elements())
	assert.Equal(t, []float32{1, 2}, View[float32](head))
	assert.True(t, SharesAllocation(c, head))

	// Growing is impossible: length stays a multiple of the element size
	assert.Equal(t, 2, head.SetElements(10).Elements())
}

func TestWithDTypeReinterprets(t *testing.T) {
	c := FromSlice(dtype.MustParse("uint8"), []uint8{1, 0, 0, 0, 2, 0, 0, 0, 99})

	reinterpreted := c.WithDType(dtype.MustParse("uint32"))
	assert.Equal(t, 2, reinterpreted.Elements(), "trailing partial element dropped")
	assert.Equal(t, 8, reinterpreted.Length())
	assert.True(t, SharesAllocation(c, reinterpreted))
}

func TestRetainRelease(t *testing.T) {
	c := NewChunk(dtype.MustParse("int8"), 8)
	forwarded := c.Retain()

	assert.True(t, SharesAllocation(c, forwarded))
	forwarded.Release()
	c.Release()
}

func TestConvertPreservesElementCount(t *testing.T) {
	src := FromSlice(dtype.MustParse("int8"), []int8{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4})

	out, err := src.Convert(dtype.MustParse("float64"))
	require.NoError(t, err)

	assert.Equal(t, src.Elements(), out.Elements())
	assert.Equal(t, []float64{-5, -4, -3, -2, -1, 0, 1, 2, 3, 4}, View[float64](out))
	assert.False(t, SharesAllocation(src, out))
}

func TestConvertNarrowingFollowsCastRules(t *testing.T) {
	src := FromSlice(dtype.MustParse("int32"), []int32{300, -1, 127})

	out, err := src.Convert(dtype.MustParse("int8"))
	require.NoError(t, err)

	// Standard numeric cast rules: no saturation on narrowing.
	wide := int32(300)
	assert.Equal(t, []int8{int8(wide), -1, 127}, View[int8](out))
}

func TestConvertSameKindIsZeroCopy(t *testing.T) {
	src := FromSlice(dtype.MustParse("float32"), []float32{1, 2, 3, 4})

	out, err := src.Convert(dtype.New(dtype.Float32, 2))
	require.NoError(t, err)

	assert.True(t, SharesAllocation(src, out))
	assert.Equal(t, 2, out.Elements())
}

func TestConvertRealToComplex(t *testing.T) {
	src := FromSlice(dtype.MustParse("float32"), []float32{1.5, -2.5})

	out, err := src.Convert(dtype.MustParse("complex_float64"))
	require.NoError(t, err)

	assert.Equal(t, []complex128{complex(1.5, 0), complex(-2.5, 0)}, View[complex128](out))
}

func TestConvertComplexToComplex(t *testing.T) {
	src := FromSlice(dtype.MustParse("complex_float64"), []complex128{complex(1, 2), complex(-3, 4)})

	out, err := src.Convert(dtype.MustParse("complex_float32"))
	require.NoError(t, err)

	assert.Equal(t, []complex64{complex(1, 2), complex(-3, 4)}, View[complex64](out))
}

func TestConvertComplexToRealFails(t *testing.T) {
	src := FromSlice(dtype.MustParse("complex_float64"), []complex128{complex(1, 2)})

	_, err := src.Convert(dtype.MustParse("float64"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestConvertUnsetFails(t *testing.T) {
	var empty Chunk
	_, err := empty.Convert(dtype.MustParse("float64"))
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))

	src := NewChunk(dtype.MustParse("int8"), 4)
	_, err = src.Convert(dtype.DType{})
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestPoolRecyclesAllocations(t *testing.T) {
	dt := dtype.MustParse("float64")
	pool := NewPool(8 * 16)

	first := pool.Get(dt, 16)
	firstBytes := first.Bytes()
	require.NotNil(t, firstBytes)
	first.Release()

	second := pool.Get(dt, 16)
	assert.Equal(t, &firstBytes[0], &second.Bytes()[0], "allocation reused after release")

	// Mismatched sizes bypass the pool
	other := pool.Get(dt, 4)
	assert.Equal(t, 4, other.Elements())
}
