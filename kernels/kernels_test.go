package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestClampBoundary(t *testing.T) {
	in := []int32{math.MinInt32, 0, 25, 50, 75, 100, 125, math.MaxInt32}
	out := make([]int32, len(in))

	Clamp(in, out, 30, 90)
	assert.Equal(t, []int32{30, 30, 30, 50, 75, 90, 90, 90}, out)

	// Min-only: effective hi is the type maximum
	Clamp(in, out, 30, math.MaxInt32)
	assert.Equal(t, []int32{30, 30, 30, 50, 75, 100, 125, math.MaxInt32}, out)

	// Max-only: effective lo is the type minimum
	Clamp(in, out, math.MinInt32, 90)
	assert.Equal(t, []int32{math.MinInt32, 0, 25, 50, 75, 90, 90, 90}, out)

	// Neither: input unchanged
	Clamp(in, out, math.MinInt32, math.MaxInt32)
	assert.Equal(t, in, out)
}

func TestClampUnsigned(t *testing.T) {
	in := []uint8{0, 25, 50, 75, 100, 125, math.MaxUint8}
	out := make([]uint8, len(in))

	Clamp(in, out, 30, 90)
	assert.Equal(t, []uint8{30, 30, 50, 75, 90, 90, 90}, out)
}

func TestClampIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lo := rapid.Float64Range(-1e6, 1e6).Draw(t, "lo")
		hi := rapid.Float64Range(lo, 1e6).Draw(t, "hi")
		in := rapid.SliceOf(rapid.Float64Range(-1e9, 1e9)).Draw(t, "in")

		once := make([]float64, len(in))
		twice := make([]float64, len(in))
		Clamp(in, once, lo, hi)
		Clamp(once, twice, lo, hi)

		assert.Equal(t, once, twice)
	})
}

func TestRoundFamilyExactness(t *testing.T) {
	in := []float64{-1.0, -0.75, -0.5, -0.25, 0.0, 0.25, 0.5, 1.0}
	out := make([]float64, len(in))

	Ceil(in, out)
	assert.Equal(t, []float64{-1, 0, 0, 0, 0, 1, 1, 1}, out)

	Floor(in, out)
	assert.Equal(t, []float64{-1, -1, -1, -1, 0, 0, 0, 1}, out)

	Trunc(in, out)
	assert.Equal(t, []float64{-1, 0, 0, 0, 0, 0, 0, 1}, out)
}

func TestRoundFloat32(t *testing.T) {
	in := []float32{-0.75, 0.25, 2.5}
	out := make([]float32, len(in))

	Ceil(in, out)
	assert.Equal(t, []float32{0, 1, 3}, out)
}

func TestIsXTruthTable(t *testing.T) {
	inf := math.Inf(1)
	nan := math.NaN()
	in := []float64{-inf, -1, 0, 1, inf, nan}
	out := make([]int8, len(in))

	IsFinite(in, out)
	assert.Equal(t, []int8{0, 1, 1, 1, 0, 0}, out)

	IsInf(in, out)
	assert.Equal(t, []int8{1, 0, 0, 0, 1, 0}, out)

	IsNaN(in, out)
	assert.Equal(t, []int8{0, 0, 0, 0, 0, 1}, out)

	IsNormal(in, out)
	assert.Equal(t, []int8{0, 1, 0, 1, 0, 0}, out)

	IsNegative(in, out)
	assert.Equal(t, []int8{1, 1, 0, 0, 0, 0}, out)
}

func TestIsNormalSubnormal(t *testing.T) {
	in := []float64{math.SmallestNonzeroFloat64, minNormal64, -minNormal64}
	out := make([]int8, len(in))

	IsNormal(in, out)
	assert.Equal(t, []int8{0, 1, 1}, out)

	in32 := []float32{math.SmallestNonzeroFloat32, minNormal32}
	out32 := make([]int8, len(in32))
	IsNormal(in32, out32)
	assert.Equal(t, []int8{0, 1}, out32)
}

func TestIsNegativeZero(t *testing.T) {
	in := []float64{math.Copysign(0, -1), 0}
	out := make([]int8, len(in))

	IsNegative(in, out)
	assert.Equal(t, []int8{1, 0}, out, "negative zero carries the sign bit")
}

func TestEqualWithinRelaxation(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)

	assert.True(t, EqualWithin(nan, nan, 0), "NaN equals NaN")
	assert.True(t, EqualWithin(inf, inf, 0))
	assert.True(t, EqualWithin(-inf, -inf, 0))
	assert.False(t, EqualWithin(inf, -inf, 0), "opposite-signed infinities differ")
	assert.False(t, EqualWithin(inf, 1.0, 1e308))
	assert.True(t, EqualWithin(1.0, 1.0+1e-9, 1e-6))
	assert.False(t, EqualWithin(1.0, 1.1, 1e-6))
}

func TestReplaceFloat(t *testing.T) {
	in := []float64{1.0, 2.0, 1.0000001, 3.0}
	out := make([]float64, len(in))

	Replace(in, out, 1.0, 9.0, 1e-6)
	assert.Equal(t, []float64{9.0, 2.0, 9.0, 3.0}, out)
}

func TestReplaceNaN(t *testing.T) {
	nan := math.NaN()
	in := []float64{nan, 1, nan}
	out := make([]float64, len(in))

	Replace(in, out, nan, 0, 0)
	assert.Equal(t, []float64{0, 1, 0}, out)
}

func TestReplaceIntegerExact(t *testing.T) {
	in := []int16{5, 6, 5, 7}
	out := make([]int16, len(in))

	// Epsilon has no effect for integer types
	Replace(in, out, 5, -1, 100.0)
	assert.Equal(t, []int16{-1, 6, -1, 7}, out)
	Replace(in, out, 6, 0, 0)
	assert.Equal(t, []int16{5, 0, 5, 7}, out)
}

func TestReplaceComplex(t *testing.T) {
	in := []complex128{complex(1, 2), complex(3, 4), complex(1, 2.0000001)}
	out := make([]complex128, len(in))

	ReplaceComplex(in, out, complex(1, 2), complex(0, 0), 1e-6)
	assert.Equal(t, []complex128{0, complex(3, 4), 0}, out)
}

func TestMinMaxReduction(t *testing.T) {
	ins := [][]float32{
		{1, 5, 3},
		{2, 4, 3},
		{0, 6, 3},
	}
	outMin := make([]float32, 3)
	outMax := make([]float32, 3)

	MinMax(ins, outMin, outMax)
	assert.Equal(t, []float32{0, 4, 3}, outMin)
	assert.Equal(t, []float32{2, 6, 3}, outMax)
}

func TestMinMaxSingleInput(t *testing.T) {
	ins := [][]int8{{3, -1}}
	outMin := make([]int8, 2)
	outMax := make([]int8, 2)

	MinMax(ins, outMin, outMax)
	assert.Equal(t, []int8{3, -1}, outMin)
	assert.Equal(t, []int8{3, -1}, outMax)
}
