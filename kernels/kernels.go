// Package kernels provides the stateless elementwise transform functions
// the stream blocks dispatch over: clamp, the round family, the IsX
// predicates, replace-equal, and the columnwise min/max reduction.
//
// Every kernel is a pure function over raw typed slices. The scalar
// implementations in this package are the single source of truth for
// correctness; an optional vectorized variant may be swapped in through a
// block's kernel function field, under the contract that it produces
// bit-identical results on all well-defined inputs. The one documented
// relaxation is the floating-point near-equality check used by Replace:
// it compares within an epsilon, treats NaN as equal to NaN, and treats
// same-signed infinities as equal; otherwise IEEE 754 comparison
// semantics apply.
//
// Kernels operate on scalar slots: a dtype with dimension above one is
// handled by the caller passing elements*dimension slots.
package kernels

import "math"

// Real constrains the real scalar kinds kernels operate on.
type Real interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Float constrains the real floating-point kinds.
type Float interface {
	~float32 | ~float64
}

// Complex constrains the complex kinds.
type Complex interface {
	~complex64 | ~complex128
}

// Clamp writes max(lo, min(hi, in[i])) for every slot. The caller
// resolves the effective bounds from its clamp-min/clamp-max flags.
func Clamp[T Real](in, out []T, lo, hi T) {
	for i, v := range in {
		switch {
		case v < lo:
			out[i] = lo
		case hi < v:
			out[i] = hi
		default:
			out[i] = v
		}
	}
}

// Ceil rounds every slot to the closest integer away from zero for
// positive inputs, toward zero for negative inputs.
func Ceil[T Float](in, out []T) {
	for i, v := range in {
		out[i] = T(math.Ceil(float64(v)))
	}
}

// Floor rounds every slot to the closest integer toward zero for positive
// inputs, away from zero for negative inputs.
func Floor[T Float](in, out []T) {
	for i, v := range in {
		out[i] = T(math.Floor(float64(v)))
	}
}

// Trunc rounds every slot to the closest integer toward zero.
func Trunc[T Float](in, out []T) {
	for i, v := range in {
		out[i] = T(math.Trunc(float64(v)))
	}
}

func boolToInt8(b bool) int8 {
	if b {
		return 1
	}
	return 0
}

// IsFinite writes 1 for every slot that is neither infinite nor NaN.
func IsFinite[T Float](in []T, out []int8) {
	for i, v := range in {
		f := float64(v)
		out[i] = boolToInt8(!math.IsInf(f, 0) && !math.IsNaN(f))
	}
}

// IsInf writes 1 for every infinite slot.
func IsInf[T Float](in []T, out []int8) {
	for i, v := range in {
		out[i] = boolToInt8(math.IsInf(float64(v), 0))
	}
}

// IsNaN writes 1 for every NaN slot.
func IsNaN[T Float](in []T, out []int8) {
	for i, v := range in {
		out[i] = boolToInt8(math.IsNaN(float64(v)))
	}
}

// IsNormal writes 1 for every normal slot: finite, nonzero, and not
// subnormal.
func IsNormal[T Float](in []T, out []int8) {
	for i, v := range in {
		out[i] = boolToInt8(isNormal(v))
	}
}

// smallest positive normal values per IEEE 754 binary32/binary64
const (
	minNormal32 = 0x1p-126
	minNormal64 = 0x1p-1022
)

func isNormal[T Float](v T) bool {
	f := float64(v)
	if f == 0 || math.IsInf(f, 0) || math.IsNaN(f) {
		return false
	}
	if _, ok := any(v).(float32); ok {
		return math.Abs(f) >= minNormal32
	}
	return math.Abs(f) >= minNormal64
}

// IsNegative writes 1 for every slot with the sign bit set, including
// negative zero, negative infinity, and negative NaN.
func IsNegative[T Float](in []T, out []int8) {
	for i, v := range in {
		out[i] = boolToInt8(math.Signbit(float64(v)))
	}
}

// EqualWithin reports near-equality under the Replace relaxation:
// NaN equals NaN, same-signed infinities are equal, and finite values
// compare within epsilon.
func EqualWithin[T Float](a, b T, epsilon float64) bool {
	fa, fb := float64(a), float64(b)
	switch {
	case math.IsNaN(fa) && math.IsNaN(fb):
		return true
	case math.IsInf(fa, 0) && math.IsInf(fb, 0):
		return (fa < 0) == (fb < 0)
	default:
		return math.Abs(fa-fb) <= epsilon
	}
}

// Replace copies in to out, substituting newValue for every slot equal to
// oldValue. Integer types compare exactly; the epsilon applies only to
// floating-point types.
func Replace[T Real](in, out []T, oldValue, newValue T, epsilon float64) {
	isFloat := false
	switch any(oldValue).(type) {
	case float32, float64:
		isFloat = true
	}
	for i, v := range in {
		if isFloat {
			if EqualWithin(float64(v), float64(oldValue), epsilon) {
				out[i] = newValue
				continue
			}
		} else if v == oldValue {
			out[i] = newValue
			continue
		}
		out[i] = v
	}
}

// ReplaceComplex copies in to out, substituting newValue for every slot
// whose real and imaginary parts are both equal to oldValue's under the
// EqualWithin relaxation.
func ReplaceComplex[T Complex](in, out []T, oldValue, newValue T, epsilon float64) {
	or, oi := complexParts(oldValue)
	for i, v := range in {
		vr, vi := complexParts(v)
		if EqualWithin(vr, or, epsilon) && EqualWithin(vi, oi, epsilon) {
			out[i] = newValue
		} else {
			out[i] = v
		}
	}
}

func complexParts[T Complex](v T) (float64, float64) {
	c := complex128(v)
	return real(c), imag(c)
}

// MinMax reduces N equally sized input columns per slot, writing the
// elementwise minimum into outMin and maximum into outMax.
func MinMax[T Real](ins [][]T, outMin, outMax []T) {
	if len(ins) == 0 {
		return
	}
	for i := range outMin {
		lo, hi := ins[0][i], ins[0][i]
		for _, col := range ins[1:] {
			v := col[i]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		outMin[i] = lo
		outMax[i] = hi
	}
}
