package buffer

import (
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

type realScalar interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

func castReal[S, D realScalar](src []S, dst []D) {
	for i, v := range src {
		dst[i] = D(v)
	}
}

// fillRealFrom converts the chunk's real scalars into dst using standard
// numeric cast rules. No saturation is performed on integer narrowing.
func fillRealFrom[D realScalar](c Chunk, dst []D) {
	switch c.dt.Kind() {
	case dtype.Int8:
		castReal(View[int8](c), dst)
	case dtype.Int16:
		castReal(View[int16](c), dst)
	case dtype.Int32:
		castReal(View[int32](c), dst)
	case dtype.Int64:
		castReal(View[int64](c), dst)
	case dtype.UInt8:
		castReal(View[uint8](c), dst)
	case dtype.UInt16:
		castReal(View[uint16](c), dst)
	case dtype.UInt32:
		castReal(View[uint32](c), dst)
	case dtype.UInt64:
		castReal(View[uint64](c), dst)
	case dtype.Float32:
		castReal(View[float32](c), dst)
	case dtype.Float64:
		castReal(View[float64](c), dst)
	}
}

func convertRealInto(c Chunk, out Chunk) {
	switch out.dt.Kind() {
	case dtype.Int8:
		fillRealFrom(c, View[int8](out))
	case dtype.Int16:
		fillRealFrom(c, View[int16](out))
	case dtype.Int32:
		fillRealFrom(c, View[int32](out))
	case dtype.Int64:
		fillRealFrom(c, View[int64](out))
	case dtype.UInt8:
		fillRealFrom(c, View[uint8](out))
	case dtype.UInt16:
		fillRealFrom(c, View[uint16](out))
	case dtype.UInt32:
		fillRealFrom(c, View[uint32](out))
	case dtype.UInt64:
		fillRealFrom(c, View[uint64](out))
	case dtype.Float32:
		fillRealFrom(c, View[float32](out))
	case dtype.Float64:
		fillRealFrom(c, View[float64](out))
	}
}

// Convert produces a new chunk whose element values are numerically
// converted to the target type. The scalar slot count is preserved:
// a dtype with dimension above 1 converts as the base scalar applied to
// elements*dimension slots. Complex sources convert only to complex
// targets; real sources widen to complex with a zero imaginary part.
func (c Chunk) Convert(dst dtype.DType) (Chunk, error) {
	if c.dt.IsUnset() {
		return Chunk{}, errors.InvalidArgumentf("Chunk", "Convert",
			"cannot convert a chunk with no bound dtype")
	}
	if dst.IsUnset() {
		return Chunk{}, errors.InvalidArgumentf("Chunk", "Convert",
			"cannot convert to an unconstrained dtype")
	}
	if c.dt.WithDimension(1) == dst.WithDimension(1) {
		// Same base kind: zero-copy reinterpret covers dimension changes.
		return c.Retain().WithDType(dst), nil
	}

	srcComplex := c.dt.IsComplex()
	dstComplex := dst.IsComplex()
	if srcComplex && !dstComplex {
		return Chunk{}, errors.InvalidArgumentf("Chunk", "Convert",
			"%w: cannot convert %s to real %s",
			errors.ErrUnsupportedDType, c.dt, dst)
	}

	scalars := c.length / c.dt.ScalarSize()
	out := Chunk{
		alloc:  newAllocation(scalars * dst.ScalarSize()),
		length: scalars * dst.ScalarSize(),
		dt:     dst,
	}
	out.length -= out.length % dst.ElemSize()

	switch {
	case !srcComplex && !dstComplex:
		convertRealInto(c, out)
	case !srcComplex && dstComplex:
		realToComplexInto(c, out, scalars)
	default:
		complexToComplexInto(c, out)
	}
	return out, nil
}

func realToComplexInto(c Chunk, out Chunk, scalars int) {
	if out.dt.Kind() == dtype.Complex64 {
		tmp := make([]float32, scalars)
		fillRealFrom(c, tmp)
		dst := View[complex64](out)
		for i, v := range tmp {
			dst[i] = complex(v, 0)
		}
		return
	}
	tmp := make([]float64, scalars)
	fillRealFrom(c, tmp)
	dst := View[complex128](out)
	for i, v := range tmp {
		dst[i] = complex(v, 0)
	}
}

func complexToComplexInto(c Chunk, out Chunk) {
	if c.dt.Kind() == dtype.Complex64 {
		src := View[complex64](c)
		dst := View[complex128](out)
		for i, v := range src {
			dst[i] = complex128(v)
		}
		return
	}
	src := View[complex128](c)
	dst := View[complex64](out)
	for i, v := range src {
		dst[i] = complex64(v)
	}
}
