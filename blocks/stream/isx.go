package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/kernels"
)

// IsXFunc is the kernel signature the predicate blocks dispatch to: per
// slot, 1 for true and 0 for false into a fixed int8 output stream.
type IsXFunc[T kernels.Float] func(in []T, out []int8)

type isX[T kernels.Float] struct {
	block.Base
	fcn IsXFunc[T]
	dim int
}

func newIsX[T kernels.Float](name string, dt dtype.DType, fcn IsXFunc[T]) *isX[T] {
	b := &isX[T]{Base: block.NewBase(name), fcn: fcn, dim: dt.Dimension()}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dtype.New(dtype.Int8, dt.Dimension()))
	return b
}

func (b *isX[T]) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	slots := elems * b.dim
	b.fcn(buffer.View[T](in.Buffer())[:slots], buffer.View[int8](out.Buffer())[:slots])

	in.Consume(elems)
	out.Produce(elems)
}

func makeIsX(name string, dt dtype.DType, f32 IsXFunc[float32], f64 IsXFunc[float64]) (block.Block, error) {
	switch dt.WithDimension(1).Kind() {
	case dtype.Float32:
		return newIsX(name, dt, f32), nil
	case dtype.Float64:
		return newIsX(name, dt, f64), nil
	}
	return nil, errors.InvalidArgumentf("IsX", "New"+name,
		"%w: %s (floating types only)", errors.ErrUnsupportedDType, dt)
}

// NewIsFinite creates a block writing 1 for every element that is neither
// infinite nor NaN.
func NewIsFinite(dt dtype.DType) (block.Block, error) {
	return makeIsX("isfinite", dt, kernels.IsFinite[float32], kernels.IsFinite[float64])
}

// NewIsInf creates a block writing 1 for every infinite element.
func NewIsInf(dt dtype.DType) (block.Block, error) {
	return makeIsX("isinf", dt, kernels.IsInf[float32], kernels.IsInf[float64])
}

// NewIsNaN creates a block writing 1 for every NaN element.
func NewIsNaN(dt dtype.DType) (block.Block, error) {
	return makeIsX("isnan", dt, kernels.IsNaN[float32], kernels.IsNaN[float64])
}

// NewIsNormal creates a block writing 1 for every normal element.
func NewIsNormal(dt dtype.DType) (block.Block, error) {
	return makeIsX("isnormal", dt, kernels.IsNormal[float32], kernels.IsNormal[float64])
}

// NewIsNegative creates a block writing 1 for every element with the sign
// bit set.
func NewIsNegative(dt dtype.DType) (block.Block, error) {
	return makeIsX("isnegative", dt, kernels.IsNegative[float32], kernels.IsNegative[float64])
}
