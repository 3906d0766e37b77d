package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/kernels"
)

// RoundFunc is the kernel signature the round blocks dispatch to.
type RoundFunc[T kernels.Float] func(in, out []T)

type round[T kernels.Float] struct {
	block.Base
	fcn RoundFunc[T]
	dim int
}

func newRound[T kernels.Float](name string, dt dtype.DType, fcn RoundFunc[T]) *round[T] {
	b := &round[T]{Base: block.NewBase(name), fcn: fcn, dim: dt.Dimension()}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	return b
}

func (b *round[T]) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	slots := elems * b.dim
	b.fcn(buffer.View[T](in.Buffer())[:slots], buffer.View[T](out.Buffer())[:slots])

	in.Consume(elems)
	out.Produce(elems)
}

func makeRound(name string, dt dtype.DType, f32 RoundFunc[float32], f64 RoundFunc[float64]) (block.Block, error) {
	switch dt.WithDimension(1).Kind() {
	case dtype.Float32:
		return newRound(name, dt, f32), nil
	case dtype.Float64:
		return newRound(name, dt, f64), nil
	}
	return nil, errors.InvalidArgumentf("Round", "New"+name,
		"%w: %s (floating types only)", errors.ErrUnsupportedDType, dt)
}

// NewCeil creates a block rounding every element to the closest integer
// away from zero for positive inputs, toward zero for negative inputs.
func NewCeil(dt dtype.DType) (block.Block, error) {
	return makeRound("ceil", dt, kernels.Ceil[float32], kernels.Ceil[float64])
}

// NewFloor creates a block rounding every element to the closest integer
// toward zero for positive inputs, away from zero for negative inputs.
func NewFloor(dt dtype.DType) (block.Block, error) {
	return makeRound("floor", dt, kernels.Floor[float32], kernels.Floor[float64])
}

// NewTrunc creates a block rounding every element to the closest integer
// toward zero.
func NewTrunc(dt dtype.DType) (block.Block, error) {
	return makeRound("trunc", dt, kernels.Trunc[float32], kernels.Trunc[float64])
}
