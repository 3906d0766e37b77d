package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/kernels"
)

// MinMaxFunc is the kernel signature a MinMax instance dispatches to.
type MinMaxFunc[T kernels.Real] func(ins [][]T, outMin, outMax []T)

type minMax[T kernels.Real] struct {
	block.Base
	fcn MinMaxFunc[T]
	dim int
}

// NewMinMax creates a block reducing numInputs streams into per-slot
// extremes on its "min" and "max" outputs. Integer and real floating
// types are supported.
func NewMinMax(dt dtype.DType, numInputs int) (block.Block, error) {
	if numInputs < 1 {
		return nil, errors.InvalidArgumentf("MinMax", "NewMinMax",
			"numInputs must be positive, got %d", numInputs)
	}
	switch dt.WithDimension(1).Kind() {
	case dtype.Int8:
		return newMinMax[int8](dt, numInputs), nil
	case dtype.Int16:
		return newMinMax[int16](dt, numInputs), nil
	case dtype.Int32:
		return newMinMax[int32](dt, numInputs), nil
	case dtype.Int64:
		return newMinMax[int64](dt, numInputs), nil
	case dtype.UInt8:
		return newMinMax[uint8](dt, numInputs), nil
	case dtype.UInt16:
		return newMinMax[uint16](dt, numInputs), nil
	case dtype.UInt32:
		return newMinMax[uint32](dt, numInputs), nil
	case dtype.UInt64:
		return newMinMax[uint64](dt, numInputs), nil
	case dtype.Float32:
		return newMinMax[float32](dt, numInputs), nil
	case dtype.Float64:
		return newMinMax[float64](dt, numInputs), nil
	}
	return nil, errors.InvalidArgumentf("MinMax", "NewMinMax",
		"%w: %s", errors.ErrUnsupportedDType, dt)
}

func newMinMax[T kernels.Real](dt dtype.DType, numInputs int) *minMax[T] {
	b := &minMax[T]{
		Base: block.NewBase("minmax"),
		fcn:  kernels.MinMax[T],
		dim:  dt.Dimension(),
	}
	for i := 0; i < numInputs; i++ {
		b.SetupInput(i, dt)
	}
	b.SetupNamedOutput(0, "min", dt)
	b.SetupNamedOutput(1, "max", dt)
	return b
}

func (b *minMax[T]) Work() {
	elems := b.WorkInfo().MinAllElements
	if elems == 0 {
		return
	}

	slots := elems * b.dim
	ins := make([][]T, b.NumInputs())
	for i, in := range b.Inputs() {
		ins[i] = buffer.View[T](in.Buffer())[:slots]
	}
	outMin := b.OutputNamed("min")
	outMax := b.OutputNamed("max")

	b.fcn(ins, buffer.View[T](outMin.Buffer())[:slots], buffer.View[T](outMax.Buffer())[:slots])

	for _, in := range b.Inputs() {
		in.Consume(elems)
	}
	outMin.Produce(elems)
	outMax.Produce(elems)
}
