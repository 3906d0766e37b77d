package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/kernels"
)

// ReplaceBlock is the configuration surface of a Replace instance. Values
// are carried as complex128; real element types use the real part.
type ReplaceBlock interface {
	block.Block
	OldValue() complex128
	NewValue() complex128
	Epsilon() float64
	SetEpsilon(v float64)
}

type replace[T kernels.Real] struct {
	block.Base
	dim      int
	oldValue T
	newValue T
	epsilon  float64
}

type replaceComplex[T kernels.Complex] struct {
	block.Base
	dim      int
	oldValue T
	newValue T
	epsilon  float64
}

// NewReplace creates a block substituting newValue for every element
// equal to oldValue. Floating types compare within epsilon, with NaN
// equal to NaN and same-signed infinities equal; epsilon has no effect
// for integer and complex-of-integer types.
func NewReplace(dt dtype.DType, oldValue, newValue complex128, epsilon float64) (ReplaceBlock, error) {
	switch dt.WithDimension(1).Kind() {
	case dtype.Int8:
		return newReplace[int8](dt, oldValue, newValue, epsilon), nil
	case dtype.Int16:
		return newReplace[int16](dt, oldValue, newValue, epsilon), nil
	case dtype.Int32:
		return newReplace[int32](dt, oldValue, newValue, epsilon), nil
	case dtype.Int64:
		return newReplace[int64](dt, oldValue, newValue, epsilon), nil
	case dtype.UInt8:
		return newReplace[uint8](dt, oldValue, newValue, epsilon), nil
	case dtype.UInt16:
		return newReplace[uint16](dt, oldValue, newValue, epsilon), nil
	case dtype.UInt32:
		return newReplace[uint32](dt, oldValue, newValue, epsilon), nil
	case dtype.UInt64:
		return newReplace[uint64](dt, oldValue, newValue, epsilon), nil
	case dtype.Float32:
		return newReplace[float32](dt, oldValue, newValue, epsilon), nil
	case dtype.Float64:
		return newReplace[float64](dt, oldValue, newValue, epsilon), nil
	case dtype.Complex64:
		return newReplaceComplex[complex64](dt, oldValue, newValue, epsilon), nil
	case dtype.Complex128:
		return newReplaceComplex[complex128](dt, oldValue, newValue, epsilon), nil
	}
	return nil, errors.InvalidArgumentf("Replace", "NewReplace",
		"%w: %s", errors.ErrUnsupportedDType, dt)
}

func newReplace[T kernels.Real](dt dtype.DType, oldValue, newValue complex128, epsilon float64) *replace[T] {
	b := &replace[T]{
		Base:     block.NewBase("replace"),
		dim:      dt.Dimension(),
		oldValue: T(real(oldValue)),
		newValue: T(real(newValue)),
		epsilon:  epsilon,
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	return b
}

func newReplaceComplex[T kernels.Complex](dt dtype.DType, oldValue, newValue complex128, epsilon float64) *replaceComplex[T] {
	b := &replaceComplex[T]{
		Base:     block.NewBase("replace"),
		dim:      dt.Dimension(),
		oldValue: T(oldValue),
		newValue: T(newValue),
		epsilon:  epsilon,
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	return b
}

func (b *replace[T]) OldValue() complex128 { return complex(float64(b.oldValue), 0) }
func (b *replace[T]) NewValue() complex128 { return complex(float64(b.newValue), 0) }
func (b *replace[T]) Epsilon() float64     { return b.epsilon }
func (b *replace[T]) SetEpsilon(v float64) { b.epsilon = v }

func (b *replace[T]) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	slots := elems * b.dim
	kernels.Replace(
		buffer.View[T](in.Buffer())[:slots],
		buffer.View[T](out.Buffer())[:slots],
		b.oldValue, b.newValue, b.epsilon)

	in.Consume(elems)
	out.Produce(elems)
}

func (b *replaceComplex[T]) OldValue() complex128 { return complex128(b.oldValue) }
func (b *replaceComplex[T]) NewValue() complex128 { return complex128(b.newValue) }
func (b *replaceComplex[T]) Epsilon() float64     { return b.epsilon }
func (b *replaceComplex[T]) SetEpsilon(v float64) { b.epsilon = v }

func (b *replaceComplex[T]) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	slots := elems * b.dim
	kernels.ReplaceComplex(
		buffer.View[T](in.Buffer())[:slots],
		buffer.View[T](out.Buffer())[:slots],
		b.oldValue, b.newValue, b.epsilon)

	in.Consume(elems)
	out.Produce(elems)
}
