package testers

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/google/uuid"
)

// ConstantBlock is the configuration surface of a Constant source. Values
// are carried as complex128; the imaginary part is ignored for real
// element types.
type ConstantBlock interface {
	block.Block
	Value() complex128
	SetValue(v complex128)
}

// constant emits an endless stream of one value. The fill buffer is built
// once per value and shared by reference with every downstream, so steady
// state posts are allocation free; changing the value invalidates the
// cache.
//
// A constant never idles. Drive it under Run with a cancellable context,
// or cap it with a FirstN block when settling a topology with
// RunUntilIdle.
type constant[T buffer.Element] struct {
	block.Base
	dt     dtype.DType
	value  T
	cached buffer.Chunk
}

// NewConstant creates a constant source of the given dtype and value.
func NewConstant(dt dtype.DType, value complex128) (ConstantBlock, error) {
	switch dt.WithDimension(1).Kind() {
	case dtype.Int8:
		return newConstant(dt, int8(real(value))), nil
	case dtype.Int16:
		return newConstant(dt, int16(real(value))), nil
	case dtype.Int32:
		return newConstant(dt, int32(real(value))), nil
	case dtype.Int64:
		return newConstant(dt, int64(real(value))), nil
	case dtype.UInt8:
		return newConstant(dt, uint8(real(value))), nil
	case dtype.UInt16:
		return newConstant(dt, uint16(real(value))), nil
	case dtype.UInt32:
		return newConstant(dt, uint32(real(value))), nil
	case dtype.UInt64:
		return newConstant(dt, uint64(real(value))), nil
	case dtype.Float32:
		return newConstant(dt, float32(real(value))), nil
	case dtype.Float64:
		return newConstant(dt, real(value)), nil
	case dtype.Complex64:
		return newConstant(dt, complex64(value)), nil
	case dtype.Complex128:
		return newConstant(dt, value), nil
	}
	return nil, errors.InvalidArgumentf("Constant", "NewConstant",
		"%w: %s", errors.ErrUnsupportedDType, dt)
}

func newConstant[T buffer.Element](dt dtype.DType, value T) *constant[T] {
	b := &constant[T]{Base: block.NewBase("constant"), dt: dt, value: value}
	b.SetupOutput(0, dt, uuid.NewString())
	b.RegisterSignal("valueChanged")
	return b
}

func (b *constant[T]) Value() complex128 {
	switch v := any(b.value).(type) {
	case complex64:
		return complex128(v)
	case complex128:
		return v
	case float32:
		return complex(float64(v), 0)
	case float64:
		return complex(v, 0)
	default:
		return complex(asFloat(b.value), 0)
	}
}

func asFloat[T buffer.Element](v T) float64 {
	switch n := any(v).(type) {
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}

func (b *constant[T]) SetValue(v complex128) {
	switch any(b.value).(type) {
	case complex64:
		b.value = any(complex64(v)).(T)
	case complex128:
		b.value = any(v).(T)
	default:
		b.value = castReal[T](real(v))
	}
	b.cached.Release()
	b.cached = buffer.Chunk{}
	b.EmitSignal("valueChanged", v)
}

func castReal[T buffer.Element](v float64) T {
	var zero T
	switch any(zero).(type) {
	case int8:
		return any(int8(v)).(T)
	case int16:
		return any(int16(v)).(T)
	case int32:
		return any(int32(v)).(T)
	case int64:
		return any(int64(v)).(T)
	case uint8:
		return any(uint8(v)).(T)
	case uint16:
		return any(uint16(v)).(T)
	case uint32:
		return any(uint32(v)).(T)
	case uint64:
		return any(uint64(v)).(T)
	case float32:
		return any(float32(v)).(T)
	case float64:
		return any(v).(T)
	}
	return zero
}

func (b *constant[T]) Deactivate() error {
	b.cached.Release()
	b.cached = buffer.Chunk{}
	return nil
}

func (b *constant[T]) Work() {
	out := b.Output(0)
	if b.cached.Length() == 0 {
		b.cached = buffer.NewChunk(b.dt, out.Capacity())
		view := buffer.View[T](b.cached)
		for i := range view {
			view[i] = b.value
		}
	}
	out.PostBuffer(b.cached.Retain())
}
