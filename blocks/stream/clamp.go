package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/kernels"
)

// ClampBlock is the configuration surface of a Clamp instance. Bounds are
// carried as float64 and converted to the block's element type.
type ClampBlock interface {
	block.Block
	Min() float64
	SetMin(v float64) error
	Max() float64
	SetMax(v float64) error
	SetMinAndMax(lo, hi float64) error
	ClampMin() bool
	SetClampMin(v bool)
	ClampMax() bool
	SetClampMax(v bool)
}

// ClampFunc is the kernel signature a Clamp instance dispatches to. A
// vectorized variant may replace the scalar default under the equivalence
// contract documented in the kernels package.
type ClampFunc[T kernels.Real] func(in, out []T, lo, hi T)

type clamp[T kernels.Real] struct {
	block.Base
	fcn      ClampFunc[T]
	dim      int
	min      T
	max      T
	clampMin bool
	clampMax bool
}

// NewClamp creates a clamp block constraining input values between
// user-given bounds. Integer and real floating types are supported.
func NewClamp(dt dtype.DType) (ClampBlock, error) {
	switch dt.WithDimension(1).Kind() {
	case dtype.Int8:
		return newClamp[int8](dt), nil
	case dtype.Int16:
		return newClamp[int16](dt), nil
	case dtype.Int32:
		return newClamp[int32](dt), nil
	case dtype.Int64:
		return newClamp[int64](dt), nil
	case dtype.UInt8:
		return newClamp[uint8](dt), nil
	case dtype.UInt16:
		return newClamp[uint16](dt), nil
	case dtype.UInt32:
		return newClamp[uint32](dt), nil
	case dtype.UInt64:
		return newClamp[uint64](dt), nil
	case dtype.Float32:
		return newClamp[float32](dt), nil
	case dtype.Float64:
		return newClamp[float64](dt), nil
	}
	return nil, errors.InvalidArgumentf("Clamp", "NewClamp",
		"%w: %s", errors.ErrUnsupportedDType, dt)
}

func newClamp[T kernels.Real](dt dtype.DType) *clamp[T] {
	b := &clamp[T]{
		Base:     block.NewBase("clamp"),
		fcn:      kernels.Clamp[T],
		dim:      dt.Dimension(),
		clampMin: true,
		clampMax: true,
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	b.RegisterSignal("minChanged")
	b.RegisterSignal("maxChanged")
	b.RegisterSignal("clampMinChanged")
	b.RegisterSignal("clampMaxChanged")
	return b
}

func (b *clamp[T]) Min() float64 { return float64(b.min) }

func (b *clamp[T]) SetMin(v float64) error {
	newMin := T(v)
	if float64(b.max) < float64(newMin) {
		return errors.Rangef("Clamp", "SetMin",
			"min %v exceeds max %v", v, float64(b.max))
	}
	b.min = newMin
	b.EmitSignal("minChanged", v)
	return nil
}

func (b *clamp[T]) Max() float64 { return float64(b.max) }

func (b *clamp[T]) SetMax(v float64) error {
	newMax := T(v)
	if float64(newMax) < float64(b.min) {
		return errors.Rangef("Clamp", "SetMax",
			"max %v below min %v", v, float64(b.min))
	}
	b.max = newMax
	b.EmitSignal("maxChanged", v)
	return nil
}

// SetMinAndMax sets both bounds at once so a bound swap never trips the
// ordering validation mid-way.
func (b *clamp[T]) SetMinAndMax(lo, hi float64) error {
	if hi < lo {
		return errors.Rangef("Clamp", "SetMinAndMax",
			"min %v exceeds max %v", lo, hi)
	}
	b.min = T(lo)
	b.max = T(hi)
	b.EmitSignal("minChanged", lo)
	b.EmitSignal("maxChanged", hi)
	return nil
}

func (b *clamp[T]) ClampMin() bool { return b.clampMin }

func (b *clamp[T]) SetClampMin(v bool) {
	b.clampMin = v
	b.EmitSignal("clampMinChanged", v)
}

func (b *clamp[T]) ClampMax() bool { return b.clampMax }

func (b *clamp[T]) SetClampMax(v bool) {
	b.clampMax = v
	b.EmitSignal("clampMaxChanged", v)
}

func (b *clamp[T]) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	typeMin, typeMax := typeLimits[T]()
	lo, hi := typeMin, typeMax
	if b.clampMin {
		lo = b.min
	}
	if b.clampMax {
		hi = b.max
	}

	slots := elems * b.dim
	b.fcn(buffer.View[T](in.Buffer())[:slots], buffer.View[T](out.Buffer())[:slots], lo, hi)

	in.Consume(elems)
	out.Produce(elems)
}
