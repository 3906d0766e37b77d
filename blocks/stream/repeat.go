package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Repeat duplicates every input element repeatCount times on the output.
type Repeat struct {
	block.Base
	repeatCount int
}

// NewRepeat creates a block emitting each element repeatCount times.
func NewRepeat(dt dtype.DType, repeatCount int) (*Repeat, error) {
	if repeatCount < 1 {
		return nil, errors.InvalidArgumentf("Repeat", "NewRepeat",
			"repeatCount must be positive, got %d", repeatCount)
	}
	b := &Repeat{Base: block.NewBase("repeat"), repeatCount: repeatCount}
	b.SetupInput(0, dt)
	out := b.SetupOutput(0, dt)
	out.SetReserve(repeatCount)
	return b, nil
}

// RepeatCount returns the duplication factor.
func (b *Repeat) RepeatCount() int { return b.repeatCount }

func (b *Repeat) Work() {
	in := b.Input(0)
	out := b.Output(0)
	drainMessages(in, out)

	elems := in.Elements()
	if n := out.Elements() / b.repeatCount; n < elems {
		elems = n
	}
	if elems == 0 {
		return
	}

	elemSize := in.DType().ElemSize()
	src := in.Buffer().Bytes()
	dst := out.Buffer().Bytes()
	for i := 0; i < elems; i++ {
		elem := src[i*elemSize : (i+1)*elemSize]
		for r := 0; r < b.repeatCount; r++ {
			copy(dst[(i*b.repeatCount+r)*elemSize:], elem)
		}
	}

	for _, l := range in.TakeLabelsBelow(elems) {
		out.PostLabel(l.ToAdjusted(b.repeatCount, 1))
	}

	in.Consume(elems)
	out.Produce(elems * b.repeatCount)
}
