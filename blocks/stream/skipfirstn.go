package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/google/uuid"
)

// SkipFirstN discards the first numElements elements of its stream and
// forwards everything after, complementing FirstN with the same window.
// While fewer than numElements are queued the block reserves the full
// window on its input and consumes nothing. Once the skip completes the
// block is a zero-copy pass-through. Reset rearms the skip.
type SkipFirstN struct {
	block.Base
	numElements int
	done        bool
}

// NewSkipFirstN creates a block dropping the first numElements elements.
func NewSkipFirstN(dt dtype.DType, numElements int) (*SkipFirstN, error) {
	if numElements < 0 {
		return nil, errors.InvalidArgumentf("SkipFirstN", "NewSkipFirstN",
			"numElements must be non-negative, got %d", numElements)
	}
	b := &SkipFirstN{
		Base:        block.NewBase("skipfirstn"),
		numElements: numElements,
		done:        numElements == 0,
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt, uuid.NewString())
	return b, nil
}

// NumElements returns the skip length.
func (b *SkipFirstN) NumElements() int { return b.numElements }

// Reset rearms the skip so the next elements are discarded again.
func (b *SkipFirstN) Reset() {
	b.done = b.numElements == 0
	b.Input(0).SetReserve(0)
}

func (b *SkipFirstN) Work() {
	in := b.Input(0)
	out := b.Output(0)
	drainMessages(in, out)

	elems := in.Elements()
	if elems == 0 {
		return
	}

	if b.done {
		buff := in.TakeBuffer()
		for _, l := range in.TakeLabels() {
			out.PostLabel(l)
		}
		out.PostBuffer(buff)
		in.Consume(elems)
		return
	}
	if elems < b.numElements {
		in.SetReserve(b.numElements)
		return
	}

	skip := b.numElements
	if pass := elems - skip; pass > 0 {
		buff := in.TakeBuffer().Slice(skip * in.DType().ElemSize())
		for _, l := range in.TakeLabels() {
			if l.Index >= skip {
				l.Index -= skip
				out.PostLabel(l)
			}
		}
		out.PostBuffer(buff)
	} else {
		in.TakeLabels()
		in.TakeBuffer().Release()
	}
	b.done = true
	in.SetReserve(0)
	in.Consume(elems)
}
