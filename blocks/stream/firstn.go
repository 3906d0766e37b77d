package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/google/uuid"
)

// FirstN forwards the first numElements elements of its stream in a single
// posting and then discards the remainder. While fewer than numElements
// are queued the block reserves the full window on its input and forwards
// nothing. Reset rearms the window.
//
// The pass-through is zero-copy: the delivered buffer is truncated to the
// window and posted as-is.
type FirstN struct {
	block.Base
	numElements int
	done        bool
}

// NewFirstN creates a block forwarding the first numElements elements.
func NewFirstN(dt dtype.DType, numElements int) (*FirstN, error) {
	if numElements < 0 {
		return nil, errors.InvalidArgumentf("FirstN", "NewFirstN",
			"numElements must be non-negative, got %d", numElements)
	}
	b := &FirstN{
		Base:        block.NewBase("firstn"),
		numElements: numElements,
		done:        numElements == 0,
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt, uuid.NewString())
	return b, nil
}

// NumElements returns the window length.
func (b *FirstN) NumElements() int { return b.numElements }

// Remaining returns how many elements the window still admits.
func (b *FirstN) Remaining() int {
	if b.done {
		return 0
	}
	return b.numElements
}

// Reset rearms the window so the next elements pass through again.
func (b *FirstN) Reset() {
	b.done = b.numElements == 0
	b.Input(0).SetReserve(0)
}

func (b *FirstN) Work() {
	in := b.Input(0)
	out := b.Output(0)
	drainMessages(in, out)

	elems := in.Elements()
	if elems == 0 {
		return
	}
	if b.done {
		in.TakeLabels()
		in.TakeBuffer().Release()
		in.Consume(elems)
		return
	}
	if elems < b.numElements {
		in.SetReserve(b.numElements)
		return
	}

	buff := in.TakeBuffer().SetElements(b.numElements)
	for _, l := range in.TakeLabels() {
		if l.Index < b.numElements {
			out.PostLabel(l)
		}
	}
	out.PostBuffer(buff)
	b.done = true
	in.SetReserve(0)
	in.Consume(elems)
}
