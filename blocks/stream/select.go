package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/google/uuid"
)

// Select forwards one of its inputs to the output and discards the rest.
// The active input is chosen at runtime through SetSelected. Streams on
// non-selected inputs are consumed so upstream blocks never stall.
type Select struct {
	block.Base
	selected int
}

// NewSelect creates a selector with numInputs inputs of the given dtype.
func NewSelect(dt dtype.DType, numInputs int) (*Select, error) {
	if numInputs < 1 {
		return nil, errors.InvalidArgumentf("select", "NewSelect",
			"numInputs must be positive, got %d", numInputs)
	}
	b := &Select{Base: block.NewBase("select")}
	for i := 0; i < numInputs; i++ {
		b.SetupInput(i, dt)
	}
	b.SetupOutput(0, dt, uuid.NewString())
	b.RegisterSignal("selectedChanged")
	return b, nil
}

// Selected returns the index of the forwarded input.
func (b *Select) Selected() int { return b.selected }

// SetSelected changes the forwarded input.
func (b *Select) SetSelected(index int) error {
	if index < 0 || index >= b.NumInputs() {
		return errors.Rangef("select", "SetSelected",
			"index %d out of range [0, %d)", index, b.NumInputs())
	}
	b.selected = index
	b.EmitSignal("selectedChanged", index)
	return nil
}

func (b *Select) Work() {
	out := b.Output(0)
	for i, in := range b.Inputs() {
		if i == b.selected {
			drainMessages(in, out)
			buff := in.TakeBuffer()
			if buff.Elements() > 0 {
				for _, l := range in.TakeLabels() {
					if l.Index < buff.Elements() {
						out.PostLabel(l)
					}
				}
				in.Consume(buff.Elements())
				out.PostBuffer(buff)
			}
			continue
		}
		// Drop data on inactive inputs.
		for in.HasMessage() {
			in.PopMessage()
		}
		in.TakeLabels()
		n := in.Elements()
		if n > 0 {
			in.TakeBuffer().Release()
			in.Consume(n)
		}
	}
}
