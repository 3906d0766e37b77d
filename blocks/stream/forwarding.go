package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
)

// drainMessages forwards all queued input messages in FIFO order, ahead
// of the buffer post.
func drainMessages(in *block.InputPort, out *block.OutputPort) {
	for in.HasMessage() {
		out.PostMessage(in.PopMessage())
	}
}

// LabelStripper passively forwards a stream while removing its labels.
// Messages are forwarded untouched.
type LabelStripper struct {
	block.Base
}

// NewLabelStripper creates a label stripper. The ports are unconstrained;
// the output uses a unique domain because of buffer forwarding.
func NewLabelStripper() *LabelStripper {
	b := &LabelStripper{Base: block.NewBase("label_stripper")}
	b.SetupInput(0, dtype.DType{})
	b.SetupOutput(0, dtype.DType{}, b.UID())
	return b
}

func (b *LabelStripper) Work() {
	in := b.Input(0)
	out := b.Output(0)

	drainMessages(in, out)
	in.TakeLabels() // dropped, not propagated

	buff := in.TakeBuffer()
	if buff.Length() == 0 {
		return
	}
	in.Consume(in.Elements())
	out.PostBuffer(buff)
}

// Reinterpret changes the data type of the stream without modifying its
// contents. Buffers are forwarded zero-copy with the dtype swapped.
type Reinterpret struct {
	block.Base
	outType dtype.DType
}

// NewReinterpret creates a reinterpret block producing the given dtype.
func NewReinterpret(dt dtype.DType) *Reinterpret {
	b := &Reinterpret{Base: block.NewBase("reinterpret"), outType: dt}
	b.SetupInput(0, dtype.DType{})
	b.SetupOutput(0, dt, b.UID())
	return b
}

func (b *Reinterpret) Work() {
	in := b.Input(0)
	out := b.Output(0)

	drainMessages(in, out)

	buff := in.TakeBuffer()
	if buff.Length() == 0 {
		return
	}
	in.Consume(in.Elements())
	out.PostBuffer(buff.WithDType(b.outType))
}
