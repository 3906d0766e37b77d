package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
)

// Packet is a message payload carrying a buffer with optional labels,
// forwarded out-of-band alongside stream data.
type Packet struct {
	Payload buffer.Chunk
	Labels  []block.Label
}

// Converter converts an input stream of any type into a fixed output
// dtype. Packet messages are converted in place of their payloads; labels
// reference element indexes and stay unchanged.
type Converter struct {
	block.Base
	outType dtype.DType
}

// NewConverter creates a converter producing the given dtype.
func NewConverter(dt dtype.DType) *Converter {
	b := &Converter{Base: block.NewBase("converter"), outType: dt}
	b.SetupInput(0, dtype.DType{})
	b.SetupOutput(0, dt)
	return b
}

func (b *Converter) Work() {
	in := b.Input(0)
	out := b.Output(0)

	for in.HasMessage() {
		msg := in.PopMessage()
		if pkt, ok := msg.(Packet); ok {
			if converted, err := pkt.Payload.Convert(b.outType); err == nil {
				pkt.Payload = converted
			}
			out.PostMessage(pkt)
			continue
		}
		out.PostMessage(msg)
	}

	buff := in.Buffer()
	if buff.Length() == 0 {
		return
	}

	converted, err := buff.Convert(b.outType)
	if err != nil {
		// Unconvertible payloads are dropped; construction constrains the
		// output side, the input dtype is data-dependent.
		b.Logger().Warn("converter: dropping unconvertible buffer",
			"from", buff.DType().String(), "to", b.outType.String(), "error", err)
		in.Consume(in.Elements())
		return
	}

	elems := min(converted.Elements(), out.Elements())
	if elems == 0 {
		converted.Release()
		return
	}

	copy(out.Buffer().Bytes(), converted.Bytes()[:elems*b.outType.ElemSize()])
	out.Produce(elems)
	converted.Release()

	// Consume the original bytes behind the converted elements. The input
	// port is unconstrained, so positions are in bytes; labels rescale to
	// output element indexes.
	perElem := b.outType.Dimension() * buff.DType().ScalarSize()
	srcBytes := elems * perElem
	if srcBytes > in.Elements() {
		srcBytes = in.Elements()
	}
	for _, l := range in.TakeLabelsBelow(srcBytes) {
		out.PostLabel(l.ToAdjusted(1, perElem))
	}
	in.Consume(srcBytes)
}
