package testers

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
)

// Collector is a sink accumulating everything delivered to it: stream
// bytes in arrival order, messages, and labels with indexes rebased onto
// the collected stream.
type Collector struct {
	block.Base
	dt       dtype.DType
	data     []byte
	messages []block.Message
	labels   []block.Label
}

// NewCollector creates a collector accepting the given dtype. An unset
// dtype collects raw bytes from any upstream.
func NewCollector(dt dtype.DType) *Collector {
	b := &Collector{Base: block.NewBase("collector"), dt: dt}
	b.SetupInput(0, dt)
	return b
}

func (b *Collector) Work() {
	in := b.Input(0)
	for in.HasMessage() {
		b.messages = append(b.messages, in.PopMessage())
	}

	collected := len(b.data) / b.elemSize()
	for _, l := range in.TakeLabels() {
		l.Index += collected
		b.labels = append(b.labels, l)
	}

	elems := in.Elements()
	if elems == 0 {
		return
	}
	b.data = append(b.data, in.Buffer().Bytes()[:elems*b.elemSize()]...)
	in.Consume(elems)
}

func (b *Collector) elemSize() int { return b.dt.ElemSize() }

// Bytes returns the collected stream payload.
func (b *Collector) Bytes() []byte { return b.data }

// Elements returns the number of collected elements.
func (b *Collector) Elements() int { return len(b.data) / b.elemSize() }

// Chunk copies the collected payload into a fresh chunk for typed views.
func (b *Collector) Chunk() buffer.Chunk {
	return buffer.FromBytes(b.dt, append([]byte(nil), b.data...))
}

// Messages returns the collected messages in arrival order.
func (b *Collector) Messages() []block.Message { return b.messages }

// Labels returns the collected labels, indexes relative to the start of
// the collected stream.
func (b *Collector) Labels() []block.Label { return b.labels }

// Reset discards everything collected so far.
func (b *Collector) Reset() {
	b.data = nil
	b.messages = nil
	b.labels = nil
}

// Values returns the collected stream of a typed collector.
func Values[T buffer.Element](b *Collector) []T {
	c := b.Chunk()
	defer c.Release()
	return append([]T(nil), buffer.View[T](c)...)
}
