package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Deinterleaver splits one stream into numOutputs streams by dealing out
// fixed-size chunks round-robin: chunk 0 to output 0, chunk 1 to output 1,
// and so on. The input accepts any convertible dtype; the output dtype is
// fixed at construction. It is the inverse of Interleaver with the same
// geometry.
type Deinterleaver struct {
	block.Base
	outType   dtype.DType
	chunkSize int
}

// NewDeinterleaver creates a deinterleaver producing dt on numOutputs
// streams, dealing chunks of chunkSize elements.
func NewDeinterleaver(dt dtype.DType, numOutputs, chunkSize int) (*Deinterleaver, error) {
	if numOutputs < 1 {
		return nil, errors.InvalidArgumentf("deinterleaver", "NewDeinterleaver",
			"numOutputs must be positive, got %d", numOutputs)
	}
	if chunkSize < 1 {
		return nil, errors.InvalidArgumentf("deinterleaver", "NewDeinterleaver",
			"chunkSize must be positive, got %d", chunkSize)
	}
	b := &Deinterleaver{Base: block.NewBase("deinterleaver"), outType: dt, chunkSize: chunkSize}
	b.SetupInput(0, dtype.DType{})
	for i := 0; i < numOutputs; i++ {
		b.SetupOutput(i, dt)
	}
	return b, nil
}

// ChunkSize returns the per-output chunk length in elements.
func (b *Deinterleaver) ChunkSize() int { return b.chunkSize }

func (b *Deinterleaver) Work() {
	in := b.Input(0)
	numOutputs := b.NumOutputs()
	elemSize := b.outType.ElemSize()

	drainMessages(in, b.Output(0))
	if in.Elements() == 0 {
		return
	}
	in.TakeLabels()

	converted, err := in.Buffer().Convert(b.outType)
	if err != nil {
		b.Logger().Warn("deinterleaver: dropping unconvertible input", "error", err)
		in.Consume(in.Elements())
		return
	}

	numChunks := converted.Elements() / (b.chunkSize * numOutputs)
	for _, out := range b.Outputs() {
		if n := out.Elements() / b.chunkSize; n < numChunks {
			numChunks = n
		}
	}
	if numChunks == 0 {
		converted.Release()
		return
	}

	chunkBytes := b.chunkSize * elemSize
	src := converted.Bytes()
	for chunk := 0; chunk < numChunks; chunk++ {
		for i, out := range b.Outputs() {
			dst := out.Buffer().Bytes()
			off := (chunk*numOutputs + i) * chunkBytes
			copy(dst[chunk*chunkBytes:], src[off:off+chunkBytes])
		}
	}
	for _, out := range b.Outputs() {
		out.Produce(numChunks * b.chunkSize)
	}

	elemsTaken := numChunks * b.chunkSize * numOutputs
	srcBytes := elemsTaken * b.outType.Dimension() * in.Buffer().DType().ScalarSize()
	converted.Release()
	in.Consume(srcBytes)
}
