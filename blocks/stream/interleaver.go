package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Interleaver merges numInputs streams into one by alternating fixed-size
// chunks: chunk 0 of input 0, chunk 0 of input 1, and so on. Inputs accept
// any convertible dtype; the output dtype is fixed at construction.
//
// A work invocation moves whole rounds only. Elements left over after the
// last complete round stay queued on their input for the next invocation,
// so alignment across inputs is preserved.
type Interleaver struct {
	block.Base
	outType   dtype.DType
	chunkSize int
}

// NewInterleaver creates an interleaver producing dt, reading numInputs
// streams in chunks of chunkSize elements.
func NewInterleaver(dt dtype.DType, numInputs, chunkSize int) (*Interleaver, error) {
	if numInputs < 1 {
		return nil, errors.InvalidArgumentf("interleaver", "NewInterleaver",
			"numInputs must be positive, got %d", numInputs)
	}
	if chunkSize < 1 {
		return nil, errors.InvalidArgumentf("interleaver", "NewInterleaver",
			"chunkSize must be positive, got %d", chunkSize)
	}
	b := &Interleaver{Base: block.NewBase("interleaver"), outType: dt, chunkSize: chunkSize}
	for i := 0; i < numInputs; i++ {
		b.SetupInput(i, dtype.DType{})
	}
	b.SetupOutput(0, dt)
	return b, nil
}

// ChunkSize returns the per-input chunk length in elements.
func (b *Interleaver) ChunkSize() int { return b.chunkSize }

func (b *Interleaver) Work() {
	out := b.Output(0)
	numInputs := b.NumInputs()
	elemSize := b.outType.ElemSize()

	for _, in := range b.Inputs() {
		drainMessages(in, out)
	}
	for _, in := range b.Inputs() {
		if in.Elements() == 0 {
			return
		}
	}

	converted := make([]buffer.Chunk, numInputs)
	numChunks := out.Elements() / (b.chunkSize * numInputs)
	for i, in := range b.Inputs() {
		in.TakeLabels()
		c, err := in.Buffer().Convert(b.outType)
		if err != nil {
			b.Logger().Warn("interleaver: dropping unconvertible input",
				"input", i, "error", err)
			in.Consume(in.Elements())
			c = buffer.Chunk{}
		}
		converted[i] = c
		if n := c.Elements() / b.chunkSize; n < numChunks {
			numChunks = n
		}
	}
	if numChunks == 0 {
		for _, c := range converted {
			c.Release()
		}
		return
	}

	dst := out.Buffer().Bytes()
	chunkBytes := b.chunkSize * elemSize
	for chunk := 0; chunk < numChunks; chunk++ {
		for i := 0; i < numInputs; i++ {
			off := (chunk*numInputs + i) * chunkBytes
			copy(dst[off:off+chunkBytes], converted[i].Bytes()[chunk*chunkBytes:])
		}
	}
	out.Produce(numChunks * b.chunkSize * numInputs)

	elemsTaken := numChunks * b.chunkSize
	for i, in := range b.Inputs() {
		if converted[i].Length() == 0 {
			converted[i].Release()
			continue
		}
		srcBytes := elemsTaken * b.outType.Dimension() * in.Buffer().DType().ScalarSize()
		converted[i].Release()
		in.Consume(srcBytes)
	}
}
