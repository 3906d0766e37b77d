package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
)

// Mute forwards the input stream when not muted and outputs zeros when
// muted. The zeroed contents are written into a buffer the block uniquely
// owns, never into a forwarded one.
type Mute struct {
	block.Base
	elemSize int
	mute     bool
}

// NewMute creates a mute block for the given dtype.
func NewMute(dt dtype.DType) *Mute {
	b := &Mute{Base: block.NewBase("mute"), elemSize: dt.ElemSize()}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	b.RegisterSignal("muteChanged")
	return b
}

// Muted returns whether the stream is currently muted
func (b *Mute) Muted() bool { return b.mute }

// SetMute toggles muting and fires the change notification
func (b *Mute) SetMute(mute bool) {
	b.mute = mute
	b.EmitSignal("muteChanged", mute)
}

func (b *Mute) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	bytes := elems * b.elemSize
	dst := out.Buffer().Bytes()[:bytes]
	if b.mute {
		clear(dst)
	} else {
		copy(dst, in.Buffer().Bytes()[:bytes])
	}

	in.Consume(elems)
	out.Produce(elems)
}
