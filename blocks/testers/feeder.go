package testers

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/google/uuid"
)

type feedItem struct {
	chunk   buffer.Chunk
	message block.Message
	label   *block.Label
}

// Feeder is a source emitting a scripted sequence of buffers, messages,
// and labels, one item per work invocation so downstream blocks see the
// same delivery granularity the script describes.
type Feeder struct {
	block.Base
	queue []feedItem
}

// NewFeeder creates a feeder producing the given dtype.
func NewFeeder(dt dtype.DType) *Feeder {
	b := &Feeder{Base: block.NewBase("feeder")}
	b.SetupOutput(0, dt, uuid.NewString())
	return b
}

// FeedChunk queues a buffer. The feeder takes ownership.
func (b *Feeder) FeedChunk(c buffer.Chunk) {
	b.queue = append(b.queue, feedItem{chunk: c})
}

// FeedMessage queues a message.
func (b *Feeder) FeedMessage(m block.Message) {
	b.queue = append(b.queue, feedItem{message: m})
}

// FeedLabel queues a label. Its index is relative to the elements fed
// after it.
func (b *Feeder) FeedLabel(l block.Label) {
	b.queue = append(b.queue, feedItem{label: &l})
}

// Pending returns the number of unsent items.
func (b *Feeder) Pending() int { return len(b.queue) }

func (b *Feeder) Work() {
	if len(b.queue) == 0 {
		return
	}
	item := b.queue[0]
	b.queue = b.queue[1:]

	out := b.Output(0)
	switch {
	case item.label != nil:
		out.PostLabel(*item.label)
	case item.message != nil:
		out.PostMessage(item.message)
	default:
		out.PostBuffer(item.chunk)
	}
}
