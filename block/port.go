package block

import (
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Message is an out-of-band structured payload queued alongside stream
// data on a port. Messages preserve FIFO order within one port but have no
// defined ordering relative to the port's stream data.
type Message any

// Label is positional metadata attached to a stream index.
type Label struct {
	ID    string
	Index int
	Width int
}

// ToAdjusted scales the label position between element-size domains:
// the index is multiplied then divided, matching a dtype conversion of
// the underlying stream.
func (l Label) ToAdjusted(mult, div int) Label {
	l.Index = l.Index * mult / div
	if l.Width > 0 {
		l.Width = l.Width * mult / div
		if l.Width == 0 {
			l.Width = 1
		}
	}
	return l
}

// InputPort is a block's receiving endpoint. Elements arrive in strict
// FIFO order; delivery coalesces partial buffers so a block always sees
// its full backlog as one contiguous view.
type InputPort struct {
	index int
	name  string
	dt    dtype.DType

	chunk          buffer.Chunk
	availableBytes int
	reserve        int
	totalConsumed  uint64

	messages []Message
	labels   []Label
}

// Index returns the port's position in the block's input list
func (p *InputPort) Index() int { return p.index }

// Name returns the port name, which defaults to the decimal index
func (p *InputPort) Name() string { return p.name }

// DType returns the bound data type; the zero DType means unconstrained
func (p *InputPort) DType() dtype.DType { return p.dt }

func (p *InputPort) elemSize() int { return p.dt.ElemSize() }

// Elements returns the available element count. Unconstrained ports
// count bytes.
func (p *InputPort) Elements() int {
	return p.availableBytes / p.elemSize()
}

// effectiveElements is Elements masked by the port reserve
func (p *InputPort) effectiveElements() int {
	elems := p.Elements()
	if elems < p.reserve {
		return 0
	}
	return elems
}

// Buffer returns the port's current buffer view without transferring
// ownership. The view must not be mutated.
func (p *InputPort) Buffer() buffer.Chunk {
	return p.chunk
}

// TakeBuffer transfers ownership of the current buffer out of the port
// for zero-copy forwarding. The caller still consumes the elements it
// disposed of; TakeBuffer only moves the payload handle.
func (p *InputPort) TakeBuffer() buffer.Chunk {
	c := p.chunk
	p.chunk = buffer.Chunk{}
	return c
}

// Consume removes n elements from the front of the port. It panics with a
// classified internal error when n exceeds the available elements; that is
// a block programming error, never a data-dependent condition.
func (p *InputPort) Consume(n int) {
	bytes := n * p.elemSize()
	if bytes > p.availableBytes {
		panic(errors.Internalf("InputPort", "Consume",
			"%w: consume %d of %d available on port %s",
			errors.ErrOverConsume, n, p.Elements(), p.name))
	}
	p.availableBytes -= bytes
	p.totalConsumed += uint64(n)
	if p.chunk.Length() > 0 {
		p.chunk = p.chunk.Slice(bytes)
	}
	if len(p.labels) > 0 {
		kept := p.labels[:0]
		for _, l := range p.labels {
			if l.Index >= n {
				l.Index -= n
				kept = append(kept, l)
			}
		}
		p.labels = kept
	}
}

// TotalConsumed returns the running count of consumed elements
func (p *InputPort) TotalConsumed() uint64 { return p.totalConsumed }

// SetReserve declares the minimum element count required before the
// block's Work proceeds. Zero clears the reserve.
func (p *InputPort) SetReserve(n int) {
	if n < 0 {
		n = 0
	}
	p.reserve = n
}

// Reserve returns the current reserve
func (p *InputPort) Reserve() int { return p.reserve }

// Deliver appends a buffer to the port. The first delivery adopts the
// chunk zero-copy; deliveries on top of an undrained backlog coalesce
// into a fresh contiguous allocation.
func (p *InputPort) Deliver(c buffer.Chunk) {
	if c.Length() == 0 {
		return
	}
	p.availableBytes += c.Length()
	if p.chunk.Length() == 0 {
		p.chunk = c
		return
	}
	merged := concatChunks(p.chunk, c)
	p.chunk.Release()
	c.Release()
	p.chunk = merged
}

func concatChunks(a, b buffer.Chunk) buffer.Chunk {
	data := make([]byte, 0, a.Length()+b.Length())
	data = append(data, a.Bytes()...)
	data = append(data, b.Bytes()...)
	return buffer.FromBytes(b.DType(), data)
}

// HasMessage reports whether the port has a queued message
func (p *InputPort) HasMessage() bool { return len(p.messages) > 0 }

// PopMessage removes and returns the oldest queued message
func (p *InputPort) PopMessage() Message {
	if len(p.messages) == 0 {
		return nil
	}
	m := p.messages[0]
	p.messages = p.messages[1:]
	return m
}

// DeliverMessage appends a message to the port's FIFO queue
func (p *InputPort) DeliverMessage(m Message) {
	p.messages = append(p.messages, m)
}

// Labels returns the pending labels ordered by index
func (p *InputPort) Labels() []Label { return p.labels }

// TakeLabels removes and returns all pending labels
func (p *InputPort) TakeLabels() []Label {
	l := p.labels
	p.labels = nil
	return l
}

// TakeLabelsBelow removes and returns the labels positioned before element
// index n. Labels at or past n stay queued; Consume shifts them when the
// elements ahead of them are removed.
func (p *InputPort) TakeLabelsBelow(n int) []Label {
	i := 0
	for i < len(p.labels) && p.labels[i].Index < n {
		i++
	}
	taken := append([]Label(nil), p.labels[:i]...)
	p.labels = p.labels[i:]
	return taken
}

// DeliverLabel appends a label, keeping the queue ordered by index
func (p *InputPort) DeliverLabel(l Label) {
	i := len(p.labels)
	for i > 0 && p.labels[i-1].Index > l.Index {
		i--
	}
	p.labels = append(p.labels, Label{})
	copy(p.labels[i+1:], p.labels[i:])
	p.labels[i] = l
}

// OutputPort is a block's producing endpoint. It owns a writable buffer
// allocated from a pool sized to the port's capacity; Produce publishes
// the written prefix downstream, PostBuffer forwards a foreign buffer
// zero-copy.
type OutputPort struct {
	index  int
	name   string
	dt     dtype.DType
	domain string

	pool     *buffer.Pool
	capacity int
	cur      buffer.Chunk
	written  int
	reserve  int

	posted        []buffer.Chunk
	messages      []Message
	labels        []Label
	totalProduced uint64
}

// DefaultCapacity is the buffer-size hint used when the topology does not
// negotiate one: the element count of each writable buffer.
const DefaultCapacity = 4096

// Index returns the port's position in the block's output list
func (p *OutputPort) Index() int { return p.index }

// Name returns the port name, which defaults to the decimal index
func (p *OutputPort) Name() string { return p.name }

// DType returns the bound data type
func (p *OutputPort) DType() dtype.DType { return p.dt }

// Domain returns the buffer domain tag. Forwarding blocks use a unique
// domain per instance so the host knows the port hands off foreign buffers.
func (p *OutputPort) Domain() string { return p.domain }

// SetCapacity renegotiates the per-buffer element capacity. Effective on
// the next buffer; the current writable buffer keeps its size.
func (p *OutputPort) SetCapacity(elems int) {
	if elems < 1 {
		elems = 1
	}
	p.capacity = elems
	p.pool = buffer.NewPool(elems * p.dt.ElemSize())
}

// Capacity returns the per-buffer element capacity
func (p *OutputPort) Capacity() int { return p.capacity }

func (p *OutputPort) ensure() {
	if p.cur.Length() == 0 && p.written == 0 {
		p.cur = p.pool.Get(p.dt, p.capacity)
	}
}

// Elements returns the remaining writable element count in the current
// buffer.
func (p *OutputPort) Elements() int {
	p.ensure()
	return p.capacity - p.written
}

func (p *OutputPort) effectiveElements() int {
	elems := p.Elements()
	if elems < p.reserve {
		return 0
	}
	return elems
}

// Buffer returns the writable region of the current buffer. Write at most
// Elements() elements, then call Produce.
func (p *OutputPort) Buffer() buffer.Chunk {
	p.ensure()
	return p.cur.Slice(p.written * p.dt.ElemSize())
}

// Produce publishes the next n written elements downstream. It panics
// with a classified internal error when n exceeds the remaining capacity.
func (p *OutputPort) Produce(n int) {
	if n == 0 {
		return
	}
	p.ensure()
	if n > p.capacity-p.written {
		panic(errors.Internalf("OutputPort", "Produce",
			"%w: produce %d with %d remaining on port %s",
			errors.ErrOverProduce, n, p.capacity-p.written, p.name))
	}
	view := p.cur.Slice(p.written * p.dt.ElemSize()).SetElements(n).Retain()
	p.posted = append(p.posted, view)
	p.written += n
	p.totalProduced += uint64(n)
	if p.written == p.capacity {
		p.cur.Release()
		p.cur = buffer.Chunk{}
		p.written = 0
	}
}

// PostBuffer forwards a buffer downstream without copying. Ownership of
// the chunk transfers to the port.
func (p *OutputPort) PostBuffer(c buffer.Chunk) {
	if c.Length() == 0 {
		return
	}
	p.totalProduced += uint64(c.Length() / p.dt.ElemSize())
	p.posted = append(p.posted, c)
}

// PostMessage queues a message for downstream delivery in FIFO order
func (p *OutputPort) PostMessage(m Message) {
	p.messages = append(p.messages, m)
}

// PostLabel queues a label for downstream delivery
func (p *OutputPort) PostLabel(l Label) {
	p.labels = append(p.labels, l)
}

// SetReserve declares the minimum writable element count required before
// the block's Work proceeds. Zero clears the reserve.
func (p *OutputPort) SetReserve(n int) {
	if n < 0 {
		n = 0
	}
	p.reserve = n
}

// Reserve returns the current reserve
func (p *OutputPort) Reserve() int { return p.reserve }

// TotalProduced returns the running count of produced elements
func (p *OutputPort) TotalProduced() uint64 { return p.totalProduced }

// HasPosted reports whether posted buffers are waiting for pickup
func (p *OutputPort) HasPosted() bool { return len(p.posted) > 0 }

// TakePosted drains the buffers queued for downstream delivery.
// The caller (host scheduler or topology runner) owns the returned chunks.
func (p *OutputPort) TakePosted() []buffer.Chunk {
	out := p.posted
	p.posted = nil
	return out
}

// TakeMessages drains the messages queued for downstream delivery
func (p *OutputPort) TakeMessages() []Message {
	out := p.messages
	p.messages = nil
	return out
}

// TakeLabels drains the labels queued for downstream delivery
func (p *OutputPort) TakeLabels() []Label {
	out := p.labels
	p.labels = nil
	return out
}
