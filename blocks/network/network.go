// Package network provides NATS endpoint blocks carrying raw typed
// buffers between topologies. A published message holds the element
// bytes; a header names the dtype so a subscriber can convert when its
// output expects something else.
package network

import (
	"sync"

	"github.com/nats-io/nats.go"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/natsclient"
)

// dtypeHeader carries the canonical dtype name of the payload.
const dtypeHeader = "Streamblocks-Dtype"

// Publisher is a sink publishing every buffer it receives to a NATS
// subject.
type Publisher struct {
	block.Base
	client  *natsclient.Client
	subject string
}

// NewPublisher creates a publisher for the given dtype and subject.
func NewPublisher(dt dtype.DType, client *natsclient.Client, subject string) (*Publisher, error) {
	if client == nil {
		return nil, errors.InvalidArgumentf("Publisher", "NewPublisher", "client is nil")
	}
	if subject == "" {
		return nil, errors.InvalidArgumentf("Publisher", "NewPublisher", "subject is empty")
	}
	b := &Publisher{Base: block.NewBase("nats_publisher"), client: client, subject: subject}
	b.SetupInput(0, dt)
	return b, nil
}

func (b *Publisher) Work() {
	in := b.Input(0)
	elems := in.Elements()
	if elems == 0 {
		return
	}

	data := in.Buffer().Bytes()[:elems*in.DType().ElemSize()]
	msg := &nats.Msg{
		Subject: b.subject,
		Header:  nats.Header{dtypeHeader: []string{in.DType().String()}},
		Data:    append([]byte(nil), data...),
	}
	if err := b.client.PublishMsg(msg); err != nil {
		// Leave the elements queued and retry on the next invocation.
		b.Logger().Warn("publish failed", "subject", b.subject, "error", err)
		return
	}
	in.Consume(elems)
}

// Subscriber is a source emitting buffers received on a NATS subject.
// Payloads arriving with a different dtype are converted to the output
// type; unconvertible payloads are dropped with a log line.
type Subscriber struct {
	block.Base
	client  *natsclient.Client
	subject string
	outType dtype.DType

	mu      sync.Mutex
	backlog []*nats.Msg
	active  bool
}

// NewSubscriber creates a subscriber producing the given dtype.
func NewSubscriber(dt dtype.DType, client *natsclient.Client, subject string) (*Subscriber, error) {
	if client == nil {
		return nil, errors.InvalidArgumentf("Subscriber", "NewSubscriber", "client is nil")
	}
	if subject == "" {
		return nil, errors.InvalidArgumentf("Subscriber", "NewSubscriber", "subject is empty")
	}
	b := &Subscriber{
		Base:    block.NewBase("nats_subscriber"),
		client:  client,
		subject: subject,
		outType: dt,
	}
	b.SetupOutput(0, dt)
	return b, nil
}

// Activate subscribes to the subject. Messages queue on an internal
// backlog until the work loop emits them.
func (b *Subscriber) Activate() error {
	b.mu.Lock()
	if b.active {
		b.mu.Unlock()
		return nil
	}
	b.active = true
	b.mu.Unlock()

	return b.client.Subscribe(b.subject, func(msg *nats.Msg) {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.active {
			b.backlog = append(b.backlog, msg)
		}
	})
}

// Deactivate stops queuing messages; the client owns the subscription
// and drops it on Close.
func (b *Subscriber) Deactivate() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
	b.backlog = nil
	return nil
}

func (b *Subscriber) Work() {
	b.mu.Lock()
	backlog := b.backlog
	b.backlog = nil
	b.mu.Unlock()

	out := b.Output(0)
	for _, msg := range backlog {
		srcType := b.outType
		if name := msg.Header.Get(dtypeHeader); name != "" {
			parsed, err := dtype.Parse(name)
			if err != nil {
				b.Logger().Warn("dropping message with unknown dtype",
					"subject", b.subject, "dtype", name)
				continue
			}
			srcType = parsed
		}

		chunk := buffer.FromBytes(srcType, msg.Data)
		if srcType.WithDimension(1).Kind() != b.outType.WithDimension(1).Kind() {
			converted, err := chunk.Convert(b.outType)
			chunk.Release()
			if err != nil {
				b.Logger().Warn("dropping unconvertible message",
					"subject", b.subject, "from", srcType.String(), "error", err)
				continue
			}
			chunk = converted
		}
		out.PostBuffer(chunk)
	}
}
