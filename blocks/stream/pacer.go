package stream

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Pacer throttles a stream to a target element rate. Elements beyond the
// rate stay queued on the input; messages pass through unpaced. Work never
// blocks, it forwards whatever the token bucket currently admits.
type Pacer struct {
	block.Base
	limiter *rate.Limiter
}

// NewPacer creates a pacer forwarding at most elementsPerSecond elements
// per second, with bursts up to burst elements.
func NewPacer(dt dtype.DType, elementsPerSecond float64, burst int) (*Pacer, error) {
	if elementsPerSecond <= 0 {
		return nil, errors.InvalidArgumentf("Pacer", "NewPacer",
			"elementsPerSecond must be positive, got %v", elementsPerSecond)
	}
	if burst < 1 {
		return nil, errors.InvalidArgumentf("Pacer", "NewPacer",
			"burst must be positive, got %d", burst)
	}
	b := &Pacer{
		Base:    block.NewBase("pacer"),
		limiter: rate.NewLimiter(rate.Limit(elementsPerSecond), burst),
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	return b, nil
}

// Rate returns the target element rate per second.
func (b *Pacer) Rate() float64 { return float64(b.limiter.Limit()) }

// SetRate retargets the element rate without dropping queued elements.
func (b *Pacer) SetRate(elementsPerSecond float64) error {
	if elementsPerSecond <= 0 {
		return errors.Rangef("Pacer", "SetRate",
			"elementsPerSecond must be positive, got %v", elementsPerSecond)
	}
	b.limiter.SetLimit(rate.Limit(elementsPerSecond))
	return nil
}

func (b *Pacer) Work() {
	in := b.Input(0)
	out := b.Output(0)
	drainMessages(in, out)

	elems := in.Elements()
	if n := out.Elements(); n < elems {
		elems = n
	}
	if allowed := int(b.limiter.Tokens()); allowed < elems {
		elems = allowed
	}
	if elems <= 0 {
		return
	}
	b.limiter.AllowN(time.Now(), elems)

	n := elems * in.DType().ElemSize()
	copy(out.Buffer().Bytes()[:n], in.Buffer().Bytes()[:n])
	for _, l := range in.TakeLabelsBelow(elems) {
		out.PostLabel(l)
	}
	in.Consume(elems)
	out.Produce(elems)
}
