package topology

import (
	"log/slog"
	"sync"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/errors"
	"github.com/c360/streamblocks/metric"
)

type edge struct {
	src     block.Block
	srcPort int
	dst     block.Block
	dstPort int
}

// Topology owns a set of blocks and the connections between their ports,
// and drives their work loops. Buffers move between ports by handle;
// fan-out retains the chunk once per extra destination, relying on the
// read-only input contract.
type Topology struct {
	mu      sync.Mutex
	blocks  []block.Block
	known   map[string]bool
	edges   []edge
	logger  *slog.Logger
	metrics *metric.Metrics
}

// Option configures a Topology.
type Option func(*Topology)

// WithLogger attaches a structured logger, propagated to added blocks.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Topology) { t.logger = logger }
}

// WithMetrics attaches work-loop instrumentation.
func WithMetrics(m *metric.Metrics) Option {
	return func(t *Topology) { t.metrics = m }
}

// New creates an empty topology.
func New(opts ...Option) *Topology {
	t := &Topology{
		known:  make(map[string]bool),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Add attaches a block to the topology. Connect adds its endpoints
// implicitly; Add is for source blocks with no incoming edge.
func (t *Topology) Add(b block.Block) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.add(b)
}

func (t *Topology) add(b block.Block) {
	if t.known[b.UID()] {
		return
	}
	t.known[b.UID()] = true
	t.blocks = append(t.blocks, b)
	if setter, ok := b.(interface{ SetLogger(*slog.Logger) }); ok {
		setter.SetLogger(t.logger.With("block", b.Name(), "uid", b.UID()))
	}
	if t.metrics != nil {
		t.metrics.RecordBlocksActive(len(t.blocks))
	}
}

// Connect wires an output port of src to an input port of dst. Port dtypes
// must agree unless one side is unconstrained.
func (t *Topology) Connect(src block.Block, srcPort int, dst block.Block, dstPort int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if srcPort < 0 || srcPort >= src.NumOutputs() {
		return errors.InvalidArgumentf("Topology", "Connect",
			"%s has no output %d", src.Name(), srcPort)
	}
	if dstPort < 0 || dstPort >= dst.NumInputs() {
		return errors.InvalidArgumentf("Topology", "Connect",
			"%s has no input %d", dst.Name(), dstPort)
	}
	out := src.Outputs()[srcPort]
	in := dst.Inputs()[dstPort]
	if !out.DType().IsUnset() && !in.DType().IsUnset() &&
		out.DType().ElemSize() != in.DType().ElemSize() {
		return errors.InvalidArgumentf("Topology", "Connect",
			"dtype mismatch: %s output %d is %s, %s input %d is %s",
			src.Name(), srcPort, out.DType(), dst.Name(), dstPort, in.DType())
	}

	t.add(src)
	t.add(dst)
	t.edges = append(t.edges, edge{src: src, srcPort: srcPort, dst: dst, dstPort: dstPort})
	return nil
}

// Blocks returns the attached blocks in insertion order.
func (t *Topology) Blocks() []block.Block {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]block.Block(nil), t.blocks...)
}

// flush moves everything posted on src's output ports to the connected
// inputs. Label indexes shift by the destination backlog so they stay
// relative to the input's front.
func (t *Topology) flush(src block.Block) {
	for port, out := range src.Outputs() {
		var dsts []edge
		for _, e := range t.edges {
			if e.src == src && e.srcPort == port {
				dsts = append(dsts, e)
			}
		}
		if len(dsts) == 0 {
			// Unconnected output: release so buffers never leak.
			for _, c := range out.TakePosted() {
				c.Release()
			}
			out.TakeMessages()
			out.TakeLabels()
			continue
		}

		chunks := out.TakePosted()
		messages := out.TakeMessages()
		labels := out.TakeLabels()
		for i, e := range dsts {
			in := e.dst.Inputs()[e.dstPort]
			backlog := in.Elements()
			for _, l := range labels {
				l.Index += backlog
				in.DeliverLabel(l)
			}
			for _, c := range chunks {
				if i < len(dsts)-1 {
					c = c.Retain()
				}
				in.Deliver(c)
			}
			for _, m := range messages {
				in.DeliverMessage(m)
			}
		}
	}
}

func portTotals(b block.Block) (consumed, produced uint64) {
	for _, in := range b.Inputs() {
		consumed += in.TotalConsumed()
	}
	for _, out := range b.Outputs() {
		produced += out.TotalProduced()
	}
	return consumed, produced
}

// step runs one work invocation on b and flushes its outputs. It reports
// whether the invocation moved any elements, messages, or buffers.
func (t *Topology) step(b block.Block) bool {
	beforeC, beforeP := portTotals(b)
	b.Work()
	afterC, afterP := portTotals(b)

	moved := afterC != beforeC || afterP != beforeP
	for _, out := range b.Outputs() {
		if out.HasPosted() {
			moved = true
		}
	}
	t.flush(b)

	if t.metrics != nil {
		t.metrics.RecordWork(b.Name(), afterC-beforeC, afterP-beforeP)
	}
	return moved
}

// RunUntilIdle drives every block round-robin on the calling goroutine
// until a full pass makes no progress. Tests and batch pipelines use it to
// settle a topology deterministically.
func (t *Topology) RunUntilIdle() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for {
		progress := false
		for _, b := range t.blocks {
			if t.step(b) {
				progress = true
			}
		}
		if !progress {
			return
		}
	}
}

// Activate invokes Activate on every block implementing Activator.
func (t *Topology) Activate() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, b := range t.blocks {
		if a, ok := b.(block.Activator); ok {
			if err := a.Activate(); err != nil {
				return errors.Wrap(err, "Topology", "Activate", b.Name())
			}
		}
	}
	return nil
}

// Deactivate invokes Deactivate on every block implementing Deactivator,
// in reverse insertion order.
func (t *Topology) Deactivate() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	var firstErr error
	for i := len(t.blocks) - 1; i >= 0; i-- {
		if d, ok := t.blocks[i].(block.Deactivator); ok {
			if err := d.Deactivate(); err != nil && firstErr == nil {
				firstErr = errors.Wrap(err, "Topology", "Deactivate", t.blocks[i].Name())
			}
		}
	}
	return firstErr
}
