package block

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// Block is a single dataflow processing unit: typed input/output ports
// and a Work callback driven by the host scheduler.
type Block interface {
	Name() string
	UID() string
	Inputs() []*InputPort
	Outputs() []*OutputPort
	NumInputs() int
	NumOutputs() int
	Work()
}

// Activator is implemented by blocks that prepare state when the
// topology activates, before the first Work invocation.
type Activator interface {
	Activate() error
}

// Deactivator is implemented by blocks that release resources when the
// topology deactivates.
type Deactivator interface {
	Deactivate() error
}

// Resetter is implemented by blocks whose running state can be restored
// to initial conditions, typically on topology re-activation. Reset is
// idempotent.
type Resetter interface {
	Reset()
}

// WorkInfo carries the per-invocation port aggregates a block uses to
// decide whether to do useful work. All counts are masked by port
// reserves: a port below its reserve contributes zero.
type WorkInfo struct {
	// MinInElements is the minimum available element count across all
	// input ports. Unconstrained ports count bytes.
	MinInElements int
	// MinOutElements is the minimum writable element count across all
	// output ports.
	MinOutElements int
	// MinElements is the minimum across both sides: the largest unit of
	// work satisfiable on every port at once.
	MinElements int
	// MinAllElements equals MinElements; reduction blocks that must make
	// equal progress on every port read this alias.
	MinAllElements int
}

// Base provides port setup, work-info computation, identity, logging, and
// change-notification signals. Concrete blocks embed it and implement Work.
type Base struct {
	name    string
	uid     string
	ins     []*InputPort
	outs    []*OutputPort
	inName  map[string]*InputPort
	outName map[string]*OutputPort
	signals map[string][]func(any)
	logger  *slog.Logger
}

// NewBase creates the embedded base for a block with the given name.
func NewBase(name string) Base {
	return Base{
		name:    name,
		uid:     uuid.NewString(),
		inName:  make(map[string]*InputPort),
		outName: make(map[string]*OutputPort),
		signals: make(map[string][]func(any)),
		logger:  slog.Default(),
	}
}

// Name returns the block's registered name
func (b *Base) Name() string { return b.name }

// UID returns the per-instance unique identifier. Forwarding blocks use
// it as the domain of their output ports.
func (b *Base) UID() string { return b.uid }

// SetLogger replaces the block's logger; nil restores the default.
func (b *Base) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	b.logger = logger
}

// Logger returns the block's structured logger
func (b *Base) Logger() *slog.Logger { return b.logger }

// SetupInput declares the next input port. A zero DType leaves the port
// unconstrained. The index must equal the current input count.
func (b *Base) SetupInput(index int, dt dtype.DType) *InputPort {
	return b.SetupNamedInput(index, "", dt)
}

// SetupNamedInput declares the next input port with an explicit name.
func (b *Base) SetupNamedInput(index int, name string, dt dtype.DType) *InputPort {
	if index != len(b.ins) {
		panic(errors.Internalf(b.name, "SetupInput",
			"ports must be declared in order: got index %d, want %d", index, len(b.ins)))
	}
	if name == "" {
		name = portName(index)
	}
	p := &InputPort{index: index, name: name, dt: dt}
	b.ins = append(b.ins, p)
	b.inName[name] = p
	return p
}

// SetupOutput declares the next output port. An optional domain tag marks
// the port as forwarding foreign buffers.
func (b *Base) SetupOutput(index int, dt dtype.DType, domain ...string) *OutputPort {
	return b.SetupNamedOutput(index, "", dt, domain...)
}

// SetupNamedOutput declares the next output port with an explicit name.
func (b *Base) SetupNamedOutput(index int, name string, dt dtype.DType, domain ...string) *OutputPort {
	if index != len(b.outs) {
		panic(errors.Internalf(b.name, "SetupOutput",
			"ports must be declared in order: got index %d, want %d", index, len(b.outs)))
	}
	if name == "" {
		name = portName(index)
	}
	p := &OutputPort{index: index, name: name, dt: dt, capacity: DefaultCapacity}
	if len(domain) > 0 {
		p.domain = domain[0]
	}
	p.SetCapacity(DefaultCapacity)
	b.outs = append(b.outs, p)
	b.outName[name] = p
	return p
}

func portName(index int) string {
	// Small indexes only; ports are declared at construction time.
	const digits = "0123456789"
	if index < 10 {
		return digits[index : index+1]
	}
	return portName(index/10) + digits[index%10:index%10+1]
}

// Input returns the input port at the given index
func (b *Base) Input(index int) *InputPort { return b.ins[index] }

// InputNamed returns the input port with the given name, or nil
func (b *Base) InputNamed(name string) *InputPort { return b.inName[name] }

// Output returns the output port at the given index
func (b *Base) Output(index int) *OutputPort { return b.outs[index] }

// OutputNamed returns the output port with the given name, or nil
func (b *Base) OutputNamed(name string) *OutputPort { return b.outName[name] }

// Inputs returns all input ports in declaration order
func (b *Base) Inputs() []*InputPort { return b.ins }

// Outputs returns all output ports in declaration order
func (b *Base) Outputs() []*OutputPort { return b.outs }

// NumInputs returns the input port count
func (b *Base) NumInputs() int { return len(b.ins) }

// NumOutputs returns the output port count
func (b *Base) NumOutputs() int { return len(b.outs) }

// WorkInfo recomputes the per-invocation port aggregates.
func (b *Base) WorkInfo() WorkInfo {
	minIn := maxInt
	for _, in := range b.ins {
		if e := in.effectiveElements(); e < minIn {
			minIn = e
		}
	}
	minOut := maxInt
	for _, out := range b.outs {
		if e := out.effectiveElements(); e < minOut {
			minOut = e
		}
	}
	if len(b.ins) == 0 {
		minIn = minOut
	}
	if len(b.outs) == 0 {
		minOut = minIn
	}
	minBoth := minIn
	if minOut < minBoth {
		minBoth = minOut
	}
	return WorkInfo{
		MinInElements:  minIn,
		MinOutElements: minOut,
		MinElements:    minBoth,
		MinAllElements: minBoth,
	}
}

const maxInt = int(^uint(0) >> 1)

// RegisterSignal declares a change-notification signal by name.
// Registering is required before Emit or Subscribe.
func (b *Base) RegisterSignal(name string) {
	if _, ok := b.signals[name]; !ok {
		b.signals[name] = nil
	}
}

// Subscribe attaches an observer to a registered signal. Observers run
// synchronously on the emitting goroutine; signals are configuration-time
// events, never per-element work.
func (b *Base) Subscribe(name string, fn func(any)) error {
	if _, ok := b.signals[name]; !ok {
		return errors.InvalidArgumentf(b.name, "Subscribe", "unknown signal %q", name)
	}
	b.signals[name] = append(b.signals[name], fn)
	return nil
}

// EmitSignal fires a registered signal with the given value.
func (b *Base) EmitSignal(name string, value any) {
	for _, fn := range b.signals[name] {
		fn(value)
	}
}
