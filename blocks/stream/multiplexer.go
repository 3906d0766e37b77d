package stream

import (
	"sort"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
	"github.com/google/uuid"
)

// Multiplexer routes each of its inputs to a distinct output. The routing
// table is a permutation of output indexes and can be rewired at runtime
// through SetOutputChannel without interrupting the streams.
type Multiplexer struct {
	block.Base
	routes []int
}

// NewMultiplexer creates a multiplexer with numChannels inputs and outputs.
// routes[i] names the output fed by input i; it must be a permutation of
// [0, numChannels). A nil routes means the identity mapping.
func NewMultiplexer(dt dtype.DType, numChannels int, routes []int) (*Multiplexer, error) {
	if numChannels < 1 {
		return nil, errors.InvalidArgumentf("multiplexer", "NewMultiplexer",
			"numChannels must be positive, got %d", numChannels)
	}
	if routes == nil {
		routes = make([]int, numChannels)
		for i := range routes {
			routes[i] = i
		}
	}
	if err := validateRoutes(routes, numChannels); err != nil {
		return nil, err
	}
	b := &Multiplexer{Base: block.NewBase("multiplexer")}
	for i := 0; i < numChannels; i++ {
		b.SetupInput(i, dt)
		b.SetupOutput(i, dt, uuid.NewString())
	}
	b.routes = append([]int(nil), routes...)
	b.RegisterSignal("routesChanged")
	return b, nil
}

func validateRoutes(routes []int, numChannels int) error {
	if len(routes) != numChannels {
		return errors.InvalidArgumentf("multiplexer", "validateRoutes",
			"expected %d routes, got %d", numChannels, len(routes))
	}
	sorted := append([]int(nil), routes...)
	sort.Ints(sorted)
	for i, r := range sorted {
		if r != i {
			return errors.InvalidArgumentf("multiplexer", "validateRoutes",
				"routes %v are not a permutation of [0, %d)", routes, numChannels)
		}
	}
	return nil
}

// Routes returns a copy of the routing table.
func (b *Multiplexer) Routes() []int {
	return append([]int(nil), b.routes...)
}

// SetOutputChannel rewires input to feed output. The input currently
// feeding that output takes over the vacated route, so the table stays a
// permutation.
func (b *Multiplexer) SetOutputChannel(input, output int) error {
	if input < 0 || input >= len(b.routes) {
		return errors.Rangef("multiplexer", "SetOutputChannel",
			"input %d out of range [0, %d)", input, len(b.routes))
	}
	if output < 0 || output >= len(b.routes) {
		return errors.Rangef("multiplexer", "SetOutputChannel",
			"output %d out of range [0, %d)", output, len(b.routes))
	}
	holder := -1
	for i, r := range b.routes {
		if r == output {
			holder = i
			break
		}
	}
	if holder < 0 {
		return errors.Internalf("multiplexer", "SetOutputChannel",
			"no input routed to output %d", output)
	}
	b.routes[holder] = b.routes[input]
	b.routes[input] = output
	b.EmitSignal("routesChanged", b.Routes())
	return nil
}

func (b *Multiplexer) Work() {
	for i, in := range b.Inputs() {
		out := b.Output(b.routes[i])
		drainMessages(in, out)
		buff := in.TakeBuffer()
		if buff.Elements() == 0 {
			continue
		}
		for _, l := range in.TakeLabels() {
			if l.Index < buff.Elements() {
				out.PostLabel(l)
			}
		}
		in.Consume(buff.Elements())
		out.PostBuffer(buff)
	}
}
