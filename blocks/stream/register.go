package stream

import (
	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/dtype"
)

// Register adds every stream block factory to the registry. Factories read
// their configuration from Params; dtype-dispatched blocks take a "dtype"
// parameter naming the element type.
func Register(r *block.Registry) error {
	regs := []block.Registration{
		{
			Name:        "stream/clamp",
			Category:    "stream",
			Description: "Constrain values between configurable bounds",
			Factory:     makeClamp,
		},
		{
			Name:        "stream/ceil",
			Category:    "stream",
			Description: "Round values up to the nearest integer",
			Factory:     dtypeFactory(NewCeil),
		},
		{
			Name:        "stream/floor",
			Category:    "stream",
			Description: "Round values down to the nearest integer",
			Factory:     dtypeFactory(NewFloor),
		},
		{
			Name:        "stream/trunc",
			Category:    "stream",
			Description: "Round values toward zero",
			Factory:     dtypeFactory(NewTrunc),
		},
		{
			Name:        "stream/isfinite",
			Category:    "stream",
			Description: "Flag finite values as int8 ones",
			Factory:     dtypeFactory(NewIsFinite),
		},
		{
			Name:        "stream/isinf",
			Category:    "stream",
			Description: "Flag infinite values as int8 ones",
			Factory:     dtypeFactory(NewIsInf),
		},
		{
			Name:        "stream/isnan",
			Category:    "stream",
			Description: "Flag NaN values as int8 ones",
			Factory:     dtypeFactory(NewIsNaN),
		},
		{
			Name:        "stream/isnormal",
			Category:    "stream",
			Description: "Flag normal floating-point values as int8 ones",
			Factory:     dtypeFactory(NewIsNormal),
		},
		{
			Name:        "stream/isnegative",
			Category:    "stream",
			Description: "Flag negative values as int8 ones",
			Factory:     dtypeFactory(NewIsNegative),
		},
		{
			Name:        "stream/replace",
			Category:    "stream",
			Description: "Substitute one value for another, with float tolerance",
			Factory:     makeReplace,
		},
		{
			Name:        "stream/mute",
			Category:    "stream",
			Description: "Forward the stream or zeros under a runtime toggle",
			Factory:     makeMute,
		},
		{
			Name:        "stream/labelstripper",
			Category:    "stream",
			Description: "Forward a stream with its labels removed",
			Factory: func(block.Params) (block.Block, error) {
				return NewLabelStripper(), nil
			},
		},
		{
			Name:        "stream/reinterpret",
			Category:    "stream",
			Description: "Relabel a stream's dtype without touching bytes",
			Factory:     makeReinterpret,
		},
		{
			Name:        "stream/converter",
			Category:    "stream",
			Description: "Convert a stream to a target dtype",
			Factory:     makeConverter,
		},
		{
			Name:        "stream/select",
			Category:    "stream",
			Description: "Forward one of N inputs, discarding the rest",
			Factory:     makeSelect,
		},
		{
			Name:        "stream/multiplexer",
			Category:    "stream",
			Description: "Route N inputs to N outputs through a rewirable permutation",
			Factory:     makeMultiplexer,
		},
		{
			Name:        "stream/interleaver",
			Category:    "stream",
			Description: "Merge N streams by alternating fixed-size chunks",
			Factory:     makeInterleaver,
		},
		{
			Name:        "stream/deinterleaver",
			Category:    "stream",
			Description: "Split a stream into N by dealing out fixed-size chunks",
			Factory:     makeDeinterleaver,
		},
		{
			Name:        "stream/minmax",
			Category:    "stream",
			Description: "Reduce N streams to per-slot minimum and maximum",
			Factory:     makeMinMax,
		},
		{
			Name:        "stream/firstn",
			Category:    "stream",
			Description: "Forward the first N elements, then discard",
			Factory:     makeFirstN,
		},
		{
			Name:        "stream/skipfirstn",
			Category:    "stream",
			Description: "Discard the first N elements, then forward",
			Factory:     makeSkipFirstN,
		},
		{
			Name:        "stream/repeat",
			Category:    "stream",
			Description: "Duplicate every element a fixed number of times",
			Factory:     makeRepeat,
		},
		{
			Name:        "stream/pacer",
			Category:    "stream",
			Description: "Throttle a stream to a target element rate",
			Factory:     makePacer,
		},
	}
	for _, reg := range regs {
		if err := r.Register(reg); err != nil {
			return err
		}
	}
	return nil
}

func dtypeFactory(fcn func(dtype.DType) (block.Block, error)) block.Factory {
	return func(p block.Params) (block.Block, error) {
		dt, err := p.DType("dtype")
		if err != nil {
			return nil, err
		}
		return fcn(dt)
	}
}

func makeClamp(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	b, err := NewClamp(dt)
	if err != nil {
		return nil, err
	}
	lo, err := p.Float("min", 0)
	if err != nil {
		return nil, err
	}
	hi, err := p.Float("max", 0)
	if err != nil {
		return nil, err
	}
	if _, haveMin := p["min"]; haveMin {
		if _, haveMax := p["max"]; haveMax {
			if err := b.SetMinAndMax(lo, hi); err != nil {
				return nil, err
			}
		} else if err := b.SetMin(lo); err != nil {
			return nil, err
		}
	} else if _, haveMax := p["max"]; haveMax {
		if err := b.SetMax(hi); err != nil {
			return nil, err
		}
	}
	if clampMin, err := p.Bool("clampMin", true); err != nil {
		return nil, err
	} else {
		b.SetClampMin(clampMin)
	}
	if clampMax, err := p.Bool("clampMax", true); err != nil {
		return nil, err
	} else {
		b.SetClampMax(clampMax)
	}
	return b, nil
}

func makeReplace(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	oldValue, err := p.Float("oldValue", 0)
	if err != nil {
		return nil, err
	}
	newValue, err := p.Float("newValue", 0)
	if err != nil {
		return nil, err
	}
	epsilon, err := p.Float("epsilon", 0)
	if err != nil {
		return nil, err
	}
	return NewReplace(dt, complex(oldValue, 0), complex(newValue, 0), epsilon)
}

func makeMute(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	b := NewMute(dt)
	muted, err := p.Bool("mute", false)
	if err != nil {
		return nil, err
	}
	b.SetMute(muted)
	return b, nil
}

func makeReinterpret(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	return NewReinterpret(dt), nil
}

func makeConverter(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	return NewConverter(dt), nil
}

func makeSelect(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	numInputs, err := p.Int("numInputs", 2)
	if err != nil {
		return nil, err
	}
	b, err := NewSelect(dt, numInputs)
	if err != nil {
		return nil, err
	}
	selected, err := p.Int("selected", 0)
	if err != nil {
		return nil, err
	}
	if err := b.SetSelected(selected); err != nil {
		return nil, err
	}
	return b, nil
}

func makeMultiplexer(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	numChannels, err := p.Int("numChannels", 2)
	if err != nil {
		return nil, err
	}
	routes, err := p.IntSlice("routes")
	if err != nil {
		return nil, err
	}
	return NewMultiplexer(dt, numChannels, routes)
}

func makeInterleaver(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	numInputs, err := p.Int("numInputs", 2)
	if err != nil {
		return nil, err
	}
	chunkSize, err := p.Int("chunkSize", 1)
	if err != nil {
		return nil, err
	}
	return NewInterleaver(dt, numInputs, chunkSize)
}

func makeDeinterleaver(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	numOutputs, err := p.Int("numOutputs", 2)
	if err != nil {
		return nil, err
	}
	chunkSize, err := p.Int("chunkSize", 1)
	if err != nil {
		return nil, err
	}
	return NewDeinterleaver(dt, numOutputs, chunkSize)
}

func makeMinMax(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	numInputs, err := p.Int("numInputs", 2)
	if err != nil {
		return nil, err
	}
	return NewMinMax(dt, numInputs)
}

func makeFirstN(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	n, err := p.Int("numElements", 0)
	if err != nil {
		return nil, err
	}
	return NewFirstN(dt, n)
}

func makeSkipFirstN(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	n, err := p.Int("numElements", 0)
	if err != nil {
		return nil, err
	}
	return NewSkipFirstN(dt, n)
}

func makeRepeat(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	count, err := p.Int("repeatCount", 1)
	if err != nil {
		return nil, err
	}
	return NewRepeat(dt, count)
}

func makePacer(p block.Params) (block.Block, error) {
	dt, err := p.DType("dtype")
	if err != nil {
		return nil, err
	}
	perSecond, err := p.Float("elementsPerSecond", 1000)
	if err != nil {
		return nil, err
	}
	burst, err := p.Int("burst", block.DefaultCapacity)
	if err != nil {
		return nil, err
	}
	return NewPacer(dt, perSecond, burst)
}
