package testers

import (
	"math"
	"math/rand"

	"github.com/c360/streamblocks/block"
	"github.com/c360/streamblocks/buffer"
	"github.com/c360/streamblocks/dtype"
	"github.com/c360/streamblocks/errors"
)

// SporadicNaN passes a floating-point stream through, corrupting it with
// NaN values at random positions. Each work invocation injects with the
// configured probability, up to maxNaNs values at independent uniform
// indexes. A seeded source makes runs reproducible.
type SporadicNaN struct {
	block.Base
	probability float64
	maxNaNs     int
	rng         *rand.Rand
	isFloat32   bool
}

// NewSporadicNaN creates an injector for the given float dtype.
func NewSporadicNaN(dt dtype.DType, probability float64, maxNaNs int, seed int64) (*SporadicNaN, error) {
	kind := dt.WithDimension(1).Kind()
	if kind != dtype.Float32 && kind != dtype.Float64 {
		return nil, errors.InvalidArgumentf("SporadicNaN", "NewSporadicNaN",
			"%w: %s", errors.ErrUnsupportedDType, dt)
	}
	if probability < 0 || probability > 1 {
		return nil, errors.Rangef("SporadicNaN", "NewSporadicNaN",
			"probability must be in [0, 1], got %v", probability)
	}
	if maxNaNs < 1 {
		return nil, errors.InvalidArgumentf("SporadicNaN", "NewSporadicNaN",
			"maxNaNs must be positive, got %d", maxNaNs)
	}
	b := &SporadicNaN{
		Base:        block.NewBase("sporadic_nan"),
		probability: probability,
		maxNaNs:     maxNaNs,
		rng:         rand.New(rand.NewSource(seed)),
		isFloat32:   kind == dtype.Float32,
	}
	b.SetupInput(0, dt)
	b.SetupOutput(0, dt)
	return b, nil
}

func (b *SporadicNaN) Work() {
	elems := b.WorkInfo().MinElements
	if elems == 0 {
		return
	}

	in := b.Input(0)
	out := b.Output(0)

	n := elems * in.DType().Dimension()
	if b.isFloat32 {
		src := buffer.View[float32](in.Buffer())[:n]
		dst := buffer.View[float32](out.Buffer())[:n]
		copy(dst, src)
		if b.rng.Float64() < b.probability {
			for i := 0; i < b.maxNaNs; i++ {
				dst[b.rng.Intn(n)] = float32(math.NaN())
			}
		}
	} else {
		src := buffer.View[float64](in.Buffer())[:n]
		dst := buffer.View[float64](out.Buffer())[:n]
		copy(dst, src)
		if b.rng.Float64() < b.probability {
			for i := 0; i < b.maxNaNs; i++ {
				dst[b.rng.Intn(n)] = math.NaN()
			}
		}
	}

	in.Consume(elems)
	out.Produce(elems)
}
