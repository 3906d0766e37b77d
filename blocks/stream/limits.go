package stream

import (
	"math"

	"github.com/c360/streamblocks/kernels"
)

// typeLimits returns the most negative and most positive values of T,
// used as the effective clamp bounds when a side is disabled. Floating
// types use infinities so a disabled bound can never trigger.
func typeLimits[T kernels.Real]() (lo, hi T) {
	var zero T
	switch any(zero).(type) {
	case int8:
		return cast[T](int8(math.MinInt8)), cast[T](int8(math.MaxInt8))
	case int16:
		return cast[T](int16(math.MinInt16)), cast[T](int16(math.MaxInt16))
	case int32:
		return cast[T](int32(math.MinInt32)), cast[T](int32(math.MaxInt32))
	case int64:
		return cast[T](int64(math.MinInt64)), cast[T](int64(math.MaxInt64))
	case uint8:
		return cast[T](uint8(0)), cast[T](uint8(math.MaxUint8))
	case uint16:
		return cast[T](uint16(0)), cast[T](uint16(math.MaxUint16))
	case uint32:
		return cast[T](uint32(0)), cast[T](uint32(math.MaxUint32))
	case uint64:
		return cast[T](uint64(0)), cast[T](uint64(math.MaxUint64))
	case float32:
		return cast[T](float32(math.Inf(-1))), cast[T](float32(math.Inf(1)))
	default: // float64
		return cast[T](math.Inf(-1)), cast[T](math.Inf(1))
	}
}

func cast[T kernels.Real](v any) T {
	return v.(T)
}
