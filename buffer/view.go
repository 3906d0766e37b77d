package buffer

import (
	"unsafe"

	"github.com/c360/streamblocks/dtype"
)

// Element constrains the Go types that can back a typed chunk view.
type Element interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64 | ~complex64 | ~complex128
}

func wordsAsBytes(words []uint64, size int) []byte {
	if size == 0 || len(words) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&words[0])), size)
}

// View reinterprets the chunk's payload as a slice of T. The allocation is
// word aligned and chunk offsets stay element aligned, so the view is safe
// for every supported element type. The returned slice aliases the chunk;
// it is only valid while the chunk is retained.
func View[T Element](c Chunk) []T {
	b := c.Bytes()
	size := int(unsafe.Sizeof(*new(T)))
	n := len(b) / size
	if n == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&b[0])), n)
}

// FromSlice allocates a chunk of the given dtype and fills it from values.
// The value type must match the dtype's scalar layout.
func FromSlice[T Element](dt dtype.DType, values []T) Chunk {
	size := int(unsafe.Sizeof(*new(T)))
	c := NewChunk(dt, len(values)*size/dt.ElemSize())
	copy(View[T](c), values)
	return c
}
