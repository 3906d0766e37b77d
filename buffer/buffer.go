// Package buffer provides the typed, reference-counted buffer chunks moved
// between block ports.
//
// A Chunk is a view into a shared allocation: an offset, a byte length, and
// an element data type. Slicing and truncation adjust the view without
// touching the payload, so forwarding a chunk from an input port to an
// output port never copies bytes. The allocation is reference counted;
// Release returns it to its pool once the last holder drops it.
//
// A chunk obtained by plain forwarding may still be observed by another
// holder and must never be mutated in place. Blocks that need fresh
// contents write into a chunk they allocated themselves.
package buffer

import (
	"sync/atomic"

	"github.com/c360/streamblocks/dtype"
)

// allocation is a shared backing region. The word slice keeps the region
// 8-byte aligned so typed views stay aligned for every supported kind.
type allocation struct {
	words []uint64
	size  int
	refs  atomic.Int64
	pool  *Pool
}

func newAllocation(size int) *allocation {
	a := &allocation{
		words: make([]uint64, (size+7)/8),
		size:  size,
	}
	a.refs.Store(1)
	return a
}

func (a *allocation) bytes() []byte {
	if a == nil || a.size == 0 {
		return nil
	}
	return wordsAsBytes(a.words, a.size)
}

// Chunk is a typed view into a shared allocation. The zero value is an
// empty chunk with no backing storage.
type Chunk struct {
	alloc  *allocation
	off    int
	length int
	dt     dtype.DType
}

// NewChunk allocates a chunk holding elems elements of the given dtype.
func NewChunk(dt dtype.DType, elems int) Chunk {
	size := elems * dt.ElemSize()
	return Chunk{
		alloc:  newAllocation(size),
		length: size,
		dt:     dt,
	}
}

// FromBytes allocates a chunk of the given dtype and copies data into it.
// The length is truncated down to a whole number of elements.
func FromBytes(dt dtype.DType, data []byte) Chunk {
	elemSize := dt.ElemSize()
	elems := len(data) / elemSize
	c := NewChunk(dt, elems)
	copy(c.Bytes(), data[:elems*elemSize])
	return c
}

// DType returns the element type of the view
func (c Chunk) DType() dtype.DType { return c.dt }

// Length returns the view's byte length
func (c Chunk) Length() int { return c.length }

// Elements returns the logical element count: length divided by element
// size. Unconstrained chunks count bytes.
func (c Chunk) Elements() int {
	return c.length / c.dt.ElemSize()
}

// Bytes returns the view's payload bytes
func (c Chunk) Bytes() []byte {
	if c.alloc == nil || c.length == 0 {
		return nil
	}
	return c.alloc.bytes()[c.off : c.off+c.length]
}

// Slice advances the view by the given byte count without reallocating.
// The offset is clamped to the view's length.
func (c Chunk) Slice(offsetBytes int) Chunk {
	if offsetBytes < 0 {
		offsetBytes = 0
	}
	if offsetBytes > c.length {
		offsetBytes = c.length
	}
	c.off += offsetBytes
	c.length -= offsetBytes
	return c
}

// SetElements truncates the view's logical length to n elements.
// Growing beyond the current length is not possible.
func (c Chunk) SetElements(n int) Chunk {
	if n < 0 {
		n = 0
	}
	size := n * c.dt.ElemSize()
	if size < c.length {
		c.length = size
	}
	return c
}

// WithDType reinterprets the view's bytes as a different element type
// without modifying contents. The length is truncated down to a whole
// number of new elements.
func (c Chunk) WithDType(dt dtype.DType) Chunk {
	c.dt = dt
	c.length -= c.length % dt.ElemSize()
	return c
}

// Retain increments the allocation's reference count and returns the chunk.
// Every retained chunk needs a matching Release.
func (c Chunk) Retain() Chunk {
	if c.alloc != nil {
		c.alloc.refs.Add(1)
	}
	return c
}

// Release drops one reference to the backing allocation. When the count
// reaches zero the allocation is returned to its pool, if it has one.
func (c Chunk) Release() {
	if c.alloc == nil {
		return
	}
	if c.alloc.refs.Add(-1) == 0 && c.alloc.pool != nil {
		c.alloc.pool.put(c.alloc)
	}
}

// SharesAllocation reports whether two chunks view the same backing
// allocation, which is the observable effect of zero-copy forwarding.
func SharesAllocation(a, b Chunk) bool {
	return a.alloc != nil && a.alloc == b.alloc
}
