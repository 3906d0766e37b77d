package buffer

import (
	"sync"

	"github.com/c360/streamblocks/dtype"
)

// Pool recycles equally sized allocations for a single output port. The
// pool size follows the port's negotiated buffer capacity; allocations of
// any other size are simply dropped on release.
type Pool struct {
	size int
	mu   sync.Mutex
	free []*allocation
}

// NewPool creates a pool handing out allocations of the given byte size.
func NewPool(size int) *Pool {
	return &Pool{size: size}
}

// Get returns a fresh chunk of elems elements of dt, reusing a previously
// released allocation when one is available.
func (p *Pool) Get(dt dtype.DType, elems int) Chunk {
	size := elems * dt.ElemSize()
	if size != p.size {
		return NewChunk(dt, elems)
	}

	p.mu.Lock()
	var a *allocation
	if n := len(p.free); n > 0 {
		a = p.free[n-1]
		p.free = p.free[:n-1]
	}
	p.mu.Unlock()

	if a == nil {
		a = newAllocation(size)
		a.pool = p
	} else {
		a.refs.Store(1)
	}
	return Chunk{alloc: a, length: size, dt: dt}
}

func (p *Pool) put(a *allocation) {
	if a.size != p.size {
		return
	}
	p.mu.Lock()
	p.free = append(p.free, a)
	p.mu.Unlock()
}
