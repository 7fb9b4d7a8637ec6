package alloc

import (
	"math/bits"
	"sync"
)

// Allocator hands out zeroed byte buffers of an exact length.
type Allocator interface {
	// Alloc returns a zeroed buffer with len == n.
	Alloc(n int) ([]byte, error)

	// Free returns a buffer obtained from Alloc. Freeing nil is a no-op.
	Free(b []byte)
}

const (
	// minClassShift is the smallest pooled size class (64 bytes).
	minClassShift = 6
	// maxClassShift is the largest pooled size class (64 KiB). Larger buffers
	// are left to the garbage collector.
	maxClassShift = 16
	numClasses    = maxClassShift - minClassShift + 1
)

// Pool is an Allocator backed by power-of-two size classes.
// The zero value is ready to use and safe for concurrent use.
type Pool struct {
	classes [numClasses]sync.Pool
}

// NewPool returns an empty Pool.
func NewPool() *Pool {
	return &Pool{}
}

// classFor returns the size class index for n, or -1 if n is not pooled.
func classFor(n int) int {
	if n > 1<<maxClassShift {
		return -1
	}
	if n <= 1<<minClassShift {
		return 0
	}
	return bits.Len(uint(n-1)) - minClassShift
}

// Alloc implements Allocator.
func (p *Pool) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegative
	}
	c := classFor(n)
	if c < 0 {
		return make([]byte, n), nil
	}
	if v, ok := p.classes[c].Get().(*[]byte); ok {
		b := (*v)[:n]
		clear(b)
		return b, nil
	}
	return make([]byte, n, 1<<(c+minClassShift)), nil
}

// Free implements Allocator.
func (p *Pool) Free(b []byte) {
	if b == nil {
		return
	}
	c := classFor(cap(b))
	// Only buffers that exactly fill a class go back, so Alloc can reslice.
	if c < 0 || cap(b) != 1<<(c+minClassShift) {
		return
	}
	b = b[:cap(b)]
	p.classes[c].Put(&b)
}
