package alloc

import "sync"

// Budget wraps an Allocator, refusing allocations that would push the bytes
// outstanding past Max. A Max of zero or less means unlimited; the live
// counters are kept either way.
type Budget struct {
	inner Allocator
	max   int

	mu      sync.Mutex
	bytes   int
	live    int
	allocs  int
	refused int
}

// NewBudget returns a Budget over inner. A nil inner uses a fresh Pool.
func NewBudget(inner Allocator, max int) *Budget {
	if inner == nil {
		inner = NewPool()
	}
	return &Budget{inner: inner, max: max}
}

// Alloc implements Allocator.
func (b *Budget) Alloc(n int) ([]byte, error) {
	if n < 0 {
		return nil, ErrNegative
	}
	b.mu.Lock()
	if b.max > 0 && b.bytes+n > b.max {
		b.refused++
		b.mu.Unlock()
		return nil, ErrExhausted
	}
	// Bytes are reserved before inner runs; a failure hands them back.
	b.bytes += n
	b.live++
	b.mu.Unlock()

	buf, err := b.inner.Alloc(n)
	b.mu.Lock()
	defer b.mu.Unlock()
	if err != nil {
		b.bytes -= n
		b.live--
		return nil, err
	}
	b.allocs++
	return buf, nil
}

// Free implements Allocator.
func (b *Budget) Free(buf []byte) {
	if buf == nil {
		return
	}
	b.mu.Lock()
	b.bytes -= len(buf)
	b.live--
	b.mu.Unlock()
	b.inner.Free(buf)
}

// Stats is a snapshot of a Budget's counters.
type Stats struct {
	Bytes   int // bytes currently outstanding
	Live    int // buffers currently outstanding
	Allocs  int // successful allocations so far
	Refused int // allocations refused for exceeding the budget
}

// Stats returns the current counters.
func (b *Budget) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{Bytes: b.bytes, Live: b.live, Allocs: b.allocs, Refused: b.refused}
}
