package registry

import (
	"github.com/joshuapare/regkit/internal/alloc"
	"github.com/joshuapare/regkit/internal/format"
	"github.com/joshuapare/regkit/pkg/types"
)

// Allocator supplies the scratch buffers used by sized queries and encoders.
// Each buffer returned by Alloc is passed to Free exactly once.
type Allocator interface {
	Alloc(n int) ([]byte, error)
	Free(b []byte)
}

// sharedPool backs keys opened without an explicit allocator.
var sharedPool = alloc.NewPool()

// maxQueryData bounds a reported size when no value size limit is set.
const maxQueryData = 64 << 20

type options struct {
	alloc  Allocator
	limits types.Limits
}

// Option configures a Key at open time. Subkeys opened through a Key inherit
// its options.
type Option func(*options)

// WithAllocator sets the allocator for query and encode buffers.
func WithAllocator(a Allocator) Option {
	return func(o *options) {
		if a != nil {
			o.alloc = a
		}
	}
}

// WithMemoryBudget caps the scratch bytes a key may hold at once. Queries that
// would exceed it fail with a resource error instead of allocating.
func WithMemoryBudget(max int) Option {
	return func(o *options) {
		o.alloc = alloc.NewBudget(o.alloc, max)
	}
}

// WithLimits sets the name and size limits checked before reaching the store.
func WithLimits(l types.Limits) Option {
	return func(o *options) {
		o.limits = l
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		alloc:  sharedPool,
		limits: types.DefaultLimits(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// queryCap is the largest answer a sized query will allocate for: the value
// size limit plus the largest fixed block header.
func (o *options) queryCap() int {
	n := o.limits.MaxValueSize
	if n <= 0 {
		n = maxQueryData
	}
	return n + format.FullFixedSize
}
