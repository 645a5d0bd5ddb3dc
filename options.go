package oat

import "github.com/oatable/oat/hash"

// minBucketCount is the capacity floor: any allocated bucket array holds
// at least this many buckets.
const minBucketCount = 1024

// defaultGrowLoad and defaultShrinkLoad are the grow/shrink load-factor
// thresholds used when WithLoadFactor isn't given.
const (
	defaultGrowLoad   = 0.80
	defaultShrinkLoad = 0.40
)

// Option configures a table at construction time, via a closure-option
// pattern.
type Option interface {
	set(*config)
}

type optFn func(*config)

func (f optFn) set(c *config) { f(c) }

type config struct {
	hasher     any // func(K) uint64
	equal      any // func(K, K) bool
	capacity   int
	big        bool
	growLoad   float64
	shrinkLoad float64
}

// WithCapacity hints the initial bucket count. The table still allocates at
// least minBucketCount buckets.
func WithCapacity(n int) Option {
	return optFn(func(c *config) { c.capacity = n })
}

// WithHasher overrides the default hash function H for key type K.
func WithHasher[K comparable](fn func(K) uint64) Option {
	return optFn(func(c *config) { c.hasher = fn })
}

// WithEqual overrides the default equality predicate Eq for key type K. The
// default is Go's built-in == for comparable keys.
func WithEqual[K comparable](fn func(K, K) bool) Option {
	return optFn(func(c *config) { c.equal = fn })
}

// WithBig switches the table to the BIG redirect width: the stored hash and
// value index both use the full 64 bits, lifting the uint32 capacity
// ceiling at the cost of larger per-bucket overhead.
func WithBig() Option {
	return optFn(func(c *config) { c.big = true })
}

// WithLoadFactor overrides the grow/shrink load-factor thresholds (defaults
// 0.80/0.40). Exposed so tests can force rehashes without inserting
// hundreds of thousands of keys.
func WithLoadFactor(grow, shrink float64) Option {
	return optFn(func(c *config) {
		c.growLoad = grow
		c.shrinkLoad = shrink
	})
}

func newConfig[K comparable](opts []Option) config {
	c := config{growLoad: defaultGrowLoad, shrinkLoad: defaultShrinkLoad}
	for _, o := range opts {
		o.set(&c)
	}
	if c.hasher == nil {
		c.hasher = hash.Generic[K]()
	}
	if c.equal == nil {
		c.equal = func(a, b K) bool { return a == b }
	}
	return c
}
