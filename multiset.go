package oat

// MultiSet is a container that allows a key to be inserted more than once,
// remembering how many times.
type MultiSet[K comparable] struct {
	e multiEngine[K, struct{}]
}

// NewMultiSet constructs an empty MultiSet.
func NewMultiSet[K comparable](opts ...Option) *MultiSet[K] {
	s := &MultiSet[K]{}
	s.e.init(newConfig[K](opts))
	return s
}

// NewMultiSetFrom constructs a MultiSet and sequentially inserts keys.
func NewMultiSetFrom[K comparable](keys []K, opts ...Option) *MultiSet[K] {
	s := NewMultiSet[K](opts...)
	for _, k := range keys {
		s.Insert(k)
	}
	return s
}

// Len returns the total number of insertions still present.
func (s *MultiSet[K]) Len() int { return int(s.e.totalElements) }

// KeyCount returns the number of distinct keys.
func (s *MultiSet[K]) KeyCount() int { return len(s.e.data) }

// BucketCount returns the current number of buckets.
func (s *MultiSet[K]) BucketCount() int { return s.e.bucketCount() }

// Insert adds one more occurrence of key.
func (s *MultiSet[K]) Insert(key K) (MultiIterator[K, struct{}], error) {
	return s.e.insert(key, struct{}{})
}

// Count returns how many times key is currently stored.
func (s *MultiSet[K]) Count(key K) int {
	it, ok := s.e.find(key)
	if !ok {
		return 0
	}
	return s.e.data[it.valueIdx].len
}

// Find returns an iterator to key's bucket if present.
func (s *MultiSet[K]) Find(key K) (MultiIterator[K, struct{}], bool) {
	return s.e.find(key)
}

// Delete removes every occurrence of key, returning the count removed.
func (s *MultiSet[K]) Delete(key K) int {
	return s.e.eraseKey(key)
}

// Clear fully deallocates the table.
func (s *MultiSet[K]) Clear() { s.e.clear() }

// FastClear empties the table but retains its backing capacity.
func (s *MultiSet[K]) FastClear() { s.e.fastClear() }

// Rehash implements force_rehash.
func (s *MultiSet[K]) Rehash() { s.e.forceRehash() }

// ShrinkToFit is advisory.
func (s *MultiSet[K]) ShrinkToFit() { s.e.shrinkToFit() }

// Clone deep-copies the table.
func (s *MultiSet[K]) Clone() *MultiSet[K] {
	return &MultiSet[K]{e: *s.e.clone()}
}

// Stats returns a read-only diagnostic snapshot.
func (s *MultiSet[K]) Stats() Stats {
	return Stats{
		Len: int(s.e.totalElements), BucketCount: s.e.bucketCount(),
		LoadFactor: s.e.load(), RehashCount: s.e.rehashCounter,
	}
}

// All returns a range-over-func iterator over every occurrence of every
// key.
func (s *MultiSet[K]) All() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for i, list := range s.e.data {
			key := s.e.keyShadow[i]
			for n := list.first(); list.isValid(n); n = n.next {
				if !yield(key) {
					return
				}
			}
		}
	}
}
