package oat

// Set is a unique-key container with no associated value, instantiating
// the shared engine with V = struct{}.
type Set[K comparable] struct {
	e engine[K, struct{}]
}

// NewSet constructs an empty Set.
func NewSet[K comparable](opts ...Option) *Set[K] {
	s := &Set[K]{}
	s.e.init(newConfig[K](opts))
	return s
}

// NewSetFrom constructs a Set and sequentially inserts the given keys.
func NewSetFrom[K comparable](keys []K, opts ...Option) *Set[K] {
	s := NewSet[K](opts...)
	for _, k := range keys {
		s.Insert(k)
	}
	return s
}

// Len returns the number of unique keys stored.
func (s *Set[K]) Len() int { return len(s.e.data) }

// BucketCount returns the current number of buckets.
func (s *Set[K]) BucketCount() int { return s.e.bucketCount() }

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool {
	_, ok := s.e.find(key)
	return ok
}

// Find looks up key.
func (s *Set[K]) Find(key K) Iterator[K, struct{}] {
	idx, ok := s.e.find(key)
	if !ok {
		return endIterator(&s.e)
	}
	return Iterator[K, struct{}]{e: &s.e, valueIdx: idx, bucketIdx: -1, rehashGen: s.e.rehashCounter}
}

// Insert adds key; it is a no-op if key is already present.
func (s *Set[K]) Insert(key K) (inserted bool, err error) {
	_, existed, err := s.e.insert(key, func() struct{} { return struct{}{} })
	if err != nil {
		return false, err
	}
	return !existed, nil
}

// Delete removes key if present.
func (s *Set[K]) Delete(key K) bool {
	_, ok := s.e.eraseKey(key)
	return ok
}

// Clear fully deallocates the table.
func (s *Set[K]) Clear() { s.e.clear() }

// FastClear empties the table but retains its backing capacity.
func (s *Set[K]) FastClear() { s.e.fastClear() }

// Rehash implements force_rehash.
func (s *Set[K]) Rehash() { s.e.forceRehash() }

// ShrinkToFit is advisory.
func (s *Set[K]) ShrinkToFit() { s.e.shrinkToFit() }

// Clone deep-copies the table.
func (s *Set[K]) Clone() *Set[K] {
	return &Set[K]{e: s.e.clone()}
}

// Stats returns a read-only diagnostic snapshot.
func (s *Set[K]) Stats() Stats {
	return Stats{
		Len: len(s.e.data), BucketCount: s.e.bucketCount(),
		LoadFactor: s.e.load(), RehashCount: s.e.rehashCounter,
	}
}

// All returns a range-over-func iterator over every key.
func (s *Set[K]) All() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for _, e := range s.e.data {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Begin returns a resumable Iterator positioned at the first key.
func (s *Set[K]) Begin() Iterator[K, struct{}] {
	if len(s.e.data) == 0 {
		return endIterator(&s.e)
	}
	return Iterator[K, struct{}]{e: &s.e, valueIdx: 0, bucketIdx: -1, rehashGen: s.e.rehashCounter}
}
