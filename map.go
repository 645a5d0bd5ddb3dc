package oat

// Map is a unique-key associative container, backed by the
// control-byte/dense-array engine described in the package doc.
type Map[K comparable, V any] struct {
	e engine[K, V]
}

// NewMap constructs an empty Map. No allocation happens until the first
// insertion.
func NewMap[K comparable, V any](opts ...Option) *Map[K, V] {
	m := &Map[K, V]{}
	m.e.init(newConfig[K](opts))
	return m
}

// KV is an initializer-list pair, used by NewMapFrom to construct a table
// by sequentially inserting pairs.
type KV[K comparable, V any] struct {
	Key   K
	Value V
}

// NewMapFrom constructs a Map and sequentially inserts the given pairs.
func NewMapFrom[K comparable, V any](pairs []KV[K, V], opts ...Option) *Map[K, V] {
	m := NewMap[K, V](opts...)
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// Len returns the number of unique keys stored.
func (m *Map[K, V]) Len() int { return len(m.e.data) }

// BucketCount returns the current number of buckets.
func (m *Map[K, V]) BucketCount() int { return m.e.bucketCount() }

// Find looks up key. The returned Iterator is Done() when key is not
// found.
func (m *Map[K, V]) Find(key K) Iterator[K, V] {
	idx, ok := m.e.find(key)
	if !ok {
		return endIterator(&m.e)
	}
	return Iterator[K, V]{e: &m.e, valueIdx: idx, bucketIdx: -1, rehashGen: m.e.rehashCounter}
}

// Get is a convenience form of Find returning the value directly.
func (m *Map[K, V]) Get(key K) (V, bool) {
	idx, ok := m.e.find(key)
	if !ok {
		var zero V
		return zero, false
	}
	return m.e.data[idx].value, true
}

// TryInsert is try_emplace: on a duplicate key it returns the existing
// entry and inserted=false; otherwise it inserts value and returns
// inserted=true.
func (m *Map[K, V]) TryInsert(key K, value V) (it Iterator[K, V], inserted bool, err error) {
	idx, existed, err := m.e.insert(key, func() V { return value })
	if err != nil {
		return endIterator(&m.e), false, err
	}
	return Iterator[K, V]{e: &m.e, valueIdx: idx, bucketIdx: -1, rehashGen: m.e.rehashCounter}, !existed, nil
}

// Insert is the plain insert/emplace form: on a duplicate key the table is
// left untouched and the existing value is kept; error is non-nil only on
// ErrCapacityOverflow. Use TryInsert to learn whether the key was new.
func (m *Map[K, V]) Insert(key K, value V) error {
	_, _, err := m.TryInsert(key, value)
	return err
}

// Index implements operator[]: it returns a pointer to the value for key,
// default-constructing one on miss.
func (m *Map[K, V]) Index(key K) *V {
	idx, _, err := m.e.insert(key, func() V { var zero V; return zero })
	if err != nil {
		// operator[] has no error return; the caller must have already
		// checked capacity, so panicking here mirrors that contract rather
		// than silently corrupting an index.
		panic(err)
	}
	return &m.e.data[idx].value
}

// Delete implements erase(key) for the single-key form.
func (m *Map[K, V]) Delete(key K) (V, bool) {
	return m.e.eraseKey(key)
}

// Clear fully deallocates the table.
func (m *Map[K, V]) Clear() { m.e.clear() }

// FastClear empties the table but retains its backing capacity.
func (m *Map[K, V]) FastClear() { m.e.fastClear() }

// Rehash implements force_rehash: grows, shrinks, or rebuilds in place
// depending on current load, clamped to the 1024 floor.
func (m *Map[K, V]) Rehash() { m.e.forceRehash() }

// ShrinkToFit is advisory.
func (m *Map[K, V]) ShrinkToFit() { m.e.shrinkToFit() }

// Clone deep-copies the table.
func (m *Map[K, V]) Clone() *Map[K, V] {
	return &Map[K, V]{e: m.e.clone()}
}

// Stats returns a read-only diagnostic snapshot.
func (m *Map[K, V]) Stats() Stats {
	return Stats{
		Len: len(m.e.data), BucketCount: m.e.bucketCount(),
		LoadFactor: m.e.load(), RehashCount: m.e.rehashCounter,
	}
}

// All returns a range-over-func iterator over every (key, value) pair, in
// "all" order.
func (m *Map[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for _, e := range m.e.data {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Keys returns a range-over-func iterator over every key.
func (m *Map[K, V]) Keys() func(yield func(K) bool) {
	return func(yield func(K) bool) {
		for _, e := range m.e.data {
			if !yield(e.key) {
				return
			}
		}
	}
}

// Values returns a range-over-func iterator over every value.
func (m *Map[K, V]) Values() func(yield func(V) bool) {
	return func(yield func(V) bool) {
		for _, e := range m.e.data {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Begin returns a resumable Iterator positioned at the first entry, for use
// when the caller needs to Erase while iterating (range-over-func cannot
// express that safely since it owns the loop).
func (m *Map[K, V]) Begin() Iterator[K, V] {
	if len(m.e.data) == 0 {
		return endIterator(&m.e)
	}
	return Iterator[K, V]{e: &m.e, valueIdx: 0, bucketIdx: -1, rehashGen: m.e.rehashCounter}
}
