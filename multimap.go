package oat

// MultiMap is a key-to-ordered-list-of-values associative container.
type MultiMap[K comparable, V any] struct {
	e multiEngine[K, V]
}

// NewMultiMap constructs an empty MultiMap.
func NewMultiMap[K comparable, V any](opts ...Option) *MultiMap[K, V] {
	m := &MultiMap[K, V]{}
	m.e.init(newConfig[K](opts))
	return m
}

// NewMultiMapFrom constructs a MultiMap and sequentially inserts pairs.
func NewMultiMapFrom[K comparable, V any](pairs []KV[K, V], opts ...Option) *MultiMap[K, V] {
	m := NewMultiMap[K, V](opts...)
	for _, p := range pairs {
		m.Insert(p.Key, p.Value)
	}
	return m
}

// Len returns the total number of elements stored, not the number of
// distinct keys.
func (m *MultiMap[K, V]) Len() int { return int(m.e.totalElements) }

// KeyCount returns the number of distinct keys (buckets in use).
func (m *MultiMap[K, V]) KeyCount() int { return len(m.e.data) }

// BucketCount returns the current number of buckets.
func (m *MultiMap[K, V]) BucketCount() int { return m.e.bucketCount() }

// Insert appends value to key's ordered list, creating the bucket if
// needed.
func (m *MultiMap[K, V]) Insert(key K, value V) (MultiIterator[K, V], error) {
	return m.e.insert(key, value)
}

// Find returns an iterator to the first value stored under key.
func (m *MultiMap[K, V]) Find(key K) (MultiIterator[K, V], bool) {
	return m.e.find(key)
}

// Values returns every value stored under key, in insertion order.
func (m *MultiMap[K, V]) Values(key K) []V {
	it, ok := m.e.find(key)
	if !ok {
		return nil
	}
	list := m.e.data[it.valueIdx]
	out := make([]V, 0, list.len)
	for n := list.first(); list.isValid(n); n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Delete removes every value stored under key, returning how many
// elements were removed.
func (m *MultiMap[K, V]) Delete(key K) int {
	return m.e.eraseKey(key)
}

// Clear fully deallocates the table.
func (m *MultiMap[K, V]) Clear() { m.e.clear() }

// FastClear empties the table but retains its backing capacity.
func (m *MultiMap[K, V]) FastClear() { m.e.fastClear() }

// Rehash implements force_rehash.
func (m *MultiMap[K, V]) Rehash() { m.e.forceRehash() }

// ShrinkToFit is advisory.
func (m *MultiMap[K, V]) ShrinkToFit() { m.e.shrinkToFit() }

// Clone deep-copies the table, including every per-bucket list.
func (m *MultiMap[K, V]) Clone() *MultiMap[K, V] {
	return &MultiMap[K, V]{e: *m.e.clone()}
}

// Stats returns a read-only diagnostic snapshot.
func (m *MultiMap[K, V]) Stats() Stats {
	return Stats{
		Len: int(m.e.totalElements), BucketCount: m.e.bucketCount(),
		LoadFactor: m.e.load(), RehashCount: m.e.rehashCounter,
	}
}

// All returns a range-over-func iterator over every (key, value) pair
// across every bucket.
func (m *MultiMap[K, V]) All() func(yield func(K, V) bool) {
	return func(yield func(K, V) bool) {
		for i, list := range m.e.data {
			key := m.e.keyShadow[i]
			for n := list.first(); list.isValid(n); n = n.next {
				if !yield(key, n.value) {
					return
				}
			}
		}
	}
}

// Begin returns a resumable all-mode MultiIterator positioned at the first
// element, for erase-while-iterating use.
func (m *MultiMap[K, V]) Begin() MultiIterator[K, V] {
	if len(m.e.data) == 0 {
		return MultiIterator[K, V]{e: &m.e, bucketIdx: -1, end: true}
	}
	return MultiIterator[K, V]{
		e: &m.e, valueIdx: 0, bucketIdx: -1, allMode: true,
		cursor: m.e.data[0].first(), rehashGen: m.e.rehashCounter,
	}
}
