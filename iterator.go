package oat

// Iterator walks a Map or Set's dense data array in "all" mode, or names a
// single find() result. Its value index stays meaningful across a rehash
// (data is never reordered by rehash); its bucket index does not, and is
// lazily re-derived by Erase when needed.
type Iterator[K comparable, V any] struct {
	e         *engine[K, V]
	valueIdx  uint64
	bucketIdx int // -1 means "unknown, re-derive from the stored key on Erase"
	rehashGen uint64
	end       bool
}

func endIterator[K comparable, V any](e *engine[K, V]) Iterator[K, V] {
	return Iterator[K, V]{e: e, end: true}
}

// Done reports whether the iterator is the end sentinel.
func (it *Iterator[K, V]) Done() bool { return it.end }

// Key returns the key the iterator currently points at. Calling it on a
// Done iterator is undefined behavior from the core's perspective.
func (it *Iterator[K, V]) Key() K { return it.e.data[it.valueIdx].key }

// Value returns the value the iterator currently points at.
func (it *Iterator[K, V]) Value() V { return it.e.data[it.valueIdx].value }

// Next advances the iterator to the next entry in data order.
func (it *Iterator[K, V]) Next() {
	if it.end {
		return
	}
	it.valueIdx++
	it.bucketIdx = -1
	if it.valueIdx >= uint64(len(it.e.data)) {
		it.end = true
	}
}

// Equal compares two iterators by position.
func (it *Iterator[K, V]) Equal(other *Iterator[K, V]) bool {
	if it.end != other.end {
		return false
	}
	return it.end || it.valueIdx == other.valueIdx
}

// Erase removes the entry this iterator points to. It is a defensive no-op
// on a Done iterator. It invalidates this iterator, and any other iterator
// that pointed at whatever entry occupied data's last slot before the
// erase (it was moved to fill the gap).
func (it *Iterator[K, V]) Erase() {
	if it.end {
		return
	}
	bucketIdx := it.bucketIdx
	if bucketIdx < 0 || it.rehashGen != it.e.rehashCounter {
		key := it.e.data[it.valueIdx].key
		stored := truncateHash(it.e.hash(key), it.e.big)
		b, _, found := it.e.findByHash(stored, func(k K) bool { return it.e.equal(k, key) })
		if !found {
			it.end = true
			return
		}
		bucketIdx = b
	}
	it.e.eraseBucket(bucketIdx)
	it.end = true
}
