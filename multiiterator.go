package oat

// MultiIterator walks a MultiMap or MultiSet, either across every bucket
// ("all" mode) or within a single bucket's ordered list ("bucket" mode).
// Like Iterator, its valueIdx survives a rehash; its bucketIdx does not
// and is recomputed on demand by EraseOne/EraseBucket.
type MultiIterator[K comparable, V any] struct {
	e         *multiEngine[K, V]
	valueIdx  uint64
	bucketIdx int // -1 means "unknown, re-derive on erase"
	cursor    *node[V]
	allMode   bool
	rehashGen uint64
	end       bool
}

// Done reports whether the iterator is the end sentinel.
func (it *MultiIterator[K, V]) Done() bool { return it.end }

// Key returns the shared key of the bucket the iterator currently points
// into.
func (it *MultiIterator[K, V]) Key() K { return it.e.keyShadow[it.valueIdx] }

// Value returns the value at the iterator's current list position.
func (it *MultiIterator[K, V]) Value() V { return it.cursor.value }

// Next advances the iterator, within the current bucket's list and, in
// "all" mode, across buckets once the list is exhausted.
func (it *MultiIterator[K, V]) Next() {
	if it.end {
		return
	}
	list := it.e.data[it.valueIdx]
	it.cursor = it.cursor.next
	if list.isValid(it.cursor) {
		return
	}
	if !it.allMode {
		it.end = true
		return
	}
	it.valueIdx++
	it.bucketIdx = -1
	if it.valueIdx >= uint64(len(it.e.data)) {
		it.end = true
		return
	}
	it.cursor = it.e.data[it.valueIdx].first()
}

func (it *MultiIterator[K, V]) resolveBucket() (int, bool) {
	if it.bucketIdx >= 0 && it.rehashGen == it.e.rehashCounter {
		return it.bucketIdx, true
	}
	key := it.e.keyShadow[it.valueIdx]
	stored := truncateHash(it.e.hash(key), it.e.big)
	b, _, found := it.e.findByHash(stored, func(k K) bool { return it.e.equal(k, key) })
	return b, found
}

// EraseOne removes just the element this iterator points to, leaving the
// rest of the bucket's list intact. If it was the bucket's last remaining
// element, this devolves to removing the whole bucket. It advances the
// iterator in place — callers should stop using it once Done() is true.
func (it *MultiIterator[K, V]) EraseOne() {
	if it.end {
		return
	}
	list := it.e.data[it.valueIdx]
	if list.len >= 2 {
		next, atEnd := it.e.eraseOneFast(it.valueIdx, it.cursor)
		if atEnd {
			it.end = true
			return
		}
		it.cursor = next
		return
	}
	bucketIdx, found := it.resolveBucket()
	if !found {
		it.end = true
		return
	}
	it.e.eraseAll(bucketIdx)
	it.end = true
}

// EraseBucket removes the whole bucket this iterator points into, along
// with every element it contains.
func (it *MultiIterator[K, V]) EraseBucket() {
	if it.end {
		return
	}
	bucketIdx, found := it.resolveBucket()
	if !found {
		it.end = true
		return
	}
	it.e.eraseAll(bucketIdx)
	it.end = true
}
