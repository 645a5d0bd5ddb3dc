package oat

import "sync"

// multiEngine is the unexported core shared by MultiMap and MultiSet. Each
// occupied bucket owns a bucketList, an ordered sequence of values, and a
// shared key cached once in keyShadow, parallel to data, so collision
// resolution never has to dereference into the list to compare keys.
type multiEngine[K comparable, V any] struct {
	ctrl      []uint8
	redir     []redirEntry
	data      []*bucketList[V]
	keyShadow []K

	hash  func(K) uint64
	equal func(K, K) bool

	big          bool
	growLoad     float64
	shrinkLoad   float64
	capacityHint int

	rehashCounter uint64
	totalElements uint64

	nodePool sync.Pool
}

func (e *multiEngine[K, V]) init(c config) {
	e.hash = c.hasher.(func(K) uint64)
	e.equal = c.equal.(func(K, K) bool)
	e.big = c.big
	e.growLoad = c.growLoad
	e.shrinkLoad = c.shrinkLoad
	e.capacityHint = c.capacity
	e.nodePool.New = func() any { return new(node[V]) }
}

func (e *multiEngine[K, V]) getNode() *node[V] {
	n := e.nodePool.Get().(*node[V])
	n.prev, n.next = nil, nil
	return n
}

func (e *multiEngine[K, V]) putNode(n *node[V]) {
	var zero V
	n.value = zero
	e.nodePool.Put(n)
}

func (e *multiEngine[K, V]) ensureAllocated(hint int) {
	if e.ctrl != nil {
		return
	}
	b := bucketCountFor(hint)
	e.ctrl = make([]uint8, b)
	e.redir = make([]redirEntry, b)
}

func (e *multiEngine[K, V]) bucketCount() int { return len(e.ctrl) }

func (e *multiEngine[K, V]) load() float64 {
	if len(e.ctrl) == 0 {
		return 0
	}
	return float64(len(e.data)) / float64(len(e.ctrl))
}

func (e *multiEngine[K, V]) findByHash(stored uint64, eq func(K) bool) (bucketIdx int, valueIdx uint64, found bool) {
	if len(e.ctrl) == 0 {
		return -1, 0, false
	}
	partial := partialHashFromStored(stored)
	p := newPosition(stored, len(e.ctrl))
	for {
		c := e.ctrl[p.offset]
		if emptyCtrl(c) {
			return p.offset, 0, false
		}
		if c == partial {
			r := e.redir[p.offset]
			if r.fullHash == stored && eq(e.keyShadow[r.valueIdx]) {
				return p.offset, r.valueIdx, true
			}
		}
		p = p.next()
	}
}

// insert appends to the existing bucket list on a duplicate key, otherwise
// opens a new one-element bucket. It always succeeds (baring
// ErrCapacityOverflow) and always returns an iterator to the newly
// appended node.
func (e *multiEngine[K, V]) insert(key K, value V) (it MultiIterator[K, V], err error) {
	e.ensureAllocated(e.capacityHint)
	if !e.big && len(e.data) >= maxNonBigEntries {
		return MultiIterator[K, V]{e: e, bucketIdx: -1, end: true}, ErrCapacityOverflow
	}
	stored := truncateHash(e.hash(key), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return e.equal(k, key) })
	n := e.getNode()
	n.value = value
	if found {
		list := e.data[idx]
		list.pushBack(n)
		e.totalElements++
		// bucketIdx is known here, but insert on a duplicate never rehashes,
		// so it is still safe to report it rather than force a re-lookup.
		return MultiIterator[K, V]{e: e, valueIdx: idx, bucketIdx: bucketIdx, cursor: n, rehashGen: e.rehashCounter}, nil
	}
	idx = uint64(len(e.data))
	list := new(bucketList[V])
	list.init()
	list.pushBack(n)
	e.data = append(e.data, list)
	e.keyShadow = append(e.keyShadow, key)
	e.ctrl[bucketIdx] = partialHashFromStored(stored)
	e.redir[bucketIdx] = redirEntry{fullHash: stored, valueIdx: idx}
	e.totalElements++
	e.rehashIfNeeded()
	// A rehash may have just moved every bucket; -1 forces EraseOne/
	// EraseBucket to re-derive bucketIdx from the stored key instead of
	// trusting a position that rehashIfNeeded may have invalidated.
	return MultiIterator[K, V]{e: e, valueIdx: idx, bucketIdx: -1, cursor: n, rehashGen: e.rehashCounter}, nil
}

func (e *multiEngine[K, V]) find(key K) (it MultiIterator[K, V], found bool) {
	if len(e.ctrl) == 0 {
		return MultiIterator[K, V]{e: e, bucketIdx: -1, end: true}, false
	}
	stored := truncateHash(e.hash(key), e.big)
	bucketIdx, idx, ok := e.findByHash(stored, func(k K) bool { return e.equal(k, key) })
	if !ok {
		return MultiIterator[K, V]{e: e, bucketIdx: -1, end: true}, false
	}
	list := e.data[idx]
	return MultiIterator[K, V]{e: e, valueIdx: idx, bucketIdx: bucketIdx, cursor: list.first(), rehashGen: e.rehashCounter}, true
}

// eraseOneFast splices the node out of a bucket that has at least 2
// elements, leaving the bucket alive. Callers must have already verified
// the bucket has >= 2 elements; a single-element bucket must go through
// eraseAll instead.
func (e *multiEngine[K, V]) eraseOneFast(valueIdx uint64, n *node[V]) (next *node[V], atEnd bool) {
	list := e.data[valueIdx]
	next = n.next
	list.remove(n)
	e.putNode(n)
	e.totalElements--
	if !list.isValid(next) {
		return nil, true
	}
	return next, false
}

// eraseAll removes the whole bucket at bucketIdx and every element it
// contains, returning how many elements were removed so callers can
// adjust size bookkeeping.
func (e *multiEngine[K, V]) eraseAll(bucketIdx int) (removed int) {
	valueIdx := e.redir[bucketIdx].valueIdx
	list := e.data[valueIdx]
	removed = list.len
	last := uint64(len(e.data) - 1)

	var lastBucket int
	if valueIdx != last {
		lastKeyHash := truncateHash(e.hash(e.keyShadow[last]), e.big)
		lastBucket, _, _ = e.findByHash(lastKeyHash, func(k K) bool {
			return e.equal(k, e.keyShadow[last])
		})
	}

	e.ctrl[bucketIdx] = 0
	e.data[valueIdx] = e.data[last]
	e.keyShadow[valueIdx] = e.keyShadow[last]
	e.data[last] = nil
	var zeroKey K
	e.keyShadow[last] = zeroKey
	e.data = e.data[:last]
	e.keyShadow = e.keyShadow[:last]

	if valueIdx != last {
		e.redir[lastBucket].valueIdx = valueIdx
	}

	backwardShiftRepair(e.ctrl, e.redir, bucketIdx)
	e.totalElements -= uint64(removed)

	for n := list.first(); list.isValid(n); {
		next := n.next
		e.putNode(n)
		n = next
	}
	return removed
}

func (e *multiEngine[K, V]) eraseKey(key K) (removed int) {
	if len(e.ctrl) == 0 {
		return 0
	}
	stored := truncateHash(e.hash(key), e.big)
	bucketIdx, _, found := e.findByHash(stored, func(k K) bool { return e.equal(k, key) })
	if !found {
		return 0
	}
	return e.eraseAll(bucketIdx)
}

func (e *multiEngine[K, V]) rehashIfNeeded() {
	if e.load() > e.growLoad {
		e.ctrl, e.redir = rehashCtrlRedir(e.ctrl, e.redir, len(e.ctrl)*2)
		e.rehashCounter++
	}
}

func (e *multiEngine[K, V]) forceRehash() {
	if len(e.ctrl) == 0 {
		return
	}
	load := e.load()
	var newCount int
	switch {
	case load < e.shrinkLoad:
		newCount = len(e.ctrl) / 2
	case load >= e.growLoad:
		newCount = len(e.ctrl) * 2
	default:
		newCount = len(e.ctrl)
	}
	e.ctrl, e.redir = rehashCtrlRedir(e.ctrl, e.redir, newCount)
	e.rehashCounter++
}

func (e *multiEngine[K, V]) clear() {
	e.ctrl = nil
	e.redir = nil
	e.data = nil
	e.keyShadow = nil
	e.totalElements = 0
	e.rehashCounter++
}

func (e *multiEngine[K, V]) fastClear() {
	for i := range e.ctrl {
		e.ctrl[i] = 0
	}
	for i := range e.redir {
		e.redir[i] = redirEntry{}
	}
	e.data = e.data[:0]
	e.keyShadow = e.keyShadow[:0]
	e.totalElements = 0
	e.rehashCounter++
}

func (e *multiEngine[K, V]) shrinkToFit() {
	if cap(e.data) > len(e.data) {
		d := make([]*bucketList[V], len(e.data))
		copy(d, e.data)
		e.data = d
	}
	if cap(e.keyShadow) > len(e.keyShadow) {
		k := make([]K, len(e.keyShadow))
		copy(k, e.keyShadow)
		e.keyShadow = k
	}
}

func (e *multiEngine[K, V]) clone() *multiEngine[K, V] {
	n := &multiEngine[K, V]{
		hash: e.hash, equal: e.equal, big: e.big,
		growLoad: e.growLoad, shrinkLoad: e.shrinkLoad,
		rehashCounter: e.rehashCounter, totalElements: e.totalElements,
	}
	n.nodePool.New = func() any { return new(node[V]) }
	if e.ctrl == nil {
		return n
	}
	n.ctrl = append([]uint8(nil), e.ctrl...)
	n.redir = append([]redirEntry(nil), e.redir...)
	n.keyShadow = append([]K(nil), e.keyShadow...)
	n.data = make([]*bucketList[V], len(e.data))
	for i, l := range e.data {
		nl := new(bucketList[V])
		nl.init()
		for c := l.first(); l.isValid(c); c = c.next {
			nn := n.getNode()
			nn.value = c.value
			nl.pushBack(nn)
		}
		n.data[i] = nl
	}
	return n
}
