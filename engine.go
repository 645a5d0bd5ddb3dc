package oat

// kv is the entry type stored in data for single-valued variants: a plain
// key for sets, a (key, value) pair for maps. Sets instantiate V as
// struct{}.
type kv[K comparable, V any] struct {
	key   K
	value V
}

// engine is the unexported probing/insertion/erasure/rehash core shared by
// Map and Set. It is deliberately free of any map/set-specific API
// surface; Map and Set are thin exported wrappers around it, so the switch
// between the two is "which exported type embeds this engine", not a
// runtime branch.
type engine[K comparable, V any] struct {
	ctrl  []uint8
	redir []redirEntry
	data  []kv[K, V]

	hash  func(K) uint64
	equal func(K, K) bool

	big          bool
	growLoad     float64
	shrinkLoad   float64
	capacityHint int

	rehashCounter uint64
}

func (e *engine[K, V]) init(c config) {
	e.hash = c.hasher.(func(K) uint64)
	e.equal = c.equal.(func(K, K) bool)
	e.big = c.big
	e.growLoad = c.growLoad
	e.shrinkLoad = c.shrinkLoad
	e.capacityHint = c.capacity
}

func bucketCountFor(hint int) int {
	b := minBucketCount
	for b < hint {
		b *= 2
	}
	return b
}

func (e *engine[K, V]) ensureAllocated(hint int) {
	if e.ctrl != nil {
		return
	}
	b := bucketCountFor(hint)
	e.ctrl = make([]uint8, b)
	e.redir = make([]redirEntry, b)
}

func (e *engine[K, V]) bucketCount() int { return len(e.ctrl) }

func (e *engine[K, V]) load() float64 {
	if len(e.ctrl) == 0 {
		return 0
	}
	return float64(len(e.data)) / float64(len(e.ctrl))
}

// findByHash walks the probe path for a stored hash, calling eq for each
// candidate whose control byte and full hash both match. It returns the
// bucket and value index of the first match, or found=false with bucketIdx
// pointing at the terminating empty bucket (useful for insertion).
func (e *engine[K, V]) findByHash(stored uint64, eq func(K) bool) (bucketIdx int, valueIdx uint64, found bool) {
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
			if r.fullHash == stored && eq(e.data[r.valueIdx].key) {
				return p.offset, r.valueIdx, true
			}
		}
		p = p.next()
	}
}

// partialHashFromStored derives the control byte from the already-truncated
// stored hash, not from the raw 64-bit H(key). Bucket position, the control
// byte, and redir.fullHash are all consistently functions of the stored
// hash, which is what lets rehash reuse redir[b].fullHash verbatim without
// recomputing H.
func partialHashFromStored(stored uint64) uint8 {
	return partialHash(stored)
}

// find looks up key and returns its value index.
func (e *engine[K, V]) find(key K) (valueIdx uint64, found bool) {
	if len(e.ctrl) == 0 {
		return 0, false
	}
	stored := truncateHash(e.hash(key), e.big)
	_, idx, ok := e.findByHash(stored, func(k K) bool { return e.equal(k, key) })
	return idx, ok
}

// insert is try_emplace: on a duplicate key it returns the existing value
// index and existed=true without mutating the table; on an empty slot it
// appends a new entry and returns its index.
func (e *engine[K, V]) insert(key K, makeValue func() V) (valueIdx uint64, existed bool, err error) {
	e.ensureAllocated(e.capacityHint)
	if !e.big && len(e.data) >= maxNonBigEntries {
		return 0, false, ErrCapacityOverflow
	}
	stored := truncateHash(e.hash(key), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return e.equal(k, key) })
	if found {
		return idx, true, nil
	}
	idx = uint64(len(e.data))
	e.data = append(e.data, kv[K, V]{key: key, value: makeValue()})
	e.ctrl[bucketIdx] = partialHashFromStored(stored)
	e.redir[bucketIdx] = redirEntry{fullHash: stored, valueIdx: idx}
	e.rehashIfNeeded()
	return idx, false, nil
}

// eraseBucket removes the whole entry at bucketIdx. It returns the value
// index that used to hold the erased entry and the
// value index that took its place via swap-and-pop (equal to the erased
// index if the erased entry was already last).
func (e *engine[K, V]) eraseBucket(bucketIdx int) (erasedIdx, movedFromIdx uint64) {
	valueIdx := e.redir[bucketIdx].valueIdx
	last := uint64(len(e.data) - 1)

	var lastBucket int
	if valueIdx != last {
		lastKeyHash := truncateHash(e.hash(e.data[last].key), e.big)
		lastBucket, _, _ = e.findByHash(lastKeyHash, func(k K) bool {
			return e.equal(k, e.data[last].key)
		})
	}

	e.ctrl[bucketIdx] = 0
	e.data[valueIdx] = e.data[last]
	var zero kv[K, V]
	e.data[last] = zero
	e.data = e.data[:last]

	if valueIdx != last {
		e.redir[lastBucket].valueIdx = valueIdx
	}

	backwardShiftRepair(e.ctrl, e.redir, bucketIdx)
	return valueIdx, last
}

// backwardShiftRepair starts right after the freed bucket and shifts
// displaced entries back one slot until hitting an empty bucket or one
// already at its own desired start, leaving no tombstone behind. It only
// touches ctrl/redir, so it is shared, unmodified, between the
// single-valued and multi-valued engines.
func backwardShiftRepair(ctrl []uint8, redir []redirEntry, freed int) {
	bucketCount := len(ctrl)
	prev := freed
	cur := addModulo(freed, bucketCount)
	for {
		c := ctrl[cur]
		if emptyCtrl(c) {
			return
		}
		desiredStart := int(redir[cur].fullHash % uint64(bucketCount))
		if distanceFromDesired(cur, desiredStart, bucketCount) == 0 {
			return
		}
		ctrl[prev] = c
		redir[prev] = redir[cur]
		ctrl[cur] = 0
		prev = cur
		cur = addModulo(cur, bucketCount)
	}
}

// eraseKey resolves key to a bucket and erases it if present.
func (e *engine[K, V]) eraseKey(key K) (value V, ok bool) {
	if len(e.ctrl) == 0 {
		return value, false
	}
	stored := truncateHash(e.hash(key), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return e.equal(k, key) })
	if !found {
		return value, false
	}
	value = e.data[idx].value
	e.eraseBucket(bucketIdx)
	return value, true
}

func (e *engine[K, V]) rehashIfNeeded() {
	if e.load() > e.growLoad {
		e.rehash(len(e.ctrl) * 2)
	}
}

// rehashCtrlRedir rebuilds a fresh ctrl/redir pair at newBucketCount by
// reprobing every occupied source bucket's already-stored hash, without
// recomputing it from the key. Shared between both engines since it never
// touches data/keyShadow.
func rehashCtrlRedir(oldCtrl []uint8, oldRedir []redirEntry, newBucketCount int) ([]uint8, []redirEntry) {
	if newBucketCount < minBucketCount {
		newBucketCount = minBucketCount
	}
	ctrl := make([]uint8, newBucketCount)
	redir := make([]redirEntry, newBucketCount)
	for b, c := range oldCtrl {
		if emptyCtrl(c) {
			continue
		}
		r := oldRedir[b]
		p := newPosition(r.fullHash, newBucketCount)
		for !emptyCtrl(ctrl[p.offset]) {
			p = p.next()
		}
		ctrl[p.offset] = c
		redir[p.offset] = r
	}
	return ctrl, redir
}

// rehash rebuilds ctrl/redir at the given bucket count. data is untouched:
// value indices remain valid across rehash.
func (e *engine[K, V]) rehash(newBucketCount int) {
	e.ctrl, e.redir = rehashCtrlRedir(e.ctrl, e.redir, newBucketCount)
	e.rehashCounter++
}

// forceRehash is the explicit force_rehash operation: grow, shrink or
// rebuild at the same bucket count depending on the current load factor,
// clamped to minBucketCount. It is a no-op only on an unallocated table.
func (e *engine[K, V]) forceRehash() {
	if len(e.ctrl) == 0 {
		return
	}
	load := e.load()
	switch {
	case load < e.shrinkLoad:
		e.rehash(len(e.ctrl) / 2)
	case load >= e.growLoad:
		e.rehash(len(e.ctrl) * 2)
	default:
		e.rehash(len(e.ctrl))
	}
}

func (e *engine[K, V]) clear() {
	e.ctrl = nil
	e.redir = nil
	e.data = nil
	e.rehashCounter++
}

func (e *engine[K, V]) fastClear() {
	for i := range e.ctrl {
		e.ctrl[i] = 0
	}
	for i := range e.redir {
		e.redir[i] = redirEntry{}
	}
	e.data = e.data[:0]
	e.rehashCounter++
}

func (e *engine[K, V]) shrinkToFit() {
	if cap(e.data) > len(e.data) {
		d := make([]kv[K, V], len(e.data))
		copy(d, e.data)
		e.data = d
	}
}

func (e *engine[K, V]) clone() engine[K, V] {
	n := engine[K, V]{
		hash: e.hash, equal: e.equal, big: e.big,
		growLoad: e.growLoad, shrinkLoad: e.shrinkLoad,
		rehashCounter: e.rehashCounter,
	}
	if e.ctrl != nil {
		n.ctrl = append([]uint8(nil), e.ctrl...)
		n.redir = append([]redirEntry(nil), e.redir...)
		n.data = append([]kv[K, V](nil), e.data...)
	}
	return n
}
