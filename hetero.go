package oat

// Heterogeneous lookup lets a caller probe a table with a type other than
// its key type K, as long as the hash and equality functions supplied here
// agree with the table's own. Go methods cannot add type parameters beyond
// the receiver's, so this is exposed as free functions parameterized by an
// extra probe type P, mirroring how the standard library's generic
// slices/maps packages add algorithms as free functions rather than
// methods.

// FindHetero looks up a probe of type P against a Map[K, V], using
// hashProbe and eq in place of the table's own H/Eq. Both must agree with
// the table's H/Eq for any K/P pair that denote the same logical key; if
// they don't, behavior is the caller's bug, not this function's.
func FindHetero[K comparable, V any, P any](m *Map[K, V], probe P, hashProbe func(P) uint64, eq func(K, P) bool) Iterator[K, V] {
	e := &m.e
	if len(e.ctrl) == 0 {
		return endIterator(e)
	}
	stored := truncateHash(hashProbe(probe), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return eq(k, probe) })
	if !found {
		return endIterator(e)
	}
	return Iterator[K, V]{e: e, valueIdx: idx, bucketIdx: bucketIdx, rehashGen: e.rehashCounter}
}

// DeleteHetero erases the entry matching probe, if any, returning its value.
func DeleteHetero[K comparable, V any, P any](m *Map[K, V], probe P, hashProbe func(P) uint64, eq func(K, P) bool) (V, bool) {
	e := &m.e
	var zero V
	if len(e.ctrl) == 0 {
		return zero, false
	}
	stored := truncateHash(hashProbe(probe), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return eq(k, probe) })
	if !found {
		return zero, false
	}
	v := e.data[idx].value
	e.eraseBucket(bucketIdx)
	return v, true
}

// FindHeteroSet is FindHetero's Set counterpart.
func FindHeteroSet[K comparable, P any](s *Set[K], probe P, hashProbe func(P) uint64, eq func(K, P) bool) Iterator[K, struct{}] {
	e := &s.e
	if len(e.ctrl) == 0 {
		return endIterator(e)
	}
	stored := truncateHash(hashProbe(probe), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return eq(k, probe) })
	if !found {
		return endIterator(e)
	}
	return Iterator[K, struct{}]{e: e, valueIdx: idx, bucketIdx: bucketIdx, rehashGen: e.rehashCounter}
}

// FindHeteroMulti is FindHetero's MultiMap counterpart; the returned
// iterator is bucket-local, matching (*multiEngine).find.
func FindHeteroMulti[K comparable, V any, P any](m *MultiMap[K, V], probe P, hashProbe func(P) uint64, eq func(K, P) bool) (MultiIterator[K, V], bool) {
	e := &m.e
	if len(e.ctrl) == 0 {
		return MultiIterator[K, V]{e: e, bucketIdx: -1, end: true}, false
	}
	stored := truncateHash(hashProbe(probe), e.big)
	bucketIdx, idx, found := e.findByHash(stored, func(k K) bool { return eq(k, probe) })
	if !found {
		return MultiIterator[K, V]{e: e, bucketIdx: -1, end: true}, false
	}
	list := e.data[idx]
	return MultiIterator[K, V]{e: e, valueIdx: idx, bucketIdx: bucketIdx, cursor: list.first(), rehashGen: e.rehashCounter}, true
}

// DeleteHeteroMulti erases every element stored under the key matching
// probe, returning the count removed.
func DeleteHeteroMulti[K comparable, V any, P any](m *MultiMap[K, V], probe P, hashProbe func(P) uint64, eq func(K, P) bool) int {
	e := &m.e
	if len(e.ctrl) == 0 {
		return 0
	}
	stored := truncateHash(hashProbe(probe), e.big)
	bucketIdx, _, found := e.findByHash(stored, func(k K) bool { return eq(k, probe) })
	if !found {
		return 0
	}
	return e.eraseAll(bucketIdx)
}
