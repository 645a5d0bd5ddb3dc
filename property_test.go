package oat

import (
	"math/rand/v2"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

// checkProbingInvariant verifies that for every occupied bucket b with
// desired start s, none of s..b (inclusive, wrapping) is empty.
func checkProbingInvariant(t *testing.T, ctrl []uint8, redir []redirEntry) {
	t.Helper()
	bucketCount := len(ctrl)
	for b, c := range ctrl {
		if emptyCtrl(c) {
			continue
		}
		s := int(redir[b].fullHash % uint64(bucketCount))
		for cur := s; cur != b; cur = addModulo(cur, bucketCount) {
			assert.False(t, emptyCtrl(ctrl[cur]), "bucket %d on the path from %d to %d must not be empty", cur, s, b)
		}
	}
}

// checkCtrlByteInvariant verifies invariant 4: ctrl[b]==0 iff empty, and no
// byte falls in [1, 0x7F].
func checkCtrlByteInvariant(t *testing.T, ctrl []uint8) {
	t.Helper()
	for _, c := range ctrl {
		if c == 0 {
			continue
		}
		assert.GreaterOrEqual(t, c, uint8(0x80), "occupied control bytes must have bit 7 set")
	}
}

// checkValueIdxPermutation verifies invariant 3: redir[b].value_idx across
// occupied buckets forms a permutation of {0,...,|data|-1}.
func checkValueIdxPermutation(t *testing.T, ctrl []uint8, redir []redirEntry, dataLen int) {
	t.Helper()
	seen := make([]bool, dataLen)
	count := 0
	for b, c := range ctrl {
		if emptyCtrl(c) {
			continue
		}
		idx := redir[b].valueIdx
		assert.Less(t, idx, uint64(dataLen))
		assert.False(t, seen[idx], "duplicate valueIdx %d", idx)
		seen[idx] = true
		count++
	}
	assert.Equal(t, dataLen, count)
}

// Invariant 1 + 5: every inserted key is found, and round-trips its value.
func Test_Invariant_InsertThenFindRoundTrips(t *testing.T) {
	f := func(keys []int16, values []int32) bool {
		n := min(len(keys), len(values))
		m := NewMap[int16, int32]()
		seen := map[int16]int32{}
		for i := 0; i < n; i++ {
			if _, ok := seen[keys[i]]; !ok {
				seen[keys[i]] = values[i]
			}
			m.Insert(keys[i], values[i])
		}
		if m.Len() != len(seen) {
			return false
		}
		for k, v := range seen {
			got, ok := m.Get(k)
			if !ok || got != v {
				return false
			}
		}
		return true
	}
	assert.NoError(t, quick.Check(f, &quick.Config{MaxCount: 200}))
}

// Invariant 2, 3, 4 after a mixed insert/erase sequence.
func Test_Invariant_ProbingAndPermutationAfterMixedOps(t *testing.T) {
	m := NewMap[int, int](WithLoadFactor(0.80, 0.40))
	rng := rand.New(rand.NewPCG(1, 2))
	present := map[int]bool{}
	for i := range 5000 {
		k := rng.IntN(3000)
		if rng.IntN(3) == 0 && len(present) > 0 {
			// pick an existing key to erase
			for existing := range present {
				m.Delete(existing)
				delete(present, existing)
				break
			}
			continue
		}
		m.Insert(k, i)
		present[k] = true
	}
	checkProbingInvariant(t, m.e.ctrl, m.e.redir)
	checkCtrlByteInvariant(t, m.e.ctrl)
	checkValueIdxPermutation(t, m.e.ctrl, m.e.redir, len(m.e.data))
	assert.Equal(t, len(present), m.Len())
}

// Invariant 5 (multi form): inserting the same key n times then erasing it
// removes exactly n from size.
func Test_Invariant_MultiInsertNThenEraseAll(t *testing.T) {
	ms := NewMultiSet[string]()
	const n = 37
	for range n {
		ms.Insert("k")
	}
	assert.Equal(t, n, ms.Count("k"))
	removed := ms.Delete("k")
	assert.Equal(t, n, removed)
	assert.Equal(t, 0, ms.Len())
}

// Invariant 6: force_rehash never changes size or the stored key/value
// multiset, and find results stay equivalent.
func Test_Invariant_ForceRehashIsSemanticsPreserving(t *testing.T) {
	m := NewMap[int, int](WithLoadFactor(0.80, 0.40))
	for i := range 500 {
		m.Insert(i, i*2)
	}
	before := map[int]int{}
	for k, v := range m.All() {
		before[k] = v
	}
	sizeBefore := m.Len()

	m.Rehash()

	assert.Equal(t, sizeBefore, m.Len())
	for k, v := range before {
		got, ok := m.Get(k)
		assert.True(t, ok)
		assert.Equal(t, v, got)
	}
	after := map[int]int{}
	for k, v := range m.All() {
		after[k] = v
	}
	assert.Equal(t, before, after)
}

// Invariant 7: erasing one key leaves every other key's find result intact.
func Test_Invariant_EraseLeavesOthersIntact(t *testing.T) {
	m := NewMap[int, int]()
	for i := range 20 {
		m.Insert(i, i*i)
	}
	m.Delete(10)
	for i := range 20 {
		if i == 10 {
			continue
		}
		v, ok := m.Get(i)
		assert.True(t, ok)
		assert.Equal(t, i*i, v)
	}
}

// Invariant 8: staying at or under 80% load on a floor-1024 table triggers
// zero rehashes.
func Test_Invariant_NoRehashUnder80PercentLoad(t *testing.T) {
	m := NewMap[int, struct{}]()
	for i := range 819 {
		m.Insert(i, struct{}{})
	}
	assert.Equal(t, uint64(0), m.e.rehashCounter)
	assert.Equal(t, 1024, m.BucketCount())
}

// S1: single-variant insert on a duplicate key keeps the first value.
func Test_Scenario_S1(t *testing.T) {
	m := NewMap[int, string]()
	m.Insert(1, "a")
	m.Insert(2, "b")
	m.Insert(1, "c")
	assert.Equal(t, 2, m.Len())
	v, _ := m.Get(1)
	assert.Equal(t, "a", v)
}

// S2: multi-map erase(key) empties the bucket; erase_one on a targeted
// iterator leaves the rest in order.
func Test_Scenario_S2(t *testing.T) {
	mm := NewMultiMap[int, string]()
	mm.Insert(1, "a")
	itB, _ := mm.Insert(1, "b")
	mm.Insert(1, "c")

	full := NewMultiMap[int, string]()
	full.Insert(1, "a")
	full.Insert(1, "b")
	full.Insert(1, "c")
	full.Delete(1)
	assert.Equal(t, 0, full.Len())

	itB.EraseOne()
	assert.Equal(t, 2, mm.Len())
	assert.Equal(t, []string{"a", "c"}, mm.Values(1))
}

// S3: crossing the 80% load threshold on a floor-1024 table doubles the
// bucket count and every key remains findable.
func Test_Scenario_S3(t *testing.T) {
	m := NewMap[int, struct{}](WithLoadFactor(0.80, 0.40))
	for i := range 2048 {
		m.Insert(i, struct{}{})
	}
	assert.GreaterOrEqual(t, m.BucketCount(), 2048)
	for i := range 2048 {
		_, ok := m.Get(i)
		assert.True(t, ok)
	}
}

// S4: bulk insert then erase a prefix; probing invariant still holds and
// erased keys are gone.
func Test_Scenario_S4(t *testing.T) {
	const total, erased = 100000, 1000
	m := NewMap[int, struct{}](WithLoadFactor(0.80, 0.40))
	for i := range total {
		m.Insert(i, struct{}{})
	}
	for i := range erased {
		m.Delete(i)
	}
	assert.Equal(t, total-erased, m.Len())
	for i := range erased {
		_, ok := m.Get(i)
		assert.False(t, ok)
	}
	checkProbingInvariant(t, m.e.ctrl, m.e.redir)
}

// S5: force_rehash on an empty table is a no-op; on a table well under the
// shrink threshold, bucket_count halves but never drops below the floor.
func Test_Scenario_S5(t *testing.T) {
	m := NewMap[int, struct{}]()
	m.Rehash()
	assert.Equal(t, 0, m.BucketCount())

	m2 := NewMap[int, struct{}](WithLoadFactor(0.80, 0.40))
	for i := range 2048 {
		m2.Insert(i, struct{}{})
	}
	bcBefore := m2.BucketCount()
	for i := range 2048 - 614 {
		m2.Delete(i)
	}
	m2.Rehash()
	assert.Less(t, m2.BucketCount(), bcBefore)
	assert.GreaterOrEqual(t, m2.BucketCount(), minBucketCount)
}
