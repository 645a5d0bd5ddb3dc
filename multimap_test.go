package oat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MultiMap_InsertPreservesOrder(t *testing.T) {
	m := NewMultiMap[string, int]()
	_, err := m.Insert("a", 1)
	assert.NoError(t, err)
	_, err = m.Insert("a", 2)
	assert.NoError(t, err)
	_, err = m.Insert("a", 3)
	assert.NoError(t, err)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 1, m.KeyCount())
	assert.Equal(t, []int{1, 2, 3}, m.Values("a"))
}

func Test_MultiMap_DistinctKeysDoNotMix(t *testing.T) {
	m := NewMultiMap[string, int]()
	m.Insert("a", 1)
	m.Insert("b", 2)
	m.Insert("a", 3)

	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.KeyCount())
	assert.Equal(t, []int{1, 3}, m.Values("a"))
	assert.Equal(t, []int{2}, m.Values("b"))
}

func Test_MultiMap_DeleteRemovesWholeBucket(t *testing.T) {
	m := NewMultiMap[string, int]()
	m.Insert("a", 1)
	m.Insert("a", 2)
	m.Insert("b", 3)

	removed := m.Delete("a")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, m.Len())
	assert.Nil(t, m.Values("a"))
	assert.Equal(t, []int{3}, m.Values("b"))
}

// S2 from the invariant suite: erase_one on a multi-element bucket leaves
// the bucket and its remaining order intact; erase (whole key) always
// removes everything regardless of ordering.
func Test_MultiMap_EraseOneVsEraseAll(t *testing.T) {
	m := NewMultiMap[string, int]()
	it1, _ := m.Insert("a", 1)
	_, _ = m.Insert("a", 2)
	_, _ = m.Insert("a", 3)

	it1.EraseOne()
	assert.False(t, it1.Done(), "erasing a non-last element advances the iterator instead of ending it")
	assert.Equal(t, 2, it1.Value())
	assert.Equal(t, []int{2, 3}, m.Values("a"))
	assert.Equal(t, 2, m.Len())

	removed := m.Delete("a")
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.KeyCount())
}

func Test_MultiMap_EraseOneOnlyElementDevolves(t *testing.T) {
	m := NewMultiMap[string, int]()
	it, _ := m.Insert("a", 1)
	it.EraseOne()
	assert.True(t, it.Done())
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, 0, m.KeyCount())
}

func Test_MultiMap_FindReturnsFirst(t *testing.T) {
	m := NewMultiMap[string, int]()
	m.Insert("a", 10)
	m.Insert("a", 20)

	it, ok := m.Find("a")
	assert.True(t, ok)
	assert.Equal(t, "a", it.Key())
	assert.Equal(t, 10, it.Value())
	it.Next()
	assert.False(t, it.Done())
	assert.Equal(t, 20, it.Value())
	it.Next()
	assert.True(t, it.Done())
}

func Test_MultiMap_AllVisitsEveryElement(t *testing.T) {
	m := NewMultiMap[string, int]()
	m.Insert("a", 1)
	m.Insert("a", 2)
	m.Insert("b", 3)

	count := 0
	for range m.All() {
		count++
	}
	assert.Equal(t, 3, count)
}

func Test_MultiMap_Clone(t *testing.T) {
	m := NewMultiMap[string, int]()
	m.Insert("a", 1)
	m.Insert("a", 2)

	c := m.Clone()
	c.Insert("a", 3)

	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 3, c.Len())
	assert.Equal(t, []int{1, 2}, m.Values("a"))
	assert.Equal(t, []int{1, 2, 3}, c.Values("a"))
}

func Test_MultiMap_RehashPreservesMultiplicity(t *testing.T) {
	m := NewMultiMap[int, int](WithLoadFactor(0.80, 0.40))
	for i := range 50 {
		m.Insert(i%10, i)
	}
	m.Rehash()
	assert.Equal(t, 50, m.Len())
	assert.Equal(t, 10, m.KeyCount())
	for k := range 10 {
		assert.Len(t, m.Values(k), 5)
	}
}

func Test_MultiMap_WithBig(t *testing.T) {
	m := NewMultiMap[int, int](WithBig(), WithLoadFactor(0.80, 0.40))
	for i := range 200 {
		_, err := m.Insert(i%20, i)
		assert.NoError(t, err)
	}
	m.Rehash()
	assert.Equal(t, 200, m.Len())
	assert.Equal(t, 20, m.KeyCount())
	for k := range 20 {
		assert.Len(t, m.Values(k), 10)
	}

	removed := m.Delete(5)
	assert.Equal(t, 10, removed)
	assert.Equal(t, 190, m.Len())
	assert.Equal(t, 19, m.KeyCount())
}
