package oat

import (
	"testing"

	"github.com/oatable/oat/hash"
	"github.com/stretchr/testify/assert"
)

// S6: a string-keyed table can be probed with a []byte without allocating a
// string copy at the call site, as long as H and Eq are supplied together
// and agree with the table's own H/Eq for any (string, []byte) pair that
// denote the same content.
func Test_FindHetero_StringByteProbe(t *testing.T) {
	hashKey, hashProbe, eq := hash.StringTransparent()
	m := NewMap[string, int](WithHasher[string](hashKey))
	m.Insert("hello", 1)
	m.Insert("world", 2)

	it := FindHetero[string, int, []byte](m, []byte("hello"), hashProbe, eq)
	assert.False(t, it.Done())
	assert.Equal(t, 1, it.Value())

	it = FindHetero[string, int, []byte](m, []byte("missing"), hashProbe, eq)
	assert.True(t, it.Done())
}

func Test_DeleteHetero_StringByteProbe(t *testing.T) {
	hashKey, hashProbe, eq := hash.StringTransparent()
	m := NewMap[string, int](WithHasher[string](hashKey))
	m.Insert("a", 10)

	v, ok := DeleteHetero[string, int, []byte](m, []byte("a"), hashProbe, eq)
	assert.True(t, ok)
	assert.Equal(t, 10, v)
	assert.Equal(t, 0, m.Len())
}

func Test_FindHeteroSet(t *testing.T) {
	hashKey, hashProbe, eq := hash.StringTransparent()
	s := NewSet[string](WithHasher[string](hashKey))
	s.Insert("x")

	it := FindHeteroSet[string, []byte](s, []byte("x"), hashProbe, eq)
	assert.False(t, it.Done())
}

func Test_FindAndDeleteHeteroMulti(t *testing.T) {
	hashKey, hashProbe, eq := hash.StringTransparent()
	m := NewMultiMap[string, int](WithHasher[string](hashKey))
	m.Insert("a", 1)
	m.Insert("a", 2)

	it, ok := FindHeteroMulti[string, int, []byte](m, []byte("a"), hashProbe, eq)
	assert.True(t, ok)
	assert.Equal(t, 1, it.Value())

	removed := DeleteHeteroMulti[string, int, []byte](m, []byte("a"), hashProbe, eq)
	assert.Equal(t, 2, removed)
	assert.Equal(t, 0, m.Len())
}
