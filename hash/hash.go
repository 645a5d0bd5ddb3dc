// Package hash supplies the hash functions that oat's core tables consume
// as their H(key) collaborator (see the package doc of oat for the
// boundary between core and collaborator). None of these functions are
// cryptographic; they exist to spread keys evenly over buckets.
package hash

import (
	"hash/maphash"
	"math/bits"
	"math/rand/v2"
	"unsafe"

	dolt "github.com/dolthub/maphash"
)

var hashkey = [...]uint64{rand.Uint64(), rand.Uint64()}

func String() func(string) uint64 {
	return stringHasher(maphash.MakeSeed())
}

func Bytes() func([]byte) uint64 {
	return bytesHasher(maphash.MakeSeed())
}

func stringHasher(seed maphash.Seed) func(string) uint64 {
	return func(s string) uint64 { return maphash.String(seed, s) }
}

func bytesHasher(seed maphash.Seed) func([]byte) uint64 {
	return func(b []byte) uint64 { return maphash.Bytes(seed, b) }
}

// Generic returns a hash function for any comparable key type, built on
// dolthub/maphash's reflection-free generic hasher. This is the default
// hasher oat's table constructors fall back to when no WithHasher option
// is supplied.
func Generic[K comparable]() func(K) uint64 {
	h := dolt.NewHasher[K]()
	return h.Hash
}

// StringTransparent returns a hasher/equality pair usable for a table keyed
// by string that also wants to accept []byte probes without allocating a
// string copy per lookup, since Go has no std::string_view equivalent to
// reach for.
func StringTransparent() (hashKey func(string) uint64, hashProbe func([]byte) uint64, eq func(string, []byte) bool) {
	seed := maphash.MakeSeed()
	hashKey = stringHasher(seed)
	hashProbe = bytesHasher(seed)
	eq = func(s string, b []byte) bool { return s == string(b) }
	return
}

// Integer hashing algorithm inspired by https://github.com/Nicoshev/rapidhash

type IntType interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

func Number[T IntType]() func(v T) uint64 {
	seed := rand.Uint64()
	var zero T
	seed ^= mix(seed^hashkey[0], hashkey[1]) ^ uint64(unsafe.Sizeof(zero))
	return func(v T) uint64 {
		var a, b uint64
		b = uint64(v)
		if unsafe.Sizeof(v) == 4 {
			b |= b << 32
			a = b
		} else {
			a = bits.RotateLeft64(b, 32)
		}
		b, a = bits.Mul64(a^hashkey[1], b^seed)
		return mix(a^hashkey[0]^uint64(unsafe.Sizeof(v)), b^hashkey[1])
	}
}

func mix(a, b uint64) uint64 {
	hi, lo := bits.Mul64(uint64(a), uint64(b))
	return hi ^ lo
}
