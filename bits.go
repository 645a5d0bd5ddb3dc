package oat

import "math/bits"

// setMask is the occupancy bit (bit 7). A stored control byte always has
// it set; the only byte that never has it set is 0, which is therefore the
// unique "empty" sentinel.
const setMask = 0x80

// mixConstant is a fixed 64-bit odd constant used to spread the partial
// hash across the low 7 bits of the control byte, the same multiplicative
// mix Abseil/SwissTable uses to derive H2 from H.
const mixConstant = 0x9E3779B97F4A7C15

// partialHash derives the 7-bit control-plane digest from a 64-bit hash and
// forces bit 7 on, so the result is never 0.
func partialHash(h uint64) uint8 {
	hi, _ := bits.Mul64(h, mixConstant)
	return uint8(hi) | setMask
}

// emptyCtrl reports whether a control byte denotes an empty bucket.
func emptyCtrl(c uint8) bool { return c == 0 }

// truncateHash truncates a 64-bit hash to the stored-hash width used by
// redir[b].fullHash: 32 bits unless big is set, in which case the full 64
// bits are kept.
func truncateHash(h uint64, big bool) uint64 {
	if big {
		return h
	}
	return h & 0xFFFFFFFF
}
