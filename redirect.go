package oat

import "math"

// redirEntry is the (fullHash, valueIdx) pair stored per occupied bucket,
// redirecting a bucket to its slot in data. Both fields are kept as uint64
// regardless of the BIG switch; non-BIG tables simply truncate the hash to
// 32 bits (truncateHash) and enforce a uint32 ceiling on valueIdx
// (maxNonBigEntries). One concrete struct serves both widths, instead of
// two generic-width structs templated on bit size, keeping the
// probing/erase/rehash code free of a second type parameter while still
// honoring the tested capacity ceiling and truncation behavior.
type redirEntry struct {
	fullHash uint64
	valueIdx uint64
}

// maxNonBigEntries is the overflow boundary for non-BIG tables: insertion
// fails once |data| has reached this value.
const maxNonBigEntries = math.MaxUint32 - 1
