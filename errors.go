package oat

import "errors"

// ErrCapacityOverflow is returned by Insert/TryInsert on a non-BIG table
// when the dense value array is about to reach its 32-bit index ceiling.
// The table's invariants are untouched: the check runs before any
// mutation. Construct the table with WithBig to lift the ceiling.
var ErrCapacityOverflow = errors.New("oat: capacity overflow, construct with WithBig to lift the 32-bit index ceiling")
