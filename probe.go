package oat

// position walks the probe sequence for a single lookup/insert/erase.
// Backward-shift deletion requires the path from a bucket's start position
// s to any occupied bucket b on that path to be contiguous
// (s, s+1, ..., b mod bucketCount), which only holds for plain FIFO
// linear probing, step-by-one.
type position struct {
	bucketCount int
	offset      int
}

// newPosition returns the probe position for the given hash's start bucket.
func newPosition(h uint64, bucketCount int) position {
	return position{bucketCount: bucketCount, offset: int(h % uint64(bucketCount))}
}

// next advances to the next bucket on the probe path.
func (p position) next() position {
	p.offset++
	if p.offset == p.bucketCount {
		p.offset = 0
	}
	return p
}

// distanceFromDesired returns (b - desiredStart) mod bucketCount: how far
// bucket b is from the start position implied by its own stored hash. Used
// by backward-shift deletion to decide whether a displaced entry can be
// shifted back.
func distanceFromDesired(b, desiredStart, bucketCount int) int {
	d := b - desiredStart
	if d < 0 {
		d += bucketCount
	}
	return d
}

// addModulo returns (b+1) mod bucketCount, used to step the backward-shift
// cursor forward.
func addModulo(b, bucketCount int) int {
	b++
	if b == bucketCount {
		b = 0
	}
	return b
}
