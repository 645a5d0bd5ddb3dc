package oat

// Stats is a read-only diagnostic snapshot of a table, derived entirely
// from counters the table already maintains.
type Stats struct {
	Len         int
	BucketCount int
	LoadFactor  float64
	RehashCount uint64
}
