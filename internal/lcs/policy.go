package lcs

// DefaultMemoryLimit is the table size, in bytes, above which Policy switches
// to Hirschberg.
const DefaultMemoryLimit int64 = 100 << 20

// cellSize is the size of one Table cell.
const cellSize = 4

// EstimateFootprint returns the bytes Table needs for inputs of m and n lines.
func EstimateFootprint(m, n int) int64 {
	return int64(m+1) * int64(n+1) * cellSize
}

// Policy selects a Calculator from a memory estimate.
type Policy struct {
	// MemoryLimit caps the Table footprint. Zero or negative means DefaultMemoryLimit.
	MemoryLimit int64
}

// Select returns Table when its footprint for m x n lines fits the limit and
// Hirschberg otherwise.
func (p Policy) Select(m, n int) Calculator {
	if EstimateFootprint(m, n) > p.limit() {
		return Hirschberg{}
	}
	return Table{}
}

func (p Policy) limit() int64 {
	if p.MemoryLimit <= 0 {
		return DefaultMemoryLimit
	}
	return p.MemoryLimit
}
