// Package lcs computes longest common subsequences of line slices.
//
// Every Calculator returns the same subsequence for the same input: among all
// longest common subsequences it picks the one whose edit path deletes lines
// of the first slice as early as possible. In edit graph terms, the path enters
// every row at the smallest column any optimal path can reach. That path is
// unique, which is what lets the strategies be swapped freely.
package lcs

// Match pairs a line of the first slice with an equal line of the second.
type Match struct {
	From int // index into the first slice
	To   int // index into the second slice
}

// Calculator computes a longest common subsequence.
type Calculator interface {
	// Matches returns the matched index pairs, increasing in both From and To.
	Matches(from, to []string) []Match
}

// Length returns the length of the longest common subsequence of from and to.
func Length(c Calculator, from, to []string) int {
	return len(c.Matches(from, to))
}
