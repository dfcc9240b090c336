// Package diff computes line-level edit scripts between two texts.
//
// A Sequence is a text split into lines, each line keeping its terminator so
// that a missing final newline survives the round trip. Differ turns two
// sequences into a Script of Keep, Add and Remove edits using an LCS
// calculator from package lcs.
//
// Invariants of every Script returned by Differ:
//   - concat(Script.From()) == from
//   - concat(Script.To()) == to
//   - between two Keep edits, every Remove comes before every Add
package diff
