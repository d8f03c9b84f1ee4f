// Package matrix holds the labelled matrices exchanged by the neighbourhood
// transforms: cells × neighbourhoods indicators, features × cells expression
// assays, and neighbourhood adjacency and mean-expression results.
//
// Storage:
//
//   - Dense: row-major, backed by a gonum *mat.Dense (Raw exposes it).
//   - CSC: compressed sparse column, the natural layout for indicators.
//   - SymCSC: symmetric, upper triangle stored as a CSC.
//   - Diagonal: backed by a gonum *mat.DiagDense.
//
// All of them satisfy Matrix (bounds-checked At, RowSums, DoNonZero and
// optional row/column names). Dense and CSC also satisfy ColumnIterator.
//
// Reductions and predicates:
//
//	RowSums, ColSums, Total  - sums (compressed storage visits only non-zeros)
//	IsZero                   - total of all row sums is exactly 0
//	CheckBinary              - every entry is exactly 0 or 1
//
// Placeholder returns the 1×1 zero matrix that marks a slot as never computed;
// IsPlaceholder recognises it.
//
// Dense rejects NaN and ±Inf on Set unless built with DenseOf, which is how
// mean-expression results carry NaN for empty neighbourhoods.
package matrix
