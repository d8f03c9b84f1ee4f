// SPDX-License-Identifier: MIT

// Package matrix: the Matrix contract shared by dense, sparse, symmetric and
// diagonal storage, plus dimension names.
//
// What & Why:
//
//	Neighbourhood indicators are large and sparse; expression assays can be
//	dense or sparse; adjacency results are small and dense. Every consumer in
//	this module only needs bounds-checked reads, a row-sum reduction and a
//	visitor over stored non-zero entries, so that is all the interface asks for.
//
// Complexity:
//
//	Rows() and Cols() run in O(1). At() is O(1) for dense storage and
//	O(log nnz(col)) for compressed storage. RowSums() and DoNonZero() are
//	O(r*c) for dense storage and O(nnz) for compressed storage.
package matrix

// Matrix is a read-only, labelled, two-dimensional array of float64 values.
type Matrix interface {
	// Rows returns the number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// At returns the element at (i, j) or ErrOutOfRange.
	At(i, j int) (float64, error)

	// RowSums returns a fresh slice holding the sum of every row.
	RowSums() []float64

	// DoNonZero calls f once for every entry whose value is not exactly zero.
	// NaN entries are visited. Order is implementation-defined but stable.
	DoNonZero(f func(i, j int, v float64))

	// RowNames returns the row labels, or nil when the rows are unnamed.
	RowNames() []string

	// ColNames returns the column labels, or nil when the columns are unnamed.
	ColNames() []string
}

// ColumnIterator is implemented by storages that can walk one column's
// non-zero entries without touching the rest of the matrix.
type ColumnIterator interface {
	DoCol(j int, f func(i int, v float64))
}

// dimNames holds optional axis labels. A nil slice means "unnamed".
type dimNames struct {
	rowNames []string
	colNames []string
}

// RowNames returns the row labels (nil when unnamed).
func (n *dimNames) RowNames() []string { return n.rowNames }

// ColNames returns the column labels (nil when unnamed).
func (n *dimNames) ColNames() []string { return n.colNames }

// setNames validates and stores copies of the given labels.
func (n *dimNames) setNames(rows, cols int, rowNames, colNames []string) error {
	if err := ValidateNames(rowNames, rows); err != nil {
		return err
	}
	if err := ValidateNames(colNames, cols); err != nil {
		return err
	}
	n.rowNames = cloneStrings(rowNames)
	n.colNames = cloneStrings(colNames)

	return nil
}

// clone returns an independent copy of the labels.
func (n *dimNames) clone() dimNames {
	return dimNames{rowNames: cloneStrings(n.rowNames), colNames: cloneStrings(n.colNames)}
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)

	return out
}

// pickNames returns names[idx[k]] for every k, or nil when names is nil.
func pickNames(names []string, idx []int) []string {
	if names == nil {
		return nil
	}
	out := make([]string, len(idx))
	for k, i := range idx {
		out[k] = names[i]
	}

	return out
}
