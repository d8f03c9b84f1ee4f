// SPDX-License-Identifier: MIT

// Package matrix - reductions and structural predicates.
//
// Purpose:
//   - RowSums/ColSums/Total reduce any Matrix, with storage fast-paths.
//   - IsZero answers "does this matrix hold any data" the way slot checks need it:
//     the sum of all row sums is exactly zero.
//   - CheckBinary answers "is every entry exactly 0 or 1".
//
// Determinism:
//   - Summation order is fixed per storage (row-major for Dense, column-major
//     for compressed storage), so repeated calls give bit-identical results.

package matrix

import "gonum.org/v1/gonum/mat"

const (
	opRowSums = "RowSums"
	opColSums = "ColSums"
	opTotal   = "Total"
)

// RowSums returns the sum of every row of m.
//
// Errors:
//   - ErrNilMatrix when m is nil.
//
// Complexity: O(r*c) dense, O(nnz) compressed.
func RowSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, validatorErrorf(opRowSums, err)
	}

	return m.RowSums(), nil
}

// ColSums returns the sum of every column of m.
//
// Implementation:
//   - Stage 1: fast-path *CSC (column pointers) and *Dense (gonum column views).
//   - Stage 2: otherwise accumulate through DoNonZero.
//
// Errors:
//   - ErrNilMatrix when m is nil.
func ColSums(m Matrix) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, validatorErrorf(opColSums, err)
	}
	switch t := m.(type) {
	case *CSC:
		return t.ColSums(), nil
	case *Dense:
		_, c := t.m.Dims()
		out := make([]float64, c)
		for j := 0; j < c; j++ {
			out[j] = mat.Sum(t.m.ColView(j))
		}

		return out, nil
	case *SymCSC:
		// symmetric: column sums equal row sums
		return t.RowSums(), nil
	}
	out := make([]float64, m.Cols())
	m.DoNonZero(func(_, j int, v float64) { out[j] += v })

	return out, nil
}

// Total returns the sum of all row sums.
func Total(m Matrix) (float64, error) {
	rs, err := RowSums(m)
	if err != nil {
		return 0, validatorErrorf(opTotal, err)
	}
	var s float64
	for _, v := range rs {
		s += v
	}

	return s, nil
}

// IsZero reports whether the sum of all row sums of m is exactly zero.
// A matrix whose entries cancel out also counts as zero; NaN entries never do.
func IsZero(m Matrix) (bool, error) {
	s, err := Total(m)
	if err != nil {
		return false, err
	}

	return s == 0, nil
}

// CheckBinary reports whether every entry of m is exactly 0 or 1.
//
// Implementation:
//   - Stage 1: walk the non-zero entries, counting those equal to 1.
//   - Stage 2: zeros = rows*cols - visited; binary iff zeros + ones == rows*cols.
//
// Behavior highlights:
//   - Values outside {0,1} (2, 0.5, -1, NaN, ±Inf) land in neither bucket.
//   - A nil matrix, typed nil pointers included, is not binary.
//
// Complexity: O(r*c) dense, O(nnz) compressed.
func CheckBinary(m Matrix) bool {
	if ValidateNotNil(m) != nil {
		return false
	}
	total := m.Rows() * m.Cols()
	var visited, ones int
	m.DoNonZero(func(_, _ int, v float64) {
		visited++
		if v == 1 {
			ones++
		}
	})
	zeros := total - visited

	return zeros+ones == total
}
