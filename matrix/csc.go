// SPDX-License-Identifier: MIT

// Package matrix - compressed-sparse-column storage.
//
// Purpose:
//   - Hold neighbourhood-indicator matrices (cells × neighbourhoods) and sparse
//     assays without materialising the zeros.
//   - Column-major access is the hot path: every neighbourhood is one column.
//
// Layout:
//   - colPtr has Cols()+1 entries; column j occupies [colPtr[j], colPtr[j+1]).
//   - rowIdx is strictly increasing inside each column.
//   - val holds the stored values; explicit zeros are legal but skipped by
//     DoNonZero/DoCol.
//
// Complexity quicksheet:
//   - At: O(log nnz(col)); RowSums/DoNonZero: O(nnz); DoCol: O(nnz(col)).

package matrix

import (
	"fmt"
	"sort"
)

// CSC is a compressed-sparse-column general matrix.
type CSC struct {
	r, c   int
	colPtr []int
	rowIdx []int
	val    []float64
	dimNames
}

var (
	_ Matrix         = (*CSC)(nil)
	_ ColumnIterator = (*CSC)(nil)
)

// NewCSC validates and adopts copies of raw CSC arrays.
//
// Errors:
//   - ErrInvalidDimensions when rows or cols is not positive.
//   - ErrBadStructure when the arrays do not describe a valid CSC layout.
//   - ErrOutOfRange when a row index falls outside [0, rows).
func NewCSC(rows, cols int, colPtr, rowIdx []int, val []float64) (*CSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if err := validateCSC(rows, cols, colPtr, rowIdx, val); err != nil {
		return nil, err
	}

	return &CSC{
		r:      rows,
		c:      cols,
		colPtr: append([]int(nil), colPtr...),
		rowIdx: append([]int(nil), rowIdx...),
		val:    append([]float64(nil), val...),
	}, nil
}

func validateCSC(rows, cols int, colPtr, rowIdx []int, val []float64) error {
	if len(colPtr) != cols+1 || colPtr[0] != 0 {
		return fmt.Errorf("NewCSC: colPtr: %w", ErrBadStructure)
	}
	if len(rowIdx) != len(val) || colPtr[cols] != len(rowIdx) {
		return fmt.Errorf("NewCSC: nnz: %w", ErrBadStructure)
	}
	var j, k int
	for j = 0; j < cols; j++ {
		if colPtr[j] > colPtr[j+1] {
			return fmt.Errorf("NewCSC: column %d: %w", j, ErrBadStructure)
		}
		for k = colPtr[j]; k < colPtr[j+1]; k++ {
			if rowIdx[k] < 0 || rowIdx[k] >= rows {
				return fmt.Errorf("NewCSC: row index %d: %w", rowIdx[k], ErrOutOfRange)
			}
			if k > colPtr[j] && rowIdx[k] <= rowIdx[k-1] {
				return fmt.Errorf("NewCSC: column %d not strictly increasing: %w", j, ErrBadStructure)
			}
		}
	}

	return nil
}

// NewCSCFromTriplets assembles a CSC matrix from (row, col, value) triplets.
//
// Behavior highlights:
//   - Duplicate coordinates are summed.
//   - Entries that sum to exactly zero are dropped.
//
// Errors:
//   - ErrInvalidDimensions, ErrDimensionMismatch (slice lengths differ),
//     ErrOutOfRange (coordinate outside the shape).
//
// Complexity:
//   - Time O(nnz log nnz), Space O(nnz).
func NewCSCFromTriplets(rows, cols int, ri, ci []int, v []float64) (*CSC, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(ri) != len(ci) || len(ri) != len(v) {
		return nil, fmt.Errorf("NewCSCFromTriplets: %w", ErrDimensionMismatch)
	}
	order := make([]int, len(ri))
	for k := range ri {
		if ri[k] < 0 || ri[k] >= rows || ci[k] < 0 || ci[k] >= cols {
			return nil, fmt.Errorf("NewCSCFromTriplets: (%d,%d): %w", ri[k], ci[k], ErrOutOfRange)
		}
		order[k] = k
	}
	sort.SliceStable(order, func(a, b int) bool {
		if ci[order[a]] != ci[order[b]] {
			return ci[order[a]] < ci[order[b]]
		}

		return ri[order[a]] < ri[order[b]]
	})

	m := &CSC{r: rows, c: cols, colPtr: make([]int, cols+1)}
	var k, p int
	for k = 0; k < len(order); {
		p = order[k]
		row, col, sum := ri[p], ci[p], v[p]
		k++
		for k < len(order) && ri[order[k]] == row && ci[order[k]] == col {
			sum += v[order[k]]
			k++
		}
		if sum == 0 {
			continue
		}
		m.rowIdx = append(m.rowIdx, row)
		m.val = append(m.val, sum)
		m.colPtr[col+1]++
	}
	for j := 0; j < cols; j++ {
		m.colPtr[j+1] += m.colPtr[j]
	}

	return m, nil
}

// NewCSCFromMatrix copies the non-zero entries of any Matrix into CSC form,
// carrying its dimension names.
func NewCSCFromMatrix(src Matrix) (*CSC, error) {
	if err := ValidateNotNil(src); err != nil {
		return nil, err
	}
	var ri, ci []int
	var v []float64
	src.DoNonZero(func(i, j int, x float64) {
		ri = append(ri, i)
		ci = append(ci, j)
		v = append(v, x)
	})
	m, err := NewCSCFromTriplets(src.Rows(), src.Cols(), ri, ci, v)
	if err != nil {
		return nil, err
	}
	if err = m.SetNames(src.RowNames(), src.ColNames()); err != nil {
		return nil, err
	}

	return m, nil
}

// NewIndicator builds a binary cells × neighbourhoods matrix from membership
// lists: members[j] holds the cell indices of neighbourhood j. Repeated cells
// inside one list count once. names, when non-nil, labels the columns.
//
// Errors:
//   - ErrInvalidDimensions when nCells <= 0 or members is empty.
//   - ErrOutOfRange when a cell index falls outside [0, nCells).
//   - ErrBadNames when len(names) != len(members).
func NewIndicator(nCells int, members [][]int, names []string) (*CSC, error) {
	if nCells <= 0 || len(members) == 0 {
		return nil, ErrInvalidDimensions
	}
	m := &CSC{r: nCells, c: len(members), colPtr: make([]int, len(members)+1)}
	var cells []int
	for j, list := range members {
		cells = append(cells[:0], list...)
		sort.Ints(cells)
		for k, cell := range cells {
			if cell < 0 || cell >= nCells {
				return nil, fmt.Errorf("NewIndicator: neighbourhood %d cell %d: %w", j, cell, ErrOutOfRange)
			}
			if k > 0 && cell == cells[k-1] {
				continue
			}
			m.rowIdx = append(m.rowIdx, cell)
			m.val = append(m.val, 1)
		}
		m.colPtr[j+1] = len(m.rowIdx)
	}
	if err := m.SetNames(nil, names); err != nil {
		return nil, err
	}

	return m, nil
}

// Rows returns the row count.
func (m *CSC) Rows() int {
	if m == nil {
		return 0
	}

	return m.r
}

// Cols returns the column count.
func (m *CSC) Cols() int {
	if m == nil {
		return 0
	}

	return m.c
}

// NNZ returns the number of stored entries (explicit zeros included).
func (m *CSC) NNZ() int { return len(m.rowIdx) }

// SetNames attaches row and column labels. A nil slice leaves that axis unnamed.
func (m *CSC) SetNames(rowNames, colNames []string) error {
	return m.setNames(m.r, m.c, rowNames, colNames)
}

// At returns the value at (i, j) or ErrOutOfRange.
// Complexity: O(log nnz(col j)).
func (m *CSC) At(i, j int) (float64, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return 0, fmt.Errorf("CSC.At(%d,%d): %w", i, j, ErrOutOfRange)
	}
	lo, hi := m.colPtr[j], m.colPtr[j+1]
	k := lo + sort.SearchInts(m.rowIdx[lo:hi], i)
	if k < hi && m.rowIdx[k] == i {
		return m.val[k], nil
	}

	return 0, nil
}

// RowSums returns the sum of every row in one pass over the stored entries.
func (m *CSC) RowSums() []float64 {
	out := make([]float64, m.r)
	for k, i := range m.rowIdx {
		out[i] += m.val[k]
	}

	return out
}

// ColSums returns the sum of every column.
func (m *CSC) ColSums() []float64 {
	out := make([]float64, m.c)
	var k int
	for j := 0; j < m.c; j++ {
		for k = m.colPtr[j]; k < m.colPtr[j+1]; k++ {
			out[j] += m.val[k]
		}
	}

	return out
}

// DoNonZero visits stored non-zero entries column by column.
func (m *CSC) DoNonZero(f func(i, j int, v float64)) {
	var k int
	for j := 0; j < m.c; j++ {
		for k = m.colPtr[j]; k < m.colPtr[j+1]; k++ {
			if m.val[k] != 0 {
				f(m.rowIdx[k], j, m.val[k])
			}
		}
	}
}

// DoCol visits the stored non-zero entries of column j in row order.
func (m *CSC) DoCol(j int, f func(i int, v float64)) {
	if j < 0 || j >= m.c {
		return
	}
	for k := m.colPtr[j]; k < m.colPtr[j+1]; k++ {
		if m.val[k] != 0 {
			f(m.rowIdx[k], m.val[k])
		}
	}
}

// Raw exposes the compressed arrays. Callers must not modify them.
func (m *CSC) Raw() (colPtr, rowIdx []int, val []float64) {
	return m.colPtr, m.rowIdx, m.val
}

// Clone returns a deep copy.
func (m *CSC) Clone() *CSC {
	return &CSC{
		r:        m.r,
		c:        m.c,
		colPtr:   append([]int(nil), m.colPtr...),
		rowIdx:   append([]int(nil), m.rowIdx...),
		val:      append([]float64(nil), m.val...),
		dimNames: m.dimNames.clone(),
	}
}
