// SPDX-License-Identifier: MIT

// Package matrix - compressed-sparse symmetric storage.
// Only the upper triangle (i <= j) is stored, column-compressed; reads and
// reductions mirror it on the fly.

package matrix

import "fmt"

// SymCSC is an n×n symmetric sparse matrix storing its upper triangle.
type SymCSC struct {
	upper *CSC
}

var _ Matrix = (*SymCSC)(nil)

// NewSymCSC adopts an upper-triangular CSC layout.
//
// Errors:
//   - everything NewCSC reports, plus ErrBadStructure for entries below the diagonal.
func NewSymCSC(n int, colPtr, rowIdx []int, val []float64) (*SymCSC, error) {
	u, err := NewCSC(n, n, colPtr, rowIdx, val)
	if err != nil {
		return nil, err
	}
	var k int
	for j := 0; j < n; j++ {
		for k = u.colPtr[j]; k < u.colPtr[j+1]; k++ {
			if u.rowIdx[k] > j {
				return nil, fmt.Errorf("NewSymCSC: (%d,%d) below diagonal: %w", u.rowIdx[k], j, ErrBadStructure)
			}
		}
	}

	return &SymCSC{upper: u}, nil
}

// NewSymFromTriplets assembles a symmetric matrix. A triplet (i, j) with i > j
// is folded onto (j, i); duplicates are summed, so callers supply each
// off-diagonal value once.
func NewSymFromTriplets(n int, ri, ci []int, v []float64) (*SymCSC, error) {
	if len(ri) != len(ci) {
		return nil, fmt.Errorf("NewSymFromTriplets: %w", ErrDimensionMismatch)
	}
	ur := make([]int, len(ri))
	uc := make([]int, len(ci))
	for k := range ri {
		ur[k], uc[k] = ri[k], ci[k]
		if ur[k] > uc[k] {
			ur[k], uc[k] = uc[k], ur[k]
		}
	}
	u, err := NewCSCFromTriplets(n, n, ur, uc, v)
	if err != nil {
		return nil, err
	}

	return &SymCSC{upper: u}, nil
}

// Upper returns the stored upper triangle. Callers must not modify it.
func (s *SymCSC) Upper() *CSC { return s.upper }

// Rows returns n.
func (s *SymCSC) Rows() int {
	if s == nil {
		return 0
	}

	return s.upper.Rows()
}

// Cols returns n.
func (s *SymCSC) Cols() int { return s.Rows() }

// RowNames returns the shared axis labels.
func (s *SymCSC) RowNames() []string { return s.upper.rowNames }

// ColNames returns the shared axis labels.
func (s *SymCSC) ColNames() []string { return s.upper.rowNames }

// SetNames labels both axes with the same names.
func (s *SymCSC) SetNames(names []string) error {
	return s.upper.SetNames(names, names)
}

// At returns the value at (i, j), reading the stored triangle.
func (s *SymCSC) At(i, j int) (float64, error) {
	if i > j {
		i, j = j, i
	}

	return s.upper.At(i, j)
}

// RowSums mirrors every off-diagonal entry into both rows.
func (s *SymCSC) RowSums() []float64 {
	out := make([]float64, s.upper.r)
	s.upper.DoNonZero(func(i, j int, v float64) {
		out[i] += v
		if i != j {
			out[j] += v
		}
	})

	return out
}

// DoNonZero visits both triangles: each stored off-diagonal entry is reported
// as (i, j) and then (j, i).
func (s *SymCSC) DoNonZero(f func(i, j int, v float64)) {
	s.upper.DoNonZero(func(i, j int, v float64) {
		f(i, j, v)
		if i != j {
			f(j, i, v)
		}
	})
}
