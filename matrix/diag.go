// SPDX-License-Identifier: MIT

// Package matrix - diagonal storage over gonum's DiagDense.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Diagonal is an n×n matrix with non-zero values only on its diagonal.
type Diagonal struct {
	d *mat.DiagDense
	dimNames
}

var _ Matrix = (*Diagonal)(nil)

// NewDiagonal copies values onto the diagonal of a new n×n matrix.
//
// Errors:
//   - ErrInvalidDimensions when values is empty.
func NewDiagonal(values []float64) (*Diagonal, error) {
	if len(values) == 0 {
		return nil, ErrInvalidDimensions
	}

	return &Diagonal{d: mat.NewDiagDense(len(values), append([]float64(nil), values...))}, nil
}

// Raw exposes the gonum storage.
func (m *Diagonal) Raw() *mat.DiagDense { return m.d }

// Rows returns n.
func (m *Diagonal) Rows() int {
	if m == nil || m.d == nil {
		return 0
	}

	return m.d.SymmetricDim()
}

// Cols returns n.
func (m *Diagonal) Cols() int { return m.Rows() }

// SetNames attaches row and column labels.
func (m *Diagonal) SetNames(rowNames, colNames []string) error {
	n := m.d.SymmetricDim()

	return m.setNames(n, n, rowNames, colNames)
}

// At returns the value at (i, j); off-diagonal cells are zero.
func (m *Diagonal) At(i, j int) (float64, error) {
	n := m.d.SymmetricDim()
	if i < 0 || i >= n || j < 0 || j >= n {
		return 0, fmt.Errorf("Diagonal.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return m.d.At(i, j), nil
}

// RowSums returns a copy of the diagonal.
func (m *Diagonal) RowSums() []float64 {
	n := m.d.SymmetricDim()
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		out[i] = m.d.At(i, i)
	}

	return out
}

// DoNonZero visits the non-zero diagonal entries.
func (m *Diagonal) DoNonZero(f func(i, j int, v float64)) {
	n := m.d.SymmetricDim()
	var v float64
	for i := 0; i < n; i++ {
		if v = m.d.At(i, i); v != 0 {
			f(i, i, v)
		}
	}
}
