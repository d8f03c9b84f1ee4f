// SPDX-License-Identifier: MIT

// Package matrix - row subsetting and gonum interop.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

const opSubsetRows = "SubsetRows"

// SubsetRows copies the rows listed in idx (in that order, duplicates
// allowed) into a new matrix of the same storage family. Row names follow the
// selection; column names are kept.
//
// Behavior highlights:
//   - *CSC stays *CSC; everything else becomes *Dense.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions (empty idx), ErrOutOfRange.
//
// Complexity: O(len(idx)*c) dense, O(nnz) compressed.
func SubsetRows(m Matrix, idx []int) (Matrix, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, validatorErrorf(opSubsetRows, err)
	}
	if len(idx) == 0 {
		return nil, validatorErrorf(opSubsetRows, ErrInvalidDimensions)
	}
	r := m.Rows()
	for _, i := range idx {
		if i < 0 || i >= r {
			return nil, fmt.Errorf("%s: row %d: %w", opSubsetRows, i, ErrOutOfRange)
		}
	}
	rowNames := pickNames(m.RowNames(), idx)

	if s, ok := m.(*CSC); ok {
		return subsetCSC(s, idx, rowNames)
	}

	out := mat.NewDense(len(idx), m.Cols(), nil)
	if d, ok := m.(*Dense); ok {
		for k, i := range idx {
			out.SetRow(k, d.m.RawRowView(i))
		}
	} else {
		// position lists: where each source row lands in the result
		dst := make(map[int][]int, len(idx))
		for k, i := range idx {
			dst[i] = append(dst[i], k)
		}
		m.DoNonZero(func(i, j int, v float64) {
			for _, k := range dst[i] {
				out.Set(k, j, v)
			}
		})
	}
	res := &Dense{m: out, validateNaNInf: DefaultValidateNaNInf}
	if err := res.SetNames(rowNames, m.ColNames()); err != nil {
		return nil, validatorErrorf(opSubsetRows, err)
	}

	return res, nil
}

func subsetCSC(s *CSC, idx []int, rowNames []string) (*CSC, error) {
	dst := make(map[int][]int, len(idx))
	for k, i := range idx {
		dst[i] = append(dst[i], k)
	}
	var ri, ci []int
	var v []float64
	s.DoNonZero(func(i, j int, x float64) {
		for _, k := range dst[i] {
			ri = append(ri, k)
			ci = append(ci, j)
			v = append(v, x)
		}
	})
	out, err := NewCSCFromTriplets(len(idx), s.c, ri, ci, v)
	if err != nil {
		return nil, validatorErrorf(opSubsetRows, err)
	}
	if err = out.SetNames(rowNames, s.ColNames()); err != nil {
		return nil, validatorErrorf(opSubsetRows, err)
	}

	return out, nil
}

// AsGonum exposes m as a gonum mat.Matrix. *Dense and *Diagonal hand over
// their storage; other storages are wrapped in a read-only adapter.
func AsGonum(m Matrix) mat.Matrix {
	switch t := m.(type) {
	case *Dense:
		return t.m
	case *Diagonal:
		return t.d
	}

	return gonumView{m: m}
}

// gonumView adapts Matrix to mat.Matrix. Following gonum's convention, At
// panics on an out-of-range index.
type gonumView struct{ m Matrix }

func (g gonumView) Dims() (r, c int) { return g.m.Rows(), g.m.Cols() }

func (g gonumView) At(i, j int) float64 {
	v, err := g.m.At(i, j)
	if err != nil {
		panic(mat.ErrIndexOutOfRange)
	}

	return v
}

func (g gonumView) T() mat.Matrix { return mat.Transpose{Matrix: g} }
