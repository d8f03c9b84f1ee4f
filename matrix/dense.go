// SPDX-License-Identifier: MIT

// Package matrix - Dense storage & safe accessors.
//
// Purpose:
//   - Provide a labelled dense matrix whose storage is a gonum *mat.Dense, so
//     heavy products run through gonum while the public surface stays
//     bounds-checked (At/Set return errors instead of panicking).
//   - Enforce an optional finite-only numeric policy on Set.
//
// AI-Hints:
//   - Use Raw() to hand the storage to gonum kernels; mutations through Raw()
//     bypass the numeric policy on purpose (kernels that may emit NaN rely on it).
//   - Use DenseOf to wrap a gonum result without copying.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone: O(r*c); RowSums: O(r*c).

package matrix

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// DefaultValidateNaNInf toggles strict finite-value validation in Dense.Set.
const DefaultValidateNaNInf = true

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a labelled row-major matrix backed by gonum.
//   - m holds the values; its Dims() are the matrix shape.
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	m              *mat.Dense
	validateNaNInf bool
	dimNames
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix         = (*Dense)(nil)
	_ ColumnIterator = (*Dense)(nil)
	_ fmt.Stringer   = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
//
// Implementation:
//   - Stage 1: validate rows>0 && cols>0; else ErrInvalidDimensions.
//   - Stage 2: allocate gonum storage (zero-filled).
//
// Errors:
//   - ErrInvalidDimensions (shape contract violation).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Dense{m: mat.NewDense(rows, cols, nil), validateNaNInf: DefaultValidateNaNInf}, nil
}

// NewDenseFrom creates an r×c matrix over a row-major copy of data.
//
// Errors:
//   - ErrInvalidDimensions when rows or cols is not positive.
//   - ErrDimensionMismatch when len(data) != rows*cols.
//   - ErrNaNInf when the default numeric policy rejects a value.
func NewDenseFrom(rows, cols int, data []float64) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("NewDenseFrom: len(data)=%d want %d: %w", len(data), rows*cols, ErrDimensionMismatch)
	}
	if DefaultValidateNaNInf {
		for k, v := range data {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, denseErrorf(ctxSet, k/cols, k%cols, ErrNaNInf)
			}
		}
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{m: mat.NewDense(rows, cols, buf), validateNaNInf: DefaultValidateNaNInf}, nil
}

// DenseOf wraps an existing gonum matrix without copying. The numeric policy
// is disabled for wrapped results, which may legitimately carry NaN.
func DenseOf(m *mat.Dense) (*Dense, error) {
	if m == nil || m.IsEmpty() {
		return nil, ErrNilMatrix
	}

	return &Dense{m: m}, nil
}

// Raw exposes the gonum storage.
func (d *Dense) Raw() *mat.Dense { return d.m }

// Rows returns the row count.
func (d *Dense) Rows() int {
	if d == nil || d.m == nil {
		return 0
	}
	r, _ := d.m.Dims()

	return r
}

// Cols returns the column count.
func (d *Dense) Cols() int {
	if d == nil || d.m == nil {
		return 0
	}
	_, c := d.m.Dims()

	return c
}

// SetNames attaches row and column labels. A nil slice leaves that axis unnamed.
//
// Errors:
//   - ErrBadNames when a non-nil slice length differs from the axis length.
func (d *Dense) SetNames(rowNames, colNames []string) error {
	r, c := d.m.Dims()

	return d.setNames(r, c, rowNames, colNames)
}

// inBounds reports whether (row, col) addresses a cell.
func (d *Dense) inBounds(row, col int) bool {
	r, c := d.m.Dims()

	return row >= 0 && row < r && col >= 0 && col < c
}

// At returns the value at (row, col) or ErrOutOfRange.
// Complexity: O(1).
func (d *Dense) At(row, col int) (float64, error) {
	if !d.inBounds(row, col) {
		return 0, denseErrorf(ctxAt, row, col, ErrOutOfRange)
	}

	return d.m.At(row, col), nil
}

// Set stores v at (row, col) or returns an error (bounds or numeric policy).
//
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite values under policy.
//
// Complexity: O(1).
func (d *Dense) Set(row, col int, v float64) error {
	if !d.inBounds(row, col) {
		return denseErrorf(ctxSet, row, col, ErrOutOfRange)
	}
	if d.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	d.m.Set(row, col, v)

	return nil
}

// RowSums returns the sum of every row.
// Complexity: O(r*c).
func (d *Dense) RowSums() []float64 {
	r, _ := d.m.Dims()
	out := make([]float64, r)
	for i := 0; i < r; i++ {
		out[i] = mat.Sum(d.m.RowView(i))
	}

	return out
}

// DoNonZero visits every entry not exactly zero in row-major order.
func (d *Dense) DoNonZero(f func(i, j int, v float64)) {
	r, c := d.m.Dims()
	var i, j int
	var row []float64
	for i = 0; i < r; i++ {
		row = d.m.RawRowView(i)
		for j = 0; j < c; j++ {
			if row[j] != 0 {
				f(i, j, row[j])
			}
		}
	}
}

// DoCol visits the non-zero entries of column j top to bottom.
func (d *Dense) DoCol(j int, f func(i int, v float64)) {
	r, c := d.m.Dims()
	if j < 0 || j >= c {
		return
	}
	var v float64
	for i := 0; i < r; i++ {
		if v = d.m.At(i, j); v != 0 {
			f(i, v)
		}
	}
}

// Clone returns a deep copy (new storage, same labels and numeric policy).
func (d *Dense) Clone() *Dense {
	return &Dense{
		m:              mat.DenseCopyOf(d.m),
		validateNaNInf: d.validateNaNInf,
		dimNames:       d.dimNames.clone(),
	}
}

// String renders rows as "[a, b, ...]" lines for diagnostics.
func (d *Dense) String() string {
	r, c := d.m.Dims()
	var b strings.Builder
	var i, j int
	for i = 0; i < r; i++ {
		b.WriteString(_fmtRowOpen)
		for j = 0; j < c; j++ {
			b.WriteString(fmt.Sprintf("%g", d.m.At(i, j)))
			if j+1 < c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Placeholder returns the 1×1 zero matrix that marks a result slot as
// "never computed".
func Placeholder() *Dense {
	return &Dense{m: mat.NewDense(1, 1, nil), validateNaNInf: DefaultValidateNaNInf}
}

// IsPlaceholder reports whether m has the degenerate 1×1 placeholder shape,
// or is nil (including a typed nil pointer). Only the shape is inspected,
// never the value.
func IsPlaceholder(m Matrix) bool {
	return ValidateNotNil(m) != nil || (m.Rows() == 1 && m.Cols() == 1)
}
