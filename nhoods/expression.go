// SPDX-License-Identifier: MIT

package nhoods

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
)

const (
	opCalcExpression       = "CalcExpression"
	opCalcExpressionMatrix = "CalcExpressionMatrix"
)

// CalcExpression averages the selected assay of e over every neighbourhood
// and returns a copy of e with the nhoodExpression slot filled.
//
// Options: WithAssay (default "logcounts"), WithSubset, WithEmptyPolicy,
// WithLogger, WithWorkers.
//
// Errors:
//   - milo.ErrNoNeighbourhoods when the indicator is still the placeholder.
//   - milo.ErrAssayNotFound when the assay is missing.
//   - everything Expression returns.
func CalcExpression(e *milo.Experiment, opts ...Option) (*milo.Experiment, error) {
	x := e.Nhoods()
	if matrix.IsPlaceholder(x) {
		return nil, fmt.Errorf("%s: %w", opCalcExpression, milo.ErrNoNeighbourhoods)
	}
	o := gatherOptions(opts...)
	exprs, err := e.Assay(o.assay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCalcExpression, err)
	}
	res, err := expression(x, exprs, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCalcExpression, err)
	}

	return e.WithNhoodExpression(res)
}

// CalcExpressionMatrix is the standalone form of CalcExpression: it builds a
// new Experiment whose primary assay (named by WithAssay) is exprs, stores x
// as its indicator and attaches the neighbourhood expression.
//
// Errors:
//   - milo.ErrMissingExpression when exprs is nil (typed nil pointers included).
//   - milo.ErrNoNeighbourhoods when x is nil or the 1×1 placeholder.
//   - everything Expression returns.
func CalcExpressionMatrix(x, exprs matrix.Matrix, opts ...Option) (*milo.Experiment, error) {
	if matrix.ValidateNotNil(exprs) != nil {
		return nil, fmt.Errorf("%s: %w", opCalcExpressionMatrix, milo.ErrMissingExpression)
	}
	if matrix.IsPlaceholder(x) {
		return nil, fmt.Errorf("%s: %w", opCalcExpressionMatrix, milo.ErrNoNeighbourhoods)
	}
	o := gatherOptions(opts...)
	res, err := expression(x, exprs, o)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCalcExpressionMatrix, err)
	}
	e, err := milo.New(milo.Assay{Name: o.assay, Data: exprs})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opCalcExpressionMatrix, err)
	}
	if e, err = e.WithNhoods(x); err != nil {
		return nil, fmt.Errorf("%s: %w", opCalcExpressionMatrix, err)
	}

	return e.WithNhoodExpression(res)
}

// Expression returns the features × neighbourhoods matrix of mean expression:
// entry (g,j) is the mean of exprs[g, c] over the member cells c of
// neighbourhood j. Rows carry the (possibly subset) feature names, columns
// the indicator's neighbourhood names.
//
// Implementation:
//   - Stage 1: validate shapes and resolve the feature subset.
//   - Stage 2: sum member-cell expression per neighbourhood. Dense, finite
//     operands go through one gonum product exprs·X; anything else walks each
//     neighbourhood's member bitmap, one errgroup task per neighbourhood, so
//     NaN or ±Inf in a non-member cell never reaches the sum.
//   - Stage 3: divide every column by its neighbourhood size, applying the
//     empty-neighbourhood policy.
//
// Errors:
//   - matrix.ErrNilMatrix, matrix.ErrDimensionMismatch (exprs columns ≠ cells).
//   - milo.ErrNotBinary when x is not an indicator.
//   - ErrBadSubset, matrix.ErrOutOfRange from the feature selector.
//   - ErrEmptyNeighbourhood under EmptyError.
func Expression(x, exprs matrix.Matrix, opts ...Option) (*matrix.Dense, error) {
	return expression(x, exprs, gatherOptions(opts...))
}

func expression(x, exprs matrix.Matrix, o Options) (*matrix.Dense, error) {
	if err := matrix.ValidateNotNil(exprs); err != nil {
		return nil, err
	}
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, err
	}
	if err := matrix.ValidateInner(exprs, x); err != nil {
		return nil, fmt.Errorf("expression has %d cells, indicator %d: %w", exprs.Cols(), x.Rows(), err)
	}
	mem, err := NewMembership(x)
	if err != nil {
		return nil, err
	}
	sizes := make([]float64, mem.Len())
	for j := range sizes {
		sizes[j] = float64(mem.Size(j))
		if sizes[j] == 0 && o.empty == EmptyError {
			return nil, fmt.Errorf("neighbourhood %s: %w", mem.label(j), ErrEmptyNeighbourhood)
		}
	}

	if o.subset != nil {
		idx, err := o.subset.resolve(exprs)
		if err != nil {
			return nil, err
		}
		if idx != nil {
			if exprs, err = matrix.SubsetRows(exprs, idx); err != nil {
				return nil, err
			}
		}
	}

	log := o.logger.WithOp("Expression").WithShape(exprs.Rows(), mem.Len())
	var sums *mat.Dense
	ed, denseExpr := exprs.(*matrix.Dense)
	xd, denseX := x.(*matrix.Dense)
	if denseExpr && denseX && finite(ed.Raw()) {
		log.Debug("aggregating", "path", "gonum")
		sums = mat.NewDense(exprs.Rows(), mem.Len(), nil)
		sums.Mul(ed.Raw(), xd.Raw())
	} else {
		log.Debug("aggregating", "path", "members", "workers", o.workers)
		if sums, err = sumMembers(exprs, mem, o.workers); err != nil {
			return nil, err
		}
	}

	g, _ := sums.Dims()
	for j, n := range sizes {
		col := mat.Col(nil, j, sums)
		for r := 0; r < g; r++ {
			if n == 0 {
				col[r] = math.NaN()
			} else {
				col[r] /= n
			}
		}
		sums.SetCol(j, col)
	}

	res, err := matrix.DenseOf(sums)
	if err != nil {
		return nil, err
	}
	if err = res.SetNames(exprs.RowNames(), x.ColNames()); err != nil {
		return nil, err
	}

	return res, nil
}

// sumMembers adds up, for every neighbourhood, the expression columns of its
// member cells. Each task writes only its own result column.
func sumMembers(exprs matrix.Matrix, mem *Membership, workers int) (*mat.Dense, error) {
	cols, ok := exprs.(matrix.ColumnIterator)
	if !ok {
		csc, err := matrix.NewCSCFromMatrix(exprs)
		if err != nil {
			return nil, err
		}
		cols = csc
	}
	out := mat.NewDense(exprs.Rows(), mem.Len(), nil)
	var g errgroup.Group
	g.SetLimit(workers)
	for j := 0; j < mem.Len(); j++ {
		g.Go(func() error {
			acc := make([]float64, exprs.Rows())
			for _, c := range mem.Cells(j) {
				cols.DoCol(c, func(r int, v float64) { acc[r] += v })
			}
			out.SetCol(j, acc)

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// finite reports whether every entry of m is a finite number. The product
// path multiplies non-members by 0, and NaN·0 or Inf·0 is NaN.
func finite(m *mat.Dense) bool {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		for _, v := range m.RawRowView(i) {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}

	return true
}
