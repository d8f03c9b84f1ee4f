// SPDX-License-Identifier: MIT

package nhoods

import (
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
)

// adjacencyBlock is the number of neighbourhood rows one worker handles.
const adjacencyBlock = 64

// Adjacency computes the neighbourhood overlap matrix XᵀX of a binary
// cells × neighbourhoods indicator x.
//
// Entry (j,k) is the number of cells shared by neighbourhoods j and k; the
// diagonal is each neighbourhood's size. Entries strictly below overlap are
// zeroed (the diagonal included). Both axes carry x's column names.
//
// Implementation:
//   - Stage 1: index members as one roaring bitmap per neighbourhood.
//   - Stage 2: fill the upper triangle in row blocks with AndCardinality,
//     fanning blocks out over an errgroup bounded by WithWorkers.
//   - Stage 3: mirror the upper triangle and attach names.
//
// Errors:
//   - ErrBadOverlap when overlap < 1.
//   - matrix.ErrNilMatrix, milo.ErrNotBinary from the indicator.
//
// Complexity: O(M² · c) where c is the cost of one bitmap intersection.
func Adjacency(x matrix.Matrix, overlap int, opts ...Option) (*matrix.Dense, error) {
	if overlap < 1 {
		return nil, fmt.Errorf("Adjacency: overlap=%d: %w", overlap, ErrBadOverlap)
	}
	o := gatherOptions(opts...)
	mem, err := NewMembership(x)
	if err != nil {
		return nil, fmt.Errorf("Adjacency: %w", err)
	}

	return adjacencyFrom(mem, overlap, o)
}

func adjacencyFrom(mem *Membership, overlap int, o Options) (*matrix.Dense, error) {
	n := mem.Len()
	out := mat.NewDense(n, n, nil)
	var g errgroup.Group
	g.SetLimit(o.workers)
	for lo := 0; lo < n; lo += adjacencyBlock {
		hi := min(lo+adjacencyBlock, n)
		g.Go(func() error {
			for j := lo; j < hi; j++ {
				row := out.RawRowView(j)
				for k := j; k < n; k++ {
					if s := mem.Shared(j, k); s >= overlap {
						row[k] = float64(s)
					}
				}
			}

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			out.Set(k, j, out.At(j, k))
		}
	}

	adj, err := matrix.DenseOf(out)
	if err != nil {
		return nil, err
	}
	if err = adj.SetNames(mem.Names(), mem.Names()); err != nil {
		return nil, err
	}
	o.logger.WithOp("Adjacency").Debug("neighbourhood adjacency", "nhoods", n, "overlap", overlap, "workers", o.workers)

	return adj, nil
}

// CalcAdjacency computes Adjacency over e's indicator and returns a copy of e
// with the nhoodAdjacency slot filled.
//
// Errors:
//   - milo.ErrNoNeighbourhoods when the indicator is still the placeholder.
//   - everything Adjacency returns.
func CalcAdjacency(e *milo.Experiment, overlap int, opts ...Option) (*milo.Experiment, error) {
	x := e.Nhoods()
	if matrix.IsPlaceholder(x) {
		return nil, fmt.Errorf("CalcAdjacency: %w", milo.ErrNoNeighbourhoods)
	}
	adj, err := Adjacency(x, overlap, opts...)
	if err != nil {
		return nil, err
	}

	return e.WithNhoodAdjacency(adj)
}
