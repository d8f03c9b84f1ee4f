// File: knn.go
// Role: KNN neighbour lists → cell graph.
// Determinism:
//   - Vertices follow row order; edges follow row-major (row, then neighbour
//     position) order, so the same input always yields the same edge IDs.

package core

import (
	"fmt"
	"strconv"
)

// KNNOption configures FromKNN.
type KNNOption func(*knnOptions)

type knnOptions struct {
	names []string
}

// WithVertexNames labels vertex i with names[i] instead of its decimal index.
// len(names) must equal the number of KNN rows.
func WithVertexNames(names []string) KNNOption {
	return func(o *knnOptions) { o.names = names }
}

// FromKNN converts per-cell neighbour lists into a graph.
//
// Row i of nn holds the (zero-based) indices of cell i's nearest neighbours.
// For every row the edges (i, nn[i][0]), (i, nn[i][1]), … are emitted in order.
//
// Behavior highlights:
//   - The graph has exactly len(nn) vertices; cells never named as a
//     neighbour and with an empty row stay isolated.
//   - directed=true keeps the raw multigraph: duplicates, antiparallel pairs
//     and self-loops all survive.
//   - directed=false collapses (a,b)/(b,a) and repeated (a,b) into one
//     undirected edge (first seen wins) and drops self-loops.
//   - Rows may be ragged.
//
// Errors:
//   - ErrNeighbourOutOfRange when an index is outside [0, len(nn)).
//   - ErrBadVertexNames when names have the wrong length or repeat.
//   - ErrEmptyVertexID when a supplied name is empty.
//
// Complexity: O(N + E log E) with E = Σ len(nn[i]).
func FromKNN(nn [][]int, directed bool, opts ...KNNOption) (*Graph, error) {
	var o knnOptions
	for _, opt := range opts {
		opt(&o)
	}
	n := len(nn)
	if o.names != nil && len(o.names) != n {
		return nil, ErrBadVertexNames
	}
	label := func(i int) string {
		if o.names != nil {
			return o.names[i]
		}

		return strconv.Itoa(i)
	}

	raw := NewGraph(WithDirected(directed), WithMultiEdges(), WithLoops())
	for i := 0; i < n; i++ {
		if err := raw.AddVertex(label(i)); err != nil {
			return nil, fmt.Errorf("FromKNN: vertex %d: %w", i, err)
		}
	}
	if raw.VertexCount() != n { // repeated names
		return nil, ErrBadVertexNames
	}
	for i, row := range nn {
		for _, j := range row {
			if j < 0 || j >= n {
				return nil, fmt.Errorf("FromKNN: row %d neighbour %d: %w", i, j, ErrNeighbourOutOfRange)
			}
			if _, err := raw.AddEdge(label(i), label(j), 0); err != nil {
				return nil, fmt.Errorf("FromKNN: edge (%d,%d): %w", i, j, err)
			}
		}
	}
	if directed {
		return raw, nil
	}

	return raw.Simplify(), nil
}
