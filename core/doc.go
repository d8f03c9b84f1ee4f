// Package core provides the thread-safe in-memory Graph used for cell KNN
// graphs and neighbourhood graphs.
//
// A Graph is configured once at construction:
//
//   - WithDirected(bool): one-way edges, or undirected edges mirrored in
//     adjacencyList[to][from].
//   - WithWeighted(): non-zero int64 weights (shared-cell counts on a
//     neighbourhood graph); otherwise AddEdge(weight≠0) → ErrBadWeight.
//   - WithMultiEdges(): parallel edges; otherwise ErrMultiEdgeNotAllowed.
//   - WithLoops(): self-loops; otherwise ErrLoopNotAllowed.
//
// Edges get sequential IDs "e1", "e2", … from an atomic counter, and Edges()
// returns them in that order. Vertices() keeps insertion order. Vertex
// Metadata carries per-vertex values such as a neighbourhood's size.
//
// KNN conversion:
//
//	g, err := core.FromKNN(nn, false, core.WithVertexNames(cellIDs))
//
// emits the edge (i, nn[i][k]) for every row i and neighbour k in row-major
// order. A directed result is the raw multigraph (duplicates, antiparallel
// edges and self-loops kept); an undirected result is passed through Simplify,
// so each unordered pair appears once with its first-seen edge, and
// self-loops are gone. Every row becomes a vertex, even with no neighbours.
//
// Errors:
//
//	ErrEmptyVertexID        - zero-length vertex ID
//	ErrVertexNotFound       - missing vertex
//	ErrBadWeight            - non-zero weight on an unweighted graph
//	ErrLoopNotAllowed       - self-loop when loops are disabled
//	ErrMultiEdgeNotAllowed  - parallel edge when multi-edges are disabled
//	ErrNeighbourOutOfRange  - KNN neighbour index outside [0, N)
//	ErrBadVertexNames       - KNN names missing, repeated or of the wrong length
package core
