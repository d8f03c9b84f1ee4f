// File: methods_clone.go
// Role: Cloning and simplification of graph instances.
// Determinism:
//   - Clone carries over nextEdgeID and edge IDs.
//   - Simplify renumbers edges from "e1" in the source insertion order.
// Concurrency:
//   - Read locks for snapshotting; the source graph is never mutated.

package core

import "sync/atomic"

// CloneEmpty returns a new Graph with identical configuration and vertices
// (same insertion order), but no edges.
//
// Complexity: O(V).
func (g *Graph) CloneEmpty() *Graph {
	g.muVert.RLock()
	defer g.muVert.RUnlock()

	clone := NewGraph(g.options()...)
	atomic.StoreUint64(&clone.nextEdgeID, atomic.LoadUint64(&g.nextEdgeID))
	copyVertices(g, clone)

	return clone
}

// copyVertices replicates src's vertices into dst in insertion order.
// Metadata maps are shared. Caller holds src.muVert.
func copyVertices(src, dst *Graph) {
	dst.order = make([]string, 0, len(src.order))
	for _, id := range src.order {
		v := src.vertices[id]
		dst.vertices[id] = &Vertex{ID: v.ID, Metadata: v.Metadata}
		dst.order = append(dst.order, id)
		dst.adjacencyList[id] = make(map[string]map[string]struct{})
	}
}

// Clone returns a deep copy of the Graph: configuration, vertices, edges, and adjacency.
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	clone := g.CloneEmpty()
	g.muEdgeAdj.RLock()
	defer g.muEdgeAdj.RUnlock()
	for eid, e := range g.edges {
		ne := *e
		clone.edges[eid] = &ne
		link(clone, &ne)
	}

	return clone
}

// Simplify returns a new simple graph: no self-loops and at most one edge per
// vertex pair (per ordered pair when directed). The first edge seen in
// insertion order wins and keeps its weight; later duplicates, and in an
// undirected graph reversed duplicates, are dropped. Vertices, including
// isolated ones, are preserved in order.
//
// Complexity: O(V + E log E).
func (g *Graph) Simplify() *Graph {
	opts := []GraphOption{WithDirected(g.directed)}
	if g.weighted {
		opts = append(opts, WithWeighted())
	}
	out := NewGraph(opts...)

	g.muVert.RLock()
	copyVertices(g, out)
	g.muVert.RUnlock()

	var seq uint64
	for _, e := range g.Edges() {
		if e.From == e.To || len(out.adjacencyList[e.From][e.To]) > 0 {
			continue
		}
		seq++
		ne := &Edge{ID: edgeID(seq), From: e.From, To: e.To, Weight: e.Weight, Directed: g.directed, seq: seq}
		out.edges[ne.ID] = ne
		link(out, ne)
	}
	out.nextEdgeID = seq

	return out
}
