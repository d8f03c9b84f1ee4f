// SPDX-License-Identifier: MIT

package nhoods

import (
	"fmt"

	"github.com/katalvlaran/milo/bfs"
	"github.com/katalvlaran/milo/core"
	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
)

const (
	// MetaSize is the vertex metadata key holding a neighbourhood's cell count.
	MetaSize = "size"
	// MetaGroup is the vertex metadata key holding a neighbourhood's group.
	MetaGroup = "group"
)

// Graph turns neighbourhood overlaps into a weighted undirected graph: one
// vertex per neighbourhood (metadata MetaSize), one edge per pair sharing at
// least overlap cells, weighted by the shared-cell count. Self-overlaps are
// not edges. Vertices are named after the indicator columns, or their
// decimal index when unnamed, so two columns sharing a name are rejected
// with ErrDuplicateNhood.
func Graph(x matrix.Matrix, overlap int, opts ...Option) (*core.Graph, *matrix.Dense, error) {
	if overlap < 1 {
		return nil, nil, fmt.Errorf("Graph: overlap=%d: %w", overlap, ErrBadOverlap)
	}
	o := gatherOptions(opts...)
	mem, err := NewMembership(x)
	if err != nil {
		return nil, nil, fmt.Errorf("Graph: %w", err)
	}
	adj, err := adjacencyFrom(mem, overlap, o)
	if err != nil {
		return nil, nil, fmt.Errorf("Graph: %w", err)
	}

	g := core.NewGraph(core.WithWeighted())
	n := mem.Len()
	for j := 0; j < n; j++ {
		id := mem.label(j)
		if g.HasVertex(id) {
			return nil, nil, fmt.Errorf("Graph: column %d %q: %w", j, id, ErrDuplicateNhood)
		}
		if err = g.AddVertex(id); err != nil {
			return nil, nil, fmt.Errorf("Graph: %w", err)
		}
		if err = g.SetVertexMeta(id, MetaSize, mem.Size(j)); err != nil {
			return nil, nil, fmt.Errorf("Graph: %w", err)
		}
	}
	var w float64
	for j := 0; j < n; j++ {
		for k := j + 1; k < n; k++ {
			if w, _ = adj.At(j, k); w == 0 {
				continue
			}
			if _, err = g.AddEdge(mem.label(j), mem.label(k), int64(w)); err != nil {
				return nil, nil, fmt.Errorf("Graph: %w", err)
			}
		}
	}
	o.logger.WithOp("Graph").Debug("neighbourhood graph", "vertices", g.VertexCount(), "edges", g.EdgeCount())

	return g, adj, nil
}

// BuildNhoodGraph builds the neighbourhood graph of e and returns a copy of e
// with both the nhoodGraph and nhoodAdjacency slots filled.
//
// Errors:
//   - milo.ErrNoNeighbourhoods when the indicator is still the placeholder.
//   - everything Graph returns.
func BuildNhoodGraph(e *milo.Experiment, overlap int, opts ...Option) (*milo.Experiment, error) {
	x := e.Nhoods()
	if matrix.IsPlaceholder(x) {
		return nil, fmt.Errorf("BuildNhoodGraph: %w", milo.ErrNoNeighbourhoods)
	}
	g, adj, err := Graph(x, overlap, opts...)
	if err != nil {
		return nil, err
	}
	out, err := e.WithNhoodAdjacency(adj)
	if err != nil {
		return nil, err
	}

	return out.WithNhoodGraph(g), nil
}

// GroupNhoods splits the neighbourhoods of e into groups: the connected
// components of the neighbourhood graph at the given overlap. Groups are
// numbered from 0 in order of their first neighbourhood. It returns a copy of
// e with nhoodGraph (each vertex tagged with MetaGroup) and nhoodAdjacency
// filled, and the group of every indicator column.
func GroupNhoods(e *milo.Experiment, overlap int, opts ...Option) (*milo.Experiment, []int, error) {
	out, err := BuildNhoodGraph(e, overlap, opts...)
	if err != nil {
		return nil, nil, err
	}
	g := out.NhoodGraph()
	comps, err := bfs.Components(g)
	if err != nil {
		return nil, nil, fmt.Errorf("GroupNhoods: %w", err)
	}

	col := make(map[string]int, g.VertexCount())
	for j, id := range g.Vertices() {
		col[id] = j
	}
	groups := make([]int, len(col))
	for k, members := range comps {
		for _, id := range members {
			groups[col[id]] = k
			if err = g.SetVertexMeta(id, MetaGroup, k); err != nil {
				return nil, nil, fmt.Errorf("GroupNhoods: %w", err)
			}
		}
	}
	gatherOptions(opts...).logger.WithOp("GroupNhoods").Debug("neighbourhood groups", "groups", len(comps), "overlap", overlap)

	return out, groups, nil
}
