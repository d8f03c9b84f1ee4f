// Package bfs provides breadth-first search over a core.Graph: hop distances,
// parent links and visit order from one start vertex, and connected
// components over the whole graph.
//
// Edge weights are ignored; distances count edges. Neighbours are expanded in
// ascending ID order (core.NeighborIDs), so results are reproducible.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/milo/core"
)

type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state; visited is shared across the
// traversals of one Components call.
type walker struct {
	graph   *core.Graph
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
}

func newWalker(g *core.Graph, o Options) *walker {
	n := g.VertexCount()

	return &walker{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
	}
}

// BFS runs breadth-first search on g starting from startID.
//
// Errors:
//   - ErrGraphNil, ErrStartVertexNotFound for invalid input.
//   - ErrOptionViolation for bad options.
//   - ErrNeighbors for graph failures, ctx errors on cancellation,
//     or the wrapped OnVisit error.
//
// Complexity: O(V + E).
func BFS(g *core.Graph, startID string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := gather(opts)
	if err != nil {
		return nil, err
	}
	if !g.HasVertex(startID) {
		return nil, ErrStartVertexNotFound
	}

	w := newWalker(g, o)
	res := &Result{
		Depth:  make(map[string]int),
		Parent: make(map[string]string),
	}

	return res, w.run(startID, res)
}

// Components partitions the vertices of g into connected components. Each
// component lists its vertices in BFS order; components are ordered by their
// first vertex in g.Vertices() order. On a directed graph a component is the
// set reachable from its first vertex along edge direction.
//
// Errors: ErrGraphNil, ErrOptionViolation, ErrNeighbors, ctx errors.
func Components(g *core.Graph, opts ...Option) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o, err := gather(opts)
	if err != nil {
		return nil, err
	}
	w := newWalker(g, o)

	var out [][]string
	for _, id := range g.Vertices() {
		if w.visited[id] {
			continue
		}
		res := &Result{Depth: make(map[string]int), Parent: make(map[string]string)}
		if err = w.run(id, res); err != nil {
			return nil, err
		}
		out = append(out, res.Order)
	}

	return out, nil
}

func (w *walker) run(start string, res *Result) error {
	w.enqueue(start, 0, "", res)
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		res.Order = append(res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if err := w.enqueueNeighbors(item, res); err != nil {
			return err
		}
	}

	return nil
}

func (w *walker) enqueue(id string, d int, parent string, res *Result) {
	w.visited[id] = true
	res.Depth[id] = d
	if parent != "" {
		res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) enqueueNeighbors(item queueItem, res *Result) error {
	neighbors, err := w.graph.NeighborIDs(item.id)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrNeighbors, item.id, err)
	}
	next := item.depth + 1
	if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
		return nil
	}
	for _, nbr := range neighbors {
		if w.visited[nbr] || !w.opts.FilterNeighbor(item.id, nbr) {
			continue
		}
		w.enqueue(nbr, next, item.id, res)
	}

	return nil
}
