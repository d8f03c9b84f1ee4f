// SPDX-License-Identifier: MIT

// Package milo holds the Experiment container: per-cell assays plus the
// neighbourhood slots filled by the analysis steps (indicator matrix,
// neighbourhood expression, adjacency, counts, graphs).
//
// Experiments are values: every With* setter returns a new *Experiment that
// shares untouched slots with its source and never mutates the receiver, so
// a published Experiment is safe for concurrent reads.
package milo

import (
	"fmt"

	"github.com/katalvlaran/milo/core"
	"github.com/katalvlaran/milo/matrix"
)

// Assay is a named features × cells matrix.
type Assay struct {
	Name string
	Data matrix.Matrix
}

// Experiment is the analysis container.
type Experiment struct {
	assayNames  []string
	assays      map[string]matrix.Matrix
	reducedDims map[string]matrix.Matrix
	cellLabels  map[string][]string

	graph           *core.Graph
	nhoods          matrix.Matrix
	nhoodIndex      []int
	nhoodDistances  []matrix.Matrix
	nhoodExpression matrix.Matrix
	nhoodAdjacency  matrix.Matrix
	nhoodCounts     matrix.Matrix
	nhoodReducedDim map[string]matrix.Matrix
	nhoodGraph      *core.Graph
}

// New builds an Experiment from zero or more assays. All assays must share
// the same number of cells (columns); the first one is the primary assay.
// Every matrix result slot starts as matrix.Placeholder().
//
// Errors:
//   - ErrNilMatrix, ErrDuplicateAssay, ErrCellMismatch.
func New(assays ...Assay) (*Experiment, error) {
	e := &Experiment{
		assays:          make(map[string]matrix.Matrix, len(assays)),
		reducedDims:     map[string]matrix.Matrix{},
		cellLabels:      map[string][]string{},
		nhoods:          matrix.Placeholder(),
		nhoodExpression: matrix.Placeholder(),
		nhoodAdjacency:  matrix.Placeholder(),
		nhoodCounts:     matrix.Placeholder(),
		nhoodReducedDim: map[string]matrix.Matrix{},
	}
	for _, a := range assays {
		if matrix.ValidateNotNil(a.Data) != nil {
			return nil, fmt.Errorf("New: assay %q: %w", a.Name, ErrNilMatrix)
		}
		if _, dup := e.assays[a.Name]; dup {
			return nil, fmt.Errorf("New: %q: %w", a.Name, ErrDuplicateAssay)
		}
		if len(e.assayNames) > 0 && a.Data.Cols() != e.assays[e.assayNames[0]].Cols() {
			return nil, fmt.Errorf("New: assay %q has %d cells: %w", a.Name, a.Data.Cols(), ErrCellMismatch)
		}
		e.assayNames = append(e.assayNames, a.Name)
		e.assays[a.Name] = a.Data
	}

	return e, nil
}

// clone returns a shallow copy whose maps and slices can be replaced freely.
func (e *Experiment) clone() *Experiment {
	c := *e
	c.assayNames = append([]string(nil), e.assayNames...)
	c.assays = copyMap(e.assays)
	c.reducedDims = copyMap(e.reducedDims)
	c.nhoodReducedDim = copyMap(e.nhoodReducedDim)
	c.cellLabels = make(map[string][]string, len(e.cellLabels))
	for k, v := range e.cellLabels {
		c.cellLabels[k] = v
	}

	return &c
}

func copyMap(m map[string]matrix.Matrix) map[string]matrix.Matrix {
	out := make(map[string]matrix.Matrix, len(m))
	for k, v := range m {
		out[k] = v
	}

	return out
}

// NCells returns the number of cells: the primary assay's column count, else
// the indicator's row count, else the cell graph's vertex count, else 0.
func (e *Experiment) NCells() int {
	switch {
	case len(e.assayNames) > 0:
		return e.assays[e.assayNames[0]].Cols()
	case !matrix.IsPlaceholder(e.nhoods):
		return e.nhoods.Rows()
	case e.graph != nil:
		return e.graph.VertexCount()
	}

	return 0
}

// checkCells rejects n when it disagrees with a known cell count.
func (e *Experiment) checkCells(op string, n int) error {
	if want := e.NCells(); want != 0 && n != want {
		return fmt.Errorf("%s: got %d cells, want %d: %w", op, n, want, ErrCellMismatch)
	}

	return nil
}

// ---------- assays ----------

// AssayNames returns assay names in insertion order (primary first).
func (e *Experiment) AssayNames() []string { return append([]string(nil), e.assayNames...) }

// Assay returns the named assay.
//
// Errors:
//   - ErrAssayNotFound.
func (e *Experiment) Assay(name string) (matrix.Matrix, error) {
	m, ok := e.assays[name]
	if !ok {
		return nil, fmt.Errorf("Assay(%q): %w", name, ErrAssayNotFound)
	}

	return m, nil
}

// WithAssay adds or replaces an assay.
func (e *Experiment) WithAssay(name string, m matrix.Matrix) (*Experiment, error) {
	if matrix.ValidateNotNil(m) != nil {
		return nil, ErrNilMatrix
	}
	if err := e.checkCells("WithAssay", m.Cols()); err != nil {
		return nil, err
	}
	_, exists := e.assays[name]
	c := e.clone()
	if !exists {
		c.assayNames = append(c.assayNames, name)
	}
	c.assays[name] = m

	return c, nil
}

// ---------- cell annotations ----------

// CellLabels returns the per-cell label column stored under key.
//
// Errors:
//   - ErrLabelsNotFound.
func (e *Experiment) CellLabels(key string) ([]string, error) {
	v, ok := e.cellLabels[key]
	if !ok {
		return nil, fmt.Errorf("CellLabels(%q): %w", key, ErrLabelsNotFound)
	}

	return append([]string(nil), v...), nil
}

// WithCellLabels stores one label per cell under key (e.g. sample IDs).
func (e *Experiment) WithCellLabels(key string, labels []string) (*Experiment, error) {
	if err := e.checkCells("WithCellLabels", len(labels)); err != nil {
		return nil, err
	}
	c := e.clone()
	c.cellLabels[key] = append([]string(nil), labels...)

	return c, nil
}

// ---------- graphs ----------

// Graph returns the cell KNN graph (nil until set).
func (e *Experiment) Graph() *core.Graph { return e.graph }

// WithGraph stores the cell KNN graph.
func (e *Experiment) WithGraph(g *core.Graph) (*Experiment, error) {
	if g != nil {
		if err := e.checkCells("WithGraph", g.VertexCount()); err != nil {
			return nil, err
		}
	}
	c := e.clone()
	c.graph = g

	return c, nil
}

// NhoodGraph returns the neighbourhood graph (nil until built).
func (e *Experiment) NhoodGraph() *core.Graph { return e.nhoodGraph }

// WithNhoodGraph stores the neighbourhood graph.
func (e *Experiment) WithNhoodGraph(g *core.Graph) *Experiment {
	c := e.clone()
	c.nhoodGraph = g

	return c
}

// ---------- neighbourhood slots ----------

// Nhoods returns the cells × neighbourhoods indicator (placeholder until set).
func (e *Experiment) Nhoods() matrix.Matrix { return e.nhoods }

// WithNhoods stores the indicator matrix.
//
// Errors:
//   - ErrNilMatrix, ErrNotBinary, ErrCellMismatch.
func (e *Experiment) WithNhoods(m matrix.Matrix) (*Experiment, error) {
	if matrix.ValidateNotNil(m) != nil {
		return nil, ErrNilMatrix
	}
	if !matrix.CheckBinary(m) {
		return nil, ErrNotBinary
	}
	if !matrix.IsPlaceholder(m) {
		if err := e.checkCells("WithNhoods", m.Rows()); err != nil {
			return nil, err
		}
	}
	c := e.clone()
	c.nhoods = m

	return c, nil
}

// NhoodIndex returns the index cell of each neighbourhood.
func (e *Experiment) NhoodIndex() []int { return append([]int(nil), e.nhoodIndex...) }

// WithNhoodIndex stores the index cell of each neighbourhood.
func (e *Experiment) WithNhoodIndex(idx []int) *Experiment {
	c := e.clone()
	c.nhoodIndex = append([]int(nil), idx...)

	return c
}

// NhoodDistances returns the per-neighbourhood distance matrices.
func (e *Experiment) NhoodDistances() []matrix.Matrix {
	return append([]matrix.Matrix(nil), e.nhoodDistances...)
}

// WithNhoodDistances stores the per-neighbourhood distance matrices.
func (e *Experiment) WithNhoodDistances(d []matrix.Matrix) *Experiment {
	c := e.clone()
	c.nhoodDistances = append([]matrix.Matrix(nil), d...)

	return c
}

// NhoodExpression returns the features × neighbourhoods mean expression.
func (e *Experiment) NhoodExpression() matrix.Matrix { return e.nhoodExpression }

// WithNhoodExpression stores the neighbourhood mean expression.
func (e *Experiment) WithNhoodExpression(m matrix.Matrix) (*Experiment, error) {
	return e.withMatrix(m, func(c *Experiment) { c.nhoodExpression = m })
}

// NhoodAdjacency returns the neighbourhoods × neighbourhoods overlap matrix.
func (e *Experiment) NhoodAdjacency() matrix.Matrix { return e.nhoodAdjacency }

// WithNhoodAdjacency stores the neighbourhood overlap matrix.
func (e *Experiment) WithNhoodAdjacency(m matrix.Matrix) (*Experiment, error) {
	return e.withMatrix(m, func(c *Experiment) { c.nhoodAdjacency = m })
}

// NhoodCounts returns the neighbourhoods × samples cell counts.
func (e *Experiment) NhoodCounts() matrix.Matrix { return e.nhoodCounts }

// WithNhoodCounts stores the neighbourhood cell counts.
func (e *Experiment) WithNhoodCounts(m matrix.Matrix) (*Experiment, error) {
	return e.withMatrix(m, func(c *Experiment) { c.nhoodCounts = m })
}

func (e *Experiment) withMatrix(m matrix.Matrix, set func(*Experiment)) (*Experiment, error) {
	if matrix.ValidateNotNil(m) != nil {
		return nil, ErrNilMatrix
	}
	c := e.clone()
	set(c)

	return c, nil
}

// ReducedDim returns the named per-cell embedding, if present.
func (e *Experiment) ReducedDim(name string) (matrix.Matrix, bool) {
	m, ok := e.reducedDims[name]

	return m, ok
}

// NhoodReducedDim returns the named per-neighbourhood embedding, if present.
func (e *Experiment) NhoodReducedDim(name string) (matrix.Matrix, bool) {
	m, ok := e.nhoodReducedDim[name]

	return m, ok
}
