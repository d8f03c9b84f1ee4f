// SPDX-License-Identifier: MIT

package nhoods

import (
	"fmt"
	"sort"

	"github.com/RoaringBitmap/roaring/v2"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
)

// Sizes returns the number of member cells of every neighbourhood
// (the column sums of the indicator).
func Sizes(x matrix.Matrix) ([]int, error) {
	mem, err := NewMembership(x)
	if err != nil {
		return nil, fmt.Errorf("Sizes: %w", err)
	}
	out := make([]int, mem.Len())
	for j := range out {
		out[j] = mem.Size(j)
	}

	return out, nil
}

// Counts tabulates, for every neighbourhood, how many of its cells carry each
// label. The result is neighbourhoods × labels; columns follow the sorted
// distinct labels, rows the indicator's column names.
//
// Errors:
//   - matrix.ErrDimensionMismatch when len(labels) differs from the indicator rows.
//   - everything NewMembership returns.
func Counts(x matrix.Matrix, labels []string) (*matrix.Dense, error) {
	mem, err := NewMembership(x)
	if err != nil {
		return nil, fmt.Errorf("Counts: %w", err)
	}
	if len(labels) != mem.NCells() {
		return nil, fmt.Errorf("Counts: %d labels for %d cells: %w", len(labels), mem.NCells(), matrix.ErrDimensionMismatch)
	}

	byLabel := map[string]*roaring.Bitmap{}
	for i, l := range labels {
		b, ok := byLabel[l]
		if !ok {
			b = roaring.New()
			byLabel[l] = b
		}
		b.Add(uint32(i))
	}
	samples := make([]string, 0, len(byLabel))
	for l := range byLabel {
		samples = append(samples, l)
	}
	sort.Strings(samples)

	out := mat.NewDense(mem.Len(), len(samples), nil)
	for j := 0; j < mem.Len(); j++ {
		for s, l := range samples {
			out.Set(j, s, float64(mem.sets[j].AndCardinality(byLabel[l])))
		}
	}
	res, err := matrix.DenseOf(out)
	if err != nil {
		return nil, fmt.Errorf("Counts: %w", err)
	}
	if err = res.SetNames(mem.Names(), samples); err != nil {
		return nil, fmt.Errorf("Counts: %w", err)
	}

	return res, nil
}

// CountCells counts cells per neighbourhood and per value of the cell label
// column labelKey (typically the sample ID), storing the result in the
// nhoodCounts slot of a copy of e.
//
// Errors:
//   - milo.ErrNoNeighbourhoods, milo.ErrLabelsNotFound.
func CountCells(e *milo.Experiment, labelKey string) (*milo.Experiment, error) {
	x := e.Nhoods()
	if matrix.IsPlaceholder(x) {
		return nil, fmt.Errorf("CountCells: %w", milo.ErrNoNeighbourhoods)
	}
	labels, err := e.CellLabels(labelKey)
	if err != nil {
		return nil, fmt.Errorf("CountCells: %w", err)
	}
	counts, err := Counts(x, labels)
	if err != nil {
		return nil, err
	}

	return e.WithNhoodCounts(counts)
}
