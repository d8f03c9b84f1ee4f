// SPDX-License-Identifier: MIT
// File: membership.go
// Role: Column-wise view of an indicator matrix as one roaring bitmap of cell
//       indices per neighbourhood.
// Determinism:
//   - Bitmaps iterate cells in ascending order regardless of how the
//     indicator stores its entries.

package nhoods

import (
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/milo/matrix"
	"github.com/katalvlaran/milo/milo"
)

// Membership holds the member cells of every neighbourhood.
type Membership struct {
	nCells int
	sets   []*roaring.Bitmap
	names  []string
}

// NewMembership reads a binary cells × neighbourhoods indicator.
//
// Errors:
//   - matrix.ErrNilMatrix when x is nil.
//   - milo.ErrNotBinary when an entry is outside {0, 1}.
//
// Complexity: O(nnz) for compressed storage, O(N*M) for dense.
func NewMembership(x matrix.Matrix) (*Membership, error) {
	if err := matrix.ValidateNotNil(x); err != nil {
		return nil, fmt.Errorf("NewMembership: %w", err)
	}
	if !matrix.CheckBinary(x) {
		return nil, fmt.Errorf("NewMembership: %w", milo.ErrNotBinary)
	}
	m := &Membership{nCells: x.Rows(), sets: make([]*roaring.Bitmap, x.Cols()), names: x.ColNames()}
	for j := range m.sets {
		m.sets[j] = roaring.New()
	}
	if it, ok := x.(matrix.ColumnIterator); ok {
		for j, set := range m.sets {
			it.DoCol(j, func(i int, _ float64) { set.Add(uint32(i)) })
		}
	} else {
		x.DoNonZero(func(i, j int, _ float64) { m.sets[j].Add(uint32(i)) })
	}
	for _, set := range m.sets {
		set.RunOptimize()
	}

	return m, nil
}

// Len returns the number of neighbourhoods.
func (m *Membership) Len() int { return len(m.sets) }

// NCells returns the number of cells (indicator rows).
func (m *Membership) NCells() int { return m.nCells }

// Names returns the neighbourhood labels (nil when unnamed).
func (m *Membership) Names() []string { return m.names }

// Size returns the number of cells in neighbourhood j.
func (m *Membership) Size(j int) int { return int(m.sets[j].GetCardinality()) }

// Shared returns how many cells neighbourhoods j and k have in common.
func (m *Membership) Shared(j, k int) int { return int(m.sets[j].AndCardinality(m.sets[k])) }

// Cells returns the member cells of neighbourhood j in ascending order.
func (m *Membership) Cells(j int) []int {
	out := make([]int, 0, m.sets[j].GetCardinality())
	it := m.sets[j].Iterator()
	for it.HasNext() {
		out = append(out, int(it.Next()))
	}

	return out
}

// label returns the name of neighbourhood j, or its decimal index when unnamed.
func (m *Membership) label(j int) string {
	if m.names != nil {
		return m.names[j]
	}

	return fmt.Sprint(j)
}
