// SPDX-License-Identifier: MIT

package nhoods

import (
	"fmt"

	"github.com/katalvlaran/milo/matrix"
)

type subsetKind int

const (
	subsetAll subsetKind = iota
	subsetIndex
	subsetName
	subsetMask
)

// Subset selects feature rows of an expression matrix. Build one with
// ByIndex, ByName or ByMask; the zero value selects every row.
type Subset struct {
	kind  subsetKind
	index []int
	names []string
	mask  []bool
}

// ByIndex selects rows by zero-based position, in the given order.
func ByIndex(idx ...int) Subset {
	return Subset{kind: subsetIndex, index: append([]int(nil), idx...)}
}

// ByName selects rows by label, in the given order.
func ByName(names ...string) Subset {
	return Subset{kind: subsetName, names: append([]string(nil), names...)}
}

// ByMask selects the rows whose mask entry is true, in row order.
func ByMask(mask []bool) Subset {
	return Subset{kind: subsetMask, mask: append([]bool(nil), mask...)}
}

// resolve turns s into row positions of m. A nil result means "all rows".
func (s Subset) resolve(m matrix.Matrix) ([]int, error) {
	var idx []int
	switch s.kind {
	case subsetAll:
		return nil, nil

	case subsetIndex:
		for _, i := range s.index {
			if i < 0 || i >= m.Rows() {
				return nil, fmt.Errorf("subset: row %d: %w", i, matrix.ErrOutOfRange)
			}
		}
		idx = s.index

	case subsetName:
		rn := m.RowNames()
		if rn == nil {
			return nil, fmt.Errorf("subset: expression rows are unnamed: %w", ErrBadSubset)
		}
		pos := make(map[string]int, len(rn))
		for i := len(rn) - 1; i >= 0; i-- { // first occurrence wins
			pos[rn[i]] = i
		}
		idx = make([]int, len(s.names))
		for k, n := range s.names {
			i, ok := pos[n]
			if !ok {
				return nil, fmt.Errorf("subset: feature %q: %w", n, ErrBadSubset)
			}
			idx[k] = i
		}

	case subsetMask:
		if len(s.mask) != m.Rows() {
			return nil, fmt.Errorf("subset: mask length %d, rows %d: %w", len(s.mask), m.Rows(), ErrBadSubset)
		}
		for i, keep := range s.mask {
			if keep {
				idx = append(idx, i)
			}
		}
	}
	if len(idx) == 0 {
		return nil, fmt.Errorf("subset: no rows selected: %w", ErrBadSubset)
	}

	return idx, nil
}
