// SPDX-License-Identifier: MIT

package milo

import (
	"fmt"

	"github.com/katalvlaran/milo/matrix"
)

// ReducedDimTarget selects which embedding collection SetReducedDim writes.
type ReducedDimTarget int

const (
	// TargetCells writes a per-cell embedding (cells × dims).
	TargetCells ReducedDimTarget = iota + 1
	// TargetNhoods writes a per-neighbourhood embedding (nhoods × dims).
	TargetNhoods
)

// String names the target.
func (t ReducedDimTarget) String() string {
	switch t {
	case TargetCells:
		return "reducedDims"
	case TargetNhoods:
		return "nhoodReducedDim"
	}

	return fmt.Sprintf("ReducedDimTarget(%d)", int(t))
}

// SetReducedDim returns a copy of e with m stored under name in the selected
// embedding collection.
//
// Errors:
//   - ErrNilMatrix when m is nil.
//   - ErrCellMismatch when a per-cell embedding has the wrong row count.
//   - ErrNhoodMismatch when a per-neighbourhood embedding's row count differs
//     from the number of neighbourhoods (checked once the indicator is set).
//   - ErrReplacementNotImplemented for any target outside TargetCells/TargetNhoods.
func SetReducedDim(e *Experiment, target ReducedDimTarget, name string, m matrix.Matrix) (*Experiment, error) {
	if matrix.ValidateNotNil(m) != nil {
		return nil, ErrNilMatrix
	}
	switch target {
	case TargetCells:
		if err := e.checkCells("SetReducedDim", m.Rows()); err != nil {
			return nil, err
		}
		c := e.clone()
		c.reducedDims[name] = m

		return c, nil

	case TargetNhoods:
		if x := e.nhoods; !matrix.IsPlaceholder(x) && m.Rows() != x.Cols() {
			return nil, fmt.Errorf("SetReducedDim: %d rows for %d neighbourhoods: %w", m.Rows(), x.Cols(), ErrNhoodMismatch)
		}
		c := e.clone()
		c.nhoodReducedDim[name] = m

		return c, nil
	}

	return nil, fmt.Errorf("SetReducedDim(%s): %w", target, ErrReplacementNotImplemented)
}
