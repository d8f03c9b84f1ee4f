// SPDX-License-Identifier: MIT

package milo

import (
	"fmt"

	"github.com/katalvlaran/milo/matrix"
)

// Slot names a data-holding attribute of an Experiment.
type Slot int

// Known slots. The zero value is deliberately invalid.
const (
	SlotGraph Slot = iota + 1
	SlotNhoodGraph
	SlotNhoodIndex
	SlotNhoodDistances
	SlotNhoodReducedDim
	SlotNhoods
	SlotNhoodExpression
	SlotNhoodAdjacency
	SlotNhoodCounts
)

// SlotKind is the storage family of a slot, which decides its emptiness rule.
type SlotKind int

const (
	// KindUnknown marks a Slot value outside the known set.
	KindUnknown SlotKind = iota
	// KindGraph slots hold a graph container.
	KindGraph
	// KindList slots hold a generic collection.
	KindList
	// KindMatrix slots hold a matrix supporting a row-sum reduction.
	KindMatrix
)

var slotNames = map[Slot]string{
	SlotGraph:           "graph",
	SlotNhoodGraph:      "nhoodGraph",
	SlotNhoodIndex:      "nhoodIndex",
	SlotNhoodDistances:  "nhoodDistances",
	SlotNhoodReducedDim: "nhoodReducedDim",
	SlotNhoods:          "nhoods",
	SlotNhoodExpression: "nhoodExpression",
	SlotNhoodAdjacency:  "nhoodAdjacency",
	SlotNhoodCounts:     "nhoodCounts",
}

// String returns the slot's conventional attribute name.
func (s Slot) String() string {
	if n, ok := slotNames[s]; ok {
		return n
	}

	return fmt.Sprintf("Slot(%d)", int(s))
}

// Kind classifies the slot.
func (s Slot) Kind() SlotKind {
	switch s {
	case SlotGraph, SlotNhoodGraph:
		return KindGraph
	case SlotNhoodIndex, SlotNhoodDistances, SlotNhoodReducedDim:
		return KindList
	case SlotNhoods, SlotNhoodExpression, SlotNhoodAdjacency, SlotNhoodCounts:
		return KindMatrix
	}

	return KindUnknown
}

// IsEmpty reports whether slot currently holds no meaningful data.
//
// Rules by kind:
//   - graph:  empty iff no graph is stored or it has no vertices.
//   - list:   empty iff the collection has no elements.
//   - matrix: empty iff the sum of all row sums is exactly 0 (so the 1×1
//     placeholder is empty).
//
// Errors:
//   - ErrUnsupportedSlot for a Slot outside the known set.
func IsEmpty(e *Experiment, slot Slot) (bool, error) {
	switch slot.Kind() {
	case KindGraph:
		g := e.graph
		if slot == SlotNhoodGraph {
			g = e.nhoodGraph
		}

		return g == nil || g.VertexCount() == 0, nil

	case KindList:
		switch slot {
		case SlotNhoodIndex:
			return len(e.nhoodIndex) == 0, nil
		case SlotNhoodDistances:
			return len(e.nhoodDistances) == 0, nil
		default:
			return len(e.nhoodReducedDim) == 0, nil
		}

	case KindMatrix:
		zero, err := matrix.IsZero(e.matrixSlot(slot))
		if err != nil {
			return false, fmt.Errorf("IsEmpty(%s): %w", slot, err)
		}

		return zero, nil
	}

	return false, fmt.Errorf("IsEmpty(%s): %w", slot, ErrUnsupportedSlot)
}

func (e *Experiment) matrixSlot(slot Slot) matrix.Matrix {
	switch slot {
	case SlotNhoods:
		return e.nhoods
	case SlotNhoodExpression:
		return e.nhoodExpression
	case SlotNhoodAdjacency:
		return e.nhoodAdjacency
	default:
		return e.nhoodCounts
	}
}
