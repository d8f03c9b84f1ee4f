// SPDX-License-Identifier: MIT
// Package nhoods: sentinel error set.
// Errors raised on the Experiment itself (missing neighbourhoods, missing
// expression, unknown assay) live in package milo and are returned unchanged.

package nhoods

import "errors"

var (
	// ErrBadOverlap indicates an overlap threshold below 1.
	ErrBadOverlap = errors.New("nhoods: overlap must be >= 1")

	// ErrEmptyNeighbourhood indicates a neighbourhood with no member cells
	// while the EmptyError policy is active.
	ErrEmptyNeighbourhood = errors.New("nhoods: neighbourhood has no cells")

	// ErrBadSubset indicates a feature selector that cannot be resolved
	// against the expression matrix (unknown name, unnamed rows, wrong mask
	// length, empty selection).
	ErrBadSubset = errors.New("nhoods: invalid feature subset")

	// ErrDuplicateNhood indicates two indicator columns with the same name,
	// which would collapse into one graph vertex.
	ErrDuplicateNhood = errors.New("nhoods: duplicate neighbourhood name")
)
