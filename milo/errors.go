// SPDX-License-Identifier: MIT
// Package milo: sentinel error set for the Experiment container and its
// slot helpers. Callers match with errors.Is.

package milo

import "errors"

var (
	// ErrNoNeighbourhoods indicates the neighbourhood-indicator slot still holds
	// the 1×1 placeholder, i.e. neighbourhoods were never computed.
	ErrNoNeighbourhoods = errors.New("milo: no neighbourhoods found - compute neighbourhoods first")

	// ErrMissingExpression indicates the standalone-matrix entry point was used
	// without an expression matrix.
	ErrMissingExpression = errors.New("milo: no expression data supplied")

	// ErrUnsupportedSlot indicates an emptiness check on a slot that is not one
	// of the known graph, list or matrix slots.
	ErrUnsupportedSlot = errors.New("milo: unsupported slot kind")

	// ErrReplacementNotImplemented indicates a reduced-dimension write to a
	// target outside the supported set.
	ErrReplacementNotImplemented = errors.New("milo: replacement not implemented for target")

	// ErrAssayNotFound indicates a lookup of an assay name that is not present.
	ErrAssayNotFound = errors.New("milo: assay not found")

	// ErrDuplicateAssay indicates two assays share a name.
	ErrDuplicateAssay = errors.New("milo: duplicate assay name")

	// ErrCellMismatch indicates a matrix or label vector whose cell axis does
	// not match the experiment's number of cells.
	ErrCellMismatch = errors.New("milo: cell count mismatch")

	// ErrNhoodMismatch indicates a per-neighbourhood matrix whose
	// neighbourhood axis does not match the indicator's column count.
	ErrNhoodMismatch = errors.New("milo: neighbourhood count mismatch")

	// ErrNotBinary indicates a neighbourhood-indicator matrix with entries
	// outside {0, 1}.
	ErrNotBinary = errors.New("milo: neighbourhood matrix is not binary")

	// ErrLabelsNotFound indicates a lookup of a cell-label column that is not present.
	ErrLabelsNotFound = errors.New("milo: cell labels not found")

	// ErrNilMatrix indicates a nil matrix was handed to a setter.
	ErrNilMatrix = errors.New("milo: nil matrix")
)
