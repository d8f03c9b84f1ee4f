// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for common validation checks.
//  - Keep kernels minimal by delegating nil/shape/name checks here.
//  - Return plain sentinel errors wrapped with the validator tag.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures m is usable: neither a nil interface nor a nil or
// zero-value pointer behind one. Every constructor rejects empty shapes, so a
// zero row or column count can only come from such a value.
//
// Returns ErrNilMatrix otherwise.
// Complexity: O(1).
// AI-Hints: Use as the first step in composite validations.
func ValidateNotNil(m Matrix) error {
	if m == nil || m.Rows() == 0 || m.Cols() == 0 {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateNames accepts nil (unnamed axis) or exactly n labels.
// Complexity: O(1).
func ValidateNames(names []string, n int) error {
	if names != nil && len(names) != n {
		return validatorErrorf("ValidateNames", ErrBadNames)
	}

	return nil
}

// ValidateInner checks the inner dimensions of a product a·b (a.Cols == b.Rows).
// Assumes both operands are non-nil.
func ValidateInner(a, b Matrix) error {
	if a.Cols() != b.Rows() {
		return validatorErrorf("ValidateInner", ErrDimensionMismatch)
	}

	return nil
}
