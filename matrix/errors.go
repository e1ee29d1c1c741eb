// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// This file defines ONLY package-level sentinel errors used across the matrix
// package. Algorithms return these sentinels (optionally wrapped with context)
// and tests check them via errors.Is.

package matrix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value was encountered where finite values
	// are required by the numeric policy.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrDiagonal signals a write of a non-zero value onto the implicit zero
	// diagonal of a Condensed matrix.
	ErrDiagonal = errors.New("matrix: condensed diagonal is fixed at zero")

	// ErrRowLength indicates that a row slice does not match the column count.
	ErrRowLength = errors.New("matrix: row length mismatch")
)

// matrixErrorf wraps err with an operation tag: "<op>: <err>".
// Complexity: O(1).
func matrixErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
