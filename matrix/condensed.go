// SPDX-License-Identifier: MIT

// Package matrix - Condensed symmetric distance storage.
//
// Purpose:
//   - Store an n×n symmetric matrix with an implicit zero diagonal in n(n-1)/2 cells.
//   - Offer symmetric access: At(i,j) == At(j,i); the caller never orders indices.
//
// Layout:
//   - Strict lower triangle, row-major: cell (i,j) with i>j lives at i*(i-1)/2 + j.
//
// Complexity quicksheet:
//   - NewCondensed: O(n²/2) zero-init; At/Set: O(1); Clone: O(n²/2).
package matrix

import (
	"fmt"
	"math"
)

const (
	ctxCondAt  = "At"  // method tag used in error wrappers
	ctxCondSet = "Set" // method tag used in error wrappers
)

// condensedErrorf wraps err with Condensed context and coordinates.
func condensedErrorf(method string, i, j int, err error) error {
	return fmt.Errorf("Condensed.%s(%d,%d): %w", method, i, j, err)
}

// Condensed is a symmetric, zero-diagonal n×n matrix of pairwise values.
// Values must be finite; NaN/±Inf are rejected by Set.
type Condensed struct {
	n    int       // logical order (n×n)
	data []float64 // len == n*(n-1)/2, strict lower triangle row-major
}

// NewCondensed allocates an n×n zero Condensed matrix.
//
// Errors:
//   - ErrInvalidDimensions when n <= 0.
//
// Complexity:
//   - Time O(n²/2), Space O(n²/2).
func NewCondensed(n int) (*Condensed, error) {
	if n <= 0 {
		return nil, ErrInvalidDimensions
	}

	return &Condensed{n: n, data: make([]float64, n*(n-1)/2)}, nil
}

// Size returns the order n of the matrix.
func (c *Condensed) Size() int { return c.n }

// Len returns the number of stored off-diagonal cells, n(n-1)/2.
func (c *Condensed) Len() int { return len(c.data) }

// offset maps (i,j), i≠j, in any order to the flat index.
// Callers guarantee bounds and i≠j.
func (c *Condensed) offset(i, j int) int {
	if i < j {
		i, j = j, i
	}

	return i*(i-1)/2 + j
}

// At returns the value at (i, j); the diagonal is always 0.
//
// Errors:
//   - ErrOutOfRange when either index is outside [0, n).
//
// Complexity:
//   - Time O(1).
func (c *Condensed) At(i, j int) (float64, error) {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		return 0, condensedErrorf(ctxCondAt, i, j, ErrOutOfRange)
	}
	if i == j {
		return 0, nil
	}

	return c.data[c.offset(i, j)], nil
}

// Set stores v at (i, j) and, implicitly, at (j, i).
//
// Errors:
//   - ErrOutOfRange for bounds.
//   - ErrDiagonal when i == j and v != 0 (a zero write is a no-op).
//   - ErrNaNInf for non-finite v.
//
// Complexity:
//   - Time O(1).
func (c *Condensed) Set(i, j int, v float64) error {
	if i < 0 || i >= c.n || j < 0 || j >= c.n {
		return condensedErrorf(ctxCondSet, i, j, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return condensedErrorf(ctxCondSet, i, j, ErrNaNInf)
	}
	if i == j {
		if v != 0 {
			return condensedErrorf(ctxCondSet, i, j, ErrDiagonal)
		}

		return nil
	}
	c.data[c.offset(i, j)] = v

	return nil
}

// Value is the unchecked accessor for hot loops (i≠j, both in range).
// It panics on invalid indices like a slice index would.
func (c *Condensed) Value(i, j int) float64 {
	return c.data[c.offset(i, j)]
}

// RowSlice returns the stored cells (i,0..i-1) of row i without copying.
// Writes through it are visible in c. Used by parallel fillers that own
// disjoint rows.
func (c *Condensed) RowSlice(i int) []float64 {
	start := i * (i - 1) / 2

	return c.data[start : start+i : start+i]
}

// Clone returns an independent copy.
func (c *Condensed) Clone() *Condensed {
	cp := make([]float64, len(c.data))
	copy(cp, c.data)

	return &Condensed{n: c.n, data: cp}
}
