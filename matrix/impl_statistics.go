// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide NaN-aware column statistics for feature matrices where NaN marks
//     a missing value: per-column ranges (for [0,1] normalization) and means.
//
// Exposed API:
//   - ColumnRanges(X) -> (mins, maxs)  // over present (non-NaN) values
//   - ColumnMeans(X)  -> (means, counts)
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense fast-paths avoid At and operate on the row-major flat buffer.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opColumnRanges = "ColumnRanges"
	opColumnMeans  = "ColumnMeans"
)

// ColumnRanges returns the per-column minimum and maximum over non-NaN values.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Seed mins/maxs with NaN ("no value seen").
//   - Stage 3: Single deterministic pass (Dense fast-path; At fallback).
//
// Behavior highlights:
//   - A column whose values are all NaN yields (NaN, NaN).
//   - ±Inf values participate like ordinary numbers.
//
// Errors:
//   - ErrNilMatrix; wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnRanges(X Matrix) ([]float64, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnRanges, err)
	}
	r, c := X.Rows(), X.Cols()
	mins := make([]float64, c)
	maxs := make([]float64, c)
	var i, j int
	for j = 0; j < c; j++ {
		mins[j] = math.NaN()
		maxs[j] = math.NaN()
	}

	observe := func(j int, v float64) {
		if math.IsNaN(v) {
			return
		}
		if math.IsNaN(mins[j]) || v < mins[j] {
			mins[j] = v
		}
		if math.IsNaN(maxs[j]) || v > maxs[j] {
			maxs[j] = v
		}
	}

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				observe(j, d.data[base+j])
			}
		}

		return mins, maxs, nil
	}

	var v float64
	var err error
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = X.At(i, j); err != nil {
				return nil, nil, matrixErrorf(opColumnRanges, err)
			}
			observe(j, v)
		}
	}

	return mins, maxs, nil
}

// ColumnMeans returns the per-column mean over non-NaN values together with
// the number of values that contributed.
//
// Behavior highlights:
//   - A column with no present values has mean NaN and count 0.
//
// Errors:
//   - ErrNilMatrix; wrapped At errors from the fallback path.
//
// Complexity:
//   - Time O(r*c), Space O(c).
func ColumnMeans(X Matrix) ([]float64, []int, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnMeans, err)
	}
	r, c := X.Rows(), X.Cols()
	sums := make([]float64, c)
	counts := make([]int, c)
	var i, j int
	var v float64

	if d, ok := X.(*Dense); ok {
		for i = 0; i < r; i++ {
			base := i * c
			for j = 0; j < c; j++ {
				v = d.data[base+j]
				if !math.IsNaN(v) {
					sums[j] += v
					counts[j]++
				}
			}
		}
	} else {
		var err error
		for i = 0; i < r; i++ {
			for j = 0; j < c; j++ {
				if v, err = X.At(i, j); err != nil {
					return nil, nil, matrixErrorf(opColumnMeans, err)
				}
				if !math.IsNaN(v) {
					sums[j] += v
					counts[j]++
				}
			}
		}
	}

	for j = 0; j < c; j++ {
		if counts[j] == 0 {
			sums[j] = math.NaN()
			continue
		}
		sums[j] /= float64(counts[j])
	}

	return sums, counts, nil
}
