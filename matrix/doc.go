// SPDX-License-Identifier: MIT

// Package matrix provides the numeric containers used by the clustering
// pipeline: a row-major Dense matrix for feature data and a Condensed
// (lower-triangle) matrix for symmetric pairwise distances.
//
// The matrix package provides:
//
//   - Dense: r×c row-major storage with bounds-checked At/Set. The numeric
//     policy is configurable: feature matrices built from datasets carry NaN
//     as the missing-value marker, so they are created WithNoValidateNaNInf().
//   - Condensed: n×n symmetric zero-diagonal storage in n(n-1)/2 cells, the
//     natural layout for dissimilarities consumed by agglomerative clustering
//     and minimum spanning trees.
//   - NaN-aware column statistics (ColumnRanges, ColumnMeans) used by the
//     distance normalizer and by missing-value imputation.
//
// Public accessors never panic on user input; they return the sentinel errors
// declared in errors.go, wrapped with the method and coordinates.
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set: O(1); Clone: O(r*c).
//   - NewCondensed: O(n²/2); At/Set: O(1).
//   - ColumnRanges/ColumnMeans: O(r*c).
package matrix
