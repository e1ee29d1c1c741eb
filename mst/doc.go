// Package mst computes minimum spanning trees over a complete weighted graph
// given as a condensed distance matrix (*matrix.Condensed): vertex i is row i,
// and every pair (i, j) is an edge weighted by the stored distance.
//
// What & Why
//
//   - A minimum spanning tree (MST) of n points connects them with n-1 edges of
//     minimal total weight.
//
//   - Single-link agglomerative clustering is equivalent to merging the MST
//     edges in ascending weight order; cutting the k-1 heaviest edges leaves the
//     k single-link clusters.
//
// Algorithms Provided
//
//   - Prim(d *matrix.Condensed, root int) ([]Edge, float64, error)
//
//   - Strategy: dense Prim. Keep for every outside vertex the lightest edge to
//     the tree; each step adds the outside vertex with the smallest key and
//     relaxes keys through it. No heap is needed on a complete graph.
//
//   - Complexity: Time O(n²), Space O(n).
//
//   - Kruskal(d *matrix.Condensed) ([]Edge, float64, error)
//
//   - Strategy: enumerate all n(n-1)/2 pairs in (U, V) order, stable-sort by
//     weight, then accept every edge joining two different components of a
//     DisjointSet (union by rank, path compression).
//
//   - Complexity: Time O(n² log n), Space O(n²).
//
// When to Choose Which Algorithm
//
//   - Prim is the default: on a complete graph it is asymptotically optimal
//     and allocates only O(n).
//
//   - Kruskal is kept as a cross-check and for small inputs where the full
//     sorted edge list is useful on its own.
//
// Determinism
//
//   - Edges are reported with U < V.
//   - Prim breaks key ties by lowest vertex index; Kruskal's stable sort keeps
//     (U, V) order among equal weights.
//   - SortEdges orders any MST by (Weight, U, V), the merge order used by
//     single-link clustering.
//
// Error Conditions
//
//   - ErrEmptyMatrix: the matrix is nil or has no vertices.
//   - ErrInvalidRoot: Prim root outside [0, n).
//   - ErrUnknownMethod: Compute received an unknown Method.
package mst
