// Package hierarchical implements agglomerative (bottom-up) hierarchical
// clustering of dataset rows.
//
// Every instance starts as its own cluster; the two closest clusters are
// merged repeatedly until the requested number of clusters remains. The
// closeness of two clusters is the linkage:
//
//	SINGLE       shortest distance between members
//	COMPLETE     largest distance between members
//	AVERAGE      mean distance over all cross pairs
//	MEAN         mean distance over all pairs of the merged cluster
//	CENTROID     distance between cluster centroids
//	WARD         increase of the error sum of squares caused by the merge
//	ADJCOMPLETE  COMPLETE minus the largest within-cluster distance
//
// Implementation:
//
//   - Stage 1: fit a distance.Normalized metric on the dataset and compute the
//     condensed pairwise matrix in parallel.
//   - Stage 2 (SINGLE): build a minimum spanning tree (package mst) and merge
//     its edges in ascending (weight, U, V) order with a disjoint set.
//   - Stage 2 (other links): keep one aggregated value per cluster pair
//     (maximum, cross sum, or the linkage itself) updated after each merge,
//     plus a nearest-neighbour cache per cluster. Each merge picks the
//     lowest (i, j) pair among the minimal linkage values.
//   - Stage 3: number the surviving clusters by their smallest member index
//     and record per-cluster statistics for ClusterInstance.
//
// Complexity:
//   - SINGLE: O(n²·m) time for distances, O(n²) for Prim; O(n²) memory.
//   - Others: O(n²) per merge in the worst case, typically O(n·m).
//
// The model renders as one Newick tree per cluster (String, Newick).
package hierarchical
