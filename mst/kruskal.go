package mst

import (
	"sort"

	"github.com/katalvlaran/hclust/matrix"
)

// Kruskal computes the MST of the complete graph described by d.
//
// Steps:
//  1. Validate d; a single vertex yields an empty tree.
//  2. Enumerate all pairs (u, v), u < v, in row-major order.
//  3. Stable-sort by ascending weight so equal weights keep (U, V) order.
//  4. Accept every edge whose endpoints lie in different DisjointSet sets,
//     stopping at n-1 edges.
//
// Complexity: O(n² log n) time, O(n²) memory.
func Kruskal(d *matrix.Condensed) ([]Edge, float64, error) {
	// 1. Validate.
	if d == nil || d.Size() == 0 {
		return nil, 0, ErrEmptyMatrix
	}
	n := d.Size()
	if n == 1 {
		return []Edge{}, 0, nil
	}

	// 2. Enumerate pairs.
	edges := make([]Edge, 0, d.Len())
	var u, v int
	for u = 0; u < n; u++ {
		for v = u + 1; v < n; v++ {
			edges = append(edges, Edge{U: u, V: v, Weight: d.Value(u, v)})
		}
	}

	// 3. Stable sort by weight.
	sort.SliceStable(edges, func(a, b int) bool {
		return edges[a].Weight < edges[b].Weight
	})

	// 4. Union-find sweep.
	ds := NewDisjointSet(n)
	tree := make([]Edge, 0, n-1)
	var total float64
	for _, e := range edges {
		if !ds.Union(e.U, e.V) {
			continue
		}
		tree = append(tree, e)
		total += e.Weight
		if len(tree) == n-1 {
			break
		}
	}

	return tree, total, nil
}
