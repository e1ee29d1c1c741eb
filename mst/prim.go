package mst

import (
	"math"

	"github.com/katalvlaran/hclust/matrix"
)

// Prim computes the MST of the complete graph described by d by growing a
// tree from root.
//
// Steps:
//  1. Validate d and root; a single vertex yields an empty tree.
//  2. key[v] holds the lightest known edge from the tree to v, parent[v] its
//     tree endpoint. Start with root in the tree.
//  3. Repeat n-1 times: relax keys through the last added vertex, then add
//     the outside vertex with the smallest key (lowest index on ties).
//
// Edges are returned in the order vertices join the tree.
//
// Complexity: O(n²) time, O(n) memory.
func Prim(d *matrix.Condensed, root int) ([]Edge, float64, error) {
	// 1. Validate.
	if d == nil || d.Size() == 0 {
		return nil, 0, ErrEmptyMatrix
	}
	n := d.Size()
	if root < 0 || root >= n {
		return nil, 0, ErrInvalidRoot
	}
	if n == 1 {
		return []Edge{}, 0, nil
	}

	// 2. Initialize keys.
	inTree := make([]bool, n)
	key := make([]float64, n)
	parent := make([]int, n)
	for v := range key {
		key[v] = math.Inf(1)
		parent[v] = -1
	}
	inTree[root] = true

	tree := make([]Edge, 0, n-1)
	var total, w float64
	last := root
	var v, next int

	// 3. Grow.
	for len(tree) < n-1 {
		next = -1
		for v = 0; v < n; v++ {
			if inTree[v] {
				continue
			}
			if w = d.Value(last, v); w < key[v] {
				key[v] = w
				parent[v] = last
			}
			if next < 0 || key[v] < key[next] {
				next = v
			}
		}

		inTree[next] = true
		tree = append(tree, newEdge(parent[next], next, key[next]))
		total += key[next]
		last = next
	}

	return tree, total, nil
}
