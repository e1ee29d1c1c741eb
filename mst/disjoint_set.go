package mst

// DisjointSet is a union-find forest over vertices 0..n-1 with union by rank
// and path compression. The zero value is not usable; call NewDisjointSet.
type DisjointSet struct {
	parent []int
	rank   []int
	size   []int
	sets   int
}

// NewDisjointSet returns n singleton sets.
func NewDisjointSet(n int) *DisjointSet {
	ds := &DisjointSet{
		parent: make([]int, n),
		rank:   make([]int, n),
		size:   make([]int, n),
		sets:   n,
	}
	for v := range ds.parent {
		ds.parent[v] = v
		ds.size[v] = 1
	}

	return ds
}

// Find returns the representative of v's set.
// Iterative with path halving to avoid deep recursion.
func (ds *DisjointSet) Find(v int) int {
	for ds.parent[v] != v {
		ds.parent[v] = ds.parent[ds.parent[v]]
		v = ds.parent[v]
	}

	return v
}

// Union merges the sets of u and v and reports whether they were disjoint.
func (ds *DisjointSet) Union(u, v int) bool {
	ru, rv := ds.Find(u), ds.Find(v)
	if ru == rv {
		return false
	}
	// Attach the lower-rank tree under the higher-rank root.
	if ds.rank[ru] < ds.rank[rv] {
		ru, rv = rv, ru
	}
	ds.parent[rv] = ru
	ds.size[ru] += ds.size[rv]
	if ds.rank[ru] == ds.rank[rv] {
		ds.rank[ru]++
	}
	ds.sets--

	return true
}

// Connected reports whether u and v share a set.
func (ds *DisjointSet) Connected(u, v int) bool { return ds.Find(u) == ds.Find(v) }

// Size returns the number of vertices in v's set.
func (ds *DisjointSet) Size(v int) int { return ds.size[ds.Find(v)] }

// Sets returns the current number of disjoint sets.
func (ds *DisjointSet) Sets() int { return ds.sets }
