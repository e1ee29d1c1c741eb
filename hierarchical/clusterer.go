package hierarchical

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/distance"
	"github.com/katalvlaran/hclust/matrix"
	"github.com/katalvlaran/hclust/mst"
)

// Clusterer is an agglomerative hierarchical clusterer. Configure it with New,
// train it with Build, then query assignments or classify new rows.
// A built Clusterer is safe for concurrent readers.
type Clusterer struct {
	opts Options

	header    *dataset.Instances // training data, deep-copied
	metric    distance.Metric
	roots     []*Node // one dendrogram per cluster, numbered
	assign    []int
	stats     []clusterStats
	labelAttr int
}

// clusterStats is what ClusterInstance needs about one final cluster.
type clusterStats struct {
	members  []int
	intra    float64 // sum of within-cluster distances
	maxIntra float64
	centroid []float64
	ess      float64
}

// New returns a Clusterer configured by opts.
//
// Errors: ErrInvalidK when k < 1, ErrUnknownLink for an invalid Link,
// mst.ErrUnknownMethod for an unknown spanning-tree method.
func New(opts ...Option) (*Clusterer, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.NumClusters < 1 {
		return nil, fmt.Errorf("k=%d: %w", o.NumClusters, ErrInvalidK)
	}
	if !o.Link.Valid() {
		return nil, fmt.Errorf("%s: %w", o.Link, ErrUnknownLink)
	}
	if o.SpanningTree != mst.MethodPrim && o.SpanningTree != mst.MethodKruskal {
		return nil, fmt.Errorf("hierarchical: spanning tree %q: %w", o.SpanningTree, mst.ErrUnknownMethod)
	}

	return &Clusterer{opts: o}, nil
}

// Options returns the effective configuration.
func (c *Clusterer) Options() Options { return c.opts }

// Build clusters d. The dataset is copied; later changes to d do not affect
// the model. The class attribute, if set, does not contribute to distances.
//
// Errors: ErrNoInstances, distance errors from fitting the metric, ctx.Err()
// on cancellation.
func (c *Clusterer) Build(ctx context.Context, d *dataset.Instances) error {
	if d == nil || d.NumInstances() == 0 {
		return ErrNoInstances
	}
	data := d.Copy()
	c.roots, c.assign, c.stats = nil, nil, nil

	metric, err := distance.New(data, c.opts.Metric, c.opts.DistanceOptions...)
	if err != nil {
		return fmt.Errorf("hierarchical: %w", err)
	}
	dist, err := distance.Pairwise(ctx, metric, data.Rows, distance.WithWorkers(c.opts.Workers))
	if err != nil {
		return fmt.Errorf("hierarchical: %w", err)
	}

	k := c.opts.NumClusters
	var roots []*Node
	if c.opts.Link == Single {
		roots, err = c.buildSingle(dist, k)
	} else {
		var s *linkState
		if s, err = newLinkState(ctx, c.opts.Link, data.Attributes, metric, data.Rows, dist, c.opts.Workers); err == nil {
			roots, err = s.run(ctx, k)
		}
	}
	if err != nil {
		return fmt.Errorf("hierarchical: %w", err)
	}

	sort.SliceStable(roots, func(a, b int) bool { return roots[a].minLeaf() < roots[b].minLeaf() })
	c.header, c.metric, c.roots = data, metric, roots
	c.labelAttr = c.resolveLabel()
	c.finalize(dist)

	return nil
}

// buildSingle merges minimum-spanning-tree edges in ascending order.
//
// Edges of equal weight form a group. A group with one edge is a single
// unambiguous merge. A larger group is replayed over every instance pair at
// that distance, so the lowest (smallest member, smallest member) cluster
// pair merges first, as in the generic path.
func (c *Clusterer) buildSingle(dist *matrix.Condensed, k int) ([]*Node, error) {
	n := dist.Size()
	nodes := make([]*Node, n)
	mins := make([]int, n) // smallest member per disjoint-set root
	for i := range nodes {
		nodes[i] = newLeaf(i)
		mins[i] = i
	}
	if n <= k {
		return nodes, nil
	}

	edges, _, err := mst.Compute(dist, mst.NewOptions(mst.WithMethod(c.opts.SpanningTree)))
	if err != nil {
		return nil, err
	}
	mst.SortEdges(edges)

	ds := mst.NewDisjointSet(n)
	merge := func(u, v int, h float64) {
		ru, rv := ds.Find(u), ds.Find(v)
		left, right := nodes[ru], nodes[rv]
		lo := min(mins[ru], mins[rv])
		if mins[rv] < mins[ru] {
			left, right = right, left
		}
		ds.Union(ru, rv)
		r := ds.Find(ru)
		nodes[r], mins[r] = join(left, right, h), lo
	}

	merges := n - k
	for g := 0; g < len(edges) && merges > 0; {
		w := edges[g].Weight
		end := g + 1
		for end < len(edges) && edges[end].Weight == w {
			end++
		}
		if end-g == 1 {
			merge(edges[g].U, edges[g].V, w)
			merges--
		} else {
			merges -= mergeTied(dist, ds, mins, w, merges, merge)
		}
		g = end
	}

	roots := make([]*Node, 0, k)
	for v := range nodes {
		if ds.Find(v) == v {
			roots = append(roots, nodes[v])
		}
	}

	return roots, nil
}

// mergeTied performs up to limit merges among clusters at single-link
// distance w, always taking the lowest cluster pair, and returns the count.
func mergeTied(dist *matrix.Condensed, ds *mst.DisjointSet, mins []int, w float64, limit int, merge func(u, v int, h float64)) int {
	var pairs [][2]int
	for i := 1; i < dist.Size(); i++ {
		for j, v := range dist.RowSlice(i) {
			if v == w && ds.Find(i) != ds.Find(j) {
				pairs = append(pairs, [2]int{j, i})
			}
		}
	}

	done := 0
	for done < limit {
		best, bestLo, bestHi := -1, 0, 0
		for p, e := range pairs {
			ru, rv := ds.Find(e[0]), ds.Find(e[1])
			if ru == rv {
				continue
			}
			lo, hi := mins[ru], mins[rv]
			if hi < lo {
				lo, hi = hi, lo
			}
			if best < 0 || lo < bestLo || (lo == bestLo && hi < bestHi) {
				best, bestLo, bestHi = p, lo, hi
			}
		}
		if best < 0 {
			break
		}
		merge(pairs[best][0], pairs[best][1], w)
		done++
	}

	return done
}

// finalize derives assignments and per-cluster statistics from the roots.
func (c *Clusterer) finalize(dist *matrix.Condensed) {
	c.assign = make([]int, c.header.NumInstances())
	c.stats = make([]clusterStats, len(c.roots))
	for ci, root := range c.roots {
		st := clusterStats{members: root.Leaves()}
		sort.Ints(st.members)
		for a, i := range st.members {
			c.assign[i] = ci
			for _, j := range st.members[:a] {
				v := dist.Value(i, j)
				st.intra += v
				st.maxIntra = max(st.maxIntra, v)
			}
		}
		if c.opts.Link == Centroid || c.opts.Link == Ward {
			rows := c.rowsOf(st.members)
			st.centroid = centroid(c.header.Attributes, rows)
			st.ess = errorSumOfSquares(c.header.Attributes, c.metric, rows)
		}
		c.stats[ci] = st
	}
}

func (c *Clusterer) rowsOf(members []int) [][]float64 {
	out := make([][]float64, len(members))
	for k, i := range members {
		out[k] = c.header.Rows[i]
	}

	return out
}

// resolveLabel picks the leaf label attribute: the configured one, else the
// class, else the first string attribute, else the last attribute.
func (c *Clusterer) resolveLabel() int {
	d := c.header
	if j := c.opts.LabelAttribute; j >= 0 && j < d.NumAttributes() {
		return j
	}
	if d.ClassIndex != dataset.NoClass {
		return d.ClassIndex
	}
	for j, a := range d.Attributes {
		if a.Type == dataset.String {
			return j
		}
	}

	return d.NumAttributes() - 1
}

// NumClusters returns the number of clusters formed: min(k, instances).
func (c *Clusterer) NumClusters() (int, error) {
	if c.roots == nil {
		return 0, ErrNotBuilt
	}

	return len(c.roots), nil
}

// Assignments returns the cluster of every training instance.
func (c *Clusterer) Assignments() ([]int, error) {
	if c.roots == nil {
		return nil, ErrNotBuilt
	}

	return append([]int(nil), c.assign...), nil
}

// Sizes returns the number of training instances per cluster.
func (c *Clusterer) Sizes() ([]int, error) {
	if c.roots == nil {
		return nil, ErrNotBuilt
	}
	sizes := make([]int, len(c.roots))
	for ci, r := range c.roots {
		sizes[ci] = r.Size
	}

	return sizes, nil
}

// Dendrograms returns the root of each cluster's tree in cluster order.
func (c *Clusterer) Dendrograms() ([]*Node, error) {
	if c.roots == nil {
		return nil, ErrNotBuilt
	}

	return append([]*Node(nil), c.roots...), nil
}

// Label renders the leaf label of training instance i.
func (c *Clusterer) Label(i int) string {
	s, err := c.header.StringValue(i, c.labelAttr)
	if err != nil {
		return fmt.Sprint(i)
	}

	return s
}

// Newick renders cluster ci as a Newick tree.
func (c *Clusterer) Newick(ci int) (string, error) {
	if c.roots == nil {
		return "", ErrNotBuilt
	}
	if ci < 0 || ci >= len(c.roots) {
		return "", fmt.Errorf("hierarchical: cluster %d: %w", ci, matrix.ErrOutOfRange)
	}

	return c.roots[ci].Newick(c.Label, c.opts.BranchLength), nil
}

// String renders the model: "Cluster i" followed by its Newick tree and a
// blank line, for every cluster.
func (c *Clusterer) String() string {
	if c.roots == nil {
		return "No clusterer built yet.\n"
	}
	var b strings.Builder
	for ci, root := range c.roots {
		fmt.Fprintf(&b, "Cluster %d\n%s\n\n", ci, root.Newick(c.Label, c.opts.BranchLength))
	}

	return b.String()
}
