package hierarchical

import (
	"context"
	"math"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/distance"
	"github.com/katalvlaran/hclust/matrix"
)

// centroid returns the attribute-wise centre of rows: the mean of present
// values for numeric and date attributes, the most frequent label (lowest
// index on ties) for nominal ones, and missing otherwise.
func centroid(attrs []*dataset.Attribute, rows [][]float64) []float64 {
	c := make([]float64, len(attrs))
	var counts []int
	for j, a := range attrs {
		c[j] = dataset.Missing()
		switch {
		case a.Type.IsNumeric():
			var sum float64
			var n int
			for _, r := range rows {
				if v := r[j]; !dataset.IsMissing(v) {
					sum += v
					n++
				}
			}
			if n > 0 {
				c[j] = sum / float64(n)
			}

		case a.Type == dataset.Nominal && a.NumLabels() > 0:
			counts = append(counts[:0], make([]int, a.NumLabels())...)
			seen := false
			for _, r := range rows {
				if v := r[j]; !dataset.IsMissing(v) {
					counts[int(v)]++
					seen = true
				}
			}
			if !seen {
				continue
			}
			best := 0
			for k := 1; k < len(counts); k++ {
				if counts[k] > counts[best] {
					best = k
				}
			}
			c[j] = float64(best)
		}
	}

	return c
}

// errorSumOfSquares returns Σ d(r, centroid)² over rows.
func errorSumOfSquares(attrs []*dataset.Attribute, m distance.Metric, rows [][]float64) float64 {
	if len(rows) < 2 {
		return 0
	}
	c := centroid(attrs, rows)
	var sum, d float64
	for _, r := range rows {
		d = m.Distance(r, c)
		sum += d * d
	}

	return sum
}

// wardPair measures two singletons by the error sum of squares of their union.
type wardPair struct {
	attrs  []*dataset.Attribute
	metric distance.Metric
}

func (w wardPair) Distance(a, b []float64) float64 {
	return errorSumOfSquares(w.attrs, w.metric, [][]float64{a, b})
}

// linkState carries the working set of the generic agglomeration.
//
// agg(i, j) holds, for active clusters i < j:
//
//	COMPLETE, ADJCOMPLETE  maximum cross distance
//	AVERAGE, MEAN          sum of cross distances
//	CENTROID, WARD         the linkage value itself
type linkState struct {
	link     Link
	attrs    []*dataset.Attribute
	metric   distance.Metric
	rows     [][]float64
	agg      *matrix.Condensed
	active   []bool
	members  [][]int
	intra    []float64 // sum of within-cluster distances (MEAN)
	maxIntra []float64 // largest within-cluster distance (ADJCOMPLETE)
	cents    [][]float64
	ess      []float64
	nodes    []*Node
	nn       []int
	nnDist   []float64
}

func newLinkState(ctx context.Context, link Link, attrs []*dataset.Attribute, m distance.Metric,
	rows [][]float64, dist *matrix.Condensed, workers int) (*linkState, error) {
	n := len(rows)
	s := &linkState{
		link:     link,
		attrs:    attrs,
		metric:   m,
		rows:     rows,
		agg:      dist.Clone(),
		active:   make([]bool, n),
		members:  make([][]int, n),
		intra:    make([]float64, n),
		maxIntra: make([]float64, n),
		nodes:    make([]*Node, n),
		nn:       make([]int, n),
		nnDist:   make([]float64, n),
	}
	for i := range rows {
		s.active[i] = true
		s.members[i] = []int{i}
		s.nodes[i] = newLeaf(i)
	}

	switch link {
	case Centroid:
		s.cents = make([][]float64, n)
		for i, r := range rows {
			s.cents[i] = r
		}
	case Ward:
		s.ess = make([]float64, n)
		var err error
		if s.agg, err = distance.Pairwise(ctx, wardPair{attrs, m}, rows, distance.WithWorkers(workers)); err != nil {
			return nil, err
		}
	}

	for i := range rows {
		s.refreshNeighbour(i)
	}

	return s, nil
}

// linkage returns the linkage value of active clusters i < j.
func (s *linkState) linkage(i, j int) float64 {
	v := s.agg.Value(i, j)
	switch s.link {
	case Average:
		return v / float64(len(s.members[i])*len(s.members[j]))
	case Mean:
		n := float64(len(s.members[i]) + len(s.members[j]))
		return (s.intra[i] + s.intra[j] + v) / (n * (n - 1) / 2)
	case AdjComplete:
		return v - max(s.maxIntra[i], s.maxIntra[j])
	default:
		return v
	}
}

// refreshNeighbour recomputes the nearest active j > i.
func (s *linkState) refreshNeighbour(i int) {
	s.nn[i], s.nnDist[i] = -1, math.Inf(1)
	var l float64
	for j := i + 1; j < len(s.active); j++ {
		if !s.active[j] {
			continue
		}
		if l = s.linkage(i, j); l < s.nnDist[i] {
			s.nn[i], s.nnDist[i] = j, l
		}
	}
}

// closest returns the lowest (a, b) pair with the minimal linkage.
func (s *linkState) closest() (a, b int, height float64) {
	a = -1
	for i, ok := range s.active {
		if !ok || s.nn[i] < 0 {
			continue
		}
		if a < 0 || s.nnDist[i] < s.nnDist[a] {
			a = i
		}
	}

	return a, s.nn[a], s.nnDist[a]
}

// rowsOf returns the training rows of the given member lists.
func (s *linkState) rowsOf(lists ...[]int) [][]float64 {
	var n int
	for _, l := range lists {
		n += len(l)
	}
	out := make([][]float64, 0, n)
	for _, l := range lists {
		for _, i := range l {
			out = append(out, s.rows[i])
		}
	}

	return out
}

// merge folds cluster b into a (a < b) and refreshes every affected value.
func (s *linkState) merge(a, b int, height float64) error {
	ab := s.agg.Value(a, b)
	switch s.link {
	case Mean:
		s.intra[a] += s.intra[b] + ab
	case AdjComplete:
		s.maxIntra[a] = max(s.maxIntra[a], s.maxIntra[b], ab)
	}
	s.members[a] = append(s.members[a], s.members[b]...)
	s.members[b] = nil
	s.nodes[a] = join(s.nodes[a], s.nodes[b], height)
	s.nodes[b] = nil
	s.active[b] = false

	switch s.link {
	case Centroid:
		s.cents[a] = centroid(s.attrs, s.rowsOf(s.members[a]))
		s.cents[b] = nil
	case Ward:
		s.ess[a] = errorSumOfSquares(s.attrs, s.metric, s.rowsOf(s.members[a]))
	}

	var v float64
	for x, ok := range s.active {
		if !ok || x == a {
			continue
		}
		switch s.link {
		case Complete, AdjComplete:
			v = max(s.agg.Value(a, x), s.agg.Value(b, x))
		case Average, Mean:
			v = s.agg.Value(a, x) + s.agg.Value(b, x)
		case Centroid:
			v = s.metric.Distance(s.cents[a], s.cents[x])
		case Ward:
			v = errorSumOfSquares(s.attrs, s.metric, s.rowsOf(s.members[a], s.members[x])) - s.ess[a] - s.ess[x]
		}
		if err := s.agg.Set(a, x, v); err != nil {
			return err
		}
	}

	s.updateNeighbours(a, b)

	return nil
}

// updateNeighbours repairs the nearest-neighbour cache after merging b into a.
func (s *linkState) updateNeighbours(a, b int) {
	var l float64
	for i, ok := range s.active {
		switch {
		case !ok:
			continue
		case i == a || s.nn[i] == a || s.nn[i] == b:
			s.refreshNeighbour(i)
		case i < a:
			if l = s.linkage(i, a); l < s.nnDist[i] || (l == s.nnDist[i] && a < s.nn[i]) {
				s.nn[i], s.nnDist[i] = a, l
			}
		}
	}
}

// run merges until k clusters remain and returns the surviving roots in
// index order.
func (s *linkState) run(ctx context.Context, k int) ([]*Node, error) {
	for clusters := len(s.rows); clusters > k; clusters-- {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		a, b, h := s.closest()
		if err := s.merge(a, b, h); err != nil {
			return nil, err
		}
	}

	roots := make([]*Node, 0, k)
	for i, ok := range s.active {
		if ok {
			roots = append(roots, s.nodes[i])
		}
	}

	return roots, nil
}
