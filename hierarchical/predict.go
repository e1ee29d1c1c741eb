package hierarchical

import (
	"fmt"
	"math"

	"github.com/katalvlaran/hclust/dataset"
)

// ClusterInstance returns the cluster of row.
//
// A row identical to a training instance (missing values compare equal)
// gets that instance's cluster. Any other row goes to the cluster with the
// smallest linkage value between {row} and the cluster, using the configured
// link; ties resolve to the lowest cluster number.
//
// Errors: ErrNotBuilt, ErrRowWidth.
func (c *Clusterer) ClusterInstance(row []float64) (int, error) {
	if c.roots == nil {
		return 0, ErrNotBuilt
	}
	if len(row) != c.header.NumAttributes() {
		return 0, fmt.Errorf("got %d values, want %d: %w", len(row), c.header.NumAttributes(), ErrRowWidth)
	}
	if len(c.roots) == 1 {
		return 0, nil
	}
	for i, r := range c.header.Rows {
		if sameRow(r, row) {
			return c.assign[i], nil
		}
	}

	best, bestDist := 0, math.Inf(1)
	for ci := range c.stats {
		if d := c.linkToRow(ci, row); d < bestDist {
			best, bestDist = ci, d
		}
	}

	return best, nil
}

// linkToRow is the linkage value between cluster ci and the singleton {row}.
func (c *Clusterer) linkToRow(ci int, row []float64) float64 {
	st := &c.stats[ci]
	switch c.opts.Link {
	case Centroid:
		return c.metric.Distance(row, st.centroid)
	case Ward:
		rows := append(c.rowsOf(st.members), row)
		return errorSumOfSquares(c.header.Attributes, c.metric, rows) - st.ess
	}

	minD, maxD, sum := math.Inf(1), 0.0, 0.0
	for _, i := range st.members {
		d := c.metric.Distance(row, c.header.Rows[i])
		minD = min(minD, d)
		maxD = max(maxD, d)
		sum += d
	}
	size := float64(len(st.members))

	switch c.opts.Link {
	case Complete:
		return maxD
	case Average:
		return sum / size
	case Mean:
		n := size + 1
		return (st.intra + sum) / (n * (n - 1) / 2)
	case AdjComplete:
		return maxD - st.maxIntra
	default:
		return minD
	}
}

func sameRow(a, b []float64) bool {
	for j, v := range a {
		w := b[j]
		if v != w && !(dataset.IsMissing(v) && dataset.IsMissing(w)) {
			return false
		}
	}

	return true
}
