package distance

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hclust/matrix"
)

// blockRows is the number of condensed rows handed to one goroutine.
const blockRows = 64

// PairwiseOption configures Pairwise.
type PairwiseOption func(*pairwiseConfig)

type pairwiseConfig struct {
	workers int
}

// WithWorkers bounds the number of concurrent goroutines (n ≤ 0 means GOMAXPROCS).
func WithWorkers(n int) PairwiseOption {
	return func(c *pairwiseConfig) { c.workers = n }
}

// scratchMetric is implemented by metrics that can reuse a difference buffer.
type scratchMetric interface {
	DistanceInto(a, b, scratch []float64) float64
}

// Pairwise computes the distance between every pair of rows.
//
// Rows are split into blocks of condensed rows; each block is filled by one
// goroutine of an errgroup limited to the configured worker count. Blocks
// write disjoint regions of the result, so no locking is needed.
//
// Errors:
//   - matrix.ErrInvalidDimensions when rows is empty.
//   - ErrRowWidth when rows differ in width.
//   - ErrNonFinite when a distance is NaN or ±Inf.
//   - ctx.Err() when the context is cancelled.
//
// Complexity: O(n²·m) time, n(n-1)/2 float64 of memory.
func Pairwise(ctx context.Context, m Metric, rows [][]float64, opts ...PairwiseOption) (*matrix.Condensed, error) {
	cfg := pairwiseConfig{workers: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.workers <= 0 {
		cfg.workers = runtime.GOMAXPROCS(0)
	}

	n := len(rows)
	out, err := matrix.NewCondensed(n)
	if err != nil {
		return nil, fmt.Errorf("distance: pairwise: %w", err)
	}
	width := len(rows[0])
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("distance: pairwise row %d: %w", i, ErrRowWidth)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.workers)
	for lo := 1; lo < n; lo += blockRows {
		hi := min(lo+blockRows, n)
		g.Go(func() error {
			return fillBlock(gctx, m, rows, out, lo, hi, width)
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// fillBlock computes condensed rows [lo, hi).
func fillBlock(ctx context.Context, m Metric, rows [][]float64, out *matrix.Condensed, lo, hi, width int) error {
	sm, reuse := m.(scratchMetric)
	var scratch []float64
	if reuse {
		scratch = make([]float64, width)
	}
	for i := lo; i < hi; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		dst := out.RowSlice(i)
		for j := range dst {
			var d float64
			if reuse {
				d = sm.DistanceInto(rows[i], rows[j], scratch)
			} else {
				d = m.Distance(rows[i], rows[j])
			}
			if math.IsNaN(d) || math.IsInf(d, 0) {
				return fmt.Errorf("distance: pair (%d,%d): %w", i, j, ErrNonFinite)
			}
			dst[j] = d
		}
	}

	return nil
}
