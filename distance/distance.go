// Package distance measures dissimilarity between dataset rows.
//
// A Normalized metric is fitted on a dataset: numeric (and date) attributes
// are scaled to [0,1] using the attribute's observed min/max, nominal
// attributes contribute 0 when equal and 1 otherwise, and string attributes
// and the class attribute are ignored. Missing values follow fixed rules:
//
//	numeric, both missing    → 1
//	numeric, one missing     → max(v, 1-v) for the present normalized value v
//	nominal, any missing     → 1
//
// The per-attribute differences form a vector whose p-norm is the distance:
// Euclidean (p=2), Manhattan (p=1) or Chebyshev (p=∞).
//
// Pairwise computes all n(n-1)/2 distances into a *matrix.Condensed using a
// bounded pool of goroutines.
package distance

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/matrix"
)

// Sentinel errors.
var (
	// ErrUnknownMetric indicates a metric name that ParseMetric does not know.
	ErrUnknownMetric = errors.New("distance: unknown metric")

	// ErrNoAttributes indicates a dataset with no attribute that contributes to distance.
	ErrNoAttributes = errors.New("distance: no usable attributes")

	// ErrRowWidth indicates a row whose width differs from the fitted header.
	ErrRowWidth = errors.New("distance: row width does not match the fitted header")

	// ErrNonFinite indicates a NaN or infinite distance (non-finite input values).
	ErrNonFinite = errors.New("distance: non-finite distance")
)

// Kind selects the norm applied to the difference vector.
type Kind int

const (
	// Euclidean is the 2-norm.
	Euclidean Kind = iota
	// Manhattan is the 1-norm.
	Manhattan
	// Chebyshev is the ∞-norm.
	Chebyshev
)

// String returns the lower-case metric name.
func (k Kind) String() string {
	switch k {
	case Euclidean:
		return "euclidean"
	case Manhattan:
		return "manhattan"
	case Chebyshev:
		return "chebyshev"
	default:
		return "unknown"
	}
}

// norm returns the p of the p-norm.
func (k Kind) norm() float64 {
	switch k {
	case Manhattan:
		return 1
	case Chebyshev:
		return math.Inf(1)
	default:
		return 2
	}
}

// ParseMetric maps a case-insensitive name to a Kind.
func ParseMetric(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euclidean", "":
		return Euclidean, nil
	case "manhattan", "cityblock":
		return Manhattan, nil
	case "chebyshev":
		return Chebyshev, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownMetric)
	}
}

// Metric returns the dissimilarity of two rows of equal width.
type Metric interface {
	Distance(a, b []float64) float64
}

// Option configures a Normalized metric.
type Option func(*Normalized)

// NoNormalize uses raw numeric differences instead of [0,1] scaling.
// Missing-value rules still use the normalized value of the present side.
func NoNormalize() Option {
	return func(n *Normalized) { n.normalize = false }
}

// WithIgnored excludes the given attribute indices from the distance.
func WithIgnored(idx ...int) Option {
	return func(n *Normalized) {
		for _, j := range idx {
			n.ignored[j] = true
		}
	}
}

// Normalized is a Metric fitted on a dataset header and its value ranges.
// It is safe for concurrent use once built.
type Normalized struct {
	kind      Kind
	p         float64
	normalize bool
	width     int
	active    []int  // contributing attribute indices
	nominal   []bool // parallel to active
	mins      []float64
	maxs      []float64
	ignored   map[int]bool
}

// New fits a metric of the given kind on d.
//
// Errors:
//   - ErrNoAttributes when no attribute contributes (all string/class/ignored).
//   - wrapped matrix errors when d has no rows.
func New(d *dataset.Instances, kind Kind, opts ...Option) (*Normalized, error) {
	m := &Normalized{
		kind:      kind,
		p:         kind.norm(),
		normalize: true,
		width:     d.NumAttributes(),
		ignored:   map[int]bool{},
	}
	for _, opt := range opts {
		opt(m)
	}

	for j, a := range d.Attributes {
		if j == d.ClassIndex || m.ignored[j] {
			continue
		}
		switch {
		case a.Type.IsNumeric():
			m.active = append(m.active, j)
			m.nominal = append(m.nominal, false)
		case a.Type == dataset.Nominal:
			m.active = append(m.active, j)
			m.nominal = append(m.nominal, true)
		}
	}
	if len(m.active) == 0 {
		return nil, ErrNoAttributes
	}

	X, err := d.Matrix()
	if err != nil {
		return nil, fmt.Errorf("distance: fit ranges: %w", err)
	}
	if m.mins, m.maxs, err = matrix.ColumnRanges(X); err != nil {
		return nil, fmt.Errorf("distance: fit ranges: %w", err)
	}

	return m, nil
}

// Kind returns the configured norm.
func (m *Normalized) Kind() Kind { return m.kind }

// Width returns the expected row width.
func (m *Normalized) Width() int { return m.width }

// Active returns the indices of contributing attributes.
func (m *Normalized) Active() []int { return append([]int(nil), m.active...) }

// Range returns the fitted (min, max) of attribute j (NaN when unseen).
func (m *Normalized) Range(j int) (float64, float64) { return m.mins[j], m.maxs[j] }

// Distance implements Metric. It allocates a scratch vector; hot loops
// should use DistanceInto.
func (m *Normalized) Distance(a, b []float64) float64 {
	return m.DistanceInto(a, b, make([]float64, len(m.active)))
}

// DistanceInto computes the distance using scratch (len ≥ len(Active())) for
// the difference vector.
func (m *Normalized) DistanceInto(a, b, scratch []float64) float64 {
	diff := scratch[:len(m.active)]
	for k, j := range m.active {
		if m.nominal[k] {
			diff[k] = nominalDiff(a[j], b[j])
			continue
		}
		diff[k] = m.numericDiff(j, a[j], b[j])
	}

	return floats.Norm(diff, m.p)
}

// Check validates that row has the fitted width.
func (m *Normalized) Check(row []float64) error {
	if len(row) != m.width {
		return fmt.Errorf("got %d values, want %d: %w", len(row), m.width, ErrRowWidth)
	}

	return nil
}

func nominalDiff(x, y float64) float64 {
	if dataset.IsMissing(x) || dataset.IsMissing(y) || x != y {
		return 1
	}

	return 0
}

func (m *Normalized) numericDiff(j int, x, y float64) float64 {
	xm, ym := dataset.IsMissing(x), dataset.IsMissing(y)
	switch {
	case xm && ym:
		return 1
	case xm || ym:
		v := y
		if ym {
			v = x
		}
		v = m.scale(j, v)
		if v < 0.5 {
			v = 1 - v
		}

		return v
	case m.normalize:
		return m.scale(j, x) - m.scale(j, y)
	default:
		return x - y
	}
}

// scale maps v into [0,1] with the fitted range; a degenerate range maps to 0.
func (m *Normalized) scale(j int, v float64) float64 {
	lo, hi := m.mins[j], m.maxs[j]
	if math.IsNaN(lo) || hi == lo {
		return 0
	}

	return (v - lo) / (hi - lo)
}
