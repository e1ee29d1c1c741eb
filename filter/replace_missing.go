package filter

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/hclust/dataset"
)

// ReplaceMissingValues replaces every missing numeric value with the weighted
// mean of the attribute and every missing nominal value with its weighted mode.
//
// Statistics are computed from the dataset passed to Apply. Ties in the mode
// resolve to the first declared label. An attribute with no present values
// stays missing. String attributes and the class attribute are left as they are.
type ReplaceMissingValues struct {
	replacements []float64
}

// NewReplaceMissingValues returns an unfitted filter.
func NewReplaceMissingValues() *ReplaceMissingValues {
	return &ReplaceMissingValues{}
}

// Name returns NameReplaceMissing.
func (f *ReplaceMissingValues) Name() string { return NameReplaceMissing }

// Replacements returns the per-attribute substitutes computed by the last
// Apply (NaN where nothing is substituted).
func (f *ReplaceMissingValues) Replacements() []float64 {
	return append([]float64(nil), f.replacements...)
}

// Apply fits the replacements on d and returns a copy with missing values filled.
func (f *ReplaceMissingValues) Apply(d *dataset.Instances) (*dataset.Instances, error) {
	if d == nil {
		return nil, ErrNilDataset
	}
	f.replacements = fitReplacements(d)

	out := d.Copy()
	for _, row := range out.Rows {
		for j, v := range row {
			if dataset.IsMissing(v) {
				row[j] = f.replacements[j]
			}
		}
	}

	return out, nil
}

// fitReplacements computes the substitute value of every attribute.
func fitReplacements(d *dataset.Instances) []float64 {
	reps := make([]float64, d.NumAttributes())
	values := make([]float64, 0, d.NumInstances())
	weights := make([]float64, 0, d.NumInstances())

	for j, a := range d.Attributes {
		reps[j] = math.NaN()
		if j == d.ClassIndex {
			continue
		}
		switch {
		case a.Type.IsNumeric():
			values, weights = values[:0], weights[:0]
			for i, row := range d.Rows {
				if v := row[j]; !dataset.IsMissing(v) {
					values = append(values, v)
					weights = append(weights, d.Weight(i))
				}
			}
			if len(values) > 0 && floats.Sum(weights) > 0 {
				reps[j] = stat.Mean(values, weights)
			}

		case a.Type == dataset.Nominal:
			reps[j] = weightedMode(d, j, a.NumLabels())
		}
	}

	return reps
}

// weightedMode returns the label index with the largest total weight in
// column j, preferring the lowest index on ties; NaN when nothing is present.
func weightedMode(d *dataset.Instances, j, numLabels int) float64 {
	if numLabels == 0 {
		return math.NaN()
	}
	counts := make([]float64, numLabels)
	seen := false
	for i, row := range d.Rows {
		if v := row[j]; !dataset.IsMissing(v) {
			counts[int(v)] += d.Weight(i)
			seen = true
		}
	}
	if !seen {
		return math.NaN()
	}
	best := 0
	for k := 1; k < numLabels; k++ {
		if counts[k] > counts[best] {
			best = k
		}
	}

	return float64(best)
}
