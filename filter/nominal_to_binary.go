package filter

import (
	"github.com/katalvlaran/hclust/dataset"
)

// NominalToBinary converts nominal attributes into numeric indicator attributes.
//
// A nominal attribute with exactly two labels becomes one numeric attribute
// with the same name holding the label index (0 or 1), unless TransformAll is
// set. Any other nominal attribute with k labels becomes k numeric attributes
// named "name=label", one of which is 1. A missing value is missing in every
// produced column. The class attribute and non-nominal attributes pass
// through unchanged; ClassIndex is remapped to the new position.
type NominalToBinary struct {
	// TransformAll expands two-label attributes into two indicators as well.
	TransformAll bool
}

// NewNominalToBinary returns the filter with default settings.
func NewNominalToBinary() *NominalToBinary {
	return &NominalToBinary{}
}

// Name returns NameNominalToBinary.
func (f *NominalToBinary) Name() string { return NameNominalToBinary }

// plan describes where one source attribute lands in the output.
type plan struct {
	start  int // first output column
	width  int // number of output columns
	expand bool
}

// Apply returns the converted copy of d.
func (f *NominalToBinary) Apply(d *dataset.Instances) (*dataset.Instances, error) {
	if d == nil {
		return nil, ErrNilDataset
	}

	header := d.CopyHeader()
	plans := make([]plan, d.NumAttributes())
	attrs := make([]*dataset.Attribute, 0, d.NumAttributes())
	classIndex := dataset.NoClass

	for j, a := range header.Attributes {
		p := plan{start: len(attrs), width: 1}
		switch {
		case j == d.ClassIndex || a.Type != dataset.Nominal:
			attrs = append(attrs, a)
		case a.NumLabels() == 2 && !f.TransformAll:
			attrs = append(attrs, dataset.NewNumeric(a.Name))
		default:
			p.expand = true
			p.width = a.NumLabels()
			for _, l := range a.Labels {
				attrs = append(attrs, dataset.NewNumeric(a.Name+"="+l))
			}
		}
		if j == d.ClassIndex {
			classIndex = p.start
		}
		plans[j] = p
	}

	out := dataset.New(d.Relation, attrs...)
	out.ClassIndex = classIndex
	out.Rows = make([][]float64, 0, d.NumInstances())
	out.Weights = make([]float64, 0, d.NumInstances())

	for i, src := range d.Rows {
		row := make([]float64, len(attrs))
		for j, v := range src {
			p := plans[j]
			if !p.expand {
				row[p.start] = v
				continue
			}
			for k := 0; k < p.width; k++ {
				switch {
				case dataset.IsMissing(v):
					row[p.start+k] = dataset.Missing()
				case int(v) == k:
					row[p.start+k] = 1
				default:
					row[p.start+k] = 0
				}
			}
		}
		out.Rows = append(out.Rows, row)
		out.Weights = append(out.Weights, d.Weight(i))
	}

	return out, nil
}
