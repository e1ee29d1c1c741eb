package dataset

import (
	"fmt"

	"github.com/katalvlaran/hclust/matrix"
)

// Instances is a relation: a header of attributes and rows of values.
//
// Rows are stored as []float64 with one value per attribute. Weights holds
// per-row instance weights (1 unless the source declared otherwise).
// ClassIndex is NoClass when no class attribute is designated.
type Instances struct {
	// Relation is the dataset name.
	Relation string

	// Attributes is the ordered header.
	Attributes []*Attribute

	// Rows holds one []float64 per instance.
	Rows [][]float64

	// Weights holds the per-instance weight, parallel to Rows.
	Weights []float64

	// ClassIndex designates the class attribute, or NoClass.
	ClassIndex int
}

// New returns an empty dataset with the given header. The attribute
// pointers are kept, not copied.
func New(relation string, attrs ...*Attribute) *Instances {
	return &Instances{
		Relation:   relation,
		Attributes: attrs,
		ClassIndex: NoClass,
	}
}

// NumInstances returns the number of rows.
func (d *Instances) NumInstances() int { return len(d.Rows) }

// NumAttributes returns the number of columns.
func (d *Instances) NumAttributes() int { return len(d.Attributes) }

// Add appends a row with weight 1.
func (d *Instances) Add(row []float64) error {
	return d.AddWeighted(row, 1)
}

// AddWeighted appends a row with the given weight. Nominal values are checked
// against the declared labels.
func (d *Instances) AddWeighted(row []float64, weight float64) error {
	if len(row) != len(d.Attributes) {
		return fmt.Errorf("add row %d: %w", len(d.Rows), ErrRowWidth)
	}
	for j, v := range row {
		a := d.Attributes[j]
		if a.Type != Nominal || IsMissing(v) {
			continue
		}
		if v < 0 || int(v) >= len(a.Labels) || float64(int(v)) != v {
			return fmt.Errorf("add row %d, attribute %q: %w", len(d.Rows), a.Name, ErrLabelIndex)
		}
	}
	d.Rows = append(d.Rows, row)
	d.Weights = append(d.Weights, weight)

	return nil
}

// Weight returns the weight of row i (1 when no weight was recorded).
func (d *Instances) Weight(i int) float64 {
	if i < len(d.Weights) {
		return d.Weights[i]
	}

	return 1
}

// Value returns the raw value at row i, attribute j.
func (d *Instances) Value(i, j int) (float64, error) {
	if i < 0 || i >= len(d.Rows) {
		return 0, fmt.Errorf("value(%d,%d): row: %w", i, j, matrix.ErrOutOfRange)
	}
	if j < 0 || j >= len(d.Attributes) {
		return 0, fmt.Errorf("value(%d,%d): %w", i, j, ErrNoSuchAttribute)
	}

	return d.Rows[i][j], nil
}

// StringValue renders the value at row i, attribute j as text.
func (d *Instances) StringValue(i, j int) (string, error) {
	v, err := d.Value(i, j)
	if err != nil {
		return "", err
	}

	return d.Attributes[j].Format(v), nil
}

// AttributeByName returns the index of the attribute called name.
func (d *Instances) AttributeByName(name string) (int, error) {
	for j, a := range d.Attributes {
		if a.Name == name {
			return j, nil
		}
	}

	return -1, fmt.Errorf("%q: %w", name, ErrNoSuchAttribute)
}

// SetClassIndex designates attribute j as the class; NoClass clears it.
func (d *Instances) SetClassIndex(j int) error {
	if j != NoClass && (j < 0 || j >= len(d.Attributes)) {
		return fmt.Errorf("class index %d: %w", j, ErrClassIndex)
	}
	d.ClassIndex = j

	return nil
}

// ClassAttribute returns the class attribute, or nil when none is set.
func (d *Instances) ClassAttribute() *Attribute {
	if d.ClassIndex == NoClass {
		return nil
	}

	return d.Attributes[d.ClassIndex]
}

// HasMissing reports whether any cell is missing.
func (d *Instances) HasMissing() bool {
	for _, row := range d.Rows {
		for _, v := range row {
			if IsMissing(v) {
				return true
			}
		}
	}

	return false
}

// CountMissing returns the number of missing cells per attribute.
func (d *Instances) CountMissing() []int {
	counts := make([]int, len(d.Attributes))
	for _, row := range d.Rows {
		for j, v := range row {
			if IsMissing(v) {
				counts[j]++
			}
		}
	}

	return counts
}

// Copy returns a deep copy: new header, new rows.
func (d *Instances) Copy() *Instances {
	cp := d.CopyHeader()
	cp.Rows = make([][]float64, len(d.Rows))
	for i, row := range d.Rows {
		cp.Rows[i] = append([]float64(nil), row...)
	}
	cp.Weights = append([]float64(nil), d.Weights...)

	return cp
}

// CopyHeader returns a dataset with a deep-copied header and no rows.
func (d *Instances) CopyHeader() *Instances {
	attrs := make([]*Attribute, len(d.Attributes))
	for j, a := range d.Attributes {
		attrs[j] = a.clone()
	}

	return &Instances{
		Relation:   d.Relation,
		Attributes: attrs,
		ClassIndex: d.ClassIndex,
	}
}

// Matrix exports the rows as a feature matrix. NaN (missing) is preserved,
// so the matrix is built with the NaN/Inf validation disabled.
func (d *Instances) Matrix() (*matrix.Dense, error) {
	if len(d.Rows) == 0 || len(d.Attributes) == 0 {
		return nil, fmt.Errorf("dataset %q: %w", d.Relation, matrix.ErrInvalidDimensions)
	}

	return matrix.NewDenseFromRows(d.Rows, matrix.WithNoValidateNaNInf())
}
