package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/matrix"
)

// AttributeSummary describes one attribute of an inspected dataset.
type AttributeSummary struct {
	Index   int      `json:"index"`
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Labels  int      `json:"labels,omitempty"`
	Mean    *float64 `json:"mean,omitempty"`
	Missing int      `json:"missing"`
	Class   bool     `json:"class,omitempty"`
}

// DatasetSummary is what "inspect" reports about a dataset.
type DatasetSummary struct {
	Source     string             `json:"source,omitempty"`
	Relation   string             `json:"relation"`
	Instances  int                `json:"instances"`
	Attributes []AttributeSummary `json:"attributes"`
}

// Summarize describes d. Numeric attributes with at least one value also
// report their mean.
func Summarize(source string, d *dataset.Instances) *DatasetSummary {
	missing := d.CountMissing()
	var means []float64
	if X, err := d.Matrix(); err == nil {
		means, _, _ = matrix.ColumnMeans(X)
	}
	s := &DatasetSummary{
		Source:     source,
		Relation:   d.Relation,
		Instances:  d.NumInstances(),
		Attributes: make([]AttributeSummary, d.NumAttributes()),
	}
	for j, a := range d.Attributes {
		s.Attributes[j] = AttributeSummary{
			Index:   j,
			Name:    a.Name,
			Type:    a.Type.String(),
			Labels:  a.NumLabels(),
			Missing: missing[j],
			Class:   j == d.ClassIndex,
		}
		if a.Type.IsNumeric() && means != nil && !math.IsNaN(means[j]) {
			m := means[j]
			s.Attributes[j].Mean = &m
		}
	}

	return s
}

// WriteDataset renders a dataset summary in format f.
func WriteDataset(w io.Writer, s *DatasetSummary, f Format) error {
	switch f {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)

	case Table:
		t := newTable("#", "Attribute", "Type", "Labels", "Mean", "Missing")
		for _, a := range s.Attributes {
			name := a.Name
			if a.Class {
				name += " (class)"
			}
			mean := ""
			if a.Mean != nil {
				mean = strconv.FormatFloat(*a.Mean, 'g', 6, 64)
			}
			t.Row(strconv.Itoa(a.Index), name, a.Type, strconv.Itoa(a.Labels), mean, strconv.Itoa(a.Missing))
		}
		var b strings.Builder
		b.WriteString(titleStyle.Render(fmt.Sprintf("%s: %d instances", s.Relation, s.Instances)) + "\n")
		b.WriteString(t.Render() + "\n")
		_, err := io.WriteString(w, b.String())
		return err

	case Plain:
		ew := &errWriter{w: w}
		ew.printf("Relation: %s\n", s.Relation)
		ew.printf("Instances: %d\n", s.Instances)
		ew.printf("Attributes: %d\n", len(s.Attributes))
		for _, a := range s.Attributes {
			ew.printf("  %2d %-20s %-8s", a.Index, a.Name, a.Type)
			if a.Labels > 0 {
				ew.printf(" labels=%d", a.Labels)
			}
			if a.Mean != nil {
				ew.printf(" mean=%g", *a.Mean)
			}
			ew.printf(" missing=%d", a.Missing)
			if a.Class {
				ew.printf(" (class)")
			}
			ew.printf("\n")
		}
		return ew.err

	default:
		return fmt.Errorf("%s: %w", f, ErrUnknownFormat)
	}
}
