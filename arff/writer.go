package arff

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/hclust/dataset"
)

// WriteFile writes d to path, creating or truncating it.
func WriteFile(path string, d *dataset.Instances) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("arff: create: %w", err)
	}
	if err = Write(f, d); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// Write emits d as a dense ARFF document. Instance weights other than 1 are
// written as a trailing {w}.
func Write(w io.Writer, d *dataset.Instances) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "@relation %s\n\n", quote(d.Relation))
	for _, a := range d.Attributes {
		fmt.Fprintf(bw, "@attribute %s %s\n", quote(a.Name), typeSpec(a))
	}
	bw.WriteString("\n@data\n")

	for i, row := range d.Rows {
		for j, v := range row {
			if j > 0 {
				bw.WriteByte(',')
			}
			bw.WriteString(formatValue(d.Attributes[j], v))
		}
		if i < len(d.Weights) && d.Weights[i] != 1 {
			fmt.Fprintf(bw, ",{%s}", strconv.FormatFloat(d.Weights[i], 'f', -1, 64))
		}
		bw.WriteByte('\n')
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("arff: write: %w", err)
	}

	return nil
}

// typeSpec renders the @attribute type clause.
func typeSpec(a *dataset.Attribute) string {
	switch a.Type {
	case dataset.Nominal:
		labels := make([]string, len(a.Labels))
		for i, l := range a.Labels {
			labels[i] = quote(l)
		}

		return "{" + strings.Join(labels, ",") + "}"
	case dataset.String:
		return "string"
	case dataset.Date:
		return "date " + quote(a.DateFormat)
	default:
		return "numeric"
	}
}

// formatValue renders one cell; missing is an unquoted '?'.
func formatValue(a *dataset.Attribute, v float64) string {
	if dataset.IsMissing(v) {
		return "?"
	}
	if a.Type == dataset.Numeric {
		return a.Format(v)
	}

	return quote(a.Format(v))
}
