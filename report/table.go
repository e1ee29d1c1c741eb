package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272a4"))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func writeTable(w io.Writer, r *Result) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hierarchical clustering: "+r.Relation) + "\n")

	summary := newTable("Setting", "Value").Rows(
		[]string{"Instances", strconv.Itoa(r.Instances)},
		[]string{"Attributes", strconv.Itoa(r.Attributes)},
		[]string{"Filters", strings.Join(r.Filters, ", ")},
		[]string{"Link", r.Link},
		[]string{"Distance", r.Metric},
		[]string{"Clusters", strconv.Itoa(r.NumClusters)},
	)
	if r.RunID != "" {
		summary.Row("Run", r.RunID)
	}
	b.WriteString(summary.Render() + "\n")

	headers := []string{"Cluster", "Instances", "Share"}
	if r.Evaluation != nil {
		headers = append(headers, "Class")
	}
	sizes := newTable(headers...)
	for c, n := range r.Sizes {
		share := 0.0
		if r.Instances > 0 {
			share = 100 * float64(n) / float64(r.Instances)
		}
		row := []string{strconv.Itoa(c), strconv.Itoa(n), fmt.Sprintf("%.1f%%", share)}
		if r.Evaluation != nil {
			row = append(row, r.Evaluation.ClassLabel(c))
		}
		sizes.Row(row...)
	}
	b.WriteString(sizes.Render() + "\n")

	if e := r.Evaluation; e != nil {
		cm := make([]string, 0, len(e.Counts)+1)
		cm = append(cm, e.ClassName)
		for c := range e.Counts {
			cm = append(cm, strconv.Itoa(c))
		}
		confusion := newTable(cm...)
		for l, label := range e.Labels {
			row := []string{label}
			for c := range e.Counts {
				row = append(row, strconv.Itoa(e.Counts[c][l]))
			}
			confusion.Row(row...)
		}
		b.WriteString(confusion.Render() + "\n")
		fmt.Fprintf(&b, "Incorrectly clustered instances: %d (%.2f%%)\n", e.Incorrect, 100*e.IncorrectRate())
	}

	if r.Model != "" {
		b.WriteString("\n" + r.Model)
	}

	_, err := io.WriteString(w, b.String())

	return err
}
