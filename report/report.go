// Package report renders a clustering run for the console: a plain-text
// layout, a lipgloss table, or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/katalvlaran/hclust/evaluation"
)

// ErrUnknownFormat indicates a format name ParseFormat does not know.
var ErrUnknownFormat = errors.New("report: unknown format")

// Format selects the renderer.
type Format int

const (
	// Plain is the line-oriented console layout.
	Plain Format = iota
	// Table renders summary, sizes and evaluation as tables.
	Table
	// JSON renders the Result as indented JSON.
	JSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case Plain:
		return "plain"
	case Table:
		return "table"
	case JSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat maps "plain", "table" or "json" (case-insensitive) to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "plain", "text", "":
		return Plain, nil
	case "table":
		return Table, nil
	case "json":
		return JSON, nil
	default:
		return 0, fmt.Errorf("%q: %w", name, ErrUnknownFormat)
	}
}

// Result is everything a run reports.
type Result struct {
	RunID       string                      `json:"run_id,omitempty"`
	Source      string                      `json:"source,omitempty"`
	Relation    string                      `json:"relation"`
	Instances   int                         `json:"instances"`
	Attributes  int                         `json:"attributes"`
	Filters     []string                    `json:"filters,omitempty"`
	Link        string                      `json:"link"`
	Metric      string                      `json:"metric"`
	NumClusters int                         `json:"num_clusters"`
	Model       string                      `json:"model"`
	Sizes       []int                       `json:"sizes"`
	Assignments []int                       `json:"assignments,omitempty"`
	Evaluation  *evaluation.ClassEvaluation `json:"evaluation,omitempty"`
	Duration    time.Duration               `json:"duration_ns"`
}

// Write renders r to w in format f.
func Write(w io.Writer, r *Result, f Format) error {
	switch f {
	case Plain:
		return writePlain(w, r)
	case Table:
		return writeTable(w, r)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	default:
		return fmt.Errorf("%s: %w", f, ErrUnknownFormat)
	}
}

// errWriter keeps the first write error so rendering code stays linear.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func writePlain(w io.Writer, r *Result) error {
	ew := &errWriter{w: w}
	ew.printf("=== Hierarchical clustering result ===\n")
	ew.printf("Relation: %s (%d instances, %d attributes)\n", r.Relation, r.Instances, r.Attributes)
	if len(r.Filters) > 0 {
		ew.printf("Filters: %s\n", strings.Join(r.Filters, " | "))
	}
	ew.printf("Link: %s, distance: %s\n", r.Link, r.Metric)
	ew.printf("Number of clusters: %d\n", r.NumClusters)
	ew.printf("%s", r.Model)
	for c, n := range r.Sizes {
		ew.printf("Cluster %d: %d instances\n", c, n)
	}
	if len(r.Assignments) > 0 {
		ew.printf("\n")
		for i, c := range r.Assignments {
			ew.printf("Instance %d -> cluster %d\n", i, c)
		}
	}
	if r.Evaluation != nil {
		ew.printf("\n")
		writeEvaluation(ew, r.Evaluation)
	}

	return ew.err
}

// writeEvaluation prints the classes-to-clusters confusion matrix, the
// mapping and the error count.
func writeEvaluation(ew *errWriter, e *evaluation.ClassEvaluation) {
	ew.printf("Class attribute: %s\n", e.ClassName)
	ew.printf("Classes to Clusters:\n\n")
	for c := range e.Counts {
		ew.printf("%5d", c)
	}
	ew.printf("  <-- assigned to cluster\n")
	for l, label := range e.Labels {
		for c := range e.Counts {
			ew.printf("%5d", e.Counts[c][l])
		}
		ew.printf(" | %s\n", label)
	}
	ew.printf("\n")
	for c := range e.ClusterClass {
		ew.printf("Cluster %d <-- %s\n", c, e.ClassLabel(c))
	}
	ew.printf("\nIncorrectly clustered instances: %d (%.2f%%)\n", e.Incorrect, 100*e.IncorrectRate())
	if e.Unclassified > 0 {
		ew.printf("Instances with missing class: %d\n", e.Unclassified)
	}
}
