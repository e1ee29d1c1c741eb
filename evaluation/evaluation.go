// Package evaluation scores a clustering: membership counts per cluster and
// the classes-to-clusters comparison against a nominal class attribute.
//
// Classes to clusters: every cluster is mapped to at most one class, and no
// class to more than one cluster, so that the number of instances whose class
// differs from the class of their cluster is minimal. The search is
// exhaustive (depth-first with pruning); clusters are visited in order and,
// for each, "no class" is tried before the classes in label order, so the
// first minimal mapping found wins.
package evaluation

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/hclust/dataset"
)

// NoClass marks a cluster that is not mapped to any class.
const NoClass = -1

// Sentinel errors.
var (
	// ErrInvalidK indicates a cluster count below 1.
	ErrInvalidK = errors.New("evaluation: number of clusters must be at least 1")

	// ErrAssignment indicates an assignment outside [0, k).
	ErrAssignment = errors.New("evaluation: cluster assignment out of range")

	// ErrLength indicates class values and assignments of different lengths.
	ErrLength = errors.New("evaluation: assignments and classes differ in length")

	// ErrNoClass indicates a dataset without a nominal class attribute.
	ErrNoClass = errors.New("evaluation: dataset has no nominal class attribute")
)

// Sizes tallies assignments into k clusters.
func Sizes(assign []int, k int) ([]int, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	sizes := make([]int, k)
	for i, c := range assign {
		if c < 0 || c >= k {
			return nil, fmt.Errorf("instance %d -> %d: %w", i, c, ErrAssignment)
		}
		sizes[c]++
	}

	return sizes, nil
}

// ClassEvaluation is the classes-to-clusters result.
type ClassEvaluation struct {
	// ClassName is the class attribute name (empty when built from raw values).
	ClassName string `json:"class_name,omitempty"`

	// Labels are the class labels in index order.
	Labels []string `json:"labels,omitempty"`

	// Counts[c][l] is the number of instances of class l in cluster c.
	Counts [][]int `json:"counts"`

	// ClusterClass[c] is the class mapped to cluster c, or NoClass.
	ClusterClass []int `json:"cluster_class"`

	// Incorrect is the number of instances outside their cluster's class.
	Incorrect int `json:"incorrect"`

	// Classified is the number of instances with a known class.
	Classified int `json:"classified"`

	// Unclassified is the number of instances whose class is missing.
	Unclassified int `json:"unclassified"`
}

// IncorrectRate returns Incorrect / Classified in [0,1] (0 when nothing is classified).
func (e *ClassEvaluation) IncorrectRate() float64 {
	if e.Classified == 0 {
		return 0
	}

	return float64(e.Incorrect) / float64(e.Classified)
}

// ClassLabel returns the label mapped to cluster c, or "No class".
func (e *ClassEvaluation) ClassLabel(c int) string {
	l := e.ClusterClass[c]
	switch {
	case l == NoClass:
		return "No class"
	case l < len(e.Labels):
		return e.Labels[l]
	default:
		return fmt.Sprint(l)
	}
}

// ClassesToClusters compares assignments with class values (label indices,
// NaN for missing) over k clusters and numClasses classes.
func ClassesToClusters(assign []int, classes []float64, k, numClasses int) (*ClassEvaluation, error) {
	if k < 1 {
		return nil, ErrInvalidK
	}
	if len(assign) != len(classes) {
		return nil, fmt.Errorf("%d assignments, %d classes: %w", len(assign), len(classes), ErrLength)
	}

	e := &ClassEvaluation{Counts: make([][]int, k)}
	for c := range e.Counts {
		e.Counts[c] = make([]int, numClasses)
	}
	totals := make([]int, k)
	for i, c := range assign {
		if c < 0 || c >= k {
			return nil, fmt.Errorf("instance %d -> %d: %w", i, c, ErrAssignment)
		}
		v := classes[i]
		if dataset.IsMissing(v) || v < 0 || int(v) >= numClasses {
			e.Unclassified++
			continue
		}
		e.Counts[c][int(v)]++
		totals[c]++
		e.Classified++
	}

	m := mapper{
		counts:  e.Counts,
		totals:  totals,
		current: make([]int, k),
		best:    make([]int, k),
		bestErr: math.MaxInt,
		used:    make([]bool, numClasses),
	}
	m.search(0, 0)
	e.ClusterClass = m.best
	e.Incorrect = m.bestErr

	return e, nil
}

// Evaluate runs ClassesToClusters against the class attribute of d.
func Evaluate(d *dataset.Instances, assign []int, k int) (*ClassEvaluation, error) {
	class := d.ClassAttribute()
	if class == nil || class.Type != dataset.Nominal {
		return nil, ErrNoClass
	}
	values := make([]float64, d.NumInstances())
	for i, row := range d.Rows {
		values[i] = row[d.ClassIndex]
	}
	e, err := ClassesToClusters(assign, values, k, class.NumLabels())
	if err != nil {
		return nil, err
	}
	e.ClassName = class.Name
	e.Labels = append([]string(nil), class.Labels...)

	return e, nil
}

// mapper is the depth-first search over cluster → class mappings.
type mapper struct {
	counts  [][]int
	totals  []int
	current []int
	best    []int
	bestErr int
	used    []bool
}

func (m *mapper) search(level, errs int) {
	if errs >= m.bestErr {
		return
	}
	if level == len(m.totals) {
		m.bestErr = errs
		copy(m.best, m.current)
		return
	}

	m.current[level] = NoClass
	if m.totals[level] == 0 {
		m.search(level+1, errs)
		return
	}
	m.search(level+1, errs+m.totals[level])

	for l, n := range m.counts[level] {
		if n == 0 || m.used[l] {
			continue
		}
		m.used[l] = true
		m.current[level] = l
		m.search(level+1, errs+m.totals[level]-n)
		m.used[l] = false
	}
	m.current[level] = NoClass
}
