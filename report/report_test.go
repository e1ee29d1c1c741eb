package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/evaluation"
	"github.com/katalvlaran/hclust/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() *report.Result {
	return &report.Result{
		RunID:       "run-1",
		Relation:    "toy",
		Instances:   3,
		Attributes:  2,
		Filters:     []string{"replace-missing"},
		Link:        "SINGLE",
		Metric:      "euclidean",
		NumClusters: 2,
		Model:       "Cluster 0\n(a:0.25,b:0.25)\n\nCluster 1\nc\n\n",
		Sizes:       []int{2, 1},
	}
}

func TestWritePlain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sample(), report.Plain))

	want := "=== Hierarchical clustering result ===\n" +
		"Relation: toy (3 instances, 2 attributes)\n" +
		"Filters: replace-missing\n" +
		"Link: SINGLE, distance: euclidean\n" +
		"Number of clusters: 2\n" +
		"Cluster 0\n(a:0.25,b:0.25)\n\nCluster 1\nc\n\n" +
		"Cluster 0: 2 instances\n" +
		"Cluster 1: 1 instances\n"
	assert.Equal(t, want, buf.String())
}

func TestWritePlain_AssignmentsAndEvaluation(t *testing.T) {
	r := sample()
	r.Assignments = []int{0, 0, 1}
	r.Evaluation = &evaluation.ClassEvaluation{
		ClassName:    "kind",
		Labels:       []string{"x", "y"},
		Counts:       [][]int{{2, 0}, {0, 1}},
		ClusterClass: []int{0, 1},
		Classified:   3,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, r, report.Plain))
	out := buf.String()
	assert.Contains(t, out, "Instance 2 -> cluster 1\n")
	assert.Contains(t, out, "Class attribute: kind\n")
	assert.Contains(t, out, "    0    1  <-- assigned to cluster\n")
	assert.Contains(t, out, "    2    0 | x\n")
	assert.Contains(t, out, "Cluster 1 <-- y\n")
	assert.Contains(t, out, "Incorrectly clustered instances: 0 (0.00%)\n")
}

func TestWriteTable(t *testing.T) {
	r := sample()
	r.Evaluation = &evaluation.ClassEvaluation{
		ClassName:    "kind",
		Labels:       []string{"x", "y"},
		Counts:       [][]int{{2, 0}, {0, 1}},
		ClusterClass: []int{0, evaluation.NoClass},
		Incorrect:    1,
		Classified:   3,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, r, report.Table))
	out := buf.String()
	for _, s := range []string{"Hierarchical clustering: toy", "Instances", "SINGLE", "run-1", "66.7%", "No class", "Incorrectly clustered instances: 1 (33.33%)", "Cluster 1\nc"} {
		assert.Contains(t, out, s)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.Write(&buf, sample(), report.JSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "toy", got["relation"])
	assert.Equal(t, []any{2.0, 1.0}, got["sizes"])
	assert.NotContains(t, got, "assignments")
	assert.NotContains(t, got, "evaluation")
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]report.Format{"": report.Plain, "TABLE": report.Table, "json": report.JSON} {
		f, err := report.ParseFormat(name)
		require.NoError(t, err)
		assert.Equal(t, want, f)
	}
	_, err := report.ParseFormat("xml")
	assert.ErrorIs(t, err, report.ErrUnknownFormat)
	assert.ErrorIs(t, report.Write(&bytes.Buffer{}, sample(), report.Format(9)), report.ErrUnknownFormat)
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritePropagatesErrors(t *testing.T) {
	for _, f := range []report.Format{report.Plain, report.Table, report.JSON} {
		assert.Error(t, report.Write(failWriter{}, sample(), f), f.String())
	}
}

func TestWriteDataset(t *testing.T) {
	d := dataset.New("toy", dataset.NewNumeric("x"), dataset.NewNominal("c", "a", "b"))
	require.NoError(t, d.Add([]float64{1, 0}))
	require.NoError(t, d.Add([]float64{dataset.Missing(), 1}))
	require.NoError(t, d.SetClassIndex(1))

	s := report.Summarize("toy.arff", d)
	assert.Equal(t, 2, s.Instances)
	assert.Equal(t, 1, s.Attributes[0].Missing)
	assert.True(t, s.Attributes[1].Class)
	require.NotNil(t, s.Attributes[0].Mean)
	assert.Equal(t, 1.0, *s.Attributes[0].Mean, "missing values are skipped")
	assert.Nil(t, s.Attributes[1].Mean, "nominal attributes have no mean")

	var buf bytes.Buffer
	require.NoError(t, report.WriteDataset(&buf, s, report.Plain))
	assert.Equal(t, "Relation: toy\nInstances: 2\nAttributes: 2\n"+
		"   0 x                    numeric  mean=1 missing=1\n"+
		"   1 c                    nominal  labels=2 missing=0 (class)\n", buf.String())

	buf.Reset()
	require.NoError(t, report.WriteDataset(&buf, s, report.Table))
	assert.Contains(t, buf.String(), "c (class)")

	buf.Reset()
	require.NoError(t, report.WriteDataset(&buf, s, report.JSON))
	assert.Contains(t, buf.String(), `"relation": "toy"`)
	assert.Contains(t, buf.String(), `"mean": 1`)

	empty := report.Summarize("", dataset.New("empty", dataset.NewNumeric("x")))
	assert.Nil(t, empty.Attributes[0].Mean)
}
