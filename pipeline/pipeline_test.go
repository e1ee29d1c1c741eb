package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/hclust/arff"
	"github.com/katalvlaran/hclust/config"
	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/filter"
	"github.com/katalvlaran/hclust/internal/logging"
	"github.com/katalvlaran/hclust/pipeline"
	"github.com/katalvlaran/hclust/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func profile(t *testing.T, name, dataset string) *config.Config {
	t.Helper()
	v := config.New()
	v.Set(config.KeyProfile, name)
	v.Set(config.KeyDataset, dataset)
	cfg, err := config.Load(v)
	require.NoError(t, err)

	return cfg
}

func TestRun_Zoo(t *testing.T) {
	cfg := profile(t, "zoo", "../testdata/zoo.arff")

	var out, logs bytes.Buffer
	log := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	res, err := pipeline.Run(context.Background(), cfg, &out, log)
	require.NoError(t, err)

	assert.Equal(t, 7, res.NumClusters)
	assert.Equal(t, []int{4, 3, 4, 1, 2, 2, 2}, res.Sizes)
	require.NotNil(t, res.Evaluation)
	assert.Equal(t, "type", res.Evaluation.ClassName)
	assert.Nil(t, res.Assignments)

	text := out.String()
	assert.Contains(t, text, "Number of clusters: 7\n")
	assert.Contains(t, text, "Cluster 0: 4 instances\n")
	assert.Contains(t, text, "Class attribute: type\n")
	assert.Contains(t, text, "aardvark")

	assert.Contains(t, logs.String(), "run_id="+res.RunID)
	assert.Contains(t, logs.String(), "clusterer built")
}

func TestRun_AdultJSON(t *testing.T) {
	cfg := profile(t, "adult", "../testdata/adult.arff")
	cfg.Output.Format = "json"
	cfg.Output.Assignments = true

	var out bytes.Buffer
	res, err := pipeline.Run(context.Background(), cfg, &out, logging.Discard())
	require.NoError(t, err)

	assert.Equal(t, 2, res.NumClusters)
	assert.Equal(t, 11, res.Attributes, "nominal attributes expanded")
	assert.Len(t, res.Assignments, 10)
	assert.Nil(t, res.Evaluation)
	assert.Equal(t, 10, res.Sizes[0]+res.Sizes[1])

	var decoded report.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Equal(t, res.RunID, decoded.RunID)
	assert.Equal(t, res.Sizes, decoded.Sizes)
	assert.Equal(t, []string{"replace-missing", "nominal-to-binary"}, decoded.Filters)
}

func TestRun_OtherLinks(t *testing.T) {
	for _, link := range []string{"complete", "average", "ward"} {
		cfg := profile(t, "zoo", "../testdata/zoo.arff")
		cfg.Link = link
		cfg.Metric = "manhattan"
		cfg.Normalize = false
		res, err := pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
		require.NoError(t, err, link)

		assert.Equal(t, strings.ToUpper(link), res.Link)
		assert.Equal(t, "manhattan", res.Metric)
		assert.Len(t, res.Sizes, 7, link)
		require.NotNil(t, res.Evaluation, link)
		assert.Equal(t, 18, res.Evaluation.Classified+res.Evaluation.Unclassified, link)
	}
}

func TestRun_TransformAll(t *testing.T) {
	cfg := profile(t, "adult", "../testdata/adult.arff")
	cfg.TransformAll = true
	res, err := pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, 13, res.Attributes, "sex and class expand into two indicators each")
}

func TestRun_IgnoredAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xy.arff")
	require.NoError(t, os.WriteFile(path, []byte(`@relation xy
@attribute x numeric
@attribute y numeric
@data
0,0
1,10
10,0
11,10
`), 0o644))

	cfg := profile(t, "", path)
	cfg.Output.Assignments = true
	res, err := pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 0, 1}, res.Assignments, "y dominates")

	cfg.Ignore = []string{"y"}
	res, err = pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1, 1}, res.Assignments, "x alone")

	cfg.Ignore = []string{"z"}
	_, err = pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	assert.ErrorIs(t, err, pipeline.ErrNoSuchAttribute)
}

func TestRun_Errors(t *testing.T) {
	var se *pipeline.StageError

	cfg := profile(t, "zoo", "../testdata/nope.arff")
	_, err := pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageLoad, se.Stage)

	cfg = profile(t, "zoo", "../testdata/zoo.arff")
	cfg.Clusters = 0
	_, err = pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageConfig, se.Stage)
	assert.ErrorIs(t, err, config.ErrInvalid)

	cfg = profile(t, "zoo", "../testdata/zoo.arff")
	cfg.Output.Format = "xml"
	_, err = pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageConfig, se.Stage)
	assert.ErrorIs(t, err, report.ErrUnknownFormat)

	cfg = profile(t, "zoo", "../testdata/zoo.arff")
	cfg.Filters = []string{"discretize"}
	_, err = pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	assert.ErrorIs(t, err, filter.ErrUnknownFilter)

	cfg = profile(t, "zoo", "../testdata/zoo.arff")
	cfg.ClassAttribute = "species"
	_, err = pipeline.Run(context.Background(), cfg, &bytes.Buffer{}, logging.Discard())
	assert.ErrorIs(t, err, pipeline.ErrNoSuchAttribute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cfg = profile(t, "zoo", "../testdata/zoo.arff")
	_, err = pipeline.Run(ctx, cfg, &bytes.Buffer{}, logging.Discard())
	require.ErrorAs(t, err, &se)
	assert.Equal(t, pipeline.StageCluster, se.Stage)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestResolveAttribute(t *testing.T) {
	d, err := arff.ReadFile("../testdata/zoo.arff")
	require.NoError(t, err)

	for ref, want := range map[string]int{
		"":      dataset.NoClass,
		"first": 0,
		"LAST":  11,
		"legs":  9,
		"10":    9,
	} {
		got, err := pipeline.ResolveAttribute(d, ref)
		require.NoError(t, err, ref)
		assert.Equal(t, want, got, ref)
	}
	_, err = pipeline.ResolveAttribute(d, "13")
	assert.ErrorIs(t, err, pipeline.ErrNoSuchAttribute)
}
