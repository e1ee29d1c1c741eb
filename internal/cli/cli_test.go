package cli_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/hclust/arff"
	"github.com/katalvlaran/hclust/config"
	"github.com/katalvlaran/hclust/hierarchical"
	"github.com/katalvlaran/hclust/internal/cli"
	"github.com/katalvlaran/hclust/pipeline"
	"github.com/katalvlaran/hclust/report"
)

const zoo = "../../testdata/zoo.arff"

// execute runs the command line in an isolated home directory.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	root := cli.NewRootCommand(&stdout, &stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())

	return stdout.String(), stderr.String(), err
}

func TestRun_ZooProfile(t *testing.T) {
	out, _, err := execute(t, "run", "--profile", "zoo", zoo)
	require.NoError(t, err)
	assert.Contains(t, out, "Number of clusters: 7\n")
	assert.Contains(t, out, "Link: SINGLE")
	assert.Contains(t, out, "Class attribute: type\n")
}

func TestRun_FlagsOverrideEnvAndProfile(t *testing.T) {
	t.Setenv("HCLUST_CLUSTERS", "3")
	out, _, err := execute(t, "run", "-p", "zoo", "-o", "json", zoo)
	require.NoError(t, err)
	var res report.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 3, res.NumClusters, "environment beats profile")

	out, _, err = execute(t, "run", "-p", "zoo", "-o", "json", "-k", "4", "-L", "complete", "--assignments", zoo)
	require.NoError(t, err)
	res = report.Result{}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 4, res.NumClusters, "flag beats environment")
	assert.Equal(t, "COMPLETE", res.Link)
	assert.Len(t, res.Assignments, 18)
}

func TestRun_FiltersAndClass(t *testing.T) {
	out, _, err := execute(t, "run", "--filter", "replace-missing,nominal-to-binary",
		"--class", "last", "-o", "json", "../../testdata/adult.arff")
	require.NoError(t, err)

	var res report.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, hierarchical.DefaultNumClusters, res.NumClusters)
	assert.Equal(t, []string{"replace-missing", "nominal-to-binary"}, res.Filters)
	require.NotNil(t, res.Evaluation, "two-label class stays nominal")
	assert.Equal(t, "class", res.Evaluation.ClassName)
}

func TestRun_TransformAllAndIgnore(t *testing.T) {
	out, _, err := execute(t, "run", "-p", "adult", "--transform-all", "--ignore", "age,hours-per-week",
		"-o", "json", "../../testdata/adult.arff")
	require.NoError(t, err)

	var res report.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, 13, res.Attributes)

	out, _, err = execute(t, "config", "show", "--profile", "zoo")
	require.NoError(t, err)
	assert.Contains(t, out, "transform_all: false\n")

	_, _, err = execute(t, "run", "-p", "zoo", "--ignore", "wings", zoo)
	assert.ErrorIs(t, err, pipeline.ErrNoSuchAttribute)
}

func TestRun_ConfigFileAndLogFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "hclust.yaml")
	logPath := filepath.Join(dir, "logs", "hclust.log")
	require.NoError(t, os.WriteFile(cfgPath, []byte("clusters: 5\nlink: average\nlogging:\n  level: info\n"), 0o644))

	out, _, err := execute(t, "run", "--config", cfgPath, "--log-file", logPath, "--class", "type", zoo)
	require.NoError(t, err)
	assert.Contains(t, out, "Number of clusters: 5\n")
	assert.Contains(t, out, "Link: AVERAGE")

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"msg":"dataset loaded"`)
	assert.Contains(t, string(logs), `"run_id":`)
}

func TestRun_Errors(t *testing.T) {
	_, _, err := execute(t, "run")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, _, err = execute(t, "run", "-L", "NEIGHBOR_JOINING", zoo)
	assert.ErrorIs(t, err, hierarchical.ErrUnknownLink)

	_, _, err = execute(t, "run", "--profile", "iris", zoo)
	assert.ErrorIs(t, err, config.ErrUnknownProfile)

	_, _, err = execute(t, "run", "--config", "/nonexistent/hclust.yaml", zoo)
	assert.Error(t, err)
}

func TestRunExitCode(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 0, cli.Run(context.Background(), []string{"version"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "hclust dev")

	stdout.Reset()
	assert.Equal(t, 1, cli.Run(context.Background(), []string{"run", "-k", "0", zoo}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "Error: pipeline: config: config: invalid value")
	assert.Empty(t, stdout.String())
}

func TestInspect(t *testing.T) {
	out, _, err := execute(t, "inspect", "--class", "last", zoo)
	require.NoError(t, err)
	assert.Contains(t, out, "Relation: zoo\n")
	assert.Contains(t, out, "Instances: 18\n")

	out, _, err = execute(t, "inspect", "-o", "json", zoo)
	require.NoError(t, err)
	var s report.DatasetSummary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Len(t, s.Attributes, 12)
	assert.Equal(t, "legs", s.Attributes[9].Name)

	_, _, err = execute(t, "inspect", "--class", "species", zoo)
	assert.ErrorIs(t, err, pipeline.ErrNoSuchAttribute)
}

func TestInspect_FilterAndWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "adult-bin.arff")
	out, _, err := execute(t, "inspect", "--filter", "replace-missing,nominal-to-binary",
		"-w", path, "-o", "json", "../../testdata/adult.arff")
	require.NoError(t, err)

	var s report.DatasetSummary
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Len(t, s.Attributes, 11)

	d, err := arff.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 10, d.NumInstances())
	assert.Equal(t, 11, d.NumAttributes())
	assert.False(t, d.HasMissing())
}

func TestConfigShowAndProfiles(t *testing.T) {
	out, _, err := execute(t, "config", "show", "--profile", "adult")
	require.NoError(t, err)
	assert.Contains(t, out, "dataset: adult.arff\n")
	assert.Contains(t, out, "clusters: 2\n")
	assert.Contains(t, out, "- nominal-to-binary\n")

	out, _, err = execute(t, "config", "profiles")
	require.NoError(t, err)
	assert.Equal(t, "adult\nzoo\n", out)
}
