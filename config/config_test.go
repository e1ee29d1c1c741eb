package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/hclust/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(config.New())
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Clusters)
	assert.Equal(t, "SINGLE", cfg.Link)
	assert.Equal(t, "euclidean", cfg.Metric)
	assert.True(t, cfg.Normalize)
	assert.Equal(t, "plain", cfg.Output.Format)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Empty(t, cfg.Filters)

	assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid, "dataset is required")
	cfg.Dataset = "x.arff"
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Profiles(t *testing.T) {
	v := config.New()
	v.Set(config.KeyProfile, "adult")
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, []string{"replace-missing", "nominal-to-binary"}, cfg.Filters)
	assert.Equal(t, 2, cfg.Clusters)
	assert.Equal(t, "adult.arff", cfg.Dataset)
	assert.Empty(t, cfg.ClassAttribute)

	v = config.New()
	v.Set(config.KeyProfile, "Zoo")
	v.Set(config.KeyClusters, 5) // explicit value beats the profile
	cfg, err = config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Clusters)
	assert.Equal(t, "last", cfg.ClassAttribute)
	assert.Empty(t, cfg.Filters)

	v = config.New()
	v.Set(config.KeyProfile, "iris")
	_, err = config.Load(v)
	assert.ErrorIs(t, err, config.ErrUnknownProfile)
	assert.Equal(t, []string{"adult", "zoo"}, config.Profiles())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("HCLUST_CLUSTERS", "4")
	t.Setenv("HCLUST_LINK", "complete")
	t.Setenv("HCLUST_FILTERS", "replace-missing,nominal-to-binary")
	t.Setenv("HCLUST_LOGGING_LEVEL", "debug")
	t.Setenv("HCLUST_TRANSFORM_ALL", "true")
	t.Setenv("HCLUST_IGNORE_ATTRIBUTES", "legs, tail")

	cfg, err := config.Load(config.New())
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Clusters)
	assert.Equal(t, "complete", cfg.Link)
	assert.Equal(t, []string{"replace-missing", "nominal-to-binary"}, cfg.Filters)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.TransformAll)
	assert.Equal(t, []string{"legs", "tail"}, cfg.Ignore)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hclust.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dataset: data/zoo.arff
clusters: 7
link: average
output:
  format: json
  assignments: true
logging:
  level: info
`), 0o600))

	v := config.New()
	require.NoError(t, config.ReadFile(v, path))
	cfg, err := config.Load(v)
	require.NoError(t, err)
	assert.Equal(t, "data/zoo.arff", cfg.Dataset)
	assert.Equal(t, 7, cfg.Clusters)
	assert.Equal(t, "average", cfg.Link)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.True(t, cfg.Output.Assignments)
	assert.NoError(t, cfg.Validate())

	assert.Error(t, config.ReadFile(config.New(), filepath.Join(dir, "missing.yaml")))

	t.Chdir(dir)
	require.NoError(t, os.Remove(path))
	assert.NoError(t, config.ReadFile(config.New(), ""), "no implicit file is fine")
}

func TestValidate(t *testing.T) {
	base := func() *config.Config {
		cfg, err := config.Load(config.New())
		require.NoError(t, err)
		cfg.Dataset = "d.arff"
		return cfg
	}
	for name, mutate := range map[string]func(*config.Config){
		"clusters": func(c *config.Config) { c.Clusters = 0 },
		"link":     func(c *config.Config) { c.Link = "NEIGHBOR_JOINING" },
		"metric":   func(c *config.Config) { c.Metric = "cosine" },
		"filter":   func(c *config.Config) { c.Filters = []string{"pca"} },
		"format":   func(c *config.Config) { c.Output.Format = "xml" },
		"level":    func(c *config.Config) { c.Logging.Level = "trace" },
	} {
		cfg := base()
		mutate(cfg)
		assert.ErrorIs(t, cfg.Validate(), config.ErrInvalid, name)
	}
}

func TestYAML(t *testing.T) {
	v := config.New()
	v.Set(config.KeyProfile, "zoo")
	cfg, err := config.Load(v)
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)

	var back map[string]any
	require.NoError(t, yaml.Unmarshal(out, &back))
	assert.Equal(t, "zoo", back["profile"])
	assert.Equal(t, 7, back["clusters"])
	assert.Equal(t, "SINGLE", back["link"])
}
