// Package config loads the hclust configuration with viper.
//
// Precedence, lowest first: built-in defaults, the selected profile, the
// YAML config file, HCLUST_* environment variables, command-line flags.
// Nested keys map to environment variables with "." replaced by "_", e.g.
// logging.level → HCLUST_LOGGING_LEVEL.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hclust/distance"
	"github.com/katalvlaran/hclust/filter"
	"github.com/katalvlaran/hclust/hierarchical"
	"github.com/katalvlaran/hclust/report"
)

// EnvPrefix is the prefix of configuration environment variables.
const EnvPrefix = "HCLUST"

// Keys shared by flags, files and environment.
const (
	KeyProfile        = "profile"
	KeyDataset        = "dataset"
	KeyClass          = "class_attribute"
	KeyFilters        = "filters"
	KeyTransformAll   = "transform_all"
	KeyIgnore         = "ignore_attributes"
	KeyClusters       = "clusters"
	KeyLink           = "link"
	KeyMetric         = "metric"
	KeyNormalize      = "normalize"
	KeyWorkers        = "workers"
	KeyLabel          = "label_attribute"
	KeyBranchLength   = "branch_length"
	KeyFormat         = "output.format"
	KeyAssignments    = "output.assignments"
	KeyLogLevel       = "logging.level"
	KeyLogFile        = "logging.file"
	KeyLogMaxSize     = "logging.max_size"
	KeyLogMaxFiles    = "logging.max_files"
	defaultConfigName = "hclust"
)

// Sentinel errors.
var (
	// ErrUnknownProfile indicates a profile name that is not built in.
	ErrUnknownProfile = errors.New("config: unknown profile")

	// ErrInvalid indicates a value that fails validation.
	ErrInvalid = errors.New("config: invalid value")
)

// Output controls report rendering.
type Output struct {
	Format      string `mapstructure:"format" yaml:"format"`
	Assignments bool   `mapstructure:"assignments" yaml:"assignments"`
}

// Logging controls the logger.
type Logging struct {
	Level    string `mapstructure:"level" yaml:"level"`
	File     string `mapstructure:"file" yaml:"file,omitempty"`
	MaxSize  int    `mapstructure:"max_size" yaml:"max_size"`
	MaxFiles int    `mapstructure:"max_files" yaml:"max_files"`
}

// Config is the effective configuration of a run.
type Config struct {
	Profile        string   `mapstructure:"profile" yaml:"profile,omitempty"`
	Dataset        string   `mapstructure:"dataset" yaml:"dataset"`
	ClassAttribute string   `mapstructure:"class_attribute" yaml:"class_attribute,omitempty"`
	Filters        []string `mapstructure:"filters" yaml:"filters"`
	TransformAll   bool     `mapstructure:"transform_all" yaml:"transform_all"`
	Ignore         []string `mapstructure:"ignore_attributes" yaml:"ignore_attributes,omitempty"`
	Clusters       int      `mapstructure:"clusters" yaml:"clusters"`
	Link           string   `mapstructure:"link" yaml:"link"`
	Metric         string   `mapstructure:"metric" yaml:"metric"`
	Normalize      bool     `mapstructure:"normalize" yaml:"normalize"`
	Workers        int      `mapstructure:"workers" yaml:"workers"`
	LabelAttribute string   `mapstructure:"label_attribute" yaml:"label_attribute,omitempty"`
	BranchLength   bool     `mapstructure:"branch_length" yaml:"branch_length"`
	Output         Output   `mapstructure:"output" yaml:"output"`
	Logging        Logging  `mapstructure:"logging" yaml:"logging"`
}

// profiles reproduce the two reference programs.
var profiles = map[string]map[string]any{
	"adult": {
		KeyDataset:  "adult.arff",
		KeyFilters:  []string{filter.NameReplaceMissing, filter.NameNominalToBinary},
		KeyClusters: 2,
		KeyLink:     hierarchical.Single.String(),
	},
	"zoo": {
		KeyDataset:  "zoo.arff",
		KeyClass:    "last",
		KeyFilters:  []string{},
		KeyClusters: 7,
		KeyLink:     hierarchical.Single.String(),
		KeyLabel:    "first",
	},
}

// Profiles returns the built-in profile names, sorted.
func Profiles() []string {
	return []string{"adult", "zoo"}
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyProfile, "")
	v.SetDefault(KeyDataset, "")
	v.SetDefault(KeyClass, "")
	v.SetDefault(KeyLabel, "")
	v.SetDefault(KeyFilters, []string{})
	v.SetDefault(KeyTransformAll, false)
	v.SetDefault(KeyIgnore, []string{})
	v.SetDefault(KeyClusters, hierarchical.DefaultNumClusters)
	v.SetDefault(KeyLink, hierarchical.DefaultLink.String())
	v.SetDefault(KeyMetric, distance.Euclidean.String())
	v.SetDefault(KeyNormalize, true)
	v.SetDefault(KeyWorkers, 0)
	v.SetDefault(KeyBranchLength, false)
	v.SetDefault(KeyFormat, report.Plain.String())
	v.SetDefault(KeyAssignments, false)
	v.SetDefault(KeyLogLevel, "warn")
	v.SetDefault(KeyLogFile, "")
	v.SetDefault(KeyLogMaxSize, 10)
	v.SetDefault(KeyLogMaxFiles, 5)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// ReadFile loads the config file at path, or searches hclust.yaml in the
// working directory and $HOME/.config/hclust when path is empty. A missing
// file is not an error unless path was given explicitly.
func ReadFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", defaultConfigName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// Load applies the selected profile under the explicit settings and
// decodes the result.
func Load(v *viper.Viper) (*Config, error) {
	if name := v.GetString(KeyProfile); name != "" {
		p, ok := profiles[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%q: %w", name, ErrUnknownProfile)
		}
		for k, val := range p {
			v.SetDefault(k, val)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	cfg.Filters = splitList(cfg.Filters)
	cfg.Ignore = splitList(cfg.Ignore)

	return &cfg, nil
}

// splitList accepts both ["a","b"] and a single "a,b" (as environment
// variables deliver it).
func splitList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}

	return out
}

// Validate checks every enumerated value.
func (c *Config) Validate() error {
	if c.Dataset == "" {
		return fmt.Errorf("%w: no dataset given", ErrInvalid)
	}
	if c.Clusters < 1 {
		return fmt.Errorf("%w: clusters=%d", ErrInvalid, c.Clusters)
	}
	if _, err := hierarchical.ParseLink(c.Link); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := distance.ParseMetric(c.Metric); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := filter.ParseFilters(c.Filters); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error", "":
	default:
		return fmt.Errorf("%w: logging.level=%q", ErrInvalid, c.Logging.Level)
	}

	return nil
}

// YAML renders the configuration as YAML.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
