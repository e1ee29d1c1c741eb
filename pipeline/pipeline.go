// Package pipeline runs one clustering job end to end: load the ARFF file,
// designate the class, apply the filters, build the clusterer, evaluate
// against the class and render the report.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/hclust/arff"
	"github.com/katalvlaran/hclust/config"
	"github.com/katalvlaran/hclust/dataset"
	"github.com/katalvlaran/hclust/distance"
	"github.com/katalvlaran/hclust/evaluation"
	"github.com/katalvlaran/hclust/filter"
	"github.com/katalvlaran/hclust/hierarchical"
	"github.com/katalvlaran/hclust/report"
)

// Stage names used in errors and log records.
const (
	StageConfig   = "config"
	StageLoad     = "load"
	StageFilter   = "filter"
	StageCluster  = "cluster"
	StageEvaluate = "evaluate"
	StageReport   = "report"
)

// StageError tags an error with the stage that produced it.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string { return "pipeline: " + e.Stage + ": " + e.Err.Error() }

func (e *StageError) Unwrap() error { return e.Err }

func fail(stage string, err error) error {
	return &StageError{Stage: stage, Err: err}
}

// ErrNoSuchAttribute indicates an attribute reference that matches nothing.
var ErrNoSuchAttribute = errors.New("pipeline: no such attribute")

// Load reads the configured dataset and designates its class attribute.
func Load(cfg *config.Config) (*dataset.Instances, error) {
	d, err := arff.ReadFile(cfg.Dataset)
	if err != nil {
		return nil, fail(StageLoad, err)
	}
	class, err := ResolveAttribute(d, cfg.ClassAttribute)
	if err != nil {
		return nil, fail(StageLoad, fmt.Errorf("class attribute: %w", err))
	}
	if err = d.SetClassIndex(class); err != nil {
		return nil, fail(StageLoad, err)
	}

	return d, nil
}

// ResolveAttribute maps a reference to an attribute index. The reference is
// empty (none), "first", "last", a 1-based position, or a name.
func ResolveAttribute(d *dataset.Instances, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	n := d.NumAttributes()
	switch strings.ToLower(ref) {
	case "":
		return dataset.NoClass, nil
	case "first":
		if n > 0 {
			return 0, nil
		}
	case "last":
		if n > 0 {
			return n - 1, nil
		}
	default:
		if j, err := d.AttributeByName(ref); err == nil {
			return j, nil
		}
		if pos, err := strconv.Atoi(ref); err == nil && pos >= 1 && pos <= n {
			return pos - 1, nil
		}
	}

	return dataset.NoClass, fmt.Errorf("%q: %w", ref, ErrNoSuchAttribute)
}

// Clusterer builds an unbuilt clusterer from cfg for the (filtered) data d.
// Label and ignored attribute references resolve against d.
func Clusterer(cfg *config.Config, d *dataset.Instances) (*hierarchical.Clusterer, error) {
	link, err := hierarchical.ParseLink(cfg.Link)
	if err != nil {
		return nil, err
	}
	metric, err := distance.ParseMetric(cfg.Metric)
	if err != nil {
		return nil, err
	}
	label := hierarchical.AutoLabel
	if cfg.LabelAttribute != "" {
		if label, err = ResolveAttribute(d, cfg.LabelAttribute); err != nil {
			return nil, fmt.Errorf("label attribute: %w", err)
		}
	}
	ignored := make([]int, 0, len(cfg.Ignore))
	for _, ref := range cfg.Ignore {
		j, err := ResolveAttribute(d, ref)
		if err != nil {
			return nil, fmt.Errorf("ignored attribute: %w", err)
		}
		if j != dataset.NoClass {
			ignored = append(ignored, j)
		}
	}
	var distOpts []distance.Option
	if !cfg.Normalize {
		distOpts = append(distOpts, distance.NoNormalize())
	}
	if len(ignored) > 0 {
		distOpts = append(distOpts, distance.WithIgnored(ignored...))
	}

	opts := []hierarchical.Option{
		hierarchical.WithNumClusters(cfg.Clusters),
		hierarchical.WithLink(link),
		hierarchical.WithMetric(metric),
		hierarchical.WithWorkers(cfg.Workers),
		hierarchical.WithLabelAttribute(label),
		hierarchical.WithBranchLength(cfg.BranchLength),
		hierarchical.WithDistanceOptions(distOpts...),
	}

	return hierarchical.New(opts...)
}

// Run executes the job described by cfg and writes the report to w.
// Every log record carries the run ID.
func Run(ctx context.Context, cfg *config.Config, w io.Writer, log *slog.Logger) (*report.Result, error) {
	started := time.Now()
	runID := uuid.NewString()
	log = log.With("run_id", runID)

	if err := cfg.Validate(); err != nil {
		return nil, fail(StageConfig, err)
	}
	format, err := report.ParseFormat(cfg.Output.Format)
	if err != nil {
		return nil, fail(StageConfig, err)
	}

	// Load.
	raw, err := Load(cfg)
	if err != nil {
		return nil, err
	}
	log.Info("dataset loaded", "source", cfg.Dataset, "relation", raw.Relation,
		"instances", raw.NumInstances(), "attributes", raw.NumAttributes(), "missing", raw.HasMissing())

	// Filter.
	chain, err := filter.ParseFilters(cfg.Filters, filter.WithTransformAll(cfg.TransformAll))
	if err != nil {
		return nil, fail(StageFilter, err)
	}
	data, err := chain.Apply(raw)
	if err != nil {
		return nil, fail(StageFilter, err)
	}
	if len(chain) > 0 {
		log.Debug("filters applied", "filters", chain.Name(), "attributes", data.NumAttributes())
	}

	// Cluster.
	c, err := Clusterer(cfg, data)
	if err != nil {
		return nil, fail(StageCluster, err)
	}
	buildStart := time.Now()
	if err = c.Build(ctx, data); err != nil {
		return nil, fail(StageCluster, err)
	}
	k, _ := c.NumClusters()
	assign, _ := c.Assignments()
	log.Info("clusterer built", "link", cfg.Link, "clusters", k, "elapsed", time.Since(buildStart))

	sizes, err := evaluation.Sizes(assign, k)
	if err != nil {
		return nil, fail(StageEvaluate, err)
	}

	res := &report.Result{
		RunID:       runID,
		Source:      cfg.Dataset,
		Relation:    data.Relation,
		Instances:   data.NumInstances(),
		Attributes:  data.NumAttributes(),
		Filters:     cfg.Filters,
		Link:        strings.ToUpper(cfg.Link),
		Metric:      strings.ToLower(cfg.Metric),
		NumClusters: k,
		Model:       c.String(),
		Sizes:       sizes,
	}
	if cfg.Output.Assignments {
		res.Assignments = assign
	}

	// Evaluate.
	if data.ClassIndex != dataset.NoClass {
		eval, err := evaluation.Evaluate(data, assign, k)
		switch {
		case errors.Is(err, evaluation.ErrNoClass):
			log.Warn("class attribute is not nominal, skipping evaluation", "class", data.ClassAttribute().Name)
		case err != nil:
			return nil, fail(StageEvaluate, err)
		default:
			res.Evaluation = eval
			log.Info("classes to clusters", "incorrect", eval.Incorrect, "rate", eval.IncorrectRate())
		}
	}
	res.Duration = time.Since(started)

	// Report.
	if err = report.Write(w, res, format); err != nil {
		return nil, fail(StageReport, err)
	}
	log.Debug("run finished", "elapsed", res.Duration)

	return res, nil
}
