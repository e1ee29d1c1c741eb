// Package filter implements unsupervised attribute transforms applied to a
// dataset before clustering.
//
// Filters never mutate their input: Apply returns a new *dataset.Instances.
// The class attribute (when set) is passed through untouched.
//
//   - ReplaceMissingValues - numeric → weighted mean, nominal → weighted mode.
//   - NominalToBinary      - nominal → numeric 0/1 indicator attributes.
//
// Chain runs filters in order; ParseFilters builds a chain from names.
package filter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/hclust/dataset"
)

// Sentinel errors for filter construction and application.
var (
	// ErrUnknownFilter indicates a filter name that ParseFilters does not know.
	ErrUnknownFilter = errors.New("filter: unknown filter")

	// ErrNilDataset indicates a nil dataset was passed to Apply.
	ErrNilDataset = errors.New("filter: dataset is nil")
)

// Filter names accepted by ParseFilters.
const (
	NameReplaceMissing  = "replace-missing"
	NameNominalToBinary = "nominal-to-binary"
)

// Filter transforms a dataset into a new one.
type Filter interface {
	// Name returns the canonical filter name.
	Name() string

	// Apply returns the transformed copy of d.
	Apply(d *dataset.Instances) (*dataset.Instances, error)
}

// Chain applies filters in order.
type Chain []Filter

// Name joins the member names with " | ".
func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, f := range c {
		names[i] = f.Name()
	}

	return strings.Join(names, " | ")
}

// Apply runs every filter on the output of the previous one. An empty chain
// returns a copy of d.
func (c Chain) Apply(d *dataset.Instances) (*dataset.Instances, error) {
	if d == nil {
		return nil, ErrNilDataset
	}
	if len(c) == 0 {
		return d.Copy(), nil
	}
	out := d
	var err error
	for _, f := range c {
		if out, err = f.Apply(out); err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name(), err)
		}
	}

	return out, nil
}

// ParseOption adjusts the filters built by ParseFilters.
type ParseOption func(*parseConfig)

type parseConfig struct {
	transformAll bool
}

// WithTransformAll sets TransformAll on every NominalToBinary in the chain.
func WithTransformAll(on bool) ParseOption {
	return func(c *parseConfig) { c.transformAll = on }
}

// ParseFilters builds a Chain from filter names (case-insensitive; "_" and
// "-" are interchangeable, so "ReplaceMissingValues" style aliases work too).
func ParseFilters(names []string, opts ...ParseOption) (Chain, error) {
	var cfg parseConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	chain := make(Chain, 0, len(names))
	for _, raw := range names {
		switch normalizeName(raw) {
		case "replacemissing", "replacemissingvalues":
			chain = append(chain, NewReplaceMissingValues())
		case "nominaltobinary":
			chain = append(chain, &NominalToBinary{TransformAll: cfg.transformAll})
		default:
			return nil, fmt.Errorf("%q: %w", raw, ErrUnknownFilter)
		}
	}

	return chain, nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))

	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}
