package hierarchical

import (
	"github.com/katalvlaran/hclust/distance"
	"github.com/katalvlaran/hclust/mst"
)

const (
	// DefaultNumClusters is the cluster count when WithNumClusters is not given.
	DefaultNumClusters = 2

	// DefaultLink is the linkage when WithLink is not given.
	DefaultLink = Single

	// AutoLabel picks the Newick leaf label attribute automatically.
	AutoLabel = -1
)

// Options holds the clusterer configuration.
type Options struct {
	NumClusters     int
	Link            Link
	Metric          distance.Kind
	DistanceOptions []distance.Option
	Workers         int
	LabelAttribute  int
	BranchLength    bool
	SpanningTree    string
}

// Option configures a Clusterer.
type Option func(*Options)

// DefaultOptions returns k=2, SINGLE link, Euclidean distance, automatic
// labels and Prim spanning trees.
func DefaultOptions() Options {
	return Options{
		NumClusters:    DefaultNumClusters,
		Link:           DefaultLink,
		Metric:         distance.Euclidean,
		LabelAttribute: AutoLabel,
		SpanningTree:   mst.MethodPrim,
	}
}

// WithNumClusters sets the number of clusters to keep.
func WithNumClusters(k int) Option {
	return func(o *Options) { o.NumClusters = k }
}

// WithLink sets the linkage.
func WithLink(l Link) Option {
	return func(o *Options) { o.Link = l }
}

// WithMetric sets the distance norm.
func WithMetric(k distance.Kind) Option {
	return func(o *Options) { o.Metric = k }
}

// WithDistanceOptions forwards options to distance.New.
func WithDistanceOptions(opts ...distance.Option) Option {
	return func(o *Options) { o.DistanceOptions = append(o.DistanceOptions, opts...) }
}

// WithWorkers bounds the goroutines used for pairwise distances (≤0: GOMAXPROCS).
func WithWorkers(n int) Option {
	return func(o *Options) { o.Workers = n }
}

// WithLabelAttribute selects the attribute printed for Newick leaves.
// AutoLabel uses the class attribute, else the first string attribute, else
// the last attribute.
func WithLabelAttribute(j int) Option {
	return func(o *Options) { o.LabelAttribute = j }
}

// WithBranchLength makes Newick branch lengths equal to the merge distance
// instead of the height difference between parent and child.
func WithBranchLength(on bool) Option {
	return func(o *Options) { o.BranchLength = on }
}

// WithSpanningTree selects the MST algorithm of the SINGLE link
// (mst.MethodPrim or mst.MethodKruskal).
func WithSpanningTree(method string) Option {
	return func(o *Options) { o.SpanningTree = method }
}
