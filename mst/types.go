package mst

import (
	"errors"
	"sort"

	"github.com/katalvlaran/hclust/matrix"
)

// ErrEmptyMatrix indicates a nil distance matrix or one without vertices.
var ErrEmptyMatrix = errors.New("mst: empty distance matrix")

// ErrInvalidRoot indicates a Prim root outside the vertex range.
var ErrInvalidRoot = errors.New("mst: root vertex out of range")

// ErrUnknownMethod indicates an MSTOptions.Method other than MethodPrim or MethodKruskal.
var ErrUnknownMethod = errors.New("mst: unknown method")

// MethodPrim selects dense Prim.
const MethodPrim = "prim"

// MethodKruskal selects Kruskal with a disjoint set.
const MethodKruskal = "kruskal"

// Edge is one tree edge between vertices U < V.
type Edge struct {
	U, V   int
	Weight float64
}

// MSTOptions configures Compute.
//
// Fields:
//
//	Method string: MethodPrim or MethodKruskal.
//	Root   int   : start vertex for Prim; ignored by Kruskal.
type MSTOptions struct {
	// Method to use: MethodPrim or MethodKruskal.
	Method string

	// Root is the starting vertex for Prim's algorithm.
	Root int
}

// Option configures MSTOptions.
type Option func(*MSTOptions)

// WithMethod sets the algorithm.
func WithMethod(m string) Option {
	return func(opts *MSTOptions) {
		opts.Method = m
	}
}

// WithRoot sets Prim's starting vertex.
func WithRoot(root int) Option {
	return func(opts *MSTOptions) {
		opts.Root = root
	}
}

// DefaultOptions returns Prim from vertex 0.
func DefaultOptions() MSTOptions {
	return MSTOptions{Method: MethodPrim}
}

// NewOptions applies opts over DefaultOptions.
func NewOptions(opts ...Option) MSTOptions {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// Compute runs the algorithm selected by opts.Method.
//
// Returns the tree edges, their total weight, and ErrEmptyMatrix,
// ErrInvalidRoot or ErrUnknownMethod on invalid input.
func Compute(d *matrix.Condensed, opts MSTOptions) ([]Edge, float64, error) {
	switch opts.Method {
	case MethodPrim:
		return Prim(d, opts.Root)
	case MethodKruskal:
		return Kruskal(d)
	default:
		return nil, 0, ErrUnknownMethod
	}
}

// SortEdges orders edges in place by (Weight, U, V) and returns them.
func SortEdges(edges []Edge) []Edge {
	sort.Slice(edges, func(a, b int) bool {
		ea, eb := edges[a], edges[b]
		if ea.Weight != eb.Weight {
			return ea.Weight < eb.Weight
		}
		if ea.U != eb.U {
			return ea.U < eb.U
		}

		return ea.V < eb.V
	})

	return edges
}

// newEdge normalizes the endpoint order.
func newEdge(u, v int, w float64) Edge {
	if u > v {
		u, v = v, u
	}

	return Edge{U: u, V: v, Weight: w}
}
