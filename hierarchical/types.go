package hierarchical

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors.
var (
	// ErrUnknownLink indicates a linkage name ParseLink does not support.
	ErrUnknownLink = errors.New("hierarchical: unknown link type")

	// ErrInvalidK indicates a requested cluster count below 1.
	ErrInvalidK = errors.New("hierarchical: number of clusters must be at least 1")

	// ErrNoInstances indicates Build received a nil or empty dataset.
	ErrNoInstances = errors.New("hierarchical: no instances to cluster")

	// ErrNotBuilt indicates a query on a clusterer before a successful Build.
	ErrNotBuilt = errors.New("hierarchical: clusterer not built")

	// ErrRowWidth indicates a row whose width differs from the training header.
	ErrRowWidth = errors.New("hierarchical: row width does not match the training header")
)

// Link selects how the distance between two clusters is measured.
type Link int

const (
	// Single is the minimum member distance.
	Single Link = iota
	// Complete is the maximum member distance.
	Complete
	// Average is the mean cross-pair distance.
	Average
	// Mean is the mean distance of all pairs in the merged cluster.
	Mean
	// Centroid is the distance between centroids.
	Centroid
	// Ward is the increase in error sum of squares.
	Ward
	// AdjComplete is Complete minus the largest within-cluster distance.
	AdjComplete
)

var linkNames = [...]string{
	Single:      "SINGLE",
	Complete:    "COMPLETE",
	Average:     "AVERAGE",
	Mean:        "MEAN",
	Centroid:    "CENTROID",
	Ward:        "WARD",
	AdjComplete: "ADJCOMPLETE",
}

// String returns the upper-case link name.
func (l Link) String() string {
	if l < 0 || int(l) >= len(linkNames) {
		return fmt.Sprintf("Link(%d)", int(l))
	}

	return linkNames[l]
}

// Valid reports whether l is a supported link.
func (l Link) Valid() bool { return l >= 0 && int(l) < len(linkNames) }

// ParseLink maps a case-insensitive link name to a Link.
func ParseLink(name string) (Link, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for l, n := range linkNames {
		if n == upper {
			return Link(l), nil
		}
	}

	return 0, fmt.Errorf("%q: %w", name, ErrUnknownLink)
}

// LinkNames returns the supported link names in declaration order.
func LinkNames() []string {
	return append([]string(nil), linkNames[:]...)
}
