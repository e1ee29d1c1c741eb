// Package dataset defines the in-memory table model shared by the reader,
// the filters and the clusterer: Attribute, Instances and the float64 value
// encoding.
//
// Every cell is a float64:
//
//	numeric, date  - the number itself (dates as Unix milliseconds)
//	nominal        - index of the label in Attribute.Labels
//	string         - index into the attribute's string table
//	missing        - NaN (see Missing and IsMissing)
//
// Errors:
//
//	ErrNoSuchAttribute - attribute index or name does not exist.
//	ErrRowWidth        - a row does not have one value per attribute.
//	ErrClassIndex      - class index is out of range.
//	ErrLabelIndex      - a nominal value does not index a declared label.
package dataset

import (
	"errors"
	"math"
)

// Sentinel errors for dataset operations.
var (
	// ErrNoSuchAttribute indicates an attribute index or name does not exist.
	ErrNoSuchAttribute = errors.New("dataset: no such attribute")

	// ErrRowWidth indicates that a row does not carry one value per attribute.
	ErrRowWidth = errors.New("dataset: row width does not match attribute count")

	// ErrClassIndex indicates that a class index is outside the attribute range.
	ErrClassIndex = errors.New("dataset: class index out of range")

	// ErrLabelIndex indicates a nominal value that does not index a declared label.
	ErrLabelIndex = errors.New("dataset: nominal value out of label range")
)

// NoClass is the ClassIndex value of a dataset without a class attribute.
const NoClass = -1

// AttributeType enumerates the supported attribute kinds.
type AttributeType int

const (
	// Numeric covers ARFF numeric, real and integer attributes.
	Numeric AttributeType = iota
	// Nominal attributes take one of a fixed list of labels.
	Nominal
	// String attributes hold free text, interned per attribute.
	String
	// Date attributes hold timestamps as Unix milliseconds.
	Date
)

// String returns the ARFF keyword for t.
func (t AttributeType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Nominal:
		return "nominal"
	case String:
		return "string"
	case Date:
		return "date"
	default:
		return "unknown"
	}
}

// IsNumeric reports whether values of t are ordered numbers (numeric or date).
func (t AttributeType) IsNumeric() bool { return t == Numeric || t == Date }

// Missing returns the missing-value marker (NaN).
func Missing() float64 { return math.NaN() }

// IsMissing reports whether v is the missing-value marker.
func IsMissing(v float64) bool { return math.IsNaN(v) }

// Attribute describes one column of a dataset.
type Attribute struct {
	// Name is the attribute name as declared in the header.
	Name string

	// Type is the attribute kind.
	Type AttributeType

	// Labels lists nominal labels in declaration order. Nil for other types.
	Labels []string

	// DateFormat is the declared date pattern (Java-style) for Date attributes.
	DateFormat string

	// strings is the intern table of a String attribute.
	strings []string
	index   map[string]int
}

// NewNumeric returns a numeric attribute.
func NewNumeric(name string) *Attribute {
	return &Attribute{Name: name, Type: Numeric}
}

// NewNominal returns a nominal attribute over labels (copied).
func NewNominal(name string, labels ...string) *Attribute {
	cp := make([]string, len(labels))
	copy(cp, labels)
	a := &Attribute{Name: name, Type: Nominal, Labels: cp}
	a.index = make(map[string]int, len(cp))
	for i, l := range cp {
		if _, dup := a.index[l]; !dup {
			a.index[l] = i
		}
	}

	return a
}

// NewString returns a string attribute with an empty intern table.
func NewString(name string) *Attribute {
	return &Attribute{Name: name, Type: String, index: map[string]int{}}
}

// NewDate returns a date attribute with the given Java-style pattern.
func NewDate(name, format string) *Attribute {
	return &Attribute{Name: name, Type: Date, DateFormat: format}
}

// NumLabels returns the number of nominal labels (0 for non-nominal attributes).
func (a *Attribute) NumLabels() int { return len(a.Labels) }

// IndexOfLabel returns the index of label, or -1 if it is not declared.
func (a *Attribute) IndexOfLabel(label string) int {
	if a.index == nil {
		return -1
	}
	if i, ok := a.index[label]; ok && a.Type == Nominal {
		return i
	}

	return -1
}

// AddString interns s in a String attribute and returns its index.
func (a *Attribute) AddString(s string) int {
	if a.index == nil {
		a.index = map[string]int{}
	}
	if i, ok := a.index[s]; ok {
		return i
	}
	a.strings = append(a.strings, s)
	a.index[s] = len(a.strings) - 1

	return len(a.strings) - 1
}

// NumStrings returns the size of the string intern table.
func (a *Attribute) NumStrings() int { return len(a.strings) }

// Format renders value v of this attribute as text ("?" when missing).
func (a *Attribute) Format(v float64) string {
	if IsMissing(v) {
		return "?"
	}
	switch a.Type {
	case Nominal:
		i := int(v)
		if i >= 0 && i < len(a.Labels) {
			return a.Labels[i]
		}
	case String:
		i := int(v)
		if i >= 0 && i < len(a.strings) {
			return a.strings[i]
		}
	case Date:
		return formatDate(v, a.DateFormat)
	}

	return formatNumber(v)
}

// clone returns a deep copy of a.
func (a *Attribute) clone() *Attribute {
	cp := &Attribute{Name: a.Name, Type: a.Type, DateFormat: a.DateFormat}
	if a.Labels != nil {
		cp.Labels = append([]string(nil), a.Labels...)
	}
	if a.strings != nil {
		cp.strings = append([]string(nil), a.strings...)
	}
	if a.index != nil {
		cp.index = make(map[string]int, len(a.index))
		for k, v := range a.index {
			cp.index[k] = v
		}
	}

	return cp
}
