package arff

import (
	"errors"
	"fmt"
)

// Sentinel errors for ARFF parsing.
var (
	// ErrSyntax indicates malformed header or data syntax.
	ErrSyntax = errors.New("arff: syntax error")

	// ErrUnknownLabel indicates a nominal value not declared in the header.
	ErrUnknownLabel = errors.New("arff: undeclared nominal value")

	// ErrBadNumber indicates a numeric value that does not parse.
	ErrBadNumber = errors.New("arff: invalid number")

	// ErrBadDate indicates a date value that does not match the declared format.
	ErrBadDate = errors.New("arff: invalid date")

	// ErrColumnCount indicates a dense row with the wrong number of values.
	ErrColumnCount = errors.New("arff: wrong number of values")

	// ErrUnsupportedType indicates an attribute type this reader cannot load.
	ErrUnsupportedType = errors.New("arff: unsupported attribute type")

	// ErrNoData indicates the input ended before the @data section.
	ErrNoData = errors.New("arff: missing @data section")

	// ErrDuplicateAttribute indicates two attributes with the same name.
	ErrDuplicateAttribute = errors.New("arff: duplicate attribute name")
)

// lineError attaches the 1-based input line to err.
func lineError(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}

// detailf wraps a sentinel with a detail message.
func detailf(sentinel error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", sentinel, fmt.Sprintf(format, args...))
}
