package series

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. The typed errors below match them.
var (
	ErrUnsupportedType   = errors.New("series: unsupported type")
	ErrDimensionMismatch = errors.New("series: dimension mismatch")
	ErrMissingAxis       = errors.New("series: x, y and z are all nothing")
	ErrAmbiguousFunction = errors.New("series: function axis has no independent values")
)

// UnsupportedTypeError reports an input with no normalisation rule.
type UnsupportedTypeError struct {
	Type string
	Op   string
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("series: %s: %s is not supported", e.Op, e.Type)
}

func (e *UnsupportedTypeError) Is(target error) bool { return target == ErrUnsupportedType }

func unsupported(v Value, op string) error {
	return &UnsupportedTypeError{Type: KindOf(v).String(), Op: op}
}

// DimensionMismatchError reports y and x lengths that disagree.
type DimensionMismatchError struct {
	XLen int
	YLen int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("series: y has length %d but x has length %d", e.YLen, e.XLen)
}

func (e *DimensionMismatchError) Is(target error) bool { return target == ErrDimensionMismatch }

// MissingAxisError reports a series with no coordinates at all.
type MissingAxisError struct{}

func (e *MissingAxisError) Error() string { return ErrMissingAxis.Error() }

func (e *MissingAxisError) Is(target error) bool { return target == ErrMissingAxis }

// AmbiguousFunctionError reports a function axis whose independent
// variable is absent. Axis names the function axis, Needs the absent ones.
type AmbiguousFunctionError struct {
	Axis  string
	Needs string
}

func (e *AmbiguousFunctionError) Error() string {
	return fmt.Sprintf("series: %s is a function but no %s values given", e.Axis, e.Needs)
}

func (e *AmbiguousFunctionError) Is(target error) bool { return target == ErrAmbiguousFunction }
