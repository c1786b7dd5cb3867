package span

import (
	"errors"
	"fmt"

	"github.com/soypat/multiwing/airfoil"
)

var (
	// ErrTooFewPoints is returned when a quantity has fewer than two
	// valid control points and can not be interpolated.
	ErrTooFewPoints = errors.New("span: fewer than 2 valid control points")
	// ErrDuplicateZ is returned when two control points share a span fraction.
	ErrDuplicateZ = errors.New("span: duplicate span fraction")
	// ErrLengthMismatch is returned when span fraction and value columns differ in length.
	ErrLengthMismatch = errors.New("span: span fraction and value columns differ in length")
)

// ConfigError reports a quantity of an element that could not be fitted.
// The whole element is disabled when this happens.
type ConfigError struct {
	Element  int
	Quantity int
	Err      error
}

func (e *ConfigError) Error() string {
	name := "?"
	if e.Quantity >= 0 && e.Quantity < airfoil.NumFields {
		name = airfoil.Names[e.Quantity]
	}
	return fmt.Sprintf("element %d quantity %q: %s", e.Element+1, name, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }
