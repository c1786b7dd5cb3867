// Package airfoil turns an 18 value coefficient vector into a
// 2D airfoil cross-section using Bernstein polynomial thickness functions.
package airfoil

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Chromosome field layout. The upper surface weights span [0,7) and
// the lower surface weights span [7,13). FieldAngle shares index 12 with
// the last lower surface weight. Input tables have always been laid out this
// way so both reads target the same value.
const (
	FieldAngle   = 12
	FieldOffsetX = 13
	FieldOffsetY = 14
	FieldOverlap = 15
	FieldSlotGap = 16
	FieldScale   = 17

	upperStart, upperEnd = 0, 7
	lowerStart, lowerEnd = 7, 13

	// NumFields is the length of a Chromosome.
	NumFields = 18
)

// Names of each chromosome field as they appear in case tables.
// A table column for field i is named Names[i] suffixed with "z" for the
// span fraction and "y" for the value.
var Names = [NumFields]string{
	"u1", "u2", "u3", "u4", "u5", "u6",
	"l1", "l2", "l3", "l4", "l5", "l6",
	"a", "xoff", "yoff", "ovlp", "sl", "scl",
}

// Chromosome encodes the shape, pose and chaining corrections of
// one wing element at one span station.
type Chromosome [NumFields]float64

// Upper returns the upper surface Bernstein weights.
func (c Chromosome) Upper() []float64 { return c[upperStart:upperEnd] }

// Lower returns the lower surface Bernstein weights.
func (c Chromosome) Lower() []float64 { return c[lowerStart:lowerEnd] }

func (c Chromosome) Angle() float64   { return c[FieldAngle] }
func (c Chromosome) Scale() float64   { return c[FieldScale] }
func (c Chromosome) Offset() r2.Vec   { return r2.Vec{X: c[FieldOffsetX], Y: c[FieldOffsetY]} }
func (c Chromosome) Overlap() float64 { return c[FieldOverlap] }
func (c Chromosome) SlotGap() float64 { return c[FieldSlotGap] }

// Suppressed returns true if the element is switched off at this station.
// Only an exact zero scale suppresses an element.
func (c Chromosome) Suppressed() bool { return c[FieldScale] == 0 }

// Defined returns false if any field is NaN, which is how an interpolator
// reports a span fraction outside of its control points.
func (c Chromosome) Defined() bool {
	for _, v := range c {
		if math.IsNaN(v) {
			return false
		}
	}
	return true
}

// Chain returns a copy of c positioned behind the previous element.
// The offset is set to the previous element's trailing anchor, moved
// forward by the overlap and up by the slot gap.
func Chain(anchor r2.Vec, c Chromosome) Chromosome {
	c[FieldOffsetX] = anchor.X - c[FieldOverlap]
	c[FieldOffsetY] = anchor.Y + c[FieldSlotGap]
	return c
}
