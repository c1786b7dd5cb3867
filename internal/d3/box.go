package d3

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Box is a 3d bounding box.
type Box r3.Box

// EmptyBox returns an inverted box that any Include call will shrink onto.
func EmptyBox() Box {
	return Box{Min: Elem(math.Inf(1)), Max: Elem(math.Inf(-1))}
}

// Equals test the equality of 3d boxes.
func (a Box) Equals(b Box, tol float64) bool {
	return EqualWithin(a.Min, b.Min, tol) && EqualWithin(a.Max, b.Max, tol)
}

// Include enlarges a 3d box to include a point.
func (a Box) Include(v r3.Vec) Box {
	return Box{
		Min: MinElem(a.Min, v),
		Max: MaxElem(a.Max, v),
	}
}

// Size returns the size of a 3d box.
func (a Box) Size() r3.Vec {
	return r3.Sub(a.Max, a.Min)
}

// ContainsBox checks if b lies strictly inside a.
func (a Box) ContainsBox(b Box) bool {
	return a.Min.X < b.Min.X && a.Min.Y < b.Min.Y && a.Min.Z < b.Min.Z &&
		b.Max.X < a.Max.X && b.Max.Y < a.Max.Y && b.Max.Z < a.Max.Z
}
