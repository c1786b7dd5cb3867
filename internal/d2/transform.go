package d2

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Transform represents a 2D affine transformation
// including rotation, uniform scaling and translation.
// The zero value of Transform is the identity transform.
type Transform struct {
	// Diagonal stored with the identity subtracted so that
	//  if T == (Transform{})
	// checks for identity.
	d00, x01, x02 float64
	x10, d11, x12 float64
}

// Rotation returns a counter-clockwise rotation about the origin by angle radians.
func Rotation(angle float64) Transform {
	if angle == 0 {
		return Transform{}
	}
	s, c := math.Sincos(angle)
	return Transform{
		d00: c - 1, x01: -s,
		x10: s, d11: c - 1,
	}
}

// ScaleUniform returns a scaling about the origin by k.
func ScaleUniform(k float64) Transform {
	return Transform{d00: k - 1, d11: k - 1}
}

// Translation returns a translation by v.
func Translation(v r2.Vec) Transform {
	return Transform{x02: v.X, x12: v.Y}
}

// Mul returns the transform that applies b first and then t.
func (t Transform) Mul(b Transform) Transform {
	if t == (Transform{}) {
		return b
	}
	if b == (Transform{}) {
		return t
	}
	x00, x11 := t.d00+1, t.d11+1
	y00, y11 := b.d00+1, b.d11+1
	return Transform{
		d00: x00*y00 + t.x01*b.x10 - 1,
		x01: x00*b.x01 + t.x01*y11,
		x02: x00*b.x02 + t.x01*b.x12 + t.x02,
		x10: t.x10*y00 + x11*b.x10,
		d11: t.x10*b.x01 + x11*y11 - 1,
		x12: t.x10*b.x02 + x11*b.x12 + t.x12,
	}
}

// ApplyPos transforms a position.
func (t Transform) ApplyPos(b r2.Vec) r2.Vec {
	if t == (Transform{}) {
		return b
	}
	return r2.Vec{
		X: (t.d00+1)*b.X + t.x01*b.Y + t.x02,
		Y: t.x10*b.X + (t.d11+1)*b.Y + t.x12,
	}
}
