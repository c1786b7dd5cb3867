package render

import (
	"github.com/soypat/multiwing/internal/d3"
	"gonum.org/v1/gonum/spatial/r3"
)

// Renderer streams the triangles of a model.
// ReadTriangles returns io.EOF once every triangle has been read.
type Renderer interface {
	ReadTriangles(t []Triangle3) (int, error)
}

// Triangle3 is a 3D triangle. Vertices are ordered counter-clockwise
// when viewed from outside the model.
type Triangle3 [3]r3.Vec

// Normal returns the unit normal of the triangle following the right hand rule.
func (t Triangle3) Normal() r3.Vec {
	e1 := r3.Sub(t[1], t[0])
	e2 := r3.Sub(t[2], t[0])
	n := r3.Cross(e1, e2)
	if r3.Norm(n) == 0 {
		return r3.Vec{}
	}
	return r3.Unit(n)
}

// Area returns the area of the triangle.
func (t Triangle3) Area() float64 {
	return 0.5 * r3.Norm(r3.Cross(r3.Sub(t[1], t[0]), r3.Sub(t[2], t[0])))
}

// Degenerate returns true if two vertices of the triangle are within tol
// of each other or any vertex is NaN or infinite.
func (t Triangle3) Degenerate(tol float64) bool {
	if d3.IsBad(t[0]) || d3.IsBad(t[1]) || d3.IsBad(t[2]) {
		return true
	}
	return d3.EqualWithin(t[0], t[1], tol) ||
		d3.EqualWithin(t[1], t[2], tol) ||
		d3.EqualWithin(t[2], t[0], tol)
}

// Reverse returns the triangle with its winding flipped.
func (t Triangle3) Reverse() Triangle3 {
	return Triangle3{t[0], t[2], t[1]}
}

// Bounds returns the bounding box of a set of triangles.
func Bounds(model []Triangle3) d3.Box {
	bb := d3.EmptyBox()
	for _, t := range model {
		for _, v := range t {
			bb = bb.Include(v)
		}
	}
	return bb
}

// Volume returns the signed volume enclosed by a closed triangle mesh.
// It is positive when triangle normals point outwards.
func Volume(model []Triangle3) float64 {
	var v float64
	for _, t := range model {
		v += r3.Dot(t[0], r3.Cross(t[1], t[2]))
	}
	return v / 6
}
