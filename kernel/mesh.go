package kernel

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/soypat/multiwing/internal/d3"
	"github.com/soypat/multiwing/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// closeTol is the distance under which the last point of a curve is
// considered a repeat of its first point.
const closeTol = 1e-9

// Mesh is a Kernel that builds triangle shells. It does not resolve
// intersections: Fuse collects shells into one model and Cut only supports
// removing a tool that lies entirely inside the object, which leaves a cavity.
type Mesh struct {
	curves [][]r3.Vec
	// solids[i] is nil once solid i has been consumed.
	solids [][]render.Triangle3
}

var _ Kernel = (*Mesh)(nil)

// NewMesh returns an empty mesh kernel.
func NewMesh() *Mesh { return &Mesh{} }

func (m *Mesh) AddCurve(points []r3.Vec) (Curve, error) {
	ring := openRing(points)
	if len(ring) < 3 {
		return -1, fmt.Errorf("%w: curve needs 3 distinct points, got %d", ErrDegenerate, len(ring))
	}
	for _, p := range ring {
		if d3.IsBad(p) {
			return -1, fmt.Errorf("%w: NaN or infinite curve point", ErrDegenerate)
		}
	}
	m.curves = append(m.curves, ring)
	return Curve(len(m.curves) - 1), nil
}

// Loft skins consecutive curves with triangle strips and caps both ends.
// Every curve must have the same number of points.
func (m *Mesh) Loft(curves []Curve) (Solid, error) {
	if len(curves) < 2 {
		return -1, fmt.Errorf("%w: loft needs 2 curves, got %d", ErrDegenerate, len(curves))
	}
	rings := make([][]r3.Vec, len(curves))
	for i, c := range curves {
		if c < 0 || int(c) >= len(m.curves) {
			return -1, ErrBadHandle
		}
		rings[i] = m.curves[c]
		if len(rings[i]) != len(rings[0]) {
			return -1, fmt.Errorf("%w: curve %d has %d points, curve %d has %d", ErrCurveMismatch, curves[0], len(rings[0]), c, len(rings[i]))
		}
	}
	return m.newSolid(skin(rings))
}

// Extrude builds a prism from a closed planar profile.
func (m *Mesh) Extrude(profile []r3.Vec, dir r3.Vec) (Solid, error) {
	ring := openRing(profile)
	if len(ring) < 3 {
		return -1, fmt.Errorf("%w: profile needs 3 distinct points, got %d", ErrDegenerate, len(ring))
	}
	if r3.Norm(dir) == 0 || d3.IsBad(dir) {
		return -1, fmt.Errorf("%w: extrusion direction %v", ErrDegenerate, dir)
	}
	top := make([]r3.Vec, len(ring))
	for i, p := range ring {
		top[i] = r3.Add(p, dir)
	}
	return m.newSolid(skin([][]r3.Vec{ring, top}))
}

// Fuse collects the shells of solids into a single solid.
func (m *Mesh) Fuse(solids []Solid) (Solid, error) {
	if len(solids) == 0 {
		return -1, fmt.Errorf("%w: nothing to fuse", ErrDegenerate)
	}
	var model []render.Triangle3
	for _, s := range solids {
		tris, err := m.solid(s)
		if err != nil {
			return -1, err
		}
		model = append(model, tris...)
	}
	for _, s := range solids {
		m.solids[s] = nil
	}
	return m.newSolid(model)
}

// Cut subtracts tool from object. The tool's bounding box must lie strictly
// inside the object's bounding box.
func (m *Mesh) Cut(object, tool Solid) (Solid, error) {
	if object == tool {
		return -1, fmt.Errorf("%w: cut of solid %d by itself", ErrUnsupported, object)
	}
	obj, err := m.solid(object)
	if err != nil {
		return -1, err
	}
	tl, err := m.solid(tool)
	if err != nil {
		return -1, err
	}
	if !render.Bounds(obj).ContainsBox(render.Bounds(tl)) {
		return -1, fmt.Errorf("%w: cut tool must lie inside object", ErrUnsupported)
	}
	model := make([]render.Triangle3, 0, len(obj)+len(tl))
	model = append(model, obj...)
	for _, t := range tl {
		model = append(model, t.Reverse())
	}
	m.solids[object], m.solids[tool] = nil, nil
	return m.newSolid(model)
}

func (m *Mesh) Dilate(s Solid, factor float64) error {
	if !(factor > 0) {
		return fmt.Errorf("%w: dilation factor %g", ErrUnsupported, factor)
	}
	tris, err := m.solid(s)
	if err != nil {
		return err
	}
	for i := range tris {
		for j := range tris[i] {
			tris[i][j] = r3.Scale(factor, tris[i][j])
		}
	}
	return nil
}

// Export writes s as a binary STL file. Only the .stl extension is supported.
func (m *Mesh) Export(path string, s Solid) error {
	r, err := m.Renderer(s)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".stl":
		return render.CreateSTL(path, r)
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, ext)
	}
}

// Triangles returns the triangles of solid s. The returned slice
// must not be modified.
func (m *Mesh) Triangles(s Solid) ([]render.Triangle3, error) {
	return m.solid(s)
}

// Renderer returns a Renderer streaming the triangles of s.
func (m *Mesh) Renderer(s Solid) (render.Renderer, error) {
	tris, err := m.solid(s)
	if err != nil {
		return nil, err
	}
	return render.NewSliceRenderer(tris), nil
}

func (m *Mesh) solid(s Solid) ([]render.Triangle3, error) {
	if s < 0 || int(s) >= len(m.solids) || m.solids[s] == nil {
		return nil, fmt.Errorf("%w: solid %d", ErrBadHandle, s)
	}
	return m.solids[s], nil
}

func (m *Mesh) newSolid(model []render.Triangle3) (Solid, error) {
	if len(model) == 0 {
		return -1, fmt.Errorf("%w: empty solid", ErrDegenerate)
	}
	m.solids = append(m.solids, model)
	return Solid(len(m.solids) - 1), nil
}

// openRing returns points without a trailing repeat of the first point.
func openRing(points []r3.Vec) []r3.Vec {
	n := len(points)
	if n > 1 && d3.EqualWithin(points[0], points[n-1], closeTol) {
		return points[:n-1]
	}
	return points
}

// skin connects rings of equal length with triangle strips and closes the
// first and last ring with fans about their centroids. Rings are reversed
// as needed so normals face away from the shell.
func skin(rings [][]r3.Vec) []render.Triangle3 {
	first, last := rings[0], rings[len(rings)-1]
	axis := r3.Sub(centroid(last), centroid(first))
	if r3.Dot(newell(first), axis) < 0 {
		reversed := make([][]r3.Vec, len(rings))
		for i, r := range rings {
			reversed[i] = reverse(r)
		}
		rings = reversed
		first, last = rings[0], rings[len(rings)-1]
	}
	n := len(first)
	model := make([]render.Triangle3, 0, 2*n*len(rings))
	model = appendValid(model, fan(first, true)...)
	for k := 1; k < len(rings); k++ {
		a, b := rings[k-1], rings[k]
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			model = appendValid(model,
				render.Triangle3{a[i], a[j], b[j]},
				render.Triangle3{a[i], b[j], b[i]},
			)
		}
	}
	model = appendValid(model, fan(last, false)...)
	return model
}

// fan triangulates a ring about its centroid. Triangles follow the ring's
// winding, or the opposite winding if flip is set.
func fan(ring []r3.Vec, flip bool) []render.Triangle3 {
	c := centroid(ring)
	n := len(ring)
	tris := make([]render.Triangle3, n)
	for i := range ring {
		t := render.Triangle3{c, ring[i], ring[(i+1)%n]}
		if flip {
			t = t.Reverse()
		}
		tris[i] = t
	}
	return tris
}

func appendValid(dst []render.Triangle3, tris ...render.Triangle3) []render.Triangle3 {
	for _, t := range tris {
		if t.Degenerate(closeTol) || t.Area() == 0 {
			continue
		}
		dst = append(dst, t)
	}
	return dst
}

func centroid(ring []r3.Vec) r3.Vec {
	var c r3.Vec
	for _, p := range ring {
		c = r3.Add(c, p)
	}
	return r3.Scale(1/float64(len(ring)), c)
}

// newell returns the area weighted normal of a planar polygon.
func newell(ring []r3.Vec) r3.Vec {
	var n r3.Vec
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		n.X += (p.Y - q.Y) * (p.Z + q.Z)
		n.Y += (p.Z - q.Z) * (p.X + q.X)
		n.Z += (p.X - q.X) * (p.Y + q.Y)
	}
	return n
}

func reverse(ring []r3.Vec) []r3.Vec {
	r := make([]r3.Vec, len(ring))
	for i, p := range ring {
		r[len(ring)-1-i] = p
	}
	return r
}
