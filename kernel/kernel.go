// Package kernel defines the geometry kernel capability the wing generator
// hands its point sequences to. Implementations turn curves into solids,
// combine them and export the result.
package kernel

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r3"
)

// Curve is an opaque handle to a kernel curve.
type Curve int

// Solid is an opaque handle to a kernel solid.
type Solid int

// Kernel is the narrow geometry kernel interface. Handles are only
// valid for the Kernel that returned them.
type Kernel interface {
	// AddCurve registers an ordered point sequence as a polyline curve.
	AddCurve(points []r3.Vec) (Curve, error)
	// Loft returns a solid through the ordered cross-section curves.
	Loft(curves []Curve) (Solid, error)
	// Extrude sweeps the closed planar profile along dir.
	Extrude(profile []r3.Vec, dir r3.Vec) (Solid, error)
	// Fuse unites solids into one. The argument solids are consumed.
	Fuse(solids []Solid) (Solid, error)
	// Cut removes tool from object. Both solids are consumed.
	Cut(object, tool Solid) (Solid, error)
	// Dilate scales s uniformly about the origin.
	Dilate(s Solid, factor float64) error
	// Export writes s to path. The format is chosen by file extension.
	Export(path string, s Solid) error
}

var (
	ErrBadHandle         = errors.New("kernel: invalid or consumed handle")
	ErrCurveMismatch     = errors.New("kernel: loft curves differ in point count")
	ErrDegenerate        = errors.New("kernel: degenerate geometry")
	ErrUnsupported       = errors.New("kernel: operation not supported")
	ErrUnsupportedFormat = errors.New("kernel: unsupported export format")
)
