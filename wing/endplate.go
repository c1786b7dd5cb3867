package wing

import (
	"errors"
	"fmt"
	"math"

	"github.com/soypat/multiwing/internal/d3"
	"github.com/soypat/multiwing/kernel"
	"github.com/soypat/multiwing/span"
	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrEndplateUndefined is returned when the first or the outermost
	// element is absent at the endplate's span fraction.
	ErrEndplateUndefined = errors.New("wing: endplate anchor element absent")
	// ErrBadEndplate is returned for endplate rows with undefined values
	// or a zero thickness. A negative thickness extrudes along -Z.
	ErrBadEndplate = errors.New("wing: invalid endplate parameters")
)

// Endplate is one row of endplate control values. Offsets are measured
// from the anchor points of the wing section at span fraction Z.
type Endplate struct {
	HOff1, VoffUpp1, VoffLow1 float64
	HOff2, VoffUpp2, VoffLow2 float64
	Thickness                 float64
	Z                         float64
}

func (e Endplate) valid() bool {
	for _, v := range [...]float64{e.HOff1, e.VoffUpp1, e.VoffLow1, e.HOff2, e.VoffUpp2, e.VoffLow2, e.Thickness, e.Z} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return e.Thickness != 0
}

// EndplateProfile is the planar endplate quadrilateral. Corners are in
// winding order: leading high, leading low, trailing low, trailing high.
type EndplateProfile struct {
	Corners   [4]r3.Vec
	Thickness float64
}

// NewEndplateProfile places the endplate e around the wing section at e.Z.
// The leading anchor is the mid point of the first element's outline and
// the trailing anchor is the last point of the outermost element's outline.
func NewEndplateProfile(g *span.Grid, e Endplate) (EndplateProfile, error) {
	if !e.valid() {
		return EndplateProfile{}, fmt.Errorf("endplate at z=%g: %w", e.Z, ErrBadEndplate)
	}
	s := NewSection(g.Eval(e.Z), e.Z)
	if len(s.Cells) == 0 {
		return EndplateProfile{}, fmt.Errorf("endplate at z=%g: %w", e.Z, ErrEndplateUndefined)
	}
	first, last := s.Cells[0], s.Cells[len(s.Cells)-1]
	if !first.Present() || !last.Present() {
		return EndplateProfile{}, fmt.Errorf("endplate at z=%g: %w", e.Z, ErrEndplateUndefined)
	}
	lastCurve := last.Curve()
	maxAnchor := lastCurve[len(lastCurve)-1]
	minAnchor := first.Curve()[len(lastCurve)/2]
	return EndplateProfile{
		Corners: [4]r3.Vec{
			r3.Add(minAnchor, r3.Vec{X: -e.HOff1, Y: e.VoffUpp1}),
			r3.Add(minAnchor, r3.Vec{X: -e.HOff1, Y: -e.VoffLow1}),
			r3.Add(maxAnchor, r3.Vec{X: e.HOff2, Y: -e.VoffLow2}),
			r3.Add(maxAnchor, r3.Vec{X: e.HOff2, Y: e.VoffUpp2}),
		},
		Thickness: e.Thickness,
	}, nil
}

// Bounds returns the bounding box of the extruded endplate.
func (p EndplateProfile) Bounds() d3.Box {
	b := d3.EmptyBox()
	for _, c := range p.Corners {
		b = b.Include(c).Include(r3.Add(c, r3.Vec{Z: p.Thickness}))
	}
	return b
}

// Extrude sweeps the endplate along +Z by its thickness.
func (p EndplateProfile) Extrude(k kernel.Kernel) (kernel.Solid, error) {
	return k.Extrude(p.Corners[:], r3.Vec{Z: p.Thickness})
}
