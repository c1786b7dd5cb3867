// Package wing assembles airfoil cross-sections along the span of a
// multi-element wing and groups them into loftable runs.
package wing

import (
	"github.com/soypat/multiwing/airfoil"
	"github.com/soypat/multiwing/internal/d3"
	"github.com/soypat/multiwing/span"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cell is either a present element cross-section or absent.
// The zero value is absent.
type Cell struct {
	present bool
	profile airfoil.Profile
	curve   []r3.Vec
}

// Present reports whether the cell holds a cross-section.
func (c Cell) Present() bool { return c.present }

// Profile returns the 2D profile of a present cell.
func (c Cell) Profile() airfoil.Profile { return c.profile }

// Curve returns the cross-section points of a present cell, all sharing the
// section's span fraction as Z. It returns nil for absent cells.
func (c Cell) Curve() []r3.Vec { return c.curve }

func newCell(p airfoil.Profile, z float64) Cell {
	outline := p.Outline()
	curve := make([]r3.Vec, len(outline))
	for i, v := range outline {
		curve[i] = d3.FromR2(v, z)
	}
	return Cell{present: true, profile: p, curve: curve}
}

// Section is the wing cross-section at one span fraction, one cell per element.
type Section struct {
	Z     float64
	Cells []Cell
}

// NewSection builds the cross-section described by m at span fraction z.
// Elements are processed in order; each element after the first is chained
// to the trailing edge of its predecessor and is absent if its predecessor is.
// An element is also absent when its scale is zero or any of its fields
// is undefined.
func NewSection(m span.Matrix, z float64) Section {
	s := Section{Z: z, Cells: make([]Cell, len(m))}
	for i, c := range m {
		if i > 0 {
			prev := s.Cells[i-1]
			if !prev.Present() {
				continue
			}
			c = airfoil.Chain(prev.profile.Trailing(), c)
		}
		if !c.Defined() || c.Suppressed() {
			continue
		}
		s.Cells[i] = newCell(airfoil.NewProfile(c), z)
	}
	return s
}

// Present returns the number of present cells.
func (s Section) Present() int {
	n := 0
	for _, c := range s.Cells {
		if c.Present() {
			n++
		}
	}
	return n
}

// Stations returns n evenly spaced span fractions from 0 to 1 inclusive.
func Stations(n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{0}
	}
	zs := floats.Span(make([]float64, n), 0, 1)
	return zs
}

// Sections evaluates g and builds a Section at every span fraction of zs, in order.
func Sections(g *span.Grid, zs []float64) []Section {
	sections := make([]Section, len(zs))
	for i, z := range zs {
		sections[i] = NewSection(g.Eval(z), z)
	}
	return sections
}
