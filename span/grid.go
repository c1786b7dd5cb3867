package span

import (
	"errors"
	"math"

	"github.com/soypat/multiwing/airfoil"
)

// ElementTable holds the control points of every chromosome field of one element.
type ElementTable [airfoil.NumFields]Samples

// Matrix holds every element's chromosome evaluated at one span fraction.
// Fields that could not be evaluated are NaN.
type Matrix []airfoil.Chromosome

// Grid holds one interpolator per (element, quantity) pair.
// It is built once and is safe for concurrent reads afterwards.
type Grid struct {
	elems    [][airfoil.NumFields]*Interpolator
	disabled []bool
}

// NewGrid fits the interpolators of every element. When a quantity can not be
// fitted its element is disabled and evaluates as undefined at every span
// fraction. The returned error joins one *ConfigError per failure; the
// returned Grid is usable regardless.
func NewGrid(elements []ElementTable) (*Grid, error) {
	g := &Grid{
		elems:    make([][airfoil.NumFields]*Interpolator, len(elements)),
		disabled: make([]bool, len(elements)),
	}
	var errs []error
	for i := range elements {
		for q := range elements[i] {
			in, err := NewInterpolator(elements[i][q])
			if err != nil {
				g.disabled[i] = true
				errs = append(errs, &ConfigError{Element: i, Quantity: q, Err: err})
				continue
			}
			g.elems[i][q] = in
		}
	}
	return g, errors.Join(errs...)
}

// Elements returns the number of wing elements in the grid.
func (g *Grid) Elements() int { return len(g.elems) }

// Disabled returns true if element i failed to fit.
func (g *Grid) Disabled(i int) bool { return g.disabled[i] }

// Interpolator returns the interpolator for quantity q of element i.
// It returns nil for disabled elements.
func (g *Grid) Interpolator(i, q int) *Interpolator {
	if g.disabled[i] {
		return nil
	}
	return g.elems[i][q]
}

// Eval evaluates every quantity of every element at span fraction z.
func (g *Grid) Eval(z float64) Matrix {
	m := make(Matrix, len(g.elems))
	for i := range g.elems {
		m[i] = g.chromosome(i, z)
	}
	return m
}

func (g *Grid) chromosome(i int, z float64) (c airfoil.Chromosome) {
	for q := range c {
		if g.disabled[i] {
			c[q] = math.NaN()
			continue
		}
		c[q] = g.elems[i][q].At(z)
	}
	return c
}
