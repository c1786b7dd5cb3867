package airfoil

import (
	"math"

	"github.com/soypat/multiwing/internal/d2"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/gonum/stat/combin"
)

// Stations is the number of chordwise samples per surface.
const Stations = 30

// chord holds the half-cosine spaced chordwise stations in [0,1],
// clustered at both the leading and trailing edge.
var chord = cosineSpacing(Stations)

func cosineSpacing(n int) []float64 {
	beta := floats.Span(make([]float64, n), 0, math.Pi)
	for i, b := range beta {
		beta[i] = 0.5 * (1 - math.Cos(b))
	}
	// cos(pi) rounds to exactly -1, still pin the edges.
	beta[0], beta[n-1] = 0, 1
	return beta
}

// Profile is a closed 2D airfoil outline. The outline starts at the
// upper trailing edge, runs over the upper surface to the leading edge
// and back along the lower surface to the lower trailing edge.
type Profile struct {
	outline d2.Set
}

// NewProfile builds the outline described by c. It does not check
// for suppression; callers must not build profiles of suppressed elements.
func NewProfile(c Chromosome) Profile {
	upper, lower := c.Upper(), c.Lower()
	outline := make(d2.Set, 2*Stations-1)
	for i, x := range chord {
		// Upper surface is traversed trailing edge to leading edge.
		outline[Stations-1-i] = r2.Vec{X: x, Y: shape(x) * bernstein(upper, x)}
		if i > 0 {
			outline[Stations-1+i] = r2.Vec{X: x, Y: -shape(x) * bernstein(lower, x)}
		}
	}
	pose := d2.Translation(c.Offset()).
		Mul(d2.ScaleUniform(c.Scale())).
		Mul(d2.Rotation(c.Angle()))
	outline.Transform(pose)
	return Profile{outline: outline}
}

// Outline returns the profile points. The returned slice must not be modified.
func (p Profile) Outline() []r2.Vec { return p.outline }

// Len returns the number of points in the outline.
func (p Profile) Len() int { return len(p.outline) }

// Trailing returns the upper trailing edge point. Following elements
// are chained from this point.
func (p Profile) Trailing() r2.Vec { return p.outline[0] }

// Leading returns the leading edge point.
func (p Profile) Leading() r2.Vec { return p.outline[Stations-1] }

// Bounds returns the minimum and maximum corners of the outline.
func (p Profile) Bounds() (min, max r2.Vec) {
	return p.outline.Min(), p.outline.Max()
}

// Thickness returns the unscaled, unrotated distance between the upper
// and lower surfaces of c at chordwise station x in [0,1].
func Thickness(c Chromosome, x float64) float64 {
	return shape(x) * (bernstein(c.Upper(), x) + bernstein(c.Lower(), x))
}

// shape is the class function that closes the airfoil at both edges.
func shape(x float64) float64 {
	return math.Sqrt(x) * (1 - x)
}

// bernstein evaluates the Bernstein polynomial of degree len(w)-1 with weights w.
func bernstein(w []float64, x float64) float64 {
	n := len(w) - 1
	var sum float64
	for i, wi := range w {
		b := float64(combin.Binomial(n, i)) * math.Pow(x, float64(i)) * math.Pow(1-x, float64(n-i))
		sum += wi * b
	}
	return sum
}
