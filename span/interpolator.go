package span

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/interp"
)

// Samples holds the control points of one quantity: span fractions Z and
// the value V at each of them. Missing entries are NaN.
type Samples struct {
	Z []float64
	V []float64
}

// Interpolator is a monotone piecewise cubic interpolator over span fraction.
// It does not overshoot between control points and does not extrapolate.
type Interpolator struct {
	fb       interp.FritschButland
	min, max float64
}

// NewInterpolator fits an interpolator to the valid pairs of s. A pair with
// a NaN or infinite span fraction or value is dropped. Control points need not be sorted.
func NewInterpolator(s Samples) (*Interpolator, error) {
	if len(s.Z) != len(s.V) {
		return nil, fmt.Errorf("%w (%d != %d)", ErrLengthMismatch, len(s.Z), len(s.V))
	}
	type pair struct{ z, v float64 }
	pairs := make([]pair, 0, len(s.Z))
	for i := range s.Z {
		if !finite(s.Z[i]) || !finite(s.V[i]) {
			continue
		}
		pairs = append(pairs, pair{z: s.Z[i], v: s.V[i]})
	}
	if len(pairs) < 2 {
		return nil, ErrTooFewPoints
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].z < pairs[j].z })
	zs := make([]float64, len(pairs))
	vs := make([]float64, len(pairs))
	for i, p := range pairs {
		if i > 0 && p.z == pairs[i-1].z {
			return nil, fmt.Errorf("%w z=%g", ErrDuplicateZ, p.z)
		}
		zs[i], vs[i] = p.z, p.v
	}
	in := &Interpolator{min: zs[0], max: zs[len(zs)-1]}
	if err := in.fb.Fit(zs, vs); err != nil {
		return nil, err
	}
	return in, nil
}

// At evaluates the interpolator at span fraction z. It returns NaN
// if z lies outside the control points' span.
func (in *Interpolator) At(z float64) float64 {
	if math.IsNaN(z) || z < in.min || z > in.max {
		return math.NaN()
	}
	return in.fb.Predict(z)
}

// Range returns the smallest and largest control point span fraction.
func (in *Interpolator) Range() (min, max float64) {
	return in.min, in.max
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
