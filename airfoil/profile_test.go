package airfoil

import (
	"math"
	"testing"

	"github.com/soypat/multiwing/internal/d2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"
)

const tol = 1e-12

func naca() Chromosome {
	return Chromosome{
		0.17, 0.16, 0.18, 0.15, 0.14, 0.13, 0.12, // upper
		0.10, 0.09, 0.08, 0.07, 0.06, // lower
		0.05, // lower weight and angle
		0, 0, // offset
		0.02, 0.01, // overlap, slot gap
		1, // scale
	}
}

func TestProfileLayout(t *testing.T) {
	c := naca()
	c[FieldAngle] = 0 // also the last lower weight.
	p := NewProfile(c)
	require.Equal(t, 2*Stations-1, p.Len())

	out := p.Outline()
	assert.Equal(t, r2.Vec{X: 1, Y: 0}, p.Trailing(), "upper trailing edge")
	assert.Equal(t, r2.Vec{X: 0, Y: 0}, p.Leading(), "leading edge")
	assert.Equal(t, r2.Vec{X: 1, Y: 0}, out[len(out)-1], "lower trailing edge")
	for i := 1; i < Stations-1; i++ {
		assert.Greater(t, out[i].Y, 0.0, "upper surface point %d", i)
		assert.Less(t, out[len(out)-1-i].Y, 0.0, "lower surface point %d", i)
		assert.Less(t, out[i].X, out[i-1].X, "upper surface must run towards leading edge")
	}
}

func TestThicknessVanishesAtEdges(t *testing.T) {
	c := naca()
	assert.Equal(t, 0.0, Thickness(c, 0))
	assert.Equal(t, 0.0, Thickness(c, 1))
	for _, x := range []float64{0.01, 0.3, 0.5, 0.99} {
		assert.Greater(t, Thickness(c, x), 0.0, "x=%g", x)
	}
}

func TestBernsteinPartitionOfUnity(t *testing.T) {
	ones := []float64{1, 1, 1, 1, 1, 1, 1}
	for _, x := range chord {
		assert.InDelta(t, 1, bernstein(ones, x), tol)
		assert.InDelta(t, 1, bernstein(ones[:6], x), tol)
	}
}

func TestRotateZeroIsIdentity(t *testing.T) {
	c := naca()
	c[FieldAngle] = 0
	want := NewProfile(c).Outline()

	got := make(d2.Set, len(want))
	copy(got, want)
	got.Transform(d2.Rotation(0))
	for i := range want {
		assert.True(t, d2.EqualWithin(got[i], want[i], tol), "point %d: got %v want %v", i, got[i], want[i])
	}
}

func TestRotationQuarterTurn(t *testing.T) {
	c := naca()
	c[FieldAngle] = math.Pi / 2
	p := NewProfile(c)
	// Trailing edge (1,0) rotates onto (0,1).
	assert.True(t, d2.EqualWithin(p.Trailing(), r2.Vec{X: 0, Y: 1}, tol), "got %v", p.Trailing())
}

func TestScaleRoundTrip(t *testing.T) {
	c := naca()
	base := NewProfile(c).Outline()
	for _, s := range []float64{0.25, 1.5, 3, 1e3} {
		c[FieldScale] = s
		scaled := NewProfile(c).Outline()
		for i := range base {
			back := r2.Scale(1/s, scaled[i])
			assert.True(t, d2.EqualWithin(back, base[i], 1e-9), "scale %g point %d", s, i)
		}
	}
}

func TestOffsetTranslates(t *testing.T) {
	c := naca()
	base := NewProfile(c)
	c[FieldOffsetX], c[FieldOffsetY] = 2, -1
	moved := NewProfile(c)
	for i := range base.Outline() {
		want := r2.Add(base.Outline()[i], r2.Vec{X: 2, Y: -1})
		assert.True(t, d2.EqualWithin(moved.Outline()[i], want, tol))
	}
}

func TestProfileBounds(t *testing.T) {
	c := naca()
	c[FieldOffsetX], c[FieldOffsetY] = 2, -1
	p := NewProfile(c)
	min, max := p.Bounds()
	require.Less(t, min.X, max.X)
	require.Less(t, min.Y, max.Y)
	var hitX, hitY bool
	for _, v := range p.Outline() {
		assert.True(t, v.X >= min.X && v.X <= max.X && v.Y >= min.Y && v.Y <= max.Y, "%v outside bounds", v)
		hitX = hitX || v.X == min.X
		hitY = hitY || v.Y == max.Y
	}
	assert.True(t, hitX && hitY, "bounds not attained by outline")
	assert.InDelta(t, 2, min.X, 0.05)
}

func TestChain(t *testing.T) {
	c := naca()
	anchor := r2.Vec{X: 1, Y: 0.2}
	got := Chain(anchor, c)
	assert.InDelta(t, 1-c.Overlap(), got[FieldOffsetX], tol)
	assert.InDelta(t, 0.2+c.SlotGap(), got[FieldOffsetY], tol)
	// c is passed by value and must stay untouched.
	assert.Equal(t, 0.0, c[FieldOffsetX])
	assert.Equal(t, 0.0, c[FieldOffsetY])
}

func TestSuppressedAndDefined(t *testing.T) {
	c := naca()
	assert.False(t, c.Suppressed())
	assert.True(t, c.Defined())
	c[FieldScale] = 0
	assert.True(t, c.Suppressed())
	c[3] = math.NaN()
	assert.False(t, c.Defined())
}
