// Package diagram draws wing cross-sections and spanwise control
// distributions with gonum/plot.
package diagram

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/soypat/multiwing/airfoil"
	"github.com/soypat/multiwing/span"
	"github.com/soypat/multiwing/wing"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("diagram: nothing to plot")

// Image size of saved diagrams.
var (
	Width  = 8 * vg.Inch
	Height = 6 * vg.Inch
)

// SectionPlot draws the outline of every present element of s and saves
// it to path. The image format is chosen by the file extension.
func SectionPlot(s wing.Section, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Wing section z=%.4g", s.Z)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	drawn := 0
	var lo, hi r2.Vec
	for i, cell := range s.Cells {
		if !cell.Present() {
			continue
		}
		min, max := cell.Profile().Bounds()
		if drawn == 0 {
			lo, hi = min, max
		} else {
			lo = r2.Vec{X: math.Min(lo.X, min.X), Y: math.Min(lo.Y, min.Y)}
			hi = r2.Vec{X: math.Max(hi.X, max.X), Y: math.Max(hi.Y, max.Y)}
		}
		outline := cell.Profile().Outline()
		pts := make(plotter.XYs, len(outline)+1)
		for k, v := range outline {
			pts[k] = plotter.XY{X: v.X, Y: v.Y}
		}
		pts[len(outline)] = pts[0]
		l, err := plotter.NewLine(pts)
		if err != nil {
			return fmt.Errorf("element %d: %w", i+1, err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = plotutil.Color(i)
		p.Add(l)
		p.Legend.Add(fmt.Sprintf("element %d", i+1), l)
		drawn++
	}
	if drawn == 0 {
		return fmt.Errorf("section z=%g: %w", s.Z, ErrNoData)
	}
	// Equal axis extents so the outlines are not distorted.
	half := math.Max(hi.X-lo.X, hi.Y-lo.Y)/2 + 0.05
	cx, cy := (lo.X+hi.X)/2, (lo.Y+hi.Y)/2
	p.X.Min, p.X.Max = cx-half, cx+half
	p.Y.Min, p.Y.Max = cy-half, cy+half
	return save(p, path)
}

// SpanPlot draws quantity q of every enabled element sampled at n span
// fractions in [0,1]. Undefined stretches leave gaps in the lines.
func SpanPlot(g *span.Grid, q int, n int, path string) error {
	if q < 0 || q >= airfoil.NumFields {
		return fmt.Errorf("diagram: quantity index %d out of range", q)
	}
	if n < 2 {
		return fmt.Errorf("diagram: need at least 2 samples, got %d", n)
	}
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Spanwise %s", airfoil.Names[q])
	p.X.Label.Text = "span fraction"
	p.Y.Label.Text = airfoil.Names[q]
	p.Add(plotter.NewGrid())

	zs := floats.Span(make([]float64, n), 0, 1)
	drawn := 0
	for i := 0; i < g.Elements(); i++ {
		in := g.Interpolator(i, q)
		if in == nil {
			continue
		}
		pts := make(plotter.XYs, n)
		for k, z := range zs {
			pts[k] = plotter.XY{X: z, Y: in.At(z)}
		}
		for j, seg := range segments(pts) {
			l, err := plotter.NewLine(seg)
			if err != nil {
				return fmt.Errorf("element %d: %w", i+1, err)
			}
			l.LineStyle.Width = vg.Points(1.5)
			l.LineStyle.Color = plotutil.Color(i)
			p.Add(l)
			if j == 0 {
				p.Legend.Add(fmt.Sprintf("element %d", i+1), l)
			}
			drawn++
		}
	}
	if drawn == 0 {
		return fmt.Errorf("quantity %s: %w", airfoil.Names[q], ErrNoData)
	}
	return save(p, path)
}

// QuantityIndex returns the chromosome field index of a quantity name.
func QuantityIndex(name string) (int, error) {
	for i, n := range airfoil.Names {
		if n == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("diagram: unknown quantity %q", name)
}

// segments splits pts at undefined values. Isolated defined points are
// kept as single point segments.
func segments(pts plotter.XYs) []plotter.XYs {
	var segs []plotter.XYs
	start := -1
	for i, pt := range pts {
		if math.IsNaN(pt.Y) {
			if start >= 0 {
				segs = append(segs, pts[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		segs = append(segs, pts[start:])
	}
	return segs
}

func save(p *plot.Plot, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return p.Save(Width, Height, path)
}
