package kernel

import (
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/spatial/r3"
)

// Op identifies a kernel request.
type Op int

const (
	OpAddCurve Op = iota
	OpLoft
	OpExtrude
	OpFuse
	OpCut
	OpDilate
	OpExport
)

func (op Op) String() string {
	switch op {
	case OpAddCurve:
		return "add-curve"
	case OpLoft:
		return "loft"
	case OpExtrude:
		return "extrude"
	case OpFuse:
		return "fuse"
	case OpCut:
		return "cut"
	case OpDilate:
		return "dilate"
	case OpExport:
		return "export"
	}
	return fmt.Sprintf("Op(%d)", int(op))
}

// Request is one call recorded by a Recorder.
type Request struct {
	Op     Op
	Points int     // points in the curve or profile
	Curves []Curve // loft inputs
	Solids []Solid // fuse, cut, dilate and export inputs
	Vector r3.Vec  // extrusion direction
	Factor float64 // dilation factor
	Path   string  // export path
	Result int     // handle returned, -1 if none
}

// Recorder is a Kernel that builds no geometry. It records every request
// so callers can inspect what a generation pass would build.
type Recorder struct {
	Requests []Request
	curves   [][]r3.Vec
	nsolids  int
}

var _ Kernel = (*Recorder)(nil)

func (r *Recorder) AddCurve(points []r3.Vec) (Curve, error) {
	if len(points) < 2 {
		return -1, ErrDegenerate
	}
	pts := make([]r3.Vec, len(points))
	copy(pts, points)
	r.curves = append(r.curves, pts)
	c := Curve(len(r.curves) - 1)
	r.record(Request{Op: OpAddCurve, Points: len(points), Result: int(c)})
	return c, nil
}

func (r *Recorder) Loft(curves []Curve) (Solid, error) {
	if len(curves) < 2 {
		return -1, ErrDegenerate
	}
	for _, c := range curves {
		if c < 0 || int(c) >= len(r.curves) {
			return -1, ErrBadHandle
		}
	}
	s := r.newSolid()
	r.record(Request{Op: OpLoft, Curves: append([]Curve(nil), curves...), Result: int(s)})
	return s, nil
}

func (r *Recorder) Extrude(profile []r3.Vec, dir r3.Vec) (Solid, error) {
	if len(profile) < 3 || dir == (r3.Vec{}) {
		return -1, ErrDegenerate
	}
	s := r.newSolid()
	r.record(Request{Op: OpExtrude, Points: len(profile), Vector: dir, Result: int(s)})
	return s, nil
}

func (r *Recorder) Fuse(solids []Solid) (Solid, error) {
	if err := r.check(solids...); err != nil {
		return -1, err
	}
	s := r.newSolid()
	r.record(Request{Op: OpFuse, Solids: append([]Solid(nil), solids...), Result: int(s)})
	return s, nil
}

func (r *Recorder) Cut(object, tool Solid) (Solid, error) {
	if err := r.check(object, tool); err != nil {
		return -1, err
	}
	s := r.newSolid()
	r.record(Request{Op: OpCut, Solids: []Solid{object, tool}, Result: int(s)})
	return s, nil
}

func (r *Recorder) Dilate(s Solid, factor float64) error {
	if err := r.check(s); err != nil {
		return err
	}
	r.record(Request{Op: OpDilate, Solids: []Solid{s}, Factor: factor, Result: -1})
	return nil
}

// Export writes the request listing to path.
func (r *Recorder) Export(path string, s Solid) error {
	if err := r.check(s); err != nil {
		return err
	}
	r.record(Request{Op: OpExport, Solids: []Solid{s}, Path: path, Result: -1})
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	if _, err = r.WriteTo(fp); err != nil {
		return err
	}
	return fp.Close()
}

// CurvePoints returns the points registered for curve c.
func (r *Recorder) CurvePoints(c Curve) []r3.Vec {
	return r.curves[c]
}

// Count returns the number of recorded requests of kind op.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, req := range r.Requests {
		if req.Op == op {
			n++
		}
	}
	return n
}

// WriteTo writes a human readable listing of the recorded requests.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for i, req := range r.Requests {
		var n int
		var err error
		switch req.Op {
		case OpAddCurve:
			n, err = fmt.Fprintf(w, "%4d %-9s points=%d -> curve %d\n", i, req.Op, req.Points, req.Result)
		case OpLoft:
			n, err = fmt.Fprintf(w, "%4d %-9s curves=%v -> solid %d\n", i, req.Op, req.Curves, req.Result)
		case OpExtrude:
			n, err = fmt.Fprintf(w, "%4d %-9s points=%d dir=%v -> solid %d\n", i, req.Op, req.Points, req.Vector, req.Result)
		case OpFuse, OpCut:
			n, err = fmt.Fprintf(w, "%4d %-9s solids=%v -> solid %d\n", i, req.Op, req.Solids, req.Result)
		case OpDilate:
			n, err = fmt.Fprintf(w, "%4d %-9s solid=%d factor=%g\n", i, req.Op, req.Solids[0], req.Factor)
		case OpExport:
			n, err = fmt.Fprintf(w, "%4d %-9s solid=%d path=%q\n", i, req.Op, req.Solids[0], req.Path)
		}
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (r *Recorder) newSolid() Solid {
	r.nsolids++
	return Solid(r.nsolids - 1)
}

func (r *Recorder) check(solids ...Solid) error {
	for _, s := range solids {
		if s < 0 || int(s) >= r.nsolids {
			return ErrBadHandle
		}
	}
	return nil
}

func (r *Recorder) record(req Request) {
	r.Requests = append(r.Requests, req)
}
