package render_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/multiwing/internal/d3"
	"github.com/soypat/multiwing/render"
	"gonum.org/v1/gonum/spatial/r3"
)

// tetrahedron returns a closed, outward facing tetrahedron.
func tetrahedron() []render.Triangle3 {
	a := r3.Vec{}
	b := r3.Vec{X: 1}
	c := r3.Vec{Y: 1}
	d := r3.Vec{Z: 1}
	return []render.Triangle3{
		{a, c, b},
		{a, b, d},
		{a, d, c},
		{b, c, d},
	}
}

func TestSTLCreateWriteRead(t *testing.T) {
	model := tetrahedron()
	path := filepath.Join(t.TempDir(), "tetra.stl")
	err := render.CreateSTL(path, render.NewSliceRenderer(model))
	if err != nil {
		t.Fatal(err)
	}
	bfile, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var b bytes.Buffer
	err = render.WriteSTL(&b, model)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != len(bfile) {
		t.Fatalf("WriteSTL and CreateSTL output length mismatch: %d != %d", b.Len(), len(bfile))
	}
	if !bytes.Equal(b.Bytes(), bfile) {
		t.Fatal("WriteSTL and CreateSTL output mismatch")
	}
}

func TestSTLWriteReadback(t *testing.T) {
	const tol = 1e-6
	input := tetrahedron()
	var b bytes.Buffer
	err := render.WriteSTL(&b, input)
	if err != nil {
		t.Fatal(err)
	}
	if b.Len() != 84+50*len(input) {
		t.Fatalf("unexpected STL size %d", b.Len())
	}
	output, err := render.ReadSTL(&b)
	if err != nil && !errors.Is(err, render.ErrNormalMismatch) {
		t.Fatal(err)
	}
	if len(output) != len(input) {
		t.Fatal("length of triangles written/read not equal")
	}
	for iface, expect := range input {
		got := output[iface]
		if got.Degenerate(1e-12) {
			t.Fatalf("triangle degenerate: %+v", got)
		}
		for i := range expect {
			if !d3.EqualWithin(got[i], expect[i], tol) {
				t.Errorf("%dth triangle equality out of tolerance. got vertex %0.5g, want %0.5g", iface, got[i], expect[i])
			}
		}
	}
}

func TestSTLEmpty(t *testing.T) {
	var b bytes.Buffer
	if err := render.WriteSTL(&b, nil); err == nil {
		t.Error("expected error writing empty model")
	}
	path := filepath.Join(t.TempDir(), "empty.stl")
	if err := render.CreateSTL(path, render.NewSliceRenderer(nil)); err == nil {
		t.Error("expected error creating empty model")
	}
	if _, err := render.ReadSTL(bytes.NewReader(make([]byte, 84))); err == nil {
		t.Error("expected error reading zero triangle header")
	}
}

func TestVolumeAndBounds(t *testing.T) {
	model := tetrahedron()
	if v := render.Volume(model); v < 1./6-1e-12 || v > 1./6+1e-12 {
		t.Errorf("tetrahedron volume got %g, want 1/6", v)
	}
	bb := render.Bounds(model)
	want := d3.Box{Min: r3.Vec{}, Max: d3.Elem(1)}
	if !bb.Equals(want, 0) {
		t.Errorf("bounds got %+v, want %+v", bb, want)
	}
	for _, tri := range model {
		if n := tri.Normal(); r3.Norm(n) < 1-1e-12 {
			t.Errorf("normal not unit: %v", n)
		}
	}
}

func TestPreviewPNG(t *testing.T) {
	dir := t.TempDir()
	stlPath := filepath.Join(dir, "tetra.stl")
	pngPath := filepath.Join(dir, "tetra.png")
	if err := render.CreateSTL(stlPath, render.NewSliceRenderer(tetrahedron())); err != nil {
		t.Fatal(err)
	}
	view := render.DefaultView()
	view.Width, view.Height, view.Scale = 160, 90, 1
	if err := render.PreviewPNG(stlPath, pngPath, view); err != nil {
		t.Fatal(err)
	}
	fi, err := os.Stat(pngPath)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Size() == 0 {
		t.Error("empty PNG")
	}
}
