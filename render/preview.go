package render

import (
	"github.com/fogleman/fauxgl"
	"github.com/nfnt/resize"
	"gonum.org/v1/gonum/spatial/r3"
)

// View configures the camera used by PreviewPNG. The model is fit
// into a bi-unit cube centered at the origin before rendering, so
// camera positions are in those units.
type View struct {
	Eye    r3.Vec // camera position
	LookAt r3.Vec // view center position
	Up     r3.Vec
	Near   float64
	Far    float64
	// Output image size in pixels.
	Width, Height int
	// Supersampling factor for antialiasing. Values below 1 are taken as 1.
	Scale int
}

// DefaultView looks at the model from above the trailing edge, outboard of the tip.
func DefaultView() View {
	return View{
		Eye:    r3.Vec{X: 2.5, Y: 2, Z: 3},
		Up:     r3.Vec{Y: 1},
		Near:   1,
		Far:    10,
		Width:  1280,
		Height: 720,
		Scale:  2,
	}
}

// PreviewPNG renders the STL file at stlPath with a phong shader
// and saves the image as a PNG file at pngPath.
func PreviewPNG(stlPath, pngPath string, view View) error {
	mesh, err := fauxgl.LoadSTL(stlPath)
	if err != nil {
		return err
	}
	const fovy = 30 // vertical field of view in degrees
	scale := view.Scale
	if scale < 1 {
		scale = 1
	}
	var (
		eye    = fauxgl.V(view.Eye.X, view.Eye.Y, view.Eye.Z)
		center = fauxgl.V(view.LookAt.X, view.LookAt.Y, view.LookAt.Z)
		up     = fauxgl.V(view.Up.X, view.Up.Y, view.Up.Z)
		light  = fauxgl.V(-0.75, 1, 0.25).Normalize()
		color  = fauxgl.HexColor("#468966")
	)
	mesh.BiUnitCube()
	context := fauxgl.NewContext(view.Width*scale, view.Height*scale)
	context.ClearColorBufferWith(fauxgl.HexColor("#FFF8E3"))
	aspect := float64(view.Width) / float64(view.Height)
	matrix := fauxgl.LookAt(eye, center, up).Perspective(fovy, aspect, view.Near, view.Far)
	shader := fauxgl.NewPhongShader(matrix, light, eye)
	shader.ObjectColor = color
	context.Shader = shader
	context.DrawMesh(mesh)
	// downsample image for antialiasing
	image := context.Image()
	image = resize.Resize(uint(view.Width), uint(view.Height), image, resize.Bilinear)
	return fauxgl.SavePNG(pngPath, image)
}
