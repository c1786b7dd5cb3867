package render

import "io"

// NewSliceRenderer returns a Renderer that streams the argument triangles.
// The slice is not copied.
func NewSliceRenderer(model []Triangle3) Renderer {
	return &triangle3Buffer{buf: model}
}

type triangle3Buffer struct {
	buf []Triangle3
}

// ReadTriangles reads from this buffer. It returns io.EOF once the buffer is drained.
func (b *triangle3Buffer) ReadTriangles(t []Triangle3) (int, error) {
	if len(b.buf) == 0 {
		return 0, io.EOF
	}
	n := copy(t, b.buf)
	b.buf = b.buf[n:]
	return n, nil
}
