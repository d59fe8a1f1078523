package raster

import (
	"image"
	"image/color"
)

// Plane is a single-channel grid of samples indexed [row][col].
// Samples are nominally 0-255 but are stored as int so that callers can
// accumulate neighbourhood sums without overflow.
type Plane [][]int

// NewPlane allocates a zeroed plane of the given size.
func NewPlane(width, height int) Plane {
	backing := make([]int, width*height)
	p := make(Plane, height)
	for row := range p {
		p[row] = backing[row*width : (row+1)*width : (row+1)*width]
	}
	return p
}

// Clone returns a deep copy of p.
func (p Plane) Clone() Plane {
	if len(p) == 0 {
		return Plane{}
	}
	out := NewPlane(len(p[0]), len(p))
	for row := range p {
		copy(out[row], p[row])
	}
	return out
}

// Image is three equally sized planes. Row 0 is the first row stored in
// the bitmap file, which for a bottom-up bitmap is the bottom of the picture.
type Image struct {
	Width  int
	Height int
	R      Plane
	G      Plane
	B      Plane
}

// New allocates a zeroed image.
func New(width, height int) *Image {
	return &Image{
		Width:  width,
		Height: height,
		R:      NewPlane(width, height),
		G:      NewPlane(width, height),
		B:      NewPlane(width, height),
	}
}

// Fill sets every pixel to the same color.
func (m *Image) Fill(r, g, b int) {
	for row := 0; row < m.Height; row++ {
		for col := 0; col < m.Width; col++ {
			m.R[row][col] = r
			m.G[row][col] = g
			m.B[row][col] = b
		}
	}
}

// Set writes one pixel.
func (m *Image) Set(row, col, r, g, b int) {
	m.R[row][col] = r
	m.G[row][col] = g
	m.B[row][col] = b
}

// At returns the samples of one pixel.
func (m *Image) At(row, col int) (r, g, b int) {
	return m.R[row][col], m.G[row][col], m.B[row][col]
}

// Clone returns a deep copy of m.
func (m *Image) Clone() *Image {
	return &Image{
		Width:  m.Width,
		Height: m.Height,
		R:      m.R.Clone(),
		G:      m.G.Clone(),
		B:      m.B.Clone(),
	}
}

// NRGBA converts the planes into an opaque image in storage order
// (row 0 at the top). Samples outside 0-255 are clamped.
func (m *Image) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: Clamp8(m.R[y][x]),
				G: Clamp8(m.G[y][x]),
				B: Clamp8(m.B[y][x]),
				A: 255,
			})
		}
	}
	return img
}

// Clamp8 saturates v into a byte.
func Clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
