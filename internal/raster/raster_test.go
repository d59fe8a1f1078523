package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlaneZeroed(t *testing.T) {
	p := NewPlane(5, 3)
	require.Len(t, p, 3)
	for _, row := range p {
		require.Len(t, row, 5)
		for _, v := range row {
			assert.Zero(t, v)
		}
	}
}

func TestPlaneRowsDoNotOverlap(t *testing.T) {
	p := NewPlane(4, 2)
	p[0] = append(p[0], 99) // capped rows must reallocate, not spill into row 1
	assert.Equal(t, 0, p[1][0])
}

func TestCloneIsIndependent(t *testing.T) {
	m := New(3, 3)
	m.Fill(10, 20, 30)
	c := m.Clone()
	c.Set(1, 1, 0, 0, 0)

	r, g, b := m.At(1, 1)
	assert.Equal(t, []int{10, 20, 30}, []int{r, g, b})
	r, g, b = c.At(1, 1)
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

func TestNRGBA(t *testing.T) {
	m := New(2, 2)
	m.Set(0, 1, 300, -4, 128)

	img := m.NRGBA()
	require.Equal(t, 2, img.Bounds().Dx())
	c := img.NRGBAAt(1, 0)
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
	assert.Equal(t, uint8(128), c.B)
	assert.Equal(t, uint8(255), c.A)
}

func TestClamp8(t *testing.T) {
	cases := map[int]uint8{-1: 0, 0: 0, 17: 17, 255: 255, 256: 255}
	for in, want := range cases {
		assert.Equal(t, want, Clamp8(in), "Clamp8(%d)", in)
	}
}
