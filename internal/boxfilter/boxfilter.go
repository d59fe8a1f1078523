// Package boxfilter implements a 3×3 unweighted mean (box blur).
package boxfilter

import "github.com/abothula/lowpass/internal/raster"

// Apply blurs each channel of src into a new image. src is not modified.
func Apply(src *raster.Image) *raster.Image {
	return &raster.Image{
		Width:  src.Width,
		Height: src.Height,
		R:      ApplyPlane(src.R, src.Width, src.Height),
		G:      ApplyPlane(src.G, src.Width, src.Height),
		B:      ApplyPlane(src.B, src.Width, src.Height),
	}
}

// ApplyPlane returns a new plane in which every interior sample is the
// truncated mean of its 3×3 neighbourhood. The outermost ring of rows and
// columns has no full neighbourhood and stays zero; there is no edge
// extension. Planes narrower or shorter than 3 come back all zero.
func ApplyPlane(p raster.Plane, width, height int) raster.Plane {
	out := raster.NewPlane(width, height)
	for row := 1; row < height-1; row++ {
		above, here, below := p[row-1], p[row], p[row+1]
		for col := 1; col < width-1; col++ {
			sum := above[col-1] + above[col] + above[col+1] +
				here[col-1] + here[col] + here[col+1] +
				below[col-1] + below[col] + below[col+1]
			out[row][col] = sum / 9
		}
	}
	return out
}
