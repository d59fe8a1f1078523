package encoder

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/abothula/lowpass/internal/raster"
)

// Preview renders img upright at width×height. The planes hold rows in
// bitmap file order (bottom row first), so the picture is flipped before
// scaling.
func Preview(img *raster.Image, width, height int) *image.NRGBA {
	upright := imaging.FlipV(img.NRGBA())
	if width == img.Width && height == img.Height {
		return upright
	}
	return imaging.Resize(upright, width, height, imaging.Lanczos)
}
