package encoder

import (
	"image"
)

// Encoder encodes a preview image to a specific format.
type Encoder interface {
	// Format returns the output format name (e.g. "png", "jpeg", "bmp").
	Format() string

	// Encode converts the image to bytes at the given quality (1-100).
	// Lossless encoders ignore quality.
	Encode(img image.Image, quality int) ([]byte, error)

	// Available returns true if the encoder is ready to use.
	Available() bool

	// Extension returns the file extension without dot.
	Extension() string
}
