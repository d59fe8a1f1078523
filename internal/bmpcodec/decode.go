// Package bmpcodec reads and writes uncompressed 24-bit Windows bitmaps as
// three integer sample planes.
//
// Rows are kept in the order they are stored in the file. No bottom-up
// flip is applied, so for an ordinary bitmap (positive height) plane row 0
// is the bottom row of the picture.
package bmpcodec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/abothula/lowpass/internal/raster"
)

// maxPixelBytes caps the pixel array size when no Limits are set.
const maxPixelBytes = 1 << 30

// Limits bounds the image dimensions accepted by Decode.
// A zero field means that dimension is not bounded.
type Limits struct {
	MaxWidth  int
	MaxHeight int
}

func (l Limits) check(width, height int) error {
	if width <= 0 || height <= 0 {
		return &DimensionError{Width: width, Height: height, Reason: "width and height must be positive"}
	}
	if (l.MaxWidth > 0 && width > l.MaxWidth) || (l.MaxHeight > 0 && height > l.MaxHeight) {
		return &DimensionError{Width: width, Height: height, MaxWidth: l.MaxWidth, MaxHeight: l.MaxHeight}
	}
	if Stride(width) > maxPixelBytes/height {
		return &DimensionError{Width: width, Height: height, Reason: "pixel array too large"}
	}
	return nil
}

// ReadFile decodes the bitmap stored at path.
func ReadFile(path string, lim Limits) (*Header, *raster.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &OpenError{Path: path, Err: err}
	}
	defer f.Close()

	return Decode(bufio.NewReader(f), lim)
}

// Decode reads a bitmap from r and unpacks its pixel array into planes.
// The returned header can be passed back to Encode unchanged.
func Decode(r io.Reader, lim Limits) (*Header, *raster.Image, error) {
	h, err := DecodeHeader(r, lim)
	if err != nil {
		return nil, nil, err
	}

	width, height := h.Width(), h.Height()
	stride := h.Stride()

	data, err := readSection(r, "pixel data", stride*height)
	if err != nil {
		return nil, nil, err
	}

	img := raster.New(width, height)
	for row := 0; row < height; row++ {
		line := data[row*stride:]
		for col := 0; col < width; col++ {
			i := col * bytesPerPixel
			img.B[row][col] = int(line[i])
			img.G[row][col] = int(line[i+1])
			img.R[row][col] = int(line[i+2])
		}
	}
	return h, img, nil
}

// DecodeHeader reads and validates everything up to the pixel array, leaving
// r positioned at File.DataOffset.
func DecodeHeader(r io.Reader, lim Limits) (*Header, error) {
	sig, err := readSection(r, "signature", 2)
	if err != nil {
		return nil, err
	}
	h := &Header{Magic: binary.LittleEndian.Uint16(sig)}
	if h.Magic != Magic {
		return nil, &FormatError{Magic: h.Magic}
	}

	rest, err := readSection(r, "header", HeaderLen-2)
	if err != nil {
		return nil, err
	}
	br := bytes.NewReader(rest)
	// Reading fixed-size structs from a buffer of the exact length cannot fail.
	_ = binary.Read(br, binary.LittleEndian, &h.File)
	_ = binary.Read(br, binary.LittleEndian, &h.Info)

	if err := checkFormat(h); err != nil {
		return nil, err
	}
	if err := lim.check(h.Width(), h.Height()); err != nil {
		return nil, err
	}

	if h.File.DataOffset < HeaderLen {
		return nil, &FormatError{
			Magic:  h.Magic,
			Reason: fmt.Sprintf("pixel data offset %d lies inside the %d-byte header", h.File.DataOffset, HeaderLen),
		}
	}
	gap := int(h.File.DataOffset) - HeaderLen
	if gap > maxGap {
		return nil, UnsupportedError(fmt.Sprintf("%d bytes between header and pixel data", gap))
	}
	if gap > 0 {
		if h.Gap, err = readSection(r, "color table", gap); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func checkFormat(h *Header) error {
	if h.Info.BitCount != bitsPerPixel {
		return UnsupportedError(fmt.Sprintf("bit depth %d", h.Info.BitCount))
	}
	if h.Info.Compression != 0 {
		return UnsupportedError(fmt.Sprintf("compression method %d", h.Info.Compression))
	}
	return nil
}

func readSection(r io.Reader, section string, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	switch {
	case err == nil:
		return buf, nil
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return nil, &TruncatedError{Section: section, Want: n, Got: got}
	default:
		return nil, fmt.Errorf("bmp: read %s: %w", section, err)
	}
}

// IsInputError reports whether err means the input is not a bitmap this
// codec accepts, as opposed to an I/O failure.
func IsInputError(err error) bool {
	var (
		fe *FormatError
		te *TruncatedError
		de *DimensionError
		ue UnsupportedError
	)
	return errors.As(err, &fe) || errors.As(err, &te) || errors.As(err, &de) || errors.As(err, &ue)
}
