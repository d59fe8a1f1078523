package bmpcodec

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/abothula/lowpass/internal/raster"
)

// Encode writes h followed by the pixels of img. The header is written
// verbatim; it must describe a 24-bit uncompressed image of img's size.
func Encode(w io.Writer, h *Header, img *raster.Image) error {
	if err := checkEncodable(h, img); err != nil {
		return err
	}

	for _, part := range []any{h.Magic, &h.File, &h.Info} {
		if err := binary.Write(w, binary.LittleEndian, part); err != nil {
			return fmt.Errorf("bmp: write header: %w", err)
		}
	}
	if len(h.Gap) > 0 {
		if _, err := w.Write(h.Gap); err != nil {
			return fmt.Errorf("bmp: write color table: %w", err)
		}
	}

	if _, err := w.Write(pack(img)); err != nil {
		return fmt.Errorf("bmp: write pixel data: %w", err)
	}
	return nil
}

// pack lays out img as rows of B, G, R triples padded with zeros to the stride.
func pack(img *raster.Image) []byte {
	stride := Stride(img.Width)
	data := make([]byte, stride*img.Height)
	for row := 0; row < img.Height; row++ {
		line := data[row*stride:]
		for col := 0; col < img.Width; col++ {
			i := col * bytesPerPixel
			line[i] = raster.Clamp8(img.B[row][col])
			line[i+1] = raster.Clamp8(img.G[row][col])
			line[i+2] = raster.Clamp8(img.R[row][col])
		}
	}
	return data
}

func checkEncodable(h *Header, img *raster.Image) error {
	if h.Magic != Magic {
		return &FormatError{Magic: h.Magic}
	}
	if err := checkFormat(h); err != nil {
		return err
	}
	if err := (Limits{}).check(h.Width(), h.Height()); err != nil {
		return err
	}
	if h.Width() != img.Width || h.Height() != img.Height {
		return &DimensionError{
			Width:  img.Width,
			Height: img.Height,
			Reason: fmt.Sprintf("header describes %dx%d", h.Width(), h.Height()),
		}
	}
	for _, p := range []raster.Plane{img.R, img.G, img.B} {
		if len(p) != img.Height || len(p[0]) != img.Width {
			return &DimensionError{Width: img.Width, Height: img.Height, Reason: "plane size does not match image"}
		}
	}
	if want := uint32(HeaderLen + len(h.Gap)); h.File.DataOffset != want {
		return &FormatError{
			Magic:  h.Magic,
			Reason: fmt.Sprintf("pixel data offset %d, header and color table end at %d", h.File.DataOffset, want),
		}
	}
	return nil
}

// WriteFile encodes to a temporary file next to path and renames it into
// place once everything has been written. On failure path is left as it
// was and the temporary file is removed.
func WriteFile(path string, h *Header, img *raster.Image) (err error) {
	if err := checkEncodable(h, img); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	bw := bufio.NewWriter(tmp)
	if err = Encode(bw, h, img); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err = bw.Flush(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err = tmp.Chmod(0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err = tmp.Close(); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}
