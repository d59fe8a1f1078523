package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"

	"github.com/abothula/lowpass/internal/raster"
)

// DefaultHexLen is the digest length recorded in reports: 16 hex chars,
// the full 64 bits of xxHash64.
const DefaultHexLen = 16

// ContentHash computes the xxHash64 of data and returns a hex string
// truncated to hexLen (0 keeps all 16 chars).
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes xxHash64 from a reader, streaming.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

// FileHash streams the file at path through xxHash64.
func FileHash(path string, hexLen int) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sum, err := ContentHashReader(f, hexLen)
	if err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return sum, nil
}

// PixelHash digests the samples of img independently of any file layout:
// width and height, then R, G, B bytes per pixel in row-major order.
// Two bitmaps with equal pixels but different padding or headers hash
// the same.
func PixelHash(img *raster.Image, hexLen int) string {
	h := xxhash.New()
	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(img.Width))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(img.Height))
	h.Write(dims[:])

	row := make([]byte, img.Width*3)
	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			row[x*3] = raster.Clamp8(img.R[y][x])
			row[x*3+1] = raster.Clamp8(img.G[y][x])
			row[x*3+2] = raster.Clamp8(img.B[y][x])
		}
		h.Write(row)
	}
	return format(h.Sum64(), hexLen)
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
