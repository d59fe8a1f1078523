package bmpcodec

// Magic is "BM" read as a little-endian uint16.
const Magic uint16 = 0x4D42

const (
	fileHeaderLen = 14
	infoHeaderLen = 40

	// HeaderLen is the size of the magic, file header and info header.
	HeaderLen = fileHeaderLen + infoHeaderLen

	bitsPerPixel  = 24
	bytesPerPixel = bitsPerPixel / 8

	// maxGap bounds the bytes kept between the header and the pixel data.
	maxGap = 1 << 20
)

// FileHeader is the part of BITMAPFILEHEADER that follows the magic.
type FileHeader struct {
	Size       uint32 // size of the whole file in bytes
	Reserved1  uint16
	Reserved2  uint16
	DataOffset uint32 // offset of the pixel array from the start of the file
}

// InfoHeader is the 40-byte BITMAPINFOHEADER.
type InfoHeader struct {
	Size            uint32
	Width           int32
	Height          int32
	Planes          uint16
	BitCount        uint16
	Compression     uint32
	ImageSize       uint32
	XPixelsPerM     int32
	YPixelsPerM     int32
	ColorsUsed      uint32
	ColorsImportant uint32
}

// Header is everything in a bitmap file ahead of the pixel array.
type Header struct {
	Magic uint16
	File  FileHeader
	Info  InfoHeader

	// Gap holds the bytes between the end of the info header and
	// File.DataOffset (color table, extended info header fields). They are
	// not interpreted, only carried through to Encode.
	Gap []byte
}

// Width returns the image width in pixels.
func (h *Header) Width() int { return int(h.Info.Width) }

// Height returns the image height in pixels.
func (h *Header) Height() int { return int(h.Info.Height) }

// Stride returns the padded row length of the image in bytes.
func (h *Header) Stride() int { return Stride(h.Width()) }

// PixelBytes returns stride × height.
func (h *Header) PixelBytes() int { return h.Stride() * h.Height() }

// Stride returns the number of bytes a 24-bit row occupies on disk:
// 3*width rounded up to a multiple of four.
func Stride(width int) int {
	return ((width*bytesPerPixel + 3) / 4) * 4
}

// Padding returns the number of zero bytes appended to each row.
func Padding(width int) int {
	return Stride(width) - width*bytesPerPixel
}

// NewHeader returns a canonical header for an uncompressed 24-bit image
// with the pixel data directly after the header.
func NewHeader(width, height int) *Header {
	imageSize := uint32(Stride(width) * height)
	return &Header{
		Magic: Magic,
		File: FileHeader{
			Size:       HeaderLen + imageSize,
			DataOffset: HeaderLen,
		},
		Info: InfoHeader{
			Size:        infoHeaderLen,
			Width:       int32(width),
			Height:      int32(height),
			Planes:      1,
			BitCount:    bitsPerPixel,
			ImageSize:   imageSize,
			XPixelsPerM: 2835,
			YPixelsPerM: 2835,
		},
	}
}
