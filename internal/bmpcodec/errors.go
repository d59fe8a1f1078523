package bmpcodec

import "fmt"

// FormatError reports that the input is not a Windows bitmap.
type FormatError struct {
	Magic  uint16
	Reason string
}

func (e *FormatError) Error() string {
	if e.Reason != "" {
		return "bmp: invalid format: " + e.Reason
	}
	return fmt.Sprintf("bmp: invalid format: signature 0x%04x, want 0x%04x (\"BM\")", e.Magic, Magic)
}

// UnsupportedError reports a valid bitmap feature this codec does not handle.
type UnsupportedError string

func (e UnsupportedError) Error() string { return "bmp: unsupported feature: " + string(e) }

// TruncatedError reports that the input ended before a section was complete.
type TruncatedError struct {
	Section string
	Want    int
	Got     int
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("bmp: truncated %s: got %d of %d bytes", e.Section, e.Got, e.Want)
}

// DimensionError reports a width or height the codec refuses to handle.
type DimensionError struct {
	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
	Reason    string
}

func (e *DimensionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("bmp: bad dimensions %dx%d: %s", e.Width, e.Height, e.Reason)
	}
	return fmt.Sprintf("bmp: dimensions %dx%d exceed limit %dx%d",
		e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// OpenError reports a file that could not be opened or created.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string { return "bmp: open " + e.Path + ": " + e.Err.Error() }
func (e *OpenError) Unwrap() error { return e.Err }

// WriteError reports an output file that could not be completely written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return "bmp: write " + e.Path + ": " + e.Err.Error() }
func (e *WriteError) Unwrap() error { return e.Err }
