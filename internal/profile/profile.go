package profile

import "github.com/abothula/lowpass/internal/bmpcodec"

// DefaultName is the profile used when none is requested.
const DefaultName = "reference"

// Profile bundles the dimension bounds and preview settings for a run.
type Profile struct {
	Name          string
	MaxWidth      int    // widest accepted input, 0 = unbounded
	MaxHeight     int    // tallest accepted input, 0 = unbounded
	PreviewFormat string // "", "png", "jpeg" or "bmp"
	PreviewWidth  int    // preview is downscaled to this width, 0 = full size
	Quality       int    // preview quality 1-100 (jpeg only)
}

// Built-in profiles.
var profiles = map[string]Profile{
	// Matches the classic fixed 256×256 working buffers.
	"reference": {
		Name:      "reference",
		MaxWidth:  256,
		MaxHeight: 256,
	},
	"standard": {
		Name:          "standard",
		MaxWidth:      4096,
		MaxHeight:     4096,
		PreviewFormat: "png",
		PreviewWidth:  320,
	},
	"large": {
		Name:          "large",
		MaxWidth:      16384,
		MaxHeight:     16384,
		PreviewFormat: "jpeg",
		PreviewWidth:  640,
		Quality:       82,
	},
}

// Get returns a profile by name. Falls back to reference if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Known reports whether name is a built-in profile.
func Known(name string) bool {
	_, ok := profiles[name]
	return ok
}

// Limits returns the codec bounds of the profile.
func (p Profile) Limits() bmpcodec.Limits {
	return bmpcodec.Limits{MaxWidth: p.MaxWidth, MaxHeight: p.MaxHeight}
}

// PreviewSize returns the preview dimensions for an image of the given
// size, keeping the aspect ratio and never upscaling.
func (p Profile) PreviewSize(width, height int) (int, int) {
	if p.PreviewWidth <= 0 || p.PreviewWidth >= width {
		return width, height
	}
	h := int(float64(height) * float64(p.PreviewWidth) / float64(width))
	if h < 1 {
		h = 1
	}
	return p.PreviewWidth, h
}
