package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abothula/lowpass/internal/profile"
)

// profileFlags layers command-line overrides on top of a named profile.
type profileFlags struct {
	name         string
	maxWidth     int
	maxHeight    int
	preview      string
	previewWidth int
	quality      int
}

func (f *profileFlags) register(c *cobra.Command) {
	c.Flags().StringVarP(&f.name, "profile", "p", profile.DefaultName, "bounds profile (reference, standard, large)")
	c.Flags().IntVar(&f.maxWidth, "max-width", 0, "widest accepted input in pixels (0 = profile default, -1 = unbounded)")
	c.Flags().IntVar(&f.maxHeight, "max-height", 0, "tallest accepted input in pixels (0 = profile default, -1 = unbounded)")
	c.Flags().StringVar(&f.preview, "preview", "", "also write a preview: png, jpeg or bmp (\"none\" disables)")
	c.Flags().IntVar(&f.previewWidth, "preview-width", 0, "downscale previews to this width (0 = profile default)")
	c.Flags().IntVarP(&f.quality, "quality", "q", 0, "jpeg preview quality 1-100 (0 = profile default)")
}

func (f *profileFlags) resolve() profile.Profile {
	if !profile.Known(f.name) {
		logVerbose("unknown profile %q, using %s bounds", f.name, profile.DefaultName)
	}
	prof := profile.Get(f.name)

	switch {
	case f.maxWidth < 0:
		prof.MaxWidth = 0
	case f.maxWidth > 0:
		prof.MaxWidth = f.maxWidth
	}
	switch {
	case f.maxHeight < 0:
		prof.MaxHeight = 0
	case f.maxHeight > 0:
		prof.MaxHeight = f.maxHeight
	}

	switch f.preview {
	case "":
	case "none":
		prof.PreviewFormat = ""
	default:
		prof.PreviewFormat = f.preview
	}
	if f.previewWidth > 0 {
		prof.PreviewWidth = f.previewWidth
	}
	if f.quality > 0 {
		prof.Quality = f.quality
	}
	return prof
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func formatBound(v int) string {
	if v <= 0 {
		return "unbounded"
	}
	return fmt.Sprintf("%d", v)
}
