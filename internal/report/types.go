package report

// Report is the JSON record of a lowpass run.
type Report struct {
	Version     int              `json:"version"`
	GeneratedAt string           `json:"generated_at"`
	Profile     string           `json:"profile"`
	BasePath    string           `json:"base_path"`
	BuildInfo   *BuildInfo       `json:"build_info,omitempty"`
	Files       map[string]Entry `json:"files"`
	Stats       Stats            `json:"stats"`
}

// BuildInfo captures run parameters for diagnostics.
type BuildInfo struct {
	Workers   int `json:"workers"`
	MaxWidth  int `json:"max_width"`
	MaxHeight int `json:"max_height"`
}

// Entry describes one filtered bitmap.
type Entry struct {
	Input   InputInfo    `json:"input"`
	Output  OutputInfo   `json:"output"`
	Preview *PreviewInfo `json:"preview,omitempty"`
}

// InputInfo holds metadata about the source bitmap.
type InputInfo struct {
	Path       string `json:"path"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Stride     int    `json:"stride"`      // padded bytes per row
	DataOffset uint32 `json:"data_offset"` // pixel array offset
	Size       int64  `json:"size"`        // bytes on disk
	PixelHash  string `json:"pixel_hash"`  // xxhash64 of decoded samples
}

// OutputInfo holds metadata about the filtered bitmap.
type OutputInfo struct {
	Path      string `json:"path"`       // relative to base_path
	Size      int64  `json:"size"`       // bytes on disk
	Hash      string `json:"hash"`       // xxhash64 of the file
	PixelHash string `json:"pixel_hash"` // xxhash64 of filtered samples
}

// PreviewInfo describes an optional downscaled preview of the output.
type PreviewInfo struct {
	Format string `json:"format"` // "png", "jpeg", "bmp"
	Path   string `json:"path"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Size   int64  `json:"size"`
}

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalFiles       int   `json:"total_files"`
	TotalPixels      int64 `json:"total_pixels"`
	TotalPreviews    int   `json:"total_previews"`
	Failed           int   `json:"failed,omitempty"` // inputs that could not be filtered
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
