package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/zstd"
)

// New creates an empty report with defaults.
func New(profileName string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:     profileName,
		BasePath:    "./",
		Files:       make(map[string]Entry),
	}
}

// ComputeStats recalculates aggregate statistics from entries. Failed is
// not derived from entries and is kept as is.
func (r *Report) ComputeStats() {
	s := Stats{Failed: r.Stats.Failed}
	s.TotalFiles = len(r.Files)
	for _, e := range r.Files {
		s.TotalInputBytes += e.Input.Size
		s.TotalOutputBytes += e.Output.Size
		s.TotalPixels += int64(e.Input.Width) * int64(e.Input.Height)
		if e.Preview != nil {
			s.TotalPreviews++
		}
	}
	r.Stats = s
}

// Compressed reports whether path names a zstd-compressed report.
func Compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// WriteJSON serializes the report to path with stable ordering. Paths
// ending in .zst are zstd-compressed.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if Compressed(path) {
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return fmt.Errorf("zstd encode: %w", err)
		}
		data = enc.EncodeAll(data, nil)
		enc.Close()
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile loads a report written by WriteJSON.
func ReadFile(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	return Parse(data)
}

// Parse decodes a report, decompressing it first when it starts with the
// zstd frame magic.
func Parse(data []byte) (*Report, error) {
	if bytes.HasPrefix(data, zstdMagic) {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
		defer dec.Close()
		if data, err = dec.DecodeAll(data, nil); err != nil {
			return nil, fmt.Errorf("zstd decode: %w", err)
		}
	}

	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	if r.Files == nil {
		r.Files = make(map[string]Entry)
	}
	return &r, nil
}

var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
