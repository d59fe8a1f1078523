package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/abothula/lowpass/internal/bmpcodec"
	"github.com/abothula/lowpass/internal/hasher"
)

// Validate checks r against the files under baseDir and returns one
// message per problem found, in a stable order.
func Validate(r *Report, baseDir string) []string {
	var errs []string

	if r.Version != SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	keys := make([]string, 0, len(r.Files))
	for key := range r.Files {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	seenPaths := map[string]bool{}
	var previews int
	for _, key := range keys {
		e := r.Files[key]
		in := e.Input

		if in.Width <= 0 || in.Height <= 0 {
			errs = append(errs, fmt.Sprintf("file %q: invalid dimensions %dx%d", key, in.Width, in.Height))
		} else if in.Stride != bmpcodec.Stride(in.Width) {
			errs = append(errs, fmt.Sprintf("file %q: stride %d, want %d for width %d",
				key, in.Stride, bmpcodec.Stride(in.Width), in.Width))
		}
		if in.PixelHash == "" || e.Output.PixelHash == "" {
			errs = append(errs, fmt.Sprintf("file %q: missing pixel hash", key))
		}
		if e.Output.Hash == "" {
			errs = append(errs, fmt.Sprintf("file %q: missing output hash", key))
		}

		if e.Output.Path == "" {
			errs = append(errs, fmt.Sprintf("file %q: missing output path", key))
			continue
		}
		if seenPaths[e.Output.Path] {
			errs = append(errs, fmt.Sprintf("file %q: duplicate output path %q", key, e.Output.Path))
		}
		seenPaths[e.Output.Path] = true

		errs = append(errs, checkFile(key, "output", filepath.Join(baseDir, e.Output.Path), e.Output.Size, e.Output.Hash)...)
		if e.Preview != nil {
			previews++
			errs = append(errs, checkFile(key, "preview", filepath.Join(baseDir, e.Preview.Path), e.Preview.Size, "")...)
		}
	}

	if r.Stats.TotalFiles != len(r.Files) {
		errs = append(errs, fmt.Sprintf("stats.total_files mismatch: %d != %d", r.Stats.TotalFiles, len(r.Files)))
	}
	if r.Stats.TotalPreviews != previews {
		errs = append(errs, fmt.Sprintf("stats.total_previews mismatch: %d != %d", r.Stats.TotalPreviews, previews))
	}
	return errs
}

func checkFile(key, kind, path string, size int64, hash string) []string {
	info, err := os.Stat(path)
	if err != nil {
		return []string{fmt.Sprintf("file %q: %s not found: %s", key, kind, path)}
	}
	if size > 0 && info.Size() != size {
		return []string{fmt.Sprintf("file %q: %s size mismatch: report=%d, disk=%d", key, kind, size, info.Size())}
	}
	if hash == "" {
		return nil
	}
	got, err := hasher.FileHash(path, len(hash))
	if err != nil {
		return []string{fmt.Sprintf("file %q: %s unreadable: %v", key, kind, err)}
	}
	if got != hash {
		return []string{fmt.Sprintf("file %q: %s hash mismatch: report=%s, disk=%s", key, kind, hash, got)}
	}
	return nil
}
