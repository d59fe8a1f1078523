package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abothula/lowpass/internal/bmpcodec"
)

// Source represents a discovered bitmap file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input directory.
	RelPath string
	// Key is the report key (relpath without extension, forward slashes).
	Key string
	// Size is the file size in bytes.
	Size int64
}

// SourceFromPath describes a single input file given on the command line.
func SourceFromPath(path string) (Source, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Source{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return Source{}, &bmpcodec.OpenError{Path: path, Err: err}
	}
	if info.IsDir() {
		return Source{}, fmt.Errorf("%s is a directory", path)
	}
	base := filepath.Base(abs)
	return Source{
		AbsPath: abs,
		RelPath: base,
		Key:     strings.TrimSuffix(base, filepath.Ext(base)),
		Size:    info.Size(),
	}, nil
}

// ScanBitmaps walks the input directory and returns every .bmp file,
// skipping hidden directories and any directory listed in skip (absolute
// paths, typically the output directory).
func ScanBitmaps(inputDir string, skip ...string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			for _, s := range skip {
				if path != inputDir && path == s {
					return filepath.SkipDir
				}
			}
			return nil
		}

		ext := filepath.Ext(path)
		if !strings.EqualFold(ext, ".bmp") {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}

		sources = append(sources, Source{
			AbsPath: path,
			RelPath: filepath.ToSlash(relPath),
			Key:     filepath.ToSlash(strings.TrimSuffix(relPath, ext)),
			Size:    info.Size(),
		})
		return nil
	})

	return sources, err
}

// sharedKeys returns, for every source whose output name is also claimed by
// another source, the path of one such rival. Keys are compared without
// case so a.bmp and a.BMP collide on every filesystem.
func sharedKeys(sources []Source) map[int]string {
	first := make(map[string]int, len(sources))
	shared := make(map[int]string)
	for i, s := range sources {
		k := strings.ToLower(s.Key)
		j, ok := first[k]
		if !ok {
			first[k] = i
			continue
		}
		shared[i] = sources[j].RelPath
		if _, seen := shared[j]; !seen {
			shared[j] = s.RelPath
		}
	}
	return shared
}
