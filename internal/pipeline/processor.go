package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abothula/lowpass/internal/bmpcodec"
	"github.com/abothula/lowpass/internal/boxfilter"
	"github.com/abothula/lowpass/internal/encoder"
	"github.com/abothula/lowpass/internal/hasher"
	"github.com/abothula/lowpass/internal/raster"
	"github.com/abothula/lowpass/internal/report"
)

// Process filters one bitmap: decode, box blur, encode to relOut under the
// output directory, then the optional preview. Every stage finishes before
// the next one starts and the decoded and filtered planes are separate.
func (p *Pipeline) Process(src Source, relOut string) (report.Entry, error) {
	var entry report.Entry

	p.logf("reading %s", src.RelPath)
	h, img, err := bmpcodec.ReadFile(src.AbsPath, p.cfg.Profile.Limits())
	if err != nil {
		return entry, fmt.Errorf("decode %s: %w", src.RelPath, err)
	}
	p.logf("%s: %dx%d, stride %d, pixel data at %d", src.RelPath, img.Width, img.Height, h.Stride(), h.File.DataOffset)

	entry.Input = report.InputInfo{
		Path:       src.RelPath,
		Width:      img.Width,
		Height:     img.Height,
		Stride:     h.Stride(),
		DataOffset: h.File.DataOffset,
		Size:       src.Size,
		PixelHash:  hasher.PixelHash(img, hasher.DefaultHexLen),
	}

	filtered := boxfilter.Apply(img)

	relOut = filepath.ToSlash(relOut)
	outPath := filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relOut))
	p.logf("writing %s", outPath)
	if err := bmpcodec.WriteFile(outPath, h, filtered); err != nil {
		return entry, fmt.Errorf("encode %s: %w", relOut, err)
	}

	entry.Output, err = describeOutput(outPath, relOut, filtered)
	if err != nil {
		return entry, err
	}

	if p.preview != nil {
		prev, err := p.writePreview(filtered, relOut)
		if err != nil {
			return entry, err
		}
		entry.Preview = prev
	}
	return entry, nil
}

func describeOutput(path, relPath string, img *raster.Image) (report.OutputInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return report.OutputInfo{}, fmt.Errorf("stat %s: %w", relPath, err)
	}
	sum, err := hasher.FileHash(path, hasher.DefaultHexLen)
	if err != nil {
		return report.OutputInfo{}, err
	}
	return report.OutputInfo{
		Path:      relPath,
		Size:      info.Size(),
		Hash:      sum,
		PixelHash: hasher.PixelHash(img, hasher.DefaultHexLen),
	}, nil
}

func (p *Pipeline) writePreview(img *raster.Image, relOut string) (*report.PreviewInfo, error) {
	w, h := p.cfg.Profile.PreviewSize(img.Width, img.Height)
	data, err := p.preview.Encode(encoder.Preview(img, w, h), p.cfg.Profile.Quality)
	if err != nil {
		return nil, fmt.Errorf("preview %s as %s: %w", relOut, p.preview.Format(), err)
	}

	relPath := PreviewPath(relOut, p.preview.Extension())
	if err := os.WriteFile(filepath.Join(p.cfg.OutputDir, filepath.FromSlash(relPath)), data, 0o644); err != nil {
		return nil, fmt.Errorf("write %s: %w", relPath, err)
	}
	p.logf("preview %s (%dx%d, %d bytes)", relPath, w, h, len(data))

	return &report.PreviewInfo{
		Format: p.preview.Format(),
		Path:   relPath,
		Width:  w,
		Height: h,
		Size:   int64(len(data)),
	}, nil
}

// PreviewPath derives the preview file name from the output name:
// "dir/lowpass.bmp" → "dir/lowpass.preview.png".
func PreviewPath(relOut, ext string) string {
	return strings.TrimSuffix(relOut, filepath.Ext(relOut)) + ".preview." + ext
}
