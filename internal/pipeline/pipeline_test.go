package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abothula/lowpass/internal/bmpcodec"
	"github.com/abothula/lowpass/internal/profile"
	"github.com/abothula/lowpass/internal/raster"
	"github.com/abothula/lowpass/internal/report"
)

func writeWhite(t *testing.T, path string, w, h int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	img := raster.New(w, h)
	img.Fill(255, 255, 255)
	require.NoError(t, bmpcodec.WriteFile(path, bmpcodec.NewHeader(w, h), img))
}

func TestScanBitmaps(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out")
	writeWhite(t, filepath.Join(dir, "a.bmp"), 2, 2)
	writeWhite(t, filepath.Join(dir, "sub", "B.BMP"), 2, 2)
	writeWhite(t, filepath.Join(dir, ".hidden", "c.bmp"), 2, 2)
	writeWhite(t, filepath.Join(out, "a.bmp"), 2, 2)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	sources, err := ScanBitmaps(dir, out)
	require.NoError(t, err)

	var keys []string
	for _, s := range sources {
		keys = append(keys, s.Key)
	}
	sort.Strings(keys)
	assert.Equal(t, []string{"a", "sub/B"}, keys)
}

func TestSourceFromPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.bmp")
	writeWhite(t, path, 3, 3)

	src, err := SourceFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "test", src.Key)
	assert.Equal(t, "test.bmp", src.RelPath)
	assert.Equal(t, int64(bmpcodec.HeaderLen+3*12), src.Size)

	_, err = SourceFromPath(filepath.Dir(path))
	assert.Error(t, err)
}

func TestProcessWhiteImage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "test.bmp")
	writeWhite(t, in, 4, 4)

	prof := profile.Get("reference")
	prof.PreviewFormat = "png"
	p, err := New(Config{OutputDir: dir, Profile: prof})
	require.NoError(t, err)

	src, err := SourceFromPath(in)
	require.NoError(t, err)
	entry, err := p.Process(src, "lowpass.bmp")
	require.NoError(t, err)

	assert.Equal(t, 4, entry.Input.Width)
	assert.Equal(t, 12, entry.Input.Stride)
	assert.Equal(t, "lowpass.bmp", entry.Output.Path)
	assert.NotEqual(t, entry.Input.PixelHash, entry.Output.PixelHash)
	require.NotNil(t, entry.Preview)
	assert.Equal(t, "lowpass.preview.png", entry.Preview.Path)
	assert.FileExists(t, filepath.Join(dir, "lowpass.preview.png"))

	_, out, err := bmpcodec.ReadFile(filepath.Join(dir, "lowpass.bmp"), prof.Limits())
	require.NoError(t, err)
	r, g, b := out.At(1, 1)
	assert.Equal(t, []int{255, 255, 255}, []int{r, g, b})
	r, g, b = out.At(0, 0)
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})

	// The input is untouched.
	_, in2, err := bmpcodec.ReadFile(in, prof.Limits())
	require.NoError(t, err)
	r, g, b = in2.At(0, 0)
	assert.Equal(t, []int{255, 255, 255}, []int{r, g, b})
}

func TestProcessRejectsOversizeWithoutOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "big.bmp")
	writeWhite(t, in, 300, 2)

	p, err := New(Config{OutputDir: dir, Profile: profile.Get("reference")})
	require.NoError(t, err)
	src, err := SourceFromPath(in)
	require.NoError(t, err)

	_, err = p.Process(src, "out.bmp")
	var de *bmpcodec.DimensionError
	require.ErrorAs(t, err, &de)
	assert.NoFileExists(t, filepath.Join(dir, "out.bmp"))
}

func TestNewRejectsUnknownPreview(t *testing.T) {
	prof := profile.Get("reference")
	prof.PreviewFormat = "webp"
	_, err := New(Config{Profile: prof})
	assert.Error(t, err)
}

func TestRunBatch(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeWhite(t, filepath.Join(in, "a.bmp"), 4, 4)
	writeWhite(t, filepath.Join(in, "nested", "b.bmp"), 5, 3)
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.bmp"), []byte("GIF89a"), 0o644))

	var log bytes.Buffer
	p, err := New(Config{
		InputDir:  in,
		OutputDir: out,
		Profile:   profile.Get("standard"),
		Workers:   2,
		Verbose:   true,
		Log:       &log,
	})
	require.NoError(t, err)

	r, err := p.Run()
	require.NoError(t, err)

	assert.Len(t, r.Files, 2)
	assert.Equal(t, 1, r.Stats.Failed)
	assert.Equal(t, int64(16+15), r.Stats.TotalPixels)
	assert.Equal(t, 2, r.Stats.TotalPreviews)
	assert.Equal(t, "nested/b.bmp", r.Files["nested/b"].Output.Path)
	assert.FileExists(t, filepath.Join(out, "nested", "b.bmp"))
	assert.Contains(t, log.String(), "[lowpass] error: decode broken.bmp")
	assert.Contains(t, log.String(), "warning: 1 of 3 bitmaps had errors")

	path := filepath.Join(out, "lowpass.report.json")
	require.NoError(t, report.WriteJSON(r, path))
	loaded, err := report.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, report.Validate(loaded, out))
}

func TestRunAllFailed(t *testing.T) {
	in := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(in, "x.bmp"), []byte("PK"), 0o644))

	p, err := New(Config{InputDir: in, OutputDir: t.TempDir(), Profile: profile.Get("reference"), Log: &bytes.Buffer{}})
	require.NoError(t, err)

	_, err = p.Run()
	require.Error(t, err)
	assert.True(t, bmpcodec.IsInputError(err))
}

func TestRunRefusesInputAsOutput(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.bmp")
	writeWhite(t, src, 5, 5)
	before, err := os.ReadFile(src)
	require.NoError(t, err)

	p, err := New(Config{InputDir: dir, OutputDir: dir + string(filepath.Separator), Profile: profile.Get("reference")})
	require.NoError(t, err)
	_, err = p.Run()
	assert.ErrorContains(t, err, "is the input directory")

	after, err := os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestRunFailsSourcesSharingOutput(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	writeWhite(t, filepath.Join(in, "a.bmp"), 4, 4)
	writeWhite(t, filepath.Join(in, "a.BMP"), 5, 5)
	writeWhite(t, filepath.Join(in, "b.bmp"), 3, 3)

	var log bytes.Buffer
	p, err := New(Config{InputDir: in, OutputDir: out, Profile: profile.Get("reference"), Log: &log})
	require.NoError(t, err)

	r, err := p.Run()
	require.NoError(t, err)
	assert.Len(t, r.Files, 1)
	assert.Contains(t, r.Files, "b")
	assert.Equal(t, 2, r.Stats.Failed)
	assert.NoFileExists(t, filepath.Join(out, "a.bmp"))
	assert.Contains(t, log.String(), "is also claimed by")
}

func TestSharedKeys(t *testing.T) {
	sources := []Source{
		{RelPath: "a.bmp", Key: "a"},
		{RelPath: "b.bmp", Key: "b"},
		{RelPath: "A.BMP", Key: "A"},
		{RelPath: "sub/a.bmp", Key: "sub/a"},
	}
	assert.Equal(t, map[int]string{0: "A.BMP", 2: "a.bmp"}, sharedKeys(sources))
}

func TestRunEmptyDir(t *testing.T) {
	p, err := New(Config{InputDir: t.TempDir(), OutputDir: t.TempDir(), Profile: profile.Get("reference")})
	require.NoError(t, err)
	_, err = p.Run()
	assert.ErrorContains(t, err, "no bitmaps found")
}

func TestPreviewPath(t *testing.T) {
	assert.Equal(t, "lowpass.preview.png", PreviewPath("lowpass.bmp", "png"))
	assert.Equal(t, "a/b.preview.jpg", PreviewPath("a/b.bmp", "jpg"))
}
