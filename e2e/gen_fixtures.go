//go:build ignore

// gen_fixtures creates small bitmaps for the E2E smoke test.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abothula/lowpass/internal/bmpcodec"
	"github.com/abothula/lowpass/internal/raster"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "cards"), 0o755)

	// Default input name of the blur command.
	white := raster.New(4, 4)
	white.Fill(255, 255, 255)
	write(filepath.Join(dir, "test.bmp"), white)

	write(filepath.Join(dir, "banner.bmp"), gradient(200, 113))

	// Odd widths exercise every amount of row padding.
	for i := 1; i <= 3; i++ {
		name := fmt.Sprintf("card-%d.bmp", i)
		write(filepath.Join(dir, "cards", name), solidWithBorder(60+i, 45, i*50))
	}

	// Too large for the reference profile.
	write(filepath.Join(dir, "wide.bmp"), gradient(300, 8))

	// Not a bitmap at all.
	if err := os.WriteFile(filepath.Join(dir, "broken.bmp"), []byte("GIF89a"), 0o644); err != nil {
		panic(err)
	}

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 7 fixtures in %s\n", dir)
}

func gradient(w, h int) *raster.Image {
	img := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(y, x, x*255/w, y*255/h, 128)
		}
	}
	return img
}

func solidWithBorder(w, h, base int) *raster.Image {
	img := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				img.Set(y, x, 255, 255, 255)
				continue
			}
			img.Set(y, x, base, base+40, base+80)
		}
	}
	return img
}

func write(path string, img *raster.Image) {
	if err := bmpcodec.WriteFile(path, bmpcodec.NewHeader(img.Width, img.Height), img); err != nil {
		panic(err)
	}
}
