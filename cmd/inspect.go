package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abothula/lowpass/internal/bmpcodec"
	"github.com/abothula/lowpass/internal/hasher"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file.bmp>",
	Short: "Print the header and layout of a bitmap",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := os.Stat(path)
	if err != nil {
		return &bmpcodec.OpenError{Path: path, Err: err}
	}

	h, img, err := bmpcodec.ReadFile(path, bmpcodec.Limits{})
	if err != nil {
		return err
	}

	printHeader(cmd.OutOrStdout(), path, info.Size(), h)
	fmt.Fprintf(cmd.OutOrStdout(), "  Pixel hash:   %s\n\n", hasher.PixelHash(img, hasher.DefaultHexLen))
	return nil
}

func printHeader(w io.Writer, path string, size int64, h *bmpcodec.Header) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  File:         %s (%s)\n", path, formatBytes(size))
	fmt.Fprintf(w, "  Signature:    0x%04x\n", h.Magic)
	fmt.Fprintf(w, "  File size:    %d bytes (header field)\n", h.File.Size)
	fmt.Fprintf(w, "  Pixel offset: %d bytes\n", h.File.DataOffset)
	if len(h.Gap) > 0 {
		fmt.Fprintf(w, "  Color table:  %d bytes (not interpreted)\n", len(h.Gap))
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Info size:    %d\n", h.Info.Size)
	fmt.Fprintf(w, "  Dimensions:   %dx%d px\n", h.Info.Width, h.Info.Height)
	fmt.Fprintf(w, "  Planes:       %d\n", h.Info.Planes)
	fmt.Fprintf(w, "  Bit count:    %d\n", h.Info.BitCount)
	fmt.Fprintf(w, "  Compression:  %d\n", h.Info.Compression)
	fmt.Fprintf(w, "  Image size:   %d bytes (header field)\n", h.Info.ImageSize)
	fmt.Fprintf(w, "  Resolution:   %dx%d px/m\n", h.Info.XPixelsPerM, h.Info.YPixelsPerM)
	fmt.Fprintf(w, "  Colors:       %d used, %d important\n", h.Info.ColorsUsed, h.Info.ColorsImportant)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Stride:       %d bytes\n", h.Stride())
	fmt.Fprintf(w, "  Padding:      %d bytes per row\n", bmpcodec.Padding(h.Width()))
	fmt.Fprintf(w, "  Pixel data:   %d bytes\n", h.PixelBytes())
}
