package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abothula/lowpass/internal/pipeline"
	"github.com/abothula/lowpass/internal/profile"
	"github.com/abothula/lowpass/internal/report"
)

const (
	defaultInput  = "test.bmp"
	defaultOutput = "lowpass.bmp"
)

var (
	blurProfile profileFlags
	blurOut     string
	blurReport  string
)

var blurCmd = &cobra.Command{
	Use:   "blur [input.bmp]",
	Short: "Box-blur a single bitmap",
	Long: `Decodes a 24-bit uncompressed bitmap, applies the 3×3 box filter to
each channel and writes the result with the input's header.

Without arguments reads ` + defaultInput + ` and writes ` + defaultOutput + `.
The output is written to a temporary file and renamed into place, so a
failed run never leaves a partial bitmap behind.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBlur,
}

func init() {
	blurCmd.Flags().StringVarP(&blurOut, "out", "o", defaultOutput, "output bitmap (missing directories are created)")
	blurCmd.Flags().StringVar(&blurReport, "report", "", "write a JSON report (.zst for compressed)")
	blurProfile.register(blurCmd)
	rootCmd.AddCommand(blurCmd)
}

func runBlur(cmd *cobra.Command, args []string) error {
	input := defaultInput
	if len(args) == 1 {
		input = args[0]
	}
	return blur(cmd.OutOrStdout(), input, blurOut, blurReport, blurProfile.resolve())
}

// blur filters one bitmap into out, creating the directories of out and
// the report if needed.
// An empty reportPath skips the report.
func blur(w io.Writer, input, out, reportPath string, prof profile.Profile) error {
	start := time.Now()

	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	// Paths in the report are relative to the report's directory.
	baseDir := filepath.Dir(absOut)
	var absReport string
	if reportPath != "" {
		if absReport, err = filepath.Abs(reportPath); err != nil {
			return fmt.Errorf("resolve report path: %w", err)
		}
		baseDir = filepath.Dir(absReport)
	}
	relOut, err := filepath.Rel(baseDir, absOut)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	logVerbose("input:   %s", input)
	logVerbose("output:  %s", absOut)
	logVerbose("profile: %s (max %sx%s)", prof.Name, formatBound(prof.MaxWidth), formatBound(prof.MaxHeight))

	src, err := pipeline.SourceFromPath(input)
	if err != nil {
		return fmt.Errorf("input: %w", err)
	}
	for _, dir := range []string{filepath.Dir(absOut), baseDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	p, err := pipeline.New(pipeline.Config{
		OutputDir: baseDir,
		Profile:   prof,
		Workers:   1,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	entry, err := p.Process(src, relOut)
	if err != nil {
		return err
	}

	if absReport != "" {
		r := report.New(prof.Name)
		r.BuildInfo = &report.BuildInfo{Workers: 1, MaxWidth: prof.MaxWidth, MaxHeight: prof.MaxHeight}
		r.Files[src.Key] = entry
		if err := report.WriteJSON(r, absReport); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		logVerbose("report:  %s", absReport)
	}

	fmt.Fprintf(w, "  %s → %s  (%dx%d, stride %d, %s, %s)\n",
		src.RelPath, out,
		entry.Input.Width, entry.Input.Height, entry.Input.Stride,
		formatBytes(entry.Output.Size), time.Since(start).Round(time.Millisecond))
	if entry.Preview != nil {
		fmt.Fprintf(w, "  preview: %s (%dx%d %s)\n",
			entry.Preview.Path, entry.Preview.Width, entry.Preview.Height, entry.Preview.Format)
	}
	return nil
}
