package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/abothula/lowpass/internal/pipeline"
	"github.com/abothula/lowpass/internal/report"
)

// ReportName is the report file written into the batch output directory.
const ReportName = "lowpass.report.json"

var (
	batchProfile profileFlags
	batchOutDir  string
	batchWorkers int
	batchReport  string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input_dir>",
	Short: "Box-blur every bitmap in a directory",
	Long: `Scans the input directory for .bmp files, filters each one and writes
the results under the output directory, keeping the relative layout.
A report listing dimensions, stride and xxhash digests of every file is
written next to the outputs.

Files are independent and processed in parallel; a file that fails is
reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutDir, "out", "o", "./lowpass_out", "output directory")
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "parallel workers (0 = NumCPU)")
	batchCmd.Flags().StringVar(&batchReport, "report", ReportName, "report file name inside the output directory (.zst for compressed)")
	batchProfile.register(batchCmd)
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absInput, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve input path: %w", err)
	}
	absOutput, err := filepath.Abs(batchOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}
	prof := batchProfile.resolve()

	logVerbose("input:   %s", absInput)
	logVerbose("output:  %s", absOutput)
	logVerbose("profile: %s (max %sx%s)", prof.Name, formatBound(prof.MaxWidth), formatBound(prof.MaxHeight))

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p, err := pipeline.New(pipeline.Config{
		InputDir:  absInput,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   batchWorkers,
		Verbose:   verbose,
	})
	if err != nil {
		return err
	}

	r, err := p.Run()
	if err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	reportPath := filepath.Join(absOutput, batchReport)
	if err := report.WriteJSON(r, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printBatchReport(cmd.OutOrStdout(), r, batchReport, time.Since(start))
	return nil
}

func printBatchReport(w io.Writer, r *report.Report, name string, elapsed time.Duration) {
	s := r.Stats
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Files:       %d\n", s.TotalFiles)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Pixels:      %d\n", s.TotalPixels)
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size: %s\n", formatBytes(s.TotalOutputBytes))
	if s.TotalPreviews > 0 {
		fmt.Fprintf(w, "  Previews:    %d\n", s.TotalPreviews)
	}
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	if r.BuildInfo != nil {
		fmt.Fprintf(w, "  Workers:     %d\n", r.BuildInfo.Workers)
	}
	fmt.Fprintln(w)

	// Largest inputs first.
	keys := make([]string, 0, len(r.Files))
	for k := range r.Files {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		pi := r.Files[keys[i]].Input.Width * r.Files[keys[i]].Input.Height
		pj := r.Files[keys[j]].Input.Width * r.Files[keys[j]].Input.Height
		if pi != pj {
			return pi > pj
		}
		return keys[i] < keys[j]
	})
	n := len(keys)
	if n > 10 {
		n = 10
	}
	if n > 0 {
		fmt.Fprintf(w, "  Top %d largest:\n", n)
		for _, k := range keys[:n] {
			e := r.Files[k]
			fmt.Fprintf(w, "    %-40s %5dx%-5d %s\n", truncKey(k, 40), e.Input.Width, e.Input.Height, e.Output.Hash)
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "  Report:      %s\n", name)
	fmt.Fprintln(w)
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
