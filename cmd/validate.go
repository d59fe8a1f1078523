package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abothula/lowpass/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_or_out_dir>",
	Short: "Validate a lowpass report and check the files it lists",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := findReport(args[0])
	if err != nil {
		return err
	}

	r, err := report.ReadFile(path)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	errs := report.Validate(r, filepath.Dir(path))
	if len(errs) == 0 {
		fmt.Fprintln(out, "  ✓ Report is valid")
		fmt.Fprintf(out, "  ✓ %d files, %d previews, all outputs present and unchanged\n",
			r.Stats.TotalFiles, r.Stats.TotalPreviews)
		return nil
	}

	fmt.Fprintf(out, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(out, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

// findReport accepts either a report file or a batch output directory.
func findReport(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}
	for _, name := range []string{ReportName, ReportName + ".zst"} {
		candidate := filepath.Join(path, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no %s in %s", ReportName, path)
}
