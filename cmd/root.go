package cmd

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/abothula/lowpass/internal/bmpcodec"
	"github.com/abothula/lowpass/internal/profile"
)

var (
	version = "0.1.0"
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "lowpass",
	Short: "3×3 box-blur filter for 24-bit bitmaps",
	Long: `lowpass reads an uncompressed 24-bit BMP, replaces every interior
pixel with the mean of its 3×3 neighbourhood and writes a new BMP with
the original header. Border pixels of the output are black.

Run without a command it filters ` + defaultInput + ` into ` + defaultOutput + ` using the
reference profile; use "lowpass blur" to pick files, bounds or a preview.`,
	Args:          cobra.NoArgs,
	RunE:          runDefault,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI and returns the process exit status.
func Execute() int {
	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "lowpass: %v\n", err)
	return ExitCode(err)
}

// ExitCode maps an error to the process exit status: 2 when the input is
// not a bitmap lowpass accepts, 1 for anything else.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case bmpcodec.IsInputError(err):
		return 2
	default:
		return 1
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"lowpass %s (%s/%s, %s)\n",
		version, runtime.GOOS, runtime.GOARCH, runtime.Version(),
	))
}

// runDefault is the bare "lowpass" invocation: blur's defaults, ignoring
// any flags set on the blur command itself.
func runDefault(cmd *cobra.Command, _ []string) error {
	return blur(cmd.OutOrStdout(), defaultInput, defaultOutput, "", profile.Get(profile.DefaultName))
}

// logVerbose prints a message only when --verbose is set.
func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Fprintf(os.Stderr, "[lowpass] "+format+"\n", args...)
	}
}
