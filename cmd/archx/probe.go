// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"archx/internal/extract"

	"github.com/spf13/cobra"
)

var (
	// probePassword is used when probing encrypted archives
	probePassword string
	// probeProgram forces a specific external tool for the probe
	probeProgram string
)

// probeCmd runs the two-phase validation against a single file and
// reports whether it is genuinely extractable.
var probeCmd = &cobra.Command{
	Use:   "probe <archive>",
	Short: "Check whether a file is a genuinely extractable archive",
	Long: `Run the same validation that precedes every extraction, without
extracting anything: first a name-based format check, then a full
decode of the archive's content.

The probe uses the same password and program options that an extraction
would, so a passing probe is a faithful predictor of extraction.

Examples:
  archx probe download.zip
  archx probe secret.7z --program 7z --password hunter2`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&probePassword, "password", "", "password for encrypted archives")
	probeCmd.Flags().StringVar(&probeProgram, "program", "", "external tool to probe with (7z, unzip, unrar, tar)")
}

func runProbe(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	opts := extract.Options{
		Verbosity: verbosity(),
		Program:   probeProgram,
		Password:  probePassword,
	}

	if !extract.New(newLogger()).Validate(path, opts) {
		fmt.Printf("%s %s is not extractable\n", errorIcon, PathStyle.Render(path))
		return &ExitError{Code: 1}
	}

	fmt.Printf("%s %s is a valid archive\n", successIcon, PathStyle.Render(path))
	return nil
}
