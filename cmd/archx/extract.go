// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"archx/internal/extract"

	"github.com/spf13/cobra"
)

var (
	// extractCleanup deletes each source archive after its extraction
	extractCleanup bool
	// extractPassword is used for encrypted archives at every level
	extractPassword string
	// extractProgram forces a specific external extraction tool
	extractProgram string
	// extractInteractive lets external tools prompt on the terminal
	extractInteractive bool
	// extractMaxDepth bounds recursive descent
	extractMaxDepth int
	// extractShallow disables descent into nested archives
	extractShallow bool
)

// extractCmd extracts an archive, including nested archives, into a
// destination directory.
var extractCmd = &cobra.Command{
	Use:   "extract <archive> [destination]",
	Short: "Extract an archive and every archive nested inside it",
	Long: `Extract an archive into a destination directory, then scan the output
for archives that were themselves inside the original archive and
extract those too, depth-first, preserving the directory structure.

Each candidate is validated before extraction: a file that merely wears
an archive extension, or a corrupt archive, is skipped with a logged
reason and never aborts the rest of the run.

The destination defaults to the directory containing the archive.

Examples:
  archx extract bundle.zip
  archx extract bundle.zip ./out
  archx extract bundle.zip --cleanup
  archx extract secret.7z --program 7z --password hunter2
  archx extract bundle.zip --shallow`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().BoolVar(&extractCleanup, "cleanup", false, "delete each source archive after its extraction attempt")
	extractCmd.Flags().StringVar(&extractPassword, "password", "", "password for encrypted archives")
	extractCmd.Flags().StringVar(&extractProgram, "program", "", "external extraction tool to use (7z, unzip, unrar, tar)")
	extractCmd.Flags().BoolVar(&extractInteractive, "interactive", false, "let external tools prompt on the terminal")
	extractCmd.Flags().IntVar(&extractMaxDepth, "max-depth", 0, "maximum archive nesting depth (0 = default)")
	extractCmd.Flags().BoolVar(&extractShallow, "shallow", false, "extract the top-level archive only, no nested descent")
}

func runExtract(cmd *cobra.Command, args []string) error {
	source, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve source path: %w", err)
	}

	dest := filepath.Dir(source)
	if len(args) == 2 {
		dest, err = filepath.Abs(args[1])
		if err != nil {
			return fmt.Errorf("failed to resolve destination path: %w", err)
		}
	}
	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	req := extract.Request{
		Source: source,
		Dest:   dest,
		Options: extract.Options{
			Verbosity:   verbosity(),
			Program:     programOrDefault(),
			Interactive: extractInteractive,
			Password:    extractPassword,
			Cleanup:     extractCleanup || cfg.Extract.Cleanup,
			MaxDepth:    maxDepthOrDefault(),
		},
	}

	extractor := extract.New(newLogger(), cfg.Artifacts.ExtraPatterns...)
	if extractShallow {
		extractor.Extract(req)
	} else {
		extractor.ExtractAll(req)
	}

	if verbosity() >= 0 {
		fmt.Printf("%s Extracted into %s\n", successIcon, PathStyle.Render(dest))
	}
	return nil
}

// programOrDefault resolves the external program: flag wins, then the
// configured default, then the built-in codecs.
func programOrDefault() string {
	if extractProgram != "" {
		return extractProgram
	}
	return cfg.Extract.Program
}

// maxDepthOrDefault resolves the recursion bound: flag wins, then the
// configured default, then the package default.
func maxDepthOrDefault() int {
	if extractMaxDepth > 0 {
		return extractMaxDepth
	}
	return cfg.Extract.MaxDepth
}
