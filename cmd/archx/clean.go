// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"archx/internal/artifact"

	"github.com/spf13/cobra"
)

// cleanCmd runs the artifact cleaner on its own over a directory tree.
var cleanCmd = &cobra.Command{
	Use:   "clean <directory>",
	Short: "Remove auto-generated artifacts from a directory tree",
	Long: `Walk a directory tree and remove entries that extraction tools or the
host OS generate as byproducts: __MACOSX directories, .DS_Store and
AppleDouble files, Thumbs.db, recycle bins, and the like.

This is the same cleanup pass that runs after every extraction; the
command exposes it for trees that were extracted by other tools.

Examples:
  archx clean ./extracted
  archx clean ~/Downloads/bundle`,
	Args: cobra.ExactArgs(1),
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", root)
	}

	cleaner := artifact.NewCleaner(newLogger(), cfg.Artifacts.ExtraPatterns...)
	removed := cleaner.Clean(root)

	if verbosity() >= 0 {
		fmt.Printf("%s Removed %d artifact(s) under %s\n", successIcon, len(removed), PathStyle.Render(root))
	}
	return nil
}
