// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for archx.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"archx/internal/config"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose counts -v repetitions; each one raises backend verbosity
	verbose int
	// quiet suppresses everything below error level
	quiet bool
	// cfgFile allows specifying a custom config file
	cfgFile string

	// cfg is the loaded configuration, available to all commands
	cfg *config.Config

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "archx",
		Short: "A recursive archive extractor",
		Long: TitleStyle.Render("archx") + SubtitleStyle.Render(" - A recursive archive extractor") + `

archx unpacks archive files, including archives nested inside other
archives, into a destination directory tree. Each candidate archive is
validated before extraction, and extraction-time byproducts (resource
forks, thumbnail caches, trash directories) are removed from the output.

Supported natively: zip, tar, tar.gz, tar.bz2, tar.zst, tar.lz4, gz,
bz2, zst, lz4. Other formats (rar, 7z) and password-protected archives
can be handled through an external tool via ` + CmdStyle.Render("--program") + `.

` + SubtitleStyle.Render("Examples:") + `
  archx extract bundle.zip              Extract next to the archive
  archx extract bundle.zip ./out        Extract into ./out
  archx extract bundle.zip --cleanup    Delete archives after extraction
  archx probe suspicious.zip            Check extractability only
  archx formats                         List supported formats`,
	}
)

func init() {
	cobra.OnInitialize(initRootConfig)

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase verbosity (repeatable)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "only report errors")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/archx/config.yaml)")

	// Add subcommands
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(formatsCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Use fang.Execute for enhanced Cobra styling
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

// initRootConfig reads in config file and ENV variables if set.
func initRootConfig() {
	if cfgFile != "" {
		config.SetConfigFilePathOverride(cfgFile)
	}

	loaded, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, WarningStyle.Render("Warning: ")+err.Error())
		loaded = config.DefaultConfig()
	}
	cfg = loaded

	// Apply output preferences from config if not set via flag
	if verbose == 0 && cfg.UI.Verbose {
		verbose = 1
	}
	if !quiet && cfg.UI.Quiet {
		quiet = true
	}
}

// verbosity folds the --verbose / --quiet flags into the single level
// carried through extraction options: negative silences, zero is
// normal, positive is chatty.
func verbosity() int {
	if quiet {
		return -1
	}
	return verbose
}

// newLogger builds the structured logger all commands share, with its
// level driven by the effective verbosity.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "archx",
	})
	switch v := verbosity(); {
	case v < 0:
		logger.SetLevel(log.ErrorLevel)
	case v == 0:
		logger.SetLevel(log.InfoLevel)
	default:
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
