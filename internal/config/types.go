// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is the sentinel error wrapped by configuration
// validation failures.
var ErrInvalidConfig = errors.New("invalid config")

type (
	// Config is the resolved archx configuration. Values follow the
	// precedence: command-line flag > environment > config file > default.
	Config struct {
		// Extract holds defaults for extraction options.
		Extract ExtractConfig `mapstructure:"extract"`
		// UI holds output preferences.
		UI UIConfig `mapstructure:"ui"`
		// Artifacts holds artifact-cleaner settings.
		Artifacts ArtifactsConfig `mapstructure:"artifacts"`
	}

	// ExtractConfig carries defaults applied to every extraction run.
	ExtractConfig struct {
		// Cleanup deletes source archives after extraction by default.
		Cleanup bool `mapstructure:"cleanup"`
		// MaxDepth bounds recursive descent. Zero keeps the built-in default.
		MaxDepth int `mapstructure:"max_depth"`
		// Program names a preferred external extraction tool.
		Program string `mapstructure:"program"`
	}

	// UIConfig carries terminal output preferences.
	UIConfig struct {
		// Verbose enables debug-level logging.
		Verbose bool `mapstructure:"verbose"`
		// Quiet suppresses everything below error level.
		Quiet bool `mapstructure:"quiet"`
	}

	// ArtifactsConfig extends the artifact cleaner.
	ArtifactsConfig struct {
		// ExtraPatterns are additional glob patterns (matched against
		// base names) removed by the cleaner on top of the built-ins.
		ExtraPatterns []string `mapstructure:"extra_patterns"`
	}
)

// DefaultConfig returns the configuration used when no file, env, or
// flag overrides anything.
func DefaultConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			Cleanup:  false,
			MaxDepth: 0,
			Program:  "",
		},
		UI: UIConfig{
			Verbose: false,
			Quiet:   false,
		},
		Artifacts: ArtifactsConfig{
			ExtraPatterns: nil,
		},
	}
}

// Validate checks the configuration for contradictions.
func (c *Config) Validate() error {
	if c.Extract.MaxDepth < 0 {
		return fmt.Errorf("%w: extract.max_depth must not be negative", ErrInvalidConfig)
	}
	if c.UI.Verbose && c.UI.Quiet {
		return fmt.Errorf("%w: ui.verbose and ui.quiet are mutually exclusive", ErrInvalidConfig)
	}
	return nil
}
