// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Extract.Cleanup {
		t.Error("cleanup should default to off")
	}
	if cfg.Extract.MaxDepth != 0 {
		t.Errorf("max_depth default = %d, want 0", cfg.Extract.MaxDepth)
	}
	if cfg.Extract.Program != "" {
		t.Errorf("program default = %q, want empty", cfg.Extract.Program)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:    "defaults are valid",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "negative max depth",
			mutate:  func(c *Config) { c.Extract.MaxDepth = -1 },
			wantErr: true,
		},
		{
			name: "verbose and quiet together",
			mutate: func(c *Config) {
				c.UI.Verbose = true
				c.UI.Quiet = true
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `extract:
  cleanup: true
  max_depth: 4
  program: 7z
ui:
  verbose: true
artifacts:
  extra_patterns:
    - "*.log"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	SetConfigFilePathOverride(path)
	t.Cleanup(func() { SetConfigFilePathOverride("") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !cfg.Extract.Cleanup {
		t.Error("cleanup should be true")
	}
	if cfg.Extract.MaxDepth != 4 {
		t.Errorf("max_depth = %d, want 4", cfg.Extract.MaxDepth)
	}
	if cfg.Extract.Program != "7z" {
		t.Errorf("program = %q, want 7z", cfg.Extract.Program)
	}
	if !cfg.UI.Verbose {
		t.Error("verbose should be true")
	}
	if len(cfg.Artifacts.ExtraPatterns) != 1 || cfg.Artifacts.ExtraPatterns[0] != "*.log" {
		t.Errorf("extra_patterns = %v, want [*.log]", cfg.Artifacts.ExtraPatterns)
	}
}

func TestLoadOverrideFileMissing(t *testing.T) {
	SetConfigFilePathOverride(filepath.Join(t.TempDir(), "absent.yaml"))
	t.Cleanup(func() { SetConfigFilePathOverride("") })

	if _, err := Load(); err == nil {
		t.Error("an explicitly named missing config file should be an error")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("extract:\n  max_depth: -2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	SetConfigFilePathOverride(path)
	t.Cleanup(func() { SetConfigFilePathOverride("") })

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
