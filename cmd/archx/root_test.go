// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"
)

func TestVerbosity(t *testing.T) {
	tests := []struct {
		name     string
		verbose  int
		quiet    bool
		expected int
	}{
		{name: "default", verbose: 0, quiet: false, expected: 0},
		{name: "single -v", verbose: 1, quiet: false, expected: 1},
		{name: "double -v", verbose: 2, quiet: false, expected: 2},
		{name: "quiet", verbose: 0, quiet: true, expected: -1},
		{name: "quiet wins over verbose", verbose: 2, quiet: true, expected: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldVerbose, oldQuiet := verbose, quiet
			t.Cleanup(func() { verbose, quiet = oldVerbose, oldQuiet })

			verbose, quiet = tt.verbose, tt.quiet
			if got := verbosity(); got != tt.expected {
				t.Errorf("verbosity() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestExitError(t *testing.T) {
	inner := errors.New("bad archive")
	err := &ExitError{Code: 1, Err: inner}

	if err.Error() != "bad archive" {
		t.Errorf("Error() = %q, want %q", err.Error(), "bad archive")
	}
	if !errors.Is(err, inner) {
		t.Error("ExitError should unwrap to its inner error")
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q, want %q", bare.Error(), "exit status 3")
	}
}
