package archive

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ErrUnknownProgram is returned when Options.Program names a tool this
// backend has no argument template for.
var ErrUnknownProgram = errors.New("unknown extraction program")

// programSpec describes how to drive one external extraction tool.
type programSpec struct {
	// probeArgs builds the argument vector for a non-mutating test run.
	probeArgs func(src string, opts Options) []string
	// unpackArgs builds the argument vector for extraction into dst.
	unpackArgs func(src, dst string, opts Options) []string
}

// programSpecs maps supported Options.Program values to their argument
// templates. Tools not listed here are rejected rather than guessed at:
// a wrong argument template can extract into the wrong place.
var programSpecs = map[string]programSpec{
	"7z": {
		probeArgs: func(src string, opts Options) []string {
			args := []string{"t", "-y"}
			if opts.Password != "" {
				args = append(args, "-p"+opts.Password)
			}
			return append(args, src)
		},
		unpackArgs: func(src, dst string, opts Options) []string {
			args := []string{"x", "-y", "-o" + dst}
			if opts.Password != "" {
				args = append(args, "-p"+opts.Password)
			}
			return append(args, src)
		},
	},
	"unzip": {
		probeArgs: func(src string, opts Options) []string {
			args := []string{"-t"}
			if opts.Password != "" {
				args = append(args, "-P", opts.Password)
			}
			return append(args, src)
		},
		unpackArgs: func(src, dst string, opts Options) []string {
			args := []string{"-o"}
			if opts.Password != "" {
				args = append(args, "-P", opts.Password)
			}
			return append(args, src, "-d", dst)
		},
	},
	"unrar": {
		probeArgs: func(src string, opts Options) []string {
			return []string{"t", passwordSwitch(opts), src}
		},
		unpackArgs: func(src, dst string, opts Options) []string {
			return []string{"x", "-y", passwordSwitch(opts), src, dst + string(os.PathSeparator)}
		},
	},
	"tar": {
		probeArgs: func(src string, _ Options) []string {
			return []string{"-tf", src}
		},
		unpackArgs: func(src, dst string, _ Options) []string {
			return []string{"-xf", src, "-C", dst}
		},
	},
}

// passwordSwitch returns the rar-style password switch. "-p-" explicitly
// disables the interactive password prompt.
func passwordSwitch(opts Options) string {
	if opts.Password != "" {
		return "-p" + opts.Password
	}
	return "-p-"
}

func probeWithProgram(src string, opts Options) error {
	spec, ok := programSpecs[opts.Program]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, opts.Program)
	}
	return runProgram(opts, spec.probeArgs(src, opts))
}

func unpackWithProgram(src, dst string, opts Options) error {
	spec, ok := programSpecs[opts.Program]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProgram, opts.Program)
	}
	return runProgram(opts, spec.unpackArgs(src, dst, opts))
}

// runProgram executes the configured external tool. Output is captured
// and folded into the returned error so callers can log a useful reason
// for a failed probe or extraction.
func runProgram(opts Options, args []string) error {
	path, err := exec.LookPath(opts.Program)
	if err != nil {
		return fmt.Errorf("program %s not found in PATH: %w", opts.Program, err)
	}

	cmd := exec.Command(path, args...)

	var output bytes.Buffer
	if opts.Verbosity > 0 {
		// Verbose mode streams tool output to the user directly.
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}
	if opts.Interactive {
		cmd.Stdin = os.Stdin
	}

	if err := cmd.Run(); err != nil {
		if tail := lastOutputLine(output.String()); tail != "" {
			return fmt.Errorf("%s failed: %w: %s", opts.Program, err, tail)
		}
		return fmt.Errorf("%s failed: %w", opts.Program, err)
	}
	return nil
}

// lastOutputLine extracts the final non-blank line of captured tool
// output, which for the supported tools is where the error lands.
func lastOutputLine(out string) string {
	lines := strings.Split(strings.TrimSpace(out), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if line := strings.TrimSpace(lines[i]); line != "" {
			return line
		}
	}
	return ""
}
