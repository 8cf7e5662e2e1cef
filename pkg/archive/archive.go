// Package archive implements the archive backend: format detection by
// file extension, non-mutating probes, and extraction for the supported
// container and compression formats.
//
// Three operations make up the public surface:
//   - IsArchive: cheap, purely name-based classification
//   - Probe: open and fully decode an archive without writing anything
//   - Unpack: extract an archive into a destination directory
//
// Probe and Unpack honor the same Options so that a successful probe is
// a faithful predictor of a later extraction. When Options.Program is
// set, both operations delegate to that external tool instead of the
// built-in codecs.
package archive

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrUnsupportedFormat is returned when no registered format matches
	// a path's extension and no external program was requested.
	ErrUnsupportedFormat = errors.New("unsupported archive format")

	// ErrEncrypted is returned when an archive requires a password that
	// the built-in codecs cannot supply. Passworded archives need an
	// external program (e.g. --program 7z).
	ErrEncrypted = errors.New("archive is password protected")

	// ErrNotRegularFile is returned when the source path does not name
	// a regular file.
	ErrNotRegularFile = errors.New("source is not a regular file")
)

// Options are the knobs forwarded to every backend operation. They are
// carried unchanged from probe to unpack so both see identical behavior.
type Options struct {
	// Verbosity controls how chatty external programs are allowed to be.
	// Negative silences them entirely; positive passes verbose flags
	// through where the tool supports them.
	Verbosity int
	// Program names an external extraction tool to delegate to instead
	// of the built-in codecs. Empty means built-in.
	Program string
	// Interactive attaches the caller's stdin to external programs so
	// they may prompt (e.g. for overwrite confirmation or passwords).
	Interactive bool
	// Password is supplied to codecs and external programs for
	// encrypted archives.
	Password string
}

// Probe checks that src is a genuinely decodable archive without writing
// anything to disk. The full content is decoded and discarded, so a nil
// return means a later Unpack with the same options is expected to
// succeed (barring filesystem errors).
func Probe(src string, opts Options) error {
	if err := statRegular(src); err != nil {
		return err
	}
	if opts.Program != "" {
		return probeWithProgram(src, opts)
	}
	f, ok := formatFor(src)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
	}
	return f.probe(src, opts)
}

// Unpack extracts src into dst, creating dst if necessary. Entry paths
// are validated so that no entry can escape dst.
func Unpack(src, dst string, opts Options) error {
	if err := statRegular(src); err != nil {
		return err
	}
	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}
	if opts.Program != "" {
		return unpackWithProgram(src, dst, opts)
	}
	f, ok := formatFor(src)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnsupportedFormat, src)
	}
	return f.unpack(src, dst, opts)
}

// statRegular verifies that src exists and is a regular file.
func statRegular(src string) error {
	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("failed to stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, src)
	}
	return nil
}
