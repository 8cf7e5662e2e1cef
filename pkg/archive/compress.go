package archive

import (
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// opener wraps a raw archive stream in a decompressing reader. openPlain
// is the identity opener used for uncompressed tar files.
type opener func(r io.Reader) (io.ReadCloser, error)

func openPlain(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

func openGzip(r io.Reader) (io.ReadCloser, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("gzip: %w", err)
	}
	return zr, nil
}

func openBzip2(r io.Reader) (io.ReadCloser, error) {
	// compress/bzip2 has no Close and reports corruption at read time.
	return io.NopCloser(bzip2.NewReader(r)), nil
}

func openZstd(r io.Reader) (io.ReadCloser, error) {
	zr, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	return zr.IOReadCloser(), nil
}

func openLZ4(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(lz4.NewReader(r)), nil
}

// probeStreamFile builds a probe for single-file compression formats
// (.gz, .bz2, .zst, .lz4): decompress the whole stream and discard it,
// so checksum or framing errors surface without touching the disk.
func probeStreamFile(open opener) func(src string, opts Options) error {
	return func(src string, _ Options) error {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer f.Close()

		rc, err := open(f)
		if err != nil {
			return err
		}
		defer rc.Close()

		if _, err := io.Copy(io.Discard, rc); err != nil {
			return fmt.Errorf("corrupt stream: %w", err)
		}
		return nil
	}
}

// unpackStreamFile builds an unpack for single-file compression formats.
// The output file keeps the source name minus the compression extension
// ("notes.txt.gz" becomes "notes.txt" inside dst).
func unpackStreamFile(open opener) func(src, dst string, opts Options) error {
	return func(src, dst string, _ Options) error {
		f, err := os.Open(src)
		if err != nil {
			return fmt.Errorf("failed to open source: %w", err)
		}
		defer f.Close()

		rc, err := open(f)
		if err != nil {
			return err
		}
		defer rc.Close()

		base := filepath.Base(src)
		name := base[:len(base)-len(filepath.Ext(base))]
		if name == "" {
			name = base
		}

		outPath := filepath.Join(dst, name)
		out, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}

		if _, err := io.Copy(out, rc); err != nil {
			out.Close()
			return fmt.Errorf("failed to decompress %s: %w", base, err)
		}
		return out.Close()
	}
}
