package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// probeTarFile builds a probe for the tar family: decompress (if the
// opener says so), then walk every header and entry body so truncation
// and checksum errors surface.
func probeTarFile(open opener) func(src string, opts Options) error {
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

		tr := tar.NewReader(rc)
		for {
			header, err := tr.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("corrupt tar stream: %w", err)
			}
			if header.Typeflag == tar.TypeReg {
				if _, err := io.Copy(io.Discard, tr); err != nil {
					return fmt.Errorf("corrupt entry %s: %w", header.Name, err)
				}
			}
		}
	}
}

// unpackTarFile builds an unpack for the tar family. Regular files,
// directories, and symlinks are materialized; other entry types
// (devices, FIFOs) are skipped. Entry paths and symlink targets are
// validated so that nothing escapes dst.
func unpackTarFile(open opener) func(src, dst string, opts Options) error {
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

		tr := tar.NewReader(rc)
		for {
			header, err := tr.Next()
			if err == io.EOF {
				return nil
			}
			if err != nil {
				return fmt.Errorf("corrupt tar stream: %w", err)
			}
			if err := extractTarEntry(tr, header, dst); err != nil {
				return fmt.Errorf("failed to extract %s: %w", header.Name, err)
			}
		}
	}
}

// extractTarEntry materializes a single tar entry under dst.
func extractTarEntry(tr *tar.Reader, header *tar.Header, dst string) error {
	destPath := filepath.Join(dst, filepath.FromSlash(header.Name))

	// Validate path doesn't escape the destination (security check)
	relPath, err := filepath.Rel(dst, destPath)
	if err != nil || strings.HasPrefix(relPath, "..") {
		return fmt.Errorf("invalid path in tar: %s", header.Name)
	}

	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(destPath, header.FileInfo().Mode().Perm()|0700); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}

	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
		mode := header.FileInfo().Mode().Perm()
		if mode == 0 {
			mode = 0644
		}
		out, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
		if err != nil {
			return err
		}
		if _, err := io.Copy(out, tr); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}

	case tar.TypeSymlink:
		// Reject targets that resolve outside the destination.
		target := header.Linkname
		if filepath.IsAbs(target) {
			return fmt.Errorf("absolute symlink target in tar: %s -> %s", header.Name, target)
		}
		resolved := filepath.Join(filepath.Dir(destPath), target)
		relTarget, err := filepath.Rel(dst, resolved)
		if err != nil || strings.HasPrefix(relTarget, "..") {
			return fmt.Errorf("symlink target escapes destination: %s -> %s", header.Name, target)
		}
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}
		if err := os.Symlink(target, destPath); err != nil {
			return err
		}

	default:
		// Device nodes, FIFOs, and hard links are not materialized.
	}
	return nil
}
