package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// zipFlagEncrypted is the general-purpose bit that marks an entry as
// encrypted in the ZIP local file header.
const zipFlagEncrypted = 0x1

// probeZip opens src as a ZIP archive and decodes every entry to verify
// the central directory and per-entry CRCs without writing anything.
func probeZip(src string, _ Options) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open ZIP file: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Flags&zipFlagEncrypted != 0 {
			return fmt.Errorf("%w: entry %s (use an external program, e.g. --program 7z)", ErrEncrypted, file.Name)
		}
		if err := decodeZipEntry(file); err != nil {
			return fmt.Errorf("corrupt entry %s: %w", file.Name, err)
		}
	}
	return nil
}

// decodeZipEntry reads an entry to completion and discards the bytes.
// The zip reader verifies the CRC when the stream is fully consumed.
func decodeZipEntry(file *zip.File) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	_, err = io.Copy(io.Discard, rc)
	return err
}

// unpackZip extracts src into dst, preserving the archive's internal
// directory structure and entry permissions.
func unpackZip(src, dst string, _ Options) error {
	reader, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("failed to open ZIP file: %w", err)
	}
	defer reader.Close()

	for _, file := range reader.File {
		if file.Flags&zipFlagEncrypted != 0 {
			return fmt.Errorf("%w: entry %s", ErrEncrypted, file.Name)
		}

		destPath := filepath.Join(dst, filepath.FromSlash(file.Name))

		// Validate path doesn't escape the destination (security check)
		relPath, err := filepath.Rel(dst, destPath)
		if err != nil || strings.HasPrefix(relPath, "..") {
			return fmt.Errorf("invalid path in ZIP: %s", file.Name)
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(destPath, file.Mode().Perm()|0700); err != nil {
				return fmt.Errorf("failed to create directory: %w", err)
			}
			continue
		}

		// Create parent directory if needed
		if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
			return fmt.Errorf("failed to create parent directory: %w", err)
		}

		if err := extractZipFile(file, destPath); err != nil {
			return fmt.Errorf("failed to extract %s: %w", file.Name, err)
		}
	}
	return nil
}

// extractZipFile extracts a single file entry to destPath.
func extractZipFile(file *zip.File, destPath string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	mode := file.Mode().Perm()
	if mode == 0 {
		mode = 0644
	}
	destFile, err := os.OpenFile(destPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, rc); err != nil {
		destFile.Close()
		return err
	}
	return destFile.Close()
}
