package archive

import (
	"path/filepath"
	"strings"
)

// Format describes one supported archive or compression format.
type Format struct {
	// Name is the short format identifier (e.g. "zip", "tar+gzip").
	Name string
	// Extensions are the recognized filename suffixes, longest first
	// where one is a suffix of another (".tar.gz" before ".gz").
	Extensions []string

	probe  func(src string, opts Options) error
	unpack func(src, dst string, opts Options) error
}

// formats is the registry consulted by IsArchive, Probe, and Unpack.
// Matching picks the longest extension across all formats, so the
// relative order of entries does not matter.
var formats = []Format{
	{
		Name:       "zip",
		Extensions: []string{".zip", ".jar", ".cbz"},
		probe:      probeZip,
		unpack:     unpackZip,
	},
	{
		Name:       "tar",
		Extensions: []string{".tar"},
		probe:      probeTarFile(openPlain),
		unpack:     unpackTarFile(openPlain),
	},
	{
		Name:       "tar+gzip",
		Extensions: []string{".tar.gz", ".tgz"},
		probe:      probeTarFile(openGzip),
		unpack:     unpackTarFile(openGzip),
	},
	{
		Name:       "tar+bzip2",
		Extensions: []string{".tar.bz2", ".tbz2"},
		probe:      probeTarFile(openBzip2),
		unpack:     unpackTarFile(openBzip2),
	},
	{
		Name:       "tar+zstd",
		Extensions: []string{".tar.zst", ".tzst"},
		probe:      probeTarFile(openZstd),
		unpack:     unpackTarFile(openZstd),
	},
	{
		Name:       "tar+lz4",
		Extensions: []string{".tar.lz4"},
		probe:      probeTarFile(openLZ4),
		unpack:     unpackTarFile(openLZ4),
	},
	{
		Name:       "gzip",
		Extensions: []string{".gz"},
		probe:      probeStreamFile(openGzip),
		unpack:     unpackStreamFile(openGzip),
	},
	{
		Name:       "bzip2",
		Extensions: []string{".bz2"},
		probe:      probeStreamFile(openBzip2),
		unpack:     unpackStreamFile(openBzip2),
	},
	{
		Name:       "zstd",
		Extensions: []string{".zst"},
		probe:      probeStreamFile(openZstd),
		unpack:     unpackStreamFile(openZstd),
	},
	{
		Name:       "lz4",
		Extensions: []string{".lz4"},
		probe:      probeStreamFile(openLZ4),
		unpack:     unpackStreamFile(openLZ4),
	},
}

// Formats returns a copy of the format registry, for listing purposes.
func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// IsArchive reports whether path's name matches a registered extension.
// This is a purely syntactic check: a matching name says nothing about
// whether the content is actually decodable. Use Probe for that.
func IsArchive(path string) bool {
	_, ok := formatFor(path)
	return ok
}

// formatFor resolves the format whose extension matches path, preferring
// the longest match so that "x.tar.gz" resolves to tar+gzip, not gzip.
func formatFor(path string) (Format, bool) {
	name := strings.ToLower(filepath.Base(path))

	var best Format
	bestLen := 0
	for _, f := range formats {
		for _, ext := range f.Extensions {
			// A bare extension is not an archive name ("x.gz" yes, ".gz" no).
			if len(name) > len(ext) && strings.HasSuffix(name, ext) && len(ext) > bestLen {
				best = f
				bestLen = len(ext)
			}
		}
	}
	return best, bestLen > 0
}
