// SPDX-License-Identifier: MPL-2.0

// Package artifact classifies and removes filesystem entries that are
// byproducts of extraction tools or the host OS (resource-fork
// companions, trash directories, thumbnail caches) rather than content
// the archive's author put there.
package artifact

import (
	"path/filepath"
	"strings"
)

// artifactNames are base names that identify an auto-generated entry
// regardless of where it appears in the tree. Compared case-insensitively:
// these files travel across filesystems that disagree about case.
var artifactNames = map[string]struct{}{
	"__macosx":                  {}, // macOS resource-fork sidecar directory in ZIPs
	".ds_store":                 {}, // Finder view metadata
	".appledouble":              {}, // AppleDouble resource-fork directory
	".trashes":                  {}, // macOS volume trash
	".spotlight-v100":           {}, // Spotlight index
	".fseventsd":                {}, // macOS filesystem event log
	"thumbs.db":                 {}, // Windows Explorer thumbnail cache
	"desktop.ini":               {}, // Windows folder customization
	"$recycle.bin":              {}, // Windows recycle bin
	"system volume information": {}, // Windows restore/index data
}

// artifactPrefixes identify auto-generated entries by base-name prefix.
var artifactPrefixes = []string{
	"._", // AppleDouble per-file companions ("._photo.jpg")
	"~$", // MS Office lock files
}

// IsAutoGenerated reports whether path names an entry that extraction
// tooling or the host OS produces as a side effect. It is a pure
// function of the path: only the base name is inspected, never the
// content.
func IsAutoGenerated(path string) bool {
	name := strings.ToLower(filepath.Base(path))

	if _, ok := artifactNames[name]; ok {
		return true
	}
	for _, prefix := range artifactPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
