// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Cleaner removes auto-generated entries from a directory subtree.
// Removal is best-effort housekeeping: entries that vanish mid-walk or
// resist deletion are skipped, never treated as failures.
type Cleaner struct {
	logger *log.Logger

	// extraPatterns are additional glob patterns (matched against base
	// names) configured by the user on top of the built-in predicate.
	extraPatterns []string
}

// NewCleaner returns a Cleaner that logs each removal through logger.
// extraPatterns may add user-configured glob patterns to the built-in
// artifact predicate.
func NewCleaner(logger *log.Logger, extraPatterns ...string) *Cleaner {
	return &Cleaner{logger: logger, extraPatterns: extraPatterns}
}

// matches applies the built-in predicate plus any configured patterns.
func (c *Cleaner) matches(path string) bool {
	if IsAutoGenerated(path) {
		return true
	}
	name := filepath.Base(path)
	for _, pattern := range c.extraPatterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Clean walks the whole subtree under root and removes every entry the
// predicate classifies as auto-generated: directories together with
// their contents, files individually. Returns the paths removed, for
// observability only.
//
// Deletions happen as the walk proceeds, so entries listed earlier can
// be gone by the time they are visited (their parent was removed).
// Existence is re-checked immediately before each deletion and walk
// errors are swallowed, so a vanished entry never aborts the rest of
// the pass.
func (c *Cleaner) Clean(root string) []string {
	var removed []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil // entry vanished or is unreadable, keep walking
		}
		if path == root || !c.matches(path) {
			return nil
		}

		// Re-check existence: an ancestor removed earlier in this pass
		// may have taken this entry with it.
		if _, err := os.Lstat(path); err != nil {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if err := os.RemoveAll(path); err == nil {
				removed = append(removed, path)
				c.logger.Info("removed auto-generated directory", "path", path)
			}
			return fs.SkipDir
		}

		if err := os.Remove(path); err == nil {
			removed = append(removed, path)
			c.logger.Info("removed auto-generated file", "path", path)
		}
		return nil
	})

	return removed
}
