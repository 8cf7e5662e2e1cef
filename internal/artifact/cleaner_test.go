// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

// mkTree materializes a file tree: entries ending in "/" are
// directories, others are files with placeholder content.
func mkTree(t *testing.T, root string, entries []string) {
	t.Helper()
	for _, entry := range entries {
		path := filepath.Join(root, filepath.FromSlash(entry))
		if entry[len(entry)-1] == '/' {
			if err := os.MkdirAll(path, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func TestCleanRemovesArtifacts(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{
		"bundle/a/b/c.txt",
		"bundle/__MACOSX/",
		"bundle/__MACOSX/._c.txt",
		"bundle/.DS_Store",
		"bundle/a/Thumbs.db",
		"bundle/a/real.dat",
	})

	removed := NewCleaner(testLogger()).Clean(root)

	for _, gone := range []string{"bundle/__MACOSX", "bundle/.DS_Store", "bundle/a/Thumbs.db"} {
		if exists(filepath.Join(root, gone)) {
			t.Errorf("%s should have been removed", gone)
		}
	}
	for _, kept := range []string{"bundle/a/b/c.txt", "bundle/a/real.dat"} {
		if !exists(filepath.Join(root, kept)) {
			t.Errorf("%s should have been kept", kept)
		}
	}

	// __MACOSX is removed as a directory; its child never shows up as a
	// separate removal.
	if len(removed) != 3 {
		t.Errorf("removed %d entries, want 3: %v", len(removed), removed)
	}
}

func TestCleanSecondPassIsNoOp(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{
		"bundle/.DS_Store",
		"bundle/keep.txt",
	})

	cleaner := NewCleaner(testLogger())
	if removed := cleaner.Clean(root); len(removed) != 1 {
		t.Fatalf("first pass removed %d entries, want 1", len(removed))
	}
	if removed := cleaner.Clean(root); len(removed) != 0 {
		t.Errorf("second pass removed %d entries, want 0", len(removed))
	}
	if !exists(filepath.Join(root, "bundle/keep.txt")) {
		t.Error("keep.txt should survive both passes")
	}
}

func TestCleanNestedArtifactDirectories(t *testing.T) {
	// An artifact directory containing further artifacts must not trip
	// the walk when the parent removal takes the children with it.
	root := t.TempDir()
	mkTree(t, root, []string{
		"out/__MACOSX/sub/._a.txt",
		"out/__MACOSX/.DS_Store",
		"out/ok.txt",
	})

	NewCleaner(testLogger()).Clean(root)

	if exists(filepath.Join(root, "out/__MACOSX")) {
		t.Error("__MACOSX should have been removed recursively")
	}
	if !exists(filepath.Join(root, "out/ok.txt")) {
		t.Error("ok.txt should have been kept")
	}
}

func TestCleanExtraPatterns(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, []string{
		"out/debug.log",
		"out/data.txt",
	})

	NewCleaner(testLogger(), "*.log").Clean(root)

	if exists(filepath.Join(root, "out/debug.log")) {
		t.Error("debug.log should match the extra pattern")
	}
	if !exists(filepath.Join(root, "out/data.txt")) {
		t.Error("data.txt should have been kept")
	}
}

func TestCleanMissingRoot(t *testing.T) {
	// A vanished root is tolerated, not an error.
	removed := NewCleaner(testLogger()).Clean(filepath.Join(t.TempDir(), "absent"))
	if len(removed) != 0 {
		t.Errorf("removed %d entries from a missing root", len(removed))
	}
}
