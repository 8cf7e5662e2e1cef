// SPDX-License-Identifier: MPL-2.0

// Package extract implements recursive archive extraction: validation of
// each candidate archive, single-level extraction with a guaranteed
// cleanup finalizer, and depth-first descent into archives discovered
// inside the output of a prior extraction.
//
// No failure of any single archive (unrecognized, corrupt, or failing
// mid-extraction) aborts the surrounding run. Every failure is logged
// and the walk moves on to siblings and ancestors.
package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"archx/internal/artifact"
	"archx/pkg/archive"

	"github.com/charmbracelet/log"
)

// ErrMaxDepth marks a branch abandoned because archives were nested
// deeper than Options.MaxDepth. It shows up in logs, never as a panic:
// a pathological self-embedding archive must not hang the run.
var ErrMaxDepth = errors.New("maximum archive nesting depth exceeded")

// Backend is the archive library surface the extractor depends on.
// *pkg/archive* provides the real implementation; tests substitute
// fakes to exercise failure paths.
type Backend interface {
	// IsArchive classifies a path by name alone.
	IsArchive(path string) bool
	// Probe verifies that an archive is genuinely decodable, without
	// writing anything.
	Probe(path string, opts archive.Options) error
	// Unpack extracts an archive into a destination directory.
	Unpack(src, dst string, opts archive.Options) error
}

// systemBackend delegates to pkg/archive.
type systemBackend struct{}

func (systemBackend) IsArchive(path string) bool { return archive.IsArchive(path) }
func (systemBackend) Probe(path string, opts archive.Options) error {
	return archive.Probe(path, opts)
}
func (systemBackend) Unpack(src, dst string, opts archive.Options) error {
	return archive.Unpack(src, dst, opts)
}

// Extractor performs validated, recursive archive extraction. It holds
// no per-run state: every operation takes an explicit Request, so a
// single Extractor can serve many runs.
type Extractor struct {
	backend Backend
	cleaner *artifact.Cleaner
	logger  *log.Logger
}

// New returns an Extractor backed by the built-in archive library.
// extraPatterns add user-configured glob patterns to the artifact
// cleaner's built-in predicate.
func New(logger *log.Logger, extraPatterns ...string) *Extractor {
	return &Extractor{
		backend: systemBackend{},
		cleaner: artifact.NewCleaner(logger, extraPatterns...),
		logger:  logger,
	}
}

// NewWithBackend returns an Extractor using a caller-supplied backend.
func NewWithBackend(backend Backend, logger *log.Logger) *Extractor {
	return &Extractor{
		backend: backend,
		cleaner: artifact.NewCleaner(logger),
		logger:  logger,
	}
}

// Validate checks that path is a genuinely extractable archive, in two
// phases: a free extension-based sniff, then a real decode probe with
// the same options a later extraction would use. The sniff exists to
// skip the probe for the overwhelming majority of non-archive files;
// the probe exists because a recognized extension proves nothing about
// the bytes behind it.
//
// Every failure is logged and reported as false; nothing propagates.
func (e *Extractor) Validate(path string, opts Options) bool {
	if !e.backend.IsArchive(path) {
		e.logger.Error("not a recognized archive", "path", path)
		return false
	}

	if err := e.backend.Probe(path, opts.backend()); err != nil {
		e.logger.Error("archive failed validation", "path", path, "reason", err)
		return false
	}
	return true
}

// Extract validates and extracts a single archive into req.Dest, with
// no nested descent. After the extraction attempt — successful or not —
// a finalizer removes auto-generated artifacts from the destination
// subtree and, when Options.Cleanup is set, deletes the source archive.
//
// A validation failure aborts the call before anything touches the
// disk: no extraction, no cleanup, no deletion. An extraction failure
// is logged and the finalizer still runs.
func (e *Extractor) Extract(req Request) {
	if !e.Validate(req.Source, req.Options) {
		return
	}

	defer e.finalize(req)

	if err := e.backend.Unpack(req.Source, req.Dest, req.Options.backend()); err != nil {
		e.logger.Error("extraction failed", "path", req.Source, "reason", err)
	}
}

// finalize is the guaranteed post-extraction step: artifact cleanup over
// the destination subtree, then optional deletion of the source archive.
// Filesystem errors here are absorbed: cleanup is best-effort
// housekeeping and must never mask the extraction outcome.
func (e *Extractor) finalize(req Request) {
	e.cleaner.Clean(req.Dest)

	if !req.Options.Cleanup {
		return
	}
	if _, err := os.Lstat(req.Source); err != nil {
		return // already gone
	}
	if err := os.Remove(req.Source); err == nil {
		e.logger.Info("removed source archive", "path", req.Source)
	}
}

// ExtractAll extracts req.Source and then recursively extracts every
// archive found inside its output.
//
// Descent is driven by re-scanning the output directory rather than by
// any archive-format manifest: the expected output directory is
// req.Dest joined with req.Source's base name minus its final
// extension. Archives usually unpack into a directory of that name; if
// the directory is absent (the archive was renamed after creation, or
// unpacks flat), descent stops silently for that branch.
func (e *Extractor) ExtractAll(req Request) {
	e.extractAll(req, 0)
}

func (e *Extractor) extractAll(req Request, depth int) {
	if depth >= req.Options.maxDepth() {
		e.logger.Error("abandoning branch", "path", req.Source, "depth", depth, "reason", ErrMaxDepth)
		return
	}

	e.Extract(req)

	outDir := filepath.Join(req.Dest, stripExt(filepath.Base(req.Source)))
	info, err := os.Stat(outDir)
	if err != nil || !info.IsDir() {
		return // heuristic miss: nothing to descend into
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		child := filepath.Join(outDir, entry.Name())
		if !e.backend.IsArchive(child) {
			continue
		}
		e.extractAll(Request{
			Source:  child,
			Dest:    outDir,
			Options: req.Options,
		}, depth+1)
	}
}

// stripExt drops the final extension only: "outer.zip" becomes "outer",
// "data.tar.gz" becomes "data.tar".
func stripExt(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}
