// SPDX-License-Identifier: MPL-2.0

package extract

import "archx/pkg/archive"

// DefaultMaxDepth bounds recursive descent when Options.MaxDepth is
// unset. Sixteen levels of archives-inside-archives is well past any
// legitimate packaging scheme; deeper nesting is treated as pathological.
const DefaultMaxDepth = 16

// Options controls an extraction run. The same value is carried
// unchanged through every level of the recursion: there are no
// per-level overrides.
type Options struct {
	// Verbosity is forwarded to the backend; negative silences external
	// tools, positive lets them stream their own output.
	Verbosity int
	// Program forces a specific external extraction tool for every
	// archive in the run. Empty selects the built-in codecs.
	Program string
	// Interactive lets external tools prompt on the caller's terminal.
	Interactive bool
	// Password is used for encrypted archives at every level.
	Password string
	// Cleanup deletes each source archive after its extraction attempt,
	// at every level of the recursion, not just the top.
	Cleanup bool
	// MaxDepth bounds the recursion. Zero or negative means
	// DefaultMaxDepth.
	MaxDepth int
}

// backend projects the option set the archive backend understands.
func (o Options) backend() archive.Options {
	return archive.Options{
		Verbosity:   o.Verbosity,
		Program:     o.Program,
		Interactive: o.Interactive,
		Password:    o.Password,
	}
}

// maxDepth resolves the effective recursion bound.
func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Request names one archive to extract and where to put the result.
// A fresh Request is derived for each recursive call; the value itself
// is never mutated.
type Request struct {
	// Source is the path of the archive file.
	Source string
	// Dest is the directory the archive's contents are extracted into.
	Dest string
	// Options apply to this request and every request derived from it.
	Options Options
}
