// Package runner formats many files concurrently.
package runner

import (
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/triviafmt/pkg/config"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// picked up when walking directories. Defaults to DefaultExtensions()
	// plus the keys of Config.Extensions. Files named explicitly are always
	// processed.
	Extensions []string

	// IncludeGlobs are additional glob patterns to include, relative to WorkingDir.
	// Empty means "include everything that matches Extensions".
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	// These merge ignore rules from config and CLI (e.g. --ignore).
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Config is the resolved configuration for this run.
	Config *config.Config
}

// DefaultExtensions returns the extensions of source files in the supported
// dialects, plus Markdown.
func DefaultExtensions() []string {
	return []string{
		// C family
		".c", ".h", ".cc", ".cpp", ".cxx", ".hpp", ".hh", ".cs", ".java",
		".js", ".mjs", ".ts", ".go", ".rs", ".kt", ".swift", ".scala", ".dart",
		// Basic family
		".vb", ".bas", ".cls", ".frm", ".vbs",
		// Markdown with fenced code
		".md", ".markdown",
	}
}

// effectiveExtensions returns the extensions to walk for.
func (o Options) effectiveExtensions() []string {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions()
	}
	if o.Config == nil || len(o.Config.Extensions) == 0 {
		return exts
	}

	extra := slices.Sorted(maps.Keys(o.Config.Extensions))
	out := slices.Clone(exts)
	for _, ext := range extra {
		ext = strings.ToLower(ext)
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
