package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/triviafmt/pkg/fsutil"
)

// Discover finds the source files selected by opts. Directories are walked
// for files with a known extension; files named explicitly are kept whatever
// their extension. Hidden entries and backups are skipped. The result is a
// sorted, de-duplicated list of absolute paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	exclude, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("exclude patterns: %w", err)
	}
	include, err := compileGlobs(opts.IncludeGlobs)
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}

	d := &discoverer{
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		exclude:    exclude,
		include:    include,
		follow:     opts.FollowSymlinks,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if info.IsDir() {
			if err := d.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if d.selected(absPath, false) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	workDir    string
	extensions []string
	exclude    globSet
	include    globSet
	follow     bool

	seen  map[string]struct{}
	files []string
}

func (d *discoverer) add(path string) {
	if _, ok := d.seen[path]; ok {
		return
	}
	d.seen[path] = struct{}{}
	d.files = append(d.files, path)
}

func (d *discoverer) rel(path string) string {
	relPath, err := filepath.Rel(d.workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(relPath)
}

// selected applies the include and exclude patterns and, for files found by
// walking, the extension filter.
func (d *discoverer) selected(path string, walked bool) bool {
	if walked && !hasExtension(path, d.extensions) {
		return false
	}
	if strings.HasSuffix(path, fsutil.BackupSuffix) {
		return false
	}

	relPath := d.rel(path)
	if d.exclude.match(relPath, false) {
		return false
	}
	return len(d.include) == 0 || d.include.match(relPath, false)
}

func (d *discoverer) walk(ctx context.Context, root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		hidden := path != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || d.exclude.match(d.rel(path), true) {
				return filepath.SkipDir
			}
			return nil
		}
		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // unreadable targets are skipped
			}
			if info.IsDir() {
				if !d.follow {
					return nil
				}
				// WalkDir does not follow links, so walk the target itself.
				return d.walk(ctx, target)
			}
		}

		if d.selected(path, true) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext != "" && slices.ContainsFunc(extensions, func(e string) bool {
		return strings.EqualFold(e, ext)
	})
}

// globPattern is one compiled ignore or include pattern.
type globPattern struct {
	full glob.Glob

	// base matches the file name alone, for patterns without a slash.
	base glob.Glob
}

type globSet []globPattern

// compileGlobs compiles slash-separated patterns where * stays within one
// path segment and ** spans segments. A leading **/ also matches at the top
// level.
func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if rest, ok := strings.CutPrefix(pattern, "**/"); ok {
			pattern = "{" + rest + ",**/" + rest + "}"
		}

		full, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		p := globPattern{full: full}
		if !strings.Contains(pattern, "/") {
			p.base = full
		}
		set = append(set, p)
	}
	return set, nil
}

// match reports whether relPath matches any pattern. Directories also match
// patterns that cover everything below them, such as "vendor/**".
func (s globSet) match(relPath string, isDir bool) bool {
	for _, p := range s {
		if p.full.Match(relPath) || (isDir && p.full.Match(relPath+"/")) {
			return true
		}
		if p.base != nil && p.base.Match(filepath.Base(relPath)) {
			return true
		}
	}
	return false
}
