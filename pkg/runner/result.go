package runner

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/yaklabco/triviafmt/pkg/format"
)

// FileOutcome is the result of one file, or the error that stopped it.
type FileOutcome struct {
	Path string

	// Result is nil when Error is set.
	Result *format.Result

	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	// FilesChanged counts files whose formatting differs from their content.
	FilesChanged int

	// FilesWritten counts files rewritten on disk.
	FilesWritten int

	BackupsCreated int

	// Edits is the total number of non-trivial edits across changed files.
	Edits int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats

	// Errors contains any non-file-specific errors encountered.
	Errors []error
}

// HasChanges reports whether any file needed formatting.
func (r *Result) HasChanges() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0 || len(r.Errors) > 0
}

// Err combines every file error, prefixed with its path, and the run-level
// errors into one error. It returns nil when nothing failed.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}

	var err error
	for _, outcome := range r.Files {
		if outcome.Error != nil {
			err = multierr.Append(err, fmt.Errorf("%s: %w", outcome.Path, outcome.Error))
		}
	}
	return multierr.Combine(append([]error{err}, r.Errors...)...)
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++

	res := outcome.Result
	if res.Skipped {
		r.Stats.FilesSkipped++
		return
	}
	if res.Changed {
		r.Stats.FilesChanged++
		r.Stats.Edits += len(res.Edits)
	}
	if res.Written {
		r.Stats.FilesWritten++
	}
	if res.BackupCreated {
		r.Stats.BackupsCreated++
	}
}
