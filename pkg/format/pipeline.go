package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/yaklabco/triviafmt/pkg/fix"
	"github.com/yaklabco/triviafmt/pkg/fsutil"
	"github.com/yaklabco/triviafmt/pkg/markdown"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/syntax/lexer"
)

// Pipeline error types for categorization.
var (
	// ErrFileNotFound indicates the file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrPermissionDenied indicates a permission error.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrFormatFailure indicates the formatter could not produce edits.
	ErrFormatFailure = errors.New("format failure")

	// ErrWriteFailure indicates a write error.
	ErrWriteFailure = errors.New("write failure")
)

// Skip reasons reported by the pipeline.
const (
	SkipUnknownDialect = "no supported dialect"
	SkipBinary         = "binary file"
	SkipModified       = "file modified during processing"
	SkipUnstable       = "formatting is not stable"
	SkipTokensChanged  = "formatting changed tokens"
)

// FileOptions describe how one file is formatted.
type FileOptions struct {
	// Options format the file, or each code block of a Markdown file.
	Options Options

	// Markdown formats fenced code blocks instead of the whole file.
	Markdown bool

	// CodeBlock returns the options for one fenced block of a Markdown
	// file, or false to leave the block alone.
	CodeBlock func(block markdown.CodeBlock, content []byte) (Options, bool)

	// Skip leaves the file untouched, giving SkipReason.
	Skip       bool
	SkipReason string
}

// Resolver decides the options for a file.
type Resolver interface {
	Resolve(path string, content []byte) (FileOptions, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string, content []byte) (FileOptions, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(path string, content []byte) (FileOptions, error) {
	return f(path, content)
}

// Fixed returns a resolver that formats every file with opts.
func Fixed(opts Options) Resolver {
	return ResolverFunc(func(string, []byte) (FileOptions, error) {
		return FileOptions{Options: opts}, nil
	})
}

// Result is the outcome of processing one file.
type Result struct {
	// Path is the file path that was processed.
	Path string

	// Dialect is the dialect the file was lexed with. Markdown files report
	// DialectUnknown.
	Dialect syntax.Dialect

	// Markdown is true when only fenced code blocks were formatted.
	Markdown bool

	// OriginalInfo is the file state before processing.
	OriginalInfo *fsutil.FileInfo

	// Edits are the non-trivial edits that turn the original into Formatted.
	Edits []fix.TextEdit

	// Changed is true if formatting changed the content.
	Changed bool

	// Formatted is the formatted content (nil if unchanged).
	Formatted []byte

	// Diff is the unified diff, when requested.
	Diff *fix.Diff

	// Skipped is true if the file was left alone.
	Skipped bool

	// SkipReason explains why the file was skipped.
	SkipReason string

	// BackupCreated is true if a backup was created for this file.
	BackupCreated bool

	// Written is true if the file was written to disk.
	Written bool
}

// Summary returns a human-readable summary of the result.
func (r *Result) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}

// PipelineOptions controls pipeline behavior.
type PipelineOptions struct {
	// Write writes formatted content back to the file.
	Write bool

	// Diff generates a unified diff for changed files.
	Diff bool

	// Backup configures backup behavior.
	Backup fsutil.BackupConfig

	// StrictRaceDetection uses hash comparison for modification detection.
	// When false, only mod time and size are checked.
	StrictRaceDetection bool

	// Verify re-lexes and re-formats the result and skips the file if the
	// tokens changed or a second pass would change it again.
	Verify bool
}

// DefaultPipelineOptions returns sensible defaults.
func DefaultPipelineOptions() PipelineOptions {
	return PipelineOptions{
		Backup:              fsutil.DefaultBackupConfig(),
		StrictRaceDetection: true,
		Verify:              true,
	}
}

// Pipeline formats single files safely.
type Pipeline struct {
	Resolver Resolver
}

// NewPipeline creates a pipeline that takes per-file options from resolver.
func NewPipeline(resolver Resolver) *Pipeline {
	return &Pipeline{Resolver: resolver}
}

// ProcessFile runs the full pipeline for a single file.
//
// The pipeline performs the following steps:
//  1. Read and hash the original file.
//  2. Format the content (see ProcessContent).
//  3. Check for concurrent modifications.
//  4. Create a backup (if enabled).
//  5. Write the formatted content atomically.
func (p *Pipeline) ProcessFile(ctx context.Context, path string, opts PipelineOptions) (*Result, error) {
	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	result, err := p.ProcessContent(ctx, path, original, opts)
	if err != nil {
		return nil, err
	}
	result.OriginalInfo = info

	if !result.Changed || result.Skipped || !opts.Write {
		return result, nil
	}

	modified, err := fsutil.Modified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = SkipModified
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(ctx, path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(ctx, path, result.Formatted, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true

	return result, nil
}

// ProcessContent formats in-memory content without file I/O.
func (p *Pipeline) ProcessContent(
	ctx context.Context,
	path string,
	original []byte,
	opts PipelineOptions,
) (*Result, error) {
	result := &Result{Path: path}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	if fsutil.IsBinary(original) {
		result.Skipped = true
		result.SkipReason = SkipBinary
		return result, nil
	}

	fileOpts, err := p.Resolver.Resolve(path, original)
	if err != nil {
		return nil, fmt.Errorf("resolve options: %w", err)
	}
	if fileOpts.Skip {
		result.Skipped = true
		result.SkipReason = fileOpts.SkipReason
		return result, nil
	}
	result.Markdown = fileOpts.Markdown
	if !fileOpts.Markdown {
		result.Dialect = fileOpts.Options.Dialect
		if result.Dialect == syntax.DialectUnknown {
			result.Skipped = true
			result.SkipReason = SkipUnknownDialect
			return result, nil
		}
	}

	edits, err := p.edits(ctx, original, fileOpts)
	if err != nil {
		return nil, err
	}

	formatted := fix.ApplyEdits(original, edits)
	if bytes.Equal(formatted, original) {
		return result, nil
	}

	if opts.Verify {
		reason, err := p.verify(ctx, original, formatted, fileOpts)
		if err != nil {
			return nil, err
		}
		if reason != "" {
			result.Skipped = true
			result.SkipReason = reason
			return result, nil
		}
	}

	result.Edits = fix.DropNoOps(original, edits)
	result.Changed = true
	result.Formatted = formatted

	if opts.Diff {
		result.Diff = fix.GenerateDiff(path, original, formatted)
	}

	return result, nil
}

// edits formats content as a whole document or block by block.
func (p *Pipeline) edits(ctx context.Context, content []byte, fileOpts FileOptions) ([]fix.TextEdit, error) {
	var edits []fix.TextEdit
	var err error

	if fileOpts.Markdown {
		edits, err = markdown.FormatCodeBlocks(ctx, content,
			func(ctx context.Context, block markdown.CodeBlock, code []byte) ([]fix.TextEdit, error) {
				if fileOpts.CodeBlock == nil {
					return nil, nil
				}
				blockOpts, ok := fileOpts.CodeBlock(block, code)
				if !ok {
					return nil, nil
				}
				return NewDocument(string(code), blockOpts).Edits(ctx)
			})
	} else {
		edits, err = NewDocument(string(content), fileOpts.Options).Edits(ctx)
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("processing cancelled: %w", ctxErr)
		}
		return nil, fmt.Errorf("%w: %w", ErrFormatFailure, err)
	}
	return edits, nil
}

// verify returns a skip reason when formatted is not a safe replacement for
// original.
func (p *Pipeline) verify(ctx context.Context, original, formatted []byte, fileOpts FileOptions) (string, error) {
	if !fileOpts.Markdown {
		dialect := fileOpts.Options.Dialect
		if !sameTokens(lexer.Lex(dialect, string(original)), lexer.Lex(dialect, string(formatted))) {
			return SkipTokensChanged, nil
		}
	}

	again, err := p.edits(ctx, formatted, fileOpts)
	if err != nil {
		return "", err
	}
	if !bytes.Equal(fix.ApplyEdits(formatted, again), formatted) {
		return SkipUnstable, nil
	}
	return "", nil
}

// sameTokens reports whether two trees hold the same tokens and the same
// comments in the same order. Comments may move between adjacent tokens.
func sameTokens(a, b *syntax.Tree) bool {
	if len(a.Tokens) != len(b.Tokens) {
		return false
	}
	for i := range a.Tokens {
		if a.Tokens[i].Kind != b.Tokens[i].Kind || a.Tokens[i].Text != b.Tokens[i].Text {
			return false
		}
	}
	return slices.Equal(content(a), content(b))
}

// content returns the text of every non-layout trivia item of a tree with
// runs of whitespace collapsed, since multi-line comments are re-indented.
func content(tree *syntax.Tree) []string {
	var out []string
	for _, tok := range tree.Tokens {
		for _, list := range [][]syntax.Trivia{tok.Leading, tok.Trailing} {
			for _, item := range list {
				if !item.IsWhitespaceOrEndOfLine() {
					out = append(out, strings.Join(strings.Fields(item.Text), " "))
				}
			}
		}
	}
	return out
}

// categorizeError wraps an error with the appropriate pipeline error type.
func categorizeError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}

	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}

	return err
}

// IsPipelineError checks if an error is a known pipeline error type.
func IsPipelineError(err error) bool {
	return errors.Is(err, ErrFileNotFound) ||
		errors.Is(err, ErrPermissionDenied) ||
		errors.Is(err, ErrFormatFailure) ||
		errors.Is(err, ErrWriteFailure)
}
