package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/triviafmt/internal/configloader"
	"github.com/yaklabco/triviafmt/internal/logging"
	"github.com/yaklabco/triviafmt/pkg/config"
	"github.com/yaklabco/triviafmt/pkg/format"
	"github.com/yaklabco/triviafmt/pkg/reporter"
	"github.com/yaklabco/triviafmt/pkg/runner"
)

// stdinPath is the path argument that reads source from standard input.
const stdinPath = "-"

type fmtFlags struct {
	format         string
	dialect        string
	newline        string
	ignore         []string
	tabSize        int
	indentSize     int
	useTabs        bool
	backup         bool
	verbose        bool
	compact        bool
	followSymlinks bool
	stdinFilename  string
}

func newFmtCommand() *cobra.Command {
	var cfg config.Config
	flags := &fmtFlags{}

	cmd := &cobra.Command{
		Use:   "fmt [paths...]",
		Short: "Format whitespace, comments and directives between tokens",
		Long:  fmtLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd, args, &cfg, flags)
		},
	}

	addFmtFlags(cmd, &cfg, flags)
	cmd.MarkFlagsMutuallyExclusive("write", "check")

	return cmd
}

const fmtLongDescription = `Format the trivia between tokens: spaces, line breaks, comments,
directives and line continuations. Tokens themselves are never changed.

By default, reports the files under the current directory that need
formatting. Files are C-family or Basic-family sources, detected from
the file name and content, and the fenced code blocks of Markdown files.

Examples:
  triviafmt fmt                         # Report files that need formatting
  triviafmt fmt --write src/            # Format src/ in place
  triviafmt fmt --check                 # Exit 1 if anything needs formatting
  triviafmt fmt --diff main.c           # Show the changes as a diff
  triviafmt fmt --use-tabs --tab-size 8 # Override .editorconfig
  cat a.bas | triviafmt fmt - --stdin-filename a.bas`

func runFmt(cmd *cobra.Command, args []string, cfg *config.Config, flags *fmtFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.Default()
	ctx = logging.WithLogger(ctx, logger)

	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("dialect") {
		cfg.Dialect = flags.dialect
	}
	if cmd.Flags().Changed("newline") {
		cfg.Text.Newline = flags.newline
	}
	if flags.backup {
		cfg.Backups.Enabled = true
	}
	cfg.Ignore = flags.ignore

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cfg,
	})
	if err != nil {
		return exitError(ExitConfigError, errors.Join(errors.New("failed to load configuration"), err))
	}

	finalCfg := loadResult.Config

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldPaths, loadResult.LoadedFrom)
	}
	logger.Debug("configuration loaded",
		logging.FieldDialect, finalCfg.Dialect,
		logging.FieldWrite, finalCfg.Write,
		logging.FieldCheck, finalCfg.Check,
		logging.FieldJobs, finalCfg.Jobs,
	)

	resolver := configloader.NewResolver(finalCfg, textOverrides(cmd, flags))
	pipeline := format.NewPipeline(resolver)

	if len(args) == 1 && args[0] == stdinPath {
		return formatStdin(ctx, cmd, pipeline, finalCfg, flags.stdinFilename)
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   finalCfg.Ignore,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           finalCfg.Jobs,
		Config:         finalCfg,
	}

	logger.Debug("starting format run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(pipeline).Run(ctx, runOpts)
	if err != nil {
		return exitError(ExitInternalError, errors.Join(errors.New("format run failed"), err))
	}

	logger.Debug("format run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
		logging.FieldFilesSkipped, result.Stats.FilesSkipped,
		logging.FieldFilesWritten, result.Stats.FilesWritten,
	)

	outputFormat, err := reportFormat(finalCfg)
	if err != nil {
		return exitError(ExitInvalidUsage, err)
	}

	colorMode, err := cmd.Flags().GetString("color")
	if err != nil {
		colorMode = "auto"
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      outputFormat,
		Color:       colorMode,
		ShowSummary: true,
		Verbose:     flags.verbose,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	pending, err := rep.Report(ctx, result)
	if err != nil {
		logger.Error("report failed", logging.FieldError, err)
		return fmt.Errorf("report results: %w", err)
	}

	switch ExitCodeFromResult(result, pending, finalCfg.Check) {
	case ExitIOError:
		return exitError(ExitIOError, result.Err())
	case ExitFormattingNeeded:
		return ErrFormattingNeeded
	default:
		return nil
	}
}

// textOverrides collects the text flags set on the command line. They win
// over .editorconfig.
func textOverrides(cmd *cobra.Command, flags *fmtFlags) config.TextConfig {
	var text config.TextConfig
	if cmd.Flags().Changed("tab-size") {
		text.TabSize = flags.tabSize
	}
	if cmd.Flags().Changed("indent-size") {
		text.IndentSize = flags.indentSize
	}
	if cmd.Flags().Changed("use-tabs") {
		text.UseTabs = config.Bool(flags.useTabs)
	}
	if cmd.Flags().Changed("newline") {
		text.Newline = flags.newline
	}
	return text
}

// reportFormat picks the reporter. --diff shows diffs unless another
// format was chosen.
func reportFormat(cfg *config.Config) (reporter.Format, error) {
	if cfg.Diff && (cfg.Format == "" || cfg.Format == config.FormatText) {
		return reporter.FormatDiff, nil
	}
	f, err := reporter.ParseFormat(string(cfg.Format))
	if err != nil {
		return "", fmt.Errorf("invalid format: %w", err)
	}
	return f, nil
}

// formatStdin formats standard input and writes the result to standard
// output. name is used for dialect detection and .editorconfig lookup.
func formatStdin(ctx context.Context, cmd *cobra.Command, pipeline *format.Pipeline, cfg *config.Config, name string) error {
	if name == "" {
		return exitError(ExitInvalidUsage, errors.New("--stdin-filename is required when reading from stdin"))
	}

	original, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return exitError(ExitIOError, fmt.Errorf("read stdin: %w", err))
	}

	opts := format.PipelineOptionsFromConfig(cfg)
	opts.Write = false

	result, err := pipeline.ProcessContent(ctx, name, original, opts)
	if err != nil {
		return exitError(ExitIOError, fmt.Errorf("format stdin: %w", err))
	}
	if result.Skipped {
		logging.FromContext(ctx).Warn("input left unchanged", logging.FieldPath, name, logging.FieldReason, result.SkipReason)
	}

	out := original
	if result.Changed {
		out = result.Formatted
	}

	if cfg.Check {
		if result.Changed {
			return ErrFormattingNeeded
		}
		return nil
	}
	if cfg.Diff {
		if result.Diff.HasChanges() {
			_, err = io.WriteString(cmd.OutOrStdout(), result.Diff.String())
		}
	} else {
		_, err = cmd.OutOrStdout().Write(out)
	}
	if err != nil {
		return exitError(ExitIOError, fmt.Errorf("write stdout: %w", err))
	}
	return nil
}

func addFmtFlags(cmd *cobra.Command, cfg *config.Config, flags *fmtFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write formatted files in place")
	cmd.Flags().BoolVarP(&cfg.Check, "check", "c", false, "exit with status 1 if any file needs formatting")
	cmd.Flags().BoolVarP(&cfg.Diff, "diff", "d", false, "show changes as a unified diff")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff, summary")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringVar(&flags.dialect, "dialect", "auto", "lexer dialect: auto, c, basic")

	cmd.Flags().IntVar(&flags.tabSize, "tab-size", 0, "width of a tab stop")
	cmd.Flags().IntVar(&flags.indentSize, "indent-size", 0, "columns per indentation level")
	cmd.Flags().BoolVar(&flags.useTabs, "use-tabs", false, "indent with tabs")
	cmd.Flags().StringVar(&flags.newline, "newline", "", "line break for new lines: auto, lf, crlf, cr")

	cmd.Flags().BoolVar(&flags.backup, "backup", false, "keep a .triviafmt.bak copy of each written file")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backups even if configured")
	cmd.Flags().BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "also list formatted and skipped files")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "use compact output format")
	cmd.Flags().StringVar(&flags.stdinFilename, "stdin-filename", "", "file name used for input read from stdin")
}
