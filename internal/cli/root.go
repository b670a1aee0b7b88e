// Package cli provides the Cobra command structure for triviafmt.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/triviafmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root triviafmt command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "triviafmt",
		Short: "Formats the whitespace and comments between tokens",
		Long: `triviafmt rewrites the trivia between tokens of C-family and Basic-family
source files: spaces, line breaks, indentation, comments, preprocessor
directives and line continuations. It never touches the tokens, and
fenced code blocks in Markdown files are formatted in place.

Indentation follows the configuration, .editorconfig and command-line
flags, in increasing order of precedence.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.AddCommand(newFmtCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	newHelpRenderer(color, os.Stdout).apply(rootCmd)

	return rootCmd
}
