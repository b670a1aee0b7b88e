// Package main is the entry point for the triviafmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yaklabco/triviafmt/internal/cli"
	"github.com/yaklabco/triviafmt/internal/logging"
)

// Build-time variables set by GoReleaser via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	if err := rootCmd.Execute(); err != nil {
		// Pending formatting is reported by the reporter, not logged.
		if !errors.Is(err, cli.ErrFormattingNeeded) {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return cli.ExitCode(err)
	}

	return cli.ExitSuccess
}
