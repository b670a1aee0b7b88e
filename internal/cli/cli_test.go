package cli_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/yaklabco/triviafmt/internal/cli"
	"github.com/yaklabco/triviafmt/pkg/format"
	"github.com/yaklabco/triviafmt/pkg/runner"
)

func testInfo() cli.BuildInfo {
	return cli.BuildInfo{Version: "test-version", Commit: "test-commit", Date: "test-date"}
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	if cmd.Use != "triviafmt" {
		t.Errorf("expected Use to be 'triviafmt', got %q", cmd.Use)
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("expected Short and Long descriptions to be set")
	}

	for _, name := range []string{"debug", "config", "color"} {
		if cmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestRootCommandHasSubcommands(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	for _, name := range []string{"fmt", "init", "version"} {
		subCmd, _, err := cmd.Find([]string{name})
		if err != nil {
			t.Errorf("expected subcommand %q to exist, got error: %v", name, err)
			continue
		}
		if subCmd.Name() != name {
			t.Errorf("expected subcommand name %q, got %q", name, subCmd.Name())
		}
	}
}

func TestFmtCommandFlags(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())
	fmtCmd, _, err := cmd.Find([]string{"fmt"})
	if err != nil {
		t.Fatalf("fmt command not found: %v", err)
	}

	expectedFlags := map[string]string{
		"write":          "false",
		"check":          "false",
		"diff":           "false",
		"format":         "text",
		"jobs":           "0",
		"ignore":         "[]",
		"dialect":        "auto",
		"tab-size":       "0",
		"indent-size":    "0",
		"use-tabs":       "false",
		"newline":        "",
		"backup":         "false",
		"no-backups":     "false",
		"stdin-filename": "",
	}

	for name, def := range expectedFlags {
		flag := fmtCmd.Flags().Lookup(name)
		if flag == nil {
			t.Errorf("expected flag --%s to exist", name)
			continue
		}
		if flag.DefValue != def {
			t.Errorf("--%s default = %q, want %q", name, flag.DefValue, def)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"triviafmt", "test-version", "test-commit", "test-date"} {
		if !strings.Contains(out, want) {
			t.Errorf("version output %q missing %q", out, want)
		}
	}
}

func TestHelpOutput(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(testInfo())

	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{"fmt", "--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help failed: %v", err)
	}

	out := stdout.String()
	for _, want := range []string{"Usage:", "Flags:", "Global Flags:", "--write", "--tab-size int"} {
		if !strings.Contains(out, want) {
			t.Errorf("help output missing %q:\n%s", want, out)
		}
	}
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, cli.ExitSuccess},
		{"formatting needed", cli.ErrFormattingNeeded, cli.ExitFormattingNeeded},
		{"wrapped formatting needed", fmt.Errorf("run: %w", cli.ErrFormattingNeeded), cli.ExitFormattingNeeded},
		{"exit error", &cli.ExitError{Code: cli.ExitConfigError, Err: errors.New("bad")}, cli.ExitConfigError},
		{"other", errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestExitCodeFromResult(t *testing.T) {
	t.Parallel()

	clean := &runner.Result{}
	failed := &runner.Result{Stats: runner.Stats{FilesErrored: 1}}
	changed := &runner.Result{Files: []runner.FileOutcome{{Result: &format.Result{Changed: true}}}}

	tests := []struct {
		name    string
		result  *runner.Result
		pending int
		check   bool
		want    int
	}{
		{"nil", nil, 0, true, cli.ExitSuccess},
		{"clean", clean, 0, true, cli.ExitSuccess},
		{"pending without check", changed, 1, false, cli.ExitSuccess},
		{"pending with check", changed, 1, true, cli.ExitFormattingNeeded},
		{"errors win", failed, 1, true, cli.ExitIOError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := cli.ExitCodeFromResult(tt.result, tt.pending, tt.check); got != tt.want {
				t.Errorf("ExitCodeFromResult() = %d, want %d", got, tt.want)
			}
		})
	}
}
