package configloader

import (
	"strings"
	"testing"

	"github.com/yaklabco/triviafmt/pkg/config"
)

// Tests in this file use t.Setenv and cannot run in parallel.

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("TRIVIAFMT_DIALECT", "BASIC")
	t.Setenv("TRIVIAFMT_TAB_SIZE", "8")
	t.Setenv("TRIVIAFMT_USE_TABS", "true")
	t.Setenv("TRIVIAFMT_NEWLINE", "crlf")
	t.Setenv("TRIVIAFMT_MAX_BLANK_LINES", "-1")
	t.Setenv("TRIVIAFMT_SPACE_AFTER_COMMA", "0")
	t.Setenv("TRIVIAFMT_MARKDOWN_CODE_BLOCKS", "false")
	t.Setenv("TRIVIAFMT_IGNORE", "vendor/**, gen/*.c ,")
	t.Setenv("TRIVIAFMT_JOBS", "2")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if cfg.Dialect != "basic" {
		t.Errorf("Dialect = %q", cfg.Dialect)
	}
	if cfg.Text.TabSize != 8 {
		t.Errorf("TabSize = %d", cfg.Text.TabSize)
	}
	if !config.BoolValue(cfg.Text.UseTabs, false) {
		t.Error("UseTabs should be true")
	}
	if cfg.Text.Newline != config.NewlineCRLF {
		t.Errorf("Newline = %q", cfg.Text.Newline)
	}
	if config.IntValue(cfg.Style.MaxBlankLines, 0) != -1 {
		t.Errorf("MaxBlankLines = %v", cfg.Style.MaxBlankLines)
	}
	if config.BoolValue(cfg.Style.SpaceAfterComma, true) {
		t.Error("SpaceAfterComma should be false")
	}
	if config.BoolValue(cfg.Markdown.FormatCodeBlocks, true) {
		t.Error("FormatCodeBlocks should be false")
	}
	if len(cfg.Ignore) != 2 || cfg.Ignore[1] != "gen/*.c" {
		t.Errorf("Ignore = %v", cfg.Ignore)
	}
	if cfg.Jobs != 2 {
		t.Errorf("Jobs = %d", cfg.Jobs)
	}
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		value string
		want  string
	}{
		{"bad bool", "TRIVIAFMT_USE_TABS", "maybe", "invalid boolean"},
		{"bad int", "TRIVIAFMT_JOBS", "four", "invalid integer"},
		{"overflowing int", "TRIVIAFMT_TAB_SIZE", "99999999999999999999", "invalid integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.env, tt.value)

			err := LoadFromEnv(config.NewConfig())
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) || !strings.Contains(err.Error(), tt.env) {
				t.Errorf("error = %v", err)
			}
		})
	}
}

func TestLoadFromEnv_NilConfig(t *testing.T) {
	if err := LoadFromEnv(nil); err != nil {
		t.Errorf("LoadFromEnv(nil) error = %v", err)
	}
}

func TestEnvVarHelpers(t *testing.T) {
	if got := GetEnvVarName("text.tab_size"); got != "TRIVIAFMT_TAB_SIZE" {
		t.Errorf("GetEnvVarName() = %q", got)
	}
	if got := GetEnvVarName("nope"); got != "" {
		t.Errorf("GetEnvVarName(unknown) = %q", got)
	}

	names := EnvVarNames()
	vars := ListEnvVars()
	if len(names) != len(vars) {
		t.Fatalf("EnvVarNames() has %d entries, ListEnvVars() %d", len(names), len(vars))
	}
	for _, name := range names {
		if vars[name] == "" {
			t.Errorf("%s has no description", name)
		}
	}
}
