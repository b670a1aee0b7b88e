package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"fortio.org/safecast"

	"github.com/yaklabco/triviafmt/pkg/config"
)

// envVarPrefix is the prefix for all triviafmt environment variables.
const envVarPrefix = "TRIVIAFMT_"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"DIALECT":                {"dialect", envTypeString, "Lexer dialect: auto, c or basic"},
	"FORMAT":                 {"format", envTypeString, "Output format: text, json, diff or summary"},
	"JOBS":                   {"jobs", envTypeInt, "Number of parallel workers (0 = auto)"},
	"TAB_SIZE":               {"text.tab_size", envTypeInt, "Width of a tab stop"},
	"INDENT_SIZE":            {"text.indent_size", envTypeInt, "Columns per indentation level"},
	"USE_TABS":               {"text.use_tabs", envTypeBool, "Indent with tabs: true or false"},
	"NEWLINE":                {"text.newline", envTypeString, "Line break: auto, lf, crlf or cr"},
	"MAX_BLANK_LINES":        {"style.max_blank_lines", envTypeInt, "Consecutive blank lines kept (-1 = unlimited)"},
	"SPACE_AFTER_COMMA":      {"style.space_after_comma", envTypeBool, "Space after commas: true or false"},
	"SPACE_AROUND_OPERATORS": {"style.space_around_operators", envTypeBool, "Spaces around binary operators: true or false"},
	"MARKDOWN_CODE_BLOCKS":   {"markdown.format_code_blocks", envTypeBool, "Format fenced code in Markdown: true or false"},
	"EDITORCONFIG":           {"editorconfig", envTypeBool, "Read .editorconfig files: true or false"},
	"BACKUPS_ENABLED":        {"backups.enabled", envTypeBool, "Enable backups when writing: true or false"},
	"BACKUPS_MODE":           {"backups.mode", envTypeString, "Backup mode: sidecar or none"},
	"IGNORE":                 {"ignore", envTypeSlice, "Comma-separated list of ignore patterns"},
	"NO_BACKUPS":             {"no_backups", envTypeBool, "Disable backups: true or false"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with TRIVIAFMT_ (e.g., TRIVIAFMT_DIALECT).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		wide, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		i, err := safecast.Conv[int](wide)
		if err != nil {
			return fmt.Errorf("integer out of range for %s: %w", envVar, err)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "dialect":
		cfg.Dialect = strings.ToLower(value)
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "text.newline":
		cfg.Text.Newline = strings.ToLower(value)
	case "backups.mode":
		cfg.Backups.Mode = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "text.use_tabs":
		cfg.Text.UseTabs = config.Bool(value)
	case "style.space_after_comma":
		cfg.Style.SpaceAfterComma = config.Bool(value)
	case "style.space_around_operators":
		cfg.Style.SpaceAroundOperators = config.Bool(value)
	case "markdown.format_code_blocks":
		cfg.Markdown.FormatCodeBlocks = config.Bool(value)
	case "editorconfig":
		cfg.EditorConfig = config.Bool(value)
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "jobs":
		cfg.Jobs = value
	case "text.tab_size":
		cfg.Text.TabSize = value
	case "text.indent_size":
		cfg.Text.IndentSize = value
	case "style.max_blank_lines":
		cfg.Style.MaxBlankLines = config.Int(value)
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their
// descriptions.
func ListEnvVars() map[string]string {
	vars := make(map[string]string, len(envMappings))
	for suffix, mapping := range envMappings {
		vars[envVarPrefix+suffix] = mapping.help
	}
	return vars
}

// EnvVarNames returns the supported environment variable names, sorted.
func EnvVarNames() []string {
	names := make([]string, 0, len(envMappings))
	for suffix := range envMappings {
		names = append(names, envVarPrefix+suffix)
	}
	sort.Strings(names)
	return names
}
