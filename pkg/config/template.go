package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a commented configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}

	var buf bytes.Buffer
	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Lexer dialect: auto, c or basic
dialect: auto

text:
  # Width of a tab stop
  tab_size: 4
  # Columns per indentation level
  indent_size: 4
  # Indent with tabs where possible
  use_tabs: false
  # Line break for new lines: auto, lf, crlf or cr
  newline: auto

style:
  # Consecutive blank lines kept (-1 = unlimited)
  max_blank_lines: 1
  space_after_comma: true
  space_around_operators: true

markdown:
  # Format fenced code blocks in Markdown files
  format_code_blocks: true

# Read tab and indent settings from .editorconfig
editorconfig: true

# Map extra file extensions to a dialect
# extensions:
#   ".inc": c
#   ".cls": basic

# File patterns to ignore (glob patterns)
# ignore:
#   - "vendor/**"
#   - "third_party/**"

backups:
  enabled: false
  mode: sidecar
`)

	return buf.Bytes(), nil
}

// templateToJSON renders the default configuration as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()

	jsonBytes, err := json.MarshalIndent(map[string]any{
		"dialect": cfg.Dialect,
		"text": map[string]any{
			"tab_size":    cfg.Text.TabSize,
			"indent_size": cfg.Text.IndentSize,
			"use_tabs":    BoolValue(cfg.Text.UseTabs, false),
			"newline":     cfg.Text.Newline,
		},
		"style": map[string]any{
			"max_blank_lines":        IntValue(cfg.Style.MaxBlankLines, 1),
			"space_after_comma":      BoolValue(cfg.Style.SpaceAfterComma, true),
			"space_around_operators": BoolValue(cfg.Style.SpaceAroundOperators, true),
		},
		"markdown": map[string]any{
			"format_code_blocks": BoolValue(cfg.Markdown.FormatCodeBlocks, true),
		},
		"editorconfig": BoolValue(cfg.EditorConfig, true),
		"backups": map[string]any{
			"enabled": cfg.Backups.Enabled,
			"mode":    cfg.Backups.Mode,
		},
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}

	return jsonBytes, nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# triviafmt configuration
# See: https://github.com/yaklabco/triviafmt`
}
