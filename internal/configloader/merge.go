package configloader

import (
	"maps"

	"github.com/yaklabco/triviafmt/pkg/config"
)

// merge combines two configurations, with override taking precedence over base.
// The merge follows these rules:
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer values: override overwrites base if override is non-nil
//   - Maps: deep merge, with override's values taking precedence
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.Dialect != "" {
		result.Dialect = override.Dialect
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.EditorConfig != nil {
		result.EditorConfig = override.EditorConfig
	}

	// CLI-only switches can only be turned on.
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}
	if override.Diff {
		result.Diff = true
	}
	if override.NoBackups {
		result.NoBackups = true
	}

	result.Text = mergeText(base.Text, override.Text)
	result.Style = mergeStyle(base.Style, override.Style)
	if override.Markdown.FormatCodeBlocks != nil {
		result.Markdown.FormatCodeBlocks = override.Markdown.FormatCodeBlocks
	}

	if override.Backups.Mode != "" {
		result.Backups.Mode = override.Backups.Mode
	}
	// Enabled is a plain bool, so a later layer can only switch backups on.
	if override.Backups.Enabled {
		result.Backups.Enabled = true
	}

	result.Extensions = mergeExtensions(base.Extensions, override.Extensions)

	if override.Ignore != nil {
		result.Ignore = override.Ignore
	}

	return &result
}

func mergeText(base, override config.TextConfig) config.TextConfig {
	result := base
	if override.TabSize != 0 {
		result.TabSize = override.TabSize
	}
	if override.IndentSize != 0 {
		result.IndentSize = override.IndentSize
	}
	if override.UseTabs != nil {
		result.UseTabs = override.UseTabs
	}
	if override.Newline != "" {
		result.Newline = override.Newline
	}
	return result
}

func mergeStyle(base, override config.StyleConfig) config.StyleConfig {
	result := base
	if override.MaxBlankLines != nil {
		result.MaxBlankLines = override.MaxBlankLines
	}
	if override.SpaceAfterComma != nil {
		result.SpaceAfterComma = override.SpaceAfterComma
	}
	if override.SpaceAroundOperators != nil {
		result.SpaceAroundOperators = override.SpaceAroundOperators
	}
	return result
}

// mergeExtensions returns a fresh map holding base's entries overlaid with
// override's.
func mergeExtensions(base, override map[string]string) map[string]string {
	if base == nil && override == nil {
		return nil
	}
	result := make(map[string]string, len(base)+len(override))
	maps.Copy(result, base)
	maps.Copy(result, override)
	return result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
