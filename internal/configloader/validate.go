package configloader

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/triviafmt/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "text.tab_size").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownDialects lists valid dialect values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownDialects = map[string]bool{
	config.DialectAuto:  true,
	config.DialectC:     true,
	config.DialectBasic: true,
}

// knownNewlines lists valid newline values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownNewlines = map[string]bool{
	config.NewlineAuto: true,
	config.NewlineLF:   true,
	config.NewlineCRLF: true,
	config.NewlineCR:   true,
}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = map[string]bool{
	"sidecar": true,
	"none":    true,
}

// maxTextSize bounds tab_size and indent_size.
const maxTextSize = 16

// Validate checks a configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	if cfg == nil {
		return &ValidationResult{}
	}

	result := &ValidationResult{}

	if cfg.Dialect != "" && !knownDialects[cfg.Dialect] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "dialect",
			Value:   cfg.Dialect,
			Message: fmt.Sprintf("invalid dialect %q; must be one of: auto, c, basic", cfg.Dialect),
		})
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "format",
			Value:   cfg.Format,
			Message: fmt.Sprintf("invalid format %q; must be one of: text, json, diff, summary", cfg.Format),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	validateText(cfg.Text, result)

	if cfg.Style.MaxBlankLines != nil && *cfg.Style.MaxBlankLines < -1 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "style.max_blank_lines",
			Value:   *cfg.Style.MaxBlankLines,
			Message: "max_blank_lines must be >= -1 (-1 means unlimited)",
		})
	}

	if cfg.Backups.Mode != "" && !knownBackupModes[cfg.Backups.Mode] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "backups.mode",
			Value:   cfg.Backups.Mode,
			Message: fmt.Sprintf("invalid backup mode %q; must be one of: sidecar, none", cfg.Backups.Mode),
		})
	}

	validateExtensions(cfg, result)
	validateIgnorePatterns(cfg, result)

	return result
}

func validateText(text config.TextConfig, result *ValidationResult) {
	sizes := []struct {
		field string
		value int
	}{
		{"text.tab_size", text.TabSize},
		{"text.indent_size", text.IndentSize},
	}
	for _, size := range sizes {
		if size.value < 0 || size.value > maxTextSize {
			result.Errors = append(result.Errors, ValidationError{
				Field:   size.field,
				Value:   size.value,
				Message: fmt.Sprintf("must be between 1 and %d (0 means default)", maxTextSize),
			})
		}
	}

	if text.Newline != "" && !knownNewlines[text.Newline] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "text.newline",
			Value:   text.Newline,
			Message: fmt.Sprintf("invalid newline %q; must be one of: auto, lf, crlf, cr", text.Newline),
		})
	}
}

// validateExtensions checks the extension to dialect table.
func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for ext, dialect := range cfg.Extensions {
		field := "extensions." + ext
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   field,
				Value:   ext,
				Message: fmt.Sprintf("extension %q has no leading dot; it will never match", ext),
			})
		}
		if dialect != config.DialectC && dialect != config.DialectBasic {
			result.Errors = append(result.Errors, ValidationError{
				Field:   field,
				Value:   dialect,
				Message: fmt.Sprintf("invalid dialect %q; must be one of: c, basic", dialect),
			})
		}
	}
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(filepath.ToSlash(pattern), '/'); err != nil {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern: %v", err),
			})
		}
	}
}

// ValidateWithFile validates configuration and includes file path in errors.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// IsValidDialect returns true if the dialect name is valid.
func IsValidDialect(d string) bool {
	return knownDialects[d]
}

// IsValidBackupMode returns true if the backup mode is valid.
func IsValidBackupMode(mode string) bool {
	return knownBackupModes[mode]
}
