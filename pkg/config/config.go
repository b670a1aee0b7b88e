// Package config defines the configuration types for triviafmt.
// These types are plain data with yaml tags; loading, merging and validation
// live in internal/configloader.
package config

// OutputFormat specifies how results are reported.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatText, FormatJSON, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// Dialect names accepted in configuration.
const (
	DialectAuto  = "auto"
	DialectC     = "c"
	DialectBasic = "basic"
)

// Newline names accepted in configuration.
const (
	NewlineAuto = "auto"
	NewlineLF   = "lf"
	NewlineCRLF = "crlf"
	NewlineCR   = "cr"
)

// TextConfig holds the whitespace rendering options.
type TextConfig struct {
	// TabSize is the width of a tab stop.
	TabSize int `mapstructure:"tab_size" yaml:"tab_size,omitempty"`

	// IndentSize is the number of columns per indentation level.
	IndentSize int `mapstructure:"indent_size" yaml:"indent_size,omitempty"`

	// UseTabs indents with tabs where possible.
	UseTabs *bool `mapstructure:"use_tabs" yaml:"use_tabs,omitempty"`

	// Newline is the line break written for new lines: auto, lf, crlf or cr.
	// Auto reuses the first line break found in the file.
	Newline string `mapstructure:"newline" yaml:"newline,omitempty"`
}

// StyleConfig holds the formatting policy choices.
type StyleConfig struct {
	// MaxBlankLines caps consecutive blank lines. Negative disables the cap.
	MaxBlankLines *int `mapstructure:"max_blank_lines" yaml:"max_blank_lines,omitempty"`

	// SpaceAfterComma puts one space after commas.
	SpaceAfterComma *bool `mapstructure:"space_after_comma" yaml:"space_after_comma,omitempty"`

	// SpaceAroundOperators puts one space around binary operators.
	SpaceAroundOperators *bool `mapstructure:"space_around_operators" yaml:"space_around_operators,omitempty"`
}

// MarkdownConfig controls formatting of code embedded in Markdown.
type MarkdownConfig struct {
	// FormatCodeBlocks formats fenced code blocks in Markdown files.
	FormatCodeBlocks *bool `mapstructure:"format_code_blocks" yaml:"format_code_blocks,omitempty"`
}

// BackupsConfig controls backup behavior when writing files.
type BackupsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Mode    string `mapstructure:"mode" yaml:"mode"` // "sidecar" or "none"
}

// Config is the root configuration structure for triviafmt.
type Config struct {
	// Dialect forces a lexer dialect: auto, c or basic.
	Dialect string `mapstructure:"dialect" yaml:"dialect,omitempty"`

	// Text holds whitespace rendering options.
	Text TextConfig `mapstructure:"text" yaml:"text"`

	// Style holds formatting policy choices.
	Style StyleConfig `mapstructure:"style" yaml:"style"`

	// Markdown controls fenced code block formatting.
	Markdown MarkdownConfig `mapstructure:"markdown" yaml:"markdown"`

	// EditorConfig reads per-file text options from .editorconfig files.
	EditorConfig *bool `mapstructure:"editorconfig" yaml:"editorconfig,omitempty"`

	// Extensions maps file extensions (".bas") to a dialect name.
	Extensions map[string]string `mapstructure:"extensions" yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files to ignore.
	Ignore []string `mapstructure:"ignore" yaml:"ignore,omitempty"`

	// Backups configures backup behavior when writing.
	Backups BackupsConfig `mapstructure:"backups" yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Write rewrites files in place.
	Write bool `mapstructure:"-" yaml:"-"`

	// Check reports files that need formatting without changing them.
	Check bool `mapstructure:"-" yaml:"-"`

	// Diff prints a unified diff instead of writing.
	Diff bool `mapstructure:"-" yaml:"-"`

	// Format specifies the output format.
	Format OutputFormat `mapstructure:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `mapstructure:"-" yaml:"-"`

	// NoBackups disables backup creation when writing.
	NoBackups bool `mapstructure:"-" yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Dialect: DialectAuto,
		Text: TextConfig{
			TabSize:    4,
			IndentSize: 4,
			UseTabs:    Bool(false),
			Newline:    NewlineAuto,
		},
		Style: StyleConfig{
			MaxBlankLines:        Int(1),
			SpaceAfterComma:      Bool(true),
			SpaceAroundOperators: Bool(true),
		},
		Markdown: MarkdownConfig{
			FormatCodeBlocks: Bool(true),
		},
		EditorConfig: Bool(true),
		Extensions:   make(map[string]string),
		Backups: BackupsConfig{
			Enabled: false,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Jobs:   0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// Int returns a pointer to n.
func Int(n int) *int {
	return &n
}

// BoolValue returns *b, or def when b is nil.
func BoolValue(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}

// IntValue returns *n, or def when n is nil.
func IntValue(n *int, def int) int {
	if n == nil {
		return def
	}
	return *n
}
