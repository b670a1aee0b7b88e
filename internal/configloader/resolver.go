package configloader

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/editorconfig/editorconfig-core-go/v2"

	"github.com/yaklabco/triviafmt/pkg/config"
	"github.com/yaklabco/triviafmt/pkg/format"
	"github.com/yaklabco/triviafmt/pkg/langdetect"
	"github.com/yaklabco/triviafmt/pkg/markdown"
	"github.com/yaklabco/triviafmt/pkg/policy"
	"github.com/yaklabco/triviafmt/pkg/syntax"
	"github.com/yaklabco/triviafmt/pkg/textutil"
)

// Skip reasons reported by the resolver.
const (
	SkipGenerated   = "generated or vendored file"
	SkipMarkdownOff = "markdown code block formatting disabled"
)

const languageMarkdown = "Markdown"

// markdownExtensions are always treated as Markdown.
//
//nolint:gochecknoglobals // Read-only lookup table.
var markdownExtensions = map[string]bool{
	".md": true, ".markdown": true, ".mdown": true, ".mkd": true,
}

// Resolver turns a loaded configuration into per-file format options.
//
// Text options are layered as: configuration, then the file's .editorconfig
// section, then overrides (normally the CLI flags).
type Resolver struct {
	cfg       *config.Config
	overrides config.TextConfig
	forced    syntax.Dialect

	// lookup reads the .editorconfig definition for a path.
	lookup func(path string) (*editorconfig.Definition, error)
}

var _ format.Resolver = (*Resolver)(nil)

// NewResolver creates a resolver for cfg. Non-zero fields of overrides win
// over .editorconfig values.
func NewResolver(cfg *config.Config, overrides config.TextConfig) *Resolver {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	forced := syntax.DialectUnknown
	if cfg.Dialect != "" && cfg.Dialect != config.DialectAuto {
		forced, _ = syntax.ParseDialect(cfg.Dialect)
	}

	return &Resolver{
		cfg:       cfg,
		overrides: overrides,
		forced:    forced,
		lookup:    editorconfig.GetDefinitionForFilename,
	}
}

// Resolve implements format.Resolver.
func (r *Resolver) Resolve(path string, content []byte) (format.FileOptions, error) {
	dialect, lang := r.dialectFor(path, content)
	markdownFile := lang == languageMarkdown

	if !markdownFile && r.forced == syntax.DialectUnknown && langdetect.IsGenerated(path, content) {
		return format.FileOptions{Skip: true, SkipReason: SkipGenerated}, nil
	}
	if markdownFile && !config.BoolValue(r.cfg.Markdown.FormatCodeBlocks, true) {
		return format.FileOptions{Skip: true, SkipReason: SkipMarkdownOff}, nil
	}

	text, err := r.textOptions(path, content)
	if err != nil {
		return format.FileOptions{}, err
	}

	opts := format.Options{
		Dialect:  dialect,
		Text:     text,
		Settings: r.settings(),
		Jobs:     r.cfg.Jobs,
	}

	if !markdownFile {
		return format.FileOptions{Options: opts}, nil
	}

	return format.FileOptions{
		Options:  opts,
		Markdown: true,
		CodeBlock: func(block markdown.CodeBlock, code []byte) (format.Options, bool) {
			blockOpts := opts
			blockOpts.Dialect, _ = langdetect.ForCodeBlock(block.Language, code)
			return blockOpts, blockOpts.Dialect != syntax.DialectUnknown
		},
	}, nil
}

// dialectFor returns the dialect for a file and the go-enry language name
// when detection ran. Markdown files are recognised even when a dialect is
// forced.
func (r *Resolver) dialectFor(path string, content []byte) (syntax.Dialect, string) {
	ext := strings.ToLower(filepath.Ext(path))
	if markdownExtensions[ext] {
		return syntax.DialectUnknown, languageMarkdown
	}
	if name, ok := r.cfg.Extensions[ext]; ok {
		if dialect, err := syntax.ParseDialect(name); err == nil {
			return dialect, ""
		}
	}

	dialect, lang := langdetect.ForFile(path, content)
	if lang == languageMarkdown {
		return syntax.DialectUnknown, lang
	}
	if r.forced != syntax.DialectUnknown {
		return r.forced, lang
	}
	return dialect, lang
}

func (r *Resolver) settings() policy.Settings {
	def := policy.DefaultSettings()
	return policy.Settings{
		MaxBlankLines:        config.IntValue(r.cfg.Style.MaxBlankLines, def.MaxBlankLines),
		SpaceAfterComma:      config.BoolValue(r.cfg.Style.SpaceAfterComma, def.SpaceAfterComma),
		SpaceAroundOperators: config.BoolValue(r.cfg.Style.SpaceAroundOperators, def.SpaceAroundOperators),
	}
}

// textOptions layers configuration, .editorconfig and overrides.
func (r *Resolver) textOptions(path string, content []byte) (textutil.Options, error) {
	text := applyText(textutil.Options{}, r.cfg.Text, content)

	if config.BoolValue(r.cfg.EditorConfig, true) {
		def, err := r.lookup(path)
		if err != nil {
			return textutil.Options{}, fmt.Errorf("read editorconfig for %s: %w", path, err)
		}
		text = applyEditorConfig(text, def)
	}

	text = applyText(text, r.overrides, content)
	return text.Normalize(), nil
}

// applyText copies the set fields of cfg onto text.
func applyText(text textutil.Options, cfg config.TextConfig, content []byte) textutil.Options {
	if cfg.TabSize > 0 {
		text.TabSize = cfg.TabSize
	}
	if cfg.IndentSize > 0 {
		text.IndentSize = cfg.IndentSize
	}
	if cfg.UseTabs != nil {
		text.UseTabs = *cfg.UseTabs
	}
	if cfg.Newline != "" {
		text.Newline = newlineFor(cfg.Newline, content)
	}
	return text
}

// applyEditorConfig copies the indentation and line ending settings of def
// onto text.
func applyEditorConfig(text textutil.Options, def *editorconfig.Definition) textutil.Options {
	if def == nil {
		return text
	}

	switch def.IndentStyle {
	case editorconfig.IndentStyleTab:
		text.UseTabs = true
	case editorconfig.IndentStyleSpaces:
		text.UseTabs = false
	}

	if def.TabWidth > 0 {
		text.TabSize = def.TabWidth
	}

	switch {
	case def.IndentSize == "tab":
		if def.TabWidth > 0 {
			text.IndentSize = def.TabWidth
		} else if text.TabSize > 0 {
			text.IndentSize = text.TabSize
		}
	case def.IndentSize != "":
		if n, err := strconv.Atoi(def.IndentSize); err == nil && n > 0 {
			text.IndentSize = n
		}
	}

	switch def.EndOfLine {
	case editorconfig.EndOfLineLf:
		text.Newline = "\n"
	case editorconfig.EndOfLineCrLf:
		text.Newline = "\r\n"
	case editorconfig.EndOfLineCr:
		text.Newline = "\r"
	}

	return text
}

// newlineFor maps a configured newline name to its line break. Auto reuses
// the first line break in content and falls back to LF.
func newlineFor(name string, content []byte) string {
	switch name {
	case config.NewlineLF:
		return "\n"
	case config.NewlineCRLF:
		return "\r\n"
	case config.NewlineCR:
		return "\r"
	default:
		return DetectNewline(content)
	}
}

// DetectNewline returns the first line break sequence in content, or "\n".
func DetectNewline(content []byte) string {
	for i, b := range content {
		switch b {
		case '\n':
			return "\n"
		case '\r':
			if i+1 < len(content) && content[i+1] == '\n' {
				return "\r\n"
			}
			return "\r"
		}
	}
	return "\n"
}
