// Package langdetect maps files and code snippets to a lexer dialect.
// It uses go-enry to identify the language from a filename, a fenced code
// block info string or the content itself.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/triviafmt/pkg/syntax"
)

// Language names returned by Detect for content go-enry cannot classify
// safely.
const (
	langBasic = "basic"
	langText  = "text"
)

// cFamily lists go-enry language names lexed with the C dialect.
var cFamily = map[string]struct{}{
	"C": {}, "C++": {}, "C#": {}, "Objective-C": {}, "Objective-C++": {},
	"Java": {}, "JavaScript": {}, "TypeScript": {}, "Go": {}, "Rust": {},
	"Kotlin": {}, "Swift": {}, "Scala": {}, "Dart": {}, "Groovy": {},
	"JSON with Comments": {}, "Cuda": {}, "GLSL": {}, "HLSL": {},
}

// basicFamily lists go-enry language names lexed with the Basic dialect.
var basicFamily = map[string]struct{}{
	"Visual Basic .NET": {}, "Visual Basic 6.0": {}, "VBA": {}, "VBScript": {},
	"FreeBasic": {}, "BASIC": {}, "QuickBASIC": {}, "B4X": {},
}

// classifierCandidates restricts the content classifier to languages that
// commonly appear in unlabeled snippets.
var classifierCandidates = []string{
	"C", "C++", "C#", "Java", "JavaScript", "TypeScript", "Go", "Rust",
	"Visual Basic .NET", "VBA", "Python", "Shell", "Ruby", "SQL", "YAML",
	"HTML", "CSS", "Markdown",
}

// DialectOf returns the dialect used to lex a go-enry language name.
func DialectOf(language string) syntax.Dialect {
	if _, ok := cFamily[language]; ok {
		return syntax.DialectC
	}
	if _, ok := basicFamily[language]; ok {
		return syntax.DialectBasic
	}
	if language == langBasic {
		return syntax.DialectBasic
	}
	return syntax.DialectUnknown
}

// ForFile picks the dialect for a source file. The extension decides when
// it is unambiguous; otherwise the content breaks the tie. The go-enry
// language name is returned alongside.
func ForFile(path string, content []byte) (syntax.Dialect, string) {
	if lang, ok := enry.GetLanguageByFilename(filepath.Base(path)); ok {
		return DialectOf(lang), lang
	}

	langs := enry.GetLanguagesByExtension(path, content, nil)
	switch len(langs) {
	case 0:
		if lang, ok := enry.GetLanguageByShebang(content); ok {
			return DialectOf(lang), lang
		}
		return syntax.DialectUnknown, ""
	case 1:
		return DialectOf(langs[0]), langs[0]
	}

	if lang, ok := enry.GetLanguageByClassifier(content, langs); ok {
		return DialectOf(lang), lang
	}
	return DialectOf(langs[0]), langs[0]
}

// ForCodeBlock picks the dialect for a fenced code block. A known info
// string alias wins; unlabeled blocks are classified by content.
func ForCodeBlock(language string, content []byte) (syntax.Dialect, string) {
	if language != "" {
		lang, ok := enry.GetLanguageByAlias(language)
		if !ok {
			return syntax.DialectUnknown, ""
		}
		return DialectOf(lang), lang
	}

	lang := Detect(content)
	return DialectOf(lang), lang
}

// IsGenerated reports whether a file looks machine generated or vendored.
func IsGenerated(path string, content []byte) bool {
	return enry.IsVendor(path) || enry.IsGenerated(path, content)
}

// Detect returns the language of a snippet as a go-enry name, "basic" for
// Basic code recognised by its statements, or "text" when unsure.
func Detect(content []byte) string {
	if len(bytes.TrimSpace(content)) == 0 {
		return langText
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return lang
	}

	return langText
}

// detectByPattern checks patterns that are highly indicative on their own.
func detectByPattern(content []byte) string {
	contentStr := string(content)
	trimmed := bytes.TrimSpace(content)

	if lang := detectGo(trimmed); lang != "" {
		return lang
	}
	if lang := detectBasic(contentStr); lang != "" {
		return lang
	}
	if lang := detectPython(contentStr); lang != "" {
		return lang
	}
	if lang := detectYAML(content); lang != "" {
		return lang
	}
	if lang := detectCFamily(contentStr); lang != "" {
		return lang
	}

	return ""
}

func detectGo(trimmed []byte) string {
	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return "Go"
	}
	return ""
}

// basicStatements begin lines of Basic code and rarely start a line in
// other languages.
var basicStatements = []string{
	"dim ", "end sub", "end function", "end if", "end module", "end class",
	"private sub ", "public sub ", "sub ", "function ", "module ", "imports ",
	"option strict", "option explicit",
}

// detectBasic looks for at least two lines opening with Basic statements.
func detectBasic(contentStr string) string {
	hits := 0
	for line := range strings.Lines(contentStr) {
		line = strings.ToLower(strings.TrimSpace(line))
		if strings.HasSuffix(line, "{") || strings.HasSuffix(line, ";") {
			return ""
		}
		for _, stmt := range basicStatements {
			if strings.HasPrefix(line, stmt) || line == strings.TrimSpace(stmt) {
				hits++
				break
			}
		}
	}
	if hits >= 2 {
		return langBasic
	}
	return ""
}

func detectPython(contentStr string) string {
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return "Python"
	}
	if strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__") {
		return "Python"
	}
	return ""
}

// detectYAML counts key: value pairs and root list items.
func detectYAML(content []byte) string {
	yamlKeyCount := 0

	for line := range bytes.Lines(content) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.HasSuffix(line, []byte(";")) || bytes.HasSuffix(line, []byte("{")) {
			return ""
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			yamlKeyCount++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}

	if yamlKeyCount >= 2 {
		return "YAML"
	}
	return ""
}

// detectCFamily recognises statement-terminated, brace-delimited code.
func detectCFamily(contentStr string) string {
	terminated := 0
	for line := range strings.Lines(contentStr) {
		line = strings.TrimSpace(line)
		if strings.HasSuffix(line, ";") || strings.HasSuffix(line, "{") || line == "}" {
			terminated++
		}
	}
	if terminated >= 2 && strings.Contains(contentStr, "{") {
		return "C"
	}
	return ""
}
