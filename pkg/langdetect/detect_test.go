package langdetect_test

import (
	"testing"

	"github.com/yaklabco/triviafmt/pkg/langdetect"
	"github.com/yaklabco/triviafmt/pkg/syntax"
)

func TestDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		content  string
		expected string
	}{
		{
			name:     "shebang shell",
			content:  "#!/bin/bash\necho hello",
			expected: "Shell",
		},
		{
			name:     "go code",
			content:  "package main\n\nfunc main() {\n\tfmt.Println(\"hello\")\n}",
			expected: "Go",
		},
		{
			name:     "basic code",
			content:  "Module M\n    Sub Main()\n        Dim x = 1\n    End Sub\nEnd Module\n",
			expected: "basic",
		},
		{
			name:     "c code",
			content:  "int x = 1;\nint main() {\n    return x;\n}\n",
			expected: "C",
		},
		{
			name:     "python code",
			content:  "def foo():\n    pass\n\nif __name__ == '__main__':\n    foo()",
			expected: "Python",
		},
		{
			name:     "yaml content",
			content:  "key: value\nother: 123\nlist:\n  - item1\n  - item2",
			expected: "YAML",
		},
		{
			name:     "empty content fallback",
			content:  "",
			expected: "text",
		},
		{
			name:     "blank content fallback",
			content:  "  \n\t\n",
			expected: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := langdetect.Detect([]byte(tt.content))

			if result != tt.expected {
				t.Errorf("Detect() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestDetect_ShebangTakesPrecedence(t *testing.T) {
	t.Parallel()

	// Looks like Basic but starts with a shebang.
	content := []byte("#!/bin/sh\nDim x\nEnd Sub\n")
	result := langdetect.Detect(content)

	if result != "Shell" {
		t.Errorf("Detect() = %q, want %q (shebang should take precedence)", result, "Shell")
	}
}

func TestDialectOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		language string
		want     syntax.Dialect
	}{
		{"C", syntax.DialectC},
		{"C#", syntax.DialectC},
		{"TypeScript", syntax.DialectC},
		{"Visual Basic .NET", syntax.DialectBasic},
		{"VBA", syntax.DialectBasic},
		{"basic", syntax.DialectBasic},
		{"Python", syntax.DialectUnknown},
		{"text", syntax.DialectUnknown},
		{"", syntax.DialectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.language, func(t *testing.T) {
			t.Parallel()

			if got := langdetect.DialectOf(tt.language); got != tt.want {
				t.Errorf("DialectOf(%q) = %v, want %v", tt.language, got, tt.want)
			}
		})
	}
}

func TestForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		content string
		want    syntax.Dialect
	}{
		{"main.c", "int main(void) { return 0; }\n", syntax.DialectC},
		{"Main.java", "class Main {}\n", syntax.DialectC},
		{"main.go", "package main\n", syntax.DialectC},
		{"Program.vb", "Module Program\nEnd Module\n", syntax.DialectBasic},
		{"script.py", "print('hi')\n", syntax.DialectUnknown},
		{"notes.txt", "hello\n", syntax.DialectUnknown},
		{"no_extension", "", syntax.DialectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			got, _ := langdetect.ForFile(tt.path, []byte(tt.content))
			if got != tt.want {
				t.Errorf("ForFile(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestForCodeBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		language string
		content  string
		want     syntax.Dialect
	}{
		{"c alias", "c", "int x;\n", syntax.DialectC},
		{"csharp alias", "csharp", "var x = 1;\n", syntax.DialectC},
		{"go alias", "go", "package main\n", syntax.DialectC},
		{"python alias", "python", "x = 1\n", syntax.DialectUnknown},
		{"unknown alias", "not-a-language", "int x;\n", syntax.DialectUnknown},
		{"unlabeled basic", "", "Sub Main()\n    Dim x = 1\nEnd Sub\n", syntax.DialectBasic},
		{"unlabeled c", "", "int x;\nvoid f() {\n    x++;\n}\n", syntax.DialectC},
		{"unlabeled empty", "", "", syntax.DialectUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, _ := langdetect.ForCodeBlock(tt.language, []byte(tt.content))
			if got != tt.want {
				t.Errorf("ForCodeBlock(%q) = %v, want %v", tt.language, got, tt.want)
			}
		})
	}
}

func TestIsGenerated(t *testing.T) {
	t.Parallel()

	if !langdetect.IsGenerated("vendor/github.com/x/y/z.c", []byte("int x;\n")) {
		t.Error("vendored file should be reported as generated")
	}
	if langdetect.IsGenerated("src/main.c", []byte("int x;\n")) {
		t.Error("hand written file should not be reported as generated")
	}
}
