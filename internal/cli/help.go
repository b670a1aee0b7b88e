package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yaklabco/triviafmt/internal/ui/pretty"
)

const helpTemplate = `{{with (or .Long .Short)}}{{ trimRight . }}

{{end}}{{ heading "Usage:" }}{{if .Runnable}}
  {{ command .UseLine }}{{end}}{{if .HasAvailableSubCommands}}
  {{ command .CommandPath }} [command]{{end}}
{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}
{{- if .HasAvailableSubCommands}}

{{ heading "Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ command (pad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}
{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}
{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}
{{- if .HasAvailableSubCommands}}

Run "{{ .CommandPath }} [command] --help" for details on a command.
{{- end}}
`

// helpRenderer renders command help with the shared output styles.
type helpRenderer struct {
	styles *pretty.Styles
	tmpl   *template.Template
}

func newHelpRenderer(colorMode string, writer io.Writer) *helpRenderer {
	h := &helpRenderer{styles: pretty.NewStyles(pretty.IsColorEnabled(colorMode, writer))}
	h.tmpl = template.Must(template.New("help").Funcs(template.FuncMap{
		"heading":   h.styles.Heading.Render,
		"command":   h.styles.Command.Render,
		"dim":       h.styles.Dim.Render,
		"flags":     h.flagUsages,
		"pad":       func(s string, n int) string { return fmt.Sprintf("%-*s", n, s) },
		"trimRight": func(s string) string { return strings.TrimRight(s, " \t\n") },
	}).Parse(helpTemplate))
	return h
}

// apply installs the renderer on cmd. Subcommands inherit it.
func (h *helpRenderer) apply(cmd *cobra.Command) {
	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		if err := h.tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
	cmd.SetUsageFunc(func(c *cobra.Command) error {
		if err := h.tmpl.Execute(c.OutOrStderr(), c); err != nil {
			return fmt.Errorf("render usage: %w", err)
		}
		return nil
	})
}

// flagUsages styles pflag's usage block. Flag names are colored, type names
// dimmed and descriptions left as they are.
func (h *helpRenderer) flagUsages(set *pflag.FlagSet) string {
	usages := strings.TrimSuffix(set.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.flagLine(line)
	}
	return strings.Join(lines, "\n")
}

func (h *helpRenderer) flagLine(line string) string {
	indent := len(line) - len(strings.TrimLeft(line, " "))
	body := line[indent:]

	// pflag separates the flag column from the description with at least
	// two spaces.
	split := strings.Index(body, "  ")
	if split < 0 {
		return line
	}
	desc := strings.TrimLeft(body[split:], " ")
	gap := len(body) - split - len(desc)

	var spec strings.Builder
	for i, token := range strings.Fields(body[:split]) {
		if i > 0 {
			spec.WriteByte(' ')
		}
		if name, comma := strings.CutSuffix(token, ","); strings.HasPrefix(name, "-") {
			spec.WriteString(h.styles.Flag.Render(name))
			if comma {
				spec.WriteByte(',')
			}
		} else {
			spec.WriteString(h.styles.Dim.Render(token))
		}
	}

	return strings.Repeat(" ", indent) + spec.String() + strings.Repeat(" ", gap) + desc
}
