package pretty_test

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/triviafmt/internal/ui/pretty"
)

func TestNewStyles_ColorDisabled(t *testing.T) {
	styles := pretty.NewStyles(false)
	require.NotNil(t, styles)

	for _, style := range []string{
		styles.Bold.Render("x"),
		styles.Error.Render("x"),
		styles.FilePath.Render("x"),
		styles.Status.Render("x"),
		styles.DiffAdd.Render("x"),
		styles.Success.Render("x"),
	} {
		assert.Equal(t, "x", style, "no-color styles must not add formatting")
	}
}

func TestNewStyles_ColorEnabled(t *testing.T) {
	styles := pretty.NewStyles(true)
	require.NotNil(t, styles)

	// Lipgloss drops ANSI codes when the output is not a terminal, so only
	// check that every style renders its text.
	for _, rendered := range []string{
		styles.Error.Render("x"),
		styles.Warning.Render("x"),
		styles.Info.Render("x"),
		styles.FilePath.Render("x"),
		styles.Status.Render("x"),
		styles.Count.Render("x"),
		styles.DiffHeader.Render("x"),
		styles.DiffHunk.Render("x"),
		styles.DiffAdd.Render("x"),
		styles.DiffRemove.Render("x"),
		styles.DiffContext.Render("x"),
		styles.SummaryTitle.Render("x"),
		styles.SummaryValue.Render("x"),
		styles.Success.Render("x"),
		styles.Failure.Render("x"),
		styles.Heading.Render("x"),
		styles.Command.Render("x"),
		styles.Flag.Render("x"),
		styles.Dim.Render("x"),
		styles.Bold.Render("x"),
	} {
		assert.Contains(t, rendered, "x")
	}
}

func TestIsColorEnabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	assert.True(t, pretty.IsColorEnabled("always", &buf))
	assert.False(t, pretty.IsColorEnabled("never", os.Stdout))
	assert.False(t, pretty.IsColorEnabled("auto", &buf), "a buffer is not a terminal")
	assert.False(t, pretty.IsColorEnabled("", &buf))
	assert.False(t, pretty.IsColorEnabled("unknown", &buf))
}

func TestIsColorEnabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	assert.False(t, pretty.IsColorEnabled("auto", os.Stdout))
	assert.True(t, pretty.IsColorEnabled("always", os.Stdout), "always ignores NO_COLOR")
}
