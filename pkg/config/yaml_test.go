package config_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/triviafmt/pkg/config"
)

func TestConfigClone(t *testing.T) {
	t.Run("nil config returns nil", func(t *testing.T) {
		var c *config.Config
		assert.Nil(t, c.Clone())
	})

	t.Run("empty config", func(t *testing.T) {
		c := &config.Config{}
		clone := c.Clone()
		require.NotNil(t, clone)
		assert.NotSame(t, c, clone)
	})

	t.Run("deep copies pointers", func(t *testing.T) {
		original := config.NewConfig()
		clone := original.Clone()

		require.NotNil(t, clone.Style.MaxBlankLines)
		assert.NotSame(t, original.Style.MaxBlankLines, clone.Style.MaxBlankLines)
		assert.NotSame(t, original.Text.UseTabs, clone.Text.UseTabs)

		*clone.Style.MaxBlankLines = 5
		*clone.Text.UseTabs = true
		assert.Equal(t, 1, *original.Style.MaxBlankLines)
		assert.False(t, *original.Text.UseTabs)
	})

	t.Run("deep copies maps and slices", func(t *testing.T) {
		original := &config.Config{
			Ignore:     []string{"vendor/**"},
			Extensions: map[string]string{".inc": "c"},
		}

		clone := original.Clone()
		clone.Ignore[0] = "changed"
		clone.Extensions[".inc"] = "basic"

		assert.Equal(t, "vendor/**", original.Ignore[0])
		assert.Equal(t, "c", original.Extensions[".inc"])
	})

	t.Run("preserves CLI fields", func(t *testing.T) {
		original := &config.Config{
			Write:     true,
			Check:     true,
			Diff:      true,
			Format:    config.FormatJSON,
			Jobs:      3,
			NoBackups: true,
		}

		assert.Equal(t, original, original.Clone())
	})
}

func TestYAMLRoundTrip(t *testing.T) {
	original := config.NewConfig()
	original.Ignore = []string{"build/**"}
	original.Extensions = map[string]string{".cls": "basic"}
	original.Write = true

	data, err := original.ToYAML()
	require.NoError(t, err)
	assert.NotContains(t, string(data), "write")

	parsed, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, original.Text, parsed.Text)
	assert.Equal(t, original.Style, parsed.Style)
	assert.Equal(t, original.Ignore, parsed.Ignore)
	assert.Equal(t, original.Extensions, parsed.Extensions)
	assert.False(t, parsed.Write)
}

func TestFromYAMLLeavesUnsetFieldsNil(t *testing.T) {
	cfg, err := config.FromYAML([]byte("style:\n  space_after_comma: false\n"))
	require.NoError(t, err)

	require.NotNil(t, cfg.Style.SpaceAfterComma)
	assert.False(t, *cfg.Style.SpaceAfterComma)
	assert.Nil(t, cfg.Style.MaxBlankLines)
	assert.Nil(t, cfg.Text.UseTabs)
	assert.Zero(t, cfg.Text.TabSize)
}

func TestFromYAMLInvalid(t *testing.T) {
	_, err := config.FromYAML([]byte("text: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")
}

func TestToYAMLWithHeader(t *testing.T) {
	cfg := config.NewConfig()

	data, err := cfg.ToYAMLWithHeader("# header")
	require.NoError(t, err)
	assert.Regexp(t, `^# header\n\n`, string(data))

	plain, err := cfg.ToYAMLWithHeader("")
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "# header")

	var nilCfg *config.Config
	out, err := nilCfg.ToYAML()
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestGenerateTemplate(t *testing.T) {
	t.Run("yaml template parses", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{})
		require.NoError(t, err)

		var cfg config.Config
		require.NoError(t, yaml.Unmarshal(data, &cfg))
		assert.Equal(t, config.DialectAuto, cfg.Dialect)
		assert.Equal(t, 4, cfg.Text.IndentSize)
		require.NotNil(t, cfg.Style.MaxBlankLines)
		assert.Equal(t, 1, *cfg.Style.MaxBlankLines)
	})

	t.Run("json template", func(t *testing.T) {
		data, err := config.GenerateTemplate(config.TemplateOptions{Format: "json"})
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "auto", decoded["dialect"])
		assert.Contains(t, decoded, "style")
	})
}

func TestOutputFormatIsValid(t *testing.T) {
	for _, f := range []config.OutputFormat{config.FormatText, config.FormatJSON, config.FormatDiff, config.FormatSummary} {
		assert.True(t, f.IsValid(), f)
	}
	assert.False(t, config.OutputFormat("sarif").IsValid())
}

func TestValueHelpers(t *testing.T) {
	assert.True(t, config.BoolValue(nil, true))
	assert.False(t, config.BoolValue(config.Bool(false), true))
	assert.Equal(t, 7, config.IntValue(nil, 7))
	assert.Equal(t, -1, config.IntValue(config.Int(-1), 7))
}
