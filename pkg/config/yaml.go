package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"
)

// ToYAML serializes the configuration to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(YAMLIndent())

	if err := encoder.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}

	return buf.Bytes(), nil
}

// ToYAMLWithHeader serializes the configuration with a header comment.
func (c *Config) ToYAMLWithHeader(header string) ([]byte, error) {
	yamlBytes, err := c.ToYAML()
	if err != nil {
		return nil, err
	}

	if header == "" {
		return yamlBytes, nil
	}

	var buf bytes.Buffer
	buf.WriteString(header)
	if header[len(header)-1] != '\n' {
		buf.WriteByte('\n')
	}
	buf.WriteByte('\n')
	buf.Write(yamlBytes)

	return buf.Bytes(), nil
}

// FromYAML parses a configuration from YAML bytes. Fields absent from data
// stay unset so the result can be merged over defaults.
func FromYAML(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// Clone creates a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Text.UseTabs = cloneBool(c.Text.UseTabs)
	clone.Style = StyleConfig{
		MaxBlankLines:        cloneInt(c.Style.MaxBlankLines),
		SpaceAfterComma:      cloneBool(c.Style.SpaceAfterComma),
		SpaceAroundOperators: cloneBool(c.Style.SpaceAroundOperators),
	}
	clone.Markdown.FormatCodeBlocks = cloneBool(c.Markdown.FormatCodeBlocks)
	clone.EditorConfig = cloneBool(c.EditorConfig)

	if c.Extensions != nil {
		clone.Extensions = maps.Clone(c.Extensions)
	}
	if c.Ignore != nil {
		clone.Ignore = slices.Clone(c.Ignore)
	}

	return &clone
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	return Bool(*b)
}

func cloneInt(n *int) *int {
	if n == nil {
		return nil
	}
	return Int(*n)
}

// YAMLIndent returns the default YAML indentation.
func YAMLIndent() int {
	return 2
}
