package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatValid(t *testing.T) {
	tests := []struct {
		format OutputFormat
		valid  bool
	}{
		{FormatText, true},
		{FormatJSON, true},
		{FormatYAML, true},
		{OutputFormat("table"), false},
		{OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.format.Valid())
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input string
		want  OutputFormat
		valid bool
	}{
		{"text", FormatText, true},
		{"TEXT", FormatText, true},
		{"json", FormatJSON, true},
		{"yaml", FormatYAML, true},
		{"yml", FormatYAML, true},
		{"invalid", OutputFormat("invalid"), false},
		{"", OutputFormat(""), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, valid := ParseOutputFormat(tt.input)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.valid, valid)
		})
	}
}

func TestValidFormats(t *testing.T) {
	assert.Equal(t, []string{"text", "json", "yaml"}, ValidFormats())
}

func TestWriteStructured(t *testing.T) {
	v := struct {
		Outcome string `json:"outcome" yaml:"outcome"`
		Commits int    `json:"commits" yaml:"commits"`
	}{Outcome: "tagged", Commits: 2}

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStructured(&buf, FormatJSON, v))
		assert.JSONEq(t, `{"outcome":"tagged","commits":2}`, buf.String())
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteStructured(&buf, FormatYAML, v))
		assert.YAMLEq(t, "outcome: tagged\ncommits: 2\n", buf.String())
	})

	t.Run("text is rejected", func(t *testing.T) {
		var buf bytes.Buffer
		assert.Error(t, WriteStructured(&buf, FormatText, v))
		assert.Empty(t, buf.String())
	})
}
