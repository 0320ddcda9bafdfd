package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Kind
		wantErr  bool
	}{
		{name: "openai lowercase", input: "openai", expected: KindOpenAI},
		{name: "vendor display casing", input: "OpenAI", expected: KindOpenAI},
		{name: "anthropic", input: "Anthropic", expected: KindAnthropic},
		{name: "google", input: "google", expected: KindGoogle},
		{name: "cohere", input: "COHERE", expected: KindCohere},
		{name: "surrounding whitespace", input: "  openai  ", expected: KindOpenAI},
		{name: "unknown provider", input: "mistral", wantErr: true},
		{name: "empty string", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := ParseKind(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, kind)
		})
	}
}

func TestKind_IsValid(t *testing.T) {
	for _, kind := range Kinds() {
		assert.True(t, kind.IsValid(), "expected %q to be valid", kind)
	}
	assert.False(t, Kind("mistral").IsValid())
	assert.False(t, Kind("").IsValid())
}

func TestKind_KnownModels(t *testing.T) {
	for _, kind := range Kinds() {
		assert.NotEmpty(t, kind.KnownModels(), "expected models for %q", kind)
	}
	assert.Nil(t, Kind("mistral").KnownModels())
}

func TestKind_DisplayName(t *testing.T) {
	assert.Equal(t, "OpenAI", KindOpenAI.DisplayName())
	assert.Equal(t, "Anthropic", KindAnthropic.DisplayName())
	assert.Equal(t, "Google", KindGoogle.DisplayName())
	assert.Equal(t, "Cohere", KindCohere.DisplayName())
}
