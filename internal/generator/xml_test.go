package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanXML_TaggedFence(t *testing.T) {
	reply := "Here is your model:\n```xml\n<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>\n```\nLet me know if you need changes."

	cleaned := CleanXML(reply)

	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>", cleaned)
	assert.NotContains(t, cleaned, "Here is your model")
	assert.NotContains(t, cleaned, "Let me know")
	assert.NotContains(t, cleaned, "```")
}

func TestCleanXML_BareFence(t *testing.T) {
	reply := "```\n<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>\n```"

	cleaned := CleanXML(reply)

	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>", cleaned)
}

func TestCleanXML_NoFenceNoDeclaration(t *testing.T) {
	reply := "<definitions/>"

	cleaned := CleanXML(reply)

	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>", cleaned)
	assert.True(t, strings.HasPrefix(cleaned, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"))
}

func TestCleanXML_AlreadyDeclared(t *testing.T) {
	reply := "  <?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>  \n"

	cleaned := CleanXML(reply)

	// Trim-only no-op: no second declaration is prepended
	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>", cleaned)
	assert.Equal(t, 1, strings.Count(cleaned, "<?xml"))
}

func TestCleanXML_FencedWithoutDeclaration(t *testing.T) {
	reply := "```xml\n<definitions/>\n```"

	cleaned := CleanXML(reply)

	assert.Equal(t, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n<definitions/>", cleaned)
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tagged fence",
			input:    "```json\n{\"places\": []}\n```",
			expected: "{\"places\": []}",
		},
		{
			name:     "bare fence",
			input:    "```\n{\"places\": []}\n```",
			expected: "{\"places\": []}",
		},
		{
			name:     "no fence",
			input:    "  {\"places\": []}  ",
			expected: "{\"places\": []}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cleanJSON(tt.input))
		})
	}
}
