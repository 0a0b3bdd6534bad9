package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/document-generator/internal/types"
)

func TestGet_ValidPrompt(t *testing.T) {
	clearCache()

	prompt, err := Get("documents.json", "cv")
	require.NoError(t, err)
	assert.NotEmpty(t, prompt)
	assert.Contains(t, prompt, "Create a CV")
}

func TestGet_InvalidFile(t *testing.T) {
	clearCache()

	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	clearCache()

	_, err := Get("documents.json", "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestFormat(t *testing.T) {
	template := "Hello {{.Name}}, welcome to {{.Company}}!"
	data := map[string]string{
		"Name":    "Alice",
		"Company": "Acme Corp",
	}

	result := Format(template, data)
	assert.Equal(t, "Hello Alice, welcome to Acme Corp!", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"
	data := map[string]string{"Key": "Value"}

	result := Format(template, data)
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Hello {{.Name}}"
	data := map[string]string{}

	result := Format(template, data)
	assert.Equal(t, template, result) // Placeholder remains
}

func TestFormat_ValuesNotRescanned(t *testing.T) {
	template := "{{.A}} and {{.B}}"
	data := map[string]string{
		"A": "{{.B}}",
		"B": "bee",
	}

	assert.Equal(t, "{{.B}} and bee", Format(template, data))
}

func TestGet_EveryDocumentType(t *testing.T) {
	clearCache()

	for _, dt := range types.DocumentTypes() {
		prompt, err := Get(documentsFile, string(dt))
		require.NoError(t, err, dt)
		assert.NotEmpty(t, prompt, dt)
	}
}

func TestCaching(t *testing.T) {
	clearCache()

	// First call loads from file
	prompt1, err := Get("documents.json", "sop")
	require.NoError(t, err)

	// Second call should use cache
	prompt2, err := Get("documents.json", "sop")
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}

func clearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}
