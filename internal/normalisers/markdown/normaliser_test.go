package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliser_Extensions(t *testing.T) {
	assert.Equal(t, []string{".md", ".markdown"}, New().Extensions())
	assert.Equal(t, "markdown", New().Name())
}

func TestNormalise(t *testing.T) {
	content := "# Hello World\n\nSome **bold** and *italic* text with `code`.\n\n" +
		"```go\nfmt.Println()\n```\n\n" +
		"- item one\n1. step one\n\n> quoted\n\n---\n\nSee [the docs](https://example.com) ![logo](logo.png)."

	result, err := New().Normalise("a.md", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"format": "markdown", "heading": "Hello World"}, result.Metadata)
	assert.Contains(t, result.Text, "Hello World")
	assert.Contains(t, result.Text, "Some bold and italic text with code.")
	assert.Contains(t, result.Text, "item one\nstep one")
	assert.Contains(t, result.Text, "quoted")
	assert.Contains(t, result.Text, "See the docs .")
	assert.NotContains(t, result.Text, "fmt.Println")
	assert.NotContains(t, result.Text, "#")
	assert.NotContains(t, result.Text, "---")
	assert.NotContains(t, result.Text, "\n\n\n")
}

func TestNormalise_NoHeading(t *testing.T) {
	result, err := New().Normalise("a.md", []byte("## Section\n\nbody"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"format": "markdown"}, result.Metadata)
	assert.Equal(t, "Section\n\nbody", result.Text)
}

func TestNormalise_Empty(t *testing.T) {
	result, err := New().Normalise("a.md", nil)
	require.NoError(t, err)
	assert.Empty(t, result.Text)
}
