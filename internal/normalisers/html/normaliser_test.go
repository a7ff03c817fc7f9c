package html

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormaliser_Extensions(t *testing.T) {
	assert.Contains(t, New().Extensions(), ".html")
	assert.Contains(t, New().Extensions(), ".htm")
	assert.Equal(t, "html", New().Name())
}

func TestNormalise(t *testing.T) {
	content := `<html><head><title>My &amp; Page</title><style>p{}</style></head>
<body>
<!-- hidden -->
<h1>Heading</h1>
<p>First   paragraph with <b>bold</b>.</p>
<script>alert(1)</script>
<ul><li>One</li><li>Two</li></ul>
Line<br/>break &lt;ok&gt;
</body></html>`

	result, err := New().Normalise("page.html", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, map[string]any{"format": "html", "heading": "My & Page"}, result.Metadata)
	assert.Equal(t, "Heading\nFirst paragraph with bold.\nOne\nTwo\nLine\nbreak <ok>", result.Text)
}

func TestNormalise_NoTitle(t *testing.T) {
	result, err := New().Normalise("page.html", []byte("<p>hi</p>"))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"format": "html"}, result.Metadata)
	assert.Equal(t, "hi", result.Text)
}
