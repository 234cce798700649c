package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineNormalizerProducesMarkdown(t *testing.T) {
	html := `
		<article>
			<h1>Guide</h1>
			<p>Read the <a href="https://example.com/docs">docs</a> first.</p>
			<ul>
				<li>install</li>
				<li>run <code>markpipe</code></li>
			</ul>
		</article>`

	out, err := New().Normalize(html)
	require.NoError(t, err)
	assert.Equal(t,
		"## Guide\n\nRead the [docs](https://example.com/docs) first.\n\n- install\n- run `markpipe`\n",
		out)
}

func TestEngineNormalizerEmptyInput(t *testing.T) {
	out, err := New().Normalize("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}
