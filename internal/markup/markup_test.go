package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteMath(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "single span", in: "$$x^2$$", want: `\(x^2\)`},
		{name: "two spans", in: "$$a$$ and $$b$$", want: `\(a\) and \(b\)`},
		{name: "non-greedy", in: "$$a$$b$$c$$", want: `\(a\)b\(c\)`},
		{name: "no math", in: "plain text", want: "plain text"},
		{name: "unpaired", in: "costs $$5", want: "costs $$5"},
		{name: "does not span lines", in: "$$a\nb$$", want: "$$a\nb$$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteMath(tt.in))
		})
	}
}

func TestTransform_Math(t *testing.T) {
	out, err := Transform("The area is $$x^2$$ units.")
	require.NoError(t, err)
	assert.Contains(t, out, `\(x^2\)`)
	assert.NotContains(t, out, "$$")
}

func TestTransform_MathIsEscaped(t *testing.T) {
	out, err := Transform(`Holds when $$a<b$$ and \[c_1 * d_2\].`)
	require.NoError(t, err)
	assert.Contains(t, out, `\(a&lt;b\)`)
	// Underscores and asterisks inside math must not turn into emphasis.
	assert.Contains(t, out, `\[c_1 * d_2\]`)
	assert.NotContains(t, out, "<em>")
}

func TestTransform_MathKeepsEntities(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "html description", in: "<p>Find $$a &lt; b$$ here.</p>\n", want: `<p>Find \(a &lt; b\) here.</p>`},
		{name: "markdown text", in: "Find $$a &lt; b$$ here.", want: `<p>Find \(a &lt; b\) here.</p>`},
		{name: "raw markdown", in: "Find $$a < b$$ here.", want: `<p>Find \(a &lt; b\) here.</p>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Transform(tt.in)
			require.NoError(t, err)
			assert.Contains(t, out, tt.want)
			assert.NotContains(t, out, "&amp;lt;")
		})
	}
}

func TestTransform_MathDelimitersInCode(t *testing.T) {
	in := "Escape with `\\(` first.\n\n```go\nx := 1\n```\n\nThen `\\)` closes.\n"
	out, err := Transform(in)
	require.NoError(t, err)
	assert.Contains(t, out, `<code>\(</code>`)
	assert.Contains(t, out, `<pre><code class="language-go">x := 1`)
	assert.Contains(t, out, `<code>\)</code>`)
}

func TestTransform_MathDoesNotSpanLines(t *testing.T) {
	out, err := Transform("open \\( here\n\n*closed* \\) there\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<em>closed</em>")
}

func TestTransform_Table(t *testing.T) {
	out, err := Transform("| n | answer |\n|---|--------|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>answer</th>")
	assert.Contains(t, out, "<td>2</td>")
}

func TestTransform_FencedCode(t *testing.T) {
	out, err := Transform("```go\nreturn a + b\n```\n")
	require.NoError(t, err)
	assert.Contains(t, out, `<pre><code class="language-go">return a + b`)
}

func TestTransform_TOC(t *testing.T) {
	out, err := Transform("[TOC]\n\n# Approach\n\n## Complexity\n")
	require.NoError(t, err)
	assert.NotContains(t, out, tocMarker)
	assert.Contains(t, out, `<h1 id="approach">Approach</h1>`)
	assert.Contains(t, out, `href="#approach"`)
	assert.Contains(t, out, `href="#complexity"`)
}

func TestTransform_TOCWithoutHeadings(t *testing.T) {
	out, err := Transform("[TOC]\n\nJust text.\n")
	require.NoError(t, err)
	assert.NotContains(t, out, tocMarker)
	assert.Contains(t, out, "<p>Just text.</p>")
}

func TestTransform_HTMLPassesThrough(t *testing.T) {
	in := "<p>Given an array <code>nums</code>, return <em>indices</em>.</p>\n"
	out, err := Transform(in)
	require.NoError(t, err)
	assert.Contains(t, out, in)
}

func TestTransform_Empty(t *testing.T) {
	out, err := Transform("")
	require.NoError(t, err)
	assert.Empty(t, out)
}
