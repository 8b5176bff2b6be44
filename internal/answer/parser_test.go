package answer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWellFormedReply(t *testing.T) {
	raw := "Explanation:\n- a\n- b\nCode:\n```js\nconsole.log(1)\n```\nResources:\n- [Doc](http://x)\n"

	env := Parse(raw)

	assert.Contains(t, env.Explanation, "- a")
	assert.Contains(t, env.Explanation, "- b")
	assert.Equal(t, "console.log(1)", env.Code)
	require.Len(t, env.Resources, 1)
	assert.Equal(t, Resource{Title: "Doc", URL: "http://x"}, env.Resources[0])
}

func TestParseStripsSeparators(t *testing.T) {
	raw := "---\nExplanation:\n- only point\n---\n"

	env := Parse(raw)

	assert.NotContains(t, env.Explanation, "---")
	assert.Contains(t, env.Explanation, "only point")
	assert.Empty(t, env.Code)
	assert.Empty(t, env.Resources)
}

func TestParseMissingCodeMarker(t *testing.T) {
	raw := "The model ignored the template and just chatted away."

	env := Parse(raw)

	assert.Equal(t, raw, env.Explanation)
	assert.Empty(t, env.Code)
	assert.Empty(t, env.Resources)
}

func TestParseDiscardsLanguageTag(t *testing.T) {
	raw := "Code:\n```python\nprint(\"hi\")\n```\n"

	env := Parse(raw)

	assert.Equal(t, "print(\"hi\")", env.Code)
	assert.NotContains(t, env.Code, "python")
}

func TestParseDropsMalformedResourceLines(t *testing.T) {
	raw := "Code:\n```go\npackage main\n```\nResources:\n- [Good](http://good)\n- missing a link\nnot even a list item\n- [Second](http://second)\n"

	env := Parse(raw)

	require.Len(t, env.Resources, 2)
	assert.Equal(t, "Good", env.Resources[0].Title)
	assert.Equal(t, "http://second", env.Resources[1].URL)
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{
		"",
		"---",
		"Code:",
		"Code:\n```",
		"Resources:\n- [x](",
		"Code:\n```go\nunterminated fence",
		strings.Repeat("-", 100),
	}

	for _, raw := range inputs {
		env := Parse(raw)
		assert.NotNil(t, env.Resources, "input %q", raw)
		assert.NotContains(t, env.Explanation, "---", "input %q", raw)
	}
}

func TestBuildPromptEmbedsQuestion(t *testing.T) {
	prompt := BuildPrompt("reverse a linked list")

	assert.Contains(t, prompt, "reverse a linked list")
	assert.Contains(t, prompt, "Explanation:")
	assert.Contains(t, prompt, "Code:")
	assert.Contains(t, prompt, "Resources:")
}

func TestSplitLines(t *testing.T) {
	lines := SplitLines("- a\n\n  - b  \n\n")

	assert.Equal(t, []string{"- a", "- b"}, lines)
}
