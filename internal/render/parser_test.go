package render

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Blocks
	}{
		{
			name:  "empty",
			input: "",
			want:  Blocks{},
		},
		{
			name:  "heading then paragraph",
			input: "## Title\nHello",
			want:  Blocks{Heading{Text: "Title"}, Paragraph{Text: "Hello"}},
		},
		{
			name:  "blank line ends list",
			input: "* a\n* b\n\nc",
			want:  Blocks{List{Items: []string{"a", "b"}}, Paragraph{Text: "c"}},
		},
		{
			name:  "closed fence",
			input: "```\nlet x=1;\n```",
			want:  Blocks{Code{Content: "let x=1;"}},
		},
		{
			name:  "unclosed fence",
			input: "```\nunclosed",
			want:  Blocks{Code{Content: "unclosed"}},
		},
		{
			name:  "unclosed empty fence",
			input: "```go",
			want:  Blocks{},
		},
		{
			name:  "empty closed fence",
			input: "```\n```",
			want:  Blocks{Code{Content: ""}},
		},
		{
			name:  "language tag ignored",
			input: "```typescript\nconst a = 1;\nconst b = 2;\n```",
			want:  Blocks{Code{Content: "const a = 1;\nconst b = 2;"}},
		},
		{
			name:  "markdown inside fence is literal",
			input: "```\n## not a heading\n* not an item\n\n```",
			want:  Blocks{Code{Content: "## not a heading\n* not an item\n"}},
		},
		{
			name:  "mixed list markers merge",
			input: "- one\n* two\n- three",
			want:  Blocks{List{Items: []string{"one", "two", "three"}}},
		},
		{
			name:  "heading flushes list",
			input: "* a\n## Next",
			want:  Blocks{List{Items: []string{"a"}}, Heading{Text: "Next"}},
		},
		{
			name:  "fence flushes list",
			input: "* a\n```\ncode\n```\n* b",
			want: Blocks{
				List{Items: []string{"a"}},
				Code{Content: "code"},
				List{Items: []string{"b"}},
			},
		},
		{
			name:  "paragraph flushes list",
			input: "* a\ntext\n* b",
			want: Blocks{
				List{Items: []string{"a"}},
				Paragraph{Text: "text"},
				List{Items: []string{"b"}},
			},
		},
		{
			name:  "paragraph kept untrimmed",
			input: "   indented text  ",
			want:  Blocks{Paragraph{Text: "   indented text  "}},
		},
		{
			name:  "whitespace-only lines emit nothing",
			input: "  \n\t\n",
			want:  Blocks{},
		},
		{
			name:  "heading needs space",
			input: "##Title\n### Sub\n#Top",
			want: Blocks{
				Paragraph{Text: "##Title"},
				Paragraph{Text: "### Sub"},
				Paragraph{Text: "#Top"},
			},
		},
		{
			name:  "list marker needs space",
			input: "*bold*\n-dash\n**strong** text",
			want: Blocks{
				Paragraph{Text: "*bold*"},
				Paragraph{Text: "-dash"},
				Paragraph{Text: "**strong** text"},
			},
		},
		{
			name:  "inline markdown left literal",
			input: "* use **bold** and [links](http://x)",
			want:  Blocks{List{Items: []string{"use **bold** and [links](http://x)"}}},
		},
		{
			name:  "empty heading and empty item",
			input: "## \n* ",
			want:  Blocks{Heading{Text: ""}, List{Items: []string{""}}},
		},
		{
			name:  "list at end of input is flushed",
			input: "intro\n- last",
			want:  Blocks{Paragraph{Text: "intro"}, List{Items: []string{"last"}}},
		},
		{
			name:  "indented fence is a paragraph",
			input: "  ```\ncode",
			want:  Blocks{Paragraph{Text: "  ```"}, Paragraph{Text: "code"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.input))
		})
	}
}

func TestRender_ReviewFeedback(t *testing.T) {
	feedback := strings.Join([]string{
		"## 🌟 Overall Feedback",
		"Nice work on this project.",
		"",
		"## 💡 Areas for Improvement",
		"- In `main.js` line 3, prefer `const`.",
		"- Handle errors from `fetch`.",
		"```javascript",
		"const x = 1;",
		"```",
		"## 🏛️ Architectural Notes",
		"* Split the API layer out.",
	}, "\n")

	got := Render(feedback)

	want := Blocks{
		Heading{Text: "🌟 Overall Feedback"},
		Paragraph{Text: "Nice work on this project."},
		Heading{Text: "💡 Areas for Improvement"},
		List{Items: []string{"In `main.js` line 3, prefer `const`.", "Handle errors from `fetch`."}},
		Code{Content: "const x = 1;"},
		Heading{Text: "🏛️ Architectural Notes"},
		List{Items: []string{"Split the API layer out."}},
	}
	assert.Equal(t, want, got)
}

func TestRender_Deterministic(t *testing.T) {
	input := "## A\n* x\n* y\n```\nz\n"
	first := Render(input)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Render(input))
	}
}

func TestStep_Transitions(t *testing.T) {
	var s state

	s, out := step(s, "* a")
	assert.Empty(t, out)
	assert.True(t, s.inList)

	s, out = step(s, "```")
	assert.Equal(t, []Block{List{Items: []string{"a"}}}, out)
	assert.False(t, s.inList)
	assert.True(t, s.inCode)

	s, out = step(s, "* inside")
	assert.Empty(t, out)
	assert.Equal(t, []string{"* inside"}, s.code)

	s, out = step(s, "```")
	assert.Equal(t, []Block{Code{Content: "* inside"}}, out)
	assert.False(t, s.inCode)
	assert.Empty(t, s.code)
}

func TestBlocks_JSON(t *testing.T) {
	blocks := Blocks{
		Heading{Text: "Title"},
		Paragraph{Text: "Body"},
		List{Items: []string{"a", "b"}},
		Code{Content: "x := 1"},
	}

	data, err := json.Marshal(blocks)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"heading","text":"Title"},
		{"type":"paragraph","text":"Body"},
		{"type":"list","items":["a","b"]},
		{"type":"code","content":"x := 1"}
	]`, string(data))

	var back Blocks
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, blocks, back)
}

func TestBlocks_UnmarshalUnknownType(t *testing.T) {
	var bs Blocks
	err := json.Unmarshal([]byte(`[{"type":"table"}]`), &bs)
	assert.Error(t, err)
}

func TestBlocks_EmptyJSON(t *testing.T) {
	data, err := json.Marshal(Render(""))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}
