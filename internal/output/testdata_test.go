package output

import (
	"github.com/dshills/guardian/internal/render"
	"github.com/dshills/guardian/internal/review"
)

const sampleFeedback = "## 🌟 Overall Feedback\nA tidy little project.\n\n## 💡 Areas for Improvement\n* Use `const` for x\n* Handle <errors>\n```js\nconst x = 1;\n```"

func sampleResult() *review.Result {
	return &review.Result{
		ID:         "7f1c0d0e-0000-4000-8000-000000000001",
		Mode:       review.ModeUpload,
		Provider:   "gemini",
		Model:      "gemini-2.5-pro",
		Files:      []string{"proj/a.js", "proj/b.js"},
		Feedback:   sampleFeedback,
		Blocks:     render.Render(sampleFeedback),
		TokensUsed: 321,
		Timing:     review.Timing{LLMMs: 900, TotalMs: 950},
	}
}
