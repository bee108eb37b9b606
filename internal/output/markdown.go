package output

import (
	"io"
	"strings"

	"github.com/dshills/guardian/internal/review"
)

// MarkdownWriter outputs the feedback as Markdown, suitable for a PR comment
// or a notes file.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	ew.printf("# Code Guardian Review\n\n")
	ew.printf("_%s · %s/%s_\n\n", modeLabel(result.Mode), result.Provider, result.Model)

	if len(result.Files) > 1 {
		ew.printf("<details>\n<summary>%d files reviewed</summary>\n\n", len(result.Files))
		for _, f := range result.Files {
			ew.printf("- `%s`\n", f)
		}
		ew.printf("\n</details>\n\n")
	}

	ew.println(strings.TrimRight(result.Feedback, "\n"))
	ew.printf("\n---\n*%s*\n", footer(result))
	return ew.err
}
