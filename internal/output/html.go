package output

import (
	"fmt"
	"html/template"
	"io"

	"github.com/dshills/guardian/internal/render"
	"github.com/dshills/guardian/internal/review"
)

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Code Guardian Review</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 56rem; margin: 2rem auto; padding: 0 1rem; background: #0f172a; color: #cbd5e1; }
.fb-heading { color: #f1f5f9; border-bottom: 1px solid #334155; padding-bottom: .25rem; }
.fb-list { padding-left: 1.5rem; }
.fb-code { background: #020617; padding: 1rem; border-radius: .5rem; overflow-x: auto; }
footer { color: #64748b; font-size: .875rem; margin-top: 2rem; }
</style>
</head>
<body>
<h1>Review Feedback</h1>
<p>{{.Mode}} · {{.Provider}}/{{.Model}}</p>
{{.Body}}
<footer>{{.Footer}}</footer>
</body>
</html>
`))

// HTMLWriter outputs a standalone HTML page.
type HTMLWriter struct{}

func (h *HTMLWriter) Write(w io.Writer, result *review.Result) error {
	body, err := render.HTML(result.Blocks)
	if err != nil {
		return fmt.Errorf("rendering blocks: %w", err)
	}
	return pageTmpl.Execute(w, struct {
		Mode     string
		Provider string
		Model    string
		Body     template.HTML
		Footer   string
	}{
		Mode:     modeLabel(result.Mode),
		Provider: result.Provider,
		Model:    result.Model,
		Body:     body,
		Footer:   footer(result),
	})
}
