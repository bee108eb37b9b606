package render

import (
	"bytes"
	"html/template"
	"io"
)

var htmlTmpl = template.Must(template.New("blocks").Parse(`{{range .}}{{if eq .Type "heading"}}<h2 class="fb-heading">{{.Text}}</h2>
{{else if eq .Type "paragraph"}}<p class="fb-paragraph">{{.Text}}</p>
{{else if eq .Type "list"}}<ul class="fb-list">{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{else if eq .Type "code"}}<pre class="fb-code"><code>{{.Content}}</code></pre>
{{end}}{{end}}`))

// WriteHTML writes blocks as an HTML fragment. All text is escaped.
func WriteHTML(w io.Writer, blocks []Block) error {
	wire := make([]wireBlock, len(blocks))
	for i, b := range blocks {
		wire[i] = toWire(b)
	}
	return htmlTmpl.Execute(w, wire)
}

// HTML returns blocks as an HTML fragment.
func HTML(blocks []Block) (template.HTML, error) {
	var buf bytes.Buffer
	if err := WriteHTML(&buf, blocks); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
